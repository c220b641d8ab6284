package cmd

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/questlog/internal/quest"
	"github.com/abhisek/questlog/internal/ui/theme"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Summarize progress across all nodes",
	RunE: func(cmd *cobra.Command, args []string) error {
		eng, err := openEngine(cmd)
		if err != nil {
			return err
		}
		defer eng.close()

		resolver := quest.NewResolver(eng.store, eng.catalog.LinkedTopics)

		// Catalog nodes first (file order), then tracked nodes the
		// catalog doesn't know about.
		var ids []string
		seen := make(map[string]bool)
		for _, n := range eng.catalog.Nodes() {
			ids = append(ids, n.ID)
			seen[n.ID] = true
		}
		var extra []string
		for _, id := range eng.store.NodeIDs() {
			if !seen[id] {
				extra = append(extra, id)
			}
		}
		sort.Strings(extra)
		ids = append(ids, extra...)

		if len(ids) == 0 {
			fmt.Println("No progress recorded yet.")
			return nil
		}

		counts := make(map[quest.Status]int)
		fmt.Printf("%-28s  %-13s  %s\n", "Node", "Status", "Explored")
		fmt.Println(strings.Repeat("─", 70))
		for _, id := range ids {
			st := resolver.Status(id)
			counts[st]++
			np := eng.store.NodeProgress(id)
			name := id
			if t := eng.catalog.Title(id); t != "" {
				name = t
			}
			if len(name) > 28 {
				name = name[:25] + "..."
			}
			fmt.Printf("%-28s  %s  %s\n", name, theme.StatusBadge(st),
				theme.ProgressBar(np.ExploredPercent, 20))
		}

		fmt.Printf("\n%d nodes · %d complete · %d in progress · %d discovered · %d hidden\n",
			len(ids),
			counts[quest.StatusComplete],
			counts[quest.StatusInProgress],
			counts[quest.StatusDiscovered],
			counts[quest.StatusUndiscovered])
		return nil
	},
}
