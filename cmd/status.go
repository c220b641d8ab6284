package cmd

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/questlog/internal/quest"
	"github.com/abhisek/questlog/internal/ui/theme"
)

var statusCmd = &cobra.Command{
	Use:   "status <node-id>",
	Short: "Show a node's quest status",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		eng, err := openEngine(cmd)
		if err != nil {
			return err
		}
		defer eng.close()

		nodeID := args[0]
		resolver := quest.NewResolver(eng.store, eng.catalog.LinkedTopics)
		np := eng.store.NodeProgress(nodeID)
		linked := eng.catalog.LinkedTopics(nodeID)

		title := eng.catalog.Title(nodeID)
		if title == "" {
			title = nodeID
		}

		fmt.Println(theme.Title.Render(title))
		fmt.Printf("%s  %s\n", theme.StatusBadge(resolver.Status(nodeID)),
			theme.ProgressBar(np.ExploredPercent, 30))

		if len(linked) > 0 {
			discovered := np.DiscoveredTopicsOnPage
			var marks []string
			for _, topic := range linked {
				if _, ok := discovered[topic]; ok {
					marks = append(marks, topic+" ✓")
				} else {
					marks = append(marks, topic)
				}
			}
			sort.Strings(marks)
			fmt.Printf("topics: %d/%d  [%s]\n",
				np.TopicsDiscovered(), len(linked), strings.Join(marks, ", "))
		}

		if np.VisitedAt != nil {
			fmt.Println(theme.Hint.Render("first visited " + np.VisitedAt.Format("2006-01-02 15:04")))
		}
		return nil
	},
}
