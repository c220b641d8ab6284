package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/questlog/internal/discovery"
)

var discoverCmd = &cobra.Command{
	Use:   "discover <topic-id>",
	Short: "Record that a topic reference became visible",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		from, _ := cmd.Flags().GetString("from")
		ref, _ := cmd.Flags().GetString("ref")

		eng, err := openEngine(cmd)
		if err != nil {
			return err
		}
		defer eng.close()

		dis := discovery.New(eng.store, discovery.WithTitles(eng.catalog.Title))
		dis.Subscribe(func(ev discovery.Event) {
			name := ev.Title
			if name == "" {
				name = ev.TopicID
			}
			fmt.Printf("✨ new topic discovered: %s (via %s)\n", name, ev.SourceRef)
		})

		if !dis.MarkTopicDiscovered(args[0], ref, from) {
			fmt.Printf("%s was already discovered\n", args[0])
		} else if ref == "" {
			fmt.Printf("discovered %s\n", args[0])
		}
		return nil
	},
}

func init() {
	discoverCmd.Flags().String("from", "", "Node id of the page where the reference was seen")
	discoverCmd.Flags().String("ref", "", "Link reference for the discovery notification")
}
