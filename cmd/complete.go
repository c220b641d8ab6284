package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var completeCmd = &cobra.Command{
	Use:   "complete <node-id>",
	Short: "Force a node's quest to complete",
	Long: "Marks the quest complete regardless of exploration or linked-topic\n" +
		"progress. The manual override supersedes the normal derivation.",
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		eng, err := openEngine(cmd)
		if err != nil {
			return err
		}
		defer eng.close()

		eng.store.MarkQuestComplete(args[0])
		fmt.Printf("quest complete: %s\n", args[0])
		return nil
	},
}
