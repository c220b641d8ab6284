package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var visitCmd = &cobra.Command{
	Use:   "visit <node-id>",
	Short: "Record a navigation into a node",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		eng, err := openEngine(cmd)
		if err != nil {
			return err
		}
		defer eng.close()

		eng.store.MarkVisited(args[0])
		fmt.Printf("visited %s\n", args[0])
		return nil
	},
}
