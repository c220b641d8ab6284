package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var resetCmd = &cobra.Command{
	Use:   "reset [node-id]",
	Short: "Reset progress for one node, or everything with --all",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		all, _ := cmd.Flags().GetBool("all")
		if all == (len(args) == 1) {
			return fmt.Errorf("pass a node id or --all, not both")
		}

		eng, err := openEngine(cmd)
		if err != nil {
			return err
		}
		defer eng.close()

		if all {
			eng.store.ResetAll()
			fmt.Println("all progress erased")
			return nil
		}
		eng.store.ResetNode(args[0])
		fmt.Printf("reset %s\n", args[0])
		return nil
	},
}

func init() {
	resetCmd.Flags().Bool("all", false, "Erase all progress and persisted storage")
}
