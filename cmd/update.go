package cmd

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/abhisek/questlog/internal/selfupdate"
)

var updateCmd = &cobra.Command{
	Use:   "update",
	Short: "Check whether a newer questlog release exists",
	RunE: func(cmd *cobra.Command, args []string) error {
		checker := selfupdate.NewChecker(selfupdate.WithTimeout(30 * time.Second))

		ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
		defer cancel()

		result, err := checker.Check(ctx, &selfupdate.CheckInput{Version: version})
		if err != nil {
			if errors.Is(err, selfupdate.ErrDevBuild) {
				fmt.Println("Cannot check a development build. Install a release build first.")
				return nil
			}
			return err
		}

		if !result.UpdateAvailable {
			fmt.Println("Already running the latest version.")
			return nil
		}
		fmt.Printf("Update available: %s → %s\n", result.CurrentVersion, result.LatestVersion)
		return nil
	},
}
