package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/adaptly/internal/adaptive"
	"github.com/abhisek/adaptly/internal/style"
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Reset learner data",
	Long:  "Delete level progress. With --all, also forget the learning style and practice difficulty.",
	RunE: func(cmd *cobra.Command, args []string) error {
		all, _ := cmd.Flags().GetBool("all")
		return withDeps(cmd, func(ctx context.Context, d *deps) error {
			d.progress.Reset(ctx)
			fmt.Println("Level progress cleared.")
			if !all {
				return nil
			}

			if err := style.Clear(ctx, d.kv); err != nil {
				return fmt.Errorf("clear learning style: %w", err)
			}
			adaptive.NewTracker(d.kv, d.log).Reset(ctx)
			fmt.Println("Learning style and practice difficulty cleared.")
			return nil
		})
	},
}

func init() {
	resetCmd.Flags().Bool("all", false, "Also clear the learning style and practice difficulty")
}
