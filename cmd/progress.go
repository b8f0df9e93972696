package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var progressCmd = &cobra.Command{
	Use:   "progress",
	Short: "Show level progress",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDeps(cmd, func(ctx context.Context, d *deps) error {
			fmt.Printf("%-3s  %-32s  %-8s  %5s  %8s  %s\n",
				"ID", "Level", "State", "Score", "Attempts", "Last played")
			fmt.Println(strings.Repeat("─", 80))

			for _, l := range d.catalog.All() {
				state := "locked"
				if d.progress.IsUnlocked(l.ID) {
					state = "open"
				}
				score, attempts, when := "-", "-", "-"
				if rec, ok := d.progress.ProgressFor(l.ID); ok {
					if rec.Completed {
						state = "done"
					}
					score = fmt.Sprintf("%d/%d", rec.Score, l.QuestionCount())
					attempts = fmt.Sprintf("%d", rec.Attempts)
					if rec.CompletedAt != nil {
						when = rec.CompletedAt.Local().Format("2006-01-02 15:04")
					}
				}
				fmt.Printf("%-3d  %-32s  %-8s  %5s  %8s  %s\n",
					l.ID, truncate(l.Title, 32), state, score, attempts, when)
			}

			fmt.Println(strings.Repeat("─", 80))
			fmt.Printf("%d of %d levels completed (%.0f%%)\n",
				d.progress.CompletedCount(), d.catalog.Len(), d.progress.OverallPercent())
			return nil
		})
	},
}
