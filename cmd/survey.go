package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/adaptly/internal/style"
)

var surveyCmd = &cobra.Command{
	Use:       "survey [style]",
	Short:     "Show or set your learning style",
	Long:      "Without arguments, print the stored learning style. With a style (visual, auditory, reading, kinesthetic), store it.",
	Args:      cobra.MaximumNArgs(1),
	ValidArgs: []string{"visual", "auditory", "reading", "kinesthetic"},
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDeps(cmd, func(ctx context.Context, d *deps) error {
			if len(args) == 0 {
				st, ok := style.Load(ctx, d.kv, d.log)
				if !ok {
					fmt.Println("No learning style chosen yet. Options:")
					for _, s := range style.All() {
						fmt.Printf("  %-12s %s\n", s, s.Helper())
					}
					return nil
				}
				fmt.Printf("%s: %s\n", st.Label(), st.Helper())
				return nil
			}

			st, err := style.Parse(args[0])
			if err != nil {
				return err
			}
			if err := style.Save(ctx, d.kv, st); err != nil {
				return fmt.Errorf("save learning style: %w", err)
			}
			fmt.Printf("Learning style set to %s.\n", st.Label())
			return nil
		})
	},
}
