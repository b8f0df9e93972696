package cmd

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/adaptly/internal/content"
	"github.com/abhisek/adaptly/internal/narration"
	"github.com/abhisek/adaptly/internal/style"
)

var levelsCmd = &cobra.Command{
	Use:   "levels",
	Short: "Browse the level catalog",
}

var levelsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all levels",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDeps(cmd, func(ctx context.Context, d *deps) error {
			fmt.Printf("%-3s  %-32s  %10s  %9s  %6s\n", "ID", "Title", "Difficulty", "Questions", "Needed")
			fmt.Println(strings.Repeat("─", 68))
			for _, l := range d.catalog.All() {
				fmt.Printf("%-3d  %-32s  %10d  %9d  %6d\n",
					l.ID, truncate(l.Title, 32), l.Difficulty, l.QuestionCount(), l.RequiredScore)
			}
			fmt.Printf("\n%d levels\n", d.catalog.Len())
			return nil
		})
	},
}

var levelsShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Print a level's lesson in a learning style",
	Long: `Print the teaching block and questions of a level as the lesson screen
would show them. Uses the stored learning style unless --style is given.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid level id %q: %w", args[0], err)
		}
		styleFlag, _ := cmd.Flags().GetString("style")
		answers, _ := cmd.Flags().GetBool("answers")

		return withDeps(cmd, func(ctx context.Context, d *deps) error {
			level, err := d.catalog.Get(id)
			if err != nil {
				return err
			}

			st := style.Reading
			if styleFlag != "" {
				if st, err = style.Parse(styleFlag); err != nil {
					return err
				}
			} else if stored, ok := style.Load(ctx, d.kv, d.log); ok {
				st = stored
			}

			fmt.Printf("Level %d: %s (%s)\n", level.ID, level.Title, st.Label())
			if level.Description != "" {
				fmt.Println(level.Description)
			}
			fmt.Println()
			fmt.Println(content.For(st, narration.Silent{}).Render(level, 72))
			fmt.Println()

			for i, q := range level.Questions {
				fmt.Printf("Q%d. %s\n", i+1, q.Prompt)
				for j, opt := range q.Options {
					mark := " "
					if answers && q.IsCorrect(j) {
						mark = "*"
					}
					fmt.Printf("  %s %d) %s\n", mark, j+1, opt)
				}
				if answers && q.Explanation != "" {
					fmt.Printf("    %s\n", q.Explanation)
				}
			}
			fmt.Printf("\n%d of %d correct needed to unlock the next level.\n", level.RequiredScore, level.QuestionCount())
			return nil
		})
	},
}

func init() {
	levelsShowCmd.Flags().String("style", "", "Learning style: visual, auditory, reading or kinesthetic")
	levelsShowCmd.Flags().Bool("answers", false, "Mark correct answers and show explanations")

	levelsCmd.AddCommand(levelsListCmd)
	levelsCmd.AddCommand(levelsShowCmd)
}
