package cmd

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var hintCmd = &cobra.Command{
	Use:   "hint <level> <question>",
	Short: "Fetch a hint for a question through the configured hint source",
	Long: `Fetch a hint for question N of a level, the way the lesson screen does.
Useful for checking the hint source configuration (ADAPTLY_HINT_SOURCE).`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		levelID, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid level id %q: %w", args[0], err)
		}
		qn, err := strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("invalid question number %q: %w", args[1], err)
		}

		return withDeps(cmd, func(ctx context.Context, d *deps) error {
			level, err := d.catalog.Get(levelID)
			if err != nil {
				return err
			}
			if qn < 1 || qn > level.QuestionCount() {
				return fmt.Errorf("level %d has questions 1-%d", levelID, level.QuestionCount())
			}

			svc, err := d.hints(ctx)
			if err != nil {
				return err
			}
			if svc == nil {
				return errors.New("hints are off: set ADAPTLY_API_BASE_URL or an LLM provider key")
			}

			q := level.Questions[qn-1]
			fmt.Println(q.Prompt)
			fmt.Println()

			res := svc.Fetch(ctx, q.Prompt)
			if res.Err != nil {
				d.log.Debug("hint fetch failed", zap.Error(res.Err))
			}
			fmt.Println("Hint:", res.Hint.Text)
			if res.Hint.Next != "" {
				fmt.Println("Next step:", res.Hint.Next)
			}
			return nil
		})
	},
}
