package cmd

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/adaptly/internal/adaptive"
)

var practiceCmd = &cobra.Command{
	Use:   "practice",
	Short: "Adaptive drill: questions get harder as you get them right",
	RunE: func(cmd *cobra.Command, args []string) error {
		count, _ := cmd.Flags().GetInt("count")
		return withDeps(cmd, func(ctx context.Context, d *deps) error {
			tracker := adaptive.NewTracker(d.kv, d.log)
			tracker.Load(ctx)
			drill := adaptive.NewDrill(d.catalog, tracker, nil)
			return runPractice(ctx, drill, tracker, count, cmd.InOrStdin(), cmd.OutOrStdout())
		})
	},
}

func init() {
	practiceCmd.Flags().IntP("count", "n", 5, "Number of questions")
}

func runPractice(ctx context.Context, drill *adaptive.Drill, tracker *adaptive.Tracker, count int, in io.Reader, out io.Writer) error {
	scanner := bufio.NewScanner(in)
	correct := 0

	fmt.Fprintf(out, "Difficulty %d. Answer with the option number, or q to stop.\n\n", tracker.Level())
	for i := 1; i <= count; i++ {
		item, ok := drill.Next()
		if !ok {
			return fmt.Errorf("no practice questions available")
		}

		fmt.Fprintf(out, "Q%d. %s\n", i, item.Question.Prompt)
		for j, opt := range item.Question.Options {
			fmt.Fprintf(out, "  %d) %s\n", j+1, opt)
		}

		choice, quit := readChoice(scanner, out, len(item.Question.Options))
		if quit {
			break
		}

		ok, level := drill.Answer(ctx, item, choice)
		if ok {
			correct++
			fmt.Fprintln(out, "✓ Correct!")
		} else {
			fmt.Fprintf(out, "✗ The answer is %s.\n", item.Question.Answer())
		}
		if exp := item.Question.Explanation; exp != "" {
			fmt.Fprintf(out, "  %s\n", exp)
		}
		fmt.Fprintf(out, "  Difficulty: %d\n\n", level)
	}

	fmt.Fprintf(out, "Score: %d. Difficulty is now %d.\n", correct, tracker.Level())
	return nil
}

// readChoice prompts until it reads a valid option number. quit is true on
// "q" or end of input.
func readChoice(scanner *bufio.Scanner, out io.Writer, options int) (choice int, quit bool) {
	for {
		fmt.Fprint(out, "> ")
		if !scanner.Scan() {
			return 0, true
		}
		text := strings.TrimSpace(scanner.Text())
		if strings.EqualFold(text, "q") {
			return 0, true
		}
		n, err := strconv.Atoi(text)
		if err == nil && n >= 1 && n <= options {
			return n - 1, false
		}
		fmt.Fprintf(out, "Enter a number from 1 to %d.\n", options)
	}
}
