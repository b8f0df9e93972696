package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/abhisek/adaptly/internal/app"
	"github.com/abhisek/adaptly/internal/narration"
	"github.com/abhisek/adaptly/internal/screen"
	"github.com/abhisek/adaptly/internal/style"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Start the interactive lessons",
	RunE: func(cmd *cobra.Command, args []string) error {
		skip, _ := cmd.Flags().GetBool("no-splash")
		return runApp(cmd, skip)
	},
}

func init() {
	playCmd.Flags().Bool("no-splash", false, "Skip the welcome animation")
}

// runApp builds the screen environment and launches the TUI. Hints and
// narration are optional; the lessons work without them.
func runApp(cmd *cobra.Command, skipSplash bool) error {
	ctx := cmd.Context()
	d, err := openDeps(cmd, true)
	if err != nil {
		return err
	}
	defer d.Close()

	env := &screen.Env{
		KV:       d.kv,
		Catalog:  d.catalog,
		Progress: d.progress,
		Log:      d.log,
	}
	if st, ok := style.Load(ctx, d.kv, d.log); ok {
		env.Style = st
	}

	env.Hints, err = d.hints(ctx)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Hints unavailable:", err)
		d.log.Warn("hints disabled", zap.Error(err))
	}

	env.Narrator, err = d.narrator(ctx)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Narration unavailable:", err)
		d.log.Warn("narration disabled", zap.Error(err))
	}
	if env.Narrator == nil {
		env.Narrator = narration.Silent{}
	}

	d.log.Info("starting", zap.String("version", version), zap.String("style", env.Style.String()))
	return app.Run(app.Options{Env: env, SkipSplash: skipSplash})
}
