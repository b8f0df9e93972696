package cmd

import (
	"context"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "adaptly",
	Short: "Adaptive fraction lessons in your terminal",
	Long: `Adaptly teaches fractions through short levels presented in the way you
learn best: visual, auditory, reading/writing or hands-on.`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd, false)
	},
}

func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides ADAPTLY_DB env var)")
	rootCmd.PersistentFlags().String("env-file", ".env", "Optional .env file to load before reading the environment")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(surveyCmd)
	rootCmd.AddCommand(progressCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(practiceCmd)
	rootCmd.AddCommand(levelsCmd)
	rootCmd.AddCommand(hintCmd)
	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(logoutCmd)
	rootCmd.AddCommand(whoamiCmd)
	rootCmd.AddCommand(profileCmd)
	rootCmd.AddCommand(studentsCmd)
	rootCmd.AddCommand(subjectsCmd)
	rootCmd.AddCommand(metricsCmd)
	rootCmd.AddCommand(narrationCmd)
	rootCmd.AddCommand(llmCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(updateCmd)
}
