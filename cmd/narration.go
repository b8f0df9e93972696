package cmd

import (
	"context"
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/abhisek/adaptly/internal/narration"
)

var narrationCmd = &cobra.Command{
	Use:   "narration",
	Short: "Manage narration audio",
}

var narrationPrefetchCmd = &cobra.Command{
	Use:   "prefetch",
	Short: "Synthesize narration audio for every level ahead of time",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("concurrency")
		return withDeps(cmd, func(ctx context.Context, d *deps) error {
			synth, err := d.synthesizer(ctx)
			if err != nil {
				return err
			}
			cache, err := d.narrationCache()
			if err != nil {
				return err
			}

			scripts := d.catalog.Narrations()
			ids := make([]int, 0, len(scripts))
			for id := range scripts {
				ids = append(ids, id)
			}
			sort.Ints(ids)
			texts := make([]string, 0, len(ids))
			for _, id := range ids {
				if scripts[id] != "" {
					texts = append(texts, scripts[id])
				}
			}

			if err := narration.Prefetch(ctx, synth, cache, texts, limit); err != nil {
				return fmt.Errorf("prefetch narration: %w", err)
			}
			fmt.Printf("Cached %d narrations in %s\n", len(texts), cache.Dir)
			return nil
		})
	},
}

func init() {
	narrationPrefetchCmd.Flags().Int("concurrency", 4, "Maximum concurrent synthesis requests")
	narrationCmd.AddCommand(narrationPrefetchCmd)
}
