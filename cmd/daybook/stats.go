package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Journaling statistics",
	RunE:  runStats,
}

func runStats(cmd *cobra.Command, args []string) error {
	store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	u, err := currentUser(store)
	if err != nil {
		return err
	}

	words, err := store.WordCountStats(u.ID)
	if err != nil {
		return fmt.Errorf("word counts: %w", err)
	}
	months, err := store.EntriesByMonthCounts(u.ID)
	if err != nil {
		return fmt.Errorf("monthly counts: %w", err)
	}
	categories, err := store.EntriesByCategoryCounts(u.ID)
	if err != nil {
		return fmt.Errorf("category counts: %w", err)
	}
	tags, err := store.TagUsageCounts(u.ID)
	if err != nil {
		return fmt.Errorf("tag usage: %w", err)
	}

	if flagJSON {
		return printJSON(map[string]any{
			"words":      words,
			"months":     months,
			"categories": categories,
			"tags":       tags,
		})
	}

	fmt.Printf("Entries: %d\n", words.EntryCount)
	fmt.Printf("Words:   %d total, %.1f per entry\n", words.TotalWords, words.AverageWords)

	if len(months) > 0 {
		fmt.Println("\nBy month:")
		for _, m := range months {
			fmt.Printf("  %s  %d\n", m.Month, m.Count)
		}
	}
	if len(categories) > 0 {
		fmt.Println("\nBy category:")
		for _, c := range categories {
			label := "(none)"
			if c.CategoryID != nil {
				label = fmt.Sprintf("category %d", *c.CategoryID)
			}
			fmt.Printf("  %-12s %d\n", label, c.Count)
		}
	}
	if len(tags) > 0 {
		fmt.Println("\nBy tag:")
		for _, t := range tags {
			fmt.Printf("  %-20s %d\n", t.Name, t.Count)
		}
	}
	return nil
}
