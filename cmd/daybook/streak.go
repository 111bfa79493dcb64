package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/quietloom/daybook/pkg/types"
)

var streakCmd = &cobra.Command{
	Use:   "streak",
	Short: "Journaling streaks",
}

var streakShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the current and longest streak",
	RunE:  runStreakShow,
}

var streakHistoryCmd = &cobra.Command{
	Use:   "history",
	Short: "List all recorded streaks, newest first",
	RunE:  runStreakHistory,
}

var streakRebuildCmd = &cobra.Command{
	Use:   "rebuild",
	Short: "Discard cached streaks and recompute from entry dates",
	RunE:  runStreakRebuild,
}

func init() {
	streakCmd.AddCommand(streakShowCmd)
	streakCmd.AddCommand(streakHistoryCmd)
	streakCmd.AddCommand(streakRebuildCmd)
}

func runStreakShow(cmd *cobra.Command, args []string) error {
	store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	u, err := currentUser(store)
	if err != nil {
		return err
	}

	stats, err := store.RecalculateStreak(u.ID)
	if err != nil {
		return fmt.Errorf("recalculate streak: %w", err)
	}

	if flagJSON {
		return printJSON(stats)
	}
	fmt.Printf("Current streak: %s\n", pluralDays(stats.Current))
	fmt.Printf("Longest streak: %s\n", pluralDays(stats.Longest))
	if stats.Missed > 0 {
		fmt.Printf("Missed days since first entry: %d\n", stats.Missed)
	}
	return nil
}

func runStreakHistory(cmd *cobra.Command, args []string) error {
	store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	u, err := currentUser(store)
	if err != nil {
		return err
	}

	streaks, err := store.ListStreaks(u.ID)
	if err != nil {
		return fmt.Errorf("list streaks: %w", err)
	}

	if flagJSON {
		return printJSON(streaks)
	}
	for _, st := range streaks {
		end := "ongoing"
		if st.EndDate != nil {
			end = types.FormatDate(*st.EndDate)
		}
		marker := " "
		if st.IsActive {
			marker = "*"
		}
		fmt.Printf("%s %s .. %-10s %s\n", marker, types.FormatDate(st.StartDate), end, pluralDays(st.DayCount))
	}
	return nil
}

func runStreakRebuild(cmd *cobra.Command, args []string) error {
	store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	u, err := currentUser(store)
	if err != nil {
		return err
	}

	stats, err := store.RebuildStreaks(u.ID)
	if err != nil {
		return fmt.Errorf("rebuild streaks: %w", err)
	}

	if flagJSON {
		return printJSON(stats)
	}
	if _, err := store.CurrentStreak(u.ID); errors.Is(err, types.ErrNotFound) {
		fmt.Println("Rebuilt. No active streak.")
		return nil
	}
	fmt.Printf("Rebuilt. Current streak: %s\n", pluralDays(stats.Current))
	return nil
}

func pluralDays(n int) string {
	if n == 1 {
		return "1 day"
	}
	return fmt.Sprintf("%d days", n)
}
