// Mood commands: taxonomy listing and entry mood attachment.
package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/quietloom/daybook/pkg/types"
)

var moodCmd = &cobra.Command{
	Use:   "mood",
	Short: "Browse the mood taxonomy and tag entries with moods",
}

var (
	moodDate      string
	moodIntensity int
	moodPrimary   bool
)

var moodListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the mood taxonomy",
	RunE:  runMoodList,
}

var moodAttachCmd = &cobra.Command{
	Use:   "attach <name>",
	Short: "Attach a mood to a day's entry",
	Args:  cobra.ExactArgs(1),
	RunE:  runMoodAttach,
}

var moodDetachCmd = &cobra.Command{
	Use:   "detach <name>",
	Short: "Detach a mood from a day's entry",
	Args:  cobra.ExactArgs(1),
	RunE:  runMoodDetach,
}

func init() {
	moodAttachCmd.Flags().StringVar(&moodDate, "date", "", "entry date YYYY-MM-DD (default: today)")
	moodAttachCmd.Flags().IntVar(&moodIntensity, "intensity", 0, "intensity override 1-10 (default: mood's base intensity)")
	moodAttachCmd.Flags().BoolVar(&moodPrimary, "primary", false, "mark as the entry's primary mood")
	moodDetachCmd.Flags().StringVar(&moodDate, "date", "", "entry date YYYY-MM-DD (default: today)")

	moodCmd.AddCommand(moodListCmd)
	moodCmd.AddCommand(moodAttachCmd)
	moodCmd.AddCommand(moodDetachCmd)
}

func runMoodList(cmd *cobra.Command, args []string) error {
	store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	moods, err := store.ListMoods()
	if err != nil {
		return fmt.Errorf("list moods: %w", err)
	}

	if flagJSON {
		return printJSON(moods)
	}
	for _, m := range moods {
		fmt.Printf("%s %-12s %-8s intensity %d\n", m.Icon, m.Name, m.Category, m.Intensity)
	}
	return nil
}

func runMoodAttach(cmd *cobra.Command, args []string) error {
	date, err := parseDayFlag(moodDate)
	if err != nil {
		return err
	}

	store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	u, err := currentUser(store)
	if err != nil {
		return err
	}

	entry, err := store.GetEntryByDate(u.ID, date)
	if err != nil {
		return fmt.Errorf("entry for %s: %w", types.FormatDate(date), err)
	}
	mood, err := findMood(store, args[0])
	if err != nil {
		return err
	}

	var intensity *int
	if moodIntensity != 0 {
		intensity = &moodIntensity
	}
	if err := store.AttachMood(u.ID, entry.ID, mood.ID, intensity, moodPrimary); err != nil {
		return fmt.Errorf("attach mood: %w", err)
	}

	fmt.Printf("Marked %s as %s %s\n", types.FormatDate(date), mood.Icon, mood.Name)
	return nil
}

func runMoodDetach(cmd *cobra.Command, args []string) error {
	date, err := parseDayFlag(moodDate)
	if err != nil {
		return err
	}

	store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	u, err := currentUser(store)
	if err != nil {
		return err
	}

	entry, err := store.GetEntryByDate(u.ID, date)
	if err != nil {
		return fmt.Errorf("entry for %s: %w", types.FormatDate(date), err)
	}
	mood, err := findMood(store, args[0])
	if err != nil {
		return err
	}

	if err := store.DetachMood(u.ID, entry.ID, mood.ID); err != nil {
		return fmt.Errorf("detach mood: %w", err)
	}
	fmt.Printf("Removed %s from %s\n", mood.Name, types.FormatDate(date))
	return nil
}

// findMood resolves a mood by name within the seeded taxonomy.
func findMood(store moodLister, name string) (*types.Mood, error) {
	moods, err := store.ListMoods()
	if err != nil {
		return nil, fmt.Errorf("list moods: %w", err)
	}
	for _, m := range moods {
		if m.Name == name {
			return m, nil
		}
	}
	return nil, fmt.Errorf("unknown mood %q", name)
}

type moodLister interface {
	ListMoods() ([]*types.Mood, error)
}
