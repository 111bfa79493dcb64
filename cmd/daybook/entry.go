// Entry commands: writing, reading, listing, and deleting daily entries.
package main

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/quietloom/daybook/pkg/types"
)

var entryCmd = &cobra.Command{
	Use:   "entry",
	Short: "Manage daily entries",
}

var (
	entryDate     string
	entryTitle    string
	entryContent  string
	entryCategory int64
	entryMonth    string
	entryFrom     string
	entryTo       string
)

var entryWriteCmd = &cobra.Command{
	Use:   "write",
	Short: "Write or update the entry for a day",
	Long: `Write creates the entry for a day, or replaces it when one already
exists. Each day holds at most one entry. Content is read from --content,
or from stdin when the flag is omitted.

Example:
  daybook entry write --title "Tuesday" --content "Long day."
  daybook entry write --date 2026-08-30 --title "Yesterday" < notes.txt`,
	RunE: runEntryWrite,
}

var entryShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the entry for a day",
	RunE:  runEntryShow,
}

var entryListCmd = &cobra.Command{
	Use:   "list",
	Short: "List entries by month or date range",
	Long: `List prints entries newest first, filtered by --month or by
--from/--to.

Example:
  daybook entry list --month 2026-08
  daybook entry list --from 2026-08-01 --to 2026-08-15`,
	RunE: runEntryList,
}

var entryDeleteCmd = &cobra.Command{
	Use:   "delete",
	Short: "Delete the entry for a day",
	RunE:  runEntryDelete,
}

func init() {
	entryWriteCmd.Flags().StringVar(&entryDate, "date", "", "entry date YYYY-MM-DD (default: today)")
	entryWriteCmd.Flags().StringVar(&entryTitle, "title", "", "entry title (required)")
	entryWriteCmd.Flags().StringVar(&entryContent, "content", "", "entry content (default: read from stdin)")
	entryWriteCmd.Flags().Int64Var(&entryCategory, "category", 0, "category id (0 means none)")
	_ = entryWriteCmd.MarkFlagRequired("title")

	entryShowCmd.Flags().StringVar(&entryDate, "date", "", "entry date YYYY-MM-DD (default: today)")
	entryDeleteCmd.Flags().StringVar(&entryDate, "date", "", "entry date YYYY-MM-DD (default: today)")

	entryListCmd.Flags().StringVar(&entryMonth, "month", "", "calendar month YYYY-MM")
	entryListCmd.Flags().StringVar(&entryFrom, "from", "", "range start YYYY-MM-DD")
	entryListCmd.Flags().StringVar(&entryTo, "to", "", "range end YYYY-MM-DD")

	entryCmd.AddCommand(entryWriteCmd)
	entryCmd.AddCommand(entryShowCmd)
	entryCmd.AddCommand(entryListCmd)
	entryCmd.AddCommand(entryDeleteCmd)
}

func runEntryWrite(cmd *cobra.Command, args []string) error {
	date, err := parseDayFlag(entryDate)
	if err != nil {
		return err
	}

	content := entryContent
	if content == "" {
		raw, err := io.ReadAll(os.Stdin)
		if err != nil {
			return fmt.Errorf("read content from stdin: %w", err)
		}
		content = strings.TrimRight(string(raw), "\n")
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

	draft := &types.Entry{Title: entryTitle, Content: content, EntryDate: date}
	if entryCategory != 0 {
		draft.CategoryID = &entryCategory
	}

	entry, err := store.UpsertEntry(u.ID, draft)
	if err != nil {
		return fmt.Errorf("write entry: %w", err)
	}

	// Keep the streak cache in step with the new entry date.
	if _, err := store.RecalculateStreak(u.ID); err != nil {
		return fmt.Errorf("recalculate streak: %w", err)
	}

	if flagJSON {
		return printJSON(entry)
	}
	fmt.Printf("Saved entry for %s (%d words)\n", types.FormatDate(entry.EntryDate), entry.WordCount)
	return nil
}

func runEntryShow(cmd *cobra.Command, args []string) error {
	date, err := parseDayFlag(entryDate)
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

	if flagJSON {
		return printJSON(entry)
	}
	printEntry(store, u.ID, entry)
	return nil
}

func runEntryList(cmd *cobra.Command, args []string) error {
	store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	u, err := currentUser(store)
	if err != nil {
		return err
	}

	var entries []*types.Entry
	switch {
	case entryMonth != "":
		month, err := time.Parse("2006-01", entryMonth)
		if err != nil {
			return fmt.Errorf("invalid month %q (expected YYYY-MM)", entryMonth)
		}
		entries, err = store.EntriesByMonth(u.ID, month.Year(), month.Month())
		if err != nil {
			return fmt.Errorf("list entries: %w", err)
		}
	case entryFrom != "" || entryTo != "":
		if entryFrom == "" || entryTo == "" {
			return fmt.Errorf("--from and --to must be used together")
		}
		from, err := parseDayFlag(entryFrom)
		if err != nil {
			return err
		}
		to, err := parseDayFlag(entryTo)
		if err != nil {
			return err
		}
		entries, err = store.EntriesByRange(u.ID, from, to)
		if err != nil {
			return fmt.Errorf("list entries: %w", err)
		}
	default:
		return fmt.Errorf("pass --month or --from/--to")
	}

	if flagJSON {
		return printJSON(entries)
	}
	for _, e := range entries {
		fmt.Printf("%s  %-30s  %d words\n", types.FormatDate(e.EntryDate), e.Title, e.WordCount)
	}
	return nil
}

func runEntryDelete(cmd *cobra.Command, args []string) error {
	date, err := parseDayFlag(entryDate)
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

	if err := store.DeleteEntryByDate(u.ID, date); err != nil {
		return fmt.Errorf("delete entry: %w", err)
	}
	if _, err := store.RecalculateStreak(u.ID); err != nil {
		return fmt.Errorf("recalculate streak: %w", err)
	}

	fmt.Printf("Deleted entry for %s\n", types.FormatDate(date))
	return nil
}

// printEntry renders one entry with its tags and moods.
func printEntry(store storeReader, ownerID int64, entry *types.Entry) {
	fmt.Printf("%s  %s\n\n%s\n", types.FormatDate(entry.EntryDate), entry.Title, entry.Content)

	if tags, err := store.TagsForEntry(ownerID, entry.ID); err == nil && len(tags) > 0 {
		names := make([]string, len(tags))
		for i, t := range tags {
			names[i] = t.Name
		}
		fmt.Printf("\ntags: %s\n", strings.Join(names, ", "))
	}
	if assocs, err := store.MoodsForEntry(ownerID, entry.ID); err == nil && len(assocs) > 0 {
		parts := make([]string, 0, len(assocs))
		for _, em := range assocs {
			mood, err := store.GetMood(em.MoodID)
			if err != nil {
				continue
			}
			label := mood.Name
			if em.IsPrimary {
				label += " (primary)"
			}
			parts = append(parts, label)
		}
		fmt.Printf("moods: %s\n", strings.Join(parts, ", "))
	}
}

// storeReader is the slice of the store printEntry needs.
type storeReader interface {
	TagsForEntry(ownerID, entryID int64) ([]*types.Tag, error)
	MoodsForEntry(ownerID, entryID int64) ([]*types.EntryMood, error)
	GetMood(id int64) (*types.Mood, error)
}
