package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/quietloom/daybook/internal/sqlite"
	"github.com/quietloom/daybook/pkg/types"
)

var (
	searchText     string
	searchTags     []string
	searchMoods    []string
	searchCategory int64
	searchFrom     string
	searchTo       string
	searchPage     int
	searchPageSize int
)

var searchCmd = &cobra.Command{
	Use:   "search",
	Short: "Search entries by text, tags, moods, category, and date range",
	Long: `Search entries. All given filters must match at once; within the
tag and mood filters any one of the listed names suffices.`,
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().StringVar(&searchText, "text", "", "substring of title or content")
	searchCmd.Flags().StringSliceVar(&searchTags, "tag", nil, "tag name, repeatable")
	searchCmd.Flags().StringSliceVar(&searchMoods, "mood", nil, "mood name, repeatable")
	searchCmd.Flags().Int64Var(&searchCategory, "category", 0, "category id")
	searchCmd.Flags().StringVar(&searchFrom, "from", "", "start date YYYY-MM-DD, inclusive")
	searchCmd.Flags().StringVar(&searchTo, "to", "", "end date YYYY-MM-DD, inclusive")
	searchCmd.Flags().IntVar(&searchPage, "page", 1, "result page, starting at 1")
	searchCmd.Flags().IntVar(&searchPageSize, "page-size", 20, "entries per page")
}

func runSearch(cmd *cobra.Command, args []string) error {
	store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	u, err := currentUser(store)
	if err != nil {
		return err
	}

	filter, err := buildFilter(store, u.ID)
	if err != nil {
		return err
	}

	result, err := store.SearchEntries(u.ID, *filter, searchPage, searchPageSize)
	if err != nil {
		return fmt.Errorf("search: %w", err)
	}

	if flagJSON {
		return printJSON(result)
	}
	for _, e := range result.Entries {
		title := e.Title
		if title == "" {
			title = firstLine(e.Content)
		}
		fmt.Printf("%s  %s\n", types.FormatDate(e.EntryDate), title)
	}
	fmt.Printf("%d of %d entries (page %d)\n", len(result.Entries), result.Total, searchPage)
	return nil
}

func buildFilter(store *sqlite.Store, ownerID int64) (*types.EntryFilter, error) {
	filter := &types.EntryFilter{Text: searchText}

	for _, name := range searchTags {
		tag, err := findTag(store, ownerID, name)
		if err != nil {
			return nil, err
		}
		filter.TagIDs = append(filter.TagIDs, tag.ID)
	}
	for _, name := range searchMoods {
		mood, err := findMood(store, name)
		if err != nil {
			return nil, err
		}
		filter.MoodIDs = append(filter.MoodIDs, mood.ID)
	}
	if searchCategory != 0 {
		filter.CategoryID = &searchCategory
	}
	if searchFrom != "" {
		from, err := types.ParseDate(searchFrom)
		if err != nil {
			return nil, err
		}
		filter.DateFrom = &from
	}
	if searchTo != "" {
		to, err := types.ParseDate(searchTo)
		if err != nil {
			return nil, err
		}
		filter.DateTo = &to
	}
	return filter, nil
}

func firstLine(content string) string {
	if i := strings.IndexByte(content, '\n'); i >= 0 {
		content = content[:i]
	}
	if len(content) > 60 {
		content = content[:60]
	}
	return content
}
