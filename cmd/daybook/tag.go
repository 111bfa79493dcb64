// Tag commands: vocabulary management and entry tagging.
package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/quietloom/daybook/pkg/types"
)

var tagCmd = &cobra.Command{
	Use:   "tag",
	Short: "Manage tags and entry tagging",
}

var (
	tagColor string
	tagDate  string
)

var tagAddCmd = &cobra.Command{
	Use:   "add <name>",
	Short: "Create a tag",
	Args:  cobra.ExactArgs(1),
	RunE:  runTagAdd,
}

var tagListCmd = &cobra.Command{
	Use:   "list",
	Short: "List tags with usage counts",
	RunE:  runTagList,
}

var tagRenameCmd = &cobra.Command{
	Use:   "rename <old> <new>",
	Short: "Rename a tag",
	Args:  cobra.ExactArgs(2),
	RunE:  runTagRename,
}

var tagDeleteCmd = &cobra.Command{
	Use:   "delete <name>",
	Short: "Delete a tag and detach it everywhere",
	Args:  cobra.ExactArgs(1),
	RunE:  runTagDelete,
}

var tagAttachCmd = &cobra.Command{
	Use:   "attach <name>",
	Short: "Attach a tag to a day's entry",
	Args:  cobra.ExactArgs(1),
	RunE:  runTagAttach,
}

var tagDetachCmd = &cobra.Command{
	Use:   "detach <name>",
	Short: "Detach a tag from a day's entry",
	Args:  cobra.ExactArgs(1),
	RunE:  runTagDetach,
}

func init() {
	tagAddCmd.Flags().StringVar(&tagColor, "color", "", "display color, e.g. #336699")
	tagAttachCmd.Flags().StringVar(&tagDate, "date", "", "entry date YYYY-MM-DD (default: today)")
	tagDetachCmd.Flags().StringVar(&tagDate, "date", "", "entry date YYYY-MM-DD (default: today)")

	tagCmd.AddCommand(tagAddCmd)
	tagCmd.AddCommand(tagListCmd)
	tagCmd.AddCommand(tagRenameCmd)
	tagCmd.AddCommand(tagDeleteCmd)
	tagCmd.AddCommand(tagAttachCmd)
	tagCmd.AddCommand(tagDetachCmd)
}

func runTagAdd(cmd *cobra.Command, args []string) error {
	store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	u, err := currentUser(store)
	if err != nil {
		return err
	}

	tag, err := store.CreateTag(u.ID, &types.Tag{Name: args[0], Color: tagColor})
	if err != nil {
		return fmt.Errorf("create tag: %w", err)
	}

	if flagJSON {
		return printJSON(tag)
	}
	fmt.Printf("Created tag %q\n", tag.Name)
	return nil
}

func runTagList(cmd *cobra.Command, args []string) error {
	store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	u, err := currentUser(store)
	if err != nil {
		return err
	}

	usage, err := store.TagUsageCounts(u.ID)
	if err != nil {
		return fmt.Errorf("list tags: %w", err)
	}

	if flagJSON {
		return printJSON(usage)
	}
	for _, tu := range usage {
		fmt.Printf("%-20s %d entries\n", tu.Name, tu.Count)
	}
	return nil
}

func runTagRename(cmd *cobra.Command, args []string) error {
	store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	u, err := currentUser(store)
	if err != nil {
		return err
	}

	tag, err := findTag(store, u.ID, args[0])
	if err != nil {
		return err
	}
	tag.Name = args[1]
	if _, err := store.UpdateTag(u.ID, tag); err != nil {
		return fmt.Errorf("rename tag: %w", err)
	}

	fmt.Printf("Renamed tag %q to %q\n", args[0], args[1])
	return nil
}

func runTagDelete(cmd *cobra.Command, args []string) error {
	store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	u, err := currentUser(store)
	if err != nil {
		return err
	}

	tag, err := findTag(store, u.ID, args[0])
	if err != nil {
		return err
	}
	if err := store.DeleteTag(u.ID, tag.ID); err != nil {
		return fmt.Errorf("delete tag: %w", err)
	}

	fmt.Printf("Deleted tag %q\n", tag.Name)
	return nil
}

func runTagAttach(cmd *cobra.Command, args []string) error {
	return tagAssociation(args[0], true)
}

func runTagDetach(cmd *cobra.Command, args []string) error {
	return tagAssociation(args[0], false)
}

func tagAssociation(name string, attach bool) error {
	date, err := parseDayFlag(tagDate)
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
	tag, err := findTag(store, u.ID, name)
	if err != nil {
		return err
	}

	if attach {
		if err := store.AttachTag(u.ID, entry.ID, tag.ID); err != nil {
			return fmt.Errorf("attach tag: %w", err)
		}
		fmt.Printf("Tagged %s with %q\n", types.FormatDate(date), tag.Name)
		return nil
	}
	if err := store.DetachTag(u.ID, entry.ID, tag.ID); err != nil {
		return fmt.Errorf("detach tag: %w", err)
	}
	fmt.Printf("Removed %q from %s\n", tag.Name, types.FormatDate(date))
	return nil
}

// findTag resolves a tag by name within the owner's vocabulary.
func findTag(store tagLister, ownerID int64, name string) (*types.Tag, error) {
	tags, err := store.ListTags(ownerID)
	if err != nil {
		return nil, fmt.Errorf("list tags: %w", err)
	}
	for _, t := range tags {
		if t.Name == name {
			return t, nil
		}
	}
	return nil, fmt.Errorf("unknown tag %q", name)
}

type tagLister interface {
	ListTags(ownerID int64) ([]*types.Tag, error)
}
