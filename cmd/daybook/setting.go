package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var settingCmd = &cobra.Command{
	Use:   "setting",
	Short: "Per-user settings",
}

var settingSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a setting, creating or overwriting it",
	Args:  cobra.ExactArgs(2),
	RunE:  runSettingSet,
}

var settingGetCmd = &cobra.Command{
	Use:   "get <key>",
	Short: "Print a setting's value",
	Args:  cobra.ExactArgs(1),
	RunE:  runSettingGet,
}

var settingListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all settings",
	RunE:  runSettingList,
}

func init() {
	settingCmd.AddCommand(settingSetCmd)
	settingCmd.AddCommand(settingGetCmd)
	settingCmd.AddCommand(settingListCmd)
}

func runSettingSet(cmd *cobra.Command, args []string) error {
	store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	u, err := currentUser(store)
	if err != nil {
		return err
	}

	setting, err := store.SetSetting(u.ID, args[0], args[1])
	if err != nil {
		return fmt.Errorf("set setting: %w", err)
	}

	if flagJSON {
		return printJSON(setting)
	}
	fmt.Printf("%s = %s\n", setting.Key, setting.Value)
	return nil
}

func runSettingGet(cmd *cobra.Command, args []string) error {
	store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	u, err := currentUser(store)
	if err != nil {
		return err
	}

	setting, err := store.GetSetting(u.ID, args[0])
	if err != nil {
		return fmt.Errorf("get setting: %w", err)
	}

	if flagJSON {
		return printJSON(setting)
	}
	fmt.Println(setting.Value)
	return nil
}

func runSettingList(cmd *cobra.Command, args []string) error {
	store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	u, err := currentUser(store)
	if err != nil {
		return err
	}

	settings, err := store.ListSettings(u.ID)
	if err != nil {
		return fmt.Errorf("list settings: %w", err)
	}

	if flagJSON {
		return printJSON(settings)
	}
	for _, s := range settings {
		fmt.Printf("%-20s %s\n", s.Key, s.Value)
	}
	return nil
}
