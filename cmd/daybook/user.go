// User commands: account creation, login check, deletion.
package main

import (
	"fmt"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var userCmd = &cobra.Command{
	Use:   "user",
	Short: "Manage journal accounts",
}

var userPassword string

var userCreateCmd = &cobra.Command{
	Use:   "create <username>",
	Short: "Create an account",
	Long: `Create adds a journal account and seeds its starter content: a
default tag vocabulary, default settings, and a welcome entry.

Example:
  daybook user create ada`,
	Args: cobra.ExactArgs(1),
	RunE: runUserCreate,
}

var userLoginCmd = &cobra.Command{
	Use:   "login <username>",
	Short: "Verify a password and record the login",
	Args:  cobra.ExactArgs(1),
	RunE:  runUserLogin,
}

var userDeleteCmd = &cobra.Command{
	Use:   "delete <username>",
	Short: "Delete an account and everything it owns",
	Args:  cobra.ExactArgs(1),
	RunE:  runUserDelete,
}

func init() {
	userCreateCmd.Flags().StringVar(&userPassword, "password", "", "password (prompted when omitted)")
	userLoginCmd.Flags().StringVar(&userPassword, "password", "", "password (prompted when omitted)")

	userCmd.AddCommand(userCreateCmd)
	userCmd.AddCommand(userLoginCmd)
	userCmd.AddCommand(userDeleteCmd)
}

func runUserCreate(cmd *cobra.Command, args []string) error {
	password, err := readPassword()
	if err != nil {
		return err
	}

	store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	u, err := store.CreateUser(args[0], password)
	if err != nil {
		return fmt.Errorf("create user: %w", err)
	}

	if flagJSON {
		return printJSON(u)
	}
	fmt.Printf("Created account %q\n", u.Username)
	return nil
}

func runUserLogin(cmd *cobra.Command, args []string) error {
	password, err := readPassword()
	if err != nil {
		return err
	}

	store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	u, err := store.VerifyPassword(args[0], password)
	if err != nil {
		return fmt.Errorf("login: %w", err)
	}
	if err := store.RecordLogin(u.ID); err != nil {
		return fmt.Errorf("record login: %w", err)
	}

	if flagJSON {
		return printJSON(u)
	}
	fmt.Printf("Welcome back, %s\n", u.Username)
	return nil
}

func runUserDelete(cmd *cobra.Command, args []string) error {
	store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	u, err := store.GetUserByUsername(args[0])
	if err != nil {
		return fmt.Errorf("user %q: %w", args[0], err)
	}
	if err := store.DeleteUser(u.ID); err != nil {
		return fmt.Errorf("delete user: %w", err)
	}

	fmt.Printf("Deleted account %q and all its data\n", u.Username)
	return nil
}

// readPassword returns the --password flag value, prompting on the
// terminal when the flag is unset.
func readPassword() (string, error) {
	if userPassword != "" {
		return userPassword, nil
	}
	fmt.Print("Password: ")
	raw, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Println()
	if err != nil {
		return "", fmt.Errorf("read password: %w", err)
	}
	return string(raw), nil
}
