package main

import (
	"context"
	"fmt"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// registerCmd represents the register command
var registerCmd = &cobra.Command{
	Use:   "register <username>",
	Short: "Create an account on the server",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		env, err := newEnv(false)
		if err != nil {
			fatal("Failed to initialize client", err)
		}

		password, err := promptPassword("Password: ")
		if err != nil {
			fatal("Failed to read password", err)
		}

		if err := env.api.Register(context.Background(), args[0], password); err != nil {
			fatal("Registration failed", err)
		}
		fmt.Printf("Account '%s' created. Run `wellwork login %s` to sign in.\n", args[0], args[0])
	},
}

func init() {
	rootCmd.AddCommand(registerCmd)
}

func promptPassword(label string) (string, error) {
	fmt.Print(label)
	raw, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Println()
	if err != nil {
		return "", err
	}
	return string(raw), nil
}
