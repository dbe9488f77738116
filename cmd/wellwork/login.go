package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

// loginCmd represents the login command
var loginCmd = &cobra.Command{
	Use:   "login <username>",
	Short: "Sign in and persist the session locally",
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

		sess, err := env.api.Login(context.Background(), args[0], password)
		if err != nil {
			fatal("Login failed", err)
		}
		if err := env.cache.SaveSession(sess); err != nil {
			fatal("Failed to persist session", err)
		}
		fmt.Printf("Logged in as %s.\n", sess.User.Username)
	},
}

func init() {
	rootCmd.AddCommand(loginCmd)
}
