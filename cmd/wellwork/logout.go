package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// logoutCmd represents the logout command
var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Sign out and wipe local state",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		env, err := newEnv(true)
		if err != nil {
			fatal("Failed to initialize client", err)
		}

		if env.queue.Len() > 0 {
			fmt.Fprintf(os.Stderr, "warning: discarding %d unsynced change(s)\n", env.queue.Len())
		}

		// Best effort: the local session is cleared even if the server
		// is unreachable.
		if err := env.api.Logout(context.Background()); err != nil {
			fmt.Fprintf(os.Stderr, "warning: server logout failed: %v\n", err)
		}

		if err := env.queue.Clear(); err != nil {
			fatal("Failed to clear pending changes", err)
		}
		if err := env.cache.ClearNotes(env.sess.User.ID); err != nil {
			fatal("Failed to clear cached notes", err)
		}
		if err := env.cache.ClearSession(); err != nil {
			fatal("Failed to clear session", err)
		}
		fmt.Println("Logged out.")
	},
}

func init() {
	rootCmd.AddCommand(logoutCmd)
}
