package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

// statusCmd represents the status command
var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show server reachability and local sync state",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		env, err := newEnv(false)
		if err != nil {
			fatal("Failed to initialize client", err)
		}

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		fmt.Printf("Server:  %s\n", serverURL)
		if err := env.api.Health(ctx); err != nil {
			fmt.Printf("Health:  unreachable (%v)\n", err)
		} else {
			fmt.Println("Health:  ok")
		}

		if env.queue == nil {
			fmt.Println("Session: not logged in")
			return
		}
		fmt.Printf("Session: %s\n", env.sess.User.Username)
		fmt.Printf("Pending: %d change(s)\n", env.queue.Len())
		fmt.Printf("Cached:  %d note(s)\n", len(env.cache.LoadNotes(env.sess.User.ID)))
	},
}

func init() {
	rootCmd.AddCommand(statusCmd)
}
