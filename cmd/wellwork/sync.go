package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

// syncCmd represents the sync command
var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Replay pending changes and refresh the local cache",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		env, err := newEnv(true)
		if err != nil {
			fatal("Failed to initialize client", err)
		}

		pending := env.queue.Len()
		if err := env.sync.Reconcile(context.Background()); err != nil {
			fatal("Sync failed", err)
		}
		fmt.Printf("Sync complete: %d change(s) replayed, %d still pending.\n",
			pending-env.queue.Len(), env.queue.Len())
	},
}

func init() {
	rootCmd.AddCommand(syncCmd)
}
