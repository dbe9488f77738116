package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rowenbonaobra23-codecode/WellWork/internal/client/monitor"
	"github.com/rowenbonaobra23-codecode/WellWork/internal/client/reminder"
	"github.com/spf13/cobra"
)

var watchInterval time.Duration

// watchCmd represents the watch command
var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Keep notes in sync and surface wellness nudges",
	Long: `Run in the foreground: probe the server periodically, replay queued
changes whenever connectivity returns, and print a wellness tip now and
then. Stop with Ctrl-C.`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		env, err := newEnv(true)
		if err != nil {
			fatal("Failed to initialize client", err)
		}

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		env.sync.Start(ctx)
		mon := monitor.New(env.api.Health,
			monitor.WithInterval(watchInterval),
			monitor.WithLogger(env.logger.Named("monitor")),
			monitor.OnTransition(func(from, to monitor.State) {
				fmt.Printf("connectivity: %s -> %s\n", from, to)
				env.sync.HandleTransition(from, to)
			}),
		)
		mon.Start(ctx)

		rem := reminder.New(env.api, func(tip string) {
			fmt.Printf("\n[wellness] %s\n", tip)
		}, reminder.WithLogger(env.logger.Named("reminder")))
		rem.Start(ctx)

		fmt.Printf("Watching as %s; press Ctrl-C to stop.\n", env.sess.User.Username)

		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		<-quit

		cancel()
		<-mon.Done()
		env.sync.Wait()
		fmt.Println("Stopped.")
	},
}

func init() {
	rootCmd.AddCommand(watchCmd)
	watchCmd.Flags().DurationVar(&watchInterval, "interval", monitor.DefaultInterval, "Connectivity probe interval")
}
