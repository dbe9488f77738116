package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

// chatCmd represents the chat command
var chatCmd = &cobra.Command{
	Use:   "chat [message]",
	Short: "Talk to the companion bot",
	Long: `Send one message to the companion bot, or start an interactive
session when no message is given. Type "bye" or press Ctrl-D to leave.`,
	Run: func(cmd *cobra.Command, args []string) {
		env, err := newEnv(true)
		if err != nil {
			fatal("Failed to initialize client", err)
		}
		ctx := context.Background()

		if len(args) > 0 {
			reply, err := env.api.Chat(ctx, strings.Join(args, " "))
			if err != nil {
				fatal("Chat failed", err)
			}
			fmt.Println(reply)
			return
		}

		scanner := bufio.NewScanner(os.Stdin)
		fmt.Print("> ")
		for scanner.Scan() {
			msg := strings.TrimSpace(scanner.Text())
			if msg == "" {
				fmt.Print("> ")
				continue
			}
			reply, err := env.api.Chat(ctx, msg)
			if err != nil {
				fatal("Chat failed", err)
			}
			fmt.Println(reply)
			if strings.EqualFold(msg, "bye") {
				return
			}
			fmt.Print("> ")
		}
	},
}

func init() {
	rootCmd.AddCommand(chatCmd)
}
