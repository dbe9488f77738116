package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rowenbonaobra23-codecode/WellWork/internal/models"
	"github.com/spf13/cobra"
)

var (
	notesJSON    bool
	writeContent string
)

var notesCmd = &cobra.Command{
	Use:   "notes",
	Short: "Work with calendar notes",
}

var notesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List notes, newest first",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		env, err := newEnv(true)
		if err != nil {
			fatal("Failed to initialize client", err)
		}

		notes, err := env.surf.Notes(context.Background())
		if err != nil {
			fatal("Failed to list notes", err)
		}
		printNotes(notes)
		if n := env.queue.Len(); n > 0 {
			fmt.Fprintf(os.Stderr, "%d change(s) pending sync\n", n)
		}
	},
}

var notesWriteCmd = &cobra.Command{
	Use:   "write <date>",
	Short: "Create or replace the note for a date (YYYY-MM-DD)",
	Long: `Create or replace the note for the given date. Content comes from
--content, or from stdin when the flag is omitted. While the server is
unreachable the edit is applied locally and queued for replay.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		date := args[0]
		if _, err := time.Parse("2006-01-02", date); err != nil {
			fatal("Invalid date, want YYYY-MM-DD", err)
		}

		content := writeContent
		if content == "" {
			raw, err := io.ReadAll(os.Stdin)
			if err != nil {
				fatal("Failed to read stdin", err)
			}
			content = strings.TrimRight(string(raw), "\n")
		}

		env, err := newEnv(true)
		if err != nil {
			fatal("Failed to initialize client", err)
		}

		_, queued, err := env.surf.Save(context.Background(), date, content)
		if err != nil {
			fatal("Failed to save note", err)
		}
		if queued {
			fmt.Printf("Note for %s saved locally; will sync when the server is reachable.\n", date)
		} else {
			fmt.Printf("Note for %s saved.\n", date)
		}
	},
}

var notesDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a note by id",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		env, err := newEnv(true)
		if err != nil {
			fatal("Failed to initialize client", err)
		}

		_, queued, err := env.surf.Delete(context.Background(), args[0])
		if err != nil {
			fatal("Failed to delete note", err)
		}
		if queued {
			fmt.Println("Note deleted locally; will sync when the server is reachable.")
		} else {
			fmt.Println("Note deleted.")
		}
	},
}

func init() {
	rootCmd.AddCommand(notesCmd)
	notesCmd.AddCommand(notesListCmd)
	notesCmd.AddCommand(notesWriteCmd)
	notesCmd.AddCommand(notesDeleteCmd)
	notesListCmd.Flags().BoolVar(&notesJSON, "json", false, "Output in JSON format")
	notesWriteCmd.Flags().StringVarP(&writeContent, "content", "c", "", "Note content (reads stdin when omitted)")
}

func printNotes(notes []models.NoteModel) {
	if notesJSON {
		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(notes); err != nil {
			fatal("Failed to encode notes", err)
		}
		return
	}

	if len(notes) == 0 {
		fmt.Println("No notes yet.")
		return
	}
	for _, n := range notes {
		marker := ""
		if n.IsTemp() {
			marker = " (unsynced)"
		}
		fmt.Printf("%s  %s%s\n", n.Date, n.ID, marker)
		for _, line := range strings.Split(n.Content, "\n") {
			fmt.Printf("    %s\n", line)
		}
	}
}
