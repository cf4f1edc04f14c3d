package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/pushcore/internal/core"
)

var flagJournalLimit int

var journalCmd = &cobra.Command{
	Use:   "journal",
	Short: "Inspect journaled sessions",
	Long: `List, show and export sessions recorded by 'pushcore run --journal'.

Examples:
  pushcore journal list
  pushcore journal show 3f1c...
  pushcore journal export 3f1c... ./session.jsonl.zst`,
}

var journalListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recent sessions",
	Args:  cobra.NoArgs,
	RunE:  runJournalList,
}

var journalShowCmd = &cobra.Command{
	Use:   "show <session>",
	Short: "Show the moves and push events of a session",
	Args:  cobra.ExactArgs(1),
	RunE:  runJournalShow,
}

var journalExportCmd = &cobra.Command{
	Use:   "export <session> <file>",
	Short: "Export a session as zstd-compressed JSONL",
	Args:  cobra.ExactArgs(2),
	RunE:  runJournalExport,
}

var journalDeleteCmd = &cobra.Command{
	Use:   "delete <session>",
	Short: "Delete a session",
	Args:  cobra.ExactArgs(1),
	RunE:  runJournalDelete,
}

func init() {
	journalListCmd.Flags().IntVar(&flagJournalLimit, "limit", 20, "Number of sessions to show")

	journalCmd.AddCommand(journalListCmd)
	journalCmd.AddCommand(journalShowCmd)
	journalCmd.AddCommand(journalExportCmd)
	journalCmd.AddCommand(journalDeleteCmd)
}

func runJournalList(cmd *cobra.Command, args []string) error {
	store, err := openConfiguredJournal()
	if err != nil {
		return err
	}
	defer store.Close()

	sessions, err := store.Sessions(flagJournalLimit)
	if err != nil {
		return err
	}
	if len(sessions) == 0 {
		fmt.Println("No sessions recorded yet.")
		fmt.Println()
		fmt.Println("Run 'pushcore run <scenario> --journal' to record one.")
		return nil
	}

	// Print header
	fmt.Printf("  %-36s  %-20s  %-7s  %-6s  %s\n", "Session", "Scenario", "Size", "Ticks", "Started")
	fmt.Printf("  %-36s  %-20s  %-7s  %-6s  %s\n", "-------", "--------", "----", "-----", "-------")

	for _, s := range sessions {
		size := fmt.Sprintf("%dx%d", s.Width, s.Height)
		fmt.Printf("  %-36s  %-20s  %-7s  %-6d  %s\n",
			s.ID, s.Scenario, size, s.Ticks, s.StartedAt.Format("2006-01-02 15:04"))
	}
	return nil
}

func runJournalShow(cmd *cobra.Command, args []string) error {
	store, err := openConfiguredJournal()
	if err != nil {
		return err
	}
	defer store.Close()

	sess, err := store.SessionByID(args[0])
	if err != nil {
		return err
	}
	ticks, err := store.Ticks(sess.ID)
	if err != nil {
		return err
	}
	moves, err := store.Moves(sess.ID)
	if err != nil {
		return err
	}
	events, err := store.PushEvents(sess.ID)
	if err != nil {
		return err
	}

	fmt.Printf("Session %s - %s (%dx%d, %d ticks)\n", sess.ID, sess.Scenario, sess.Width, sess.Height, sess.Ticks)
	fmt.Println()

	fmt.Printf("  %-5s  %-8s  %-6s  %s\n", "Tick", "History", "Moves", "Sublimated")
	fmt.Printf("  %-5s  %-8s  %-6s  %s\n", "----", "-------", "-----", "----------")
	for _, tk := range ticks {
		cmdName := tk.History
		if cmdName == "" {
			cmdName = "-"
		}
		fmt.Printf("  %-5d  %-8s  %-6d  %s\n", tk.Tick, cmdName, tk.Moves, formatIDs(tk.Sublimated))
	}
	fmt.Println()

	fmt.Printf("  %-5s  %-7s  %-6s  %-9s  %s\n", "Tick", "Entity", "Dir", "Result", "Moved")
	fmt.Printf("  %-5s  %-7s  %-6s  %-9s  %s\n", "----", "------", "---", "------", "-----")
	for _, m := range moves {
		result := "blocked"
		switch {
		case m.Missing:
			result = "missing"
		case m.Accepted:
			result = "accepted"
		}
		fmt.Printf("  %-5d  #%-6d  %-6s  %-9s  %s\n", m.Tick, m.Entity, m.Direction, result, formatIDs(m.Moved))
	}

	if len(events) > 0 {
		fmt.Println()
		fmt.Println("Push events:")
		for _, ev := range events {
			fmt.Printf("  tick %d: #%d %s pushed %v\n", ev.Tick, ev.Pusher, ev.Direction, ev.Pushed)
		}
	}
	return nil
}

func formatIDs(ids []core.EntityID) string {
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = fmt.Sprintf("#%d", id)
	}
	return strings.Join(out, " ")
}

func runJournalExport(cmd *cobra.Command, args []string) error {
	store, err := openConfiguredJournal()
	if err != nil {
		return err
	}
	defer store.Close()

	n, err := store.Export(args[0], args[1])
	if err != nil {
		return err
	}
	fmt.Printf("Exported %d moves to %s\n", n, args[1])
	return nil
}

func runJournalDelete(cmd *cobra.Command, args []string) error {
	store, err := openConfiguredJournal()
	if err != nil {
		return err
	}
	defer store.Close()

	if _, err := store.SessionByID(args[0]); err != nil {
		return err
	}
	if err := store.DeleteSession(args[0]); err != nil {
		return err
	}
	fmt.Printf("Deleted session %s\n", args[0])
	return nil
}
