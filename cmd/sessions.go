package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/dugout/internal/store"
)

var sessionsCmd = &cobra.Command{
	Use:   "sessions",
	Short: "Inspect logged sessions",
}

var sessionsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recently resolved sessions",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		player, _ := cmd.Flags().GetString("player")

		s, err := openStore()
		if err != nil {
			return err
		}
		defer s.Close()

		opts := store.QueryOpts{Limit: limit}
		if player != "" {
			// Filtering happens after the query.
			opts.Limit = 0
		}
		records, err := s.SessionRepo().ListSessions(cmd.Context(), opts)
		if err != nil {
			return fmt.Errorf("query sessions: %w", err)
		}

		fmt.Printf("%-19s  %-10s  %-16s  %-32s  %5s  %s\n",
			"Timestamp", "Player", "Position", "Game State", "Turns", "Outcome")
		fmt.Println(strings.Repeat("─", 105))

		shown := 0
		for _, r := range records {
			if player != "" && r.Player != player {
				continue
			}
			if limit > 0 && shown == limit {
				break
			}
			shown++
			who := r.Player
			if who == "" {
				who = "-"
			}
			fmt.Printf("%-19s  %-10s  %-16s  %-32s  %5d  %s\n",
				r.Timestamp.Local().Format(timeLayout),
				truncate(who, 10),
				truncate(r.Position, 16),
				truncate(r.GameState, 32),
				max(len(r.Conversation)-1, 0),
				r.Outcome,
			)
		}

		if shown == 0 {
			fmt.Println("No sessions found.")
		}
		return nil
	},
}

func init() {
	sessionsListCmd.Flags().IntP("limit", "n", 20, "Number of sessions to show")
	sessionsListCmd.Flags().String("player", "", "Only show sessions for this player")

	sessionsCmd.AddCommand(sessionsListCmd)
}
