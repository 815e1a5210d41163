package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/dugout/internal/store"
)

var playerCmd = &cobra.Command{
	Use:   "player",
	Short: "Inspect player profiles",
}

var playerShowCmd = &cobra.Command{
	Use:   "show <name>",
	Short: "Show a player's mastered and struggled concepts",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		asJSON, _ := cmd.Flags().GetBool("json")

		s, err := openStore()
		if err != nil {
			return err
		}
		defer s.Close()

		p, err := s.PlayerRepo().Get(cmd.Context(), args[0])
		if errors.Is(err, store.ErrNotFound) {
			return fmt.Errorf("player %q not found", args[0])
		}
		if err != nil {
			return fmt.Errorf("get player: %w", err)
		}

		if asJSON {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(p)
		}

		fmt.Printf("Player:      %s\n", p.Name)
		if p.LastActive != nil {
			fmt.Printf("Last active: %s\n", p.LastActive.Local().Format(timeLayout))
		}
		fmt.Printf("Plays seen:  %d\n", len(p.History))
		fmt.Printf("Mastered:    %s\n", joinOrDash(p.MasteredConcepts))
		fmt.Printf("Working on:  %s\n", joinOrDash(p.StruggledConcepts))

		if len(p.History) == 0 {
			return nil
		}

		fmt.Println()
		fmt.Printf("%-19s  %-16s  %-32s  %s\n", "Timestamp", "Position", "Game State", "Concepts")
		fmt.Println(strings.Repeat("─", 100))
		for _, h := range p.History {
			fmt.Printf("%-19s  %-16s  %-32s  %s\n",
				h.Timestamp.Local().Format(timeLayout),
				truncate(h.Position, 16),
				truncate(h.GameState, 32),
				strings.Join(h.Concepts, ", "))
		}
		return nil
	},
}

func joinOrDash(v []string) string {
	if len(v) == 0 {
		return "-"
	}
	return strings.Join(v, ", ")
}

func init() {
	playerShowCmd.Flags().Bool("json", false, "Print the profile as JSON")

	playerCmd.AddCommand(playerShowCmd)
}
