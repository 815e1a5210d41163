package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/dugout/internal/decision"
	"github.com/abhisek/dugout/internal/factgraph"
)

var situationsCmd = &cobra.Command{
	Use:   "situations",
	Short: "Browse and validate game situations",
}

var situationsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List every position / game state pair (optionally filtered by position)",
	RunE: func(cmd *cobra.Command, args []string) error {
		position, _ := cmd.Flags().GetString("position")

		facts, err := loadFacts()
		if err != nil {
			return err
		}

		var rows []factgraph.Scenario
		for _, sc := range facts.Scenarios() {
			if position == "" || strings.EqualFold(sc.Role, position) {
				rows = append(rows, sc)
			}
		}
		if len(rows) == 0 {
			if position != "" {
				return fmt.Errorf("no situations found for position %q", position)
			}
			fmt.Println("No situations found.")
			return nil
		}

		// Header.
		fmt.Printf("%-16s  %-32s  %s\n", "Position", "Game State", "Play")
		fmt.Println(strings.Repeat("─", 90))

		for _, sc := range rows {
			dc := decision.RichContext(facts, sc.Role, sc.GameState)
			play := dc.Play
			if play == "" {
				play = "-"
			}
			fmt.Printf("%-16s  %-32s  %s\n", sc.Role, truncate(sc.GameState, 32), play)
		}

		fmt.Printf("\n%d situations\n", len(rows))
		return nil
	},
}

var situationsValidateCmd = &cobra.Command{
	Use:   "validate <file>",
	Short: "Check a scenario file without loading it",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		facts, err := factgraph.LoadFile(args[0])
		if err != nil {
			var verr *factgraph.ValidationError
			if errors.As(err, &verr) {
				fmt.Printf("%d invalid records:\n", len(verr.Records))
				for _, r := range verr.Records {
					fmt.Println("  " + r.String())
				}
				return fmt.Errorf("%s is invalid", args[0])
			}
			return err
		}
		fmt.Printf("%s: OK (%d facts, %d situations)\n", args[0], facts.Len(), len(facts.Scenarios()))
		return nil
	},
}

var situationsShowCmd = &cobra.Command{
	Use:   "show <position> <game_state>",
	Short: "Show the decision context and rule questions for a situation",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		facts, err := loadFacts()
		if err != nil {
			return err
		}
		role, gs := args[0], args[1]
		dc := decision.RichContext(facts, role, gs)

		sep := strings.Repeat("─", 60)

		fmt.Printf("Position:  %s\n", role)
		fmt.Printf("Situation: %s\n", decision.DescribeGameState(facts, gs))
		if !dc.HasPlay() {
			fmt.Println("Play:      (none)")
			return nil
		}
		fmt.Printf("Play:      %s\n", dc.Play)

		fmt.Println()
		fmt.Println(sep)
		fmt.Println("RECOMMENDED ACTIONS")
		fmt.Println(sep)
		for _, a := range dc.RecommendedActions {
			fmt.Printf("%2d. %s\n", a.Rank, a.Action)
		}

		if len(dc.KeyConcepts) > 0 {
			fmt.Println(sep)
			fmt.Println("KEY CONCEPTS")
			fmt.Println(sep)
			fmt.Println(strings.Join(dc.KeyConcepts, ", "))
		}

		if dc.Explanation != "" {
			fmt.Println(sep)
			fmt.Println("EXPLANATION")
			fmt.Println(sep)
			fmt.Println(dc.Explanation)
		}

		if qs := decision.RuleQuestions(facts, role, gs); len(qs) > 0 {
			fmt.Println(sep)
			fmt.Println("RULE QUESTIONS")
			fmt.Println(sep)
			for _, q := range qs {
				fmt.Println("- " + q)
			}
		}

		if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
			fmt.Println(sep)
			fmt.Println("RELATED KNOWLEDGE")
			fmt.Println(sep)
			for _, k := range decision.RelatedKnowledge(facts, role, gs) {
				fmt.Println(k)
			}
		}
		return nil
	},
}

func init() {
	situationsListCmd.Flags().String("position", "", "Filter by position (e.g. Shortstop)")

	situationsCmd.AddCommand(situationsListCmd)
	situationsCmd.AddCommand(situationsValidateCmd)
	situationsCmd.AddCommand(situationsShowCmd)
}
