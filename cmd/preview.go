package cmd

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/abhisek/dugout/internal/decision"
	"github.com/abhisek/dugout/internal/evaluate"
	"github.com/abhisek/dugout/internal/service"
)

var previewCmd = &cobra.Command{
	Use:   "preview",
	Short: "Play a few situations line by line (no database)",
	Long: `Play situations on plain stdin/stdout without the TUI.

This is a stateless developer tool: nothing is written to the database.
Useful for judging question and feedback quality with a given provider.`,
	RunE: runPreview,
}

func init() {
	previewCmd.Flags().Int("count", 3, "Number of situations to play")
}

func runPreview(cmd *cobra.Command, args []string) error {
	count, _ := cmd.Flags().GetInt("count")
	if count < 1 {
		return fmt.Errorf("--count must be at least 1")
	}

	ctx := cmd.Context()
	rt, err := openRuntime(ctx, true)
	if err != nil {
		return err
	}
	defer rt.Close()

	return previewLoop(ctx, rt.service, count, os.Stdin, cmd.OutOrStdout())
}

func previewLoop(ctx context.Context, svc *service.Service, count int, in io.Reader, out io.Writer) error {
	scanner := bufio.NewScanner(in)

	st, err := svc.StartGame(ctx, "")
	if err != nil {
		return fmt.Errorf("start game: %w", err)
	}
	defer svc.EndGame(st.GameID)

	var played, runs int
	for played < count {
		sess := st.Session
		if sess == nil {
			return fmt.Errorf("game %s has no session", st.GameID)
		}

		fmt.Fprintf(out, "── Situation %d/%d ──\n", played+1, count)
		fmt.Fprintf(out, "You're playing %s. %s\n", sess.Scenario.Role,
			decision.DescribeGameState(svc.Facts(), sess.Scenario.GameState))
		fmt.Fprintln(out, sess.Question())

		for turn := sess.NextTurn(); ; turn++ {
			fmt.Fprint(out, "\nYour answer: ")
			if !scanner.Scan() {
				fmt.Fprintln(out, "\n(input closed)")
				fmt.Fprintf(out, "── Summary: %d runs in %d situations ──\n", runs, played)
				return scanner.Err()
			}
			res, err := svc.SubmitAnswer(ctx, st.GameID, turn, scanner.Text())
			if err != nil {
				fmt.Fprintf(out, "could not grade that answer: %v\n", err)
				turn--
				continue
			}

			switch {
			case res.Verdict == evaluate.VerdictCorrect:
				runs++
				fmt.Fprintln(out, "\033[32m✓ Safe!\033[0m")
			case res.Resolved:
				fmt.Fprintln(out, "\033[31m✗ Strike three.\033[0m")
			default:
				fmt.Fprintf(out, "Strike %d.\n", res.Strikes)
			}
			if res.Feedback != "" {
				fmt.Fprintln(out, res.Feedback)
			}
			if res.Explanation != "" {
				fmt.Fprintf(out, "Explanation: %s\n", res.Explanation)
			}
			if res.Resolved {
				break
			}
		}

		played++
		fmt.Fprintln(out)
		if played == count {
			break
		}
		if st, err = svc.NextPlay(ctx, st.GameID); err != nil {
			return fmt.Errorf("next play: %w", err)
		}
		if st.Progress.GameOver {
			break
		}
	}

	fmt.Fprintf(out, "── Summary: %d runs in %d situations ──\n", runs, played)
	return nil
}
