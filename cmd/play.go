package cmd

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/abhisek/dugout/internal/app"
)

var playCmd = &cobra.Command{
	Use:         "play",
	Short:       "Play a nine-inning game in the terminal",
	Annotations: map[string]string{annotationTUI: "true"},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runTUI(cmd)
	},
}

func init() {
	playCmd.Flags().String("player", "", "Player name (overrides DUGOUT_PLAYER env var)")
}

// runTUI opens the runtime and launches the TUI.
func runTUI(cmd *cobra.Command) error {
	rt, err := openRuntime(cmd.Context(), false)
	if err != nil {
		return err
	}
	defer rt.Close()

	player := cfg.Player
	if p, _ := cmd.Flags().GetString("player"); p != "" {
		player = p
	}
	logger.Info("starting tui", zap.String("player", player))

	return app.Run(app.Options{
		Service:  rt.service,
		Sessions: rt.store.SessionRepo(),
		Player:   player,
		LLMReady: rt.provider != nil,
		Log:      logger,
	})
}
