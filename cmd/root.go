package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/abhisek/dugout/internal/config"
	"github.com/abhisek/dugout/internal/store"
)

// annotationTUI marks commands that own the terminal. Their logs go to a
// file instead of stderr.
const annotationTUI = "dugout/tui"

var (
	cfg    config.Config
	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "dugout",
	Short: "Socratic baseball coach",
	Long: `Dugout teaches youth players where to be and what to do on the field.
It poses a game situation, asks what you would do, and coaches you toward
the right play with questions instead of answers.`,
	Annotations:   map[string]string{annotationTUI: "true"},
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		if cfg, err = config.Load(); err != nil {
			return err
		}
		if p, _ := cmd.Flags().GetString("db"); p != "" {
			cfg.DBPath = p
		}
		if p, _ := cmd.Flags().GetString("situations"); p != "" {
			cfg.Situations = p
		}

		verbose, _ := cmd.Flags().GetBool("verbose")
		logger, err = buildLogger(verbose, cmd.Annotations[annotationTUI] != "")
		if err != nil {
			return fmt.Errorf("init logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runTUI(cmd)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides DUGOUT_DB env var)")
	rootCmd.PersistentFlags().String("situations", "", "YAML scenario file (overrides DUGOUT_SITUATIONS env var)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable debug logging")
	rootCmd.Flags().String("player", "", "Player name (overrides DUGOUT_PLAYER env var)")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(previewCmd)
	rootCmd.AddCommand(mcpCmd)
	rootCmd.AddCommand(situationsCmd)
	rootCmd.AddCommand(playerCmd)
	rootCmd.AddCommand(sessionsCmd)
	rootCmd.AddCommand(llmCmd)
	rootCmd.AddCommand(versionCmd)
}

// buildLogger returns a production logger. TUI commands log to
// <data>/dugout/dugout.log so the screen stays clean.
func buildLogger(verbose, tui bool) (*zap.Logger, error) {
	zcfg := zap.NewProductionConfig()
	if verbose {
		zcfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	if tui {
		path, err := logFilePath()
		if err != nil {
			return nil, err
		}
		zcfg.OutputPaths = []string{path}
		zcfg.ErrorOutputPaths = []string{path}
	}
	return zcfg.Build()
}

func logFilePath() (string, error) {
	dir, err := store.DefaultLogDir()
	if err != nil {
		return "", err
	}
	path := filepath.Join(filepath.Dir(dir), "dugout.log")
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", fmt.Errorf("create log dir: %w", err)
	}
	return path, nil
}

// resolveDBPath returns the database path using --db / DUGOUT_DB first,
// then the default XDG path.
func resolveDBPath() (string, error) {
	if cfg.DBPath != "" {
		return cfg.DBPath, store.EnsureDir(cfg.DBPath)
	}
	return store.DefaultDBPath()
}

// openStore opens the configured database.
func openStore() (*store.Store, error) {
	dbPath, err := resolveDBPath()
	if err != nil {
		return nil, fmt.Errorf("resolve database path: %w", err)
	}
	s, err := store.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	return s, nil
}
