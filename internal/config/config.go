package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Evaluator strategies.
const (
	EvaluatorLLM   = "llm"
	EvaluatorFuzzy = "fuzzy"
)

// Config is the process configuration read from DUGOUT_* variables.
// Command-line flags override it.
type Config struct {
	// DBPath is the SQLite database file. Empty means store.DefaultDBPath.
	DBPath string `env:"DUGOUT_DB"`

	// Situations is a YAML scenario file. Empty uses the built-in facts.
	Situations string `env:"DUGOUT_SITUATIONS"`

	// Evaluator picks the primary answer evaluator. With "llm" the fuzzy
	// matcher is kept as the fallback.
	Evaluator string `env:"DUGOUT_EVALUATOR" envDefault:"llm"`

	// LogDir receives per-day JSONL session logs. Empty disables them.
	LogDir string `env:"DUGOUT_LOG_DIR"`

	// Player is the default player name for the TUI.
	Player string `env:"DUGOUT_PLAYER"`
}

// Load parses the environment.
func Load() (Config, error) {
	return parse(env.Options{})
}

// LoadFrom parses the given environment instead of the process one.
func LoadFrom(environ map[string]string) (Config, error) {
	return parse(env.Options{Environment: environ})
}

func parse(opts env.Options) (Config, error) {
	var cfg Config
	if err := env.ParseWithOptions(&cfg, opts); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks enumerated values.
func (c Config) Validate() error {
	switch c.Evaluator {
	case EvaluatorLLM, EvaluatorFuzzy:
		return nil
	default:
		return fmt.Errorf("DUGOUT_EVALUATOR must be %q or %q, got %q", EvaluatorLLM, EvaluatorFuzzy, c.Evaluator)
	}
}
