package cmd

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/abhisek/dugout/internal/factgraph"
	"github.com/abhisek/dugout/internal/llm"
	"github.com/abhisek/dugout/internal/service"
	"github.com/abhisek/dugout/internal/store"
)

// runtime holds the collaborators a command runs against.
type runtime struct {
	store    *store.Store // nil for stateless commands
	facts    *factgraph.Store
	provider llm.Provider // nil when no LLM is configured
	service  *service.Service
}

// Close releases the database.
func (r *runtime) Close() error {
	if r.store == nil {
		return nil
	}
	return r.store.Close()
}

// loadFacts reads the configured scenario file, or the built-in facts.
func loadFacts() (*factgraph.Store, error) {
	if cfg.Situations == "" {
		return factgraph.Seed(), nil
	}
	facts, err := factgraph.LoadFile(cfg.Situations)
	if err != nil {
		return nil, fmt.Errorf("load situations: %w", err)
	}
	return facts, nil
}

// resolveProvider builds the LLM provider, or returns nil when none is
// configured. LLM events are recorded when events is non-nil.
func resolveProvider(ctx context.Context, events store.EventRepo) (llm.Provider, error) {
	llmCfg, ok, err := llm.Resolve()
	if err != nil {
		return nil, err
	}
	if !ok {
		logger.Info("no LLM provider configured, using rule questions and fuzzy grading")
		return nil, nil
	}
	p, err := llm.NewProvider(ctx, llmCfg, events, logger)
	if err != nil {
		return nil, err
	}
	logger.Info("LLM provider ready", zap.String("provider", llmCfg.Provider), zap.String("model", p.ModelID()))
	return p, nil
}

// openRuntime opens the store, loads facts, and wires the service. With
// stateless set no database is opened and nothing is persisted.
func openRuntime(ctx context.Context, stateless bool) (*runtime, error) {
	facts, err := loadFacts()
	if err != nil {
		return nil, err
	}
	rt := &runtime{facts: facts}

	opts := service.Options{Facts: facts, Log: logger}
	var events store.EventRepo
	if !stateless {
		if rt.store, err = openStore(); err != nil {
			return nil, err
		}
		events = rt.store.EventRepo()
		opts.Players = rt.store.PlayerRepo()

		sessions := store.NewTee(rt.store.SessionRepo())
		if cfg.LogDir != "" {
			daily, err := store.NewDailyLog(cfg.LogDir)
			if err != nil {
				rt.Close()
				return nil, err
			}
			sessions.Add(daily)
		}
		opts.Sessions = sessions
	}

	if rt.provider, err = resolveProvider(ctx, events); err != nil {
		rt.Close()
		return nil, fmt.Errorf("LLM provider: %w", err)
	}
	opts.Questions, opts.Evaluator = service.Collaborators(cfg.Evaluator, rt.provider, logger)

	rt.service = service.New(opts)
	logger.Debug("runtime ready",
		zap.Int("facts", facts.Len()),
		zap.Int("scenarios", len(facts.Scenarios())),
		zap.Bool("stateless", stateless))
	return rt, nil
}
