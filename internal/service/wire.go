package service

import (
	"go.uber.org/zap"

	"github.com/abhisek/dugout/internal/config"
	"github.com/abhisek/dugout/internal/evaluate"
	"github.com/abhisek/dugout/internal/llm"
	"github.com/abhisek/dugout/internal/questiongen"
)

// Collaborators builds the question generator and evaluator for strategy.
// provider may be nil, in which case no generator is returned and answers
// are matched fuzzily whatever the strategy.
func Collaborators(strategy string, provider llm.Provider, log *zap.Logger) (questiongen.Generator, evaluate.Evaluator) {
	if provider == nil {
		if strategy == config.EvaluatorLLM && log != nil {
			log.Info("no LLM provider configured, using fuzzy evaluator")
		}
		return nil, evaluate.FuzzyEvaluator{}
	}

	gen := questiongen.New(provider, questiongen.DefaultConfig())
	if strategy == config.EvaluatorFuzzy {
		return gen, evaluate.FuzzyEvaluator{}
	}
	return gen, &evaluate.FallbackEvaluator{
		Primary:  evaluate.NewLLMEvaluator(provider, evaluate.DefaultLLMConfig()),
		Fallback: evaluate.FuzzyEvaluator{},
		Log:      log,
	}
}
