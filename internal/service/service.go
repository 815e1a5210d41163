package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/abhisek/dugout/internal/decision"
	"github.com/abhisek/dugout/internal/evaluate"
	"github.com/abhisek/dugout/internal/factgraph"
	"github.com/abhisek/dugout/internal/game"
	"github.com/abhisek/dugout/internal/questiongen"
	"github.com/abhisek/dugout/internal/store"
)

// ErrInvalidArgument is returned for requests missing required fields.
var ErrInvalidArgument = errors.New("invalid argument")

// Options wires a Service.
type Options struct {
	Facts     *factgraph.Store
	Questions questiongen.Generator // optional
	Evaluator evaluate.Evaluator
	Players   store.PlayerRepo  // optional
	Sessions  store.SessionRepo // optional
	Log       *zap.Logger
}

// Service implements the coaching operations shared by every surface.
type Service struct {
	facts     *factgraph.Store
	questions questiongen.Generator
	evaluator evaluate.Evaluator
	players   store.PlayerRepo
	games     *game.Registry
	log       *zap.Logger
}

// New creates a Service.
func New(opts Options) *Service {
	if opts.Log == nil {
		opts.Log = zap.NewNop()
	}
	s := &Service{
		facts:     opts.Facts,
		questions: opts.Questions,
		evaluator: opts.Evaluator,
		players:   opts.Players,
		log:       opts.Log,
	}
	gcfg := game.Config{
		Facts:     opts.Facts,
		Questions: opts.Questions,
		Evaluator: opts.Evaluator,
		Sessions:  opts.Sessions,
		Log:       opts.Log.Named("game"),
	}
	if opts.Players != nil {
		gcfg.Profiles = opts.Players
	}
	s.games = game.NewRegistry(gcfg)
	return s
}

// Facts returns the fact store the service reads.
func (s *Service) Facts() *factgraph.Store { return s.facts }

type HealthResponse struct {
	Status string `json:"status"`
}

func (s *Service) Health(context.Context) HealthResponse {
	return HealthResponse{Status: "ok"}
}

// Situation is a scenario as exposed on the wire.
type Situation struct {
	Position  string `json:"position"`
	GameState string `json:"game_state"`
}

// RandomSituation returns a uniformly drawn scenario.
func (s *Service) RandomSituation(context.Context) (Situation, error) {
	sc, err := s.facts.RandomResponsibilityPair(nil)
	if err != nil {
		return Situation{}, err
	}
	return Situation{Position: sc.Role, GameState: sc.GameState}, nil
}

// Situations lists every scenario in declaration order.
func (s *Service) Situations() []Situation {
	scs := s.facts.Scenarios()
	out := make([]Situation, len(scs))
	for i, sc := range scs {
		out[i] = Situation{Position: sc.Role, GameState: sc.GameState}
	}
	return out
}

// Context returns the decision context for a scenario.
func (s *Service) Context(position, gameState string) decision.Context {
	return decision.RichContext(s.facts, position, gameState)
}

type QuestionRequest struct {
	Player    string `json:"player_name,omitempty"`
	Position  string `json:"position"`
	GameState string `json:"game_state"`
}

type QuestionResponse struct {
	Player           string   `json:"player,omitempty"`
	Position         string   `json:"position"`
	GameState        string   `json:"game_state"`
	RelatedKnowledge string   `json:"related_knowledge"`
	Questions        []string `json:"questions"`
	LLMQuestion      string   `json:"llm_question"`
}

// Question returns the rule questions and the generated question for a
// scenario. A scenario without a play, or a service without a generator,
// has an empty LLMQuestion. A generator failure fails the call.
func (s *Service) Question(ctx context.Context, req QuestionRequest) (QuestionResponse, error) {
	if req.Position == "" || req.GameState == "" {
		return QuestionResponse{}, fmt.Errorf("%w: position and game_state are required", ErrInvalidArgument)
	}

	resp := QuestionResponse{
		Player:    req.Player,
		Position:  req.Position,
		GameState: req.GameState,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		resp.RelatedKnowledge = decision.JoinKnowledge(decision.RelatedKnowledge(s.facts, req.Position, req.GameState))
		resp.Questions = decision.RuleQuestions(s.facts, req.Position, req.GameState)
		return nil
	})

	var llmQuestion string
	if s.questions != nil {
		dc := decision.RichContext(s.facts, req.Position, req.GameState)
		if dc.HasPlay() {
			g.Go(func() error {
				q, err := s.questions.Generate(gctx, dc)
				if err != nil {
					return fmt.Errorf("generate question: %w", err)
				}
				llmQuestion = q
				return nil
			})
		}
	}

	if err := g.Wait(); err != nil {
		s.log.Warn("question failed", zap.String("position", req.Position), zap.String("game_state", req.GameState), zap.Error(err))
		return QuestionResponse{}, err
	}
	resp.LLMQuestion = llmQuestion
	return resp, nil
}

type EvaluateRequest struct {
	Position            string              `json:"position"`
	GameState           string              `json:"game_state"`
	PlayerAnswer        string              `json:"player_answer"`
	RecommendedActions  []string            `json:"recommended_actions"`
	Explanation         string              `json:"explanation,omitempty"`
	ConversationHistory []evaluate.Exchange `json:"conversation_history,omitempty"`
	Concepts            []string            `json:"concepts,omitempty"`
}

type EvaluateResponse struct {
	Evaluation evaluate.Verdict `json:"evaluation"`
	Feedback   string           `json:"llm_feedback"`
}

// EvaluateAnswer classifies a free-standing answer.
func (s *Service) EvaluateAnswer(ctx context.Context, req EvaluateRequest) (EvaluateResponse, error) {
	if strings.TrimSpace(req.PlayerAnswer) == "" {
		return EvaluateResponse{}, fmt.Errorf("%w: player_answer is required", ErrInvalidArgument)
	}
	res, err := s.evaluator.Evaluate(ctx, evaluate.Input{
		Role:               req.Position,
		GameState:          req.GameState,
		Answer:             req.PlayerAnswer,
		RecommendedActions: req.RecommendedActions,
		Explanation:        req.Explanation,
		History:            req.ConversationHistory,
		Concepts:           req.Concepts,
	})
	if err != nil {
		return EvaluateResponse{}, fmt.Errorf("evaluate answer: %w", err)
	}
	if res.Verdict == evaluate.VerdictUnknown {
		s.log.Info("evaluator returned no verdict", zap.String("position", req.Position), zap.String("game_state", req.GameState))
	}
	return EvaluateResponse{Evaluation: res.Verdict, Feedback: res.Feedback}, nil
}
