package mcpserver

import (
	"context"
	"errors"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"go.uber.org/zap"

	"github.com/abhisek/dugout/internal/evaluate"
	"github.com/abhisek/dugout/internal/factgraph"
	"github.com/abhisek/dugout/internal/service"
	"github.com/abhisek/dugout/internal/store"
)

// CoachTools holds the handlers for the stateless coaching tools.
type CoachTools struct {
	Service *service.Service
	Log     *zap.Logger
}

// --- Input types ---

type EmptyInput struct{}

type QuestionInput struct {
	Position   string `json:"position" jsonschema:"Fielding position, e.g. Shortstop"`
	GameState  string `json:"game_state" jsonschema:"Game state identifier, e.g. GameState_2outs_Runner1"`
	PlayerName string `json:"player_name,omitempty" jsonschema:"Optional player name echoed in the response"`
}

type EvaluateAnswerInput struct {
	Position            string              `json:"position" jsonschema:"Fielding position"`
	GameState           string              `json:"game_state" jsonschema:"Game state identifier"`
	PlayerAnswer        string              `json:"player_answer" jsonschema:"The player's answer"`
	RecommendedActions  []string            `json:"recommended_actions" jsonschema:"Recommended actions for the play, best first"`
	Explanation         string              `json:"explanation,omitempty" jsonschema:"Optional explanation of the correct play"`
	ConversationHistory []evaluate.Exchange `json:"conversation_history,omitempty" jsonschema:"Earlier question, answer, and feedback exchanges"`
	Concepts            []string            `json:"concepts,omitempty" jsonschema:"Concepts the play exercises"`
}

type PlayerLogInput struct {
	PlayerName string   `json:"player_name" jsonschema:"Player name"`
	Position   string   `json:"position" jsonschema:"Fielding position"`
	GameState  string   `json:"game_state" jsonschema:"Game state identifier"`
	Concepts   []string `json:"concepts" jsonschema:"Concepts to mark mastered"`
}

type GetPlayerInput struct {
	PlayerName string `json:"player_name" jsonschema:"Player name"`
}

// --- Handlers ---

func (t *CoachTools) Health(ctx context.Context, _ *mcp.CallToolRequest, _ EmptyInput) (*mcp.CallToolResult, any, error) {
	return toolJSON(t.Service.Health(ctx))
}

func (t *CoachTools) RandomSituation(ctx context.Context, _ *mcp.CallToolRequest, _ EmptyInput) (*mcp.CallToolResult, any, error) {
	sit, err := t.Service.RandomSituation(ctx)
	if errors.Is(err, factgraph.ErrEmptyStore) {
		return toolError("No situations available"), nil, nil
	}
	if err != nil {
		return failure("draw situation", err), nil, nil
	}
	return toolJSON(sit)
}

func (t *CoachTools) Question(ctx context.Context, _ *mcp.CallToolRequest, input QuestionInput) (*mcp.CallToolResult, any, error) {
	resp, err := t.Service.Question(ctx, service.QuestionRequest{
		Player:    input.PlayerName,
		Position:  input.Position,
		GameState: input.GameState,
	})
	if err != nil {
		return failure("build question", err), nil, nil
	}
	return toolJSON(resp)
}

func (t *CoachTools) EvaluateAnswer(ctx context.Context, _ *mcp.CallToolRequest, input EvaluateAnswerInput) (*mcp.CallToolResult, any, error) {
	resp, err := t.Service.EvaluateAnswer(ctx, service.EvaluateRequest{
		Position:            input.Position,
		GameState:           input.GameState,
		PlayerAnswer:        input.PlayerAnswer,
		RecommendedActions:  input.RecommendedActions,
		Explanation:         input.Explanation,
		ConversationHistory: input.ConversationHistory,
		Concepts:            input.Concepts,
	})
	if err != nil {
		return failure("evaluate answer", err), nil, nil
	}
	return toolJSON(resp)
}

func (t *CoachTools) PlayerLog(ctx context.Context, _ *mcp.CallToolRequest, input PlayerLogInput) (*mcp.CallToolResult, any, error) {
	resp, err := t.Service.PlayerLog(ctx, service.PlayerLogRequest{
		Name:      input.PlayerName,
		Position:  input.Position,
		GameState: input.GameState,
		Concepts:  input.Concepts,
	})
	if err != nil {
		return failure("log player", err), nil, nil
	}
	t.Log.Debug("player logged", zap.String("player", input.PlayerName), zap.Strings("concepts", input.Concepts))
	return toolJSON(resp)
}

func (t *CoachTools) GetPlayer(ctx context.Context, _ *mcp.CallToolRequest, input GetPlayerInput) (*mcp.CallToolResult, any, error) {
	p, err := t.Service.GetPlayer(ctx, input.PlayerName)
	if errors.Is(err, store.ErrNotFound) {
		return toolError("Player %q not found", input.PlayerName), nil, nil
	}
	if err != nil {
		return failure("get player", err), nil, nil
	}
	return toolJSON(p)
}
