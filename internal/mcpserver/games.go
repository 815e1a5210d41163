package mcpserver

import (
	"context"
	"errors"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"go.uber.org/zap"

	"github.com/abhisek/dugout/internal/game"
	"github.com/abhisek/dugout/internal/service"
)

// GameTools holds the handlers for the stateful game tools.
type GameTools struct {
	Service *service.Service
	Log     *zap.Logger
}

// --- Input types ---

type StartGameInput struct {
	PlayerName string `json:"player_name,omitempty" jsonschema:"Player the game's sessions are recorded against"`
}

type GameInput struct {
	GameID string `json:"game_id" jsonschema:"Game id returned by start_game"`
}

type SubmitAnswerInput struct {
	GameID string `json:"game_id" jsonschema:"Game id returned by start_game"`
	Turn   int    `json:"turn" jsonschema:"Turn being answered; must equal the game's next turn"`
	Answer string `json:"answer" jsonschema:"The player's answer"`
}

// --- Handlers ---

func (t *GameTools) StartGame(ctx context.Context, _ *mcp.CallToolRequest, input StartGameInput) (*mcp.CallToolResult, any, error) {
	st, err := t.Service.StartGame(ctx, input.PlayerName)
	if err != nil {
		return failure("start game", err), nil, nil
	}
	t.Log.Info("game started", zap.String("game", st.GameID), zap.String("player", input.PlayerName))
	return toolJSON(st)
}

func (t *GameTools) SubmitAnswer(ctx context.Context, _ *mcp.CallToolRequest, input SubmitAnswerInput) (*mcp.CallToolResult, any, error) {
	if input.GameID == "" {
		return toolError("game_id is required"), nil, nil
	}
	res, err := t.Service.SubmitAnswer(ctx, input.GameID, input.Turn, input.Answer)
	if err != nil {
		return gameFailure("submit answer", input.GameID, err), nil, nil
	}
	return toolJSON(res)
}

func (t *GameTools) NextPlay(ctx context.Context, _ *mcp.CallToolRequest, input GameInput) (*mcp.CallToolResult, any, error) {
	st, err := t.Service.NextPlay(ctx, input.GameID)
	if err != nil {
		return gameFailure("advance game", input.GameID, err), nil, nil
	}
	return toolJSON(st)
}

func (t *GameTools) PlayAgain(ctx context.Context, _ *mcp.CallToolRequest, input GameInput) (*mcp.CallToolResult, any, error) {
	st, err := t.Service.PlayAgain(ctx, input.GameID)
	if err != nil {
		return gameFailure("restart game", input.GameID, err), nil, nil
	}
	return toolJSON(st)
}

func (t *GameTools) GameStatus(_ context.Context, _ *mcp.CallToolRequest, input GameInput) (*mcp.CallToolResult, any, error) {
	st, err := t.Service.GameStatus(input.GameID)
	if err != nil {
		return gameFailure("read game", input.GameID, err), nil, nil
	}
	return toolJSON(st)
}

func (t *GameTools) EndGame(_ context.Context, _ *mcp.CallToolRequest, input GameInput) (*mcp.CallToolResult, any, error) {
	if _, err := t.Service.GameStatus(input.GameID); err != nil {
		return gameFailure("end game", input.GameID, err), nil, nil
	}
	t.Service.EndGame(input.GameID)
	return toolJSON(map[string]string{"message": "Game ended", "game_id": input.GameID})
}

func gameFailure(action, id string, err error) *mcp.CallToolResult {
	switch {
	case errors.Is(err, game.ErrUnknownSession):
		return toolError("Game %q not found", id)
	case errors.Is(err, game.ErrStaleTurn), errors.Is(err, game.ErrSessionResolved),
		errors.Is(err, game.ErrSessionNotResolved), errors.Is(err, game.ErrGameOver):
		return toolError("Cannot %s: %v", action, err)
	}
	return failure(action, err)
}
