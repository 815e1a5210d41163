package mcpserver

import (
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"go.uber.org/zap"

	"github.com/abhisek/dugout/internal/service"
)

// New creates an MCP server exposing the coaching operations as tools.
func New(svc *service.Service, version string, log *zap.Logger) *mcp.Server {
	if log == nil {
		log = zap.NewNop()
	}
	ct := &CoachTools{Service: svc, Log: log}
	gt := &GameTools{Service: svc, Log: log}

	srv := mcp.NewServer(&mcp.Implementation{
		Name:    "dugout",
		Version: version,
	}, nil)

	// Coaching tools
	mcp.AddTool(srv, &mcp.Tool{
		Name:        "health",
		Description: "Report whether the coach is up",
	}, ct.Health)

	mcp.AddTool(srv, &mcp.Tool{
		Name:        "random_situation",
		Description: "Draw a random fielding situation (position and game state)",
	}, ct.RandomSituation)

	mcp.AddTool(srv, &mcp.Tool{
		Name:        "question",
		Description: "Get related knowledge, rule questions, and a coaching question for a situation",
	}, ct.Question)

	mcp.AddTool(srv, &mcp.Tool{
		Name:        "evaluate_answer",
		Description: "Classify a player's answer as correct, partial, or incorrect with coaching feedback",
	}, ct.EvaluateAnswer)

	mcp.AddTool(srv, &mcp.Tool{
		Name:        "player_log",
		Description: "Record that a player worked a situation and mark its concepts mastered",
	}, ct.PlayerLog)

	mcp.AddTool(srv, &mcp.Tool{
		Name:        "get_player",
		Description: "Read a player's profile: mastered and struggled concepts and history",
	}, ct.GetPlayer)

	// Game tools
	mcp.AddTool(srv, &mcp.Tool{
		Name:        "start_game",
		Description: "Start a nine-inning game for a player and pose the first question",
	}, gt.StartGame)

	mcp.AddTool(srv, &mcp.Tool{
		Name:        "submit_answer",
		Description: "Answer the current question of a game; turn must be the game's next turn",
	}, gt.SubmitAnswer)

	mcp.AddTool(srv, &mcp.Tool{
		Name:        "next_play",
		Description: "Move a game to its next play once the current one is resolved",
	}, gt.NextPlay)

	mcp.AddTool(srv, &mcp.Tool{
		Name:        "play_again",
		Description: "Restart a game from the first inning",
	}, gt.PlayAgain)

	mcp.AddTool(srv, &mcp.Tool{
		Name:        "game_status",
		Description: "Show the phase, progress, and conversation of a game",
	}, gt.GameStatus)

	mcp.AddTool(srv, &mcp.Tool{
		Name:        "end_game",
		Description: "Forget a game",
	}, gt.EndGame)

	return srv
}
