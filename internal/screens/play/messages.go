package play

import "github.com/abhisek/dugout/internal/game"

// statusMsg carries the result of starting, advancing or restarting a game.
type statusMsg struct {
	Status game.Status
	Err    error
}

// submitMsg carries the evaluation of one answer.
type submitMsg struct {
	Answer string
	Result game.SubmitResult
	Err    error
}
