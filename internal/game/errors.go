package game

import "errors"

var (
	// ErrSessionResolved is returned when answering a session that already
	// has an outcome.
	ErrSessionResolved = errors.New("game: session already resolved")

	// ErrStaleTurn is returned when the submitted turn index is not the
	// next one, e.g. a duplicate submission.
	ErrStaleTurn = errors.New("game: stale or duplicate turn")

	// ErrSessionNotResolved is returned by Advance before the current
	// session has an outcome.
	ErrSessionNotResolved = errors.New("game: session not resolved")

	ErrGameOver = errors.New("game: game over")

	// ErrNoQuestion is returned when no drawn scenario has a play to ask
	// about.
	ErrNoQuestion = errors.New("game: no scenario with a play")

	ErrNoSession = errors.New("game: no session started")

	ErrUnknownSession = errors.New("game: unknown session id")
)
