package service

import (
	"context"

	"github.com/abhisek/dugout/internal/game"
)

// StartGame creates a game for player and poses its first question.
func (s *Service) StartGame(ctx context.Context, player string) (game.Status, error) {
	_, st, err := s.games.Create(ctx, player)
	return st, err
}

// SubmitAnswer answers the current question of a game.
func (s *Service) SubmitAnswer(ctx context.Context, gameID string, turn int, answer string) (game.SubmitResult, error) {
	g, err := s.games.Get(gameID)
	if err != nil {
		return game.SubmitResult{}, err
	}
	return g.Submit(ctx, turn, answer)
}

// NextPlay advances a game whose current session resolved.
func (s *Service) NextPlay(ctx context.Context, gameID string) (game.Status, error) {
	g, err := s.games.Get(gameID)
	if err != nil {
		return game.Status{}, err
	}
	return g.Advance(ctx)
}

// PlayAgain resets a game to the first inning.
func (s *Service) PlayAgain(ctx context.Context, gameID string) (game.Status, error) {
	g, err := s.games.Get(gameID)
	if err != nil {
		return game.Status{}, err
	}
	return g.Reset(ctx)
}

// GameStatus returns the current state of a game.
func (s *Service) GameStatus(gameID string) (game.Status, error) {
	g, err := s.games.Get(gameID)
	if err != nil {
		return game.Status{}, err
	}
	return g.Status(), nil
}

// EndGame forgets a game.
func (s *Service) EndGame(gameID string) {
	s.games.Remove(gameID)
}
