package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/abhisek/dugout/internal/store"
)

// ErrNoPlayerStore is returned when player operations are used without
// persistence.
var ErrNoPlayerStore = errors.New("player store not configured")

type PlayerLogRequest struct {
	Name      string   `json:"player_name"`
	Position  string   `json:"position"`
	GameState string   `json:"game_state"`
	Concepts  []string `json:"concepts"`
}

type PlayerLogResponse struct {
	Message  string   `json:"message"`
	Player   string   `json:"player"`
	Concepts []string `json:"concepts"`
}

// PlayerLog records that the player saw a scenario and marks its concepts
// mastered, creating the profile on first use.
func (s *Service) PlayerLog(ctx context.Context, req PlayerLogRequest) (PlayerLogResponse, error) {
	if req.Name == "" {
		return PlayerLogResponse{}, fmt.Errorf("%w: player_name is required", ErrInvalidArgument)
	}
	if s.players == nil {
		return PlayerLogResponse{}, ErrNoPlayerStore
	}
	if _, err := s.players.LogConcepts(ctx, req.Name, req.Position, req.GameState, req.Concepts, store.ConceptsMastered); err != nil {
		return PlayerLogResponse{}, fmt.Errorf("log concepts: %w", err)
	}
	concepts := req.Concepts
	if concepts == nil {
		concepts = []string{}
	}
	return PlayerLogResponse{Message: "Logged", Player: req.Name, Concepts: concepts}, nil
}

// GetPlayer returns the stored profile. An unknown name fails with
// store.ErrNotFound; reading never creates a profile.
func (s *Service) GetPlayer(ctx context.Context, name string) (*store.PlayerProfile, error) {
	if name == "" {
		return nil, fmt.Errorf("%w: player name is required", ErrInvalidArgument)
	}
	if s.players == nil {
		return nil, ErrNoPlayerStore
	}
	return s.players.Get(ctx, name)
}
