package service

import (
	"context"

	"github.com/adivinatobi/adivinatobi/shared/scoring"
)

type LeaderboardService interface {
	Get(ctx context.Context) ([]scoring.Standing, error)
}

type Leaderboard struct {
	store DocumentStore
}

func NewLeaderboard(store DocumentStore) LeaderboardService {
	return &Leaderboard{store: store}
}

// Get recomputes the ranking from a fresh document on every call.
func (s *Leaderboard) Get(ctx context.Context) ([]scoring.Standing, error) {
	doc, err := load(ctx, s.store)
	if err != nil {
		return nil, err
	}
	return scoring.Leaderboard(&doc), nil
}
