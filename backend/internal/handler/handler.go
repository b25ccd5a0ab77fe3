package handler

import (
	"context"

	"github.com/adivinatobi/adivinatobi/backend/internal/service"
	"github.com/adivinatobi/adivinatobi/shared/config"
)

// HealthChecker reports whether the document store can be reached.
type HealthChecker interface {
	Ping(ctx context.Context) error
}

// TextRenderer turns user markdown into safe HTML.
type TextRenderer interface {
	Render(text string) string
}

type Handler struct {
	thread      service.ThreadService
	prediction  service.PredictionService
	user        service.UserService
	leaderboard service.LeaderboardService
	health      HealthChecker
	renderer    TextRenderer
	cfg         *config.Config
}

func New(
	thread service.ThreadService,
	prediction service.PredictionService,
	user service.UserService,
	leaderboard service.LeaderboardService,
	health HealthChecker,
	renderer TextRenderer,
	cfg *config.Config,
) *Handler {
	return &Handler{
		thread:      thread,
		prediction:  prediction,
		user:        user,
		leaderboard: leaderboard,
		health:      health,
		renderer:    renderer,
		cfg:         cfg,
	}
}
