package handler

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"strings"

	"github.com/adivinatobi/adivinatobi/shared/config"
	"github.com/adivinatobi/adivinatobi/shared/domain"
	"github.com/adivinatobi/adivinatobi/shared/scoring"
	"github.com/go-chi/chi/v5"
)

// --- Mocks ---

type MockThreadService struct {
	CreateFunc           func(ctx context.Context, creationData domain.ThreadCreationData) (domain.ThreadId, error)
	GetFunc              func(ctx context.Context, id domain.ThreadId) (domain.ThreadView, error)
	ListFunc             func(ctx context.Context, status domain.ThreadStatus) ([]domain.ThreadSummary, error)
	CloseWithWinnersFunc func(ctx context.Context, id domain.ThreadId, winners []domain.PredictionId, requester domain.UserName) error
	CloseAsVoidFunc      func(ctx context.Context, id domain.ThreadId, requester domain.UserName) error
	DeleteFunc           func(ctx context.Context, id domain.ThreadId, requester domain.UserName) error
}

func (m *MockThreadService) Create(ctx context.Context, creationData domain.ThreadCreationData) (domain.ThreadId, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, creationData)
	}
	return "t1", nil
}

func (m *MockThreadService) Get(ctx context.Context, id domain.ThreadId) (domain.ThreadView, error) {
	if m.GetFunc != nil {
		return m.GetFunc(ctx, id)
	}
	return domain.ThreadView{Thread: domain.Thread{Id: id}, Predictions: []domain.Prediction{}, Awards: []domain.Award{}}, nil
}

func (m *MockThreadService) List(ctx context.Context, status domain.ThreadStatus) ([]domain.ThreadSummary, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, status)
	}
	return []domain.ThreadSummary{}, nil
}

func (m *MockThreadService) CloseWithWinners(ctx context.Context, id domain.ThreadId, winners []domain.PredictionId, requester domain.UserName) error {
	if m.CloseWithWinnersFunc != nil {
		return m.CloseWithWinnersFunc(ctx, id, winners, requester)
	}
	return nil
}

func (m *MockThreadService) CloseAsVoid(ctx context.Context, id domain.ThreadId, requester domain.UserName) error {
	if m.CloseAsVoidFunc != nil {
		return m.CloseAsVoidFunc(ctx, id, requester)
	}
	return nil
}

func (m *MockThreadService) Delete(ctx context.Context, id domain.ThreadId, requester domain.UserName) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id, requester)
	}
	return nil
}

type MockPredictionService struct {
	AddFunc    func(ctx context.Context, creationData domain.PredictionCreationData) (domain.PredictionId, error)
	EditFunc   func(ctx context.Context, id domain.PredictionId, text string, requester domain.UserName) error
	DeleteFunc func(ctx context.Context, id domain.PredictionId, requester domain.UserName) error
}

func (m *MockPredictionService) Add(ctx context.Context, creationData domain.PredictionCreationData) (domain.PredictionId, error) {
	if m.AddFunc != nil {
		return m.AddFunc(ctx, creationData)
	}
	return "p1", nil
}

func (m *MockPredictionService) Edit(ctx context.Context, id domain.PredictionId, text string, requester domain.UserName) error {
	if m.EditFunc != nil {
		return m.EditFunc(ctx, id, text, requester)
	}
	return nil
}

func (m *MockPredictionService) Delete(ctx context.Context, id domain.PredictionId, requester domain.UserName) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id, requester)
	}
	return nil
}

type MockUserService struct {
	ListFunc     func(ctx context.Context) ([]domain.UserName, error)
	RegisterFunc func(ctx context.Context, name domain.UserName) error
	RemoveFunc   func(ctx context.Context, name domain.UserName) error
}

func (m *MockUserService) List(ctx context.Context) ([]domain.UserName, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx)
	}
	return []domain.UserName{}, nil
}

func (m *MockUserService) Register(ctx context.Context, name domain.UserName) error {
	if m.RegisterFunc != nil {
		return m.RegisterFunc(ctx, name)
	}
	return nil
}

func (m *MockUserService) Remove(ctx context.Context, name domain.UserName) error {
	if m.RemoveFunc != nil {
		return m.RemoveFunc(ctx, name)
	}
	return nil
}

type MockLeaderboardService struct {
	GetFunc func(ctx context.Context) ([]scoring.Standing, error)
}

func (m *MockLeaderboardService) Get(ctx context.Context) ([]scoring.Standing, error) {
	if m.GetFunc != nil {
		return m.GetFunc(ctx)
	}
	return []scoring.Standing{}, nil
}

// upperRenderer marks rendered text so tests can tell it from the raw text.
type upperRenderer struct{}

func (upperRenderer) Render(text string) string { return "<p>" + strings.ToUpper(text) + "</p>" }

// --- Helpers ---

func newTestHandler() *Handler {
	cfg := &config.Config{Public: config.Default()}
	cfg.Public.Http.BaseURL = "https://adivina.example/"
	return &Handler{
		thread:      &MockThreadService{},
		prediction:  &MockPredictionService{},
		user:        &MockUserService{},
		leaderboard: &MockLeaderboardService{},
		health:      &MockHealthChecker{},
		renderer:    upperRenderer{},
		cfg:         cfg,
	}
}

// testRouter mounts the handler the same way the API router does.
func testRouter(h *Handler) http.Handler {
	r := chi.NewRouter()
	r.Get("/threads", h.ListThreads)
	r.Post("/threads", h.CreateThread)
	r.Get("/threads/{thread}", h.GetThread)
	r.Delete("/threads/{thread}", h.DeleteThread)
	r.Post("/threads/{thread}/close", h.CloseThread)
	r.Post("/threads/{thread}/void", h.VoidThread)
	r.Get("/threads/{thread}/qr.png", h.ThreadQR)
	r.Post("/threads/{thread}/predictions", h.CreatePrediction)
	r.Put("/predictions/{prediction}", h.EditPrediction)
	r.Delete("/predictions/{prediction}", h.DeletePrediction)
	r.Get("/leaderboard", h.GetLeaderboard)
	r.Get("/users", h.ListUsers)
	r.Post("/users", h.RegisterUser)
	r.Delete("/users/{name}", h.RemoveUser)
	return r
}

func serve(h *Handler, method, target, body string) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != "" {
		reader = bytes.NewReader([]byte(body))
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, target, reader)
	rr := httptest.NewRecorder()
	testRouter(h).ServeHTTP(rr, req)
	return rr
}
