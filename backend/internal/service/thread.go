package service

import (
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/adivinatobi/adivinatobi/backend/internal/utils"
	"github.com/adivinatobi/adivinatobi/shared/domain"
	"github.com/adivinatobi/adivinatobi/shared/errors"
	"github.com/adivinatobi/adivinatobi/shared/logger"
	"github.com/adivinatobi/adivinatobi/shared/metrics"
	"github.com/adivinatobi/adivinatobi/shared/scoring"
)

type ThreadService interface {
	Create(ctx context.Context, creationData domain.ThreadCreationData) (domain.ThreadId, error)
	Get(ctx context.Context, id domain.ThreadId) (domain.ThreadView, error)
	List(ctx context.Context, status domain.ThreadStatus) ([]domain.ThreadSummary, error)
	CloseWithWinners(ctx context.Context, id domain.ThreadId, winners []domain.PredictionId, requester domain.UserName) error
	CloseAsVoid(ctx context.Context, id domain.ThreadId, requester domain.UserName) error
	Delete(ctx context.Context, id domain.ThreadId, requester domain.UserName) error
}

type Thread struct {
	store     DocumentStore
	validator Validator
	now       func() time.Time
	newId     func() string
}

func NewThread(store DocumentStore, validator Validator) ThreadService {
	return &Thread{store: store, validator: validator, now: time.Now, newId: utils.NewId}
}

func (s *Thread) Create(ctx context.Context, creationData domain.ThreadCreationData) (domain.ThreadId, error) {
	creator := trim(creationData.Creator)
	question := trim(creationData.Question)
	description := trim(creationData.Description)
	if err := s.validator.UserName(creator); err != nil {
		return "", reject("create_thread", err)
	}
	if err := s.validator.Question(question); err != nil {
		return "", reject("create_thread", err)
	}
	if err := s.validator.Description(description); err != nil {
		return "", reject("create_thread", err)
	}

	doc, err := load(ctx, s.store)
	if err != nil {
		return "", err
	}
	thread := domain.Thread{
		Id:                   s.newId(),
		Question:             question,
		Description:          description,
		Creator:              creator,
		IsOpen:               true,
		WinningPredictionIds: []domain.PredictionId{},
		CreatedAt:            now(s.now),
	}
	doc.PrependThread(thread)
	if err := save(ctx, s.store, &doc); err != nil {
		return "", err
	}

	metrics.ThreadEvents.WithLabelValues("created").Inc()
	logger.Log.Info("thread created", "thread_id", thread.Id, "creator", creator)
	return thread.Id, nil
}

// Get returns the thread with its predictions newest first and, once closed, its awards.
func (s *Thread) Get(ctx context.Context, id domain.ThreadId) (domain.ThreadView, error) {
	doc, err := load(ctx, s.store)
	if err != nil {
		return domain.ThreadView{}, err
	}
	thread, ok := doc.Thread(id)
	if !ok {
		return domain.ThreadView{}, &errors.NotFoundError{Message: fmt.Sprintf("thread %s not found", id)}
	}

	predictions := doc.ThreadPredictions(id)
	slices.Reverse(predictions)
	if predictions == nil {
		predictions = []domain.Prediction{}
	}
	awards := scoring.ThreadAwards(&doc, id)
	if awards == nil {
		awards = []domain.Award{}
	}
	return domain.ThreadView{Thread: *thread, Predictions: predictions, Awards: awards}, nil
}

// List returns matching threads newest first, each with its prediction count.
func (s *Thread) List(ctx context.Context, status domain.ThreadStatus) ([]domain.ThreadSummary, error) {
	doc, err := load(ctx, s.store)
	if err != nil {
		return nil, err
	}
	counts := make(map[domain.ThreadId]int, len(doc.Threads))
	for _, p := range doc.Predictions {
		counts[p.ThreadId]++
	}

	res := make([]domain.ThreadSummary, 0, len(doc.Threads))
	for i := range doc.Threads {
		t := &doc.Threads[i]
		if !status.Matches(t) {
			continue
		}
		res = append(res, domain.ThreadSummary{Thread: *t, NumPredictions: counts[t.Id]})
	}
	return res, nil
}

// CloseWithWinners closes the thread for good. Winner ids are stored de-duplicated
// in the given order and are not checked against the thread's predictions;
// scoring skips ids it cannot resolve or that belong to another thread.
func (s *Thread) CloseWithWinners(ctx context.Context, id domain.ThreadId, winners []domain.PredictionId, requester domain.UserName) error {
	if err := s.close(ctx, "close_thread", id, dedup(winners), requester); err != nil {
		return err
	}
	metrics.ThreadEvents.WithLabelValues("closed").Inc()
	logger.Log.Info("thread closed", "thread_id", id, "winners", len(winners))
	return nil
}

// CloseAsVoid closes the thread without winners. The stored state is the same
// as closing with an empty winner list.
func (s *Thread) CloseAsVoid(ctx context.Context, id domain.ThreadId, requester domain.UserName) error {
	if err := s.close(ctx, "void_thread", id, []domain.PredictionId{}, requester); err != nil {
		return err
	}
	metrics.ThreadEvents.WithLabelValues("voided").Inc()
	logger.Log.Info("thread closed as void", "thread_id", id)
	return nil
}

func (s *Thread) close(ctx context.Context, op string, id domain.ThreadId, winners []domain.PredictionId, requester domain.UserName) error {
	requester = trim(requester)
	doc, err := load(ctx, s.store)
	if err != nil {
		return err
	}
	thread, ok := doc.Thread(id)
	if !ok {
		return reject(op, &errors.InvalidStateError{Message: fmt.Sprintf("thread %s does not exist", id)})
	}
	if thread.Creator != requester {
		return reject(op, &errors.PermissionError{Message: "only the thread creator can close it"})
	}
	if !thread.IsOpen {
		return reject(op, &errors.InvalidStateError{Message: "thread is already closed"})
	}

	thread.IsOpen = false
	thread.WinningPredictionIds = winners
	return save(ctx, s.store, &doc)
}

// Delete removes the thread and all of its predictions, open or closed.
func (s *Thread) Delete(ctx context.Context, id domain.ThreadId, requester domain.UserName) error {
	requester = trim(requester)
	doc, err := load(ctx, s.store)
	if err != nil {
		return err
	}
	thread, ok := doc.Thread(id)
	if !ok {
		return reject("delete_thread", &errors.NotFoundError{Message: fmt.Sprintf("thread %s not found", id)})
	}
	if thread.Creator != requester {
		return reject("delete_thread", &errors.PermissionError{Message: "only the thread creator can delete it"})
	}

	removed, _ := doc.RemoveThread(id)
	if err := save(ctx, s.store, &doc); err != nil {
		return err
	}
	metrics.ThreadEvents.WithLabelValues("deleted").Inc()
	logger.Log.Info("thread deleted", "thread_id", id, "predictions_removed", removed)
	return nil
}

func dedup(ids []domain.PredictionId) []domain.PredictionId {
	res := make([]domain.PredictionId, 0, len(ids))
	for _, id := range ids {
		if !slices.Contains(res, id) {
			res = append(res, id)
		}
	}
	return res
}
