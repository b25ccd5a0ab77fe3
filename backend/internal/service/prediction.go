package service

import (
	"context"
	"fmt"
	"time"

	"github.com/adivinatobi/adivinatobi/backend/internal/utils"
	"github.com/adivinatobi/adivinatobi/shared/domain"
	"github.com/adivinatobi/adivinatobi/shared/errors"
	"github.com/adivinatobi/adivinatobi/shared/logger"
	"github.com/adivinatobi/adivinatobi/shared/metrics"
)

type PredictionService interface {
	Add(ctx context.Context, creationData domain.PredictionCreationData) (domain.PredictionId, error)
	Edit(ctx context.Context, id domain.PredictionId, text string, requester domain.UserName) error
	Delete(ctx context.Context, id domain.PredictionId, requester domain.UserName) error
}

type Prediction struct {
	store     DocumentStore
	validator Validator
	now       func() time.Time
	newId     func() string
}

func NewPrediction(store DocumentStore, validator Validator) PredictionService {
	return &Prediction{store: store, validator: validator, now: time.Now, newId: utils.NewId}
}

// Add appends a prediction to an open thread. Checks run in order: input shape,
// thread existence, open state, per-author cap.
func (s *Prediction) Add(ctx context.Context, creationData domain.PredictionCreationData) (domain.PredictionId, error) {
	author := trim(creationData.Author)
	text := trim(creationData.Text)
	if err := s.validator.UserName(author); err != nil {
		return "", reject("add_prediction", err)
	}
	if err := s.validator.PredictionText(text); err != nil {
		return "", reject("add_prediction", err)
	}

	doc, err := load(ctx, s.store)
	if err != nil {
		return "", err
	}
	thread, ok := doc.Thread(creationData.ThreadId)
	if !ok {
		return "", reject("add_prediction", &errors.NotFoundError{Message: fmt.Sprintf("thread %s not found", creationData.ThreadId)})
	}
	if !thread.IsOpen {
		return "", reject("add_prediction", &errors.InvalidStateError{Message: "thread is closed"})
	}
	if doc.CountUserPredictions(thread.Id, author) >= domain.MaxPredictionsPerUser {
		return "", reject("add_prediction", &errors.LimitExceededError{
			Message: fmt.Sprintf("%s already has %d predictions on this thread", author, domain.MaxPredictionsPerUser),
			Limit:   domain.MaxPredictionsPerUser,
		})
	}

	prediction := domain.Prediction{
		Id:        s.newId(),
		ThreadId:  thread.Id,
		Author:    author,
		Text:      text,
		CreatedAt: now(s.now),
	}
	doc.AddPrediction(prediction)
	if err := save(ctx, s.store, &doc); err != nil {
		return "", err
	}

	metrics.PredictionEvents.WithLabelValues("created").Inc()
	logger.Log.Info("prediction added", "prediction_id", prediction.Id, "thread_id", thread.Id, "author", author)
	return prediction.Id, nil
}

func (s *Prediction) Edit(ctx context.Context, id domain.PredictionId, text string, requester domain.UserName) error {
	text = trim(text)
	if err := s.validator.PredictionText(text); err != nil {
		return reject("edit_prediction", err)
	}

	doc, err := load(ctx, s.store)
	if err != nil {
		return err
	}
	prediction, err := editable(&doc, id, trim(requester))
	if err != nil {
		return reject("edit_prediction", err)
	}

	edited := now(s.now)
	prediction.Text = text
	prediction.LastEditedAt = &edited
	if err := save(ctx, s.store, &doc); err != nil {
		return err
	}

	metrics.PredictionEvents.WithLabelValues("edited").Inc()
	logger.Log.Info("prediction edited", "prediction_id", id)
	return nil
}

func (s *Prediction) Delete(ctx context.Context, id domain.PredictionId, requester domain.UserName) error {
	doc, err := load(ctx, s.store)
	if err != nil {
		return err
	}
	if _, err := editable(&doc, id, trim(requester)); err != nil {
		return reject("delete_prediction", err)
	}

	doc.RemovePrediction(id)
	if err := save(ctx, s.store, &doc); err != nil {
		return err
	}

	metrics.PredictionEvents.WithLabelValues("deleted").Inc()
	logger.Log.Info("prediction deleted", "prediction_id", id)
	return nil
}

// editable resolves a prediction that requester may change: it must exist,
// belong to requester and sit on a thread that is still open.
func editable(doc *domain.Document, id domain.PredictionId, requester domain.UserName) (*domain.Prediction, error) {
	prediction, ok := doc.Prediction(id)
	if !ok {
		return nil, &errors.InvalidStateError{Message: fmt.Sprintf("prediction %s does not exist", id)}
	}
	thread, ok := doc.Thread(prediction.ThreadId)
	if !ok {
		return nil, &errors.InvalidStateError{Message: "prediction belongs to a thread that no longer exists"}
	}
	if prediction.Author != requester {
		return nil, &errors.PermissionError{Message: "only the author can change a prediction"}
	}
	if !thread.IsOpen {
		return nil, &errors.InvalidStateError{Message: "thread is closed"}
	}
	return prediction, nil
}
