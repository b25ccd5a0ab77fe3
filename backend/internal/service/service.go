package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/adivinatobi/adivinatobi/shared/domain"
	"github.com/adivinatobi/adivinatobi/shared/errors"
	"github.com/adivinatobi/adivinatobi/shared/metrics"
)

// Validator checks trimmed user input.
type Validator interface {
	UserName(name string) error
	Question(question string) error
	Description(description string) error
	PredictionText(text string) error
}

// reject counts a refused operation and returns err unchanged.
func reject(op string, err error) error {
	metrics.RejectedOperations.WithLabelValues(op, errors.Kind(err)).Inc()
	return err
}

func load(ctx context.Context, store DocumentStore) (domain.Document, error) {
	doc, err := store.Load(ctx)
	if err != nil {
		return domain.Document{}, fmt.Errorf("failed to load document: %w", err)
	}
	return doc, nil
}

func save(ctx context.Context, store DocumentStore, doc *domain.Document) error {
	if err := store.Save(ctx, doc); err != nil {
		return fmt.Errorf("failed to save document: %w", err)
	}
	return nil
}

func now(clock func() time.Time) domain.Timestamp {
	return domain.NewTimestamp(clock())
}

func trim(s string) string {
	return strings.TrimSpace(s)
}
