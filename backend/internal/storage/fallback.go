package storage

import (
	"context"

	"github.com/adivinatobi/adivinatobi/backend/internal/service"
	"github.com/adivinatobi/adivinatobi/shared/domain"
	"github.com/adivinatobi/adivinatobi/shared/errors"
	"github.com/adivinatobi/adivinatobi/shared/logger"
	"github.com/adivinatobi/adivinatobi/shared/metrics"
)

// Fallback serves every call from primary and redirects it to secondary when
// primary reports a *errors.PersistenceError. Any other error is returned as is.
type Fallback struct {
	primary   service.DocumentStore
	secondary service.DocumentStore
}

var _ service.DocumentStore = (*Fallback)(nil)

func NewFallback(primary, secondary service.DocumentStore) *Fallback {
	return &Fallback{primary: primary, secondary: secondary}
}

func (f *Fallback) Load(ctx context.Context) (domain.Document, error) {
	doc, err := f.primary.Load(ctx)
	if err == nil || !errors.Is[*errors.PersistenceError](err) {
		return doc, err
	}
	f.redirect("load", err)
	return f.secondary.Load(ctx)
}

func (f *Fallback) Save(ctx context.Context, doc *domain.Document) error {
	err := f.primary.Save(ctx, doc)
	if err == nil || !errors.Is[*errors.PersistenceError](err) {
		return err
	}
	f.redirect("save", err)
	return f.secondary.Save(ctx, doc)
}

type pinger interface {
	Ping(ctx context.Context) error
}

// Ping succeeds while either store is reachable. Stores without a Ping method
// count as reachable.
func (f *Fallback) Ping(ctx context.Context) error {
	err := ping(ctx, f.primary)
	if err == nil {
		return nil
	}
	if secondaryErr := ping(ctx, f.secondary); secondaryErr != nil {
		return secondaryErr
	}
	logger.Component("fallback_store").Warn("primary store unreachable", "error", err)
	return nil
}

func ping(ctx context.Context, store service.DocumentStore) error {
	if p, ok := store.(pinger); ok {
		return p.Ping(ctx)
	}
	return nil
}

func (f *Fallback) redirect(op string, cause error) {
	metrics.StoreFallbacks.WithLabelValues(op).Inc()
	logger.Component("fallback_store").Warn("primary store failed, using local fallback", "op", op, "error", cause)
}
