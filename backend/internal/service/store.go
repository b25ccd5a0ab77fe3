package service

import (
	"context"

	"github.com/adivinatobi/adivinatobi/shared/domain"
)

// DocumentStore persists the whole game state as one document.
//
// Every operation loads a fresh copy, mutates it in memory and saves it back.
// There is no locking and no version check: concurrent writers race and the
// last save wins. Implementations only guarantee that a save replaces the
// document atomically.
type DocumentStore interface {
	// Load returns the persisted document, or an empty default one if nothing
	// has been persisted yet.
	Load(ctx context.Context) (domain.Document, error)
	Save(ctx context.Context, doc *domain.Document) error
}
