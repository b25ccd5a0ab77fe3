// Package fs stores the game document as a JSON file on local disk.
package fs

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/adivinatobi/adivinatobi/backend/internal/service"
	"github.com/adivinatobi/adivinatobi/backend/internal/storage"
	"github.com/adivinatobi/adivinatobi/shared/domain"
	"github.com/adivinatobi/adivinatobi/shared/errors"
	"github.com/adivinatobi/adivinatobi/shared/logger"
	"github.com/adivinatobi/adivinatobi/shared/metrics"
)

const backendName = "file"

type Storage struct {
	path         string
	defaultUsers []domain.UserName
	now          func() time.Time
}

// Ensure Storage struct implements the interface at compile time.
var _ service.DocumentStore = (*Storage)(nil)

// New prepares a file store at path. The parent directory is created if needed;
// the file itself is created on first Load.
func New(path string, defaultUsers []domain.UserName) (*Storage, error) {
	p := filepath.Clean(path)
	if err := os.MkdirAll(filepath.Dir(p), 0755); err != nil {
		return nil, fmt.Errorf("failed to create storage directory for %s: %w", p, err)
	}
	return &Storage{path: p, defaultUsers: defaultUsers, now: time.Now}, nil
}

func (s *Storage) Path() string {
	return s.path
}

// Ping checks that the document directory is still there and, when the
// document exists, that it can be opened.
func (s *Storage) Ping(ctx context.Context) error {
	if _, err := os.Stat(filepath.Dir(s.path)); err != nil {
		return &errors.PersistenceError{Op: "ping", Err: err}
	}
	f, err := os.Open(s.path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return &errors.PersistenceError{Op: "ping", Err: err}
	}
	return f.Close()
}

// Load reads the document. A missing file yields the default document, which is
// written right away. A file that cannot be decoded is moved aside to
// <path>.corrupt-<unix> and replaced by the default document.
func (s *Storage) Load(ctx context.Context) (doc domain.Document, err error) {
	defer func() { metrics.StoreOperations.WithLabelValues(backendName, "load", metrics.StoreResult(err)).Inc() }()
	log := logger.Component("fs_store")

	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		doc = domain.NewDocument(s.defaultUsers)
		if err := s.Save(ctx, &doc); err != nil {
			return domain.Document{}, err
		}
		log.Info("created empty document", "path", s.path)
		return doc, nil
	}
	if err != nil {
		return domain.Document{}, &errors.PersistenceError{Op: "load", Err: err}
	}

	doc, migrated, err := storage.Decode(data)
	if err != nil {
		quarantine := fmt.Sprintf("%s.corrupt-%d", s.path, s.now().Unix())
		if renameErr := os.Rename(s.path, quarantine); renameErr != nil {
			return domain.Document{}, &errors.PersistenceError{Op: "quarantine", Err: renameErr}
		}
		log.Warn("document unreadable, starting from an empty one", "path", s.path, "moved_to", quarantine, "error", err)
		doc = domain.NewDocument(s.defaultUsers)
		if err := s.Save(ctx, &doc); err != nil {
			return domain.Document{}, err
		}
		return doc, nil
	}

	if migrated {
		if err := s.Save(ctx, &doc); err != nil {
			return domain.Document{}, err
		}
		log.Info("migrated legacy document", "path", s.path, "threads", len(doc.Threads))
	}
	return doc, nil
}

// Save writes the document to a temp file next to the target and renames it
// over the target, so readers see either the old or the new document.
func (s *Storage) Save(ctx context.Context, doc *domain.Document) (err error) {
	defer func() { metrics.StoreOperations.WithLabelValues(backendName, "save", metrics.StoreResult(err)).Inc() }()

	data, err := storage.Encode(doc)
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.path), filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return &errors.PersistenceError{Op: "save", Err: err}
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath) // no-op after a successful rename

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return &errors.PersistenceError{Op: "save", Err: err}
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return &errors.PersistenceError{Op: "save", Err: err}
	}
	if err := tmp.Close(); err != nil {
		return &errors.PersistenceError{Op: "save", Err: err}
	}
	if err := os.Rename(tmpPath, s.path); err != nil {
		return &errors.PersistenceError{Op: "save", Err: err}
	}
	return nil
}
