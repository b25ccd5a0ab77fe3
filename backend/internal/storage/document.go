// Package storage holds what every document store shares: the JSON codec with
// its legacy migration, and the fallback composition of two stores.
package storage

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"github.com/adivinatobi/adivinatobi/shared/domain"
	"github.com/adivinatobi/adivinatobi/shared/errors"
)

// storedThread accepts both thread shapes ever persisted. Documents written
// before threads could have several winners carry a single nullable
// winning_prediction_id instead of the winning_prediction_ids list.
type storedThread struct {
	domain.Thread
	Winners      *[]domain.PredictionId `json:"winning_prediction_ids"`
	LegacyWinner *domain.PredictionId   `json:"winning_prediction_id"`
}

type storedDocument struct {
	Threads     *[]storedThread     `json:"threads"`
	Predictions []domain.Prediction `json:"predictions"`
	Users       []domain.UserName   `json:"users"`
}

// Decode parses a persisted document, converting legacy single-winner threads.
// migrated reports whether anything was converted, so the caller can persist
// the new shape once. Malformed documents fail with *errors.ValidationError:
// anything but a single JSON object with a threads list, unknown keys included.
func Decode(data []byte) (doc domain.Document, migrated bool, err error) {
	var stored storedDocument
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&stored); err != nil {
		return domain.Document{}, false, &errors.ValidationError{Message: fmt.Sprintf("document is not valid JSON: %v", err)}
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		return domain.Document{}, false, invalid("unexpected data after the document")
	}
	if stored.Threads == nil {
		return domain.Document{}, false, invalid("threads list is missing")
	}

	doc = domain.Document{
		Threads:     make([]domain.Thread, 0, len(*stored.Threads)),
		Predictions: stored.Predictions,
		Users:       stored.Users,
	}
	for _, st := range *stored.Threads {
		t := st.Thread
		switch {
		case st.Winners != nil:
			t.WinningPredictionIds = *st.Winners
			if st.LegacyWinner != nil {
				migrated = true
			}
		case st.LegacyWinner != nil && *st.LegacyWinner != "":
			t.WinningPredictionIds = []domain.PredictionId{*st.LegacyWinner}
			migrated = true
		default:
			t.WinningPredictionIds = []domain.PredictionId{}
			migrated = true
		}
		doc.Threads = append(doc.Threads, t)
	}
	if doc.Predictions == nil {
		doc.Predictions = []domain.Prediction{}
	}
	if doc.Users == nil {
		doc.Users = []domain.UserName{}
	}

	if err := Validate(&doc); err != nil {
		return domain.Document{}, false, err
	}
	return doc, migrated, nil
}

// Encode serializes a document in its current shape. Nil lists are written
// as empty ones so the result always decodes.
func Encode(doc *domain.Document) ([]byte, error) {
	out := *doc
	if out.Threads == nil {
		out.Threads = []domain.Thread{}
	}
	if out.Predictions == nil {
		out.Predictions = []domain.Prediction{}
	}
	if out.Users == nil {
		out.Users = []domain.UserName{}
	}
	data, err := json.MarshalIndent(&out, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode document: %w", err)
	}
	return data, nil
}

// Validate checks the record shapes a document must have to be usable.
func Validate(doc *domain.Document) error {
	threadIds := make(map[domain.ThreadId]struct{}, len(doc.Threads))
	for i, t := range doc.Threads {
		if t.Id == "" {
			return invalid("thread #%d has no id", i)
		}
		if _, dup := threadIds[t.Id]; dup {
			return invalid("thread id %s is duplicated", t.Id)
		}
		threadIds[t.Id] = struct{}{}
		if t.Question == "" {
			return invalid("thread %s has no question", t.Id)
		}
		if t.IsOpen && len(t.WinningPredictionIds) > 0 {
			return invalid("open thread %s has winners", t.Id)
		}
	}

	predIds := make(map[domain.PredictionId]struct{}, len(doc.Predictions))
	for i, p := range doc.Predictions {
		if p.Id == "" {
			return invalid("prediction #%d has no id", i)
		}
		if _, dup := predIds[p.Id]; dup {
			return invalid("prediction id %s is duplicated", p.Id)
		}
		predIds[p.Id] = struct{}{}
		if p.ThreadId == "" || p.Author == "" {
			return invalid("prediction %s lacks thread_id or author", p.Id)
		}
	}
	return nil
}

func invalid(format string, args ...any) error {
	return &errors.ValidationError{Message: "malformed document: " + fmt.Sprintf(format, args...)}
}
