package service

import (
	"context"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/adivinatobi/adivinatobi/shared/domain"
)

// --- Mocks ---

// MockDocumentStore keeps a document in memory. Load hands out a deep copy so
// a service only changes stored state through Save.
type MockDocumentStore struct {
	loadFunc func(ctx context.Context) (domain.Document, error)
	saveFunc func(ctx context.Context, doc *domain.Document) error

	mu        sync.Mutex
	doc       domain.Document
	saveCalls int
}

func newMockStore(doc domain.Document) *MockDocumentStore {
	return &MockDocumentStore{doc: doc}
}

func (m *MockDocumentStore) Load(ctx context.Context) (domain.Document, error) {
	if m.loadFunc != nil {
		return m.loadFunc(ctx)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return cloneDocument(m.doc), nil
}

func (m *MockDocumentStore) Save(ctx context.Context, doc *domain.Document) error {
	m.mu.Lock()
	m.saveCalls++
	m.mu.Unlock()

	if m.saveFunc != nil {
		return m.saveFunc(ctx, doc)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.doc = cloneDocument(*doc)
	return nil
}

func (m *MockDocumentStore) stored() domain.Document {
	m.mu.Lock()
	defer m.mu.Unlock()
	return cloneDocument(m.doc)
}

func (m *MockDocumentStore) saves() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.saveCalls
}

// MockValidator accepts everything unless a func is set.
type MockValidator struct {
	userNameFunc       func(name string) error
	questionFunc       func(question string) error
	descriptionFunc    func(description string) error
	predictionTextFunc func(text string) error
}

func (m *MockValidator) UserName(name string) error {
	if m.userNameFunc != nil {
		return m.userNameFunc(name)
	}
	return nil
}

func (m *MockValidator) Question(question string) error {
	if m.questionFunc != nil {
		return m.questionFunc(question)
	}
	return nil
}

func (m *MockValidator) Description(description string) error {
	if m.descriptionFunc != nil {
		return m.descriptionFunc(description)
	}
	return nil
}

func (m *MockValidator) PredictionText(text string) error {
	if m.predictionTextFunc != nil {
		return m.predictionTextFunc(text)
	}
	return nil
}

// --- Helpers ---

var testNow = time.Date(2025, 3, 14, 15, 9, 26, 0, time.Local)

func fixedClock() time.Time { return testNow }

// sequentialIds returns prefix-1, prefix-2, ...
func sequentialIds(prefix string) func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("%s-%d", prefix, n)
	}
}

func cloneDocument(doc domain.Document) domain.Document {
	res := domain.Document{
		Threads:     make([]domain.Thread, len(doc.Threads)),
		Predictions: make([]domain.Prediction, len(doc.Predictions)),
		Users:       slices.Clone(doc.Users),
	}
	for i, t := range doc.Threads {
		t.WinningPredictionIds = slices.Clone(t.WinningPredictionIds)
		res.Threads[i] = t
	}
	for i, p := range doc.Predictions {
		if p.LastEditedAt != nil {
			edited := *p.LastEditedAt
			p.LastEditedAt = &edited
		}
		res.Predictions[i] = p
	}
	return res
}

func openThread(id domain.ThreadId, creator domain.UserName) domain.Thread {
	return domain.Thread{
		Id:                   id,
		Question:             "Will it rain on " + id + "?",
		Creator:              creator,
		IsOpen:               true,
		WinningPredictionIds: []domain.PredictionId{},
		CreatedAt:            domain.NewTimestamp(testNow.Add(-time.Hour)),
	}
}

func closedThread(id domain.ThreadId, creator domain.UserName, winners ...domain.PredictionId) domain.Thread {
	t := openThread(id, creator)
	t.IsOpen = false
	t.WinningPredictionIds = append([]domain.PredictionId{}, winners...)
	return t
}

func prediction(id domain.PredictionId, threadId domain.ThreadId, author domain.UserName) domain.Prediction {
	return domain.Prediction{
		Id:        id,
		ThreadId:  threadId,
		Author:    author,
		Text:      "guess " + id,
		CreatedAt: domain.NewTimestamp(testNow.Add(-time.Minute)),
	}
}

func document(threads []domain.Thread, predictions ...domain.Prediction) domain.Document {
	doc := domain.NewDocument([]domain.UserName{"Ana", "Ben", "Cara"})
	doc.Threads = append(doc.Threads, threads...)
	doc.Predictions = append(doc.Predictions, predictions...)
	return doc
}
