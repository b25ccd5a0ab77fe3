package storage

import (
	"context"
	stderrors "errors"
	"testing"

	"github.com/adivinatobi/adivinatobi/shared/domain"
	"github.com/adivinatobi/adivinatobi/shared/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockStore struct {
	LoadFunc  func(ctx context.Context) (domain.Document, error)
	SaveFunc  func(ctx context.Context, doc *domain.Document) error
	loadCalls int
	saveCalls int
}

func (m *mockStore) Load(ctx context.Context) (domain.Document, error) {
	m.loadCalls++
	if m.LoadFunc != nil {
		return m.LoadFunc(ctx)
	}
	return domain.NewDocument(nil), nil
}

func (m *mockStore) Save(ctx context.Context, doc *domain.Document) error {
	m.saveCalls++
	if m.SaveFunc != nil {
		return m.SaveFunc(ctx, doc)
	}
	return nil
}

func TestFallbackLoad(t *testing.T) {
	ctx := context.Background()
	unreachable := &errors.PersistenceError{Op: "load", Err: stderrors.New("dial tcp: connection refused")}

	t.Run("primary success", func(t *testing.T) {
		primary := &mockStore{LoadFunc: func(ctx context.Context) (domain.Document, error) {
			return domain.NewDocument([]domain.UserName{"primary"}), nil
		}}
		secondary := &mockStore{}

		doc, err := NewFallback(primary, secondary).Load(ctx)

		require.NoError(t, err)
		assert.Equal(t, []domain.UserName{"primary"}, doc.Users)
		assert.Zero(t, secondary.loadCalls)
	})

	t.Run("persistence failure is redirected", func(t *testing.T) {
		primary := &mockStore{LoadFunc: func(ctx context.Context) (domain.Document, error) {
			return domain.Document{}, unreachable
		}}
		secondary := &mockStore{LoadFunc: func(ctx context.Context) (domain.Document, error) {
			return domain.NewDocument([]domain.UserName{"local"}), nil
		}}

		doc, err := NewFallback(primary, secondary).Load(ctx)

		require.NoError(t, err)
		assert.Equal(t, []domain.UserName{"local"}, doc.Users)
		assert.Equal(t, 1, secondary.loadCalls)
	})

	t.Run("validation failure is not redirected", func(t *testing.T) {
		primary := &mockStore{LoadFunc: func(ctx context.Context) (domain.Document, error) {
			return domain.Document{}, &errors.ValidationError{Message: "thread without id"}
		}}
		secondary := &mockStore{}

		_, err := NewFallback(primary, secondary).Load(ctx)

		assert.True(t, errors.Is[*errors.ValidationError](err))
		assert.Zero(t, secondary.loadCalls)
	})
}

func TestFallbackSave(t *testing.T) {
	ctx := context.Background()
	doc := domain.NewDocument(nil)

	t.Run("persistence failure is redirected", func(t *testing.T) {
		primary := &mockStore{SaveFunc: func(ctx context.Context, doc *domain.Document) error {
			return &errors.PersistenceError{Op: "save", Err: stderrors.New("timeout")}
		}}
		secondary := &mockStore{}

		require.NoError(t, NewFallback(primary, secondary).Save(ctx, &doc))
		assert.Equal(t, 1, primary.saveCalls)
		assert.Equal(t, 1, secondary.saveCalls)
	})

	t.Run("both failing surfaces the secondary error", func(t *testing.T) {
		primary := &mockStore{SaveFunc: func(ctx context.Context, doc *domain.Document) error {
			return &errors.PersistenceError{Op: "save", Err: stderrors.New("timeout")}
		}}
		secondary := &mockStore{SaveFunc: func(ctx context.Context, doc *domain.Document) error {
			return &errors.PersistenceError{Op: "save", Err: stderrors.New("disk full")}
		}}

		err := NewFallback(primary, secondary).Save(ctx, &doc)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "disk full")
	})

	t.Run("primary success skips secondary", func(t *testing.T) {
		primary := &mockStore{}
		secondary := &mockStore{}

		require.NoError(t, NewFallback(primary, secondary).Save(ctx, &doc))
		assert.Zero(t, secondary.saveCalls)
	})
}

type pingStore struct {
	mockStore
	err error
}

func (p *pingStore) Ping(ctx context.Context) error {
	return p.err
}

func TestFallbackPing(t *testing.T) {
	ctx := context.Background()
	down := &errors.PersistenceError{Op: "ping", Err: stderrors.New("connection refused")}

	t.Run("primary reachable", func(t *testing.T) {
		assert.NoError(t, NewFallback(&pingStore{}, &pingStore{err: down}).Ping(ctx))
	})

	t.Run("secondary covers primary", func(t *testing.T) {
		assert.NoError(t, NewFallback(&pingStore{err: down}, &pingStore{}).Ping(ctx))
	})

	t.Run("both down", func(t *testing.T) {
		err := NewFallback(&pingStore{err: down}, &pingStore{err: down}).Ping(ctx)

		assert.ErrorIs(t, err, down)
	})

	t.Run("stores without ping count as reachable", func(t *testing.T) {
		assert.NoError(t, NewFallback(&mockStore{}, &mockStore{}).Ping(ctx))
	})
}
