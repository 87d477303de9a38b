package drafts

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	foundationerrors "git.home.luguber.info/inful/mdport/internal/foundation/errors"
)

type fakeClock struct{ t time.Time }

func (c *fakeClock) now() time.Time {
	c.t = c.t.Add(time.Second)
	return c.t
}

func stores(t *testing.T) map[string]Store {
	t.Helper()
	clock := &fakeClock{t: time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)}

	mem := NewMemoryStore()
	mem.now = clock.now

	sqlite, err := NewSQLiteStore(":memory:")
	require.NoError(t, err)
	sqlite.now = clock.now
	t.Cleanup(func() { _ = sqlite.Close() })

	return map[string]Store{"memory": mem, "sqlite": sqlite}
}

func TestStore_SaveLoadRoundTrip(t *testing.T) {
	for name, s := range stores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			saved, err := s.Save(ctx, "  notes ", "# Hello\n")
			require.NoError(t, err)
			assert.Equal(t, "notes", saved.Name)
			assert.NotEqual(t, uuid.Nil, saved.ID)
			assert.Equal(t, Fingerprint("# Hello\n"), saved.Fingerprint)

			loaded, err := s.Load(ctx, "notes")
			require.NoError(t, err)
			assert.Equal(t, saved.ID, loaded.ID)
			assert.Equal(t, "# Hello\n", loaded.Text)
			assert.Equal(t, saved.Fingerprint, loaded.Fingerprint)
			assert.True(t, saved.UpdatedAt.Equal(loaded.UpdatedAt))
		})
	}
}

func TestStore_SaveUpdatesAndKeepsID(t *testing.T) {
	for name, s := range stores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			first, err := s.Save(ctx, "d", "one")
			require.NoError(t, err)

			same, err := s.Save(ctx, "d", "one")
			require.NoError(t, err)
			assert.True(t, first.UpdatedAt.Equal(same.UpdatedAt), "unchanged text keeps the timestamp")

			second, err := s.Save(ctx, "d", "two")
			require.NoError(t, err)
			assert.Equal(t, first.ID, second.ID)
			assert.True(t, second.UpdatedAt.After(first.UpdatedAt))
			assert.NotEqual(t, first.Fingerprint, second.Fingerprint)

			loaded, err := s.Load(ctx, "d")
			require.NoError(t, err)
			assert.Equal(t, "two", loaded.Text)
		})
	}
}

func TestStore_ListOrderedByName(t *testing.T) {
	for name, s := range stores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			for _, n := range []string{"b", "c", "a"} {
				_, err := s.Save(ctx, n, "text "+n)
				require.NoError(t, err)
			}
			list, err := s.List(ctx)
			require.NoError(t, err)
			require.Len(t, list, 3)
			assert.Equal(t, []string{"a", "b", "c"}, []string{list[0].Name, list[1].Name, list[2].Name})
		})
	}
}

func TestStore_NotFoundAndDelete(t *testing.T) {
	for name, s := range stores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			_, err := s.Load(ctx, "missing")
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrDraftNotFound))
			assert.True(t, foundationerrors.HasCategory(err, foundationerrors.CategoryNotFound))

			assert.True(t, errors.Is(s.Delete(ctx, "missing"), ErrDraftNotFound))

			_, err = s.Save(ctx, "x", "y")
			require.NoError(t, err)
			require.NoError(t, s.Delete(ctx, "x"))
			_, err = s.Load(ctx, "x")
			assert.True(t, errors.Is(err, ErrDraftNotFound))
		})
	}
}

func TestStore_InvalidName(t *testing.T) {
	for name, s := range stores(t) {
		t.Run(name, func(t *testing.T) {
			_, err := s.Save(context.Background(), "   ", "text")
			assert.True(t, errors.Is(err, ErrInvalidName))
			assert.True(t, foundationerrors.HasCategory(err, foundationerrors.CategoryValidation))
		})
	}
}

func TestSQLiteStore_PersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "drafts.db")
	ctx := context.Background()

	s, err := NewSQLiteStore(path)
	require.NoError(t, err)
	saved, err := s.Save(ctx, "keep", "body")
	require.NoError(t, err)
	require.NoError(t, s.Close())

	reopened, err := NewSQLiteStore(path)
	require.NoError(t, err)
	defer func() { _ = reopened.Close() }()

	loaded, err := reopened.Load(ctx, "keep")
	require.NoError(t, err)
	assert.Equal(t, saved.ID, loaded.ID)
	assert.Equal(t, "body", loaded.Text)
}

func TestSQLiteStore_OpenFailure(t *testing.T) {
	_, err := NewSQLiteStore(filepath.Join(t.TempDir(), "missing-dir", "drafts.db"))
	require.Error(t, err)
	assert.True(t, foundationerrors.HasCategory(err, foundationerrors.CategoryStorage))
}
