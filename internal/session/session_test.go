package session

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ziadkadry99/splatdocs/internal/db"
)

func stores(t *testing.T) map[string]Store {
	t.Helper()
	d, err := db.OpenMemory()
	require.NoError(t, err)
	t.Cleanup(func() { d.Close() })
	return map[string]Store{
		"memory": NewMemoryStore(),
		"sqlite": NewSQLStore(d),
	}
}

func TestStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	for name, s := range stores(t) {
		t.Run(name, func(t *testing.T) {
			_, err := s.Get(ctx, "missing")
			assert.True(t, errors.Is(err, ErrNotFound))

			rec := &Record{ID: "v1", Lang: "en", Expanded: []string{"part-1", "part-3"}}
			require.NoError(t, s.Save(ctx, rec))
			assert.False(t, rec.UpdatedAt.IsZero())

			got, err := s.Get(ctx, "v1")
			require.NoError(t, err)
			assert.Equal(t, "en", got.Lang)
			assert.Equal(t, []string{"part-1", "part-3"}, got.Expanded)

			rec.Lang = "es"
			rec.Expanded = nil
			require.NoError(t, s.Save(ctx, rec))
			got, err = s.Get(ctx, "v1")
			require.NoError(t, err)
			assert.Equal(t, "es", got.Lang)
			assert.Empty(t, got.Expanded)

			require.NoError(t, s.Delete(ctx, "v1"))
			_, err = s.Get(ctx, "v1")
			assert.ErrorIs(t, err, ErrNotFound)
		})
	}
}

func TestStorePurge(t *testing.T) {
	ctx := context.Background()
	for name, s := range stores(t) {
		t.Run(name, func(t *testing.T) {
			require.NoError(t, s.Save(ctx, &Record{ID: "old", Lang: "es"}))
			require.NoError(t, s.Save(ctx, &Record{ID: "new", Lang: "es"}))

			n, err := s.Purge(ctx, time.Now().Add(-time.Hour))
			require.NoError(t, err)
			assert.Equal(t, 0, n)

			n, err = s.Purge(ctx, time.Now().Add(2*time.Second))
			require.NoError(t, err)
			assert.Equal(t, 2, n)
		})
	}
}

func TestMemoryStoreIsolatesCallers(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	rec := &Record{ID: "v", Lang: "es", Expanded: []string{"part-1"}}
	require.NoError(t, s.Save(ctx, rec))
	rec.Expanded[0] = "mutated"

	got, err := s.Get(ctx, "v")
	require.NoError(t, err)
	assert.Equal(t, "part-1", got.Expanded[0])
	got.Expanded[0] = "again"

	again, _ := s.Get(ctx, "v")
	assert.Equal(t, "part-1", again.Expanded[0])
	assert.Equal(t, 1, s.Len())
}

func TestCookiesIssueAndReuseVisitorID(t *testing.T) {
	c := NewCookies("test-secret", 30)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	id, issued, err := c.VisitorID(rec, req)
	require.NoError(t, err)
	assert.True(t, issued)
	assert.NotEmpty(t, id)

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.True(t, cookies[0].HttpOnly)

	req2 := httptest.NewRequest(http.MethodGet, "/", nil)
	req2.AddCookie(cookies[0])
	again, issued, err := c.VisitorID(httptest.NewRecorder(), req2)
	require.NoError(t, err)
	assert.False(t, issued)
	assert.Equal(t, id, again)
}

func TestCookiesRejectForeignSecret(t *testing.T) {
	rec := httptest.NewRecorder()
	id, _, err := NewCookies("one", 1).VisitorID(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(rec.Result().Cookies()[0])
	other, issued, err := NewCookies("two", 1).VisitorID(httptest.NewRecorder(), req)
	require.NoError(t, err)
	assert.True(t, issued)
	assert.NotEqual(t, id, other)
}
