package jsonbin

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AnshRaj112/pastebin-backend/internal/config"
)

func newTestClient(baseURL string) *Client {
	return NewClient(&config.Config{JSONBinBaseURL: baseURL, JSONBinAPIKey: "master-key"})
}

func TestReadBin(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/b/abc123", r.URL.Path)
		assert.Equal(t, "master-key", r.Header.Get("X-Master-Key"))
		w.Write([]byte(`{"record":{"content":"hello"},"metadata":{"id":"abc123"}}`))
	}))
	defer srv.Close()

	record, err := newTestClient(srv.URL).ReadBin(context.Background(), "abc123")
	require.NoError(t, err)
	assert.JSONEq(t, `{"content":"hello"}`, string(record))
}

func TestReadBin_NotFound(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"message":"bin not found"}`, http.StatusNotFound)
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL).ReadBin(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestReadBin_UpstreamError(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusBadGateway)
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL).ReadBin(context.Background(), "abc123")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrNotFound, "non-404 failures are generic upstream errors")
}

func TestCreateBin(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/b", r.URL.Path)
		assert.Equal(t, "my-collection", r.Header.Get("X-Collection-Id"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "hello", body["content"])

		w.Write([]byte(`{"metadata":{"id":"new-bin-id"}}`))
	}))
	defer srv.Close()

	binID, err := newTestClient(srv.URL).CreateBin(context.Background(), map[string]string{"content": "hello"}, "my-collection")
	require.NoError(t, err)
	assert.Equal(t, "new-bin-id", binID)
}

func TestUpdateBin(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/b/abc123", r.URL.Path)
		w.Write([]byte(`{"metadata":{"id":"abc123"}}`))
	}))
	defer srv.Close()

	err := newTestClient(srv.URL).UpdateBin(context.Background(), "abc123", map[string]string{"content": "updated"})
	assert.NoError(t, err)
}

func TestDeleteBin_NotFound(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		http.Error(w, `{"message":"bin not found"}`, http.StatusNotFound)
	}))
	defer srv.Close()

	err := newTestClient(srv.URL).DeleteBin(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestListCollection(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/c/my-collection/bins", r.URL.Path)
		w.Write([]byte(`[{"id":"bin-1"},{"id":"bin-2"}]`))
	}))
	defer srv.Close()

	bins, err := newTestClient(srv.URL).ListCollection(context.Background(), "my-collection")
	require.NoError(t, err)
	require.Len(t, bins, 2)
	assert.Equal(t, "bin-1", bins[0].ID)
	assert.Equal(t, "bin-2", bins[1].ID)
}
