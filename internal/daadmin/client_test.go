package daadmin

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kebairia/dabackup/internal/logger"
)

// staticToken is a test TokenSource that returns a fixed token.
type staticToken string

func (t staticToken) Token(_ context.Context) (string, error) {
	return string(t), nil
}

func newTestClient(t *testing.T, url string) *Client {
	t.Helper()
	return NewClient(url, http.DefaultClient, staticToken("test-token"), logger.Global())
}

func TestList_BareArray(t *testing.T) {
	var gotAuth, gotAccept, gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotAccept = r.Header.Get("Accept")
		gotPath = r.URL.Path
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[
			{"name":"index","path":"/o/r/index","ext":"html","lastModified":1700000000},
			{"name":"drafts","path":"/o/r/drafts"}
		]`))
	}))
	defer srv.Close()

	client := newTestClient(t, srv.URL)
	sources, err := client.List(context.Background(), "o", "r", "")
	require.NoError(t, err)

	assert.Equal(t, "Bearer test-token", gotAuth)
	assert.Equal(t, "application/json", gotAccept)
	assert.Equal(t, "/list/o/r", gotPath)

	require.Len(t, sources, 2)
	assert.Equal(t, "index", sources[0].Name)
	assert.Equal(t, "/o/r/index", sources[0].Path)
	assert.Equal(t, "html", sources[0].Ext)
	assert.Equal(t, float64(1700000000), sources[0].Extra["lastModified"])
	assert.Equal(t, "drafts", sources[1].Name)
	assert.Empty(t, sources[1].Ext)
}

func TestList_WrappedObject(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/list/o/r/de/products", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"sources":[{"name":"catalog","path":"/o/r/de/products/catalog","ext":"json"}]}`))
	}))
	defer srv.Close()

	client := newTestClient(t, srv.URL)
	sources, err := client.List(context.Background(), "o", "r", "de/products")
	require.NoError(t, err)

	require.Len(t, sources, 1)
	assert.Equal(t, "catalog", sources[0].Name)
}

func TestList_HTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte("boom"))
	}))
	defer srv.Close()

	client := newTestClient(t, srv.URL)
	_, err := client.List(context.Background(), "o", "r", "")
	require.Error(t, err)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusInternalServerError, apiErr.StatusCode)
	assert.Equal(t, "boom", apiErr.Body)
	assert.True(t, errors.Is(err, ErrServerError))
}

func TestCreateFolder(t *testing.T) {
	var gotMethod, gotPath, gotContentType string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
		gotContentType = r.Header.Get("Content-Type")
		w.WriteHeader(http.StatusCreated)
	}))
	defer srv.Close()

	client := newTestClient(t, srv.URL)
	client.now = func() time.Time {
		return time.Date(2026, 8, 23, 10, 30, 45, 123000000, time.UTC)
	}

	folder, err := client.CreateFolder(context.Background(), "o", "r", "de/products")
	require.NoError(t, err)

	assert.Equal(t, http.MethodPost, gotMethod)
	assert.Equal(t, "/source/o/r/de/products/backup-2026-08-23T10-30-45", gotPath)
	// Bodyless calls are still typed JSON; only multipart differs
	assert.Equal(t, "application/json", gotContentType)
	assert.Equal(t, "backup-2026-08-23T10-30-45", folder.Name)
	assert.Equal(t, "de/products/backup-2026-08-23T10-30-45", folder.Path)
}

func TestCreateFolder_Error(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		_, _ = w.Write([]byte("nope"))
	}))
	defer srv.Close()

	client := newTestClient(t, srv.URL)
	_, err := client.CreateFolder(context.Background(), "o", "r", "")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrForbidden))
}

func TestMove(t *testing.T) {
	var gotEscapedPath, gotContentType, gotDestination string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotEscapedPath = r.URL.EscapedPath()
		gotContentType = r.Header.Get("Content-Type")
		require.NoError(t, r.ParseMultipartForm(1<<20))
		gotDestination = r.FormValue("destination")
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	client := newTestClient(t, srv.URL)
	err := client.Move(context.Background(), "/o/r/my page#1", "/o/r/backup-x/my page#1")
	require.NoError(t, err)

	assert.Equal(t, "/move/o/r/my%20page%231", gotEscapedPath)
	assert.True(t, strings.HasPrefix(gotContentType, "multipart/form-data; boundary="),
		"unexpected content type %q", gotContentType)
	assert.Equal(t, "/o/r/backup-x/my page#1", gotDestination)
}

func TestMove_Error(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusConflict)
		_, _ = w.Write([]byte("already there"))
	}))
	defer srv.Close()

	client := newTestClient(t, srv.URL)
	err := client.Move(context.Background(), "/o/r/index", "/o/r/backup-x/index")
	require.Error(t, err)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusConflict, apiErr.StatusCode)
	assert.Equal(t, "already there", apiErr.Body)
}

func TestDo_NoContent(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	client := newTestClient(t, srv.URL)
	result, err := client.do(context.Background(), http.MethodPost, "/source/o/r/x", nil, "")
	require.NoError(t, err)
	assert.Nil(t, result)
}

func TestDo_NonJSONBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain")
		_, _ = w.Write([]byte("plain text"))
	}))
	defer srv.Close()

	client := newTestClient(t, srv.URL)
	result, err := client.do(context.Background(), http.MethodGet, "/list/o/r", nil, "")
	require.NoError(t, err)
	assert.Equal(t, "plain text", result)
}
