package source

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"media-scribe-go/internal/logger"
	"media-scribe-go/internal/pipeline"
	"media-scribe-go/internal/workspace"
)

func newTestDownloader(t *testing.T) (*URLDownloader, *workspace.Workspace) {
	t.Helper()
	log := logger.New()
	ws, err := workspace.New(t.TempDir(), log)
	require.NoError(t, err)
	return NewURLDownloader(ws, log), ws
}

func TestFetchWritesBodyToUniqueFile(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "audio/mpeg")
		_, _ = w.Write([]byte("mp3-payload"))
	}))
	defer srv.Close()

	d, ws := newTestDownloader(t)
	path, err := d.Fetch(context.Background(), srv.URL+"/episode.mp3")
	require.NoError(t, err)

	assert.Equal(t, ws.Dir(), filepath.Dir(path))
	assert.True(t, strings.HasPrefix(filepath.Base(path), "url_"))
	assert.True(t, strings.HasSuffix(path, ".mp3"))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "mp3-payload", string(data))
}

func TestFetchRejectsNonSuccessStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "<html>not found</html>", http.StatusNotFound)
	}))
	defer srv.Close()

	d, ws := newTestDownloader(t)
	_, err := d.Fetch(context.Background(), srv.URL+"/gone.mp3")
	require.Error(t, err)
	assert.Equal(t, pipeline.KindSourceUnavailable, pipeline.KindOf(err))

	entries, readErr := os.ReadDir(ws.Dir())
	require.NoError(t, readErr)
	assert.Empty(t, entries, "an error page must never be written to disk as audio")
}

func TestFetchTransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // connection refused from here on

	d, _ := newTestDownloader(t)
	_, err := d.Fetch(context.Background(), srv.URL+"/a.mp3")
	require.Error(t, err)
	assert.Equal(t, pipeline.KindSourceUnavailable, pipeline.KindOf(err))
}

func TestFetchUniqueNamesDoNotCollide(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("x"))
	}))
	defer srv.Close()

	d, _ := newTestDownloader(t)
	p1, err := d.Fetch(context.Background(), srv.URL)
	require.NoError(t, err)
	p2, err := d.Fetch(context.Background(), srv.URL)
	require.NoError(t, err)
	assert.NotEqual(t, p1, p2)
}
