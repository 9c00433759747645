package pipeline

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/galvictor/assetfetch/internal/category"
	"github.com/galvictor/assetfetch/internal/common/config"
	"github.com/galvictor/assetfetch/internal/fetcher"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *logrus.Logger {
	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)
	return log
}

func newTestPipeline(t *testing.T, baseDir string) *Pipeline {
	t.Helper()
	cfg := &config.DownloaderConfig{
		UserAgent:      "assetfetch-test",
		RequestTimeout: 5,
		DelayMs:        0,
		BaseDir:        baseDir,
	}
	log := testLogger()
	f := fetcher.New(cfg, log)
	f.SetProgressOutput(io.Discard)
	return New(cfg, log, f)
}

func TestLoadURLs(t *testing.T) {
	dir := t.TempDir()

	t.Run("valid list", func(t *testing.T) {
		path := filepath.Join(dir, "urls.json")
		require.NoError(t, os.WriteFile(path, []byte(`["https://a.test/x.mp3","https://a.test/y.mp4"]`), 0644))

		urls, err := LoadURLs(path)
		require.NoError(t, err)
		assert.Equal(t, []string{"https://a.test/x.mp3", "https://a.test/y.mp4"}, urls)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := LoadURLs(filepath.Join(dir, "nope.json"))
		assert.Error(t, err)
	})

	t.Run("malformed json", func(t *testing.T) {
		path := filepath.Join(dir, "bad.json")
		require.NoError(t, os.WriteFile(path, []byte(`{"not":"a list"}`), 0644))

		_, err := LoadURLs(path)
		assert.Error(t, err)
	})
}

func TestRun_EndToEnd(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/a.mp3":
			w.Write([]byte("audio-bytes"))
		case "/b.mp4":
			w.Write([]byte("video-bytes!"))
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	baseDir := t.TempDir()
	p := newTestPipeline(t, baseDir)

	urls := []string{
		srv.URL + "/a.mp3",
		srv.URL + "/b.mp4",
		srv.URL + "/c.txt",      // unrecognized extension
		srv.URL + "/broken.png", // 404
	}

	totals, err := p.Run(context.Background(), urls)
	require.NoError(t, err)

	assert.Equal(t, 1, totals.PerCategory[category.Audio].Count)
	assert.Equal(t, int64(len("audio-bytes")), totals.PerCategory[category.Audio].Bytes)
	assert.Equal(t, 1, totals.PerCategory[category.Video].Count)
	assert.Equal(t, 0, totals.PerCategory[category.Image].Count)
	assert.Equal(t, 2, totals.Errors)
	assert.Equal(t, 4, totals.TotalURLs)

	// successes + errors always add up to the url count
	assert.Equal(t, totals.TotalURLs, totals.SuccessCount()+totals.Errors)

	assert.FileExists(t, filepath.Join(baseDir, "audios", "a.mp3"))
	assert.FileExists(t, filepath.Join(baseDir, "videos", "b.mp4"))

	imgEntries, err := os.ReadDir(filepath.Join(baseDir, "images"))
	require.NoError(t, err)
	assert.Empty(t, imgEntries, "no image entries should be created")
}

func TestRun_PreparesDirectories(t *testing.T) {
	baseDir := t.TempDir()

	// A leftover from a previous run must be cleared before downloading.
	stale := filepath.Join(baseDir, "videos", "stale.mp4")
	require.NoError(t, os.MkdirAll(filepath.Dir(stale), 0755))
	require.NoError(t, os.WriteFile(stale, []byte("old"), 0644))

	p := newTestPipeline(t, baseDir)
	totals, err := p.Run(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, 0, totals.TotalURLs)

	for _, c := range category.All() {
		entries, err := os.ReadDir(filepath.Join(baseDir, c.Dir()))
		require.NoError(t, err)
		assert.Empty(t, entries)
	}
}

func TestRun_QueryStringFilename(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("img"))
	}))
	defer srv.Close()

	baseDir := t.TempDir()
	p := newTestPipeline(t, baseDir)

	totals, err := p.Run(context.Background(), []string{srv.URL + "/photo.jpg?size=large#main"})
	require.NoError(t, err)

	assert.Equal(t, 1, totals.PerCategory[category.Image].Count)
	assert.FileExists(t, filepath.Join(baseDir, "images", "photo.jpg"))
}
