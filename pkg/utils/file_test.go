package utils

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(os.Stderr)
	log.SetLevel(logrus.PanicLevel)
	return log
}

func TestCleanDir_PopulatedDirectory(t *testing.T) {
	dir := t.TempDir()

	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.mp3"), []byte("x"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b.mp4"), []byte("y"), 0644))
	sub := filepath.Join(dir, "nested")
	require.NoError(t, os.MkdirAll(sub, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(sub, "c.png"), []byte("z"), 0644))

	err := CleanDir(testLogger(), dir)
	require.NoError(t, err)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries, "directory should exist and be empty")
}

func TestCleanDir_MissingDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "not", "yet", "there")

	err := CleanDir(testLogger(), dir)
	require.NoError(t, err)

	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestCleanDir_Idempotent(t *testing.T) {
	dir := t.TempDir()

	require.NoError(t, CleanDir(testLogger(), dir))
	require.NoError(t, CleanDir(testLogger(), dir))
}

func TestFileSizeMB(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "data.bin")
	require.NoError(t, os.WriteFile(file, make([]byte, 1024*1024), 0644))

	assert.InDelta(t, 1.0, FileSizeMB(file), 0.001)
	assert.Equal(t, 0.0, FileSizeMB(filepath.Join(dir, "missing.bin")))
}

func TestDirSizeMB(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a"), make([]byte, 512*1024), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b"), make([]byte, 512*1024), 0644))

	assert.InDelta(t, 1.0, DirSizeMB(dir), 0.001)
}
