package scheduler

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avoronin/reading-diary/internal/database"
	"github.com/avoronin/reading-diary/internal/database/books"
	"github.com/avoronin/reading-diary/internal/entities"
	"github.com/avoronin/reading-diary/internal/exporters"
)

func setupTestExporter(t *testing.T) (*exporters.CSVExporter, *books.Repository, func()) {
	dbPath := "./test_scheduler_" + t.Name() + ".db"

	db, err := database.NewDatabase(dbPath)
	require.NoError(t, err)

	repo := books.NewRepository(db.DB)
	cleanup := func() {
		db.Close()
		os.Remove(dbPath)
	}
	return exporters.NewCSVExporter(repo), repo, cleanup
}

func TestCSVBackupScheduler_StartAndStop(t *testing.T) {
	exporter, _, cleanup := setupTestExporter(t)
	defer cleanup()

	dir := t.TempDir()
	s := NewCSVBackupScheduler(exporter, "0 3 * * *", dir)

	require.NoError(t, s.Start(context.Background()))
	assert.True(t, s.IsRunning())

	// Start on a running scheduler is a no-op.
	require.NoError(t, s.Start(context.Background()))
	assert.True(t, s.IsRunning())

	s.Stop()
	assert.False(t, s.IsRunning())
}

func TestCSVBackupScheduler_MissingDirSkips(t *testing.T) {
	exporter, _, cleanup := setupTestExporter(t)
	defer cleanup()

	s := NewCSVBackupScheduler(exporter, "0 3 * * *", "")
	require.NoError(t, s.Start(context.Background()))
	assert.False(t, s.IsRunning())
}

func TestCSVBackupScheduler_InvalidSchedule(t *testing.T) {
	exporter, _, cleanup := setupTestExporter(t)
	defer cleanup()

	s := NewCSVBackupScheduler(exporter, "not a schedule", t.TempDir())
	assert.Error(t, s.Start(context.Background()))
}

func TestCSVBackupScheduler_RunBackupWritesFile(t *testing.T) {
	exporter, repo, cleanup := setupTestExporter(t)
	defer cleanup()

	_, err := repo.CreateBook(books.BookInput{
		Title:  "Backed Up",
		Author: "Author",
		Status: entities.StatusFinished,
	})
	require.NoError(t, err)

	dir := t.TempDir()
	s := NewCSVBackupScheduler(exporter, "0 3 * * *", dir)
	s.runBackup()

	entries, err := filepath.Glob(filepath.Join(dir, "reading-diary-*.csv"))
	require.NoError(t, err)
	require.Len(t, entries, 1)

	content, err := os.ReadFile(entries[0])
	require.NoError(t, err)
	assert.Contains(t, string(content), "Backed Up")
}
