package exporters

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avoronin/reading-diary/internal/database"
	"github.com/avoronin/reading-diary/internal/database/books"
	"github.com/avoronin/reading-diary/internal/entities"
)

func setupTestDB(t *testing.T) (*books.Repository, func()) {
	dbPath := "./test_export_" + t.Name() + ".db"

	db, err := database.NewDatabase(dbPath)
	require.NoError(t, err)

	cleanup := func() {
		db.Close()
		os.Remove(dbPath)
	}

	return books.NewRepository(db.DB), cleanup
}

func intPtr(v int) *int {
	return &v
}

func readCSV(t *testing.T, path string) [][]string {
	t.Helper()
	file, err := os.Open(path)
	require.NoError(t, err)
	defer file.Close()

	records, err := csv.NewReader(file).ReadAll()
	require.NoError(t, err)
	return records
}

func TestCSVExporter_Export(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()

	finishDate := time.Date(2024, time.March, 10, 0, 0, 0, 0, time.UTC)
	id1, err := repo.CreateBook(books.BookInput{
		Title:      "Dune",
		Author:     "Frank Herbert",
		Genre:      "Science Fiction",
		Status:     entities.StatusFinished,
		FinishDate: &finishDate,
		Rating:     intPtr(5),
		Review:     "Spice, politics, worms",
		Pages:      412,
	})
	require.NoError(t, err)
	time.Sleep(10 * time.Millisecond)
	id2, err := repo.CreateBook(books.BookInput{
		Title:  "Untitled, For Now",
		Author: "Anonymous",
		Status: entities.StatusWantToRead,
	})
	require.NoError(t, err)

	outPath := filepath.Join(t.TempDir(), "books.csv")
	exporter := NewCSVExporter(repo)
	require.NoError(t, exporter.Export(outPath))

	records := readCSV(t, outPath)
	// Header plus one row per book, no trailing statistics rows.
	require.Len(t, records, 3)

	assert.Equal(t, csvHeader, records[0])

	// Listing order is newest first.
	newest := records[1]
	assert.Equal(t, []string{
		uintString(id2), "Untitled, For Now", "Anonymous", "", "want_to_read",
		"", "", "", "0", "",
	}, newest)

	oldest := records[2]
	assert.Equal(t, []string{
		uintString(id1), "Dune", "Frank Herbert", "Science Fiction", "finished",
		"", "2024-03-10", "5", "412", "Spice, politics, worms",
	}, oldest)
}

func TestCSVExporter_Export_QuotedFields(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()

	_, err := repo.CreateBook(books.BookInput{
		Title:  `A "Strange", Title`,
		Author: "Author",
		Status: entities.StatusReading,
		Review: "line one\nline two",
	})
	require.NoError(t, err)

	outPath := filepath.Join(t.TempDir(), "books.csv")
	exporter := NewCSVExporter(repo)
	require.NoError(t, exporter.Export(outPath))

	// Round-tripping through a CSV reader reproduces the raw field values.
	records := readCSV(t, outPath)
	require.Len(t, records, 2)
	assert.Equal(t, `A "Strange", Title`, records[1][1])
	assert.Equal(t, "line one\nline two", records[1][9])
}

func TestCSVExporter_Export_EmptyStore(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()

	outPath := filepath.Join(t.TempDir(), "books.csv")
	exporter := NewCSVExporter(repo)
	require.NoError(t, exporter.Export(outPath))

	records := readCSV(t, outPath)
	require.Len(t, records, 1)
	assert.Equal(t, csvHeader, records[0])
}

func TestCSVExporter_Export_BadPath(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()

	exporter := NewCSVExporter(repo)
	err := exporter.Export("/nonexistent-dir/books.csv")
	assert.Error(t, err)
}

func uintString(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}
