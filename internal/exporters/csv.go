package exporters

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"

	"github.com/avoronin/reading-diary/internal/entities"
)

// BookLister provides read access to the book listing.
type BookLister interface {
	ListBooks(search string) ([]entities.Book, error)
}

// csvHeader is the fixed column order of the export file. Changing it breaks
// compatibility with previously exported files.
var csvHeader = []string{
	"id", "title", "author", "genre", "status",
	"start_date", "finish_date", "rating", "pages", "review",
}

const csvDateLayout = "2006-01-02"

// CSVExporter serializes the full, unfiltered book listing to a CSV file.
type CSVExporter struct {
	books BookLister
}

func NewCSVExporter(books BookLister) *CSVExporter {
	return &CSVExporter{books: books}
}

// Export writes the listing to path, UTF-8 encoded with a header row.
// Missing rating and review render as empty strings, missing pages as 0.
func (e *CSVExporter) Export(path string) error {
	books, err := e.books.ListBooks("")
	if err != nil {
		return fmt.Errorf("failed to load books for export: %w", err)
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create export file: %w", err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	if err := writer.Write(csvHeader); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	for i := range books {
		if err := writer.Write(bookRecord(&books[i])); err != nil {
			return fmt.Errorf("failed to write book %d: %w", books[i].ID, err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("failed to flush CSV: %w", err)
	}
	return nil
}

func bookRecord(book *entities.Book) []string {
	rating := ""
	if book.Rating != nil {
		rating = strconv.Itoa(*book.Rating)
	}
	startDate := ""
	if book.StartDate != nil {
		startDate = book.StartDate.Format(csvDateLayout)
	}
	finishDate := ""
	if book.FinishDate != nil {
		finishDate = book.FinishDate.Format(csvDateLayout)
	}

	return []string{
		strconv.FormatUint(uint64(book.ID), 10),
		book.Title,
		book.Author,
		book.GenreName(),
		string(book.Status),
		startDate,
		finishDate,
		rating,
		strconv.Itoa(book.Pages),
		book.Review,
	}
}
