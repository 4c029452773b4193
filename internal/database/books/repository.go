// Package books provides database operations for the reading diary book
// records and their genres.
//
// # Usage
//
//	repo := books.NewRepository(db)
//	id, err := repo.CreateBook(input)
package books

import (
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/avoronin/reading-diary/internal/entities"
)

// BookInput carries every writable field of a book. The genre is passed by
// name and resolved to a genre id inside the write path; an unknown name
// stores a NULL genre reference rather than failing.
type BookInput struct {
	Title      string
	Author     string
	Genre      string
	Status     entities.Status
	StartDate  *time.Time
	FinishDate *time.Time
	Rating     *int
	Review     string
	CoverImage []byte
	Pages      int
}

// Repository handles all book and genre database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new books repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

func validateInput(input BookInput) error {
	if strings.TrimSpace(input.Title) == "" {
		return entities.ErrEmptyTitle
	}
	if strings.TrimSpace(input.Author) == "" {
		return entities.ErrEmptyAuthor
	}
	if !input.Status.Valid() {
		return fmt.Errorf("%w: got %q", entities.ErrInvalidStatus, input.Status)
	}
	if input.Rating != nil && (*input.Rating < 1 || *input.Rating > 5) {
		return fmt.Errorf("%w: got %d", entities.ErrInvalidRating, *input.Rating)
	}
	return nil
}

// resolveGenreID maps a genre name to its id by exact match. A miss returns
// nil: the book is stored without a genre reference.
func (r *Repository) resolveGenreID(name string) *uint {
	if name == "" {
		return nil
	}
	var genre entities.Genre
	if err := r.db.Where("name = ?", name).First(&genre).Error; err != nil {
		return nil
	}
	return &genre.ID
}

// CreateBook inserts a new book and returns its assigned id. The genre name
// is re-resolved on every call.
func (r *Repository) CreateBook(input BookInput) (uint, error) {
	if err := validateInput(input); err != nil {
		return 0, err
	}

	book := entities.Book{
		Title:      input.Title,
		Author:     input.Author,
		GenreID:    r.resolveGenreID(input.Genre),
		Status:     input.Status,
		StartDate:  input.StartDate,
		FinishDate: input.FinishDate,
		Rating:     input.Rating,
		Review:     input.Review,
		CoverImage: input.CoverImage,
		Pages:      input.Pages,
	}

	if err := r.db.Create(&book).Error; err != nil {
		return 0, fmt.Errorf("failed to create book: %w", err)
	}
	return book.ID, nil
}

// UpdateBook overwrites every field of the book except id and created_at,
// refreshing updated_at. It returns false when no row with the given id
// exists; callers must check the flag, absence is not an error.
func (r *Repository) UpdateBook(id uint, input BookInput) (bool, error) {
	if err := validateInput(input); err != nil {
		return false, err
	}

	result := r.db.Model(&entities.Book{}).Where("id = ?", id).Updates(map[string]any{
		"title":       input.Title,
		"author":      input.Author,
		"genre_id":    r.resolveGenreID(input.Genre),
		"status":      input.Status,
		"start_date":  input.StartDate,
		"finish_date": input.FinishDate,
		"rating":      input.Rating,
		"review":      input.Review,
		"cover_image": input.CoverImage,
		"pages":       input.Pages,
	})
	if result.Error != nil {
		return false, fmt.Errorf("failed to update book %d: %w", id, result.Error)
	}
	return result.RowsAffected > 0, nil
}

// DeleteBook removes the book permanently. It returns false when no row with
// the given id exists.
func (r *Repository) DeleteBook(id uint) (bool, error) {
	result := r.db.Delete(&entities.Book{}, id)
	if result.Error != nil {
		return false, fmt.Errorf("failed to delete book %d: %w", id, result.Error)
	}
	return result.RowsAffected > 0, nil
}

// GetBookByID retrieves a single book with its genre preloaded. A missing id
// yields (nil, nil), not an error.
func (r *Repository) GetBookByID(id uint) (*entities.Book, error) {
	var book entities.Book
	err := r.db.Preload("Genre").First(&book, id).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &book, nil
}

// ListBooks returns all books (newest created first) when search is empty,
// otherwise the books whose title or author contains search as a
// case-insensitive substring. LIKE wildcards in the input are intentionally
// not escaped, matching the historical search behavior.
func (r *Repository) ListBooks(search string) ([]entities.Book, error) {
	var books []entities.Book
	query := r.db.Preload("Genre").Order("created_at DESC")
	if search != "" {
		searchPattern := "%" + search + "%"
		query = query.Where("LOWER(title) LIKE LOWER(?) OR LOWER(author) LIKE LOWER(?)", searchPattern, searchPattern)
	}
	err := query.Find(&books).Error
	return books, err
}

// ListGenres returns all genres in alphabetical order.
func (r *Repository) ListGenres() ([]entities.Genre, error) {
	var genres []entities.Genre
	err := r.db.Order("name ASC").Find(&genres).Error
	return genres, err
}
