package entities

import (
	"errors"
	"time"
)

// Status tracks where a book sits in the reading lifecycle.
type Status string

const (
	StatusWantToRead Status = "want_to_read"
	StatusReading    Status = "reading"
	StatusFinished   Status = "finished"
	StatusOnHold     Status = "on_hold"
)

// Valid reports whether the status is one of the four known values.
func (s Status) Valid() bool {
	switch s {
	case StatusWantToRead, StatusReading, StatusFinished, StatusOnHold:
		return true
	}
	return false
}

// Validation errors returned by the books repository before any write.
var (
	ErrEmptyTitle    = errors.New("title must not be empty")
	ErrEmptyAuthor   = errors.New("author must not be empty")
	ErrInvalidStatus = errors.New("status must be one of: want_to_read, reading, finished, on_hold")
	ErrInvalidRating = errors.New("rating must be between 1 and 5")
)

type Genre struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Name string `gorm:"uniqueIndex;size:100;not null" json:"name"`
}

type Book struct {
	ID         uint       `gorm:"primaryKey" json:"id"`
	Title      string     `gorm:"index;size:512;not null" json:"title"`
	Author     string     `gorm:"index;size:256;not null" json:"author"`
	GenreID    *uint      `gorm:"index" json:"genre_id,omitempty"`
	Genre      *Genre     `gorm:"foreignKey:GenreID" json:"genre,omitempty"`
	Status     Status     `gorm:"size:20" json:"status"`
	StartDate  *time.Time `json:"start_date,omitempty"`
	FinishDate *time.Time `json:"finish_date,omitempty"`
	Rating     *int       `gorm:"check:chk_books_rating,rating >= 1 AND rating <= 5" json:"rating,omitempty"`
	Review     string     `gorm:"type:text" json:"review,omitempty"`
	CoverImage []byte     `gorm:"type:blob" json:"cover_image,omitempty"`
	Pages      int        `gorm:"default:0" json:"pages"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

// GenreName returns the joined genre name, or "" when the book has no genre.
func (b *Book) GenreName() string {
	if b.Genre != nil {
		return b.Genre.Name
	}
	return ""
}

func (Genre) TableName() string {
	return "genres"
}

func (Book) TableName() string {
	return "books"
}
