// Package stats derives aggregate views over the full book set. Every call
// recomputes from scratch; the search filter used for listings never applies
// here.
package stats

import (
	"fmt"
	"math"

	"gorm.io/gorm"

	"github.com/avoronin/reading-diary/internal/entities"
)

// Snapshot is a point-in-time aggregation over all books.
type Snapshot struct {
	Total         int64         `json:"total"`
	ReadCount     int64         `json:"read_count"`
	ReadingCount  int64         `json:"reading_count"`
	WishlistCount int64         `json:"wishlist_count"`
	AvgRating     float64       `json:"avg_rating"`
	TotalPages    int64         `json:"total_pages"`
	Genres        []GenreCount  `json:"genres"`
	Ratings       []RatingCount `json:"ratings"`
	Monthly       []PeriodCount `json:"monthly"`
	Yearly        []PeriodCount `json:"yearly"`
}

type GenreCount struct {
	Genre string `json:"genre"`
	Count int64  `json:"count"`
}

type RatingCount struct {
	Rating int   `json:"rating"`
	Count  int64 `json:"count"`
}

// PeriodCount holds finished-book counts for one calendar period,
// "YYYY-MM" for months and "YYYY" for years.
type PeriodCount struct {
	Period string `json:"period"`
	Count  int64  `json:"count"`
}

// Service computes snapshots against an injected database handle.
type Service struct {
	db *gorm.DB
}

func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

// Compute builds a fresh snapshot from the current book set.
func (s *Service) Compute() (*Snapshot, error) {
	snapshot := &Snapshot{}

	if err := s.db.Model(&entities.Book{}).Count(&snapshot.Total).Error; err != nil {
		return nil, fmt.Errorf("failed to count books: %w", err)
	}

	statusCounts := []struct {
		status entities.Status
		dest   *int64
	}{
		{entities.StatusFinished, &snapshot.ReadCount},
		{entities.StatusReading, &snapshot.ReadingCount},
		{entities.StatusWantToRead, &snapshot.WishlistCount},
	}
	for _, sc := range statusCounts {
		err := s.db.Model(&entities.Book{}).Where("status = ?", sc.status).Count(sc.dest).Error
		if err != nil {
			return nil, fmt.Errorf("failed to count books with status %s: %w", sc.status, err)
		}
	}

	var avgRating float64
	err := s.db.Model(&entities.Book{}).
		Where("rating IS NOT NULL").
		Select("COALESCE(AVG(rating), 0)").
		Scan(&avgRating).Error
	if err != nil {
		return nil, fmt.Errorf("failed to compute average rating: %w", err)
	}
	snapshot.AvgRating = math.Round(avgRating*100) / 100

	err = s.db.Model(&entities.Book{}).
		Where("pages > 0").
		Select("COALESCE(SUM(pages), 0)").
		Scan(&snapshot.TotalPages).Error
	if err != nil {
		return nil, fmt.Errorf("failed to sum pages: %w", err)
	}

	err = s.db.Raw(`
		SELECT g.name AS genre, COUNT(b.id) AS count
		FROM genres g
		LEFT JOIN books b ON g.id = b.genre_id
		GROUP BY g.name
		HAVING COUNT(b.id) > 0
		ORDER BY count DESC
	`).Scan(&snapshot.Genres).Error
	if err != nil {
		return nil, fmt.Errorf("failed to compute genre distribution: %w", err)
	}

	err = s.db.Raw(`
		SELECT rating, COUNT(*) AS count
		FROM books
		WHERE rating IS NOT NULL
		GROUP BY rating
		ORDER BY rating
	`).Scan(&snapshot.Ratings).Error
	if err != nil {
		return nil, fmt.Errorf("failed to compute rating distribution: %w", err)
	}

	err = s.db.Raw(`
		SELECT strftime('%Y-%m', finish_date) AS period, COUNT(*) AS count
		FROM books
		WHERE finish_date IS NOT NULL
		GROUP BY period
		ORDER BY period
	`).Scan(&snapshot.Monthly).Error
	if err != nil {
		return nil, fmt.Errorf("failed to compute monthly trend: %w", err)
	}

	err = s.db.Raw(`
		SELECT strftime('%Y', finish_date) AS period, COUNT(*) AS count
		FROM books
		WHERE finish_date IS NOT NULL
		GROUP BY period
		ORDER BY period
	`).Scan(&snapshot.Yearly).Error
	if err != nil {
		return nil, fmt.Errorf("failed to compute yearly trend: %w", err)
	}

	return snapshot, nil
}

// GenrePercentage returns a genre count as a share of all counted genres,
// in percent with one decimal place.
func (s *Snapshot) GenrePercentage(count int64) float64 {
	var total int64
	for _, g := range s.Genres {
		total += g.Count
	}
	if total == 0 {
		return 0
	}
	return math.Round(float64(count)/float64(total)*1000) / 10
}

// EstimatedReadingDays is a rough placeholder figure (14 days per finished
// book), not a real calculation.
func (s *Snapshot) EstimatedReadingDays() int64 {
	return s.ReadCount * 14
}

// EstimatedBooksThisYear approximates the current-year figure with the
// all-time finished count. A placeholder, not a real calculation.
func (s *Snapshot) EstimatedBooksThisYear() int64 {
	return s.ReadCount
}
