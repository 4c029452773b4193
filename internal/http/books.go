package http

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/avoronin/reading-diary/internal/database/books"
	"github.com/avoronin/reading-diary/internal/entities"
)

const dateLayout = "2006-01-02"

type BooksController struct {
	repo *books.Repository
}

func NewBooksController(repo *books.Repository) *BooksController {
	return &BooksController{
		repo: repo,
	}
}

// bookPayload is the JSON shape accepted by create and update. Dates are
// "YYYY-MM-DD" strings, the cover image is base64 per encoding/json.
type bookPayload struct {
	Title      string `json:"title"`
	Author     string `json:"author"`
	Genre      string `json:"genre"`
	Status     string `json:"status"`
	StartDate  string `json:"start_date"`
	FinishDate string `json:"finish_date"`
	Rating     *int   `json:"rating"`
	Review     string `json:"review"`
	CoverImage []byte `json:"cover_image"`
	Pages      int    `json:"pages"`
}

func (p *bookPayload) toInput() (books.BookInput, error) {
	startDate, err := parseDate(p.StartDate)
	if err != nil {
		return books.BookInput{}, err
	}
	finishDate, err := parseDate(p.FinishDate)
	if err != nil {
		return books.BookInput{}, err
	}

	return books.BookInput{
		Title:      p.Title,
		Author:     p.Author,
		Genre:      p.Genre,
		Status:     entities.Status(p.Status),
		StartDate:  startDate,
		FinishDate: finishDate,
		Rating:     p.Rating,
		Review:     p.Review,
		CoverImage: p.CoverImage,
		Pages:      p.Pages,
	}, nil
}

func parseDate(value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	parsed, err := time.Parse(dateLayout, value)
	if err != nil {
		return nil, err
	}
	return &parsed, nil
}

func isValidationError(err error) bool {
	return errors.Is(err, entities.ErrEmptyTitle) ||
		errors.Is(err, entities.ErrEmptyAuthor) ||
		errors.Is(err, entities.ErrInvalidStatus) ||
		errors.Is(err, entities.ErrInvalidRating)
}

func (controller *BooksController) ListBooks(c *gin.Context) {
	search := c.Query("search")

	booksList, err := controller.repo.ListBooks(search)
	if err != nil {
		c.IndentedJSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.IndentedJSON(http.StatusOK, gin.H{"books": booksList, "count": len(booksList)})
}

func (controller *BooksController) GetBook(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		c.IndentedJSON(http.StatusBadRequest, gin.H{"error": "invalid book id"})
		return
	}

	book, err := controller.repo.GetBookByID(id)
	if err != nil {
		c.IndentedJSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if book == nil {
		c.IndentedJSON(http.StatusNotFound, gin.H{"error": "book not found"})
		return
	}

	c.IndentedJSON(http.StatusOK, book)
}

func (controller *BooksController) CreateBook(c *gin.Context) {
	var payload bookPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.IndentedJSON(http.StatusBadRequest, gin.H{"error": "invalid request body: " + err.Error()})
		return
	}

	// Presentation-boundary validation; the repository enforces the same
	// preconditions on its own.
	if strings.TrimSpace(payload.Title) == "" || strings.TrimSpace(payload.Author) == "" {
		c.IndentedJSON(http.StatusBadRequest, gin.H{"error": "title and author are required"})
		return
	}

	input, err := payload.toInput()
	if err != nil {
		c.IndentedJSON(http.StatusBadRequest, gin.H{"error": "invalid date, expected YYYY-MM-DD: " + err.Error()})
		return
	}

	id, err := controller.repo.CreateBook(input)
	if err != nil {
		if isValidationError(err) {
			c.IndentedJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.IndentedJSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.IndentedJSON(http.StatusCreated, gin.H{"id": id})
}

func (controller *BooksController) UpdateBook(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		c.IndentedJSON(http.StatusBadRequest, gin.H{"error": "invalid book id"})
		return
	}

	var payload bookPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.IndentedJSON(http.StatusBadRequest, gin.H{"error": "invalid request body: " + err.Error()})
		return
	}

	if strings.TrimSpace(payload.Title) == "" || strings.TrimSpace(payload.Author) == "" {
		c.IndentedJSON(http.StatusBadRequest, gin.H{"error": "title and author are required"})
		return
	}

	input, err := payload.toInput()
	if err != nil {
		c.IndentedJSON(http.StatusBadRequest, gin.H{"error": "invalid date, expected YYYY-MM-DD: " + err.Error()})
		return
	}

	updated, err := controller.repo.UpdateBook(id, input)
	if err != nil {
		if isValidationError(err) {
			c.IndentedJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.IndentedJSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if !updated {
		c.IndentedJSON(http.StatusNotFound, gin.H{"error": "book not found"})
		return
	}

	c.IndentedJSON(http.StatusOK, gin.H{"id": id, "updated": true})
}

func (controller *BooksController) DeleteBook(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		c.IndentedJSON(http.StatusBadRequest, gin.H{"error": "invalid book id"})
		return
	}

	deleted, err := controller.repo.DeleteBook(id)
	if err != nil {
		c.IndentedJSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if !deleted {
		c.IndentedJSON(http.StatusNotFound, gin.H{"error": "book not found"})
		return
	}

	c.IndentedJSON(http.StatusOK, gin.H{"id": id, "deleted": true})
}

func parseID(c *gin.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return 0, err
	}
	return uint(id), nil
}
