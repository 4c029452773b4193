package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/avoronin/reading-diary/internal/database/books"
)

type GenresController struct {
	repo *books.Repository
}

func NewGenresController(repo *books.Repository) *GenresController {
	return &GenresController{
		repo: repo,
	}
}

func (controller *GenresController) ListGenres(c *gin.Context) {
	genres, err := controller.repo.ListGenres()
	if err != nil {
		c.IndentedJSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.IndentedJSON(http.StatusOK, gin.H{"genres": genres, "count": len(genres)})
}
