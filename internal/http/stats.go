package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/avoronin/reading-diary/internal/stats"
)

type StatsController struct {
	service *stats.Service
}

func NewStatsController(service *stats.Service) *StatsController {
	return &StatsController{
		service: service,
	}
}

// statsResponse extends the snapshot with the UI's placeholder estimates so
// any presentation layer renders the same figures.
type statsResponse struct {
	*stats.Snapshot
	EstimatedReadingDays int64 `json:"estimated_reading_days"`
	BooksThisYear        int64 `json:"books_this_year"`
}

func (controller *StatsController) GetStatistics(c *gin.Context) {
	snapshot, err := controller.service.Compute()
	if err != nil {
		c.IndentedJSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.IndentedJSON(http.StatusOK, statsResponse{
		Snapshot:             snapshot,
		EstimatedReadingDays: snapshot.EstimatedReadingDays(),
		BooksThisYear:        snapshot.EstimatedBooksThisYear(),
	})
}
