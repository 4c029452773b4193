package http

import (
	"github.com/gin-gonic/gin"
)

// RouterConfig carries the controllers the router exposes. A config struct
// keeps the constructor signature stable as endpoints are added.
type RouterConfig struct {
	Books  *BooksController
	Genres *GenresController
	Stats  *StatsController
	Export *ExportController
	Health *HealthController
}

// NewRouter creates and configures the HTTP router with all endpoints.
func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())

	router.GET("/health", cfg.Health.Status)

	api := router.Group("/api")
	{
		api.GET("/books", cfg.Books.ListBooks)
		api.POST("/books", cfg.Books.CreateBook)
		api.GET("/books/:id", cfg.Books.GetBook)
		api.PUT("/books/:id", cfg.Books.UpdateBook)
		api.DELETE("/books/:id", cfg.Books.DeleteBook)

		api.GET("/genres", cfg.Genres.ListGenres)
		api.GET("/statistics", cfg.Stats.GetStatistics)
		api.POST("/export/csv", cfg.Export.ExportCSV)
	}

	return router
}
