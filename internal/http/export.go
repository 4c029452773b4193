package http

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/avoronin/reading-diary/internal/exporters"
)

type ExportController struct {
	exporter *exporters.CSVExporter
}

func NewExportController(exporter *exporters.CSVExporter) *ExportController {
	return &ExportController{
		exporter: exporter,
	}
}

type exportRequest struct {
	Path string `json:"path"`
}

// ExportCSV writes the full book listing to the requested file. Export
// failures surface as a success flag; the underlying cause is logged.
func (controller *ExportController) ExportCSV(c *gin.Context) {
	var req exportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.IndentedJSON(http.StatusBadRequest, gin.H{"error": "invalid request body: " + err.Error()})
		return
	}
	if req.Path == "" {
		c.IndentedJSON(http.StatusBadRequest, gin.H{"error": "path is required"})
		return
	}

	if err := controller.exporter.Export(req.Path); err != nil {
		log.Printf("CSV export to %s failed: %v", req.Path, err)
		c.IndentedJSON(http.StatusInternalServerError, gin.H{"success": false})
		return
	}

	c.IndentedJSON(http.StatusOK, gin.H{"success": true, "path": req.Path})
}
