package handlers

import (
	"net/http"

	"github.com/ankirsydii/Orderly/internal/services"

	"github.com/gin-gonic/gin"
)

type ReportHandler struct {
	reportService services.ReportService
}

func NewReportHandler(reportService services.ReportService) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

func (h *ReportHandler) Daily(c *gin.Context) {
	summaries, err := h.reportService.DailySummaries()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, summaries)
}

func (h *ReportHandler) Detailed(c *gin.Context) {
	details, err := h.reportService.DetailedSummaries()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, details)
}

func (h *ReportHandler) Overview(c *gin.Context) {
	overview, err := h.reportService.Overview()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, overview)
}

// Export returns the rendered detail table as plain text.
func (h *ReportHandler) Export(c *gin.Context) {
	text, err := h.reportService.ExportCSV()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.String(http.StatusOK, text)
}

// Share renders the export and pushes it to the configured share endpoint.
// The text comes back in the response either way.
func (h *ReportHandler) Share(c *gin.Context) {
	text, err := h.reportService.ShareExport()
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error(), "export": text})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "report shared", "export": text})
}
