package handlers

import (
	"net/http"
	"path/filepath"

	"github.com/gin-gonic/gin"

	"leadflow/internal/pdf"
	"leadflow/internal/services"
)

type ReportHandler struct {
	service   services.ReportService
	generator pdf.Generator
}

func NewReportHandler(service services.ReportService, generator pdf.Generator) *ReportHandler {
	return &ReportHandler{service: service, generator: generator}
}

func (h *ReportHandler) LeadSummary(c *gin.Context) {
	summary, err := h.service.LeadSummary()
	if err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Report generated successfully",
		"report":  summary,
	})
}

// ExportLeadSummary renders the summary as a PDF and serves it as a download.
func (h *ReportHandler) ExportLeadSummary(c *gin.Context) {
	summary, err := h.service.LeadSummary()
	if err != nil {
		handleError(c, err)
		return
	}
	path, err := h.generator.GenerateLeadSummary(pdf.SummaryData{
		Total:       summary.Total,
		ByStatus:    summary.ByStatus,
		GeneratedAt: summary.GeneratedAt,
	})
	if err != nil {
		handleError(c, err)
		return
	}
	c.FileAttachment(path, filepath.Base(path))
}
