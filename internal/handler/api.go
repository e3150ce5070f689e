package handler

import (
	"context"
	"encoding/csv"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/dileepadns7-pixel/animal-disease-ai/internal/catalog"
	"github.com/dileepadns7-pixel/animal-disease-ai/internal/classifier"
	"github.com/dileepadns7-pixel/animal-disease-ai/internal/diagnosis"
	"github.com/dileepadns7-pixel/animal-disease-ai/internal/models"
)

// Diagnoser runs the diagnosis pipeline for one input text.
type Diagnoser interface {
	Diagnose(ctx context.Context, text string) (*models.Result, error)
}

// HistoryStore reads back the diagnosis history.
type HistoryStore interface {
	ListRecords(limit int) ([]*models.Record, error)
	GetStats() (map[string]interface{}, error)
}

// HealthChecker probes the classifier model service.
type HealthChecker interface {
	HealthCheck(ctx context.Context) (*classifier.HealthResponse, error)
}

// Handler handles HTTP requests.
type Handler struct {
	diagnoser Diagnoser
	history   HistoryStore
	cat       *catalog.Catalog
	health    HealthChecker
	logger    *zap.Logger
}

// NewHandler creates a new API handler. health may be nil to skip the
// classifier probe in the health endpoint.
func NewHandler(diagnoser Diagnoser, history HistoryStore, cat *catalog.Catalog, health HealthChecker, logger *zap.Logger) *Handler {
	return &Handler{
		diagnoser: diagnoser,
		history:   history,
		cat:       cat,
		health:    health,
		logger:    logger,
	}
}

// RegisterRoutes registers all API routes.
func (h *Handler) RegisterRoutes(r *gin.Engine) {
	api := r.Group("/api/v1")
	{
		// Diagnosis endpoints
		api.POST("/diagnose", h.DiagnoseSingle)
		api.POST("/diagnose/batch", h.DiagnoseBatch)

		// Catalog for the presentation layer
		api.GET("/catalog", h.GetCatalog)

		// History
		api.GET("/history", h.GetHistory)
		api.GET("/history/stats", h.GetStats)
		api.GET("/export/csv", h.ExportCSV)
	}

	// Health check
	r.GET("/health", h.HealthCheck)
}

// DiagnoseSingle handles a single diagnosis request.
func (h *Handler) DiagnoseSingle(c *gin.Context) {
	var req models.DiagnoseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.diagnoser.Diagnose(c.Request.Context(), req.Text)
	if err != nil {
		h.respondDiagnoseError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// DiagnoseBatch handles a batch of diagnosis requests synchronously.
// Per-input failures are reported inline; the batch itself always
// returns 200.
func (h *Handler) DiagnoseBatch(c *gin.Context) {
	var req models.BatchDiagnoseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	items := make([]models.BatchDiagnoseItem, 0, len(req.Inputs))
	for _, input := range req.Inputs {
		item := models.BatchDiagnoseItem{
			ID:   input.ID,
			Text: input.Text,
		}

		result, err := h.diagnoser.Diagnose(c.Request.Context(), input.Text)
		if err != nil {
			item.Error = diagnoseErrorMessage(err)
		} else {
			item.Result = result
		}
		items = append(items, item)
	}

	c.JSON(http.StatusOK, gin.H{
		"items": items,
		"total": len(items),
	})
}

// respondDiagnoseError maps pipeline errors to HTTP statuses. Empty
// input and unrecognized symptoms are expected user-facing outcomes;
// anything else is a classifier failure.
func (h *Handler) respondDiagnoseError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, diagnosis.ErrEmptyInput):
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Please enter symptoms / කරුණාකර රෝග ලක්ෂණ ඇතුලත් කරන්න.",
		})
	case errors.Is(err, diagnosis.ErrInvalidSymptoms):
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error": "Please enter valid disease symptoms / කරුණාකර නිවැරදි රෝග ලක්ෂණ ඇතුළත් කරන්න.",
		})
	default:
		h.logger.Error("Diagnosis failed", zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": "classification failed"})
	}
}

// diagnoseErrorMessage is the per-item flavor of respondDiagnoseError
// used by the batch endpoint.
func diagnoseErrorMessage(err error) string {
	switch {
	case errors.Is(err, diagnosis.ErrEmptyInput):
		return "empty input"
	case errors.Is(err, diagnosis.ErrInvalidSymptoms):
		return "symptoms not recognized"
	default:
		return "classification failed"
	}
}

// GetCatalog returns the disease catalog in catalog order.
func (h *Handler) GetCatalog(c *gin.Context) {
	type catalogEntry struct {
		Name        string            `json:"name"`
		Species     []catalog.Species `json:"species,omitempty"`
		SinhalaName string            `json:"sinhala_name,omitempty"`
	}

	entries := h.cat.Entries()
	diseases := make([]catalogEntry, 0, len(entries))
	for _, e := range entries {
		diseases = append(diseases, catalogEntry{
			Name:        e.Name,
			Species:     e.Species,
			SinhalaName: e.SinhalaName,
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"diseases": diseases,
		"total":    len(diseases),
	})
}

// GetHistory returns recent diagnosis records, newest first.
func (h *Handler) GetHistory(c *gin.Context) {
	limit := 0
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid limit"})
			return
		}
		limit = parsed
	}

	records, err := h.history.ListRecords(limit)
	if err != nil {
		h.logger.Error("Failed to list diagnosis records", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get history"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"records": records,
		"total":   len(records),
	})
}

// GetStats returns diagnosis history statistics.
func (h *Handler) GetStats(c *gin.Context) {
	stats, err := h.history.GetStats()
	if err != nil {
		h.logger.Error("Failed to get stats", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get stats"})
		return
	}

	c.JSON(http.StatusOK, stats)
}

// ExportCSV exports the diagnosis history to CSV.
func (h *Handler) ExportCSV(c *gin.Context) {
	records, err := h.history.ListRecords(0)
	if err != nil {
		h.logger.Error("Failed to export CSV", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "export failed"})
		return
	}

	c.Header("Content-Type", "text/csv")
	c.Header("Content-Disposition", "attachment; filename=diagnosis_history.csv")

	writer := csv.NewWriter(c.Writer)
	defer writer.Flush()

	// Write header
	writer.Write([]string{"timestamp", "input", "species_detected", "predictions"})

	// Write data
	for _, record := range records {
		writer.Write([]string{
			record.CreatedAt.Format(time.RFC3339),
			record.InputText,
			record.SpeciesDetected,
			record.Predictions,
		})
	}
}

// HealthCheck returns service health, including classifier
// reachability when a health checker is wired.
func (h *Handler) HealthCheck(c *gin.Context) {
	resp := gin.H{
		"status":  "healthy",
		"service": "animal-disease-ai",
		"version": "1.0.0",
	}

	if h.health != nil {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		if _, err := h.health.HealthCheck(ctx); err != nil {
			resp["status"] = "degraded"
			resp["classifier"] = "unreachable"
		} else {
			resp["classifier"] = "ok"
		}
	}

	c.JSON(http.StatusOK, resp)
}
