package handlers

import (
	"github.com/thermetry/thermetry/internal/config"
	"github.com/thermetry/thermetry/internal/logging"
	"github.com/thermetry/thermetry/internal/services"
	"github.com/thermetry/thermetry/internal/storage"
)

// Handler contains all HTTP handlers
type Handler struct {
	logger *logging.Logger
	store  *storage.Store
	// Services
	analysisService *services.AnalysisService
	reportService   *services.ReportService
}

// New creates a new handler instance
func New(logger *logging.Logger, store *storage.Store,
	analysisCfg config.AnalysisConfig, reportsCfg config.ReportsConfig,
) *Handler {
	// Create services
	analysisService := services.NewAnalysisService(logger,
		analysisCfg.MaxBatchSeries, analysisCfg.BatchConcurrency)
	reportService := services.NewReportService(logger, store,
		reportsCfg.Workers, reportsCfg.QueueSize,
		reportsCfg.Expiration, reportsCfg.CleanupInterval)

	return &Handler{
		logger:          logger,
		store:           store,
		analysisService: analysisService,
		reportService:   reportService,
	}
}

// GetReportService returns the report service so callers can stop its workers
func (h *Handler) GetReportService() *services.ReportService {
	return h.reportService
}
