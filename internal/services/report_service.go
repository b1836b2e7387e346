package services

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/thermetry/thermetry/internal/analysis"
	"github.com/thermetry/thermetry/internal/logging"
	"github.com/thermetry/thermetry/internal/models"
	"github.com/thermetry/thermetry/internal/report"
	"github.com/thermetry/thermetry/internal/storage"
)

const (
	// DefaultReportExpiration is the default time a finished report stays downloadable
	DefaultReportExpiration = 24 * time.Hour

	// DefaultReportCleanupInterval is the interval for cleaning up expired reports
	DefaultReportCleanupInterval = 1 * time.Hour

	// DefaultReportWorkers is the number of concurrent report workers
	DefaultReportWorkers = 3

	// DefaultReportQueueSize is the capacity of the pending report queue
	DefaultReportQueueSize = 100

	// reportTaskIndexFile is the storage name of the persisted task index
	reportTaskIndexFile = "reports/tasks.json"

	// cleanupGracePeriod keeps expired tasks visible a little past their deadline
	cleanupGracePeriod = 5 * time.Minute
)

// ReportService generates analysis report files asynchronously
type ReportService struct {
	logger *logging.Logger
	store  *storage.Store

	// Task management
	tasks     map[string]*models.ReportTask
	taskMutex sync.RWMutex

	// Report directory
	reportDir string

	// Configuration
	expirationDuration time.Duration
	cleanupInterval    time.Duration

	// Worker pool
	taskQueue chan *models.ReportTask
	stopChan  chan struct{}
	wg        sync.WaitGroup
}

// reportTaskIndex is the persisted form of the task table
type reportTaskIndex struct {
	Tasks map[string]*models.ReportTask `json:"tasks"`
}

// NewReportService creates a new ReportService
func NewReportService(
	logger *logging.Logger,
	store *storage.Store,
	workers int,
	queueSize int,
	expiration time.Duration,
	cleanupInterval time.Duration,
) *ReportService {
	if workers <= 0 {
		workers = DefaultReportWorkers
	}
	if queueSize <= 0 {
		queueSize = DefaultReportQueueSize
	}
	if expiration <= 0 {
		expiration = DefaultReportExpiration
	}
	if cleanupInterval <= 0 {
		cleanupInterval = DefaultReportCleanupInterval
	}

	// Ensure report directory exists
	reportDir := filepath.Join(store.Dir(), "reports")
	if err := os.MkdirAll(reportDir, 0o755); err != nil {
		logger.Error("Failed to create report directory", "error", err, "path", reportDir)
	}

	s := &ReportService{
		logger:             logger,
		store:              store,
		tasks:              make(map[string]*models.ReportTask),
		reportDir:          reportDir,
		expirationDuration: expiration,
		cleanupInterval:    cleanupInterval,
		taskQueue:          make(chan *models.ReportTask, queueSize),
		stopChan:           make(chan struct{}),
	}

	// Restore tasks persisted by a previous run
	s.loadTasks()

	// Start worker pool
	s.startWorkers(workers)

	// Start cleanup goroutine
	go s.cleanupLoop()

	return s
}

// startWorkers starts the worker pool for processing report tasks
func (s *ReportService) startWorkers(numWorkers int) {
	for i := 0; i < numWorkers; i++ {
		s.wg.Add(1)
		go s.worker(i)
	}
	s.logger.Info("Report workers started", "count", numWorkers)
}

// worker processes report tasks from the queue
func (s *ReportService) worker(id int) {
	defer s.wg.Done()

	for {
		select {
		case task := <-s.taskQueue:
			s.processTask(task)
		case <-s.stopChan:
			s.logger.Debug("Report worker stopping", "worker_id", id)
			return
		}
	}
}

// Stop stops the report service
func (s *ReportService) Stop() {
	close(s.stopChan)
	s.wg.Wait()
	s.logger.Info("Report service stopped")
}

// CreateReport creates a new report task
func (s *ReportService) CreateReport(ctx context.Context, request *models.ReportRequest) (*models.ReportTask, error) {
	// Generate request ID
	requestID := uuid.New().String()

	// Create task
	task := models.NewReportTask(requestID, *request, s.expirationDuration)

	s.taskMutex.Lock()
	s.tasks[requestID] = task
	s.taskMutex.Unlock()

	s.persistTasks()

	// Queue task for processing
	select {
	case s.taskQueue <- task:
		s.logger.WithContext(ctx).Info("Report task queued",
			"request_id", requestID,
			"format", request.Format,
		)
	default:
		// Queue is full
		s.taskMutex.Lock()
		task.Status = models.ReportStatusFailed
		task.Error = "report queue is full, please try again later"
		s.taskMutex.Unlock()

		s.persistTasks()
		s.logger.WithContext(ctx).Warn("Report queue full, task failed", "request_id", requestID)
	}

	// Return a copy to avoid race conditions
	s.taskMutex.RLock()
	taskCopy := *task
	s.taskMutex.RUnlock()
	return &taskCopy, nil
}

// GetTaskStatus returns the status of a report task
func (s *ReportService) GetTaskStatus(requestID string) (*models.ReportTask, error) {
	s.taskMutex.RLock()
	task, exists := s.tasks[requestID]
	if !exists {
		s.taskMutex.RUnlock()
		return nil, NewServiceError("TASK_NOT_FOUND", "report task not found")
	}
	expired := task.IsExpired() && task.Status == models.ReportStatusCompleted
	s.taskMutex.RUnlock()

	// Flip finished tasks to expired once their deadline passes
	if expired {
		s.taskMutex.Lock()
		task.Status = models.ReportStatusExpired
		s.taskMutex.Unlock()

		s.persistTasks()
	}

	// Return a copy to avoid race conditions
	s.taskMutex.RLock()
	taskCopy := *task
	s.taskMutex.RUnlock()
	return &taskCopy, nil
}

// GetFilePath returns the file path for a completed report
func (s *ReportService) GetFilePath(requestID string) (string, string, string, error) {
	task, err := s.GetTaskStatus(requestID)
	if err != nil {
		return "", "", "", err
	}

	if !task.CanDownload() {
		if task.IsExpired() {
			return "", "", "", NewServiceError("REPORT_EXPIRED", "report has expired")
		}
		if task.Status == models.ReportStatusFailed {
			return "", "", "", NewServiceErrorWithDetails("REPORT_FAILED",
				"report generation failed",
				map[string]interface{}{"error": task.Error},
			)
		}
		return "", "", "", NewServiceError("REPORT_NOT_READY",
			"report is not ready yet, status: "+string(task.Status))
	}

	return task.FilePath, task.Filename, task.ContentType, nil
}

// ListTasks returns all active report tasks (for admin/debugging)
func (s *ReportService) ListTasks() []*models.ReportTask {
	s.taskMutex.RLock()
	defer s.taskMutex.RUnlock()

	tasks := make([]*models.ReportTask, 0, len(s.tasks))
	for _, task := range s.tasks {
		taskCopy := *task
		tasks = append(tasks, &taskCopy)
	}
	return tasks
}

// processTask renders a report task to its output file
func (s *ReportService) processTask(task *models.ReportTask) {
	startTime := time.Now()

	// Update status to processing
	s.taskMutex.Lock()
	task.Status = models.ReportStatusProcessing
	task.StartedAt = &startTime
	s.taskMutex.Unlock()

	s.logger.Info("Processing report task",
		"request_id", task.RequestID,
		"format", task.Request.Format,
	)

	err := s.generateReport(task)

	completedAt := time.Now()

	s.taskMutex.Lock()
	if err != nil {
		task.Status = models.ReportStatusFailed
		task.Error = err.Error()
		s.logger.Error("Report task failed",
			"request_id", task.RequestID,
			"error", err,
			"duration", completedAt.Sub(startTime),
		)
	} else {
		task.Status = models.ReportStatusCompleted
		task.CompletedAt = &completedAt

		// Get file size
		if info, statErr := os.Stat(task.FilePath); statErr == nil {
			task.FileSize = info.Size()
		}

		s.logger.Info("Report task completed",
			"request_id", task.RequestID,
			"file_size", task.FileSize,
			"duration", completedAt.Sub(startTime),
		)
	}
	s.taskMutex.Unlock()

	s.persistTasks()
}

// generateReport analyzes the series and writes the requested format
func (s *ReportService) generateReport(task *models.ReportTask) error {
	summary, err := analysis.Analyze(task.Request.Times, task.Request.Temperatures)
	if err != nil {
		return err
	}

	filePath := filepath.Join(s.reportDir, task.RequestID+"."+task.Request.FileExt())

	file, err := os.Create(filePath)
	if err != nil {
		return fmt.Errorf("failed to create report file: %w", err)
	}
	defer func() { _ = file.Close() }()

	// Record the path up front so failed renders still get cleaned up
	s.taskMutex.Lock()
	task.FilePath = filePath
	s.taskMutex.Unlock()

	generatedAt := time.Now()

	switch models.ReportFormat(task.Request.Format) {
	case models.ReportFormatCSV:
		err = report.WriteSummaryCSV(file, summary)
	case models.ReportFormatJSON:
		err = report.WriteSummaryJSON(file, generatedAt, summary)
	default:
		err = report.WriteSummaryText(file, generatedAt, summary)
	}
	if err != nil {
		return fmt.Errorf("failed to render report: %w", err)
	}

	return nil
}

// cleanupLoop periodically cleans up expired reports
func (s *ReportService) cleanupLoop() {
	ticker := time.NewTicker(s.cleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.cleanupExpiredReports()
		case <-s.stopChan:
			return
		}
	}
}

// cleanupExpiredReports removes expired report files and tasks
func (s *ReportService) cleanupExpiredReports() {
	s.taskMutex.Lock()

	now := time.Now()
	expiredCount := 0

	for requestID, task := range s.tasks {
		if now.After(task.ExpiresAt.Add(cleanupGracePeriod)) {
			// Delete file if exists
			if task.FilePath != "" {
				if err := os.Remove(task.FilePath); err != nil && !os.IsNotExist(err) {
					s.logger.Error("Failed to remove expired report file",
						"request_id", requestID,
						"error", err,
					)
				}
			}

			delete(s.tasks, requestID)
			expiredCount++
		}
	}
	s.taskMutex.Unlock()

	if expiredCount > 0 {
		s.persistTasks()
		s.logger.Info("Cleaned up expired reports", "count", expiredCount)
	}
}

// persistTasks writes the current task table to storage
func (s *ReportService) persistTasks() {
	s.taskMutex.RLock()
	index := reportTaskIndex{Tasks: make(map[string]*models.ReportTask, len(s.tasks))}
	for id, task := range s.tasks {
		taskCopy := *task
		index.Tasks[id] = &taskCopy
	}
	s.taskMutex.RUnlock()

	if err := s.store.WriteJSON(reportTaskIndexFile, &index); err != nil {
		s.logger.Error("Failed to persist report tasks", "error", err)
	}
}

// loadTasks restores the persisted task table on startup
func (s *ReportService) loadTasks() {
	var index reportTaskIndex
	if err := s.store.ReadJSON(reportTaskIndexFile, &index); err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			s.logger.Error("Failed to load report tasks", "error", err)
		}
		return
	}

	loadedCount := 0
	expiredCount := 0
	now := time.Now()

	for _, task := range index.Tasks {
		// Skip tasks long past expiry (cleanup would remove them anyway)
		if now.After(task.ExpiresAt.Add(cleanupGracePeriod)) {
			expiredCount++
			continue
		}

		// FilePath is not persisted; rebuild it for finished tasks
		if task.Status == models.ReportStatusCompleted || task.Status == models.ReportStatusExpired {
			task.FilePath = filepath.Join(s.reportDir, task.RequestID+"."+task.Request.FileExt())
		}

		s.taskMutex.Lock()
		s.tasks[task.RequestID] = task
		s.taskMutex.Unlock()
		loadedCount++

		// Re-queue pending/processing tasks that were interrupted
		if task.Status == models.ReportStatusPending || task.Status == models.ReportStatusProcessing {
			task.Status = models.ReportStatusPending
			select {
			case s.taskQueue <- task:
				s.logger.Info("Re-queued interrupted report task", "request_id", task.RequestID)
			default:
				s.logger.Warn("Failed to re-queue report task, queue full", "request_id", task.RequestID)
			}
		}
	}

	if loadedCount > 0 || expiredCount > 0 {
		s.logger.Info("Loaded report tasks",
			"loaded", loadedCount,
			"expired_skipped", expiredCount,
		)
	}
}
