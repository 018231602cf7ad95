package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/community-hub-api/internal/models"
	"github.com/noah-isme/community-hub-api/internal/repository"
	"github.com/noah-isme/community-hub-api/pkg/jobs"
)

type exportGenerator interface {
	Generate(ctx context.Context, job *models.ExportJob) (*ExportResult, error)
}

// ExportWorker bridges queue jobs to the export builder.
type ExportWorker struct {
	repo      exportJobStore
	generator exportGenerator
	metrics   *MetricsService
	logger    *zap.Logger
}

// NewExportWorker constructs a worker.
func NewExportWorker(repo exportJobStore, generator exportGenerator, metrics *MetricsService, logger *zap.Logger) *ExportWorker {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ExportWorker{repo: repo, generator: generator, metrics: metrics, logger: logger}
}

// Handle processes one queue job. A returned error sends the job back to
// the queue for another attempt.
func (w *ExportWorker) Handle(ctx context.Context, job jobs.Job[string]) error {
	record, err := w.repo.GetByID(ctx, job.Payload)
	if err != nil {
		return err
	}
	processing := models.ExportStatusProcessing
	progress := 10
	if err := w.repo.Update(ctx, record.ID, repository.UpdateExportJobParams{
		Status:   &processing,
		Progress: &progress,
	}); err != nil {
		return err
	}

	result, err := w.generator.Generate(ctx, record)
	if err != nil {
		queued := models.ExportStatusQueued
		reset := 0
		msg := err.Error()
		if updateErr := w.repo.Update(ctx, record.ID, repository.UpdateExportJobParams{
			Status:       &queued,
			Progress:     &reset,
			ErrorMessage: &msg,
		}); updateErr != nil {
			w.logger.Warn("failed to mark export job queued", zap.String("job_id", record.ID), zap.Error(updateErr))
		}
		return err
	}

	finished := models.ExportStatusFinished
	progress = 100
	now := time.Now().UTC()
	cleared := ""
	if err := w.repo.Update(ctx, record.ID, repository.UpdateExportJobParams{
		Status:       &finished,
		Progress:     &progress,
		ResultURL:    &result.URL,
		ErrorMessage: &cleared,
		FinishedAt:   &now,
	}); err != nil {
		w.logger.Warn("failed to mark export job finished", zap.String("job_id", record.ID), zap.Error(err))
		return err
	}
	w.metrics.RecordExportJob(string(record.Scope), string(finished))
	w.logger.Info("export job finished", zap.String("job_id", record.ID), zap.String("path", result.Path))
	return nil
}

// Fail marks a job that ran out of retries as failed. Register it with the
// queue's OnExhausted hook.
func (w *ExportWorker) Fail(ctx context.Context, job jobs.Job[string], cause error) {
	failed := models.ExportStatusFailed
	progress := 100
	now := time.Now().UTC()
	msg := cause.Error()
	if err := w.repo.Update(ctx, job.Payload, repository.UpdateExportJobParams{
		Status:       &failed,
		Progress:     &progress,
		ErrorMessage: &msg,
		FinishedAt:   &now,
	}); err != nil {
		w.logger.Warn("failed to mark export job failed", zap.String("job_id", job.Payload), zap.Error(err))
	}
	scope := "unknown"
	if record, err := w.repo.GetByID(ctx, job.Payload); err == nil {
		scope = string(record.Scope)
	}
	w.metrics.RecordExportJob(scope, string(failed))
}
