package service

import (
	"context"
	"database/sql"
	"errors"
	"io"
	"path"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/community-hub-api/internal/dto"
	"github.com/noah-isme/community-hub-api/internal/models"
	"github.com/noah-isme/community-hub-api/internal/repository"
	appErrors "github.com/noah-isme/community-hub-api/pkg/errors"
	"github.com/noah-isme/community-hub-api/pkg/jobs"
	"github.com/noah-isme/community-hub-api/pkg/storage"
)

type exportJobStore interface {
	Create(ctx context.Context, job *models.ExportJob) error
	GetByID(ctx context.Context, id string) (*models.ExportJob, error)
	Update(ctx context.Context, id string, params repository.UpdateExportJobParams) error
	ListQueued(ctx context.Context, limit int) ([]models.ExportJob, error)
	ListFinishedBefore(ctx context.Context, cutoff time.Time, limit int) ([]models.ExportJob, error)
}

type jobDispatcher interface {
	Enqueue(job jobs.Job[string]) error
}

// ExportServiceConfig governs queue recovery and cleanup.
type ExportServiceConfig struct {
	Enabled         bool
	ResultTTL       time.Duration
	CleanupInterval time.Duration
}

// ExportDownload is an open export file ready to stream.
type ExportDownload struct {
	Body      io.ReadCloser
	File      dto.ExportFile
	ExpiresAt time.Time
}

// ExportService manages the export job lifecycle: creation, status, download
// and cleanup. Rendering happens in ExportWorker.
type ExportService struct {
	repo      exportJobStore
	queue     jobDispatcher
	builder   *ExportBuilder
	storage   fileStorage
	signer    *storage.SignedURLSigner
	validator *validator.Validate
	logger    *zap.Logger
	cfg       ExportServiceConfig
}

// NewExportService constructs the export service.
func NewExportService(repo exportJobStore, queue jobDispatcher, builder *ExportBuilder, store fileStorage, signer *storage.SignedURLSigner, validate *validator.Validate, logger *zap.Logger, cfg ExportServiceConfig) *ExportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = NewValidator()
	}
	if cfg.ResultTTL <= 0 {
		cfg.ResultTTL = 24 * time.Hour
	}
	return &ExportService{
		repo:      repo,
		queue:     queue,
		builder:   builder,
		storage:   store,
		signer:    signer,
		validator: validate,
		logger:    logger,
		cfg:       cfg,
	}
}

// CreateJob validates the request, persists the job and enqueues it.
func (s *ExportService) CreateJob(ctx context.Context, req dto.ExportRequest) (*dto.ExportJobResponse, error) {
	if !s.cfg.Enabled {
		return nil, appErrors.ErrExportsDisabled
	}
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid export payload")
	}
	sel := req.Selection
	job := &models.ExportJob{
		Scope: req.Scope,
		Params: models.ExportJobParams{
			Format:       req.Format,
			SortBy:       string(sel.SortBy),
			Role:         sel.Role,
			Skill:        sel.Skill,
			Rating:       sel.Rating,
			Availability: sel.Availability,
			Search:       sel.Search,
		},
		Status: models.ExportStatusQueued,
	}
	if err := s.repo.Create(ctx, job); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create export job")
	}
	if err := s.queue.Enqueue(jobs.Job[string]{ID: job.ID, Payload: job.ID}); err != nil {
		status := models.ExportStatusFailed
		msg := "failed to enqueue job"
		now := time.Now().UTC()
		progress := 100
		_ = s.repo.Update(ctx, job.ID, repository.UpdateExportJobParams{
			Status:       &status,
			Progress:     &progress,
			ErrorMessage: &msg,
			FinishedAt:   &now,
		})
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to enqueue export job")
	}
	s.logger.Info("export job queued", zap.String("job_id", job.ID), zap.String("scope", string(job.Scope)), zap.String("format", string(req.Format)))
	return &dto.ExportJobResponse{ID: job.ID, Status: job.Status, Progress: job.Progress}, nil
}

// GetStatus exposes job metadata to clients.
func (s *ExportService) GetStatus(ctx context.Context, id string) (*dto.ExportStatusResponse, error) {
	job, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := &dto.ExportStatusResponse{
		ID:         job.ID,
		Scope:      job.Scope,
		Status:     job.Status,
		Progress:   job.Progress,
		ResultURL:  job.ResultURL,
		FinishedAt: job.FinishedAt,
	}
	if job.ErrorMessage != nil && *job.ErrorMessage != "" {
		resp.Error = job.ErrorMessage
	}
	return resp, nil
}

// ResolveDownload validates token and opens the stored export file.
func (s *ExportService) ResolveDownload(ctx context.Context, token string) (*ExportDownload, error) {
	grant, err := s.signer.Verify(token, false)
	if err != nil {
		if errors.Is(err, storage.ErrTokenExpired) {
			return nil, appErrors.ErrLinkExpired
		}
		return nil, appErrors.Clone(appErrors.ErrNotFound, "download link not found")
	}
	job, err := s.load(ctx, grant.JobID)
	if err != nil {
		return nil, err
	}
	if job.Status != models.ExportStatusFinished {
		return nil, appErrors.ErrExportNotReady
	}
	if job.ResultURL == nil || !strings.HasSuffix(*job.ResultURL, "/"+token) {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "download link not found")
	}
	body, size, err := s.storage.Open(grant.Path)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to open export file")
	}
	return &ExportDownload{
		Body: body,
		File: dto.ExportFile{
			Name:        path.Base(grant.Path),
			ContentType: s.builder.ContentType(job.Params.Format),
			Size:        size,
		},
		ExpiresAt: grant.ExpiresAt,
	}, nil
}

// RecoverPendingJobs replays queued jobs after a restart.
func (s *ExportService) RecoverPendingJobs(ctx context.Context) {
	pending, err := s.repo.ListQueued(ctx, 50)
	if err != nil {
		s.logger.Warn("failed to recover queued export jobs", zap.Error(err))
		return
	}
	for _, job := range pending {
		if err := s.queue.Enqueue(jobs.Job[string]{ID: job.ID, Payload: job.ID}); err != nil {
			s.logger.Warn("failed to requeue pending export job", zap.String("job_id", job.ID), zap.Error(err))
		}
	}
}

// StartCleanup boots a goroutine that purges expired exports periodically.
func (s *ExportService) StartCleanup(ctx context.Context) {
	if s.cfg.CleanupInterval <= 0 {
		return
	}
	ticker := time.NewTicker(s.cfg.CleanupInterval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				s.CleanupExpired(ctx)
			}
		}
	}()
}

// CleanupExpired deletes files of jobs finished more than ResultTTL ago,
// then sweeps any stray file older than ResultTTL.
func (s *ExportService) CleanupExpired(ctx context.Context) {
	const batch = 100
	cutoff := time.Now().Add(-s.cfg.ResultTTL)
	expired, err := s.repo.ListFinishedBefore(ctx, cutoff, batch)
	if err != nil {
		s.logger.Warn("export cleanup list failed", zap.Error(err))
		return
	}
	for _, job := range expired {
		if job.ResultURL == nil {
			continue
		}
		token := path.Base(*job.ResultURL)
		grant, err := s.signer.Verify(token, true)
		if err != nil {
			continue
		}
		if err := s.storage.Delete(grant.Path); err != nil {
			s.logger.Warn("export cleanup delete failed", zap.String("job_id", job.ID), zap.Error(err))
		}
	}
	removed, err := s.storage.CleanupOlderThan(s.cfg.ResultTTL)
	if err != nil {
		s.logger.Warn("export filesystem cleanup failed", zap.Error(err))
		return
	}
	if len(removed) > 0 {
		s.logger.Info("export files removed", zap.Int("count", len(removed)))
	}
}

func (s *ExportService) load(ctx context.Context, id string) (*models.ExportJob, error) {
	job, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "export job not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load export job")
	}
	return job, nil
}
