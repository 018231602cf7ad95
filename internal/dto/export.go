package dto

import (
	"time"

	"github.com/noah-isme/community-hub-api/internal/discovery"
	"github.com/noah-isme/community-hub-api/internal/models"
)

// ExportRequest captures the POST /exports payload.
type ExportRequest struct {
	Scope     models.ExportScope  `json:"scope" validate:"required,oneof=members feed"`
	Format    models.ExportFormat `json:"format" validate:"required,oneof=csv pdf"`
	Selection discovery.Selection `json:"selection"`
}

// ExportJobResponse is returned after enqueueing an export.
type ExportJobResponse struct {
	ID       string              `json:"id"`
	Status   models.ExportStatus `json:"status"`
	Progress int                 `json:"progress"`
}

// ExportStatusResponse exposes job progress metadata.
type ExportStatusResponse struct {
	ID         string              `json:"id"`
	Scope      models.ExportScope  `json:"scope"`
	Status     models.ExportStatus `json:"status"`
	Progress   int                 `json:"progress"`
	ResultURL  *string             `json:"resultUrl,omitempty"`
	Error      *string             `json:"error,omitempty"`
	FinishedAt *time.Time          `json:"finishedAt,omitempty"`
}

// ExportFile is a stored export ready to stream.
type ExportFile struct {
	Name        string
	ContentType string
	Size        int64
}
