package service

import (
	"context"
	"fmt"
	"io"
	"path"
	"strconv"
	"strings"
	"time"

	"github.com/noah-isme/community-hub-api/internal/discovery"
	"github.com/noah-isme/community-hub-api/internal/models"
	"github.com/noah-isme/community-hub-api/pkg/export"
	"github.com/noah-isme/community-hub-api/pkg/storage"
)

type directorySnapshot interface {
	Snapshot(ctx context.Context, scope models.ExportScope, sel discovery.Selection) (discovery.Result, error)
}

type fileStorage interface {
	Save(name string, data []byte) (string, error)
	Open(name string) (io.ReadCloser, int64, error)
	Delete(name string) error
	CleanupOlderThan(ttl time.Duration) ([]string, error)
}

// ExportResult captures successful generation metadata.
type ExportResult struct {
	Path      string
	Token     string
	URL       string
	ExpiresAt time.Time
}

// ExportBuilder renders directory snapshots to files and signs download links.
type ExportBuilder struct {
	directory directorySnapshot
	storage   fileStorage
	signer    *storage.SignedURLSigner
	renderers map[models.ExportFormat]export.Renderer
	apiPrefix string
}

// NewExportBuilder constructs the builder with CSV and PDF renderers.
func NewExportBuilder(directory directorySnapshot, store fileStorage, signer *storage.SignedURLSigner, apiPrefix string) *ExportBuilder {
	return &ExportBuilder{
		directory: directory,
		storage:   store,
		signer:    signer,
		renderers: map[models.ExportFormat]export.Renderer{
			models.ExportFormatCSV: export.NewCSVRenderer(),
			models.ExportFormatPDF: export.NewPDFRenderer(),
		},
		apiPrefix: strings.TrimRight(apiPrefix, "/"),
	}
}

// Generate runs the job's selection over a fresh snapshot, renders it and
// stores the file under <scope>/<job id>.<ext>.
func (b *ExportBuilder) Generate(ctx context.Context, job *models.ExportJob) (*ExportResult, error) {
	if job == nil {
		return nil, fmt.Errorf("job nil")
	}
	renderer, ok := b.renderers[job.Params.Format]
	if !ok {
		return nil, fmt.Errorf("unsupported format %q", job.Params.Format)
	}

	res, err := b.directory.Snapshot(ctx, job.Scope, selectionFromParams(job.Params))
	if err != nil {
		return nil, err
	}

	var table export.Table
	switch job.Scope {
	case models.ExportScopeMembers:
		table = memberTable(res.Items)
	case models.ExportScopeFeed:
		table = feedTable(res.Items)
	default:
		return nil, fmt.Errorf("unsupported scope %q", job.Scope)
	}
	table.Title = fmt.Sprintf("%s (sorted by %s)", table.Title, res.SortBy)

	payload, err := renderer.Render(table)
	if err != nil {
		return nil, err
	}
	name := path.Join(string(job.Scope), job.ID+"."+renderer.Extension())
	stored, err := b.storage.Save(name, payload)
	if err != nil {
		return nil, err
	}
	token, expiresAt, err := b.signer.Generate(job.ID, stored)
	if err != nil {
		return nil, err
	}
	return &ExportResult{
		Path:      stored,
		Token:     token,
		URL:       b.apiPrefix + "/exports/download/" + token,
		ExpiresAt: expiresAt,
	}, nil
}

// ContentType returns the MIME type for a stored export format.
func (b *ExportBuilder) ContentType(format models.ExportFormat) string {
	if r, ok := b.renderers[format]; ok {
		return r.ContentType()
	}
	return "application/octet-stream"
}

func selectionFromParams(p models.ExportJobParams) discovery.Selection {
	return discovery.Selection{
		SortBy:       discovery.SortKey(p.SortBy),
		Role:         p.Role,
		Skill:        p.Skill,
		Rating:       p.Rating,
		Availability: p.Availability,
		Search:       p.Search,
	}
}

func memberTable(items []discovery.Item) export.Table {
	table := export.Table{
		Title:   "Community members",
		Columns: []string{"Username", "Name", "Role", "Skills", "Rating", "Availability", "Online", "Joined"},
		Rows:    make([][]string, 0, len(items)),
	}
	for _, item := range items {
		m := item.Member
		row := []string{m.Username, m.Name, string(m.Role), strings.Join(m.Skills, ", "), "", "", "", ""}
		if m.Rating != nil {
			row[4] = strconv.FormatFloat(*m.Rating, 'f', 1, 64)
		}
		if m.Availability != nil {
			row[5] = string(*m.Availability)
		}
		if m.IsOnline != nil {
			row[6] = strconv.FormatBool(*m.IsOnline)
		}
		if m.JoinedAt != nil {
			row[7] = m.JoinedAt.UTC().Format("2006-01-02")
		}
		table.Rows = append(table.Rows, row)
	}
	return table
}

func feedTable(items []discovery.Item) export.Table {
	table := export.Table{
		Title:   "Community feed",
		Columns: []string{"Posted", "Author", "Content", "Likes", "Comments"},
		Rows:    make([][]string, 0, len(items)),
	}
	for _, item := range items {
		p := item.Post
		table.Rows = append(table.Rows, []string{
			p.CreatedAt.UTC().Format(time.RFC3339),
			p.Author.Username,
			p.Content,
			strconv.Itoa(p.LikeCount),
			strconv.Itoa(p.CommentCount),
		})
	}
	return table
}
