package service

import (
	"context"
	"database/sql"
	"encoding/json"
	"path"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/noah-isme/community-hub-api/internal/models"
	"github.com/noah-isme/community-hub-api/internal/repository"
	appErrors "github.com/noah-isme/community-hub-api/pkg/errors"
	"github.com/noah-isme/community-hub-api/pkg/jobs"
)

type memberRepoStub struct {
	members   []models.Member
	listCalls int
	listErr   error
	created   []*models.Member
}

func (r *memberRepoStub) ListActive(ctx context.Context) ([]models.Member, error) {
	r.listCalls++
	if r.listErr != nil {
		return nil, r.listErr
	}
	out := make([]models.Member, 0, len(r.members))
	for _, m := range r.members {
		if m.Active {
			out = append(out, m)
		}
	}
	return out, nil
}

func (r *memberRepoStub) FindByID(ctx context.Context, id string) (*models.Member, error) {
	for i := range r.members {
		if r.members[i].ID == id {
			m := r.members[i]
			return &m, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (r *memberRepoStub) FindByUsernames(ctx context.Context, usernames []string) ([]models.Member, error) {
	var out []models.Member
	for _, m := range r.members {
		for _, u := range usernames {
			if m.Active && strings.EqualFold(m.Username, u) {
				out = append(out, m)
			}
		}
	}
	return out, nil
}

func (r *memberRepoStub) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	for _, m := range r.members {
		if strings.EqualFold(m.Username, username) {
			return true, nil
		}
	}
	return false, nil
}

func (r *memberRepoStub) Create(ctx context.Context, member *models.Member) error {
	if member.ID == "" {
		member.ID = uuid.NewString()
	}
	r.created = append(r.created, member)
	r.members = append(r.members, *member)
	return nil
}

type postRepoStub struct {
	posts     []models.Post
	listCalls int
	created   []*models.Post
}

func (r *postRepoStub) ListWithAuthors(ctx context.Context) ([]models.Post, error) {
	r.listCalls++
	return append([]models.Post(nil), r.posts...), nil
}

func (r *postRepoStub) Create(ctx context.Context, post *models.Post) error {
	if post.ID == "" {
		post.ID = uuid.NewString()
	}
	r.created = append(r.created, post)
	return nil
}

// memoryCache mimics the Redis repository: values round-trip through JSON.
type memoryCache struct {
	mu      sync.Mutex
	entries map[string][]byte
}

func newMemoryCache() *memoryCache {
	return &memoryCache{entries: map[string][]byte{}}
}

func (c *memoryCache) Get(ctx context.Context, key string, dest interface{}) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	raw, ok := c.entries[key]
	if !ok {
		return appErrors.ErrCacheMiss
	}
	return json.Unmarshal(raw, dest)
}

func (c *memoryCache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = raw
	return nil
}

func (c *memoryCache) DeleteByPattern(ctx context.Context, pattern string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for key := range c.entries {
		if ok, _ := path.Match(pattern, key); ok {
			delete(c.entries, key)
		}
	}
	return nil
}

type invalidatorStub struct {
	calls int
	err   error
}

func (i *invalidatorStub) Invalidate(ctx context.Context) error {
	i.calls++
	return i.err
}

type exportRepoStub struct {
	mu   sync.Mutex
	jobs map[string]*models.ExportJob
}

func newExportRepoStub() *exportRepoStub {
	return &exportRepoStub{jobs: map[string]*models.ExportJob{}}
}

func (r *exportRepoStub) Create(ctx context.Context, job *models.ExportJob) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if job.ID == "" {
		job.ID = uuid.NewString()
	}
	r.jobs[job.ID] = job
	return nil
}

func (r *exportRepoStub) GetByID(ctx context.Context, id string) (*models.ExportJob, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	job, ok := r.jobs[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	copied := *job
	return &copied, nil
}

func (r *exportRepoStub) Update(ctx context.Context, id string, params repository.UpdateExportJobParams) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	job, ok := r.jobs[id]
	if !ok {
		return sql.ErrNoRows
	}
	if params.Status != nil {
		job.Status = *params.Status
	}
	if params.Progress != nil {
		job.Progress = *params.Progress
	}
	if params.ResultURL != nil {
		url := *params.ResultURL
		job.ResultURL = &url
	}
	if params.ErrorMessage != nil {
		msg := *params.ErrorMessage
		job.ErrorMessage = &msg
	}
	if params.FinishedAt != nil {
		at := *params.FinishedAt
		job.FinishedAt = &at
	}
	return nil
}

func (r *exportRepoStub) ListQueued(ctx context.Context, limit int) ([]models.ExportJob, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var queued []models.ExportJob
	for _, job := range r.jobs {
		if job.Status == models.ExportStatusQueued {
			queued = append(queued, *job)
		}
	}
	return queued, nil
}

func (r *exportRepoStub) ListFinishedBefore(ctx context.Context, cutoff time.Time, limit int) ([]models.ExportJob, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var finished []models.ExportJob
	for _, job := range r.jobs {
		if job.Status == models.ExportStatusFinished && job.FinishedAt != nil && job.FinishedAt.Before(cutoff) {
			finished = append(finished, *job)
		}
	}
	return finished, nil
}

type queueStub struct {
	jobs []jobs.Job[string]
	err  error
}

func (q *queueStub) Enqueue(job jobs.Job[string]) error {
	if q.err != nil {
		return q.err
	}
	q.jobs = append(q.jobs, job)
	return nil
}

func ptr[T any](v T) *T {
	return &v
}

func testMember(id, username, name string, role models.MemberRole) models.Member {
	joined := time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)
	return models.Member{
		ID:        id,
		Name:      name,
		Username:  username,
		Role:      role,
		Active:    true,
		JoinedAt:  &joined,
		CreatedAt: joined,
		UpdatedAt: joined,
	}
}
