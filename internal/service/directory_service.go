package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/community-hub-api/internal/discovery"
	"github.com/noah-isme/community-hub-api/internal/dto"
	"github.com/noah-isme/community-hub-api/internal/models"
	appErrors "github.com/noah-isme/community-hub-api/pkg/errors"
)

type memberLister interface {
	ListActive(ctx context.Context) ([]models.Member, error)
}

type postLister interface {
	ListWithAuthors(ctx context.Context) ([]models.Post, error)
}

// DirectoryConfig tunes paging and snapshot caching.
type DirectoryConfig struct {
	CacheTTL        time.Duration
	DefaultPageSize int
	MaxPageSize     int
}

// DirectoryService serves the member directory and the feed. Raw snapshots
// are cached; every request runs its own discovery pass over the snapshot.
type DirectoryService struct {
	members memberLister
	posts   postLister
	cache   *CacheService
	metrics *MetricsService
	logger  *zap.Logger
	cfg     DirectoryConfig
}

// NewDirectoryService constructs the directory service.
func NewDirectoryService(members memberLister, posts postLister, cache *CacheService, metrics *MetricsService, logger *zap.Logger, cfg DirectoryConfig) *DirectoryService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.DefaultPageSize <= 0 {
		cfg.DefaultPageSize = 20
	}
	if cfg.MaxPageSize < cfg.DefaultPageSize {
		cfg.MaxPageSize = cfg.DefaultPageSize
	}
	return &DirectoryService{members: members, posts: posts, cache: cache, metrics: metrics, logger: logger, cfg: cfg}
}

var (
	membersSnapshotKey = Key("directory", "members")
	feedSnapshotKey    = Key("directory", "feed")
)

// Members returns one page of the filtered and sorted member directory.
func (s *DirectoryService) Members(ctx context.Context, q dto.DirectoryQuery) (*dto.ListResult[models.Member], error) {
	members, hit, err := s.loadMembers(ctx)
	if err != nil {
		return nil, err
	}
	res := s.run(models.ExportScopeMembers, discovery.MemberItems(members), q.Selection())
	page, size := s.pageBounds(q)

	out := make([]models.Member, 0, size)
	for _, item := range discovery.Page(res.Items, page, size) {
		out = append(out, *item.Member)
	}
	return &dto.ListResult[models.Member]{
		Items:      out,
		Pagination: models.Pagination{Page: page, PageSize: size, TotalCount: len(res.Items)},
		SortBy:     res.SortBy,
		Skipped:    res.Skipped,
		CacheHit:   hit,
	}, nil
}

// Feed returns one page of the filtered and sorted feed.
func (s *DirectoryService) Feed(ctx context.Context, q dto.DirectoryQuery) (*dto.ListResult[models.Post], error) {
	posts, hit, err := s.loadPosts(ctx)
	if err != nil {
		return nil, err
	}
	res := s.run(models.ExportScopeFeed, discovery.PostItems(posts), q.Selection())
	page, size := s.pageBounds(q)

	out := make([]models.Post, 0, size)
	for _, item := range discovery.Page(res.Items, page, size) {
		out = append(out, *item.Post)
	}
	return &dto.ListResult[models.Post]{
		Items:      out,
		Pagination: models.Pagination{Page: page, PageSize: size, TotalCount: len(res.Items)},
		SortBy:     res.SortBy,
		Skipped:    res.Skipped,
		CacheHit:   hit,
	}, nil
}

// Skills lists every distinct skill of active members for the skill filter.
func (s *DirectoryService) Skills(ctx context.Context) ([]string, error) {
	members, _, err := s.loadMembers(ctx)
	if err != nil {
		return nil, err
	}
	return discovery.Skills(discovery.MemberItems(members)), nil
}

// ActiveMembers returns the raw member snapshot.
func (s *DirectoryService) ActiveMembers(ctx context.Context) ([]models.Member, error) {
	members, _, err := s.loadMembers(ctx)
	return members, err
}

// Snapshot runs a full, unpaged pass for scope. Exports use it.
func (s *DirectoryService) Snapshot(ctx context.Context, scope models.ExportScope, sel discovery.Selection) (discovery.Result, error) {
	switch scope {
	case models.ExportScopeMembers:
		members, _, err := s.loadMembers(ctx)
		if err != nil {
			return discovery.Result{}, err
		}
		return s.run(scope, discovery.MemberItems(members), sel), nil
	case models.ExportScopeFeed:
		posts, _, err := s.loadPosts(ctx)
		if err != nil {
			return discovery.Result{}, err
		}
		return s.run(scope, discovery.PostItems(posts), sel), nil
	default:
		return discovery.Result{}, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unknown scope %q", scope))
	}
}

// Invalidate drops both cached snapshots.
func (s *DirectoryService) Invalidate(ctx context.Context) error {
	return s.cache.Invalidate(ctx, Key("directory", "*"))
}

func (s *DirectoryService) loadMembers(ctx context.Context) ([]models.Member, bool, error) {
	var members []models.Member
	if hit, _ := s.cache.Get(ctx, membersSnapshotKey, &members); hit {
		return members, true, nil
	}
	members, err := s.members.ListActive(ctx)
	if err != nil {
		return nil, false, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load members")
	}
	_ = s.cache.Set(ctx, membersSnapshotKey, members, s.cfg.CacheTTL)
	return members, false, nil
}

func (s *DirectoryService) loadPosts(ctx context.Context) ([]models.Post, bool, error) {
	var posts []models.Post
	if hit, _ := s.cache.Get(ctx, feedSnapshotKey, &posts); hit {
		return posts, true, nil
	}
	posts, err := s.posts.ListWithAuthors(ctx)
	if err != nil {
		return nil, false, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load feed")
	}
	_ = s.cache.Set(ctx, feedSnapshotKey, posts, s.cfg.CacheTTL)
	return posts, false, nil
}

func (s *DirectoryService) run(scope models.ExportScope, items []discovery.Item, sel discovery.Selection) discovery.Result {
	start := time.Now()
	res := discovery.Run(items, sel)
	s.metrics.ObserveDiscoveryPass(string(scope), string(res.SortBy), len(items), len(res.Items), res.Skipped, time.Since(start))
	if res.Skipped > 0 {
		s.logger.Warn("skipped malformed directory items",
			zap.String("scope", string(scope)),
			zap.Int("skipped", res.Skipped),
			zap.Int("total", len(items)),
		)
	}
	return res
}

func (s *DirectoryService) pageBounds(q dto.DirectoryQuery) (int, int) {
	page := q.Page
	if page < 1 {
		page = 1
	}
	size := q.Limit
	if size <= 0 {
		size = s.cfg.DefaultPageSize
	}
	if size > s.cfg.MaxPageSize {
		size = s.cfg.MaxPageSize
	}
	return page, size
}
