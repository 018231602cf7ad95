package seed

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"go.uber.org/zap"

	"github.com/noah-isme/community-hub-api/internal/mention"
	"github.com/noah-isme/community-hub-api/internal/models"
)

type memberWriter interface {
	Create(ctx context.Context, member *models.Member) error
}

type postWriter interface {
	Create(ctx context.Context, post *models.Post) error
}

// Options controls how much data is generated.
type Options struct {
	Members int
	Posts   int
	// Seed makes a run reproducible. Zero picks one from the clock.
	Seed uint64
	// MissingRate is the share of members left without rating, availability
	// or join date, so the directory exercises its missing-field ordering.
	MissingRate float64
}

// Summary reports what a run wrote.
type Summary struct {
	Members  int
	Posts    int
	Mentions int
}

var skillPool = []string{
	"Go", "SQL", "React", "TypeScript", "Python", "Kubernetes", "Docker",
	"GraphQL", "Rust", "Figma", "Data Science", "Machine Learning", "DevOps",
}

// Seeder generates fake members and posts.
type Seeder struct {
	members memberWriter
	posts   postWriter
	logger  *zap.Logger
	now     func() time.Time
}

// NewSeeder constructs a seeder.
func NewSeeder(members memberWriter, posts postWriter, logger *zap.Logger) *Seeder {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Seeder{members: members, posts: posts, logger: logger, now: time.Now}
}

// Run writes opts.Members members and opts.Posts posts. Posts are authored by
// random active members and may mention up to two other members.
func (s *Seeder) Run(ctx context.Context, opts Options) (Summary, error) {
	var summary Summary
	if opts.Members <= 0 {
		return summary, fmt.Errorf("members must be positive")
	}
	seed := opts.Seed
	if seed == 0 {
		seed = uint64(s.now().UnixNano())
	}
	faker := gofakeit.New(seed)
	now := s.now().UTC()

	members := make([]models.Member, 0, opts.Members)
	taken := make(map[string]struct{}, opts.Members)
	for i := 0; i < opts.Members; i++ {
		member := s.fakeMember(faker, now, opts.MissingRate, taken)
		if err := s.members.Create(ctx, &member); err != nil {
			return summary, fmt.Errorf("create member %s: %w", member.Username, err)
		}
		members = append(members, member)
		summary.Members++
	}

	for i := 0; i < opts.Posts; i++ {
		author := members[faker.IntRange(0, len(members)-1)]
		post := s.fakePost(faker, now, author, members)
		if err := s.posts.Create(ctx, &post); err != nil {
			return summary, fmt.Errorf("create post: %w", err)
		}
		summary.Posts++
		summary.Mentions += len(post.Mentions)
	}

	s.logger.Info("seed completed",
		zap.Uint64("seed", seed),
		zap.Int("members", summary.Members),
		zap.Int("posts", summary.Posts),
		zap.Int("mentions", summary.Mentions),
	)
	return summary, nil
}

func (s *Seeder) fakeMember(faker *gofakeit.Faker, now time.Time, missingRate float64, taken map[string]struct{}) models.Member {
	username := uniqueUsername(faker, taken)
	role := models.RoleLearner
	switch roll := faker.Float64Range(0, 1); {
	case roll < 0.3:
		role = models.RoleMentor
	case roll < 0.35:
		role = models.RoleAdmin
	}

	skillCount := faker.IntRange(1, 4)
	skills := make([]string, 0, skillCount)
	seen := map[string]struct{}{}
	for len(skills) < skillCount {
		skill := faker.RandomString(skillPool)
		if _, dup := seen[skill]; dup {
			continue
		}
		seen[skill] = struct{}{}
		skills = append(skills, skill)
	}

	member := models.Member{
		Name:     faker.Name(),
		Username: username,
		Email:    strings.ToLower(username) + "@" + faker.DomainName(),
		Role:     role,
		Skills:   skills,
		Active:   faker.Float64Range(0, 1) > 0.05,
	}
	if faker.Float64Range(0, 1) >= missingRate {
		rating := float64(faker.IntRange(10, 50)) / 10
		availability := models.Availability(faker.RandomString([]string{
			string(models.AvailabilityAvailable), string(models.AvailabilityBusy), string(models.AvailabilityOffline),
		}))
		online := availability != models.AvailabilityOffline && faker.Bool()
		joined := faker.DateRange(now.AddDate(-3, 0, 0), now)
		member.Rating = &rating
		member.Availability = &availability
		member.IsOnline = &online
		member.JoinedAt = &joined
	}
	return member
}

func (s *Seeder) fakePost(faker *gofakeit.Faker, now time.Time, author models.Member, members []models.Member) models.Post {
	content := faker.HipsterSentence()
	for n := faker.IntRange(0, 2); n > 0 && len(members) > 1; n-- {
		target := members[faker.IntRange(0, len(members)-1)]
		if target.ID == author.ID || !target.Active {
			continue
		}
		content += " @" + target.Username
	}
	return models.Post{
		AuthorID:     author.ID,
		Content:      content,
		LikeCount:    faker.IntRange(0, 250),
		CommentCount: faker.IntRange(0, 60),
		Mentions:     mention.Extract(content),
		CreatedAt:    faker.DateRange(now.AddDate(0, 0, -30), now),
	}
}

func uniqueUsername(faker *gofakeit.Faker, taken map[string]struct{}) string {
	for {
		candidate := sanitizeUsername(faker.Username())
		if len(candidate) < 3 {
			continue
		}
		key := strings.ToLower(candidate)
		if _, dup := taken[key]; dup {
			candidate = fmt.Sprintf("%s%d", candidate, faker.IntRange(10, 9999))
			key = strings.ToLower(candidate)
			if _, dup := taken[key]; dup {
				continue
			}
		}
		if !mention.ValidUsername(candidate) {
			continue
		}
		taken[key] = struct{}{}
		return candidate
	}
}

func sanitizeUsername(raw string) string {
	var b strings.Builder
	for _, r := range raw {
		if r == '_' || r >= '0' && r <= '9' || r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' {
			b.WriteRune(r)
		}
	}
	out := b.String()
	if len(out) > 30 {
		out = out[:30]
	}
	return out
}
