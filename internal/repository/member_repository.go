package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/noah-isme/community-hub-api/internal/models"
)

const memberColumns = `id, name, username, email, role, skills, rating, availability, is_online, joined_at, active, created_at, updated_at`

// MemberRepository handles persistence for community members.
type MemberRepository struct {
	db *sqlx.DB
}

// NewMemberRepository creates a new MemberRepository.
func NewMemberRepository(db *sqlx.DB) *MemberRepository {
	return &MemberRepository{db: db}
}

// ListActive returns every active member in insertion order. Filtering and
// sorting happen in memory on the returned snapshot.
func (r *MemberRepository) ListActive(ctx context.Context) ([]models.Member, error) {
	query := fmt.Sprintf("SELECT %s FROM members WHERE active = TRUE ORDER BY created_at ASC, id ASC", memberColumns)
	var members []models.Member
	if err := r.db.SelectContext(ctx, &members, query); err != nil {
		return nil, fmt.Errorf("list active members: %w", err)
	}
	return members, nil
}

// FindByID fetches a member by id.
func (r *MemberRepository) FindByID(ctx context.Context, id string) (*models.Member, error) {
	query := fmt.Sprintf("SELECT %s FROM members WHERE id = $1", memberColumns)
	var member models.Member
	if err := r.db.GetContext(ctx, &member, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("find member by id: %w", err)
	}
	return &member, nil
}

// FindByUsernames resolves active members by lower-cased username.
func (r *MemberRepository) FindByUsernames(ctx context.Context, usernames []string) ([]models.Member, error) {
	if len(usernames) == 0 {
		return []models.Member{}, nil
	}
	query := fmt.Sprintf("SELECT %s FROM members WHERE active = TRUE AND LOWER(username) = ANY($1) ORDER BY username ASC", memberColumns)
	var members []models.Member
	if err := r.db.SelectContext(ctx, &members, query, pq.Array(usernames)); err != nil {
		return nil, fmt.Errorf("find members by username: %w", err)
	}
	return members, nil
}

// ExistsByUsername checks for an existing member with the username, ignoring case.
func (r *MemberRepository) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	const query = `SELECT EXISTS(SELECT 1 FROM members WHERE LOWER(username) = LOWER($1))`
	var exists bool
	if err := r.db.GetContext(ctx, &exists, query, username); err != nil {
		return false, fmt.Errorf("check member username: %w", err)
	}
	return exists, nil
}

// Create inserts a new member, filling id and timestamps when absent.
func (r *MemberRepository) Create(ctx context.Context, member *models.Member) error {
	if member.ID == "" {
		member.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if member.CreatedAt.IsZero() {
		member.CreatedAt = now
	}
	member.UpdatedAt = now
	if member.JoinedAt == nil {
		joined := member.CreatedAt
		member.JoinedAt = &joined
	}
	if member.Skills == nil {
		member.Skills = pq.StringArray{}
	}

	const query = `INSERT INTO members (id, name, username, email, role, skills, rating, availability, is_online, joined_at, active, created_at, updated_at)
VALUES (:id, :name, :username, :email, :role, :skills, :rating, :availability, :is_online, :joined_at, :active, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, member); err != nil {
		return fmt.Errorf("create member: %w", err)
	}
	return nil
}
