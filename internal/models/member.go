package models

import (
	"time"

	"github.com/lib/pq"
)

// MemberRole represents the closed set of community roles.
type MemberRole string

const (
	RoleLearner MemberRole = "learner"
	RoleMentor  MemberRole = "mentor"
	RoleAdmin   MemberRole = "admin"
)

// Availability describes whether a member can take mentorship requests.
type Availability string

const (
	AvailabilityAvailable Availability = "available"
	AvailabilityBusy      Availability = "busy"
	AvailabilityOffline   Availability = "offline"
)

// Member is a person registered on the platform.
type Member struct {
	ID           string         `db:"id" json:"id"`
	Name         string         `db:"name" json:"name"`
	Username     string         `db:"username" json:"username"`
	Email        string         `db:"email" json:"-"`
	Role         MemberRole     `db:"role" json:"role"`
	Skills       pq.StringArray `db:"skills" json:"skills,omitempty"`
	Rating       *float64       `db:"rating" json:"rating,omitempty"`
	Availability *Availability  `db:"availability" json:"availability,omitempty"`
	IsOnline     *bool          `db:"is_online" json:"is_online,omitempty"`
	JoinedAt     *time.Time     `db:"joined_at" json:"joined_at,omitempty"`
	Active       bool           `db:"active" json:"active"`
	CreatedAt    time.Time      `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time      `db:"updated_at" json:"updated_at"`
}

// Pagination contains pagination metadata returned in list responses.
type Pagination struct {
	Page       int `json:"page"`
	PageSize   int `json:"page_size"`
	TotalCount int `json:"total_count"`
}
