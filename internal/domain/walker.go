package domain

import (
	"context"
	"errors"
	"time"
)

// Common domain errors
var ErrNotFound = errors.New("resource not found")

// DefaultServiceRadiusKm applies when a walker has not set how far they travel.
const DefaultServiceRadiusKm = 10.0

// Walker is a service-provider listing: the scorable fields of a walker.
// Optional fields are pointers; nil means "not provided" and the matching
// engine skips that dimension instead of substituting a default.
type Walker struct {
	ID              int64     `json:"id"`
	UserID          string    `json:"user_id" validate:"required"`
	HourlyRate      *float64  `json:"hourly_rate" validate:"omitempty,gte=0"`
	Rating          *float64  `json:"rating" validate:"omitempty,gte=0,lte=5"`
	ReviewCount     *int      `json:"review_count" validate:"omitempty,gte=0"`
	Verified        *bool     `json:"verified"`
	Services        []string  `json:"services" validate:"omitempty,dive,oneof=walking sitting daycare boarding drop_in"`
	ExperienceYears *int      `json:"experience_years" validate:"omitempty,gte=0"`
	Latitude        *float64  `json:"latitude" validate:"omitempty,gte=-90,lte=90"`
	Longitude       *float64  `json:"longitude" validate:"omitempty,gte=-180,lte=180"`
	AvailableDays   []string  `json:"available_days" validate:"omitempty,dive,oneof=monday tuesday wednesday thursday friday saturday sunday"`
	AvailableFrom   string    `json:"available_from" validate:"omitempty,time_of_day"`
	AvailableUntil  string    `json:"available_until" validate:"omitempty,time_of_day"`
	MaxDogs         int       `json:"max_dogs"`
	ServiceRadiusKm *float64  `json:"service_radius_km" validate:"omitempty,gt=0"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// WalkerProfile holds the denormalized display attributes joined from the
// profiles table. Purely presentational; only City participates in scoring
// (as the fallback when coordinates are missing).
type WalkerProfile struct {
	UserID    string  `json:"user_id"`
	FullName  string  `json:"full_name"`
	AvatarURL *string `json:"avatar_url"`
	City      string  `json:"city"`
	Bio       string  `json:"bio"`
}

// WalkerWithProfile extends Walker with display attributes for listings.
// The profile is merged by explicit field mapping, never by overlaying maps,
// so a profile field can never shadow a walker field.
type WalkerWithProfile struct {
	Walker
	FullName  string  `json:"full_name"`
	AvatarURL *string `json:"avatar_url"`
	City      string  `json:"city"`
	Bio       string  `json:"bio"`
}

// ScoredWalker is a ranked search result. Transient: derived per search,
// never persisted.
type ScoredWalker struct {
	WalkerWithProfile
	MatchScore   int      `json:"match_score"`
	MatchReasons []string `json:"match_reasons"`
}

// WalkerFilter narrows the candidate pool server-side. Only exact
// service-type containment is supported; anything else is scored, not filtered.
type WalkerFilter struct {
	ServiceType string
}

type WalkerRepository interface {
	FetchPool(ctx context.Context, filter *WalkerFilter) ([]Walker, error)
	FetchPage(ctx context.Context, limit, offset int) ([]Walker, int64, error)
	GetByUserID(ctx context.Context, userID string) (*Walker, error)
	Create(ctx context.Context, walker *Walker) error
	Update(ctx context.Context, walker *Walker) error
}

type ProfileRepository interface {
	GetByUserIDs(ctx context.Context, userIDs []string) (map[string]WalkerProfile, error)
	GetByUserID(ctx context.Context, userID string) (*WalkerProfile, error)
}

type WalkerUsecase interface {
	GetListing(ctx context.Context, userID string) (*Walker, error)
	UpdateListing(ctx context.Context, walker *Walker) error
	ListWalkers(ctx context.Context, page, pageSize int) ([]WalkerWithProfile, int64, error)
	GetWalkerDetail(ctx context.Context, userID string) (*WalkerWithProfile, error)
}

type MatchUsecase interface {
	// FindMatches runs the full ranking pipeline. Data-access failures
	// degrade to an empty result; they never surface as an error.
	FindMatches(ctx context.Context, criteria *SearchCriteria) []ScoredWalker
	// TopMatches and MatchByUserID read the last successful ranking.
	TopMatches(n int) []ScoredWalker
	MatchByUserID(userID string) (*ScoredWalker, error)
}
