package postgres

import (
	"context"
	"errors"

	"go-dogwalking-backend/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lib/pq"
)

type walkerRepository struct {
	db *pgxpool.Pool
}

func NewWalkerRepository(db *pgxpool.Pool) domain.WalkerRepository {
	return &walkerRepository{db: db}
}

const walkerColumns = `
	id, user_id, hourly_rate, rating, review_count, verified,
	services, experience_years, latitude, longitude,
	available_days, COALESCE(available_from, ''), COALESCE(available_until, ''),
	max_dogs, service_radius_km, created_at, updated_at`

func scanWalker(row pgx.Row) (*domain.Walker, error) {
	var w domain.Walker
	var services, days []string

	err := row.Scan(
		&w.ID, &w.UserID, &w.HourlyRate, &w.Rating, &w.ReviewCount, &w.Verified,
		pq.Array(&services), &w.ExperienceYears, &w.Latitude, &w.Longitude,
		pq.Array(&days), &w.AvailableFrom, &w.AvailableUntil,
		&w.MaxDogs, &w.ServiceRadiusKm, &w.CreatedAt, &w.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	w.Services = services
	w.AvailableDays = days
	return &w, nil
}

// FetchPool returns the whole candidate pool for ranking. The only
// server-side narrowing is exact service-type containment; everything else
// is the scorer's job.
func (r *walkerRepository) FetchPool(ctx context.Context, filter *domain.WalkerFilter) ([]domain.Walker, error) {
	query := `SELECT ` + walkerColumns + ` FROM walker_listings`
	args := []interface{}{}
	if filter != nil && filter.ServiceType != "" {
		query += ` WHERE services @> $1`
		args = append(args, pq.Array([]string{filter.ServiceType}))
	}
	query += ` ORDER BY id`

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var walkers []domain.Walker
	for rows.Next() {
		w, err := scanWalker(rows)
		if err != nil {
			return nil, err
		}
		walkers = append(walkers, *w)
	}
	return walkers, rows.Err()
}

func (r *walkerRepository) FetchPage(ctx context.Context, limit, offset int) ([]domain.Walker, int64, error) {
	query := `SELECT ` + walkerColumns + ` FROM walker_listings
		ORDER BY rating DESC NULLS LAST, id
		LIMIT $1 OFFSET $2`

	rows, err := r.db.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var walkers []domain.Walker
	for rows.Next() {
		w, err := scanWalker(rows)
		if err != nil {
			return nil, 0, err
		}
		walkers = append(walkers, *w)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	var total int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM walker_listings`).Scan(&total); err != nil {
		return nil, 0, err
	}

	return walkers, total, nil
}

func (r *walkerRepository) GetByUserID(ctx context.Context, userID string) (*domain.Walker, error) {
	query := `SELECT ` + walkerColumns + ` FROM walker_listings WHERE user_id = $1`

	w, err := scanWalker(r.db.QueryRow(ctx, query, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return w, nil
}

func (r *walkerRepository) Create(ctx context.Context, walker *domain.Walker) error {
	query := `
		INSERT INTO walker_listings (
			user_id, hourly_rate, rating, review_count, verified,
			services, experience_years, latitude, longitude,
			available_days, available_from, available_until,
			max_dogs, service_radius_km, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, NOW(), NOW())`

	_, err := r.db.Exec(ctx, query,
		walker.UserID, walker.HourlyRate, walker.Rating, walker.ReviewCount, walker.Verified,
		pq.Array(walker.Services), walker.ExperienceYears, walker.Latitude, walker.Longitude,
		pq.Array(walker.AvailableDays), nullIfEmpty(walker.AvailableFrom), nullIfEmpty(walker.AvailableUntil),
		walker.MaxDogs, walker.ServiceRadiusKm,
	)
	return err
}

func (r *walkerRepository) Update(ctx context.Context, walker *domain.Walker) error {
	query := `
		UPDATE walker_listings SET
			hourly_rate = $2, services = $3, experience_years = $4,
			latitude = $5, longitude = $6,
			available_days = $7, available_from = $8, available_until = $9,
			max_dogs = $10, service_radius_km = $11, updated_at = NOW()
		WHERE user_id = $1`

	// Rating, review count and verified are system-maintained; listing
	// updates cannot touch them.
	_, err := r.db.Exec(ctx, query,
		walker.UserID, walker.HourlyRate,
		pq.Array(walker.Services), walker.ExperienceYears,
		walker.Latitude, walker.Longitude,
		pq.Array(walker.AvailableDays), nullIfEmpty(walker.AvailableFrom), nullIfEmpty(walker.AvailableUntil),
		walker.MaxDogs, walker.ServiceRadiusKm,
	)
	return err
}

func nullIfEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
