package postgres

import (
	"context"
	"errors"

	"go-dogwalking-backend/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lib/pq"
)

type profileRepository struct {
	db *pgxpool.Pool
}

func NewProfileRepository(db *pgxpool.Pool) domain.ProfileRepository {
	return &profileRepository{db: db}
}

// GetByUserIDs batch-loads display profiles in one query. Ids with no
// profile row are simply absent from the map, never an error.
func (r *profileRepository) GetByUserIDs(ctx context.Context, userIDs []string) (map[string]domain.WalkerProfile, error) {
	profiles := make(map[string]domain.WalkerProfile, len(userIDs))
	if len(userIDs) == 0 {
		return profiles, nil
	}

	query := `
		SELECT user_id, COALESCE(full_name, ''), avatar_url, COALESCE(city, ''), COALESCE(bio, '')
		FROM profiles WHERE user_id = ANY($1)`

	rows, err := r.db.Query(ctx, query, pq.Array(userIDs))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var p domain.WalkerProfile
		if err := rows.Scan(&p.UserID, &p.FullName, &p.AvatarURL, &p.City, &p.Bio); err != nil {
			return nil, err
		}
		profiles[p.UserID] = p
	}
	return profiles, rows.Err()
}

func (r *profileRepository) GetByUserID(ctx context.Context, userID string) (*domain.WalkerProfile, error) {
	query := `
		SELECT user_id, COALESCE(full_name, ''), avatar_url, COALESCE(city, ''), COALESCE(bio, '')
		FROM profiles WHERE user_id = $1`

	var p domain.WalkerProfile
	err := r.db.QueryRow(ctx, query, userID).Scan(&p.UserID, &p.FullName, &p.AvatarURL, &p.City, &p.Bio)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &p, nil
}
