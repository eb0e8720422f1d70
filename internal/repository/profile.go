package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/codewithrabha/eventbooking/internal/domain"
	"github.com/wb-go/wbf/dbpg"
	"github.com/wb-go/wbf/retry"
)

type ProfileRepository struct {
	db       *dbpg.DB
	strategy retry.Strategy
}

func NewProfileRepo(db *dbpg.DB, strategy retry.Strategy) *ProfileRepository {
	return &ProfileRepository{
		db:       db,
		strategy: strategy,
	}
}

func (r *ProfileRepository) GetByID(ctx context.Context, id string) (*domain.Profile, error) {
	query := `SELECT id, full_name, phone, updated_at
			  FROM profiles
			  WHERE id = $1`

	row, err := r.db.QueryRowWithRetry(ctx, r.strategy, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrProfileNotFound
		}
		return nil, fmt.Errorf("get profile: %w", err)
	}

	var p domain.Profile
	if err = row.Scan(&p.ID, &p.FullName, &p.Phone, &p.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrProfileNotFound
		}
		return nil, fmt.Errorf("scan profile: %w", err)
	}

	return &p, nil
}

func (r *ProfileRepository) Update(ctx context.Context, id string, in domain.UpdateProfileInput, now time.Time) (*domain.Profile, error) {
	query := `UPDATE profiles
			  SET full_name  = COALESCE($2::text, full_name),
			      phone      = COALESCE($3::text, phone),
			      updated_at = $4
			  WHERE id = $1
			  RETURNING id, full_name, phone, updated_at`

	var p domain.Profile
	err := r.db.Master.QueryRowContext(ctx, query, id, in.FullName, in.Phone, now).
		Scan(&p.ID, &p.FullName, &p.Phone, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrProfileNotFound
		}
		return nil, fmt.Errorf("update profile: %w", err)
	}

	return &p, nil
}
