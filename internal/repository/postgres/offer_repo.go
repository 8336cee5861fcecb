package postgres

import (
	"context"
	"errors"
	"fmt"

	"go-benefit-recommender/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type offerRepo struct {
	db *pgxpool.Pool
}

func NewOfferRepository(db *pgxpool.Pool) domain.OfferRepository {
	return &offerRepo{db: db}
}

func (r *offerRepo) GetByID(ctx context.Context, id int64) (*domain.Offer, error) {
	query := `
		SELECT id, COALESCE(title, ''), COALESCE(description, ''),
			COALESCE(contract_type, ''), COALESCE(work_mode, ''),
			COALESCE(salary_min, 0)::float8, COALESCE(salary_max, 0)::float8,
			created_at, updated_at
		FROM offers
		WHERE id = $1`

	var offer domain.Offer
	err := r.db.QueryRow(ctx, query, id).Scan(
		&offer.ID, &offer.Title, &offer.Description,
		&offer.ContractType, &offer.WorkMode,
		&offer.SalaryMin, &offer.SalaryMax,
		&offer.CreatedAt, &offer.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get offer %d: %w", id, err)
	}
	return &offer, nil
}
