package postgres

import (
	"context"
	"fmt"
	"strings"

	"go-benefit-recommender/internal/domain"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lib/pq"
)

type benefitRepo struct {
	db *pgxpool.Pool
}

func NewBenefitRepository(db *pgxpool.Pool) domain.BenefitRepository {
	return &benefitRepo{db: db}
}

// ReplaceForOffer deletes saved benefits that are no longer selected and
// upserts the rest, in one transaction. Names are unique per offer, ignoring case.
// An empty selection clears every benefit saved for the offer.
func (r *benefitRepo) ReplaceForOffer(ctx context.Context, offerID int64, suggestions []domain.Suggestion) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx,
		`DELETE FROM offer_benefits WHERE offer_id = $1 AND NOT (lower(name) = ANY($2::text[]))`,
		offerID, pq.Array(keepNames(suggestions)),
	)
	if err != nil {
		return fmt.Errorf("prune benefits for offer %d: %w", offerID, err)
	}

	upsert := `
		INSERT INTO offer_benefits (offer_id, name, description, category, score)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (offer_id, lower(name)) DO UPDATE
		SET description = EXCLUDED.description,
			category = EXCLUDED.category,
			score = EXCLUDED.score`
	for _, s := range suggestions {
		if _, err := tx.Exec(ctx, upsert, offerID, s.Name, s.Description, string(s.Category), s.Score); err != nil {
			return fmt.Errorf("save benefit %q for offer %d: %w", s.Name, offerID, err)
		}
	}

	return tx.Commit(ctx)
}

// keepNames lower-cases the selected names for the prune statement. It never
// returns nil so an empty selection binds as '{}' rather than NULL.
func keepNames(suggestions []domain.Suggestion) []string {
	keep := make([]string, 0, len(suggestions))
	for _, s := range suggestions {
		keep = append(keep, strings.ToLower(s.Name))
	}
	return keep
}

func (r *benefitRepo) ListByOffer(ctx context.Context, offerID int64) ([]domain.SavedBenefit, error) {
	query := `
		SELECT id, offer_id, name, description, category, score, created_at
		FROM offer_benefits
		WHERE offer_id = $1
		ORDER BY score DESC, id ASC`

	rows, err := r.db.Query(ctx, query, offerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	benefits := []domain.SavedBenefit{}
	for rows.Next() {
		var b domain.SavedBenefit
		var category string
		if err := rows.Scan(&b.ID, &b.OfferID, &b.Name, &b.Description, &category, &b.Score, &b.CreatedAt); err != nil {
			return nil, err
		}
		if b.Category, err = domain.ParseCategory(category); err != nil {
			return nil, err
		}
		benefits = append(benefits, b)
	}
	return benefits, rows.Err()
}
