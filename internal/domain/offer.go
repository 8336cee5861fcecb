package domain

import (
	"context"
	"errors"
	"time"
)

// Common domain errors
var ErrNotFound = errors.New("resource not found")

// Offer is the job posting scored by the recommendation engine.
// Only ID is required; every other field degrades to "no signal" when empty.
type Offer struct {
	ID           int64     `json:"id"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	ContractType string    `json:"contract_type"`
	WorkMode     string    `json:"work_mode"`
	SalaryMin    float64   `json:"salary_min"`
	SalaryMax    float64   `json:"salary_max"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// OfferRepository reads offers owned by the surrounding recruitment system.
type OfferRepository interface {
	GetByID(ctx context.Context, id int64) (*Offer, error)
}
