package usecase

import (
	"context"
	"sort"
	"time"

	"go-benefit-recommender/internal/recommendation"
	"go-benefit-recommender/pkg/logger"
)

type HealthUsecase interface {
	Check(ctx context.Context) map[string]string
}

// Pinger reports whether a backing service answers. A nil Pinger marks the
// dependency as not configured.
type Pinger func(ctx context.Context) error

type healthUsecase struct {
	engine *recommendation.Engine
	checks map[string]Pinger
}

func NewHealthUsecase(engine *recommendation.Engine, checks map[string]Pinger) HealthUsecase {
	return &healthUsecase{engine: engine, checks: checks}
}

// Check always answers; optional dependencies that are down only degrade the status.
func (u *healthUsecase) Check(ctx context.Context) map[string]string {
	out := map[string]string{
		"status":  "ok",
		"weights": u.engine.Fingerprint(),
	}

	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	names := make([]string, 0, len(u.checks))
	for name := range u.checks {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		ping := u.checks[name]
		switch {
		case ping == nil:
			out[name] = "disabled"
		case ping(ctx) != nil:
			out[name] = "unavailable"
			out["status"] = "degraded"
			logger.Log.Warn("Health check failed", "dependency", name)
		default:
			out[name] = "ok"
		}
	}
	return out
}
