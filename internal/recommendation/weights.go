package recommendation

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"

	"gopkg.in/yaml.v3"
)

const (
	minWeight = 1
	maxWeight = 100
)

// Weights maps a benefit key to its base score.
type Weights map[string]int

var defaultWeights = Weights{
	"remote_allowance":   85,
	"home_office_budget": 80,
	"flexible_hours":     70,

	"transport_pass": 78,
	"parking_space":  62,
	"meal_vouchers":  74,

	"choose_remote_days": 78,

	"savings_plan":   72,
	"premium_health": 76,
	"extra_leave":    70,

	"end_of_contract_bonus": 74,

	"certified_training": 78,
	"intern_mentoring":   75,
	"hire_potential":     72,

	"daily_rate": 80,

	"modern_equipment":       82,
	"tech_conference_budget": 68,
	"dev_tooling":            66,
	"learning_time":          64,

	"management_coaching":      74,
	"management_bonus":         72,
	"management_team_building": 60,

	"sales_commission": 84,
	"company_car":      70,
	"mobile_kit":       62,

	"creative_licenses":  76,
	"design_tablet":      62,
	"inspiration_budget": 60,

	"language_courses":       72,
	"international_mobility": 68,
	"relocation":             66,

	"hr_certification":  66,
	"wellbeing_program": 60,

	"profit_sharing":             74,
	"professional_certification": 64,

	"marketing_tools":             66,
	"marketing_conference_budget": 62,

	"stock_options":  88,
	"life_insurance": 72,
	"concierge":      60,

	"performance_bonus": 65,
	"gift_vouchers":     55,

	"housing_aid":    70,
	"meal_allowance": 68,

	"health_checkup":  62,
	"senior_coaching": 60,
	"sabbatical":      58,

	"onboarding_buddy": 66,
	"junior_mentoring": 64,

	"work_from_anywhere":     92,
	"technical_career_track": 90,

	"sport_subsidy": 50,
	"telemedicine":  45,
	"team_building": 40,
}

// DefaultWeights returns a copy of the built-in weight table.
func DefaultWeights() Weights {
	out := make(Weights, len(defaultWeights))
	for k, v := range defaultWeights {
		out[k] = v
	}
	return out
}

type weightsFile struct {
	Weights map[string]int `yaml:"weights"`
}

// ParseWeights decodes a YAML weight table and overlays it on the defaults.
// Keys missing from the document keep their default score.
func ParseWeights(data []byte) (Weights, error) {
	var f weightsFile
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("decode weights: %w", err)
	}

	w := DefaultWeights()
	var errs []error
	for k, v := range f.Weights {
		if _, ok := defaultWeights[k]; !ok {
			errs = append(errs, fmt.Errorf("unknown benefit key %q", k))
			continue
		}
		w[k] = v
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	if err := w.Validate(); err != nil {
		return nil, err
	}
	return w, nil
}

// LoadWeights reads a YAML weight table from path. An empty path yields the defaults.
func LoadWeights(path string) (Weights, error) {
	if path == "" {
		return DefaultWeights(), nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read weights file: %w", err)
	}
	return ParseWeights(b)
}

// Validate checks that every catalog benefit has a score in range and that
// the tiers keep their ordering: baseline < specific < combined.
func (w Weights) Validate() error {
	var errs []error
	lo := map[Tier]int{}
	hi := map[Tier]int{}
	seen := map[Tier]bool{}

	for _, g := range catalog {
		for _, b := range g.benefits {
			v, ok := w[b.key]
			if !ok {
				errs = append(errs, fmt.Errorf("missing weight for %q", b.key))
				continue
			}
			if v < minWeight || v > maxWeight {
				errs = append(errs, fmt.Errorf("weight for %q must be within %d..%d, got %d", b.key, minWeight, maxWeight, v))
			}
			if !seen[g.tier] || v < lo[g.tier] {
				lo[g.tier] = v
			}
			if !seen[g.tier] || v > hi[g.tier] {
				hi[g.tier] = v
			}
			seen[g.tier] = true
		}
	}

	if hi[TierBaseline] >= lo[TierSpecific] {
		errs = append(errs, fmt.Errorf("baseline weights (max %d) must stay below specific weights (min %d)", hi[TierBaseline], lo[TierSpecific]))
	}
	if hi[TierSpecific] >= lo[TierCombined] {
		errs = append(errs, fmt.Errorf("specific weights (max %d) must stay below combined weights (min %d)", hi[TierSpecific], lo[TierCombined]))
	}
	return errors.Join(errs...)
}

// Fingerprint is a short stable hash of the table, used to version cached results.
func (w Weights) Fingerprint() string {
	keys := make([]string, 0, len(w))
	for k := range w {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	h := sha256.New()
	for _, k := range keys {
		h.Write([]byte(k))
		h.Write([]byte{'='})
		h.Write([]byte(strconv.Itoa(w[k])))
		h.Write([]byte{';'})
	}
	return hex.EncodeToString(h.Sum(nil))[:12]
}
