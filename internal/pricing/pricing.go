// Package pricing holds the canonical token price list: the job application
// cost, the promotion plans and the currency price of one token.
package pricing

import (
	"errors"
	"fmt"
	"os"
	"sort"

	"github.com/sbilibin2017/gw-token-ledger/internal/models"
	"gopkg.in/yaml.v3"
)

// ErrUnknownPlan is returned when a plan name is not in the table.
var ErrUnknownPlan = errors.New("unknown promotion plan")

// Table is the price list. Plans are keyed by tier name.
type Table struct {
	ApplicationCost int64                                        `yaml:"application_cost" json:"application_cost"`
	PricePerToken   int64                                        `yaml:"price_per_token" json:"price_per_token"`
	Plans           map[models.PromotionTag]models.PromotionPlan `yaml:"plans" json:"-"`
}

// Default returns the built-in price list used when no pricing file is configured.
func Default() *Table {
	return &Table{
		ApplicationCost: 3,
		PricePerToken:   250,
		Plans: map[models.PromotionTag]models.PromotionPlan{
			models.PromotionSilver:  {Name: models.PromotionSilver, Cost: 3, DurationDays: 3},
			models.PromotionGold:    {Name: models.PromotionGold, Cost: 6, DurationDays: 7},
			models.PromotionPremium: {Name: models.PromotionPremium, Cost: 10, DurationDays: 15},
		},
	}
}

// Load reads a YAML price list from path. An empty path returns Default.
func Load(path string) (*Table, error) {
	if path == "" {
		return Default(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read pricing file: %w", err)
	}
	return Parse(data)
}

// Parse decodes and validates a YAML price list.
func Parse(data []byte) (*Table, error) {
	var t Table
	if err := yaml.Unmarshal(data, &t); err != nil {
		return nil, fmt.Errorf("decode pricing file: %w", err)
	}

	for name, plan := range t.Plans {
		plan.Name = name
		t.Plans[name] = plan
	}

	if err := t.Validate(); err != nil {
		return nil, err
	}
	return &t, nil
}

// Validate checks that every price is positive and only known tiers are listed.
func (t *Table) Validate() error {
	if t.ApplicationCost <= 0 {
		return errors.New("pricing: application_cost must be positive")
	}
	if t.PricePerToken <= 0 {
		return errors.New("pricing: price_per_token must be positive")
	}
	if len(t.Plans) == 0 {
		return errors.New("pricing: no promotion plans configured")
	}
	for name, plan := range t.Plans {
		if !name.Valid() || name == models.PromotionNone {
			return fmt.Errorf("pricing: invalid plan name %q", name)
		}
		if plan.Cost <= 0 || plan.DurationDays <= 0 {
			return fmt.Errorf("pricing: plan %q must have positive cost and duration", name)
		}
	}
	return nil
}

// Plan resolves a plan by name.
func (t *Table) Plan(name models.PromotionTag) (models.PromotionPlan, error) {
	plan, ok := t.Plans[name]
	if !ok {
		return models.PromotionPlan{}, fmt.Errorf("%w: %s", ErrUnknownPlan, name)
	}
	return plan, nil
}

// PlanList returns the plans ordered by cost.
func (t *Table) PlanList() []models.PromotionPlan {
	plans := make([]models.PromotionPlan, 0, len(t.Plans))
	for _, p := range t.Plans {
		plans = append(plans, p)
	}
	sort.Slice(plans, func(i, j int) bool { return plans[i].Cost < plans[j].Cost })
	return plans
}

// TokensForPayment converts a charge in minor currency units to whole tokens,
// rounding down: floor(amount / 100 / price_per_token).
func (t *Table) TokensForPayment(amountMinor int64) int64 {
	if amountMinor <= 0 {
		return 0
	}
	return amountMinor / (100 * t.PricePerToken)
}
