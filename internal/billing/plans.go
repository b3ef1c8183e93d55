// File path: internal/billing/plans.go
package billing

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/writway/writway/internal/common"
)

// Plan is one billing tier offered to tenants. Prices are cents per month to
// avoid float arithmetic anywhere near money.
type Plan struct {
	ID            string   `yaml:"id" json:"id"`
	Name          string   `yaml:"name" json:"name"`
	PriceCents    int      `yaml:"price_cents" json:"priceCents"`
	DocumentQuota int      `yaml:"document_quota" json:"documentQuota"`
	Features      []string `yaml:"features" json:"features"`
}

// Catalog is the immutable plan list loaded at startup.
type Catalog struct {
	plans []Plan
	index map[string]Plan
}

// DefaultPlans is the built-in catalog used when no plans file is
// configured.
var DefaultPlans = []Plan{
	{
		ID:            "starter",
		Name:          "Starter",
		PriceCents:    0,
		DocumentQuota: 5,
		Features:      []string{"Claim intake questionnaire", "5 document generations per month"},
	},
	{
		ID:            "practice",
		Name:          "Practice",
		PriceCents:    4900,
		DocumentQuota: 100,
		Features:      []string{"Everything in Starter", "AI extraction from claim descriptions", "100 document generations per month"},
	},
	{
		ID:            "firm",
		Name:          "Firm",
		PriceCents:    14900,
		DocumentQuota: 0,
		Features:      []string{"Everything in Practice", "Unlimited document generations", "Priority support"},
	},
}

// LoadCatalog reads the plan list from the YAML file at path, or falls back
// to the built-in plans when path is empty.
func LoadCatalog(path string) (*Catalog, error) {
	logger := common.Logger()
	plans := DefaultPlans
	if trimmed := strings.TrimSpace(path); trimmed != "" {
		raw, err := os.ReadFile(trimmed)
		if err != nil {
			return nil, fmt.Errorf("read plans file: %w", err)
		}
		var parsed struct {
			Plans []Plan `yaml:"plans"`
		}
		if err := yaml.Unmarshal(raw, &parsed); err != nil {
			return nil, fmt.Errorf("parse plans file: %w", err)
		}
		if len(parsed.Plans) == 0 {
			return nil, fmt.Errorf("plans file %s defines no plans", trimmed)
		}
		plans = parsed.Plans
		logger.Info("billing: plan catalog loaded", "path", trimmed, "plans", len(plans))
	} else {
		logger.Info("billing: using built-in plan catalog", "plans", len(plans))
	}

	index := make(map[string]Plan, len(plans))
	for _, plan := range plans {
		if strings.TrimSpace(plan.ID) == "" {
			return nil, fmt.Errorf("plan with empty id in catalog")
		}
		if _, exists := index[plan.ID]; exists {
			return nil, fmt.Errorf("duplicate plan id %q", plan.ID)
		}
		index[plan.ID] = plan
	}
	ordered := append([]Plan(nil), plans...)
	sort.SliceStable(ordered, func(i, j int) bool { return ordered[i].PriceCents < ordered[j].PriceCents })
	return &Catalog{plans: ordered, index: index}, nil
}

// Plans returns the catalog ordered by price.
func (c *Catalog) Plans() []Plan {
	out := make([]Plan, len(c.plans))
	copy(out, c.plans)
	return out
}

// Plan looks up a plan by ID.
func (c *Catalog) Plan(id string) (Plan, bool) {
	plan, ok := c.index[id]
	return plan, ok
}
