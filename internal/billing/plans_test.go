// File path: internal/billing/plans_test.go
package billing

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/writway/writway/internal/tenant"
)

func TestLoadCatalogDefaults(t *testing.T) {
	catalog, err := LoadCatalog("")
	if err != nil {
		t.Fatalf("load defaults: %v", err)
	}
	if len(catalog.Plans()) != len(DefaultPlans) {
		t.Fatalf("expected %d plans, got %d", len(DefaultPlans), len(catalog.Plans()))
	}
	if _, ok := catalog.Plan("starter"); !ok {
		t.Fatal("starter plan missing from defaults")
	}
}

func TestLoadCatalogFromYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plans.yaml")
	content := `plans:
  - id: solo
    name: Solo
    price_cents: 1900
    document_quota: 20
    features:
      - "20 document generations"
  - id: free
    name: Free
    price_cents: 0
    document_quota: 2
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write plans file: %v", err)
	}
	catalog, err := LoadCatalog(path)
	if err != nil {
		t.Fatalf("load catalog: %v", err)
	}
	plans := catalog.Plans()
	if len(plans) != 2 {
		t.Fatalf("expected 2 plans, got %d", len(plans))
	}
	if plans[0].ID != "free" {
		t.Fatalf("plans not ordered by price: %+v", plans)
	}
}

func TestLoadCatalogRejectsDuplicates(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plans.yaml")
	content := "plans:\n  - id: solo\n    name: Solo\n  - id: solo\n    name: Again\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write plans file: %v", err)
	}
	if _, err := LoadCatalog(path); err == nil {
		t.Fatal("duplicate plan ids accepted")
	}
}

func TestSubscribe(t *testing.T) {
	cfg := tenant.DefaultConfig()
	cfg.Path = filepath.Join(t.TempDir(), "billing_test.db")
	store, err := tenant.OpenWithConfig(cfg)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	defer store.Close()

	catalog, err := LoadCatalog("")
	if err != nil {
		t.Fatalf("load catalog: %v", err)
	}
	service := NewService(catalog, store)
	ctx := context.Background()

	owner := &tenant.Tenant{Name: "Avery & Park LLP", Email: "office@averypark.ca"}
	if err := store.CreateTenant(ctx, owner); err != nil {
		t.Fatalf("create tenant: %v", err)
	}

	sub, err := service.Subscribe(ctx, owner.ID, "practice")
	if err != nil {
		t.Fatalf("subscribe: %v", err)
	}
	if sub.Status != tenant.SubscriptionPending {
		t.Fatalf("expected pending subscription, got %s", sub.Status)
	}
	reloaded, err := store.GetTenant(ctx, owner.ID)
	if err != nil {
		t.Fatalf("reload tenant: %v", err)
	}
	if reloaded.PlanID != "practice" {
		t.Fatalf("tenant plan not switched: %s", reloaded.PlanID)
	}

	if _, err := service.Subscribe(ctx, owner.ID, "golden"); !errors.Is(err, ErrUnknownPlan) {
		t.Fatalf("expected ErrUnknownPlan, got %v", err)
	}
}
