// File path: internal/billing/service.go
package billing

import (
	"context"
	"errors"
	"fmt"

	"github.com/writway/writway/internal/common"
	"github.com/writway/writway/internal/tenant"
)

// ErrUnknownPlan is returned when a subscription names a plan outside the
// catalog.
var ErrUnknownPlan = errors.New("billing: unknown plan")

// Service records subscription intent. There is no payment-processor
// integration; subscriptions are created pending and the tenant's plan is
// switched immediately so the product remains usable.
type Service struct {
	catalog *Catalog
	store   *tenant.Store
}

func NewService(catalog *Catalog, store *tenant.Store) *Service {
	return &Service{catalog: catalog, store: store}
}

// Subscribe validates the plan, records a pending subscription, and moves
// the tenant onto the plan.
func (s *Service) Subscribe(ctx context.Context, tenantID, planID string) (*tenant.Subscription, error) {
	logger := common.Logger()
	plan, ok := s.catalog.Plan(planID)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownPlan, planID)
	}
	t, err := s.store.GetTenant(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	sub := &tenant.Subscription{TenantID: t.ID, PlanID: plan.ID, Status: tenant.SubscriptionPending}
	if err := s.store.CreateSubscription(ctx, sub); err != nil {
		return nil, err
	}
	t.PlanID = plan.ID
	if err := s.store.UpdateTenant(ctx, t); err != nil {
		return nil, err
	}
	logger.Info("billing: subscription recorded", "tenant", t.ID, "plan", plan.ID, "status", sub.Status)
	return sub, nil
}
