package shiftrule

import "context"

type RuleGroupRepository interface {
	GetByID(ctx context.Context, id string, tenantID string) (RuleGroup, error)
	ListByTenantID(ctx context.Context, tenantID string) ([]RuleGroup, error)
}
