package shared

import (
	"context"

	"github.com/google/uuid"
)

// Tenant identifies the acting organization and user for one request.
// Every service operation receives it explicitly; there is no package-level
// default organization.
type Tenant struct {
	OrgID  uuid.UUID
	UserID uuid.UUID
}

type tenantContextKey struct{}

// ContextWithTenant stores the tenant in context.
func ContextWithTenant(ctx context.Context, t Tenant) context.Context {
	return context.WithValue(ctx, tenantContextKey{}, t)
}

// TenantFromContext extracts the tenant from context.
func TenantFromContext(ctx context.Context) (Tenant, bool) {
	t, ok := ctx.Value(tenantContextKey{}).(Tenant)
	return t, ok
}
