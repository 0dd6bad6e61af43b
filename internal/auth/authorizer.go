package auth

import (
	"fmt"

	"github.com/casbin/casbin/v2"
	cmodel "github.com/casbin/casbin/v2/model"

	"retail-analytics/internal/model"
)

// rbacModel is the standard casbin RBAC model. Policies are seeded in code so
// the server does not depend on policy files at runtime.
const rbacModel = `
[request_definition]
r = sub, obj, act

[policy_definition]
p = sub, obj, act

[role_definition]
g = _, _

[policy_effect]
e = some(where (p.eft == allow))

[matchers]
m = g(r.sub, p.sub) && r.obj == p.obj && r.act == p.act
`

// defaultPolicies maps roles to resource/action pairs. Admins manage the whole
// catalog and may delete orders, analysts read everything and manage orders,
// viewers only see the dashboard metrics.
var defaultPolicies = [][]string{
	{"admin", "metrics", "read"},
	{"admin", "orders", "read"},
	{"admin", "orders", "write"},
	{"admin", "orders", "delete"},
	{"admin", "products", "read"},
	{"admin", "products", "write"},
	{"admin", "customers", "read"},
	{"admin", "customers", "write"},
	{"admin", "categories", "read"},
	{"admin", "categories", "write"},

	{"analyst", "metrics", "read"},
	{"analyst", "orders", "read"},
	{"analyst", "orders", "write"},
	{"analyst", "products", "read"},
	{"analyst", "customers", "read"},
	{"analyst", "categories", "read"},

	{"viewer", "metrics", "read"},
}

// Authorizer answers role-based permission checks.
type Authorizer struct {
	enforcer *casbin.Enforcer
}

// NewAuthorizer builds an in-memory casbin enforcer seeded with the default
// role policies.
func NewAuthorizer() (*Authorizer, error) {
	m, err := cmodel.NewModelFromString(rbacModel)
	if err != nil {
		return nil, fmt.Errorf("failed to parse RBAC model: %w", err)
	}

	enforcer, err := casbin.NewEnforcer(m)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize enforcer: %w", err)
	}

	if _, err := enforcer.AddPolicies(defaultPolicies); err != nil {
		return nil, fmt.Errorf("failed to seed policies: %w", err)
	}

	return &Authorizer{enforcer: enforcer}, nil
}

// Authorize reports whether the role may perform the action on the resource.
func (a *Authorizer) Authorize(role model.Role, resource, action string) (bool, error) {
	allowed, err := a.enforcer.Enforce(string(role), resource, action)
	if err != nil {
		return false, fmt.Errorf("permission check failed: %w", err)
	}
	return allowed, nil
}
