package rbac

import "github.com/felicienmukamba/gestion-des-ressources-humaines/internal/session"

const (
	ResourceLeave = "leave"
	ResourceRole  = "role"

	ActionRead    = "read"
	ActionCreate  = "create"
	ActionDecide  = "decide"
	ActionExport  = "export"
)

const modelText = `[request_definition]
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

// Admin inherits RH, RH inherits Employee.
var roleHierarchy = [][]string{
	{session.RoleAdmin, session.RoleRH},
	{session.RoleRH, session.RoleEmployee},
}

var defaultPolicies = [][]string{
	{session.RoleEmployee, ResourceLeave, ActionRead},
	{session.RoleEmployee, ResourceLeave, ActionCreate},
	{session.RoleRH, ResourceLeave, ActionDecide},
	{session.RoleRH, ResourceLeave, ActionExport},
	{session.RoleRH, ResourceRole, ActionRead},
}

// Roles lists the role names known to the policy, in display order.
var Roles = []string{session.RoleAdmin, session.RoleRH, session.RoleEmployee}

// subjectFor maps a session role onto a policy subject. Any role the policy
// does not name is an ordinary authenticated caller and gets Employee rights.
func subjectFor(role string) string {
	for _, known := range Roles {
		if role == known {
			return role
		}
	}
	return session.RoleEmployee
}
