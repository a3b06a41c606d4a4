package rbac

import (
	"testing"

	"github.com/felicienmukamba/gestion-des-ressources-humaines/internal/session"

	"github.com/stretchr/testify/assert"
)

func newTestService(t *testing.T) Service {
	t.Helper()
	e, err := NewEnforcer()
	assert.NoError(t, err)
	return NewService(e)
}

func TestRBACService_Enforce(t *testing.T) {
	svc := newTestService(t)

	cases := []struct {
		name    string
		role    string
		action  string
		allowed bool
	}{
		{"employee reads own leaves", session.RoleEmployee, ActionRead, true},
		{"employee creates leave", session.RoleEmployee, ActionCreate, true},
		{"employee cannot decide", session.RoleEmployee, ActionDecide, false},
		{"employee cannot export", session.RoleEmployee, ActionExport, false},
		{"rh decides", session.RoleRH, ActionDecide, true},
		{"rh inherits create", session.RoleRH, ActionCreate, true},
		{"admin inherits decide", session.RoleAdmin, ActionDecide, true},
		{"admin exports", session.RoleAdmin, ActionExport, true},
		{"unlisted role reads own leaves", "Employe", ActionRead, true},
		{"unlisted role creates leave", "Stagiaire", ActionCreate, true},
		{"unlisted role cannot decide", "Stagiaire", ActionDecide, false},
		{"empty role falls back to employee", "", ActionCreate, true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			allowed, err := svc.Enforce(EnforceRequest{Role: tc.role, Resource: ResourceLeave, Action: tc.action})

			assert.NoError(t, err)
			assert.Equal(t, tc.allowed, allowed)
		})
	}
}

func TestRBACService_ListRoles(t *testing.T) {
	svc := newTestService(t)

	roles, err := svc.ListRoles()

	assert.NoError(t, err)
	assert.Len(t, roles, 3)
	assert.Equal(t, session.RoleAdmin, roles[0].Name)
	assert.Contains(t, roles[0].Permissions, "leave:decide")
	assert.Contains(t, roles[0].Permissions, "leave:create")
	assert.Equal(t, session.RoleEmployee, roles[2].Name)
	assert.NotContains(t, roles[2].Permissions, "leave:decide")
}
