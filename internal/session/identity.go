package session

import (
	"context"
	"strconv"
)

// Role names as stored in the roles table.
const (
	RoleAdmin    = "Admin"
	RoleRH       = "RH"
	RoleEmployee = "Employee"
)

// Identity is the authenticated caller. It is passed explicitly to services;
// nothing reads it from global state.
type Identity struct {
	UserID     int64
	Login      string
	Role       string
	EmployeeID *int64
}

// IsPrivileged reports whether the caller may see every leave request and decide on them.
func (i *Identity) IsPrivileged() bool {
	return i != nil && (i.Role == RoleAdmin || i.Role == RoleRH)
}

func (i *Identity) HasEmployee() bool {
	return i != nil && i.EmployeeID != nil
}

// Subject is the id casbin and the logs know the caller by.
func (i *Identity) Subject() string {
	if i == nil {
		return ""
	}
	return strconv.FormatInt(i.UserID, 10)
}

type identityKey struct{}

func WithIdentity(ctx context.Context, id *Identity) context.Context {
	return context.WithValue(ctx, identityKey{}, id)
}

// FromContext returns the identity stored by the session middleware, or nil.
func FromContext(ctx context.Context) *Identity {
	id, _ := ctx.Value(identityKey{}).(*Identity)
	return id
}
