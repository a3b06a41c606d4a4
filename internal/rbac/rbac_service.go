package rbac

import (
	"fmt"
	"sync"

	"github.com/casbin/casbin/v2"
	"github.com/casbin/casbin/v2/model"
	"go.uber.org/zap"
)

//go:generate mockgen -source=rbac_service.go -destination=mock/rbac_service_mock.go -package=mock
type Service interface {
	Enforce(req EnforceRequest) (bool, error)
	ListRoles() ([]RoleResponse, error)
}

type service struct {
	enforcer *casbin.Enforcer
	mu       sync.RWMutex
	logger   *zap.Logger
}

// NewEnforcer builds an in-memory casbin enforcer loaded with the role
// hierarchy and leave permissions.
func NewEnforcer() (*casbin.Enforcer, error) {
	m, err := model.NewModelFromString(modelText)
	if err != nil {
		return nil, fmt.Errorf("rbac model: %w", err)
	}

	e, err := casbin.NewEnforcer(m)
	if err != nil {
		return nil, fmt.Errorf("rbac enforcer: %w", err)
	}

	if _, err := e.AddGroupingPolicies(roleHierarchy); err != nil {
		return nil, fmt.Errorf("rbac role hierarchy: %w", err)
	}
	if _, err := e.AddPolicies(defaultPolicies); err != nil {
		return nil, fmt.Errorf("rbac policies: %w", err)
	}

	return e, nil
}

func NewService(enforcer *casbin.Enforcer, logger ...*zap.Logger) Service {
	l := zap.L().Named("rbac.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("rbac.service")
	}
	return &service{enforcer: enforcer, logger: l}
}

func (s *service) Enforce(req EnforceRequest) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	allowed, err := s.enforcer.Enforce(subjectFor(req.Role), req.Resource, req.Action)
	if err != nil {
		s.logger.Error("rbac enforce failed",
			zap.String("role", req.Role),
			zap.String("resource", req.Resource),
			zap.String("action", req.Action),
			zap.Error(err),
		)
		return false, err
	}

	s.logger.Debug("rbac enforce result",
		zap.String("role", req.Role),
		zap.String("subject", subjectFor(req.Role)),
		zap.String("resource", req.Resource),
		zap.String("action", req.Action),
		zap.Bool("allowed", allowed),
	)
	return allowed, nil
}

func (s *service) ListRoles() ([]RoleResponse, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	resp := make([]RoleResponse, 0, len(Roles))
	for _, role := range Roles {
		perms, err := s.enforcer.GetImplicitPermissionsForUser(role)
		if err != nil {
			return nil, err
		}

		names := make([]string, 0, len(perms))
		for _, p := range perms {
			// p = [sub, obj, act]
			if len(p) >= 3 {
				names = append(names, p[1]+":"+p[2])
			}
		}

		resp = append(resp, RoleResponse{Name: role, Permissions: names})
	}
	return resp, nil
}
