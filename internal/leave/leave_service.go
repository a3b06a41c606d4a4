package leave

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/felicienmukamba/gestion-des-ressources-humaines/internal/employee"
	employeeerrors "github.com/felicienmukamba/gestion-des-ressources-humaines/internal/employee/errors"
	"github.com/felicienmukamba/gestion-des-ressources-humaines/internal/events"
	leaveerrors "github.com/felicienmukamba/gestion-des-ressources-humaines/internal/leave/errors"
	"github.com/felicienmukamba/gestion-des-ressources-humaines/internal/messaging/kafka"
	"github.com/felicienmukamba/gestion-des-ressources-humaines/internal/session"
	"github.com/felicienmukamba/gestion-des-ressources-humaines/internal/shared/apperror"
	"github.com/felicienmukamba/gestion-des-ressources-humaines/internal/shared/contextutil"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

const aggregateType = "leave_request"

//go:generate mockgen -source=leave_service.go -destination=mock/leave_service_mock.go -package=mock
type Service interface {
	Submit(ctx context.Context, identity *session.Identity, req SubmitLeaveRequest) (LeaveResponse, error)
	List(ctx context.Context, identity *session.Identity) ([]LeaveResponse, error)
	Decide(ctx context.Context, identity *session.Identity, id int64, req DecideLeaveRequest) (LeaveResponse, error)
}

type service struct {
	db        *gorm.DB
	repo      Repository
	employees employee.Repository
	outbox    kafka.OutboxRepository
	now       func() time.Time
	logger    *zap.Logger
}

func NewService(
	db *gorm.DB,
	repo Repository,
	employees employee.Repository,
	outbox kafka.OutboxRepository,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("leave.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("leave.service")
	}
	return &service{
		db:        db,
		repo:      repo,
		employees: employees,
		outbox:    outbox,
		now:       time.Now,
		logger:    l,
	}
}

func (s *service) Submit(ctx context.Context, identity *session.Identity, req SubmitLeaveRequest) (LeaveResponse, error) {
	if identity == nil {
		return LeaveResponse{}, apperror.ErrUnauthorized
	}
	log := contextutil.GetLogger(ctx, s.logger).With(zap.Int64("user_id", identity.UserID))

	employeeID, err := resolveTargetEmployee(identity, req.EmployeeID)
	if err != nil {
		log.Warn("submit leave rejected", zap.Error(err))
		return LeaveResponse{}, err
	}

	input, err := validateSubmit(req, UTCToday(s.now()))
	if err != nil {
		log.Warn("submit leave validation failed",
			zap.Int64("employee_id", employeeID),
			zap.String("start_date", req.StartDate),
			zap.String("end_date", req.EndDate),
			zap.Error(err),
		)
		return LeaveResponse{}, err
	}

	var created LeaveRequest
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Locking the employee row serializes concurrent submissions for
		// the same employee across the overlap check and the insert.
		emp, err := s.employees.WithTx(tx).LockByID(ctx, employeeID)
		if err != nil {
			return err
		}

		qtx := s.repo.WithTx(tx)
		overlap, err := qtx.HasOverlappingPeriod(ctx, employeeID, input.Period)
		if err != nil {
			return err
		}
		if overlap {
			return leaveerrors.ErrLeaveOverlap
		}

		l := &LeaveRequest{
			EmployeeID: employeeID,
			StartDate:  input.Period.Start,
			EndDate:    input.Period.End,
			Reason:     input.Reason,
			Status:     StatusPending,
			CreatedBy:  identity.UserID,
		}
		if err := qtx.Create(ctx, l); err != nil {
			return err
		}
		l.Employee = emp

		if err := s.enqueue(ctx, tx, events.LeaveRequestedEvent, l, identity.UserID); err != nil {
			return err
		}

		created = *l
		return nil
	})
	if err != nil {
		return LeaveResponse{}, s.fail(log, "submit leave failed", err, zap.Int64("employee_id", employeeID))
	}

	log.Info("submit leave success",
		zap.Int64("leave_id", created.ID),
		zap.Int64("employee_id", employeeID),
	)
	return mapToResponse(created), nil
}

func (s *service) List(ctx context.Context, identity *session.Identity) ([]LeaveResponse, error) {
	if identity == nil {
		return nil, apperror.ErrUnauthorized
	}

	var filter ListFilter
	if !identity.IsPrivileged() {
		if !identity.HasEmployee() {
			return nil, employeeerrors.ErrEmployeeNotFound
		}
		filter.EmployeeID = identity.EmployeeID
	}

	leaves, err := s.repo.FindAll(ctx, filter)
	if err != nil {
		log := contextutil.GetLogger(ctx, s.logger)
		return nil, s.fail(log, "list leaves failed", err, zap.Int64("user_id", identity.UserID))
	}
	return mapToListResponse(leaves), nil
}

func (s *service) Decide(ctx context.Context, identity *session.Identity, id int64, req DecideLeaveRequest) (LeaveResponse, error) {
	if identity == nil {
		return LeaveResponse{}, apperror.ErrUnauthorized
	}
	log := contextutil.GetLogger(ctx, s.logger).With(
		zap.Int64("user_id", identity.UserID),
		zap.Int64("leave_id", id),
	)

	if !identity.IsPrivileged() {
		log.Warn("decide leave forbidden", zap.String("role", identity.Role))
		return LeaveResponse{}, apperror.ErrForbidden
	}
	if _, err := decisionTarget(req.Action); err != nil {
		return LeaveResponse{}, err
	}

	var decided LeaveRequest
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		qtx := s.repo.WithTx(tx)

		l, err := qtx.LockByID(ctx, id)
		if err != nil {
			return err
		}

		target, err := nextStatus(l.Status, req.Action)
		if err != nil {
			log.Warn("decide leave status invalid",
				zap.String("status", string(l.Status)),
				zap.String("action", req.Action),
			)
			return err
		}

		decidedAt := s.now().UTC()
		decidedBy := identity.UserID
		l.Status = target
		l.DecidedBy = &decidedBy
		l.DecidedAt = &decidedAt

		if err := qtx.UpdateDecision(ctx, l); err != nil {
			return err
		}

		emp, err := s.employees.WithTx(tx).FindByID(ctx, l.EmployeeID)
		if err != nil {
			return err
		}
		l.Employee = emp

		if err := s.enqueue(ctx, tx, events.LeaveDecidedEvent, l, identity.UserID); err != nil {
			return err
		}

		decided = *l
		return nil
	})
	if err != nil {
		return LeaveResponse{}, s.fail(log, "decide leave failed", err)
	}

	log.Info("decide leave success", zap.String("status", string(decided.Status)))
	return mapToResponse(decided), nil
}

// resolveTargetEmployee picks the employee a submission is for. Employees may
// only submit for themselves; Admin and RH name the employee or fall back to
// their own bound employee.
func resolveTargetEmployee(identity *session.Identity, requested *int64) (int64, error) {
	if identity.IsPrivileged() {
		if requested != nil {
			return *requested, nil
		}
		if identity.HasEmployee() {
			return *identity.EmployeeID, nil
		}
		return 0, leaveerrors.ErrEmployeeRequired
	}

	if !identity.HasEmployee() {
		return 0, employeeerrors.ErrEmployeeNotFound
	}
	if requested != nil && *requested != *identity.EmployeeID {
		return 0, leaveerrors.ErrSubmitForOtherEmployee
	}
	return *identity.EmployeeID, nil
}

func (s *service) enqueue(ctx context.Context, tx *gorm.DB, eventType string, l *LeaveRequest, actorID int64) error {
	payload := events.LeaveEvent{
		EventType:   eventType,
		LeaveID:     l.ID,
		EmployeeID:  l.EmployeeID,
		Status:      string(l.Status),
		StartDate:   formatDate(l.StartDate),
		EndDate:     formatDate(l.EndDate),
		ActorUserID: actorID,
		OccurredAt:  s.now().UTC(),
	}
	event, err := kafka.NewOutboxEvent(
		contextutil.GetRequestID(ctx),
		aggregateType,
		strconv.FormatInt(l.ID, 10),
		eventType,
		events.LeaveLifecycleTopic,
		payload,
	)
	if err != nil {
		return err
	}
	return s.outbox.WithTx(tx).Create(ctx, event)
}

// fail passes business errors through and turns everything else into an
// internal error after logging it.
func (s *service) fail(log *zap.Logger, msg string, err error, fields ...zap.Field) error {
	var appErr *apperror.AppError
	if errors.As(err, &appErr) {
		log.Warn(msg, append(fields, zap.String("code", appErr.Code), zap.Error(err))...)
		return err
	}
	log.Error(msg, append(fields, zap.Error(err))...)
	return apperror.ErrInternal.WithCause(err)
}

func mapToResponse(l LeaveRequest) LeaveResponse {
	resp := LeaveResponse{
		ID:         l.ID,
		EmployeeID: l.EmployeeID,
		StartDate:  formatDate(l.StartDate),
		EndDate:    formatDate(l.EndDate),
		Days:       l.Period().Days(),
		Reason:     l.Reason,
		Status:     l.Status,
		CreatedBy:  l.CreatedBy,
		DecidedBy:  l.DecidedBy,
		CreatedAt:  l.CreatedAt.UTC().Format(time.RFC3339),
	}
	if l.DecidedAt != nil {
		v := l.DecidedAt.UTC().Format(time.RFC3339)
		resp.DecidedAt = &v
	}
	if l.Employee != nil {
		resp.Employee = &EmployeeSummary{
			ID:        l.Employee.ID,
			Matricule: l.Employee.Matricule,
			Nom:       l.Employee.Nom,
			Prenom:    l.Employee.Prenom,
			Service:   l.Employee.Service,
			Poste:     l.Employee.Poste,
		}
	}
	return resp
}

func mapToListResponse(leaves []LeaveRequest) []LeaveResponse {
	resp := make([]LeaveResponse, len(leaves))
	for i, l := range leaves {
		resp[i] = mapToResponse(l)
	}
	return resp
}
