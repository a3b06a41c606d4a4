package leave

import (
	"context"
	"time"

	leaveerrors "github.com/felicienmukamba/gestion-des-ressources-humaines/internal/leave/errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ListFilter struct {
	EmployeeID *int64
}

//go:generate mockgen -source=leave_repo.go -destination=mock/leave_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, l *LeaveRequest) error
	LockByID(ctx context.Context, id int64) (*LeaveRequest, error)
	// UpdateDecision persists status, decided_by and decided_at of a request
	// that is still PENDING.
	UpdateDecision(ctx context.Context, l *LeaveRequest) error
	FindAll(ctx context.Context, filter ListFilter) ([]LeaveRequest, error)
	HasOverlappingPeriod(ctx context.Context, employeeID int64, period DateRange) (bool, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	return &repository{db: tx}
}

func (r *repository) Create(ctx context.Context, l *LeaveRequest) error {
	err := r.db.WithContext(ctx).Omit(clause.Associations).Create(l).Error
	return mapRepositoryError(err)
}

func (r *repository) LockByID(ctx context.Context, id int64) (*LeaveRequest, error) {
	var l LeaveRequest
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&l, "id = ?", id).Error
	if err != nil {
		return nil, mapRepositoryError(err)
	}
	return &l, nil
}

func (r *repository) UpdateDecision(ctx context.Context, l *LeaveRequest) error {
	res := r.db.WithContext(ctx).
		Model(&LeaveRequest{}).
		Where("id = ? AND status = ?", l.ID, StatusPending).
		Updates(map[string]any{
			"status":     l.Status,
			"decided_by": l.DecidedBy,
			"decided_at": l.DecidedAt,
			"updated_at": time.Now().UTC(),
		})
	if res.Error != nil {
		return mapRepositoryError(res.Error)
	}
	if res.RowsAffected == 0 {
		return leaveerrors.ErrLeaveAlreadyDecided
	}
	return nil
}

func (r *repository) FindAll(ctx context.Context, filter ListFilter) ([]LeaveRequest, error) {
	db := r.db.WithContext(ctx).Preload("Employee")
	if filter.EmployeeID != nil {
		db = db.Where("employee_id = ?", *filter.EmployeeID)
	}

	var leaves []LeaveRequest
	err := db.Order("start_date DESC").Order("id DESC").Find(&leaves).Error
	if err != nil {
		return nil, mapRepositoryError(err)
	}
	return leaves, nil
}

func (r *repository) HasOverlappingPeriod(ctx context.Context, employeeID int64, period DateRange) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&LeaveRequest{}).
		Where("employee_id = ?", employeeID).
		Where("status IN ?", activeStatuses).
		Where("start_date <= ? AND end_date >= ?", period.End, period.Start).
		Count(&count).Error
	if err != nil {
		return false, mapRepositoryError(err)
	}
	return count > 0, nil
}
