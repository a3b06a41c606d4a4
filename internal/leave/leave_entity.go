package leave

import (
	"time"

	"github.com/felicienmukamba/gestion-des-ressources-humaines/internal/employee"
)

type Status string

const (
	StatusPending  Status = "PENDING"
	StatusApproved Status = "APPROVED"
	StatusRejected Status = "REJECTED"
)

// Active statuses take part in the overlap rule.
var activeStatuses = []Status{StatusPending, StatusApproved}

func (s Status) IsTerminal() bool {
	return s == StatusApproved || s == StatusRejected
}

type LeaveRequest struct {
	ID         int64              `gorm:"primaryKey;autoIncrement"`
	EmployeeID int64              `gorm:"not null;index:idx_leave_requests_employee_dates"`
	Employee   *employee.Employee `gorm:"foreignKey:EmployeeID"`

	StartDate time.Time `gorm:"type:date;not null;index:idx_leave_requests_employee_dates"`
	EndDate   time.Time `gorm:"type:date;not null;index:idx_leave_requests_employee_dates"`
	Reason    string    `gorm:"type:text;not null"`
	Status    Status    `gorm:"type:varchar(20);not null"`

	CreatedBy int64 `gorm:"not null"`
	DecidedBy *int64
	DecidedAt *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (LeaveRequest) TableName() string {
	return "leave_requests"
}

func (l LeaveRequest) Period() DateRange {
	return DateRange{Start: l.StartDate, End: l.EndDate}
}
