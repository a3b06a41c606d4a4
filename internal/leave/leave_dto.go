package leave

// SubmitLeaveRequest is the raw body of POST /leaves. Field checks run in the
// service so their order is fixed regardless of which fields are missing.
type SubmitLeaveRequest struct {
	StartDate  string `json:"start_date"`
	EndDate    string `json:"end_date"`
	Reason     string `json:"reason"`
	EmployeeID *int64 `json:"employee_id" binding:"omitempty,gt=0"`
}

type DecideLeaveRequest struct {
	Action string `json:"action"`
}

const (
	ActionApprove = "approve"
	ActionReject  = "reject"
)

type EmployeeSummary struct {
	ID        int64  `json:"id"`
	Matricule string `json:"matricule"`
	Nom       string `json:"nom"`
	Prenom    string `json:"prenom"`
	Service   string `json:"service"`
	Poste     string `json:"poste"`
}

type LeaveResponse struct {
	ID         int64            `json:"id"`
	EmployeeID int64            `json:"employee_id"`
	StartDate  string           `json:"start_date"`
	EndDate    string           `json:"end_date"`
	Days       int              `json:"days"`
	Reason     string           `json:"reason"`
	Status     Status           `json:"status"`
	CreatedBy  int64            `json:"created_by"`
	DecidedBy  *int64           `json:"decided_by,omitempty"`
	DecidedAt  *string          `json:"decided_at,omitempty"`
	CreatedAt  string           `json:"created_at"`
	Employee   *EmployeeSummary `json:"employee,omitempty"`
}
