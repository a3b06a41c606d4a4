package leave

import (
	"strings"
	"time"

	leaveerrors "github.com/felicienmukamba/gestion-des-ressources-humaines/internal/leave/errors"
)

type validatedSubmit struct {
	Period DateRange
	Reason string
}

// validateSubmit applies the field rules of a submission in a fixed order and
// returns the first failure. today must already be normalized.
func validateSubmit(req SubmitLeaveRequest, today time.Time) (validatedSubmit, error) {
	if strings.TrimSpace(req.StartDate) == "" {
		return validatedSubmit{}, leaveerrors.ErrStartDateRequired
	}
	if strings.TrimSpace(req.EndDate) == "" {
		return validatedSubmit{}, leaveerrors.ErrEndDateRequired
	}
	if req.Reason == "" {
		return validatedSubmit{}, leaveerrors.ErrReasonRequired
	}
	start, err := ParseDate(req.StartDate)
	if err != nil {
		return validatedSubmit{}, err
	}
	end, err := ParseDate(req.EndDate)
	if err != nil {
		return validatedSubmit{}, err
	}

	reason := strings.TrimSpace(req.Reason)
	if reason == "" {
		return validatedSubmit{}, leaveerrors.ErrReasonBlank
	}

	if start.Before(today) {
		return validatedSubmit{}, leaveerrors.ErrStartDateInPast
	}
	if end.Before(start) {
		return validatedSubmit{}, leaveerrors.ErrInvalidDateRange
	}

	return validatedSubmit{
		Period: DateRange{Start: start, End: end},
		Reason: reason,
	}, nil
}

func decisionTarget(action string) (Status, error) {
	switch action {
	case ActionApprove:
		return StatusApproved, nil
	case ActionReject:
		return StatusRejected, nil
	default:
		return "", leaveerrors.ErrInvalidAction
	}
}

// nextStatus is the whole state machine: PENDING moves to APPROVED or
// REJECTED, both terminal.
func nextStatus(current Status, action string) (Status, error) {
	target, err := decisionTarget(action)
	if err != nil {
		return "", err
	}
	if current != StatusPending {
		return "", leaveerrors.ErrLeaveAlreadyDecided
	}
	return target, nil
}
