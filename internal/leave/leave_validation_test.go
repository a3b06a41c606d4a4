package leave

import (
	"testing"
	"time"

	leaveerrors "github.com/felicienmukamba/gestion-des-ressources-humaines/internal/leave/errors"

	"github.com/stretchr/testify/assert"
)

func day(v string) time.Time {
	t, _ := time.Parse(DateLayout, v)
	return t
}

func TestValidateSubmit(t *testing.T) {
	today := day("2030-06-10")

	tests := []struct {
		name    string
		req     SubmitLeaveRequest
		wantErr error
	}{
		{
			name: "valid multi-day",
			req:  SubmitLeaveRequest{StartDate: "2030-06-12", EndDate: "2030-06-15", Reason: "Vacances"},
		},
		{
			name: "single day leave",
			req:  SubmitLeaveRequest{StartDate: "2030-06-12", EndDate: "2030-06-12", Reason: "Rendez-vous"},
		},
		{
			name: "start equal to today",
			req:  SubmitLeaveRequest{StartDate: "2030-06-10", EndDate: "2030-06-11", Reason: "Repos"},
		},
		{
			name:    "negative start yesterday",
			req:     SubmitLeaveRequest{StartDate: "2030-06-09", EndDate: "2030-06-11", Reason: "Repos"},
			wantErr: leaveerrors.ErrStartDateInPast,
		},
		{
			name:    "negative missing start",
			req:     SubmitLeaveRequest{EndDate: "2030-06-11", Reason: "Repos"},
			wantErr: leaveerrors.ErrStartDateRequired,
		},
		{
			name:    "negative missing end",
			req:     SubmitLeaveRequest{StartDate: "2030-06-11", Reason: "Repos"},
			wantErr: leaveerrors.ErrEndDateRequired,
		},
		{
			name:    "negative missing reason",
			req:     SubmitLeaveRequest{StartDate: "2030-06-11", EndDate: "2030-06-12"},
			wantErr: leaveerrors.ErrReasonRequired,
		},
		{
			name:    "negative malformed date",
			req:     SubmitLeaveRequest{StartDate: "11/06/2030", EndDate: "2030-06-12", Reason: "Repos"},
			wantErr: leaveerrors.ErrInvalidDateFormat,
		},
		{
			name:    "negative blank reason wins over past start",
			req:     SubmitLeaveRequest{StartDate: "2030-06-01", EndDate: "2030-05-01", Reason: "   "},
			wantErr: leaveerrors.ErrReasonBlank,
		},
		{
			name:    "negative past start wins over inverted range",
			req:     SubmitLeaveRequest{StartDate: "2030-06-01", EndDate: "2030-05-01", Reason: "Repos"},
			wantErr: leaveerrors.ErrStartDateInPast,
		},
		{
			name:    "negative end before start",
			req:     SubmitLeaveRequest{StartDate: "2030-06-20", EndDate: "2030-06-19", Reason: "Repos"},
			wantErr: leaveerrors.ErrInvalidDateRange,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := validateSubmit(tt.req, today)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			assert.NoError(t, err)
			assert.False(t, got.Period.End.Before(got.Period.Start))
		})
	}
}

func TestValidateSubmit_TrimsReason(t *testing.T) {
	got, err := validateSubmit(SubmitLeaveRequest{StartDate: "2030-06-12", EndDate: "2030-06-12", Reason: "  Mariage "}, day("2030-06-01"))

	assert.NoError(t, err)
	assert.Equal(t, "Mariage", got.Reason)
}

func TestOverlaps(t *testing.T) {
	approved := DateRange{Start: day("2025-06-01"), End: day("2025-06-05")}

	assert.True(t, Overlaps(approved, DateRange{Start: day("2025-06-04"), End: day("2025-06-10")}))
	assert.True(t, Overlaps(approved, DateRange{Start: day("2025-06-05"), End: day("2025-06-05")}))
	assert.True(t, Overlaps(approved, DateRange{Start: day("2025-05-20"), End: day("2025-06-20")}))
	assert.False(t, Overlaps(approved, DateRange{Start: day("2025-06-06"), End: day("2025-06-10")}))
	assert.False(t, Overlaps(approved, DateRange{Start: day("2025-05-01"), End: day("2025-05-31")}))
}

func TestNormalizeDate(t *testing.T) {
	kinshasa := time.FixedZone("WAT", 3600)
	late := time.Date(2030, 6, 10, 23, 30, 0, 0, kinshasa)

	got := NormalizeDate(late)

	assert.Equal(t, day("2030-06-10"), got)
	assert.Equal(t, time.UTC, got.Location())
}

func TestUTCToday(t *testing.T) {
	// 00:30 on June 2nd in Kinshasa (UTC+1) is still June 1st in UTC.
	earlyMorning := time.Date(2030, 6, 2, 0, 30, 0, 0, time.FixedZone("WAT", 3600))
	today := UTCToday(earlyMorning)

	assert.Equal(t, day("2030-06-01"), today)

	_, err := validateSubmit(SubmitLeaveRequest{StartDate: "2030-06-01", EndDate: "2030-06-01", Reason: "Repos"}, today)
	assert.NoError(t, err)
}

func TestDateRange_Days(t *testing.T) {
	assert.Equal(t, 1, DateRange{Start: day("2030-06-10"), End: day("2030-06-10")}.Days())
	assert.Equal(t, 5, DateRange{Start: day("2030-06-01"), End: day("2030-06-05")}.Days())
}

func TestNextStatus(t *testing.T) {
	got, err := nextStatus(StatusPending, "approve")
	assert.NoError(t, err)
	assert.Equal(t, StatusApproved, got)

	got, err = nextStatus(StatusPending, "reject")
	assert.NoError(t, err)
	assert.Equal(t, StatusRejected, got)

	_, err = nextStatus(StatusApproved, "reject")
	assert.ErrorIs(t, err, leaveerrors.ErrLeaveAlreadyDecided)

	_, err = nextStatus(StatusRejected, "approve")
	assert.ErrorIs(t, err, leaveerrors.ErrLeaveAlreadyDecided)

	_, err = nextStatus(StatusPending, "cancel")
	assert.ErrorIs(t, err, leaveerrors.ErrInvalidAction)

	for _, action := range []string{"APPROVE", " reject ", "Approve", ""} {
		_, err = nextStatus(StatusPending, action)
		assert.ErrorIs(t, err, leaveerrors.ErrInvalidAction, "action %q", action)
	}

	assert.True(t, StatusApproved.IsTerminal())
	assert.False(t, StatusPending.IsTerminal())
}
