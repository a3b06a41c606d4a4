package leave

import (
	"fmt"
	"time"

	ics "github.com/arran4/golang-ical"
	"github.com/xuri/excelize/v2"
)

const exportSheet = "Congés"

var exportHeaders = []string{
	"ID", "Matricule", "Employé", "Service", "Date de début", "Date de fin", "Jours", "Motif", "Statut",
}

var statusLabels = map[Status]string{
	StatusPending:  "En attente",
	StatusApproved: "Approuvé",
	StatusRejected: "Refusé",
}

func (s Status) Label() string {
	if label, ok := statusLabels[s]; ok {
		return label
	}
	return string(s)
}

// BuildWorkbook renders leaves as one sheet with a header row.
func BuildWorkbook(leaves []LeaveResponse) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", exportSheet); err != nil {
		return nil, err
	}

	if err := f.SetSheetRow(exportSheet, "A1", &exportHeaders); err != nil {
		return nil, err
	}

	for i, l := range leaves {
		var matricule, name, service string
		if l.Employee != nil {
			matricule = l.Employee.Matricule
			name = l.Employee.Prenom + " " + l.Employee.Nom
			service = l.Employee.Service
		}
		row := []any{l.ID, matricule, name, service, l.StartDate, l.EndDate, l.Days, l.Reason, l.Status.Label()}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		if err := f.SetSheetRow(exportSheet, cell, &row); err != nil {
			return nil, err
		}
	}

	if err := f.SetColWidth(exportSheet, "B", "D", 20); err != nil {
		return nil, err
	}
	if err := f.SetColWidth(exportSheet, "H", "H", 40); err != nil {
		return nil, err
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// BuildCalendar renders the approved leaves as all-day events. DTEND is
// exclusive in iCalendar, so it is the day after the last day of leave.
func BuildCalendar(leaves []LeaveResponse, now time.Time) string {
	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId("-//REGIDESO//GRH Conges//FR")
	cal.SetName("Congés approuvés")

	for _, l := range leaves {
		if l.Status != StatusApproved {
			continue
		}
		start, err := ParseDate(l.StartDate)
		if err != nil {
			continue
		}
		end, err := ParseDate(l.EndDate)
		if err != nil {
			continue
		}

		event := cal.AddEvent(fmt.Sprintf("leave-%d@grh.regideso", l.ID))
		event.SetDtStampTime(now.UTC())
		event.SetAllDayStartAt(start)
		event.SetAllDayEndAt(end.AddDate(0, 0, 1))
		event.SetSummary(calendarSummary(l))
		event.SetDescription(l.Reason)
	}

	return cal.Serialize()
}

func calendarSummary(l LeaveResponse) string {
	if l.Employee == nil {
		return fmt.Sprintf("Congé employé #%d", l.EmployeeID)
	}
	return "Congé " + l.Employee.Prenom + " " + l.Employee.Nom
}
