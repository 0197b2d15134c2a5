package roster

import (
	"fmt"

	"github.com/mercato-dev/roster-manager/backend/internal/domain"
)

// ImportReport accumulates everything an import could not place.
// Diagnostics are additive: one bad row never blocks the rest.
type ImportReport struct {
	Applied           int      `json:"applied"`
	NotFoundEmployees []string `json:"notFoundEmployees"`
	Errors            []string `json:"errors"`
}

// Reconciler maps parsed roster records onto an existing schedule and
// employee set. Employee matching is by exact display name, case and
// accent sensitive; shift matching is by (date, time-range).
type Reconciler struct {
	schedule   *domain.Schedule
	byName     map[string]*domain.Employee
	byDateTime map[string]*domain.Shift
	clock      Clock
}

func NewReconciler(schedule *domain.Schedule, employees []*domain.Employee, clock Clock) *Reconciler {
	if clock == nil {
		clock = systemClock{}
	}

	r := &Reconciler{
		schedule:   schedule,
		byName:     make(map[string]*domain.Employee, len(employees)),
		byDateTime: make(map[string]*domain.Shift),
		clock:      clock,
	}

	for _, emp := range employees {
		r.byName[emp.FullName] = emp
	}
	for i := range schedule.Days {
		day := &schedule.Days[i]
		for j := range day.Shifts {
			shift := &day.Shifts[j]
			key := shift.Date + " " + shift.StartTime + "-" + shift.EndTime
			r.byDateTime[key] = shift
		}
	}

	return r
}

// Apply reconciles every record. A shift is mutated only when the
// whole row resolved (employee, target shift, status, coverage); a row
// that fails any step is reported and skipped. The schedule's
// updatedAt is bumped once when anything was applied.
func (r *Reconciler) Apply(records []domain.RosterRecord) *ImportReport {
	report := &ImportReport{
		NotFoundEmployees: make([]string, 0),
		Errors:            make([]string, 0),
	}
	missing := make(map[string]struct{})

	for _, record := range records {
		employee, ok := r.byName[record.EmployeeName]
		if !ok {
			if _, dup := missing[record.EmployeeName]; !dup {
				missing[record.EmployeeName] = struct{}{}
				report.NotFoundEmployees = append(report.NotFoundEmployees, record.EmployeeName)
			}
			continue
		}

		shift, ok := r.byDateTime[record.Date+" "+record.TimeRange]
		if !ok {
			report.Errors = append(report.Errors, fmt.Sprintf("no existe un turno %s el %s en este roster", record.TimeRange, record.Date))
			continue
		}

		status := domain.ShiftStatus(record.Status)
		if !ValidStatus(record.Status) || status == domain.StatusEmpty {
			report.Errors = append(report.Errors, fmt.Sprintf("estado desconocido %q para %s el %s", record.Status, record.EmployeeName, record.Date))
			continue
		}

		var coverage *domain.CoverageInfo
		if status == domain.StatusCovering {
			var err error
			coverage, err = coverageFromRecord(record)
			if err != nil {
				report.Errors = append(report.Errors, err.Error())
				continue
			}
		}

		// Row fully resolved, mutate the shift in one go.
		shift.EmployeeID = employee.ID
		shift.Status = status
		shift.Coverage = coverage
		if record.Position != "" {
			shift.Position = domain.Position(record.Position)
		}
		recomputeAssigned(shift)

		report.Applied++
	}

	if report.Applied > 0 {
		r.schedule.UpdatedAt = r.clock.Now()
	}

	return report
}

func coverageFromRecord(record domain.RosterRecord) (*domain.CoverageInfo, error) {
	switch domain.CoverageType(record.CoverageType) {
	case domain.CoverageShift:
		if record.CoverageShift == "" {
			return nil, fmt.Errorf("cobertura de turno sin turno destino para %s el %s", record.EmployeeName, record.Date)
		}
		return &domain.CoverageInfo{
			Type:  domain.CoverageShift,
			Shift: domain.Window(record.CoverageShift),
		}, nil
	case domain.CoverageBranch:
		if record.CoverageBranch == "" {
			return nil, fmt.Errorf("cobertura de sucursal sin sucursal destino para %s el %s", record.EmployeeName, record.Date)
		}
		return &domain.CoverageInfo{
			Type:   domain.CoverageBranch,
			Branch: record.CoverageBranch,
			Shift:  domain.Window(record.CoverageShift),
		}, nil
	default:
		return nil, fmt.Errorf("tipo de cobertura desconocido %q para %s el %s", record.CoverageType, record.EmployeeName, record.Date)
	}
}
