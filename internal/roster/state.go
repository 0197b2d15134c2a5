package roster

import (
	"github.com/mercato-dev/roster-manager/backend/internal/domain"
)

// statusRing is the fixed rotation an operator walks through by
// repeatedly toggling their own cell. "covering" is deliberately not
// part of the ring; it is only reachable through AssignCoverage or an
// import.
var statusRing = []domain.ShiftStatus{
	domain.StatusAssigned,
	domain.StatusRest,
	domain.StatusVacation,
	domain.StatusSick,
	domain.StatusAbsent,
	domain.StatusEmpty,
}

func nextRingStatus(current domain.ShiftStatus) domain.ShiftStatus {
	for i, s := range statusRing {
		if s == current {
			return statusRing[(i+1)%len(statusRing)]
		}
	}
	// covering (or anything unknown) restarts the ring.
	return domain.StatusAssigned
}

// Toggle applies one interactive click of employeeID on a shift cell.
// If the cell already belongs to that employee the status advances one
// ring step; reaching empty clears the assignment. Any other cell
// (empty or someone else's) is taken over: assigned to employeeID with
// status assigned.
func Toggle(shift *domain.Shift, employeeID string) {
	if shift.EmployeeID == employeeID && shift.Status != domain.StatusEmpty {
		shift.Status = nextRingStatus(shift.Status)
		if shift.Status == domain.StatusEmpty {
			shift.EmployeeID = ""
		}
	} else {
		shift.EmployeeID = employeeID
		shift.Status = domain.StatusAssigned
	}

	shift.Coverage = nil
	recomputeAssigned(shift)
}

// AssignCoverage puts a shift into the covering state. The caller owns
// validation of the coverage fields (type present, branch set for
// branch coverage); the state machine just applies them.
func AssignCoverage(shift *domain.Shift, employeeID string, coverage domain.CoverageInfo) {
	shift.EmployeeID = employeeID
	shift.Status = domain.StatusCovering
	shift.Coverage = &coverage
	recomputeAssigned(shift)
}

// Clear resets a cell to its generated state.
func Clear(shift *domain.Shift) {
	shift.EmployeeID = ""
	shift.Status = domain.StatusEmpty
	shift.Coverage = nil
	recomputeAssigned(shift)
}

// isAssigned is a cache over status, never set directly.
func recomputeAssigned(shift *domain.Shift) {
	shift.IsAssigned = shift.Status == domain.StatusAssigned || shift.Status == domain.StatusCovering
}

// ValidStatus reports whether s is one of the closed status set.
func ValidStatus(s string) bool {
	switch domain.ShiftStatus(s) {
	case domain.StatusEmpty, domain.StatusAssigned, domain.StatusRest,
		domain.StatusVacation, domain.StatusSick, domain.StatusAbsent,
		domain.StatusCovering:
		return true
	}
	return false
}
