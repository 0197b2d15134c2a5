package domain

import "time"

type ShiftStatus string

const (
	StatusEmpty    ShiftStatus = "empty"
	StatusAssigned ShiftStatus = "assigned"
	StatusRest     ShiftStatus = "rest"
	StatusVacation ShiftStatus = "vacation"
	StatusSick     ShiftStatus = "sick"
	StatusAbsent   ShiftStatus = "absent"
	StatusCovering ShiftStatus = "covering"
)

// Window names the three daily shift slots of every branch.
type Window string

const (
	WindowMorning   Window = "morning"
	WindowAfternoon Window = "afternoon"
	WindowNight     Window = "night"
)

type CoverageType string

const (
	CoverageShift  CoverageType = "shift"
	CoverageBranch CoverageType = "branch"
)

// CoverageInfo records who a covering shift stands in for: either a
// different window at the same branch (type "shift") or another
// branch's window (type "branch", Branch populated).
type CoverageInfo struct {
	Type   CoverageType `json:"type"`
	Branch string       `json:"branch,omitempty"`
	Shift  Window       `json:"shift,omitempty"`
}

type Shift struct {
	ID         string        `json:"id"`
	Date       string        `json:"date"` // YYYY-MM-DD
	StartTime  string        `json:"startTime"`
	EndTime    string        `json:"endTime"`
	EmployeeID string        `json:"employeeId,omitempty"`
	IsAssigned bool          `json:"isAssigned"`
	Status     ShiftStatus   `json:"status"`
	Coverage   *CoverageInfo `json:"coverage,omitempty"`
	Position   Position      `json:"position,omitempty"`
}

type ScheduleDay struct {
	Date    string  `json:"date"`
	DayName string  `json:"dayName"`
	Shifts  []Shift `json:"shifts"`
}

type Schedule struct {
	ID        string        `json:"id"`
	Name      string        `json:"name"`
	StartDate string        `json:"startDate"`
	EndDate   string        `json:"endDate"`
	Branch    string        `json:"branch,omitempty"`
	Division  string        `json:"division,omitempty"`
	Days      []ScheduleDay `json:"days"`
	CreatedAt time.Time     `json:"createdAt"`
	UpdatedAt time.Time     `json:"updatedAt"`
	Version   int32         `json:"-"`
}

// FindShift locates a shift by id across all days. Returns nil when absent.
func (s *Schedule) FindShift(shiftID string) *Shift {
	for i := range s.Days {
		for j := range s.Days[i].Shifts {
			if s.Days[i].Shifts[j].ID == shiftID {
				return &s.Days[i].Shifts[j]
			}
		}
	}
	return nil
}
