package domain

// RosterRecord is one reconstructed row of a spreadsheet-exported
// roster file. It is a transport record: the reconciler turns it into
// shift mutations, it is never persisted as-is.
type RosterRecord struct {
	Date           string `json:"date"`
	DayName        string `json:"dayName"`
	ShiftLabel     string `json:"shiftLabel"`
	TimeRange      string `json:"timeRange"`
	EmployeeName   string `json:"employeeName"`
	Position       string `json:"position"`
	Status         string `json:"status"`
	CoverageType   string `json:"coverageType"`
	CoverageBranch string `json:"coverageBranch"`
	CoverageShift  string `json:"coverageShift"`
	RosterName     string `json:"rosterName,omitempty"`
}
