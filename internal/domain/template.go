package domain

// ShiftTemplate is a rule, not an instance: on the given weekday a
// shift window from StartTime to EndTime exists. Overnight windows
// have EndTime earlier in clock value than StartTime.
type ShiftTemplate struct {
	DayName   string `json:"dayName" validate:"required"`
	StartTime string `json:"startTime" validate:"required"`
	EndTime   string `json:"endTime" validate:"required"`
}
