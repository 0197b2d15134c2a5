package domain

import "time"

// Position codes used on the roster grid. EXT marks external staff.
type Position string

const (
	PositionC1  Position = "C1"
	PositionC2  Position = "C2"
	PositionC3  Position = "C3"
	PositionEXT Position = "EXT"
)

type Employee struct {
	ID            string    `json:"id"`
	FullName      string    `json:"fullName"`
	Department    string    `json:"department,omitempty"`
	Email         string    `json:"email,omitempty"`
	Phone         string    `json:"phone,omitempty"`
	AvailableDays []string  `json:"availableDays"`
	ShiftWindow   Window    `json:"shiftWindow,omitempty"`
	Branch        string    `json:"branch,omitempty"`
	Division      string    `json:"division,omitempty"`
	MaxHoursWeek  int32     `json:"maxHoursPerWeek"`
	CreatedAt     time.Time `json:"createdAt"`
	Version       int32     `json:"-"`
}
