package roster

import (
	"fmt"
	"strconv"
)

// InvalidTimeFormatError reports a clock string that is not HH:MM.
type InvalidTimeFormatError struct {
	Value string
}

func (e *InvalidTimeFormatError) Error() string {
	return fmt.Sprintf("hora inválida %q: se espera HH:MM", e.Value)
}

// ClockMinutes converts an HH:MM string to minutes since midnight.
func ClockMinutes(hhmm string) (int, error) {
	if len(hhmm) != 5 || hhmm[2] != ':' {
		return 0, &InvalidTimeFormatError{Value: hhmm}
	}
	h, err := strconv.Atoi(hhmm[0:2])
	if err != nil || h < 0 || h > 23 {
		return 0, &InvalidTimeFormatError{Value: hhmm}
	}
	m, err := strconv.Atoi(hhmm[3:5])
	if err != nil || m < 0 || m > 59 {
		return 0, &InvalidTimeFormatError{Value: hhmm}
	}
	return h*60 + m, nil
}

// ShiftDurationStrict returns the length in hours of a shift from
// start to end, adding a day when the window wraps past midnight
// (23:00-07:00 is 8 hours). Malformed input fails with
// *InvalidTimeFormatError.
func ShiftDurationStrict(start, end string) (float64, error) {
	startMin, err := ClockMinutes(start)
	if err != nil {
		return 0, err
	}
	endMin, err := ClockMinutes(end)
	if err != nil {
		return 0, err
	}

	if endMin < startMin {
		endMin += 24 * 60
	}
	return float64(endMin-startMin) / 60, nil
}

// ShiftDuration is the best-effort variant: malformed input yields 0.
// Callers that must distinguish "zero-length" from "unreadable" use
// ShiftDurationStrict.
func ShiftDuration(start, end string) float64 {
	d, err := ShiftDurationStrict(start, end)
	if err != nil {
		return 0
	}
	return d
}
