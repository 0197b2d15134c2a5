package roster

import (
	"github.com/mercato-dev/roster-manager/backend/internal/domain"
)

// TimeConvention selects which pair of boundary times a branch runs on.
// Both have been in use historically; a deployment must pick one and
// stick to it, but classification recognizes either.
type TimeConvention string

const (
	ConventionSeven TimeConvention = "07:00" // 07-15 / 15-23 / 23-07
	ConventionSix   TimeConvention = "06:00" // 06-14 / 14-22 / 22-06
)

var dayNamesOrdered = []string{
	"Lunes", "Martes", "Miércoles", "Jueves", "Viernes", "Sábado", "Domingo",
}

type windowTimes struct {
	window Window
	start  string
	end    string
}

// Window re-exported for template callers.
type Window = domain.Window

func conventionWindows(c TimeConvention) []windowTimes {
	if c == ConventionSix {
		return []windowTimes{
			{domain.WindowMorning, "06:00", "14:00"},
			{domain.WindowAfternoon, "14:00", "22:00"},
			{domain.WindowNight, "22:00", "06:00"},
		}
	}
	return []windowTimes{
		{domain.WindowMorning, "07:00", "15:00"},
		{domain.WindowAfternoon, "15:00", "23:00"},
		{domain.WindowNight, "23:00", "07:00"},
	}
}

// DefaultTemplates returns the canonical template set: three contiguous
// windows per day, seven days, overnight wraparound on the night
// window. Declaration order is day-major then window order, which is
// also the emission order during generation.
func DefaultTemplates(c TimeConvention) []domain.ShiftTemplate {
	windows := conventionWindows(c)
	templates := make([]domain.ShiftTemplate, 0, len(dayNamesOrdered)*len(windows))
	for _, day := range dayNamesOrdered {
		for _, w := range windows {
			templates = append(templates, domain.ShiftTemplate{
				DayName:   day,
				StartTime: w.start,
				EndTime:   w.end,
			})
		}
	}
	return templates
}

// ClassifyWindow maps a shift start time onto its window. Exact
// boundary times of either convention are recognized first; anything
// else falls back to the hour band the start falls in.
func ClassifyWindow(startTime string) Window {
	switch startTime {
	case "07:00", "06:00":
		return domain.WindowMorning
	case "15:00", "14:00":
		return domain.WindowAfternoon
	case "23:00", "22:00":
		return domain.WindowNight
	}

	minutes, err := ClockMinutes(startTime)
	if err != nil {
		return domain.WindowMorning
	}
	switch hour := minutes / 60; {
	case hour >= 5 && hour < 12:
		return domain.WindowMorning
	case hour >= 12 && hour < 20:
		return domain.WindowAfternoon
	default:
		return domain.WindowNight
	}
}

// WindowLabel is the short grid label for a window (T1/T2/T3).
func WindowLabel(w Window) string {
	switch w {
	case domain.WindowAfternoon:
		return "T2"
	case domain.WindowNight:
		return "T3"
	default:
		return "T1"
	}
}
