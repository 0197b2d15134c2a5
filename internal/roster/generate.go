package roster

import (
	"time"

	"github.com/google/uuid"
	"github.com/mercato-dev/roster-manager/backend/internal/domain"
)

// Clock abstracts wall-clock capture so generation and reconciliation
// stay deterministic under test.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// Generator builds roster skeletons. Identity generation and timestamp
// capture are its only sources of non-determinism, both injectable.
type Generator struct {
	clock Clock
	newID func() string
}

func NewGenerator() *Generator {
	return &Generator{
		clock: systemClock{},
		newID: func() string { return uuid.NewString() },
	}
}

// NewGeneratorWith injects the clock and id source. Either may be nil
// to keep the system default.
func NewGeneratorWith(clock Clock, newID func() string) *Generator {
	g := NewGenerator()
	if clock != nil {
		g.clock = clock
	}
	if newID != nil {
		g.newID = newID
	}
	return g
}

// Generate expands templates into a concrete schedule for the
// half-month period starting at startDate. Every shift starts out
// empty and unassigned. A weekday with no matching templates yields a
// day with an empty shift list; that is valid and never fails.
func (g *Generator) Generate(startDate string, name string, templates []domain.ShiftTemplate) (*domain.Schedule, error) {
	start, err := ParseDate(startDate)
	if err != nil {
		return nil, err
	}

	period := ResolvePeriod(start)
	now := g.clock.Now()

	schedule := &domain.Schedule{
		ID:        g.newID(),
		Name:      name,
		StartDate: period.Start.String(),
		EndDate:   period.End.String(),
		Days:      make([]domain.ScheduleDay, 0, period.Days),
		CreatedAt: now,
		UpdatedAt: now,
	}

	for offset := 0; offset < period.Days; offset++ {
		date := start.AddDays(offset)
		dayName := date.DayName()

		day := domain.ScheduleDay{
			Date:    date.String(),
			DayName: dayName,
			Shifts:  make([]domain.Shift, 0, 3),
		}

		// Template declaration order is preserved within the day.
		for _, tmpl := range templates {
			if tmpl.DayName != dayName {
				continue
			}
			day.Shifts = append(day.Shifts, domain.Shift{
				ID:         g.newID(),
				Date:       day.Date,
				StartTime:  tmpl.StartTime,
				EndTime:    tmpl.EndTime,
				Status:     domain.StatusEmpty,
				IsAssigned: false,
			})
		}

		schedule.Days = append(schedule.Days, day)
	}

	return schedule, nil
}
