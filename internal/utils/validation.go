package utils

import (
	"fmt"

	"github.com/mercato-dev/roster-manager/backend/internal/domain"
	"github.com/mercato-dev/roster-manager/backend/internal/roster"
)

var weekDays = []string{
	"Lunes", "Martes", "Miércoles", "Jueves", "Viernes", "Sábado", "Domingo",
}

// ValidateTemplateCoverage is the strict pre-check for callers that
// require the canonical shape: every weekday present and each day's
// windows forming a contiguous 24-hour cover (overnight wrap
// included). Generation itself never requires this; a day without
// templates simply produces an empty day.
func ValidateTemplateCoverage(templates []domain.ShiftTemplate) error {
	byDay := make(map[string][]domain.ShiftTemplate)
	for _, t := range templates {
		byDay[t.DayName] = append(byDay[t.DayName], t)
	}

	for _, day := range weekDays {
		dayTemplates, ok := byDay[day]
		if !ok || len(dayTemplates) == 0 {
			return fmt.Errorf("el día %s no tiene turnos en la plantilla", day)
		}

		total := 0.0
		for i, t := range dayTemplates {
			d, err := roster.ShiftDurationStrict(t.StartTime, t.EndTime)
			if err != nil {
				return fmt.Errorf("plantilla de %s: %w", day, err)
			}
			total += d

			if i > 0 && dayTemplates[i-1].EndTime != t.StartTime {
				return fmt.Errorf("el día %s tiene un hueco entre %s y %s", day, dayTemplates[i-1].EndTime, t.StartTime)
			}
		}

		if total != 24 {
			return fmt.Errorf("los turnos del día %s cubren %.1f horas en lugar de 24", day, total)
		}
	}

	return nil
}

// ValidateScheduleInvariants checks the structural invariants of a
// schedule: the day list matches the inclusive date span and every
// shift's status agrees with its assignment fields.
func ValidateScheduleInvariants(s *domain.Schedule) error {
	start, err := roster.ParseDate(s.StartDate)
	if err != nil {
		return err
	}
	end, err := roster.ParseDate(s.EndDate)
	if err != nil {
		return err
	}

	if want := start.DaysUntil(end) + 1; len(s.Days) != want {
		return fmt.Errorf("el roster tiene %d días pero el período abarca %d", len(s.Days), want)
	}

	for _, day := range s.Days {
		for _, shift := range day.Shifts {
			if shift.Status == domain.StatusEmpty && shift.EmployeeID != "" {
				return fmt.Errorf("turno %s: vacío pero con empleado asignado", shift.ID)
			}
			if shift.Status == domain.StatusCovering && shift.Coverage == nil {
				return fmt.Errorf("turno %s: en cobertura sin información de cobertura", shift.ID)
			}
			wantAssigned := shift.Status == domain.StatusAssigned || shift.Status == domain.StatusCovering
			if shift.IsAssigned != wantAssigned {
				return fmt.Errorf("turno %s: isAssigned no coincide con el estado %s", shift.ID, shift.Status)
			}
		}
	}

	return nil
}
