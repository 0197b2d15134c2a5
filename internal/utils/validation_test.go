package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mercato-dev/roster-manager/backend/internal/domain"
	"github.com/mercato-dev/roster-manager/backend/internal/roster"
)

func TestValidateTemplateCoverage(t *testing.T) {
	t.Run("la plantilla canónica cubre la semana", func(t *testing.T) {
		assert.NoError(t, ValidateTemplateCoverage(roster.DefaultTemplates(roster.ConventionSeven)))
		assert.NoError(t, ValidateTemplateCoverage(roster.DefaultTemplates(roster.ConventionSix)))
	})

	t.Run("falta un día", func(t *testing.T) {
		templates := []domain.ShiftTemplate{}
		for _, tmpl := range roster.DefaultTemplates(roster.ConventionSeven) {
			if tmpl.DayName != "Domingo" {
				templates = append(templates, tmpl)
			}
		}

		err := ValidateTemplateCoverage(templates)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "Domingo")
	})

	t.Run("hueco entre turnos", func(t *testing.T) {
		templates := []domain.ShiftTemplate{}
		for _, tmpl := range roster.DefaultTemplates(roster.ConventionSeven) {
			if tmpl.DayName == "Lunes" && tmpl.StartTime == "15:00" {
				tmpl.StartTime = "16:00"
			}
			templates = append(templates, tmpl)
		}

		err := ValidateTemplateCoverage(templates)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "hueco")
	})

	t.Run("cobertura incompleta", func(t *testing.T) {
		templates := []domain.ShiftTemplate{}
		for _, day := range []string{"Lunes", "Martes", "Miércoles", "Jueves", "Viernes", "Sábado", "Domingo"} {
			templates = append(templates, domain.ShiftTemplate{
				DayName: day, StartTime: "07:00", EndTime: "15:00",
			})
		}

		err := ValidateTemplateCoverage(templates)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "24")
	})

	t.Run("hora malformada", func(t *testing.T) {
		templates := roster.DefaultTemplates(roster.ConventionSeven)
		templates[0].StartTime = "7am"

		assert.Error(t, ValidateTemplateCoverage(templates))
	})
}

func TestValidateScheduleInvariants(t *testing.T) {
	newSchedule := func(t *testing.T) *domain.Schedule {
		t.Helper()
		s, err := roster.NewGenerator().Generate("2025-01-01", "enero", roster.DefaultTemplates(roster.ConventionSeven))
		require.NoError(t, err)
		return s
	}

	t.Run("roster recién generado es válido", func(t *testing.T) {
		assert.NoError(t, ValidateScheduleInvariants(newSchedule(t)))
	})

	t.Run("vacío con empleado", func(t *testing.T) {
		s := newSchedule(t)
		s.Days[0].Shifts[0].EmployeeID = "emp-1"

		err := ValidateScheduleInvariants(s)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "vacío")
	})

	t.Run("cobertura sin información", func(t *testing.T) {
		s := newSchedule(t)
		s.Days[0].Shifts[0].Status = domain.StatusCovering
		s.Days[0].Shifts[0].EmployeeID = "emp-1"
		s.Days[0].Shifts[0].IsAssigned = true

		assert.Error(t, ValidateScheduleInvariants(s))
	})

	t.Run("isAssigned incoherente", func(t *testing.T) {
		s := newSchedule(t)
		s.Days[0].Shifts[0].IsAssigned = true

		assert.Error(t, ValidateScheduleInvariants(s))
	})

	t.Run("días recortados", func(t *testing.T) {
		s := newSchedule(t)
		s.Days = s.Days[:10]

		assert.Error(t, ValidateScheduleInvariants(s))
	})
}
