package roster

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mercato-dev/roster-manager/backend/internal/domain"
)

var testEmployees = []*domain.Employee{
	{ID: "emp-juan", FullName: "Juan Pérez"},
	{ID: "emp-maria", FullName: "María García"},
}

func record(date, timeRange, employee, status string) domain.RosterRecord {
	return domain.RosterRecord{
		Date:         date,
		TimeRange:    timeRange,
		EmployeeName: employee,
		Status:       status,
	}
}

func TestReconcilerApply(t *testing.T) {
	schedule, err := testGenerator().Generate("2025-01-01", "enero", DefaultTemplates(ConventionSeven))
	require.NoError(t, err)

	now := time.Date(2025, 1, 20, 9, 0, 0, 0, time.UTC)
	rec := NewReconciler(schedule, testEmployees, fixedClock{t: now})

	records := []domain.RosterRecord{
		record("2025-01-01", "07:00-15:00", "Juan Pérez", "assigned"),
		record("2025-01-01", "15:00-23:00", "María García", "rest"),
	}
	records[0].Position = "C1"

	report := rec.Apply(records)

	assert.Equal(t, 2, report.Applied)
	assert.Empty(t, report.NotFoundEmployees)
	assert.Empty(t, report.Errors)

	first := schedule.Days[0].Shifts[0]
	assert.Equal(t, "emp-juan", first.EmployeeID)
	assert.Equal(t, domain.StatusAssigned, first.Status)
	assert.Equal(t, domain.Position("C1"), first.Position)
	assert.True(t, first.IsAssigned)

	second := schedule.Days[0].Shifts[1]
	assert.Equal(t, "emp-maria", second.EmployeeID)
	assert.Equal(t, domain.StatusRest, second.Status)
	assert.False(t, second.IsAssigned)

	assert.Equal(t, now, schedule.UpdatedAt)
}

func TestReconcilerNotFoundEmployees(t *testing.T) {
	schedule, err := testGenerator().Generate("2025-01-01", "enero", DefaultTemplates(ConventionSeven))
	require.NoError(t, err)

	rec := NewReconciler(schedule, testEmployees, nil)
	report := rec.Apply([]domain.RosterRecord{
		record("2025-01-01", "07:00-15:00", "Pedro Desconocido", "assigned"),
		record("2025-01-02", "07:00-15:00", "Pedro Desconocido", "rest"),
		record("2025-01-03", "07:00-15:00", "Otra Persona", "assigned"),
	})

	assert.Zero(t, report.Applied)
	// cada nombre ausente se reporta una sola vez, con el nombre exacto
	assert.Equal(t, []string{"Pedro Desconocido", "Otra Persona"}, report.NotFoundEmployees)
}

func TestReconcilerUnknownShift(t *testing.T) {
	schedule, err := testGenerator().Generate("2025-01-01", "enero", DefaultTemplates(ConventionSeven))
	require.NoError(t, err)

	rec := NewReconciler(schedule, testEmployees, nil)
	report := rec.Apply([]domain.RosterRecord{
		record("2025-01-01", "08:00-16:00", "Juan Pérez", "assigned"), // horario inexistente
		record("2025-02-01", "07:00-15:00", "Juan Pérez", "assigned"), // fecha fuera del período
	})

	assert.Zero(t, report.Applied)
	assert.Len(t, report.Errors, 2)
}

func TestReconcilerInvalidStatus(t *testing.T) {
	schedule, err := testGenerator().Generate("2025-01-01", "enero", DefaultTemplates(ConventionSeven))
	require.NoError(t, err)

	rec := NewReconciler(schedule, testEmployees, nil)
	report := rec.Apply([]domain.RosterRecord{
		record("2025-01-01", "07:00-15:00", "Juan Pérez", "descanso"),
		record("2025-01-01", "07:00-15:00", "Juan Pérez", "empty"),
	})

	assert.Zero(t, report.Applied)
	assert.Len(t, report.Errors, 2)

	// una fila fallida no toca el turno
	assert.Equal(t, domain.StatusEmpty, schedule.Days[0].Shifts[0].Status)
	assert.Empty(t, schedule.Days[0].Shifts[0].EmployeeID)
}

func TestReconcilerCoverage(t *testing.T) {
	t.Run("cobertura de sucursal", func(t *testing.T) {
		schedule, err := testGenerator().Generate("2025-01-01", "enero", DefaultTemplates(ConventionSeven))
		require.NoError(t, err)

		r := record("2025-01-01", "07:00-15:00", "Juan Pérez", "covering")
		r.CoverageType = "branch"
		r.CoverageBranch = "002"

		report := NewReconciler(schedule, testEmployees, nil).Apply([]domain.RosterRecord{r})
		require.Equal(t, 1, report.Applied)

		shift := schedule.Days[0].Shifts[0]
		require.NotNil(t, shift.Coverage)
		assert.Equal(t, domain.CoverageBranch, shift.Coverage.Type)
		assert.Equal(t, "002", shift.Coverage.Branch)
		assert.True(t, shift.IsAssigned)
	})

	t.Run("cobertura de turno", func(t *testing.T) {
		schedule, err := testGenerator().Generate("2025-01-01", "enero", DefaultTemplates(ConventionSeven))
		require.NoError(t, err)

		r := record("2025-01-01", "07:00-15:00", "Juan Pérez", "covering")
		r.CoverageType = "shift"
		r.CoverageShift = "night"

		report := NewReconciler(schedule, testEmployees, nil).Apply([]domain.RosterRecord{r})
		require.Equal(t, 1, report.Applied)

		shift := schedule.Days[0].Shifts[0]
		require.NotNil(t, shift.Coverage)
		assert.Equal(t, domain.CoverageShift, shift.Coverage.Type)
		assert.Equal(t, domain.WindowNight, shift.Coverage.Shift)
	})

	t.Run("cobertura incompleta se rechaza", func(t *testing.T) {
		schedule, err := testGenerator().Generate("2025-01-01", "enero", DefaultTemplates(ConventionSeven))
		require.NoError(t, err)

		sinSucursal := record("2025-01-01", "07:00-15:00", "Juan Pérez", "covering")
		sinSucursal.CoverageType = "branch"

		sinTurno := record("2025-01-01", "15:00-23:00", "Juan Pérez", "covering")
		sinTurno.CoverageType = "shift"

		sinTipo := record("2025-01-01", "23:00-07:00", "Juan Pérez", "covering")

		report := NewReconciler(schedule, testEmployees, nil).Apply(
			[]domain.RosterRecord{sinSucursal, sinTurno, sinTipo})

		assert.Zero(t, report.Applied)
		assert.Len(t, report.Errors, 3)
		for _, day := range schedule.Days[:1] {
			for _, shift := range day.Shifts {
				assert.Equal(t, domain.StatusEmpty, shift.Status)
			}
		}
	})
}

func TestReconcilerNoChangesKeepsUpdatedAt(t *testing.T) {
	schedule, err := testGenerator().Generate("2025-01-01", "enero", DefaultTemplates(ConventionSeven))
	require.NoError(t, err)
	before := schedule.UpdatedAt

	later := fixedClock{t: before.Add(48 * time.Hour)}
	report := NewReconciler(schedule, testEmployees, later).Apply([]domain.RosterRecord{
		record("2025-01-01", "07:00-15:00", "Nadie Conocido", "assigned"),
	})

	assert.Zero(t, report.Applied)
	assert.Equal(t, before, schedule.UpdatedAt)
}
