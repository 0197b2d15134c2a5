package roster

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/mercato-dev/roster-manager/backend/internal/domain"
)

// populatedSchedule builds a roster with a few shifts in distinct
// states, covering included.
func populatedSchedule(t *testing.T) *domain.Schedule {
	t.Helper()

	schedule, err := testGenerator().Generate("2025-01-01", "Roster enero A", DefaultTemplates(ConventionSeven))
	require.NoError(t, err)

	Toggle(&schedule.Days[0].Shifts[0], "emp-juan") // assigned
	schedule.Days[0].Shifts[0].Position = domain.PositionC1

	Toggle(&schedule.Days[0].Shifts[1], "emp-maria") // assigned
	Toggle(&schedule.Days[0].Shifts[1], "emp-maria") // rest

	AssignCoverage(&schedule.Days[1].Shifts[2], "emp-juan", domain.CoverageInfo{
		Type:   domain.CoverageBranch,
		Branch: "002",
	})

	return schedule
}

func TestExportCSV(t *testing.T) {
	schedule := populatedSchedule(t)
	body := ExportCSV(schedule, testEmployees)

	lines := strings.Split(strings.TrimRight(body, "\n"), "\n")
	require.Len(t, lines, 4) // encabezado + 3 turnos no vacíos
	assert.Equal(t, exportHeader, lines[0])

	assert.Equal(t, "2025-01-01,Miércoles,T1,07:00-15:00,Juan Pérez,C1,assigned,,,,Roster enero A", lines[1])
	assert.Equal(t, "2025-01-01,Miércoles,T2,15:00-23:00,María García,,rest,,,,Roster enero A", lines[2])
	assert.Equal(t, "2025-01-02,Jueves,T3,23:00-07:00,Juan Pérez,,covering,branch,002,,Roster enero A", lines[3])
}

func TestExportCSVDanglingEmployee(t *testing.T) {
	schedule := populatedSchedule(t)

	// sin catálogo de empleados la fila conserva el id crudo
	body := ExportCSV(schedule, nil)
	assert.Contains(t, body, ",emp-juan,")
}

func TestExportCSVEscaping(t *testing.T) {
	schedule, err := testGenerator().Generate("2025-01-01", "Roster, el grande", DefaultTemplates(ConventionSeven))
	require.NoError(t, err)
	Toggle(&schedule.Days[0].Shifts[0], "emp-coma")

	employees := []*domain.Employee{{ID: "emp-coma", FullName: "Pérez, Juan"}}
	body := ExportCSV(schedule, employees)

	assert.Contains(t, body, `"Pérez, Juan"`)
	assert.Contains(t, body, `"Roster, el grande"`)
}

// TestExportImportRoundTrip exporta un roster poblado y lo vuelve a
// aplicar sobre un roster recién generado del mismo período.
func TestExportImportRoundTrip(t *testing.T) {
	source := populatedSchedule(t)
	body := ExportCSV(source, testEmployees)

	result, err := NewParser(false).Parse(body)
	require.NoError(t, err)
	assert.Empty(t, result.Errors)
	require.Len(t, result.Rows, 3)

	fresh, err := testGenerator().Generate("2025-01-01", "Roster enero A", DefaultTemplates(ConventionSeven))
	require.NoError(t, err)

	report := NewReconciler(fresh, testEmployees, nil).Apply(result.Rows)
	assert.Equal(t, 3, report.Applied)
	assert.Empty(t, report.NotFoundEmployees)
	assert.Empty(t, report.Errors)

	for i, day := range source.Days {
		for j, want := range day.Shifts {
			got := fresh.Days[i].Shifts[j]
			assert.Equal(t, want.Status, got.Status, "turno %s %s", want.Date, want.StartTime)
			assert.Equal(t, want.EmployeeID, got.EmployeeID)
			assert.Equal(t, want.IsAssigned, got.IsAssigned)
			if want.Coverage != nil {
				require.NotNil(t, got.Coverage)
				assert.Equal(t, want.Coverage.Type, got.Coverage.Type)
				assert.Equal(t, want.Coverage.Branch, got.Coverage.Branch)
			} else {
				assert.Nil(t, got.Coverage, "turno %d/%d", i, j)
			}
		}
	}
}

func TestFormatText(t *testing.T) {
	schedule := populatedSchedule(t)
	text := FormatText(schedule, testEmployees)

	assert.Contains(t, text, "=== Roster enero A (2025-01-01 a 2025-01-15) ===")
	assert.Contains(t, text, "2025-01-01 (Miércoles)")
	assert.Contains(t, text, "Juan Pérez")
	assert.Contains(t, text, "SIN ASIGNAR")
}

func TestFormatTextEmptyDay(t *testing.T) {
	schedule, err := testGenerator().Generate("2025-01-01", "vacío", nil)
	require.NoError(t, err)

	text := FormatText(schedule, nil)
	assert.Contains(t, text, "Sin turnos programados")
}

func TestExportXLSX(t *testing.T) {
	schedule := populatedSchedule(t)

	buf, err := ExportXLSX(schedule, testEmployees)
	require.NoError(t, err)
	require.NotZero(t, buf.Len())

	f, err := excelize.OpenReader(buf)
	require.NoError(t, err)
	defer f.Close()

	a1, err := f.GetCellValue("Roster", "A1")
	require.NoError(t, err)
	assert.Equal(t, "Fecha", a1)

	e2, err := f.GetCellValue("Roster", "E2")
	require.NoError(t, err)
	assert.Equal(t, "Juan Pérez", e2)

	rows, err := f.GetRows("Roster")
	require.NoError(t, err)
	assert.Len(t, rows, 4)
}
