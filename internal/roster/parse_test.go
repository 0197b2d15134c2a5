package roster

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const parseHeader = "Fecha,Dia,Turno,Horario,Empleado,Posicion,Estado,TipoCobertura,SucursalCobertura,TurnoCobertura,Roster"

func TestParseFillForward(t *testing.T) {
	raw := parseHeader + "\n" +
		"2025-01-15,Lunes,T1,07:00-15:00,Juan,C1,assigned,,,\n" +
		",,,,,C2,assigned,,,\n"

	result, err := NewParser(false).Parse(raw)
	require.NoError(t, err)
	require.Len(t, result.Rows, 2)
	assert.Empty(t, result.Errors)

	second := result.Rows[1]
	assert.Equal(t, "2025-01-15", second.Date)
	assert.Equal(t, "Lunes", second.DayName)
	assert.Equal(t, "T1", second.ShiftLabel)
	assert.Equal(t, "07:00-15:00", second.TimeRange)
	assert.Empty(t, second.EmployeeName)
	assert.Equal(t, "C2", second.Position)
	assert.Equal(t, "assigned", second.Status)

	assert.Equal(t, []string{"2025-01-15"}, result.Dates)
}

func TestParseFillForwardSpansBlocks(t *testing.T) {
	raw := parseHeader + "\n" +
		"2025-01-15,Lunes,T1,07:00-15:00,Juan,C1,assigned,,,\n" +
		",,,15:00-23:00,María,C2,rest,,,\n" +
		"2025-01-16,Martes,T1,07:00-15:00,Carlos,C1,assigned,,,\n" +
		",,,,,C3,vacation,,,\n"

	result, err := NewParser(false).Parse(raw)
	require.NoError(t, err)
	require.Len(t, result.Rows, 4)

	// la segunda fila hereda la fecha pero trae su propio horario
	assert.Equal(t, "2025-01-15", result.Rows[1].Date)
	assert.Equal(t, "15:00-23:00", result.Rows[1].TimeRange)

	// la cuarta hereda del bloque nuevo, no del primero
	assert.Equal(t, "2025-01-16", result.Rows[3].Date)
	assert.Equal(t, "07:00-15:00", result.Rows[3].TimeRange)

	assert.Equal(t, []string{"2025-01-15", "2025-01-16"}, result.Dates)
}

func TestParseEmptyInput(t *testing.T) {
	for _, raw := range []string{
		"",
		"\n\n\n",
		parseHeader,
		parseHeader + "\n\n  \n",
	} {
		_, err := NewParser(false).Parse(raw)
		assert.ErrorIs(t, err, ErrEmptyInput)
	}
}

func TestParseRowProblemsDoNotAbort(t *testing.T) {
	t.Run("fila con pocas columnas", func(t *testing.T) {
		raw := parseHeader + "\n" +
			"esto no es una fila\n" +
			"2025-01-15,Lunes,T1,07:00-15:00,Juan,C1,assigned,,,\n"

		result, err := NewParser(false).Parse(raw)
		require.NoError(t, err)
		assert.Len(t, result.Rows, 1)
		require.Len(t, result.Errors, 1)
		assert.Contains(t, result.Errors[0], "línea 2")
	})

	t.Run("solo basura produce cero filas y un diagnóstico", func(t *testing.T) {
		raw := parseHeader + "\ngarbage line\n"

		result, err := NewParser(false).Parse(raw)
		require.NoError(t, err)
		assert.Empty(t, result.Rows)
		assert.Len(t, result.Errors, 1)
	})

	t.Run("primera fila sin fecha no tiene de dónde heredar", func(t *testing.T) {
		raw := parseHeader + "\n" +
			",,,,Juan,C1,assigned,,,\n"

		result, err := NewParser(false).Parse(raw)
		require.NoError(t, err)
		assert.Empty(t, result.Rows)
		require.Len(t, result.Errors, 1)
		assert.Contains(t, result.Errors[0], "fila anterior")
	})

	t.Run("fila sin empleado ni posición ni estado", func(t *testing.T) {
		raw := parseHeader + "\n" +
			"2025-01-15,Lunes,T1,07:00-15:00,,,,,,\n"

		result, err := NewParser(false).Parse(raw)
		require.NoError(t, err)
		assert.Empty(t, result.Rows)
		assert.Len(t, result.Errors, 1)
	})
}

func TestParseInputCleanup(t *testing.T) {
	t.Run("BOM y CRLF", func(t *testing.T) {
		raw := "\ufeff" + parseHeader + "\r\n" +
			"2025-01-15,Lunes,T1,07:00-15:00,Juan,C1,assigned,,,\r\n"

		result, err := NewParser(false).Parse(raw)
		require.NoError(t, err)
		require.Len(t, result.Rows, 1)
		assert.Equal(t, "2025-01-15", result.Rows[0].Date)
	})

	t.Run("líneas en blanco intercaladas", func(t *testing.T) {
		raw := parseHeader + "\n\n" +
			"2025-01-15,Lunes,T1,07:00-15:00,Juan,C1,assigned,,,\n\n" +
			"2025-01-16,Martes,T1,07:00-15:00,María,C2,rest,,,\n"

		result, err := NewParser(false).Parse(raw)
		require.NoError(t, err)
		assert.Len(t, result.Rows, 2)
	})

	t.Run("campo entre comillas con coma interna", func(t *testing.T) {
		raw := parseHeader + "\n" +
			`2025-01-15,Lunes,T1,07:00-15:00,"Pérez, Juan",C1,assigned,,,` + "\n"

		result, err := NewParser(false).Parse(raw)
		require.NoError(t, err)
		require.Len(t, result.Rows, 1)
		assert.Equal(t, "Pérez, Juan", result.Rows[0].EmployeeName)
	})

	t.Run("línea completa envuelta en comillas", func(t *testing.T) {
		raw := parseHeader + "\n" +
			`"2025-01-15,Lunes,T1,07:00-15:00,Juan,C1,assigned,,,"` + "\n"

		result, err := NewParser(false).Parse(raw)
		require.NoError(t, err)
		require.Len(t, result.Rows, 1)
		assert.Equal(t, "Juan", result.Rows[0].EmployeeName)
	})
}

func TestParseCoverageColumns(t *testing.T) {
	raw := parseHeader + "\n" +
		"2025-01-15,Lunes,T1,07:00-15:00,Juan,C1,covering,branch,002,,Roster A\n"

	result, err := NewParser(false).Parse(raw)
	require.NoError(t, err)
	require.Len(t, result.Rows, 1)

	row := result.Rows[0]
	assert.Equal(t, "branch", row.CoverageType)
	assert.Equal(t, "002", row.CoverageBranch)
	assert.Empty(t, row.CoverageShift)
	assert.Equal(t, "Roster A", row.RosterName)
}

func TestValidateStructure(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		valid   bool
		message string
	}{
		{"encabezado completo", parseHeader, true, ""},
		{"encabezado en inglés", "Date,Day,Shift,Time Range,Employee", true, ""},
		{"archivo vacío", "", false, "el archivo está vacío"},
		{"sin columna de fecha", "Dia,Horario,Empleado", false, "el encabezado no contiene la columna de fecha"},
		{"sin columna de horario", "Fecha,Dia,Empleado", false, "el encabezado no contiene la columna de horario"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			valid, msg := ValidateStructure(tt.raw)
			assert.Equal(t, tt.valid, valid)
			assert.Equal(t, tt.message, msg)
		})
	}
}
