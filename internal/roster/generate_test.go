package roster

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mercato-dev/roster-manager/backend/internal/domain"
)

type fixedClock struct {
	t time.Time
}

func (c fixedClock) Now() time.Time { return c.t }

// sequentialIDs returns a deterministic id source: s-1, s-2, ...
func sequentialIDs() func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("s-%d", n)
	}
}

func testGenerator() *Generator {
	return NewGeneratorWith(
		fixedClock{t: time.Date(2025, 1, 1, 8, 0, 0, 0, time.UTC)},
		sequentialIDs(),
	)
}

func TestGenerate(t *testing.T) {
	templates := DefaultTemplates(ConventionSeven)

	t.Run("primera quincena completa", func(t *testing.T) {
		schedule, err := testGenerator().Generate("2025-01-01", "Roster enero A", templates)
		require.NoError(t, err)

		assert.Equal(t, "s-1", schedule.ID)
		assert.Equal(t, "Roster enero A", schedule.Name)
		assert.Equal(t, "2025-01-01", schedule.StartDate)
		assert.Equal(t, "2025-01-15", schedule.EndDate)
		require.Len(t, schedule.Days, 15)

		for _, day := range schedule.Days {
			require.Len(t, day.Shifts, 3, "día %s", day.Date)
			for _, shift := range day.Shifts {
				assert.Equal(t, domain.StatusEmpty, shift.Status)
				assert.False(t, shift.IsAssigned)
				assert.Empty(t, shift.EmployeeID)
				assert.Nil(t, shift.Coverage)
				assert.Equal(t, day.Date, shift.Date)
			}
		}

		// el orden de declaración de la plantilla se conserva en el día
		first := schedule.Days[0]
		assert.Equal(t, "07:00", first.Shifts[0].StartTime)
		assert.Equal(t, "15:00", first.Shifts[1].StartTime)
		assert.Equal(t, "23:00", first.Shifts[2].StartTime)
	})

	t.Run("la cantidad de días sigue a la quincena", func(t *testing.T) {
		tests := []struct {
			start string
			days  int
		}{
			{"2025-01-16", 16},
			{"2025-04-16", 15},
			{"2024-02-16", 14},
			{"2025-02-16", 13},
		}
		for _, tt := range tests {
			schedule, err := testGenerator().Generate(tt.start, "quincena", templates)
			require.NoError(t, err)
			assert.Len(t, schedule.Days, tt.days, "inicio %s", tt.start)
		}
	})

	t.Run("día sin plantillas queda vacío pero existe", func(t *testing.T) {
		soloLunes := []domain.ShiftTemplate{
			{DayName: "Lunes", StartTime: "07:00", EndTime: "15:00"},
		}

		schedule, err := testGenerator().Generate("2025-01-01", "solo lunes", soloLunes)
		require.NoError(t, err)
		require.Len(t, schedule.Days, 15)

		withShifts := 0
		for _, day := range schedule.Days {
			if day.DayName == "Lunes" {
				assert.Len(t, day.Shifts, 1)
				withShifts++
			} else {
				assert.Empty(t, day.Shifts)
				assert.NotNil(t, day.Shifts)
			}
		}
		assert.Equal(t, 2, withShifts) // 6 y 13 de enero
	})

	t.Run("sin plantillas todos los días quedan vacíos", func(t *testing.T) {
		schedule, err := testGenerator().Generate("2025-01-01", "vacío", nil)
		require.NoError(t, err)
		require.Len(t, schedule.Days, 15)
		for _, day := range schedule.Days {
			assert.Empty(t, day.Shifts)
		}
	})

	t.Run("fecha inválida", func(t *testing.T) {
		_, err := testGenerator().Generate("2025-02-30", "x", templates)
		assert.Error(t, err)

		_, err = testGenerator().Generate("15/01/2025", "x", templates)
		assert.Error(t, err)
	})

	t.Run("timestamps del reloj inyectado", func(t *testing.T) {
		now := time.Date(2025, 3, 1, 12, 30, 0, 0, time.UTC)
		g := NewGeneratorWith(fixedClock{t: now}, sequentialIDs())

		schedule, err := g.Generate("2025-03-01", "marzo", templates)
		require.NoError(t, err)
		assert.Equal(t, now, schedule.CreatedAt)
		assert.Equal(t, now, schedule.UpdatedAt)
	})

	t.Run("ids únicos por turno", func(t *testing.T) {
		schedule, err := testGenerator().Generate("2025-01-01", "ids", templates)
		require.NoError(t, err)

		seen := map[string]struct{}{schedule.ID: {}}
		for _, day := range schedule.Days {
			for _, shift := range day.Shifts {
				_, dup := seen[shift.ID]
				assert.False(t, dup, "id repetido %s", shift.ID)
				seen[shift.ID] = struct{}{}
			}
		}
	})
}

func TestFindShift(t *testing.T) {
	schedule, err := testGenerator().Generate("2025-01-01", "buscar", DefaultTemplates(ConventionSeven))
	require.NoError(t, err)

	target := schedule.Days[3].Shifts[1].ID
	found := schedule.FindShift(target)
	require.NotNil(t, found)
	assert.Equal(t, target, found.ID)

	assert.Nil(t, schedule.FindShift("no-existe"))
}
