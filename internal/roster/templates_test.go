package roster

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mercato-dev/roster-manager/backend/internal/domain"
)

func TestDefaultTemplates(t *testing.T) {
	t.Run("convención de las 07:00", func(t *testing.T) {
		templates := DefaultTemplates(ConventionSeven)
		require.Len(t, templates, 21)

		assert.Equal(t, domain.ShiftTemplate{DayName: "Lunes", StartTime: "07:00", EndTime: "15:00"}, templates[0])
		assert.Equal(t, domain.ShiftTemplate{DayName: "Lunes", StartTime: "15:00", EndTime: "23:00"}, templates[1])
		assert.Equal(t, domain.ShiftTemplate{DayName: "Lunes", StartTime: "23:00", EndTime: "07:00"}, templates[2])
		assert.Equal(t, "Domingo", templates[20].DayName)
	})

	t.Run("convención de las 06:00", func(t *testing.T) {
		templates := DefaultTemplates(ConventionSix)
		require.Len(t, templates, 21)

		assert.Equal(t, "06:00", templates[0].StartTime)
		assert.Equal(t, "22:00", templates[2].StartTime)
		assert.Equal(t, "06:00", templates[2].EndTime)
	})

	t.Run("cada día aparece tres veces", func(t *testing.T) {
		counts := map[string]int{}
		for _, tmpl := range DefaultTemplates(ConventionSeven) {
			counts[tmpl.DayName]++
		}
		require.Len(t, counts, 7)
		for day, n := range counts {
			assert.Equal(t, 3, n, "día %s", day)
		}
	})
}

func TestClassifyWindow(t *testing.T) {
	tests := []struct {
		start string
		want  domain.Window
	}{
		{"07:00", domain.WindowMorning},
		{"06:00", domain.WindowMorning},
		{"15:00", domain.WindowAfternoon},
		{"14:00", domain.WindowAfternoon},
		{"23:00", domain.WindowNight},
		{"22:00", domain.WindowNight},
		// fuera de las horas canónicas se clasifica por franja
		{"09:30", domain.WindowMorning},
		{"13:00", domain.WindowAfternoon},
		{"19:45", domain.WindowAfternoon},
		{"20:00", domain.WindowNight},
		{"02:00", domain.WindowNight},
		// entrada ilegible cae en la franja por defecto
		{"zz:zz", domain.WindowMorning},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, ClassifyWindow(tt.start), "inicio %s", tt.start)
	}
}

func TestWindowLabel(t *testing.T) {
	assert.Equal(t, "T1", WindowLabel(domain.WindowMorning))
	assert.Equal(t, "T2", WindowLabel(domain.WindowAfternoon))
	assert.Equal(t, "T3", WindowLabel(domain.WindowNight))
}
