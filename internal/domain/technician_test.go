package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDailyCapacity(t *testing.T) {
	tech := Technician{
		ID: "t1",
		Capacity: Capacity{
			Morning: 1, Afternoon: 2, Evening: 3,
			Saturday: 4, Sunday: 5, Holiday: 6,
		},
	}

	t.Run("weekday depends on period", func(t *testing.T) {
		assert.Equal(t, 1, tech.DailyCapacity(DayWeekday, PeriodMorning))
		assert.Equal(t, 2, tech.DailyCapacity(DayWeekday, PeriodAfternoon))
		assert.Equal(t, 3, tech.DailyCapacity(DayWeekday, PeriodEvening))
	})

	t.Run("special days ignore period", func(t *testing.T) {
		for _, p := range AllPeriods {
			assert.Equal(t, 4, tech.DailyCapacity(DaySaturday, p))
			assert.Equal(t, 5, tech.DailyCapacity(DaySunday, p))
			assert.Equal(t, 6, tech.DailyCapacity(DayHoliday, p))
		}
	})

	t.Run("pure", func(t *testing.T) {
		before := tech
		for i := 0; i < 3; i++ {
			assert.Equal(t, 4, tech.DailyCapacity(DaySaturday, PeriodMorning))
		}
		assert.Equal(t, before, tech)
	})

	t.Run("negative clamps to zero", func(t *testing.T) {
		broken := Technician{Capacity: Capacity{Morning: -2, Sunday: -1}}
		assert.Equal(t, 0, broken.DailyCapacity(DayWeekday, PeriodMorning))
		assert.Equal(t, 0, broken.DailyCapacity(DaySunday, PeriodEvening))
		assert.False(t, broken.Capacity.IsValid())
	})
}

func TestServesCity(t *testing.T) {
	tech := Technician{Cities: []string{"Springfield", " Shelbyville "}}

	assert.True(t, tech.ServesCity("springfield"))
	assert.True(t, tech.ServesCity("  SHELBYVILLE"))
	assert.False(t, tech.ServesCity("Capital City"))
	assert.False(t, tech.ServesCity("  "))
}

func TestNormalizeCities(t *testing.T) {
	got := NormalizeCities([]string{" Springfield", "springfield", "", "Ogdenville", "OGDENVILLE "})
	assert.Equal(t, []string{"Ogdenville", "Springfield"}, got)
}
