package period_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/moneywatch/moneywatch/internal/core/period"
)

func TestMonthString(t *testing.T) {
	assert.Equal(t, "2024-05", period.NewMonth(2024, 5).String())
	assert.Equal(t, "2024-11", period.NewMonth(2024, 11).String())
	assert.Equal(t, "0800-01", period.NewMonth(800, 1).String())
	assert.Len(t, period.NewMonth(2026, 2).String(), 7)
}

func TestParseMonth(t *testing.T) {
	m, err := period.ParseMonth("2025-02")
	assert.Nil(t, err)
	assert.Equal(t, period.NewMonth(2025, 2), m)

	_, err = period.ParseMonth("2025-13")
	assert.NotNil(t, err)

	_, err = period.ParseMonth("February 2025")
	assert.NotNil(t, err)
}

func TestMonthJSON(t *testing.T) {
	var target struct {
		Period period.Month `json:"period"`
	}

	err := json.Unmarshal([]byte(`{ "period": "2024-05" }`), &target)
	assert.Nil(t, err)
	assert.Equal(t, period.NewMonth(2024, 5), target.Period)

	out, err := json.Marshal(target)
	assert.Nil(t, err)
	assert.Equal(t, `{"period":"2024-05"}`, string(out))

	// full dates are accepted, the day is ignored
	err = json.Unmarshal([]byte(`{ "period": "2024-05-12" }`), &target)
	assert.Nil(t, err)
	assert.Equal(t, period.NewMonth(2024, 5), target.Period)
}

func TestMonthOrdering(t *testing.T) {
	older := period.NewMonth(2023, 12)
	newer := period.NewMonth(2024, 1)

	assert.True(t, older.Before(newer))
	assert.True(t, newer.After(older))
	assert.True(t, older.Equal(period.NewMonth(2023, 12)))
}

func TestMonthDays(t *testing.T) {
	assert.Equal(t, 31, period.NewMonth(2025, 1).Days())
	assert.Equal(t, 28, period.NewMonth(2025, 2).Days())
	assert.Equal(t, 29, period.NewMonth(2024, 2).Days())
	assert.Equal(t, 30, period.NewMonth(2025, 4).Days())
}

func TestClampDay(t *testing.T) {
	feb := period.NewMonth(2025, 2)

	assert.Equal(t, time.Date(2025, 2, 28, 0, 0, 0, 0, time.UTC), feb.ClampDay(31))
	assert.Equal(t, time.Date(2025, 2, 15, 0, 0, 0, 0, time.UTC), feb.ClampDay(15))
	assert.Equal(t, time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC), feb.ClampDay(0))

	leapFeb := period.NewMonth(2024, 2)
	assert.Equal(t, time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC), leapFeb.ClampDay(31))
}

func TestStepMonthClampsShortMonths(t *testing.T) {
	jan31 := time.Date(2025, 1, 31, 0, 0, 0, 0, time.UTC)

	// stepping out of Jan 31 must land in February, never roll into March
	assert.Equal(t, time.Date(2025, 2, 28, 0, 0, 0, 0, time.UTC), period.StepMonth(jan31, 1))

	leapJan31 := time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC), period.StepMonth(leapJan31, 1))

	mar31 := time.Date(2025, 3, 31, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2025, 2, 28, 0, 0, 0, 0, time.UTC), period.StepMonth(mar31, -1))

	// the day is preserved when the target month is long enough
	jan15 := time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC), period.StepMonth(jan15, 2))
}

func TestStepWithinYear(t *testing.T) {
	dec := time.Date(2025, 12, 10, 0, 0, 0, 0, time.UTC)
	stepped, ok := period.StepWithinYear(dec, 1)
	assert.False(t, ok)
	assert.Equal(t, dec, stepped)

	jan := time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC)
	stepped, ok = period.StepWithinYear(jan, -1)
	assert.False(t, ok)
	assert.Equal(t, jan, stepped)

	stepped, ok = period.StepWithinYear(jan, 1)
	assert.True(t, ok)
	assert.Equal(t, time.Date(2025, 2, 10, 0, 0, 0, 0, time.UTC), stepped)
}

func TestMonthContains(t *testing.T) {
	m := period.NewMonth(2025, 6)
	assert.True(t, m.Contains(time.Date(2025, 6, 30, 23, 59, 0, 0, time.UTC)))
	assert.False(t, m.Contains(time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC)))
}

func TestMonthSQLRoundtrip(t *testing.T) {
	m := period.NewMonth(2025, 3)

	v, err := m.Value()
	assert.Nil(t, err)
	assert.Equal(t, "2025-03", v)

	var scanned period.Month
	assert.Nil(t, scanned.Scan("2025-03"))
	assert.Equal(t, m, scanned)
}
