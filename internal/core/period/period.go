// Package period implements the canonical year-month key that scopes every
// expense query, recurring generation and summary in the system.
package period

import (
	"database/sql"
	"database/sql/driver"
	"fmt"
	"strings"
	"time"
)

// Month is a month in a specific year. It is the owning period of an
// expense: serialized as "YYYY-MM", always 7 characters, so lexicographic
// order equals chronological order.
type Month time.Time

// NewMonth returns a new Month.
func NewMonth(year int, month time.Month) Month {
	return Month(time.Date(year, month, 1, 0, 0, 0, 0, time.UTC))
}

// MonthOf returns the Month in which a time occurs.
func MonthOf(t time.Time) Month {
	year, month, _ := t.Date()
	return Month(time.Date(year, month, 1, 0, 0, 0, 0, time.UTC))
}

// ParseMonth parses a "YYYY-MM" string and returns the Month it represents.
func ParseMonth(s string) (Month, error) {
	t, err := time.Parse("2006-01", s)
	if err != nil {
		return Month{}, fmt.Errorf("invalid period %q: %w", s, err)
	}
	return MonthOf(t), nil
}

// String returns the month formatted as YYYY-MM.
func (m Month) String() string {
	return fmt.Sprintf("%04d-%02d", time.Time(m).Year(), time.Time(m).Month())
}

// Year returns the calendar year of the month.
func (m Month) Year() int {
	return time.Time(m).Year()
}

// Month returns the calendar month.
func (m Month) Month() time.Month {
	return time.Time(m).Month()
}

// MarshalJSON implements the json.Marshaler interface.
func (m Month) MarshalJSON() ([]byte, error) {
	return []byte(`"` + m.String() + `"`), nil
}

// UnmarshalJSON implements the json.Unmarshaler interface. It accepts the
// canonical "YYYY-MM" form as well as full dates, ignoring the day.
func (m *Month) UnmarshalJSON(data []byte) error {
	value := strings.Trim(string(data), `"`)
	if value == "" || value == "null" {
		return nil
	}

	for _, pattern := range []string{"2006-01", "2006-01-02", time.RFC3339} {
		if t, err := time.Parse(pattern, value); err == nil {
			*m = MonthOf(t)
			return nil
		}
	}
	return fmt.Errorf("cannot parse %q as a month", value)
}

// Scan reads the value from the database.
func (m *Month) Scan(value interface{}) error {
	if s, ok := value.(string); ok {
		parsed, err := ParseMonth(s)
		if err != nil {
			return err
		}
		*m = parsed
		return nil
	}
	nullTime := &sql.NullTime{}
	if err := nullTime.Scan(value); err != nil {
		return err
	}
	*m = MonthOf(nullTime.Time)
	return nil
}

// Value returns the value for the SQL driver to write to the database.
// Months are stored in their canonical string form.
func (m Month) Value() (driver.Value, error) {
	return m.String(), nil
}

// GormDataType defines the column type used by gorm for the type.
func (Month) GormDataType() string {
	return "varchar(7)"
}

// IsZero reports whether the month is the zero value.
func (m Month) IsZero() bool {
	return time.Time(m).IsZero()
}

// AddMonths steps the month forward or backward by whole months.
func (m Month) AddMonths(delta int) Month {
	return Month(time.Time(m).AddDate(0, delta, 0))
}

// Before reports whether the month instant m is before n.
func (m Month) Before(n Month) bool {
	return time.Time(m).Before(time.Time(n))
}

// After reports whether the month instant m is after n.
func (m Month) After(n Month) bool {
	return time.Time(m).After(time.Time(n))
}

// Equal reports whether m and n represent the same month.
func (m Month) Equal(n Month) bool {
	return time.Time(m).Equal(time.Time(n))
}

// Contains reports whether the time instant is in the month.
func (m Month) Contains(t time.Time) bool {
	return t.Year() == time.Time(m).Year() && t.Month() == time.Time(m).Month()
}

// Days returns the number of days in the month.
func (m Month) Days() int {
	t := time.Time(m)
	return time.Date(t.Year(), t.Month()+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// ClampDay returns the date of the given day-of-month inside this month,
// clamped to the month's last day when the month is shorter. Day 31 in
// February yields Feb 28 (or 29 in a leap year), never a March date.
func (m Month) ClampDay(day int) time.Time {
	if day < 1 {
		day = 1
	}
	if last := m.Days(); day > last {
		day = last
	}
	t := time.Time(m)
	return time.Date(t.Year(), t.Month(), day, 0, 0, 0, 0, time.UTC)
}

// StepMonth adds delta whole months to a date, preserving the day-of-month
// where valid and clamping to the target month's last day otherwise.
// time.Time.AddDate normalizes Jan 31 + 1 month to Mar 2/3, which is a
// correctness bug for period navigation, so the target month is computed
// from the first of the month and the day clamped afterwards.
func StepMonth(t time.Time, delta int) time.Time {
	target := MonthOf(t).AddMonths(delta)
	return target.ClampDay(t.Day())
}

// StepWithinYear steps a date by delta whole months but refuses to cross
// into an adjacent year: switching years is an explicit navigation action,
// not a side effect of month stepping. The second return value reports
// whether the step was applied.
func StepWithinYear(t time.Time, delta int) (time.Time, bool) {
	stepped := StepMonth(t, delta)
	if stepped.Year() != t.Year() {
		return t, false
	}
	return stepped, true
}
