package summary

import (
	"github.com/shopspring/decimal"
)

// Severity grades how much of the salary a month has consumed.
type Severity string

const (
	SeverityNormal   Severity = "normal"
	SeverityWarning  Severity = "warning"
	SeverityCritical Severity = "critical"
)

// Breakdown is the monthly salary summary. Remaining goes negative when
// spending exceeds the salary. PercentUsed is the display value, clamped
// to [0,100]; Ratio carries the unclamped percentage and is only
// meaningful when RatioValid is true (a zero salary has no ratio).
type Breakdown struct {
	Salary        decimal.Decimal `json:"salary"`
	TotalExpenses decimal.Decimal `json:"totalExpenses"`
	Remaining     decimal.Decimal `json:"remaining"`
	PercentUsed   float64         `json:"percentUsed"`
	Ratio         float64         `json:"-"`
	RatioValid    bool            `json:"ratioValid"`
	Severity      Severity        `json:"severity"`
}

// Calculate derives the full breakdown from a salary and a period total.
func Calculate(salary, totalExpenses decimal.Decimal) Breakdown {
	b := Breakdown{
		Salary:        salary,
		TotalExpenses: totalExpenses,
		Remaining:     salary.Sub(totalExpenses),
	}

	if salary.IsZero() {
		b.Severity = SeverityNormal
		return b
	}

	ratio, _ := totalExpenses.Div(salary).Mul(decimal.NewFromInt(100)).Float64()
	b.Ratio = ratio
	b.RatioValid = true
	b.Severity = classify(ratio)

	b.PercentUsed = ratio
	if b.PercentUsed > 100 {
		b.PercentUsed = 100
	}
	if b.PercentUsed < 0 {
		b.PercentUsed = 0
	}
	return b
}

func classify(ratio float64) Severity {
	switch {
	case ratio > 90:
		return SeverityCritical
	case ratio > 70:
		return SeverityWarning
	default:
		return SeverityNormal
	}
}
