package report

import (
	"github.com/shopspring/decimal"
)

// palette is cycled over categories in first-seen order, so the same
// period always renders the same colors.
var palette = []string{
	"#4E79A7", "#F28E2B", "#E15759", "#76B7B2", "#59A14F",
	"#EDC948", "#B07AA1", "#FF9DA7", "#9C755F", "#BAB0AC",
}

// UncategorizedLabel groups expenses without an active category.
const UncategorizedLabel = "Uncategorized"

// CategorySlice is one wedge of the category distribution chart.
type CategorySlice struct {
	Name   string          `json:"name"`
	Amount decimal.Decimal `json:"amount"`
	Color  string          `json:"color"`
}

// MonthTotal is one point of the yearly trend, labeled Jan..Dec.
type MonthTotal struct {
	Month string          `json:"month"`
	Total decimal.Decimal `json:"total"`
}

func paletteColor(i int) string {
	return palette[i%len(palette)]
}
