// Package display renders projection outcomes. It performs no computation
// beyond scaling bars.
package display

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/okian/nestegg/internal/domain/model"
)

// Column is one bar group of the chart.
type Column struct {
	Name     int   `json:"name"`
	Employee int64 `json:"employee"`
	Match    int64 `json:"match"`
	Total    int64 `json:"total"`
}

// Chart is the payload consumed by the browser chart.
type Chart struct {
	Columns    []Column `json:"columns"`
	FinalTotal int64    `json:"finalTotal"`
	Headline   string   `json:"headline"`
}

// Columns maps snapshots to chart columns keyed by year.
func Columns(res model.Result) []Column {
	cols := make([]Column, len(res.Snapshots))
	for i, s := range res.Snapshots {
		cols[i] = Column{
			Name:     s.Year,
			Employee: s.EmployeeContributionBalance,
			Match:    s.EmployerMatchBalance,
			Total:    s.Total,
		}
	}
	return cols
}

// NewChart builds the chart payload for a result.
func NewChart(res model.Result) Chart {
	return Chart{
		Columns:    Columns(res),
		FinalTotal: res.FinalTotal,
		Headline:   Headline(res.FinalTotal),
	}
}

var printer = message.NewPrinter(language.AmericanEnglish) //nolint:gochecknoglobals // printers are safe for reuse

// FormatAmount groups digits the en-US way, e.g. 971913 -> "971,913".
func FormatAmount(v int64) string {
	return printer.Sprintf("%d", v)
}

// Headline is the sentence shown under the chart.
func Headline(total int64) string {
	return "Total Retirement Value: " + FormatAmount(total)
}
