package display

import (
	"fmt"
	"io"
	"strings"

	"github.com/okian/nestegg/internal/domain/model"
)

// DefaultWidth is the bar width used when none is given.
const DefaultWidth = 50

const (
	employeeGlyph = "#"
	matchGlyph    = "+"
)

// Text writes a stacked bar chart, one row per year, followed by the
// headline. A failed outcome renders an error panel instead.
func Text(w io.Writer, outcome model.Outcome, width int) error {
	if outcome.Failed() {
		return errorPanel(w, outcome.Error)
	}
	if outcome.Result == nil {
		_, err := fmt.Fprintln(w, "no projection yet")
		return err
	}
	if width <= 0 {
		width = DefaultWidth
	}

	res := *outcome.Result
	var peak int64
	for _, s := range res.Snapshots {
		if s.Total > peak {
			peak = s.Total
		}
	}

	var b strings.Builder
	for _, s := range res.Snapshots {
		emp := scale(s.EmployeeContributionBalance, peak, width)
		match := scale(s.EmployerMatchBalance, peak, width)
		if emp+match > width {
			match = width - emp
		}
		fmt.Fprintf(&b, "%d | %s%s%s %s\n",
			s.Year,
			strings.Repeat(employeeGlyph, emp),
			strings.Repeat(matchGlyph, match),
			strings.Repeat(" ", width-emp-match),
			FormatAmount(s.Total),
		)
	}
	fmt.Fprintf(&b, "\n%s employee  %s match\n", employeeGlyph, matchGlyph)
	fmt.Fprintln(&b, Headline(res.FinalTotal))

	_, err := io.WriteString(w, b.String())
	return err
}

func errorPanel(w io.Writer, msg string) error {
	border := strings.Repeat("-", len(msg)+4)
	_, err := fmt.Fprintf(w, "%s\n| %s |\n%s\n", border, msg, border)
	return err
}

// scale maps v onto [0, width] relative to peak. Negative values draw nothing.
func scale(v, peak int64, width int) int {
	if v <= 0 || peak <= 0 {
		return 0
	}
	n := int(float64(v) / float64(peak) * float64(width))
	if n > width {
		return width
	}
	return n
}
