package projection

import (
	"math"
	"time"

	"github.com/okian/nestegg/internal/domain/model"
)

const monthsPerYear = 12

// Projector turns an Input Record into yearly snapshots.
type Projector interface {
	Project(in model.InputRecord) (model.Result, error)
}

// Engine implements Projector. It holds no state between calls.
type Engine struct {
	now         func() time.Time
	compounding Compounding
}

// NewEngine creates an Engine with configuration options.
func NewEngine(opts ...Option) *Engine {
	e := &Engine{
		now:         time.Now,
		compounding: CompoundingCompat,
	}

	for _, opt := range opts {
		opt(e)
	}

	return e
}

// Compounding returns the configured principal growth mode.
func (e *Engine) Compounding() Compounding {
	return e.compounding
}

// Project computes one snapshot per year between age and retirement age.
// Each year is recomputed from the starting balance for the absolute year
// count; it is not a running total.
func (e *Engine) Project(in model.InputRecord) (model.Result, error) {
	if in.RetirementAge <= in.Age {
		return model.Result{}, &ValidationError{Message: MsgRetirementAge}
	}

	years := in.Horizon()
	if years > MaxHorizon {
		return model.Result{}, &ValidationError{Message: MsgHorizonTooLong}
	}
	baseYear := e.now().Year()
	snapshots := make([]model.Snapshot, 0, years)

	for year := 1; year <= years; year++ {
		employee := e.accountValue(in.Salary, in.Contribution, 0, year, in.ROI, in.Balance)
		match := e.accountValue(in.Salary, 0, in.Match, year, in.ROI, in.Balance)

		snapshots = append(snapshots, model.Snapshot{
			Year:                        baseYear + year,
			EmployeeContributionBalance: floor(employee),
			EmployerMatchBalance:        floor(match),
			Total:                       floor(employee + match),
		})
	}

	return model.Result{
		Input:      in,
		Horizon:    years,
		Snapshots:  snapshots,
		FinalTotal: snapshots[len(snapshots)-1].Total,
	}, nil
}

// accountValue evaluates one branch of the projection after years of growth.
func (e *Engine) accountValue(salary, contributionPct, matchPct float64, years int, roiPct, balance float64) float64 {
	contribution := salary * (contributionPct / 100)
	match := salary * (matchPct / 100)
	rate := roiPct / 100 / monthsPerYear
	months := float64(years * monthsPerYear)

	var principal float64
	switch e.compounding {
	case CompoundingStandard:
		principal = balance * math.Pow(1+rate, months)
	default:
		principal = balance * (1 + math.Pow(rate, months))
	}

	// The annuity factor tends to the month count as the rate goes to zero.
	if rate == 0 {
		return principal + ((contribution+match)/monthsPerYear)*months
	}

	return principal + ((contribution+match)/monthsPerYear)*(math.Pow(1+rate, months)-1)/(rate*(1+rate))
}

// floor truncates towards negative infinity, saturating at the int64 range.
// NaN maps to zero.
func floor(x float64) int64 {
	switch {
	case math.IsNaN(x):
		return 0
	case x >= math.MaxInt64:
		return math.MaxInt64
	case x <= math.MinInt64:
		return math.MinInt64
	}
	return int64(math.Floor(x))
}
