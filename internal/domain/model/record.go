// Package model contains domain models passed between layers.
package model

import "math"

// MaxAge bounds both ages accepted from the form and the API.
const MaxAge = 150

// InputRecord is one submission of the calculator form.
// JSON names mirror the fields of the browser form.
type InputRecord struct {
	Age           int     `json:"age"`           // current age in years
	Balance       float64 `json:"balance"`       // current account balance
	Salary        float64 `json:"salary"`        // annual salary
	Contribution  float64 `json:"contribution"`  // employee contribution, percent of salary
	Match         float64 `json:"match"`         // employer match, percent of salary
	ROI           float64 `json:"roi"`           // annual rate of return, percent
	RetirementAge int     `json:"retirementAge"` // target retirement age in years
}

// Horizon returns the number of projected years, or zero when the
// retirement age does not exceed the current age. The difference is taken
// in uint64 so extreme ages cannot wrap; it saturates at math.MaxInt.
func (r InputRecord) Horizon() int {
	if r.RetirementAge <= r.Age {
		return 0
	}
	d := uint64(r.RetirementAge) - uint64(r.Age)
	if d > math.MaxInt {
		return math.MaxInt
	}
	return int(d)
}

// Snapshot captures one projected year.
type Snapshot struct {
	Year                        int   `json:"year"`
	EmployeeContributionBalance int64 `json:"employeeContributionBalance"`
	EmployerMatchBalance        int64 `json:"employerMatchBalance"`
	// Total is floored from the untruncated branch sum, so it may exceed
	// EmployeeContributionBalance+EmployerMatchBalance by one.
	Total int64 `json:"total"`
}

// Result is a full projection for one InputRecord.
type Result struct {
	Input      InputRecord `json:"input"`
	Horizon    int         `json:"horizon"`
	Snapshots  []Snapshot  `json:"snapshots"`
	FinalTotal int64       `json:"finalTotal"`
}

// Outcome is what the display layer consumes: either a result or the
// message of a validation failure.
type Outcome struct {
	Result *Result `json:"result,omitempty"`
	Error  string  `json:"error,omitempty"`
}

// Failed reports whether the outcome carries a validation failure.
func (o Outcome) Failed() bool {
	return o.Error != ""
}
