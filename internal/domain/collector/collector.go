package collector

import (
	"fmt"
	"math"
	"math/big"
	"strconv"
	"strings"
	"sync"

	"github.com/okian/nestegg/internal/domain/model"
)

// Field names a form input. Values match the JSON names of model.InputRecord.
type Field string

// Form fields.
const (
	FieldAge           Field = "age"
	FieldBalance       Field = "balance"
	FieldSalary        Field = "salary"
	FieldContribution  Field = "contribution"
	FieldMatch         Field = "match"
	FieldROI           Field = "roi"
	FieldRetirementAge Field = "retirementAge"
)

// Fields lists every form field in display order.
func Fields() []Field {
	return []Field{FieldAge, FieldBalance, FieldSalary, FieldContribution, FieldMatch, FieldROI, FieldRetirementAge}
}

// SubmitFunc receives the record emitted by Submit.
type SubmitFunc func(rec model.InputRecord)

// Collector holds the current form values. Field changes never submit;
// only Submit notifies the registered callbacks.
type Collector struct {
	mu        sync.Mutex
	values    model.InputRecord
	defaults  model.InputRecord
	ceiling   float64
	callbacks []SubmitFunc
}

// New creates a Collector populated with the default profile.
func New(opts ...Option) *Collector {
	c := &Collector{
		defaults: DefaultProfile(),
		ceiling:  DefaultContributionCeiling,
	}

	for _, opt := range opts {
		opt(c)
	}

	c.values = c.defaults
	return c
}

// Ceiling returns the yearly contribution cap.
func (c *Collector) Ceiling() float64 {
	return c.ceiling
}

// Values returns a copy of the current form values.
func (c *Collector) Values() model.InputRecord {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.values
}

// Reset restores the default profile.
func (c *Collector) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.values = c.defaults
}

// OnSubmit registers a callback invoked on every Submit.
func (c *Collector) OnSubmit(fn SubmitFunc) {
	if fn == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.callbacks = append(c.callbacks, fn)
}

// Set overwrites a single field. The contribution field is clamped against
// the ceiling; see SetContribution. Ages are truncated to whole years and
// must lie in [0, model.MaxAge]. Non-finite values fail with ErrInvalidValue.
// It returns true when the contribution was clamped.
func (c *Collector) Set(field Field, value float64) (bool, error) {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return false, fmt.Errorf("%w: %s must be finite", ErrInvalidValue, field)
	}
	if (field == FieldAge || field == FieldRetirementAge) && (value < 0 || value >= model.MaxAge+1) {
		return false, fmt.Errorf("%w: %s must be between 0 and %d", ErrInvalidValue, field, model.MaxAge)
	}
	if field == FieldContribution {
		return c.SetContribution(value), nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	switch field {
	case FieldAge:
		c.values.Age = int(value)
	case FieldBalance:
		c.values.Balance = value
	case FieldSalary:
		c.values.Salary = value
	case FieldMatch:
		c.values.Match = value
	case FieldROI:
		c.values.ROI = value
	case FieldRetirementAge:
		c.values.RetirementAge = int(value)
	default:
		return false, fmt.Errorf("%w: %q", ErrUnknownField, field)
	}
	return false, nil
}

// SetString parses raw the way a number input reports it and sets field.
func (c *Collector) SetString(field Field, raw string) (bool, error) {
	value, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return false, fmt.Errorf("%w: %s=%q", ErrInvalidValue, field, raw)
	}
	return c.Set(field, value)
}

// SetContribution stores the contribution percentage. When the resulting
// yearly amount at the current salary exceeds the ceiling, the stored value is
// ceiling/salary*100 rounded to one decimal. Returns true when clamped.
func (c *Collector) SetContribution(pct float64) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	amount := c.values.Salary * (pct / 100)
	if amount > c.ceiling {
		c.values.Contribution = roundTenth(c.ceiling / c.values.Salary * 100)
		return true
	}
	c.values.Contribution = pct
	return false
}

// Submit emits a copy of the current values to every registered callback.
func (c *Collector) Submit() model.InputRecord {
	c.mu.Lock()
	rec := c.values
	callbacks := make([]SubmitFunc, len(c.callbacks))
	copy(callbacks, c.callbacks)
	c.mu.Unlock()

	for _, fn := range callbacks {
		fn(rec)
	}
	return rec
}

// roundTenth rounds to one decimal place, ties away from zero. x*10 is
// formed exactly so only true decimal ties such as 1.25 round up.
func roundTenth(x float64) float64 {
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return x
	}
	t := new(big.Float).SetPrec(128).SetFloat64(math.Abs(x))
	t.Mul(t, big.NewFloat(10))
	t.Add(t, big.NewFloat(0.5))
	n, _ := t.Int(nil)
	tenths, _ := new(big.Float).SetInt(n).Float64()
	return math.Copysign(tenths/10, x)
}
