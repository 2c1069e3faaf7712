package collector_test

import (
	"errors"
	"math"
	"testing"

	"github.com/okian/nestegg/internal/domain/collector"
	"github.com/okian/nestegg/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

func TestCollector_Defaults(t *testing.T) {
	Convey("Given a new collector", t, func() {
		c := collector.New()

		Convey("Then it should hold the example profile", func() {
			So(c.Values(), ShouldResemble, model.InputRecord{
				Age: 30, Balance: 1000, Salary: 50000, Contribution: 10,
				Match: 3, ROI: 7, RetirementAge: 65,
			})
			So(c.Ceiling(), ShouldEqual, 19500.0)
		})
	})

	Convey("Given a collector with custom defaults", t, func() {
		profile := model.InputRecord{Age: 45, Balance: 80000, Salary: 90000, Contribution: 8, Match: 4, ROI: 5, RetirementAge: 67}
		c := collector.New(collector.WithDefaults(profile), collector.WithContributionCeiling(23000))

		Convey("Then it should start from that profile", func() {
			So(c.Values(), ShouldResemble, profile)
			So(c.Ceiling(), ShouldEqual, 23000.0)
		})

		Convey("When a field is edited and the form reset", func() {
			_, err := c.Set(collector.FieldAge, 50)
			So(err, ShouldBeNil)
			c.Reset()

			Convey("Then the custom profile is restored", func() {
				So(c.Values(), ShouldResemble, profile)
			})
		})
	})

	Convey("Given a non-positive ceiling option", t, func() {
		c := collector.New(collector.WithContributionCeiling(0))

		Convey("Then the default ceiling is kept", func() {
			So(c.Ceiling(), ShouldEqual, float64(collector.DefaultContributionCeiling))
		})
	})
}

func TestCollector_Set(t *testing.T) {
	Convey("Given a new collector", t, func() {
		c := collector.New()

		Convey("When changing a single field", func() {
			clamped, err := c.Set(collector.FieldSalary, 82000)

			Convey("Then only that field changes", func() {
				So(err, ShouldBeNil)
				So(clamped, ShouldBeFalse)
				want := collector.DefaultProfile()
				want.Salary = 82000
				So(c.Values(), ShouldResemble, want)
			})
		})

		Convey("When changing every field", func() {
			for field, value := range map[collector.Field]float64{
				collector.FieldAge:           40,
				collector.FieldBalance:       12000,
				collector.FieldSalary:        60000,
				collector.FieldContribution:  6,
				collector.FieldMatch:         5,
				collector.FieldROI:           6.5,
				collector.FieldRetirementAge: 70,
			} {
				_, err := c.Set(field, value)
				So(err, ShouldBeNil)
			}

			Convey("Then the values reflect the edits", func() {
				So(c.Values(), ShouldResemble, model.InputRecord{
					Age: 40, Balance: 12000, Salary: 60000, Contribution: 6,
					Match: 5, ROI: 6.5, RetirementAge: 70,
				})
			})
		})

		Convey("When setting an unknown field", func() {
			_, err := c.Set("bonus", 1)

			Convey("Then it fails with ErrUnknownField", func() {
				So(errors.Is(err, collector.ErrUnknownField), ShouldBeTrue)
				So(c.Values(), ShouldResemble, collector.DefaultProfile())
			})
		})

		Convey("When setting a field from text", func() {
			_, err := c.SetString(collector.FieldROI, " 6.25 ")

			Convey("Then the parsed value is stored", func() {
				So(err, ShouldBeNil)
				So(c.Values().ROI, ShouldEqual, 6.25)
			})
		})

		Convey("When the text is not finite", func() {
			Convey("Then every non-finite spelling is rejected", func() {
				for _, raw := range []string{"NaN", "Inf", "-Inf", "+Infinity"} {
					_, err := c.SetString(collector.FieldAge, raw)
					So(errors.Is(err, collector.ErrInvalidValue), ShouldBeTrue)
					_, err = c.SetString(collector.FieldBalance, raw)
					So(errors.Is(err, collector.ErrInvalidValue), ShouldBeTrue)
				}
				So(c.Values(), ShouldResemble, collector.DefaultProfile())
			})
		})

		Convey("When an age is outside the accepted range", func() {
			Convey("Then it is rejected and the form is unchanged", func() {
				for _, v := range []float64{-1, 151, 1e12, math.MaxFloat64} {
					_, err := c.Set(collector.FieldRetirementAge, v)
					So(errors.Is(err, collector.ErrInvalidValue), ShouldBeTrue)
					_, err = c.Set(collector.FieldAge, v)
					So(errors.Is(err, collector.ErrInvalidValue), ShouldBeTrue)
				}
				So(c.Values(), ShouldResemble, collector.DefaultProfile())
			})
		})

		Convey("When an age is at the bounds", func() {
			_, errLow := c.Set(collector.FieldAge, 0)
			_, errHigh := c.Set(collector.FieldRetirementAge, model.MaxAge)

			Convey("Then it is accepted", func() {
				So(errLow, ShouldBeNil)
				So(errHigh, ShouldBeNil)
				So(c.Values().RetirementAge, ShouldEqual, model.MaxAge)
			})
		})

		Convey("When the text is not a number", func() {
			_, err := c.SetString(collector.FieldROI, "seven")

			Convey("Then it fails with ErrInvalidValue", func() {
				So(errors.Is(err, collector.ErrInvalidValue), ShouldBeTrue)
				So(c.Values().ROI, ShouldEqual, 7.0)
			})
		})
	})
}

func TestCollector_ContributionClamp(t *testing.T) {
	Convey("Given a collector with a 50000 salary", t, func() {
		c := collector.New()

		Convey("When the contribution would exceed the ceiling", func() {
			clamped := c.SetContribution(50)

			Convey("Then it is clamped to 39.0", func() {
				So(clamped, ShouldBeTrue)
				So(c.Values().Contribution, ShouldEqual, 39.0)
			})
		})

		Convey("When the contribution lands exactly on the ceiling", func() {
			clamped := c.SetContribution(39)

			Convey("Then it is stored as entered", func() {
				So(clamped, ShouldBeFalse)
				So(c.Values().Contribution, ShouldEqual, 39.0)
			})
		})

		Convey("When the contribution is under the ceiling", func() {
			clamped, err := c.Set(collector.FieldContribution, 12.5)

			Convey("Then the raw percentage is stored", func() {
				So(err, ShouldBeNil)
				So(clamped, ShouldBeFalse)
				So(c.Values().Contribution, ShouldEqual, 12.5)
			})
		})

		Convey("When the salary needs rounding to one decimal", func() {
			_, err := c.Set(collector.FieldSalary, 70000)
			So(err, ShouldBeNil)
			clamped, err := c.SetString(collector.FieldContribution, "40")

			Convey("Then the clamp is rounded", func() {
				So(err, ShouldBeNil)
				So(clamped, ShouldBeTrue)
				So(c.Values().Contribution, ShouldEqual, 27.9)
			})
		})

		Convey("When the clamp lands exactly on a half tenth", func() {
			cases := []struct {
				salary float64
				want   float64
			}{
				{salary: 1560000, want: 1.3}, // 1.25
				{salary: 7800000, want: 0.3}, // 0.25
				{salary: 520000, want: 3.8},  // 3.75
			}

			Convey("Then the tie rounds up", func() {
				for _, tc := range cases {
					_, err := c.Set(collector.FieldSalary, tc.salary)
					So(err, ShouldBeNil)
					So(c.SetContribution(100), ShouldBeTrue)
					So(c.Values().Contribution, ShouldEqual, tc.want)
				}
			})
		})

		Convey("When the salary changes after clamping", func() {
			c.SetContribution(50)
			_, err := c.Set(collector.FieldSalary, 100000)

			Convey("Then the stored contribution is not re-clamped", func() {
				So(err, ShouldBeNil)
				So(c.Values().Contribution, ShouldEqual, 39.0)
			})
		})

		Convey("When the salary is zero", func() {
			_, err := c.Set(collector.FieldSalary, 0)
			So(err, ShouldBeNil)
			clamped := c.SetContribution(90)

			Convey("Then nothing is clamped", func() {
				So(clamped, ShouldBeFalse)
				So(c.Values().Contribution, ShouldEqual, 90.0)
			})
		})
	})
}

func TestCollector_Submit(t *testing.T) {
	Convey("Given a collector with a registered callback", t, func() {
		c := collector.New()
		var received []model.InputRecord
		c.OnSubmit(func(rec model.InputRecord) {
			received = append(received, rec)
		})
		c.OnSubmit(nil)

		Convey("When fields change without submitting", func() {
			_, err := c.Set(collector.FieldAge, 35)
			So(err, ShouldBeNil)

			Convey("Then the callback is not notified", func() {
				So(received, ShouldBeEmpty)
			})
		})

		Convey("When the form is submitted", func() {
			_, err := c.Set(collector.FieldAge, 35)
			So(err, ShouldBeNil)
			rec := c.Submit()

			Convey("Then the callback receives a copy of the values", func() {
				So(received, ShouldHaveLength, 1)
				So(received[0], ShouldResemble, rec)
				So(rec.Age, ShouldEqual, 35)
			})

			Convey("And later edits do not change the emitted record", func() {
				_, err := c.Set(collector.FieldAge, 50)
				So(err, ShouldBeNil)
				So(received[0].Age, ShouldEqual, 35)
			})
		})

		Convey("When a second callback is registered", func() {
			calls := 0
			c.OnSubmit(func(model.InputRecord) { calls++ })
			c.Submit()
			c.Submit()

			Convey("Then every callback is notified on each submit", func() {
				So(received, ShouldHaveLength, 2)
				So(calls, ShouldEqual, 2)
			})
		})
	})
}
