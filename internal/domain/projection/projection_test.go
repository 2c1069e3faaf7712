package projection_test

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/okian/nestegg/internal/domain/model"
	"github.com/okian/nestegg/internal/domain/projection"
	. "github.com/smartystreets/goconvey/convey"
)

func fixedClock() time.Time {
	return time.Date(2026, time.October, 16, 12, 0, 0, 0, time.UTC)
}

func defaultProfile() model.InputRecord {
	return model.InputRecord{
		Age:           30,
		Balance:       1000,
		Salary:        50000,
		Contribution:  10,
		Match:         3,
		ROI:           7,
		RetirementAge: 65,
	}
}

func TestEngine_Project(t *testing.T) {
	Convey("Given an engine with a fixed clock", t, func() {
		engine := projection.NewEngine(projection.WithClock(fixedClock))

		Convey("When projecting the default profile", func() {
			result, err := engine.Project(defaultProfile())

			Convey("Then it should return one snapshot per year", func() {
				So(err, ShouldBeNil)
				So(result.Horizon, ShouldEqual, 35)
				So(result.Snapshots, ShouldHaveLength, 35)
			})

			Convey("And years should be labeled from next calendar year", func() {
				for i, snap := range result.Snapshots {
					So(snap.Year, ShouldEqual, 2027+i)
				}
			})

			Convey("And the first snapshot should match the reference values", func() {
				first := result.Snapshots[0]
				So(first.EmployeeContributionBalance, ShouldEqual, 6133)
				So(first.EmployerMatchBalance, ShouldEqual, 2540)
				So(first.Total, ShouldEqual, 8673)
			})

			Convey("And the headline should be the last snapshot total", func() {
				last := result.Snapshots[len(result.Snapshots)-1]
				So(last.EmployeeContributionBalance, ShouldEqual, 747087)
				So(last.EmployerMatchBalance, ShouldEqual, 224826)
				So(last.Total, ShouldEqual, 971913)
				So(result.FinalTotal, ShouldEqual, 971913)
			})

			Convey("And the total should floor the untruncated sum", func() {
				sixth := result.Snapshots[5]
				So(sixth.EmployeeContributionBalance, ShouldEqual, 37934)
				So(sixth.EmployerMatchBalance, ShouldEqual, 12080)
				So(sixth.Total, ShouldEqual, 50015)
				So(sixth.Total-(sixth.EmployeeContributionBalance+sixth.EmployerMatchBalance), ShouldEqual, 1)
			})

			Convey("And the input should be echoed back", func() {
				So(result.Input, ShouldResemble, defaultProfile())
			})
		})

		Convey("When projecting the same record twice", func() {
			first, err1 := engine.Project(defaultProfile())
			second, err2 := engine.Project(defaultProfile())

			Convey("Then the results should be identical", func() {
				So(err1, ShouldBeNil)
				So(err2, ShouldBeNil)
				So(second, ShouldResemble, first)
			})
		})

		Convey("When the horizon is a single year", func() {
			in := defaultProfile()
			in.Age = 64
			result, err := engine.Project(in)

			Convey("Then exactly one snapshot is produced", func() {
				So(err, ShouldBeNil)
				So(result.Snapshots, ShouldHaveLength, 1)
				So(result.Snapshots[0].Year, ShouldEqual, 2027)
				So(result.FinalTotal, ShouldEqual, 8673)
			})
		})

		Convey("When retirement age equals age", func() {
			in := defaultProfile()
			in.RetirementAge = in.Age
			result, err := engine.Project(in)

			Convey("Then a validation error is returned without snapshots", func() {
				So(err, ShouldNotBeNil)
				So(err.Error(), ShouldEqual, "retirement age must exceed current age")
				So(projection.IsValidationError(err), ShouldBeTrue)
				So(result.Snapshots, ShouldBeEmpty)
			})
		})

		Convey("When retirement age is below age", func() {
			in := defaultProfile()
			in.Age = 70
			_, err := engine.Project(in)

			Convey("Then the error is a *ValidationError", func() {
				var ve *projection.ValidationError
				So(errors.As(err, &ve), ShouldBeTrue)
				So(ve.Message, ShouldEqual, projection.MsgRetirementAge)
			})
		})

		Convey("When the rate of return is zero", func() {
			in := defaultProfile()
			in.ROI = 0
			in.RetirementAge = 31
			result, err := engine.Project(in)

			Convey("Then contributions accumulate without growth", func() {
				So(err, ShouldBeNil)
				So(result.Snapshots[0].EmployeeContributionBalance, ShouldEqual, 6000)
				So(result.Snapshots[0].EmployerMatchBalance, ShouldEqual, 2500)
				So(result.Snapshots[0].Total, ShouldEqual, 8500)
			})
		})

		Convey("When every horizon between 1 and 50 years is projected", func() {
			Convey("Then the snapshot count always equals the horizon", func() {
				for years := 1; years <= 50; years++ {
					in := defaultProfile()
					in.RetirementAge = in.Age + years
					result, err := engine.Project(in)
					So(err, ShouldBeNil)
					So(result.Snapshots, ShouldHaveLength, years)
					So(result.FinalTotal, ShouldEqual, result.Snapshots[years-1].Total)
				}
			})
		})
	})
}

func TestEngine_StandardCompounding(t *testing.T) {
	Convey("Given an engine using standard compounding", t, func() {
		engine := projection.NewEngine(
			projection.WithClock(fixedClock),
			projection.WithCompounding(projection.CompoundingStandard),
		)

		Convey("Then it reports the configured mode", func() {
			So(engine.Compounding(), ShouldEqual, projection.CompoundingStandard)
		})

		Convey("When projecting the default profile", func() {
			result, err := engine.Project(defaultProfile())

			Convey("Then the balance compounds monthly", func() {
				So(err, ShouldBeNil)
				first := result.Snapshots[0]
				So(first.EmployeeContributionBalance, ShouldEqual, 6205)
				So(first.EmployerMatchBalance, ShouldEqual, 2612)
				So(first.Total, ShouldEqual, 8818)
			})
		})
	})

	Convey("Given an unknown compounding mode", t, func() {
		engine := projection.NewEngine(projection.WithCompounding("yearly"))

		Convey("Then the engine keeps the default", func() {
			So(engine.Compounding(), ShouldEqual, projection.CompoundingCompat)
		})
	})
}

func TestEngine_ExtremeValues(t *testing.T) {
	Convey("Given an engine and an enormous balance", t, func() {
		engine := projection.NewEngine(projection.WithClock(fixedClock))
		in := defaultProfile()
		in.Balance = math.MaxFloat64
		in.RetirementAge = 31

		Convey("When projecting", func() {
			result, err := engine.Project(in)

			Convey("Then values saturate instead of wrapping", func() {
				So(err, ShouldBeNil)
				So(result.Snapshots[0].Total, ShouldEqual, int64(math.MaxInt64))
			})
		})
	})
}

func TestEngine_HorizonBounds(t *testing.T) {
	Convey("Given an engine", t, func() {
		engine := projection.NewEngine(projection.WithClock(fixedClock))
		in := defaultProfile()

		Convey("When the horizon is exactly the maximum", func() {
			in.Age = 0
			in.RetirementAge = projection.MaxHorizon
			result, err := engine.Project(in)

			Convey("Then every year is projected", func() {
				So(err, ShouldBeNil)
				So(result.Snapshots, ShouldHaveLength, projection.MaxHorizon)
			})
		})

		Convey("When the retirement age is the largest int", func() {
			in.Age = 0
			in.RetirementAge = math.MaxInt
			var err error

			Convey("Then a validation error is returned without panicking", func() {
				So(func() { _, err = engine.Project(in) }, ShouldNotPanic)
				So(projection.IsValidationError(err), ShouldBeTrue)
				So(err.Error(), ShouldEqual, projection.MsgHorizonTooLong)
			})
		})

		Convey("When a very negative age would wrap the difference", func() {
			in.Age = math.MinInt + 4
			in.RetirementAge = 10
			var err error

			Convey("Then a validation error is returned without panicking", func() {
				So(func() { _, err = engine.Project(in) }, ShouldNotPanic)
				So(err.Error(), ShouldEqual, projection.MsgHorizonTooLong)
			})
		})

		Convey("When the horizon is one year over the maximum", func() {
			in.Age = 10
			in.RetirementAge = 11 + projection.MaxHorizon
			_, err := engine.Project(in)

			Convey("Then it is rejected", func() {
				So(projection.IsValidationError(err), ShouldBeTrue)
			})
		})
	})
}
