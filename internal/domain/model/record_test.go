package model_test

import (
	"encoding/json"
	"math"
	"testing"

	model "github.com/okian/nestegg/internal/domain/model"
	"github.com/smartystreets/goconvey/convey"
)

func TestInputRecord(t *testing.T) {
	convey.Convey("Given an InputRecord", t, func() {
		rec := model.InputRecord{Age: 30, RetirementAge: 65}

		convey.Convey("Then the horizon is the age difference", func() {
			convey.So(rec.Horizon(), convey.ShouldEqual, 35)
		})

		convey.Convey("When retirement age is not above age", func() {
			rec.RetirementAge = 25

			convey.Convey("Then the horizon is zero", func() {
				convey.So(rec.Horizon(), convey.ShouldEqual, 0)
			})
		})

		convey.Convey("When the ages span the whole int range", func() {
			rec.Age = math.MinInt
			rec.RetirementAge = math.MaxInt

			convey.Convey("Then the horizon saturates instead of wrapping", func() {
				convey.So(rec.Horizon(), convey.ShouldEqual, math.MaxInt)
			})
		})

		convey.Convey("When a very negative age would wrap the difference", func() {
			rec.Age = math.MinInt + 4
			rec.RetirementAge = 10

			convey.Convey("Then the horizon is still positive", func() {
				convey.So(rec.Horizon(), convey.ShouldEqual, math.MaxInt)
			})
		})

		convey.Convey("When decoding the browser form payload", func() {
			var decoded model.InputRecord
			err := json.Unmarshal([]byte(`{"age":41,"balance":2500.5,"salary":72000,"contribution":6.5,"match":4,"roi":6,"retirementAge":67}`), &decoded)

			convey.Convey("Then every field is populated", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(decoded, convey.ShouldResemble, model.InputRecord{
					Age: 41, Balance: 2500.5, Salary: 72000, Contribution: 6.5,
					Match: 4, ROI: 6, RetirementAge: 67,
				})
			})
		})
	})
}

func TestSnapshotJSON(t *testing.T) {
	convey.Convey("Given a snapshot", t, func() {
		snap := model.Snapshot{Year: 2027, EmployeeContributionBalance: 6133, EmployerMatchBalance: 2540, Total: 8673}

		convey.Convey("When encoding it", func() {
			raw, err := json.Marshal(snap)

			convey.Convey("Then the chart field names are used", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(string(raw), convey.ShouldEqual,
					`{"year":2027,"employeeContributionBalance":6133,"employerMatchBalance":2540,"total":8673}`)
			})
		})
	})
}

func TestOutcome(t *testing.T) {
	convey.Convey("Given outcomes", t, func() {
		convey.Convey("Then an outcome with a message has failed", func() {
			convey.So(model.Outcome{Error: "boom"}.Failed(), convey.ShouldBeTrue)
		})

		convey.Convey("Then an outcome with a result has not failed", func() {
			convey.So(model.Outcome{Result: &model.Result{}}.Failed(), convey.ShouldBeFalse)
		})
	})
}
