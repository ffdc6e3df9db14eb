package query_test

import (
	"errors"
	"testing"

	"github.com/gridlens/gridlens/internal/domain/query"
	"github.com/gridlens/gridlens/internal/domain/record"
	. "github.com/smartystreets/goconvey/convey"
)

func testDataset() *record.Dataset {
	plants := []record.Plant{
		{Name: "Alpha", State: "CA", Metrics: map[string]float64{"gen": 1000}},
		{Name: "Beta", State: "CA", Metrics: map[string]float64{"gen": 2000}},
		{Name: "Gamma", State: "NY", Metrics: map[string]float64{"gen": 2000}},
		{Name: "Delta", State: "TX", Metrics: map[string]float64{"gen": 500}},
	}
	return record.New(plants, []string{"gen"}, []string{"CA", "NY", "TX", "WA"})
}

func TestTopPlants(t *testing.T) {
	Convey("Given a dataset of four plants", t, func() {
		ds := testDataset()

		Convey("When asking for the top 2 by gen", func() {
			top, err := query.TopPlants(ds, 2, "gen")

			Convey("Then the result is sorted descending with stable ties", func() {
				So(err, ShouldBeNil)
				So(top, ShouldHaveLength, 2)
				// Beta and Gamma tie at 2000; Beta comes first in the dataset.
				So(top[0].Name, ShouldEqual, "Beta")
				So(top[1].Name, ShouldEqual, "Gamma")
			})
		})

		Convey("When n exceeds the dataset size", func() {
			top, err := query.TopPlants(ds, 100, "gen")

			Convey("Then the full sorted dataset is returned", func() {
				So(err, ShouldBeNil)
				So(top, ShouldHaveLength, 4)
				So(top[3].Name, ShouldEqual, "Delta")
			})
		})

		Convey("When n is not positive", func() {
			_, err := query.TopPlants(ds, 0, "gen")

			Convey("Then it fails with ErrInvalidLimit", func() {
				So(errors.Is(err, query.ErrInvalidLimit), ShouldBeTrue)
			})
		})

		Convey("When the metric is unknown", func() {
			_, err := query.TopPlants(ds, 2, "co2")

			Convey("Then it fails with ErrBadMetric", func() {
				So(errors.Is(err, query.ErrBadMetric), ShouldBeTrue)
			})
		})

		Convey("When the query runs", func() {
			before := append([]record.Plant(nil), ds.Plants()...)
			_, err := query.TopPlants(ds, 2, "gen")

			Convey("Then the dataset order is untouched", func() {
				So(err, ShouldBeNil)
				So(ds.Plants(), ShouldResemble, before)
			})
		})
	})
}

func TestStatesInfo(t *testing.T) {
	Convey("Given a dataset spanning three states", t, func() {
		ds := testDataset()

		Convey("When summarizing gen by state", func() {
			info, err := query.StatesInfo(ds, "gen")

			Convey("Then each state sums its plants' metric", func() {
				So(err, ShouldBeNil)
				So(info, ShouldContainKey, "CA")
				So(info["CA"].Total, ShouldEqual, 3000.0)
				So(info["CA"].PlantCount, ShouldEqual, 2)
				So(info["NY"].Total, ShouldEqual, 2000.0)
				So(info["TX"].Total, ShouldEqual, 500.0)
			})

			Convey("And shares are fractions of the national total", func() {
				So(err, ShouldBeNil)
				So(info["CA"].Share, ShouldAlmostEqual, 3000.0/5500.0)
				So(info["NY"].Share, ShouldAlmostEqual, 2000.0/5500.0)
			})

			Convey("And states without plants are omitted", func() {
				So(err, ShouldBeNil)
				So(info, ShouldNotContainKey, "WA")
			})
		})

		Convey("When the metric is unknown", func() {
			_, err := query.StatesInfo(ds, "co2")

			Convey("Then it fails with ErrBadMetric", func() {
				So(errors.Is(err, query.ErrBadMetric), ShouldBeTrue)
			})
		})
	})

	Convey("Given a dataset whose metric sums to zero", t, func() {
		plants := []record.Plant{
			{Name: "Idle", State: "CA", Metrics: map[string]float64{"gen": 0}},
		}
		ds := record.New(plants, []string{"gen"}, []string{"CA"})

		Convey("When summarizing", func() {
			info, err := query.StatesInfo(ds, "gen")

			Convey("Then the share stays zero instead of dividing by zero", func() {
				So(err, ShouldBeNil)
				So(info["CA"].Share, ShouldEqual, 0.0)
			})
		})
	})
}

func TestStateDetail(t *testing.T) {
	Convey("Given a dataset spanning three states", t, func() {
		ds := testDataset()

		Convey("When listing plants for CA", func() {
			plants, err := query.StateDetail(ds, "CA")

			Convey("Then all CA plants come back in dataset order", func() {
				So(err, ShouldBeNil)
				So(plants, ShouldHaveLength, 2)
				So(plants[0].Name, ShouldEqual, "Alpha")
				So(plants[1].Name, ShouldEqual, "Beta")
			})
		})

		Convey("When the code is lowercase with whitespace", func() {
			plants, err := query.StateDetail(ds, " ny ")

			Convey("Then it is canonicalized before matching", func() {
				So(err, ShouldBeNil)
				So(plants, ShouldHaveLength, 1)
				So(plants[0].Name, ShouldEqual, "Gamma")
			})
		})

		Convey("When the code is outside the valid set", func() {
			_, err := query.StateDetail(ds, "ZZ")

			Convey("Then it fails with ErrUnknownState", func() {
				So(errors.Is(err, query.ErrUnknownState), ShouldBeTrue)
			})
		})

		Convey("When a valid state has no plants", func() {
			plants, err := query.StateDetail(ds, "WA")

			Convey("Then an empty slice is returned, not an error", func() {
				So(err, ShouldBeNil)
				So(plants, ShouldNotBeNil)
				So(plants, ShouldHaveLength, 0)
			})
		})
	})
}
