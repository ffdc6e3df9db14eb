package source_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/gridlens/gridlens/internal/adapters/source"
	. "github.com/smartystreets/goconvey/convey"
)

func writeTemp(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "plants.csv")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write temp csv: %v", err)
	}
	return path
}

func TestLoader(t *testing.T) {
	ctx := context.Background()

	Convey("Given a well-formed CSV file", t, func() {
		path := writeTemp(t, "plant_name,state,gen\nPlant A,CA,\"1,000\"\nPlant B,NY,2000\n")

		Convey("When loading", func() {
			rows, err := source.New(path).Load(ctx)

			Convey("Then every data row becomes a raw row keyed by header", func() {
				So(err, ShouldBeNil)
				So(rows, ShouldHaveLength, 2)
				So(rows[0]["plant_name"], ShouldEqual, "Plant A")
				So(rows[0]["state"], ShouldEqual, "CA")
				So(rows[0]["gen"], ShouldEqual, "1,000")
				So(rows[1]["gen"], ShouldEqual, "2000")
			})
		})
	})

	Convey("Given a CSV file with a short row", t, func() {
		path := writeTemp(t, "plant_name,state,gen\nPlant A,CA\n")

		Convey("When loading", func() {
			rows, err := source.New(path).Load(ctx)

			Convey("Then the row keeps only the fields it has", func() {
				So(err, ShouldBeNil)
				So(rows, ShouldHaveLength, 1)
				So(rows[0]["plant_name"], ShouldEqual, "Plant A")
				_, present := rows[0]["gen"]
				So(present, ShouldBeFalse)
			})
		})
	})

	Convey("Given a missing file", t, func() {
		Convey("When loading", func() {
			_, err := source.New(filepath.Join(t.TempDir(), "absent.csv")).Load(ctx)

			Convey("Then it fails with ErrSourceNotFound", func() {
				So(errors.Is(err, source.ErrSourceNotFound), ShouldBeTrue)
			})
		})
	})

	Convey("Given an empty file", t, func() {
		path := writeTemp(t, "")

		Convey("When loading", func() {
			_, err := source.New(path).Load(ctx)

			Convey("Then it fails with ErrSourceNotFound", func() {
				So(errors.Is(err, source.ErrSourceNotFound), ShouldBeTrue)
			})
		})
	})

	Convey("Given a file with only a header", t, func() {
		path := writeTemp(t, "plant_name,state,gen\n")

		Convey("When loading", func() {
			rows, err := source.New(path).Load(ctx)

			Convey("Then it returns zero rows without an error", func() {
				So(err, ShouldBeNil)
				So(rows, ShouldHaveLength, 0)
			})
		})
	})

	Convey("Given an unparseable file", t, func() {
		path := writeTemp(t, "plant_name,state,gen\n\"unterminated,CA,100\n")

		Convey("When loading", func() {
			_, err := source.New(path).Load(ctx)

			Convey("Then it fails with ErrMalformedSource", func() {
				So(errors.Is(err, source.ErrMalformedSource), ShouldBeTrue)
			})
		})
	})

	Convey("Given a cancelled context", t, func() {
		path := writeTemp(t, "plant_name,state,gen\nPlant A,CA,100\n")
		cancelled, cancel := context.WithCancel(context.Background())
		cancel()

		Convey("When loading", func() {
			_, err := source.New(path).Load(cancelled)

			Convey("Then the cancellation is surfaced", func() {
				So(errors.Is(err, context.Canceled), ShouldBeTrue)
			})
		})
	})
}
