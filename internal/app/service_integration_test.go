package service_test

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"

	app "github.com/gridlens/gridlens/internal/app"
	. "github.com/smartystreets/goconvey/convey"
)

func TestServiceConcurrentFirstLoad(t *testing.T) {
	Convey("Given an unstarted service and many concurrent first queries", t, func() {
		path := writeSource(t, sampleCSV)
		svc := newService(path)
		ctx := context.Background()

		const callers = 32
		var wg sync.WaitGroup
		errs := make([]error, callers)

		for i := 0; i < callers; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				switch i % 3 {
				case 0:
					_, errs[i] = svc.TopPlants(ctx, 2, "gen")
				case 1:
					_, errs[i] = svc.StatesInfo(ctx, "gen")
				default:
					_, errs[i] = svc.StateDetail(ctx, "CA")
				}
			}(i)
		}
		wg.Wait()

		Convey("Then every caller succeeds", func() {
			for _, err := range errs {
				So(err, ShouldBeNil)
			}
		})

		Convey("And exactly one load happened", func() {
			So(svc.GetStats()["loadCount"], ShouldEqual, int64(1))
		})
	})
}

func TestServiceEmptyAfterCleaning(t *testing.T) {
	Convey("Given a source where no rows survive cleaning", t, func() {
		path := filepath.Join(t.TempDir(), "plants.csv")
		content := "plant_name,state,gen\nTOTAL,,\n,CA,100\n"
		So(os.WriteFile(path, []byte(content), 0o600), ShouldBeNil)
		svc := newService(path)

		Convey("When starting", func() {
			err := svc.Start(context.Background())

			Convey("Then startup fails instead of serving silent empty results", func() {
				So(err, ShouldNotBeNil)
			})
		})
	})
}

func TestServiceDefaults(t *testing.T) {
	Convey("Given a service built without options", t, func() {
		svc := app.New()

		Convey("Then it is creatable and reports stats before starting", func() {
			So(svc, ShouldNotBeNil)
			stats := svc.GetStats()
			So(stats["started"], ShouldEqual, false)
			So(stats, ShouldNotContainKey, "datasetRows")
		})
	})
}
