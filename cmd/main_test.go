package main

import (
	"context"
	"net/http"
	"os"
	"testing"

	"github.com/gridlens/gridlens/internal/adapters/http/api"
	"github.com/gridlens/gridlens/internal/adapters/http/site"
	"github.com/gridlens/gridlens/internal/adapters/http/swagger"
	app "github.com/gridlens/gridlens/internal/app"
	"github.com/gridlens/gridlens/internal/config"
	"github.com/smartystreets/goconvey/convey"
)

func TestMainFunction(t *testing.T) {
	convey.Convey("Given the main application", t, func() {
		convey.Convey("When testing configuration loading", func() {
			_ = os.Setenv("GRIDLENS_ADDR", ":9090")
			_ = os.Setenv("GRIDLENS_SOURCE_PATH", "/tmp/plants.csv")
			defer func() {
				_ = os.Unsetenv("GRIDLENS_ADDR")
				_ = os.Unsetenv("GRIDLENS_SOURCE_PATH")
			}()

			convey.Convey("Then configuration should be loadable", func() {
				ctx := context.Background()
				cfg, err := config.Load(ctx)
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg, convey.ShouldNotBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":9090")
				convey.So(cfg.SourcePath, convey.ShouldEqual, "/tmp/plants.csv")
			})
		})

		convey.Convey("When testing service creation", func() {
			convey.Convey("Then service should be creatable with default options", func() {
				svc := app.New()
				convey.So(svc, convey.ShouldNotBeNil)
			})

			convey.Convey("And service should be creatable with custom options", func() {
				svc := app.New(
					app.WithSourcePath("/tmp/plants.csv"),
					app.WithMetrics([]string{"gen"}),
					app.WithStates([]string{"CA"}),
				)
				convey.So(svc, convey.ShouldNotBeNil)
			})
		})

		convey.Convey("When testing HTTP server creation", func() {
			svc := app.New()

			convey.Convey("Then routes should register on a fresh mux", func() {
				ctx := context.Background()
				server := api.NewServer(svc, svc, api.Options{MaxTopLimit: 100, DefaultMetric: "gen"})
				convey.So(server, convey.ShouldNotBeNil)

				mux := http.NewServeMux()
				convey.So(func() {
					site.Register(ctx, mux)
					swagger.Register(ctx, mux)
					server.Register(ctx, mux)
				}, convey.ShouldNotPanic)
			})
		})
	})
}
