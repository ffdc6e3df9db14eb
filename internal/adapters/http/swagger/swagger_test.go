package swagger_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gridlens/gridlens/internal/adapters/http/swagger"
	. "github.com/smartystreets/goconvey/convey"
)

func TestSwaggerRoutes(t *testing.T) {
	Convey("Given a mux with the docs routes registered", t, func() {
		mux := http.NewServeMux()
		swagger.Register(context.Background(), mux)

		Convey("When requesting the docs page", func() {
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api-docs", nil))

			Convey("Then HTML is served", func() {
				So(rec.Code, ShouldEqual, http.StatusOK)
				So(rec.Header().Get("Content-Type"), ShouldContainSubstring, "text/html")
				So(rec.Body.String(), ShouldContainSubstring, "redoc")
			})
		})

		Convey("When requesting the OpenAPI spec", func() {
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/openapi.yaml", nil))

			Convey("Then the embedded spec is served", func() {
				So(rec.Code, ShouldEqual, http.StatusOK)
				body := rec.Body.String()
				So(strings.Contains(body, "openapi:"), ShouldBeTrue)
				So(body, ShouldContainSubstring, "/plants/top")
				So(body, ShouldContainSubstring, "/plants/state/{code}")
			})
		})
	})
}
