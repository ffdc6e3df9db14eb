package site_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gridlens/gridlens/internal/adapters/http/site"
	. "github.com/smartystreets/goconvey/convey"
)

func TestRoot(t *testing.T) {
	Convey("Given a mux with the site routes registered", t, func() {
		mux := http.NewServeMux()
		site.Register(context.Background(), mux)

		Convey("When requesting the root path", func() {
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

			Convey("Then a welcome payload is served", func() {
				So(rec.Code, ShouldEqual, http.StatusOK)
				var body map[string]string
				So(json.Unmarshal(rec.Body.Bytes(), &body), ShouldBeNil)
				So(body["message"], ShouldContainSubstring, "power plants")
			})
		})

		Convey("When requesting an unknown path", func() {
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/nope", nil))

			Convey("Then it is a 404", func() {
				So(rec.Code, ShouldEqual, http.StatusNotFound)
			})
		})
	})
}
