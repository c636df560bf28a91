package site_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/smartystreets/goconvey/convey"

	"github.com/okian/salesdash/internal/adapters/http/site"
)

func TestRootHandler(t *testing.T) {
	convey.Convey("Given the embedded dashboard", t, func() {
		mux := http.NewServeMux()
		site.Register(context.Background(), mux)

		get := func(target string) *httptest.ResponseRecorder {
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
			return rec
		}

		convey.Convey("When the root is requested", func() {
			rec := get("/")

			convey.So(rec.Code, convey.ShouldEqual, http.StatusOK)
			convey.So(rec.Header().Get("Content-Type"), convey.ShouldStartWith, "text/html")
			convey.So(rec.Body.String(), convey.ShouldContainSubstring, "<!doctype html>")
		})

		convey.Convey("When an embedded asset is requested", func() {
			rec := get("/app.js")

			convey.So(rec.Code, convey.ShouldEqual, http.StatusOK)
			convey.So(rec.Body.Len(), convey.ShouldBeGreaterThan, 0)
			convey.So(rec.Body.String(), convey.ShouldNotContainSubstring, "<!doctype html>")
		})

		convey.Convey("When an unknown client-side route is requested", func() {
			rec := get("/dashboard/quarterly")

			convey.Convey("Then the SPA entry document is served instead of 404", func() {
				convey.So(rec.Code, convey.ShouldEqual, http.StatusOK)
				convey.So(rec.Body.String(), convey.ShouldContainSubstring, "<!doctype html>")
			})
		})

		convey.Convey("When the path tries to climb out of the asset root", func() {
			// Bypass the mux so its path canonicalization does not kick in.
			rec := httptest.NewRecorder()
			site.NewRootHandler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/assets/../../secrets", nil))

			convey.Convey("Then the request is refused outright", func() {
				convey.So(rec.Code, convey.ShouldEqual, http.StatusBadRequest)
			})
		})
	})
}
