package swagger_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/smartystreets/goconvey/convey"

	"github.com/okian/salesdash/internal/adapters/http/swagger"
)

func TestRegister(t *testing.T) {
	convey.Convey("Given the docs routes", t, func() {
		mux := http.NewServeMux()
		swagger.Register(context.Background(), mux)

		get := func(target string) *httptest.ResponseRecorder {
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
			return rec
		}

		convey.Convey("When the spec is requested", func() {
			rec := get("/openapi.yaml")

			convey.So(rec.Code, convey.ShouldEqual, http.StatusOK)
			convey.So(rec.Header().Get("Content-Type"), convey.ShouldStartWith, "application/yaml")
			convey.So(rec.Body.String(), convey.ShouldContainSubstring, "openapi:")
			convey.So(rec.Body.String(), convey.ShouldContainSubstring, "/api/data")
		})

		convey.Convey("When the docs page is requested", func() {
			rec := get("/api-docs")

			convey.So(rec.Code, convey.ShouldEqual, http.StatusOK)
			convey.So(rec.Header().Get("Content-Type"), convey.ShouldStartWith, "text/html")
			convey.So(rec.Body.String(), convey.ShouldContainSubstring, "/openapi.yaml")
		})

		convey.Convey("When registered with a nil mux", func() {
			convey.So(func() { swagger.Register(context.Background(), nil) }, convey.ShouldPanic)
		})
	})
}
