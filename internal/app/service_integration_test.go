package service_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	. "github.com/smartystreets/goconvey/convey"

	"github.com/okian/dugout/internal/adapters/http/api"
	"github.com/okian/dugout/internal/adapters/repository"
	service "github.com/okian/dugout/internal/app"
	"github.com/okian/dugout/internal/domain/model"
	"github.com/okian/dugout/internal/domain/scouting"
)

const upstreamBody = `[
  {"Player name": "Babe Ruth", "position": "RF", "Hits": "2873", "HR": 714, "AVG": 0.342, "OPS": 1.164},
  {"Player name": "Ty Cobb", "position": "CF", "Hits": 4189, "home run": 117, "AVG": 0.366}
]`

func newUpstream(calls *atomic.Int32) *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(upstreamBody))
	}))
}

func call(t *testing.T, h http.Handler, method, path, body string, out any) int {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, http.NoBody)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	if out != nil && w.Code < 300 {
		if err := json.Unmarshal(w.Body.Bytes(), out); err != nil {
			t.Fatalf("decode %s %s: %v", method, path, err)
		}
	}
	return w.Code
}

func TestServiceIntegration(t *testing.T) {
	Convey("Given the full stack over HTTP upstream and a sqlite store", t, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		var upstreamCalls atomic.Int32
		up := newUpstream(&upstreamCalls)
		defer up.Close()

		clock := clockwork.NewFakeClock()
		gen := &stubGenerator{text: "A slugger for the ages."}
		svc := service.New(
			service.WithUpstreamURL(up.URL),
			service.WithUpstreamTimeout(5*time.Second),
			service.WithCacheTTL(5*time.Minute),
			service.WithClock(clock),
			service.WithStoreDriver(repository.DriverSQLite, filepath.Join(t.TempDir(), "dugout.db")),
			service.WithGenerator(gen),
			service.WithGenerationParams(scouting.Params{Temperature: 0.5, MaxTokens: 120}),
		)
		So(svc.Start(ctx), ShouldBeNil)
		defer svc.Stop()

		mux := http.NewServeMux()
		api.NewServer(svc, nil).Register(mux)

		Convey("The canonical view is normalized from upstream", func() {
			var p model.Player
			So(call(t, mux, http.MethodGet, "/players/babe-ruth-0", "", &p), ShouldEqual, http.StatusOK)
			So(p.Name, ShouldEqual, "Babe Ruth")
			So(p.Hits, ShouldEqual, 2873)
			So(p.HomeRuns, ShouldEqual, 714)
			So(p.Games, ShouldEqual, 0)
		})

		Convey("An edit keeps every other field", func() {
			So(call(t, mux, http.MethodPatch, "/players/babe-ruth-0", `{"homeRuns": 715}`, nil), ShouldEqual, http.StatusOK)

			var p model.Player
			So(call(t, mux, http.MethodGet, "/players/babe-ruth-0", "", &p), ShouldEqual, http.StatusOK)
			So(p.HomeRuns, ShouldEqual, 715)
			So(p.Hits, ShouldEqual, 2873)
		})

		Convey("Partial edits accumulate", func() {
			So(call(t, mux, http.MethodPatch, "/players/ty-cobb-1", `{"hits": 10}`, nil), ShouldEqual, http.StatusOK)
			So(call(t, mux, http.MethodPatch, "/players/ty-cobb-1", `{"homeRuns": 5}`, nil), ShouldEqual, http.StatusOK)

			var p model.Player
			call(t, mux, http.MethodGet, "/players/ty-cobb-1", "", &p)
			So(p.Hits, ShouldEqual, 10)
			So(p.HomeRuns, ShouldEqual, 5)
		})

		Convey("Reads within the freshness window hit upstream once", func() {
			call(t, mux, http.MethodGet, "/players", "", nil)
			clock.Advance(4 * time.Minute)
			call(t, mux, http.MethodGet, "/players", "", nil)
			call(t, mux, http.MethodGet, "/players/ty-cobb-1", "", nil)
			So(upstreamCalls.Load(), ShouldEqual, 1)

			clock.Advance(time.Minute)
			call(t, mux, http.MethodGet, "/players", "", nil)
			So(upstreamCalls.Load(), ShouldEqual, 2)
		})

		Convey("Scouting reports are generated once and survive edits", func() {
			var first, second scouting.Report
			So(call(t, mux, http.MethodPost, "/players/babe-ruth-0/description", "", &first), ShouldEqual, http.StatusOK)
			So(first, ShouldResemble, scouting.Report{Description: "A slugger for the ages.", Cached: false})

			So(call(t, mux, http.MethodPatch, "/players/babe-ruth-0", `{"hits": 3000}`, nil), ShouldEqual, http.StatusOK)

			So(call(t, mux, http.MethodPost, "/players/babe-ruth-0/description", "", &second), ShouldEqual, http.StatusOK)
			So(second.Cached, ShouldBeTrue)
			So(gen.calls, ShouldEqual, 1)

			var p model.Player
			call(t, mux, http.MethodGet, "/players/babe-ruth-0", "", &p)
			So(p.Description, ShouldNotBeNil)
			So(*p.Description, ShouldEqual, "A slugger for the ages.")
			So(p.Hits, ShouldEqual, 3000)
		})

		Convey("Unknown players are 404 everywhere", func() {
			So(call(t, mux, http.MethodGet, "/players/nonexistent-id", "", nil), ShouldEqual, http.StatusNotFound)
			So(call(t, mux, http.MethodPatch, "/players/nonexistent-id", `{"hits": 1}`, nil), ShouldEqual, http.StatusNotFound)
			So(call(t, mux, http.MethodPost, "/players/nonexistent-id/description", "", nil), ShouldEqual, http.StatusNotFound)
		})

		Convey("A refresh refetches on the next read", func() {
			call(t, mux, http.MethodGet, "/players", "", nil)
			So(call(t, mux, http.MethodPost, "/admin/refresh", "", nil), ShouldEqual, http.StatusOK)
			call(t, mux, http.MethodGet, "/players", "", nil)
			So(upstreamCalls.Load(), ShouldEqual, 2)
		})
	})

	Convey("Given an unreachable upstream", t, func() {
		up := httptest.NewServer(http.NotFoundHandler())
		url := up.URL
		up.Close()

		svc := service.New(service.WithUpstreamURL(url), service.WithUpstreamTimeout(time.Second))
		So(svc.Start(context.Background()), ShouldBeNil)
		defer svc.Stop()

		mux := http.NewServeMux()
		api.NewServer(svc, nil).Register(mux)

		Convey("Reads fail with 502 and nothing is served from overrides", func() {
			So(call(t, mux, http.MethodGet, "/players", "", nil), ShouldEqual, http.StatusBadGateway)
			So(call(t, mux, http.MethodGet, "/players/babe-ruth-0", "", nil), ShouldEqual, http.StatusBadGateway)
		})
	})

	Convey("Given no text generator", t, func() {
		var calls atomic.Int32
		up := newUpstream(&calls)
		defer up.Close()

		svc := service.New(service.WithUpstreamURL(up.URL))
		So(svc.Start(context.Background()), ShouldBeNil)
		defer svc.Stop()

		mux := http.NewServeMux()
		api.NewServer(svc, nil).Register(mux)

		Convey("Description requests are 503", func() {
			So(call(t, mux, http.MethodPost, "/players/babe-ruth-0/description", "", nil), ShouldEqual, http.StatusServiceUnavailable)
		})
	})
}
