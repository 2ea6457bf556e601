package client

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestClient(t *testing.T) {
	Convey("Given a fake dugout server", t, func() {
		var lastQuery, lastMethod, lastRequestID string
		var lastBody map[string]any

		mux := http.NewServeMux()
		mux.HandleFunc("GET /players", func(w http.ResponseWriter, r *http.Request) {
			lastQuery = r.URL.RawQuery
			lastRequestID = r.Header.Get("X-Request-ID")
			_, _ = w.Write([]byte(`[{"id": "babe-ruth-0", "name": "Babe Ruth", "homeRuns": 714, "description": null}]`))
		})
		mux.HandleFunc("GET /players/{id}", func(w http.ResponseWriter, r *http.Request) {
			if r.PathValue("id") != "babe-ruth-0" {
				w.Header().Set("X-Request-ID", "req-1")
				w.WriteHeader(http.StatusNotFound)
				_, _ = w.Write([]byte(`{"code": "not_found", "message": "player not found: x"}`))
				return
			}
			_, _ = w.Write([]byte(`{"id": "babe-ruth-0", "name": "Babe Ruth"}`))
		})
		mux.HandleFunc("PATCH /players/{id}", func(w http.ResponseWriter, r *http.Request) {
			lastMethod = r.Method
			_ = json.NewDecoder(r.Body).Decode(&lastBody)
			_, _ = w.Write([]byte(`{"id": "babe-ruth-0", "name": "Babe Ruth", "homeRuns": 715}`))
		})
		mux.HandleFunc("POST /players/{id}/description", func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte(`{"description": "Legend.", "cached": true}`))
		})
		mux.HandleFunc("POST /admin/refresh", func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
			_, _ = w.Write([]byte(`upstream down`))
		})
		srv := httptest.NewServer(mux)
		defer srv.Close()

		c := New(srv.URL + "/")
		ctx := context.Background()

		Convey("ListPlayers sends sorting as query parameters", func() {
			players, err := c.ListPlayers(ctx, "homeRuns", true)
			So(err, ShouldBeNil)
			So(players, ShouldHaveLength, 1)
			So(players[0].HomeRuns, ShouldEqual, 714)
			So(lastQuery, ShouldEqual, "order=desc&sort=homeRuns")
			So(lastRequestID, ShouldNotBeEmpty)
		})

		Convey("GetPlayer maps 404 onto ErrNotFound", func() {
			_, err := c.GetPlayer(ctx, "nobody-1")
			So(errors.Is(err, ErrNotFound), ShouldBeTrue)
			var apiErr *APIError
			So(errors.As(err, &apiErr), ShouldBeTrue)
			So(apiErr.Code, ShouldEqual, "not_found")
			So(apiErr.Error(), ShouldContainSubstring, "req-1")
		})

		Convey("UpdatePlayer sends the patch as JSON", func() {
			p, err := c.UpdatePlayer(ctx, "babe-ruth-0", map[string]any{"homeRuns": 715})
			So(err, ShouldBeNil)
			So(p.HomeRuns, ShouldEqual, 715)
			So(lastMethod, ShouldEqual, http.MethodPatch)
			So(lastBody["homeRuns"], ShouldEqual, float64(715))
		})

		Convey("Describe decodes the report", func() {
			r, err := c.Describe(ctx, "babe-ruth-0")
			So(err, ShouldBeNil)
			So(r.Description, ShouldEqual, "Legend.")
			So(r.Cached, ShouldBeTrue)
		})

		Convey("A non-JSON error body is kept as the message", func() {
			err := c.Refresh(ctx)
			var apiErr *APIError
			So(errors.As(err, &apiErr), ShouldBeTrue)
			So(apiErr.Status, ShouldEqual, http.StatusBadGateway)
			So(apiErr.Message, ShouldEqual, "upstream down")
			So(errors.Is(err, ErrNotFound), ShouldBeFalse)
		})
	})
}
