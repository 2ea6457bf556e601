package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/okian/dugout/internal/adapters/repository"
	service "github.com/okian/dugout/internal/app"
	"github.com/okian/dugout/internal/domain/model"
	"github.com/okian/dugout/internal/domain/scouting"
	"github.com/okian/dugout/pkg/logger"
)

func init() {
	if err := logger.Init(); err != nil {
		panic(err)
	}
}

type rowsSource struct {
	rows  []any
	err   error
	calls int
}

func (r *rowsSource) FetchRows(context.Context) ([]any, error) {
	r.calls++
	if r.err != nil {
		return nil, r.err
	}
	return r.rows, nil
}

type stubGenerator struct {
	text  string
	calls int
}

func (g *stubGenerator) Configured() bool { return true }

func (g *stubGenerator) Generate(context.Context, string, scouting.Params) (string, error) {
	g.calls++
	return g.text, nil
}

func legends() *rowsSource {
	return &rowsSource{rows: []any{
		map[string]any{"Player name": "Babe Ruth", "Hits": "2873", "HR": 714},
		map[string]any{"Player name": "Ty Cobb", "Hits": 4189, "HR": 117},
		map[string]any{"Player name": "Hank Aaron", "Hits": 3771, "HR": 755},
	}}
}

func TestService_New(t *testing.T) {
	Convey("Given a new service with default options", t, func() {
		svc := service.New()

		Convey("Then operations fail until it is started", func() {
			_, err := svc.Players(context.Background(), "", false)
			So(errors.Is(err, service.ErrNotStarted), ShouldBeTrue)
			_, err = svc.Describe(context.Background(), "x")
			So(errors.Is(err, service.ErrNotStarted), ShouldBeTrue)
			So(errors.Is(svc.Refresh(context.Background()), service.ErrNotStarted), ShouldBeTrue)
		})

		Convey("And stats report it as stopped", func() {
			stats := svc.GetStats()
			So(stats["started"], ShouldEqual, false)
			So(stats["storeDriver"], ShouldEqual, repository.DriverMemory)
			So(stats["generationConfigured"], ShouldEqual, false)
		})
	})

	Convey("Given a service without an upstream", t, func() {
		svc := service.New()

		Convey("Then Start fails", func() {
			So(svc.Start(context.Background()), ShouldNotBeNil)
		})
	})
}

func TestService_Operations(t *testing.T) {
	Convey("Given a started service over an in-memory store", t, func() {
		ctx := context.Background()
		src := legends()
		gen := &stubGenerator{text: "Pure power."}
		svc := service.New(
			service.WithSource(src),
			service.WithGenerator(gen),
			service.WithCacheTTL(time.Minute),
		)
		So(svc.Start(ctx), ShouldBeNil)
		defer svc.Stop()

		Convey("Players keeps upstream order by default", func() {
			players, err := svc.Players(ctx, "", false)
			So(err, ShouldBeNil)
			So(players, ShouldHaveLength, 3)
			So(players[0].ID, ShouldEqual, "babe-ruth-0")
			So(players[2].ID, ShouldEqual, "hank-aaron-2")
		})

		Convey("Players sorts by a field", func() {
			players, err := svc.Players(ctx, "homeRuns", true)
			So(err, ShouldBeNil)
			So(players[0].Name, ShouldEqual, "Hank Aaron")
			So(players[2].Name, ShouldEqual, "Ty Cobb")
		})

		Convey("Players rejects an unknown sort field", func() {
			_, err := svc.Players(ctx, "vibes", false)
			So(errors.Is(err, model.ErrValidation), ShouldBeTrue)
		})

		Convey("Player of a missing id is not found", func() {
			_, err := svc.Player(ctx, "nonexistent-id")
			So(errors.Is(err, model.ErrNotFound), ShouldBeTrue)
		})

		Convey("UpdatePlayer rejects an empty patch", func() {
			_, err := svc.UpdatePlayer(ctx, "babe-ruth-0", model.Override{})
			So(errors.Is(err, model.ErrValidation), ShouldBeTrue)
		})

		Convey("An update is visible through Player", func() {
			_, err := svc.UpdatePlayer(ctx, "babe-ruth-0", model.Override{HomeRuns: model.Ptr(715)})
			So(err, ShouldBeNil)
			p, err := svc.Player(ctx, "babe-ruth-0")
			So(err, ShouldBeNil)
			So(p.HomeRuns, ShouldEqual, 715)
			So(p.Hits, ShouldEqual, 2873)
		})

		Convey("Describe generates once", func() {
			first, err := svc.Describe(ctx, "ty-cobb-1")
			So(err, ShouldBeNil)
			So(first.Cached, ShouldBeFalse)
			second, err := svc.Describe(ctx, "ty-cobb-1")
			So(err, ShouldBeNil)
			So(second.Cached, ShouldBeTrue)
			So(gen.calls, ShouldEqual, 1)
		})

		Convey("Refresh forces the next read to refetch", func() {
			_, _ = svc.Players(ctx, "", false)
			So(svc.Refresh(ctx), ShouldBeNil)
			_, _ = svc.Players(ctx, "", false)
			So(src.calls, ShouldEqual, 2)
		})

		Convey("Upstream failure surfaces to callers", func() {
			src.err = model.ErrUpstreamUnavailable
			So(svc.Refresh(ctx), ShouldBeNil)
			_, err := svc.Players(ctx, "", false)
			So(errors.Is(err, model.ErrUpstreamUnavailable), ShouldBeTrue)
		})

		Convey("Stats describe the running service", func() {
			_, _ = svc.Players(ctx, "", false)
			stats := svc.GetStats()
			So(stats["started"], ShouldEqual, true)
			So(stats["generationConfigured"], ShouldEqual, true)
			So(stats["cacheTTLSeconds"], ShouldEqual, 60.0)
			So(stats, ShouldContainKey, "cacheExpiresAt")
		})
	})

	Convey("Given a service that owns its store", t, func() {
		ctx := context.Background()
		svc := service.New(service.WithSource(legends()))
		So(svc.Start(ctx), ShouldBeNil)

		Convey("Start twice is a no-op and Stop makes it unusable", func() {
			So(svc.Start(ctx), ShouldBeNil)
			svc.Stop()
			svc.Stop()
			_, err := svc.Players(ctx, "", false)
			So(errors.Is(err, service.ErrNotStarted), ShouldBeTrue)
		})
	})
}
