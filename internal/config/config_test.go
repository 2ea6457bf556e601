package config_test

import (
	"errors"
	"testing"
	"time"

	"github.com/okian/dugout/internal/config"
	"github.com/smartystreets/goconvey/convey"
)

func TestConfig_New(t *testing.T) {
	convey.Convey("Given a new config with default options", t, func() {
		cfg := config.New()

		convey.Convey("Then it should have sensible defaults", func() {
			convey.So(cfg.Addr, convey.ShouldEqual, ":9080")
			convey.So(cfg.CacheTTL(), convey.ShouldEqual, 5*time.Minute)
			convey.So(cfg.UpstreamTimeout(), convey.ShouldEqual, 10*time.Second)
			convey.So(cfg.StoreDriver, convey.ShouldEqual, "sqlite")
			convey.So(cfg.OpenAIModel, convey.ShouldEqual, "gpt-4o-mini")
			convey.So(cfg.GenerationTemperature, convey.ShouldEqual, 0.7)
			convey.So(cfg.GenerationMaxTokens, convey.ShouldEqual, 300)
			convey.So(cfg.MetricsNamespace, convey.ShouldEqual, "dugout")
			convey.So(cfg.MetricsSubsystem, convey.ShouldEqual, "players")
			convey.So(cfg.Validate(), convey.ShouldBeNil)
		})
	})
}

func TestConfig_ValidateMetricNames(t *testing.T) {
	convey.Convey("Given metric name settings", t, func() {
		cfg := config.New()

		convey.Convey("A name with a dash is rejected", func() {
			cfg.MetricsNamespace = "dug-out"
			convey.So(errors.Is(cfg.Validate(), config.ErrInvalidConfig), convey.ShouldBeTrue)
		})

		convey.Convey("An empty subsystem is rejected", func() {
			cfg.MetricsSubsystem = ""
			convey.So(errors.Is(cfg.Validate(), config.ErrInvalidConfig), convey.ShouldBeTrue)
		})

		convey.Convey("Underscored names are accepted", func() {
			cfg.MetricsNamespace = "ball_park"
			cfg.MetricsBucketsMS = []float64{10, 100}
			convey.So(cfg.Validate(), convey.ShouldBeNil)
		})
	})
}
