package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	. "github.com/smartystreets/goconvey/convey"
)

func TestMetricsOptions(t *testing.T) {
	Convey("Given metrics options", t, func() {
		Convey("When creating options", func() {
			namespaceOpt := WithNamespace("test-namespace")
			subsystemOpt := WithSubsystem("test-subsystem")
			histogramBucketsOpt := WithHistogramBuckets([]float64{0.1, 0.5, 1.0})
			registryOpt := WithPrometheusRegistry(prometheus.NewRegistry())

			Convey("Then they should be valid functions", func() {
				So(namespaceOpt, ShouldNotBeNil)
				So(subsystemOpt, ShouldNotBeNil)
				So(histogramBucketsOpt, ShouldNotBeNil)
				So(registryOpt, ShouldNotBeNil)
			})
		})
	})
}

func TestManagerCreation(t *testing.T) {
	Convey("Given manager creation", t, func() {
		Convey("When creating with default options", func() {
			manager := NewManager(WithPrometheusRegistry(prometheus.NewRegistry()))
			So(manager, ShouldNotBeNil)
		})

		Convey("When creating with custom options", func() {
			manager := NewManager(
				WithNamespace("test-namespace"),
				WithSubsystem("test-subsystem"),
				WithHistogramBuckets([]float64{0.1, 0.5, 1.0}),
				WithPrometheusRegistry(prometheus.NewRegistry()),
			)
			So(manager, ShouldNotBeNil)
		})

		Convey("When creating with empty or nil option values", func() {
			manager := NewManager(
				WithNamespace(""),
				WithSubsystem(""),
				WithHistogramBuckets(nil),
				WithPrometheusRegistry(prometheus.NewRegistry()),
			)
			So(manager, ShouldNotBeNil)
		})
	})
}

func TestMetricsRecording(t *testing.T) {
	Convey("Given metrics recording", t, func() {
		Convey("When recording ballot metrics", func() {
			So(func() {
				RecordBallotAccepted()
				RecordBallotRejected("duplicate")
				RecordBallotRejected("validation")
				RecordMalformedRow()
			}, ShouldNotPanic)
		})

		Convey("When recording store metrics", func() {
			So(func() {
				RecordStoreLatency("rows", 12.5)
				RecordStoreLatency("append", 3.0)
				RecordStoreError()
			}, ShouldNotPanic)
		})

		Convey("When recording leaderboard and gauge metrics", func() {
			So(func() {
				RecordLeaderboardRebuild()
				UpdateTotalBallots(42)
				UpdateTotalTeams(7)
				UpdateTotalBallots(0)
				UpdateTotalTeams(0)
			}, ShouldNotPanic)
		})

		Convey("When recording HTTP metrics", func() {
			So(func() {
				RecordHTTPRequest("/healthz", "GET", "200")
				RecordHTTPRequest("/ballots", "POST", "201")
				RecordHTTPRequestDuration("/leaderboard", "GET", "200", 15.0)
				RecordHTTPRequest("", "", "200")
			}, ShouldNotPanic)
		})
	})
}

func TestMetricsConcurrency(t *testing.T) {
	Convey("Given concurrent recording", t, func() {
		done := make(chan bool, 10)
		for i := 0; i < 10; i++ {
			go func() {
				for j := 0; j < 100; j++ {
					RecordBallotAccepted()
					RecordStoreLatency("rows", float64(j))
					UpdateTotalBallots(j)
					RecordHTTPRequest("/ballots", "POST", "201")
				}
				done <- true
			}()
		}
		for i := 0; i < 10; i++ {
			<-done
		}

		Convey("Then no recording panics", func() {
			So(true, ShouldBeTrue)
		})
	})
}

func TestGetRegistry(t *testing.T) {
	Convey("The package exposes its custom registry for exposition", t, func() {
		So(GetRegistry(), ShouldNotBeNil)
	})
}
