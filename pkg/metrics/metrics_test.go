package metrics

import (
	"sync"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	. "github.com/smartystreets/goconvey/convey"
)

func TestManagerCreation(t *testing.T) {
	Convey("Given metrics manager creation", t, func() {
		Convey("When creating with default options on a fresh registry", func() {
			manager := NewManager(WithPrometheusRegistry(prometheus.NewRegistry()))

			Convey("Then it should be created with the signup namespace", func() {
				So(manager, ShouldNotBeNil)
				So(manager.namespace, ShouldEqual, "fusion")
				So(manager.subsystem, ShouldEqual, "signup")
				So(manager.enabled, ShouldBeTrue)
			})
		})

		Convey("When creating with custom options", func() {
			manager := NewManager(
				WithNamespace("test"),
				WithSubsystem("forms"),
				WithHistogramBuckets([]float64{1, 10, 100}),
				WithConstLabels(map[string]string{"env": "test"}),
				WithPrometheusRegistry(prometheus.NewRegistry()),
			)

			Convey("Then the options should be applied", func() {
				So(manager.namespace, ShouldEqual, "test")
				So(manager.subsystem, ShouldEqual, "forms")
				So(manager.histogramBuckets, ShouldResemble, []float64{1, 10, 100})
				So(manager.constLabels["env"], ShouldEqual, "test")
			})
		})

		Convey("When empty values are passed", func() {
			manager := NewManager(
				WithNamespace(""),
				WithSubsystem(""),
				WithHistogramBuckets(nil),
				WithConstLabels(nil),
				WithPrometheusRegistry(prometheus.NewRegistry()),
			)

			Convey("Then defaults should be kept", func() {
				So(manager.namespace, ShouldEqual, "fusion")
				So(manager.subsystem, ShouldEqual, "signup")
				So(manager.histogramBuckets, ShouldNotBeEmpty)
				So(manager.constLabels, ShouldNotBeNil)
			})
		})
	})
}

func TestManagerRecording(t *testing.T) {
	Convey("Given a manager on an isolated registry", t, func() {
		manager := NewManager(WithPrometheusRegistry(prometheus.NewRegistry()))

		Convey("When submissions are recorded", func() {
			manager.RecordSubmission(OutcomeSuccess)
			manager.RecordSubmission(OutcomeSuccess)
			manager.RecordSubmission(OutcomeError)
			manager.RecordValidationFailure("email")

			Convey("Then counters should reflect them per label", func() {
				So(testutil.ToFloat64(manager.submissions.WithLabelValues(OutcomeSuccess)), ShouldEqual, 2)
				So(testutil.ToFloat64(manager.submissions.WithLabelValues(OutcomeError)), ShouldEqual, 1)
				So(testutil.ToFloat64(manager.validationFailures.WithLabelValues("email")), ShouldEqual, 1)
			})
		})

		Convey("When the in-flight gauge moves", func() {
			manager.AddInFlight(1)
			manager.AddInFlight(1)
			manager.AddInFlight(-1)

			Convey("Then it should hold the net value", func() {
				So(testutil.ToFloat64(manager.inFlight), ShouldEqual, 1)
			})
		})

		Convey("When sessions are tracked", func() {
			manager.RecordSessionCreated()
			manager.RecordSessionEvicted()
			manager.UpdateActiveSessions(7)

			Convey("Then session metrics should be set", func() {
				So(testutil.ToFloat64(manager.sessionsCreated), ShouldEqual, 1)
				So(testutil.ToFloat64(manager.sessionsEvicted), ShouldEqual, 1)
				So(testutil.ToFloat64(manager.activeSessions), ShouldEqual, 7)
			})
		})

		Convey("When HTTP and error metrics are recorded", func() {
			manager.RecordHTTPRequest("submit", "POST", "200", 12)
			manager.RecordErrorByEndpoint("submit", "POST", "client_error")

			Convey("Then they should be observable", func() {
				So(testutil.ToFloat64(manager.httpRequests.WithLabelValues("submit", "POST", "200")), ShouldEqual, 1)
				So(testutil.CollectAndCount(manager.httpRequestDuration), ShouldEqual, 1)
				So(testutil.ToFloat64(manager.errorRateByEndpoint.WithLabelValues("submit", "POST", "client_error")), ShouldEqual, 1)
			})
		})
	})

	Convey("Given a disabled manager", t, func() {
		manager := NewManager(WithMetricsEnabled(false), WithPrometheusRegistry(prometheus.NewRegistry()))

		Convey("When recording", func() {
			manager.RecordSubmission(OutcomeSuccess)
			manager.UpdateActiveSessions(3)

			Convey("Then nothing should change", func() {
				So(testutil.ToFloat64(manager.submissions.WithLabelValues(OutcomeSuccess)), ShouldEqual, 0)
				So(testutil.ToFloat64(manager.activeSessions), ShouldEqual, 0)
			})
		})
	})
}

func TestGlobalShortcuts(t *testing.T) {
	Convey("Given the global manager", t, func() {
		Convey("When recording through package functions concurrently", func() {
			var wg sync.WaitGroup
			for i := 0; i < 10; i++ {
				wg.Add(1)
				go func() {
					defer wg.Done()
					for j := 0; j < 50; j++ {
						RecordSubmission(OutcomeInvalid)
						RecordValidationFailure("name")
						RecordCreateUserLatency(OutcomeSuccess, float64(j))
						RecordHTTPRequest("form", "GET", "200", 1)
						RecordErrorByComponent("usersapi", "server_error")
						RecordErrorByType("server_error", "high")
						RecordErrorLatency("http", "server_error", 3)
						UpdateSystemMemoryUsage(1 << 20)
						UpdateSystemGoroutineCount(10)
						RecordSystemGCPauseTime(0.5)
					}
				}()
			}
			wg.Wait()

			Convey("Then the custom registry should expose the series", func() {
				So(GetRegistry(), ShouldNotBeNil)
				families, err := GetRegistry().Gather()
				So(err, ShouldBeNil)
				So(len(families), ShouldBeGreaterThan, 0)
			})
		})
	})
}
