package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "iss_notifier"

var (
	checksTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "checks_total",
			Help:      "Watch iterations by outcome.",
		},
		[]string{"outcome"},
	)

	checkErrorsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "check_errors_total",
			Help:      "Watch iterations that ended in an error.",
		},
	)

	notificationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "notifications_total",
			Help:      "Alert deliveries by result.",
		},
		[]string{"result"},
	)

	apiRetriesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "api_retries_total",
			Help:      "Retried upstream calls.",
		},
		[]string{"call"},
	)

	daylightFallbackTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "daylight_fallback_total",
			Help:      "Times the local sun calculation replaced the sunrise-sunset API.",
		},
	)

	apiDurationSeconds = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "api_duration_seconds",
			Help:      "Upstream call latency in seconds, including retries.",
			Buckets:   []float64{0.05, 0.1, 0.2, 0.4, 0.8, 1.0, 2.0, 4.0, 8.0, 16.0, 32.0},
		},
		[]string{"call"},
	)

	stationLatitude = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "station_latitude_degrees",
		Help:      "Last reported ISS latitude.",
	})

	stationLongitude = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "station_longitude_degrees",
		Help:      "Last reported ISS longitude.",
	})
)

func init() {
	prometheus.MustRegister(
		checksTotal,
		checkErrorsTotal,
		notificationsTotal,
		apiRetriesTotal,
		daylightFallbackTotal,
		apiDurationSeconds,
		stationLatitude,
		stationLongitude,
	)
}

// Outcome labels for ObserveCheck.
const (
	OutcomeNotOverhead   = "not_overhead"
	OutcomeOutsideWindow = "outside_window"
	OutcomeNotified      = "notified"
)

func ObserveCheck(outcome string) {
	checksTotal.WithLabelValues(outcome).Inc()
}

func ObserveCheckError() {
	checkErrorsTotal.Inc()
}

func ObserveNotification(err error) {
	result := "sent"
	if err != nil {
		result = "failed"
	}
	notificationsTotal.WithLabelValues(result).Inc()
}

func ObserveRetry(call string) {
	apiRetriesTotal.WithLabelValues(call).Inc()
}

func ObserveDaylightFallback() {
	daylightFallbackTotal.Inc()
}

func ObserveAPIDuration(call string, seconds float64) {
	apiDurationSeconds.WithLabelValues(call).Observe(seconds)
}

func SetStationPosition(lat, lng float64) {
	stationLatitude.Set(lat)
	stationLongitude.Set(lng)
}
