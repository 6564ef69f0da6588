package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"
)

var (
	PredictionsComputed = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "buswatch_predictions_computed_total",
		Help: "Total number of arrival predictions computed, by sample source tier.",
	}, []string{"source"})

	JourneyTransitions = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "buswatch_journey_transitions_total",
		Help: "Total number of successful journey status transitions, by event.",
	}, []string{"event"})

	EventsRateLimited = promauto.NewCounter(prometheus.CounterOpts{
		Name: "buswatch_events_rate_limited_total",
		Help: "Total number of journey event submissions rejected by the cooldown limiter.",
	})
)

// Serve exposes /metrics on its own listener so the Prometheus surface
// stays off the public API port.
func Serve(listen string) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())

	go func() {
		if err := http.ListenAndServe(listen, mux); err != nil {
			log.Error().Err(err).Msg("Metrics server stopped")
		}
	}()
}
