package prediction

import (
	"context"
	"time"

	"github.com/buswatch/buswatch/pkg/metrics"
	"github.com/buswatch/buswatch/pkg/transit"
	"github.com/rs/zerolog/log"
)

// Status is the qualitative label attached to a predicted arrival.
type Status string

const (
	StatusOnTime  Status = "on_time"
	StatusDelayed Status = "delayed"
	StatusEarly   Status = "early"
	StatusUnknown Status = "unknown"
)

// SampleSource provides completed journey durations for a route and data
// source, in seconds, most recently started first, capped at limit.
type SampleSource interface {
	JourneyDurations(ctx context.Context, routeIdentifier string, source transit.DataSource, limit int64) ([]float64, error)
}

const (
	maxUserSamples     = 100
	maxOfficialSamples = 50

	// With at least this many user samples we trust them exclusively
	userOnlyThreshold = 20

	// Minimum sample count for the median/percentile branch
	reliableStatsThreshold = 5

	// Durations at or below this are treated as data entry noise
	minimumSampleDuration = time.Minute

	// With no usable data the estimate is start plus this
	fallbackDuration = 30 * time.Minute

	// Mean-branch delay cutoff when stats are thin
	highDurationThreshold = 45 * time.Minute

	// Start times further out than this are treated as unreliable input
	maximumFutureStart = 24 * time.Hour
)

// Engine predicts a journey's arrival time and delay status from
// historical duration samples, preferring crowd submitted data and
// falling back to official seeded samples when it is scarce.
type Engine struct {
	Samples SampleSource

	// Now is swappable for tests. Defaults to time.Now.
	Now func() time.Time
}

func (e *Engine) now() time.Time {
	if e.Now != nil {
		return e.Now()
	}
	return time.Now()
}

// Predict returns the predicted arrival timestamp and status for a
// journey on the route starting at start. Data scarcity is never an
// error: it degrades to the fallback estimate with status unknown. Only
// sample source failures are returned.
func (e *Engine) Predict(ctx context.Context, routeIdentifier string, start time.Time) (time.Time, Status, error) {
	// Requests that far in the future say more about the input than the
	// route, so skip the history entirely
	if start.After(e.now().UTC().Add(maximumFutureStart)) {
		return e.fallback(routeIdentifier, start, "future_start"), StatusUnknown, nil
	}

	userDurations, err := e.fetchDurations(ctx, routeIdentifier, transit.DataSourceUser, maxUserSamples)
	if err != nil {
		return time.Time{}, StatusUnknown, err
	}

	var durations []float64
	var source string

	if len(userDurations) >= userOnlyThreshold {
		durations = userDurations
		source = "user_only"
	} else {
		officialDurations, err := e.fetchDurations(ctx, routeIdentifier, transit.DataSourceOfficial, maxOfficialSamples)
		if err != nil {
			return time.Time{}, StatusUnknown, err
		}

		// User samples go first so they dominate whenever a consumer
		// only looks at a prefix
		durations = append(durations, userDurations...)
		durations = append(durations, officialDurations...)

		if len(userDurations) > 0 {
			source = "blended"
		} else {
			source = "official"
		}
	}

	if len(durations) == 0 {
		return e.fallback(routeIdentifier, start, "no_samples"), StatusUnknown, nil
	}

	meanDuration := mean(durations)
	reliableStats := len(durations) >= reliableStatsThreshold

	var pointEstimate float64
	if reliableStats {
		pointEstimate = median(durations)
	} else {
		pointEstimate = meanDuration
	}

	estimate := time.Duration(pointEstimate * float64(time.Second))
	predictedArrival := start.Add(estimate)

	var status Status
	if reliableStats {
		percentile75 := nearestRankPercentile(durations, 0.75)

		switch {
		case pointEstimate > 1.25*percentile75:
			status = StatusDelayed
		case pointEstimate < 0.75*meanDuration:
			status = StatusEarly
		default:
			status = StatusOnTime
		}
	} else {
		if estimate > highDurationThreshold {
			status = StatusDelayed
		} else {
			status = StatusOnTime
		}
	}

	metrics.PredictionsComputed.WithLabelValues(source).Inc()
	log.Debug().
		Str("route", routeIdentifier).
		Str("source", source).
		Int("samples", len(durations)).
		Str("eta", estimate.String()).
		Msg("Computed journey prediction")

	return predictedArrival, status, nil
}

func (e *Engine) fetchDurations(ctx context.Context, routeIdentifier string, source transit.DataSource, limit int64) ([]float64, error) {
	durations, err := e.Samples.JourneyDurations(ctx, routeIdentifier, source, limit)
	if err != nil {
		return nil, err
	}

	var valid []float64
	for _, duration := range durations {
		// Sub-minute journeys are data entry noise
		if duration <= minimumSampleDuration.Seconds() {
			continue
		}
		valid = append(valid, duration)
	}

	return valid, nil
}

func (e *Engine) fallback(routeIdentifier string, start time.Time, reason string) time.Time {
	metrics.PredictionsComputed.WithLabelValues("fallback").Inc()
	log.Debug().
		Str("route", routeIdentifier).
		Str("reason", reason).
		Msg("Falling back to default journey estimate")

	return start.Add(fallbackDuration)
}
