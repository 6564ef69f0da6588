package prediction

import (
	"math"
	"testing"
)

func TestMean(t *testing.T) {
	tests := []struct {
		name    string
		samples []float64
		want    float64
	}{
		{"empty", nil, 0},
		{"single", []float64{600}, 600},
		{"several", []float64{600, 620, 640, 660, 680, 1800}, 833.3333},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := mean(tt.samples); math.Abs(got-tt.want) > 0.001 {
				t.Errorf("mean = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestMedian(t *testing.T) {
	tests := []struct {
		name    string
		samples []float64
		want    float64
	}{
		{"empty", nil, 0},
		{"odd count", []float64{900, 300, 600}, 600},
		{"even count averages middle pair", []float64{600, 620, 640, 660, 680, 1800}, 650},
		{"unsorted input", []float64{1800, 680, 600, 660, 640, 620}, 650},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := median(tt.samples); got != tt.want {
				t.Errorf("median = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestNearestRankPercentile(t *testing.T) {
	// floor(0.75 * 6) = 4 into the ascending sort
	samples := []float64{600, 620, 640, 660, 680, 1800}
	if got := nearestRankPercentile(samples, 0.75); got != 680 {
		t.Errorf("p75 = %v, want 680", got)
	}

	// Index clamps to the last element
	if got := nearestRankPercentile([]float64{100, 200}, 1.0); got != 200 {
		t.Errorf("p100 = %v, want 200", got)
	}

	if got := nearestRankPercentile(nil, 0.75); got != 0 {
		t.Errorf("empty p75 = %v, want 0", got)
	}
}

func TestStatsDoNotMutateInput(t *testing.T) {
	samples := []float64{900, 300, 600}
	median(samples)
	nearestRankPercentile(samples, 0.75)
	if samples[0] != 900 || samples[1] != 300 || samples[2] != 600 {
		t.Errorf("input slice was reordered: %v", samples)
	}
}
