package timetable

import "testing"

func TestTripsForRoute(t *testing.T) {
	content := `// Translink Metro schedule extract
JQ 94B O
QP 94B001 X 1111100 0730 0745
QP 94B002 X 1111100 0900 0918

JQ 26A I
QP 26A001 X 1111111 0810 0845
`

	trips := TripsForRoute(content, "94B")
	if len(trips) != 2 {
		t.Fatalf("expected 2 trips, got %d", len(trips))
	}

	first := trips[0]
	if first.TripRef != "94B001" {
		t.Errorf("trip ref = %q, want 94B001", first.TripRef)
	}
	if first.RouteCode != "94B" {
		t.Errorf("route code = %q, want 94B", first.RouteCode)
	}
	if first.OperatingDays != "1111100" {
		t.Errorf("operating days = %q, want 1111100", first.OperatingDays)
	}
	if first.StartTime != "07:30" || first.EndTime != "07:45" {
		t.Errorf("times = %q/%q, want 07:30/07:45", first.StartTime, first.EndTime)
	}

	// Output ordering matches file order
	if trips[1].StartTime != "09:00" {
		t.Errorf("second trip start = %q, want 09:00", trips[1].StartTime)
	}
}

func TestTripsForRouteSkipsMalformedRecords(t *testing.T) {
	content := `JQ 94B O
QP 94B001
QP 94B002 X 1111100 0730 0745
`

	trips := TripsForRoute(content, "94B")
	if len(trips) != 1 {
		t.Fatalf("expected exactly 1 trip, got %d", len(trips))
	}
	if trips[0].StartTime != "07:30" || trips[0].EndTime != "07:45" {
		t.Errorf("times = %q/%q, want 07:30/07:45", trips[0].StartTime, trips[0].EndTime)
	}
}

func TestTripsForRouteIgnoresOtherRoutes(t *testing.T) {
	content := `JQ 26A I
QP 26A001 X 1111111 0810 0845
`

	if trips := TripsForRoute(content, "94B"); len(trips) != 0 {
		t.Fatalf("expected no trips, got %d", len(trips))
	}
}

func TestTripsForRouteHeaderSwitchesContext(t *testing.T) {
	// A trip record before any header for the target route must not match
	content := `QP 94B000 X 1111100 0600 0630
JQ 94B O
QP 94B001 X 1111100 0730 0745
JQ 26A I
QP 94B002 X 1111100 0800 0815
`

	trips := TripsForRoute(content, "94B")
	if len(trips) != 1 {
		t.Fatalf("expected 1 trip, got %d", len(trips))
	}
	if trips[0].TripRef != "94B001" {
		t.Errorf("trip ref = %q, want 94B001", trips[0].TripRef)
	}
}

func TestTripsForRouteEmptyContent(t *testing.T) {
	if trips := TripsForRoute("", "94B"); len(trips) != 0 {
		t.Fatalf("expected no trips from empty content, got %d", len(trips))
	}
}

func TestFormatClockTime(t *testing.T) {
	tests := []struct {
		raw    string
		want   string
		wantOK bool
	}{
		{"0730", "07:30", true},
		{"2359", "23:59", true},
		{"730", "", false},
		{"07300", "", false},
		{"07a0", "", false},
		{"", "", false},
	}
	for _, tt := range tests {
		got, ok := formatClockTime(tt.raw)
		if got != tt.want || ok != tt.wantOK {
			t.Errorf("formatClockTime(%q) = %q, %v, want %q, %v", tt.raw, got, ok, tt.want, tt.wantOK)
		}
	}
}
