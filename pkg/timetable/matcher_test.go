package timetable

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestNearestTrip(t *testing.T) {
	trips := []ScheduledTrip{
		{TripRef: "T1", StartTime: "07:30", EndTime: "07:45"},
		{TripRef: "T2", StartTime: "09:00", EndTime: "09:18"},
	}

	target := time.Date(2024, 3, 14, 8, 0, 0, 0, time.UTC)

	match := NearestTrip(trips, target)
	if match == nil {
		t.Fatal("expected a match")
	}
	// 07:30 is 30 minutes away, 09:00 is 60
	if match.TripRef != "T1" {
		t.Errorf("matched %s, want T1", match.TripRef)
	}
	if match.StartTime != "07:30" || match.EndTime != "07:45" {
		t.Errorf("times = %q/%q, want 07:30/07:45", match.StartTime, match.EndTime)
	}
}

func TestNearestTripIgnoresDate(t *testing.T) {
	trips := []ScheduledTrip{
		{TripRef: "T1", StartTime: "07:30", EndTime: "07:45"},
	}

	// Different day, same wall clock distance
	target := time.Date(2031, 12, 25, 7, 29, 0, 0, time.UTC)

	match := NearestTrip(trips, target)
	if match == nil || match.TripRef != "T1" {
		t.Fatalf("expected T1 match, got %+v", match)
	}
}

func TestNearestTripTieGoesToFirst(t *testing.T) {
	trips := []ScheduledTrip{
		{TripRef: "T1", StartTime: "07:30", EndTime: "07:45"},
		{TripRef: "T2", StartTime: "08:30", EndTime: "08:45"},
	}

	// 08:00 is exactly 30 minutes from both
	target := time.Date(2024, 3, 14, 8, 0, 0, 0, time.UTC)

	match := NearestTrip(trips, target)
	if match == nil || match.TripRef != "T1" {
		t.Fatalf("tie should go to the first trip in file order, got %+v", match)
	}
}

func TestNearestTripEmpty(t *testing.T) {
	if match := NearestTrip(nil, time.Now()); match != nil {
		t.Fatalf("expected nil for empty trip list, got %+v", match)
	}
}

func TestNearestTripSkipsUnparsableTimes(t *testing.T) {
	trips := []ScheduledTrip{
		{TripRef: "T1", StartTime: "bogus", EndTime: "07:45"},
		{TripRef: "T2", StartTime: "09:00", EndTime: "09:18"},
	}

	match := NearestTrip(trips, time.Date(2024, 3, 14, 7, 0, 0, 0, time.UTC))
	if match == nil || match.TripRef != "T2" {
		t.Fatalf("expected T2, got %+v", match)
	}
}

func TestOfficialTimetableMissingFile(t *testing.T) {
	match := OfficialTimetable(filepath.Join(t.TempDir(), "nope.cif"), "94B", time.Now())
	if match != nil {
		t.Fatalf("missing file should yield nil, got %+v", match)
	}
}

func TestOfficialTimetable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "metro.cif")
	content := `JQ 94B O
QP 94B001 X 1111100 0730 0745
QP 94B002 X 1111100 0900 0918
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	match := OfficialTimetable(path, "94B", time.Date(2024, 3, 14, 8, 0, 0, 0, time.UTC))
	if match == nil {
		t.Fatal("expected a match")
	}
	if match.StartTime != "07:30" {
		t.Errorf("start = %q, want 07:30", match.StartTime)
	}

	if other := OfficialTimetable(path, "26A", time.Now()); other != nil {
		t.Fatalf("route with no trips should yield nil, got %+v", other)
	}
}
