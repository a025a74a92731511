package query

import (
	"testing"

	"github.com/randytsao24/divvystats/internal/location"
	"github.com/randytsao24/divvystats/internal/models"
)

func testStations() []models.Station {
	return []models.Station{
		{ID: "S1", Capacity: 10, Lat: 41.0, Lng: -87.0, Name: "Park Place"},
		{ID: "S2", Capacity: 15, Lat: 41.01, Lng: -87.0, Name: "Clark & Lake"},
		{ID: "S3", Capacity: 20, Lat: 41.1, Lng: -87.1, Name: "Grant Park"},
		{ID: "S4", Capacity: 5, Lat: 42.0, Lng: -88.0, Name: "Lincoln Park"},
	}
}

func TestSummary(t *testing.T) {
	trips := []models.Trip{{ID: "T1"}, {ID: "T2"}}
	got := New(testStations(), trips).Summary()

	want := models.Summary{Stations: 4, Trips: 2, TotalCapacity: 50}
	if got != want {
		t.Errorf("Summary() = %+v, want %+v", got, want)
	}
}

func TestSummaryEmpty(t *testing.T) {
	got := New(nil, nil).Summary()
	if got != (models.Summary{}) {
		t.Errorf("Summary() = %+v, want zero", got)
	}
}

func TestDurationBucket(t *testing.T) {
	tests := []struct {
		seconds int
		want    int
	}{
		{-50, 0},
		{0, 0},
		{1800, 0},
		{1801, 1},
		{3600, 1},
		{3601, 2},
		{7200, 2},
		{7201, 3},
		{18000, 3},
		{18001, 4},
		{1 << 30, 4},
	}

	for _, tt := range tests {
		if got := DurationBucket(tt.seconds); got != tt.want {
			t.Errorf("DurationBucket(%d) = %d, want %d", tt.seconds, got, tt.want)
		}
	}
}

func TestDurationsPartition(t *testing.T) {
	durations := []int{600, 1800, 1801, 3600, 3601, 7200, 9000, 18000, 18001, 90000}
	trips := make([]models.Trip, len(durations))
	for i, d := range durations {
		trips[i] = models.Trip{Duration: d}
	}

	got := New(nil, trips).Durations()

	want := DurationHistogram{2, 2, 2, 2, 2}
	if got != want {
		t.Errorf("Durations() = %v, want %v", got, want)
	}

	total := 0
	for _, c := range got {
		total += c
	}
	if total != len(trips) {
		t.Errorf("bucket total = %d, want %d", total, len(trips))
	}
}

func TestStartHour(t *testing.T) {
	tests := []struct {
		in     string
		want   int
		wantOK bool
	}{
		{"5:30", 5, true},
		{"05:45", 5, true},
		{"0:00", 0, true},
		{"23:10", 23, true},
		{"24:00", 0, false},
		{"-1:00", 0, false},
		{"", 0, false},
		{"noon", 0, false},
	}

	for _, tt := range tests {
		got, ok := StartHour(tt.in)
		if got != tt.want || ok != tt.wantOK {
			t.Errorf("StartHour(%q) = %d, %v; want %d, %v", tt.in, got, ok, tt.want, tt.wantOK)
		}
	}
}

func TestStartingHours(t *testing.T) {
	trips := []models.Trip{
		{StartTime: "5:30"},
		{StartTime: "05:45"},
		{StartTime: "23:10"},
		{StartTime: "99:00"},
	}

	h := New(nil, trips).StartingHours()

	for hour, count := range h.Counts {
		want := 0
		switch hour {
		case 5:
			want = 2
		case 23:
			want = 1
		}
		if count != want {
			t.Errorf("hour %d = %d, want %d", hour, count, want)
		}
	}
	if h.Skipped != 1 {
		t.Errorf("Skipped = %d, want 1", h.Skipped)
	}
}

func TestTripsForStation(t *testing.T) {
	trips := []models.Trip{
		{StartStationID: "S", EndStationID: "X"},
		{StartStationID: "Y", EndStationID: "S"},
		{StartStationID: "S", EndStationID: "S"},
		{StartStationID: "Y", EndStationID: "X"},
	}
	e := New(nil, trips)

	if got := e.TripsForStation("S"); got != 3 {
		t.Errorf("TripsForStation(S) = %d, want 3", got)
	}
	if got := e.TripsForStation("X"); got != 2 {
		t.Errorf("TripsForStation(X) = %d, want 2", got)
	}
	if got := e.TripsForStation("missing"); got != 0 {
		t.Errorf("TripsForStation(missing) = %d, want 0", got)
	}
}

func TestNearMe(t *testing.T) {
	e := New(testStations(), nil)

	t.Run("zero radius at station", func(t *testing.T) {
		got := e.NearMe(41.0, -87.0, 0)
		if len(got) != 1 || got[0].ID != "S1" || got[0].DistanceMiles != 0 {
			t.Fatalf("NearMe = %+v, want only S1 at 0", got)
		}
	})

	t.Run("boundary", func(t *testing.T) {
		d := location.GreatCircleMiles(41.0, -87.0, 41.01, -87.0)

		got := e.NearMe(41.0, -87.0, d)
		if len(got) != 2 || got[1].ID != "S2" {
			t.Fatalf("NearMe(max=%v) = %+v, want S1 then S2", d, got)
		}

		got = e.NearMe(41.0, -87.0, d-0.001)
		if len(got) != 1 {
			t.Fatalf("NearMe(max=%v) = %+v, want S2 excluded", d-0.001, got)
		}
	})

	t.Run("sorted ascending", func(t *testing.T) {
		got := e.NearMe(41.2, -87.2, 500)
		if len(got) != 4 {
			t.Fatalf("len = %d, want 4", len(got))
		}
		for i := 1; i < len(got); i++ {
			if got[i-1].DistanceMiles > got[i].DistanceMiles {
				t.Errorf("not sorted at %d: %v > %v", i, got[i-1].DistanceMiles, got[i].DistanceMiles)
			}
		}
		if got[0].ID != "S3" {
			t.Errorf("closest = %s, want S3", got[0].ID)
		}
	})

	t.Run("none", func(t *testing.T) {
		if got := e.NearMe(0, 0, 1); len(got) != 0 {
			t.Errorf("NearMe = %+v, want empty", got)
		}
	})
}

func TestNearMeTiesKeepFileOrder(t *testing.T) {
	stations := []models.Station{
		{ID: "B", Name: "b"},
		{ID: "A", Name: "a"},
		{ID: "C", Name: "c"},
	}
	flat := func(lat1, lng1, lat2, lng2 float64) float64 { return 1 }

	got := New(stations, nil, WithDistance(flat)).NearMe(0, 0, 1)

	want := []string{"B", "A", "C"}
	for i, id := range want {
		if got[i].ID != id {
			t.Errorf("got[%d] = %s, want %s", i, got[i].ID, id)
		}
	}
}

func TestFind(t *testing.T) {
	trips := []models.Trip{
		{StartStationID: "S1", EndStationID: "S1"},
		{StartStationID: "S3", EndStationID: "S4"},
		{StartStationID: "S4", EndStationID: "S2"},
	}
	e := New(testStations(), trips)

	got := e.Find("Park")
	wantNames := []string{"Grant Park", "Lincoln Park", "Park Place"}
	wantTrips := []int{1, 2, 1}

	if len(got) != len(wantNames) {
		t.Fatalf("Find(Park) returned %d stations, want %d", len(got), len(wantNames))
	}
	for i := range wantNames {
		if got[i].Name != wantNames[i] {
			t.Errorf("got[%d].Name = %q, want %q", i, got[i].Name, wantNames[i])
		}
		if got[i].TripCount != wantTrips[i] {
			t.Errorf("got[%d].TripCount = %d, want %d", i, got[i].TripCount, wantTrips[i])
		}
	}

	if got := e.Find("park"); len(got) != 0 {
		t.Errorf("Find is case-sensitive, got %+v", got)
	}
	if got := e.Find("Nowhere"); len(got) != 0 {
		t.Errorf("Find(Nowhere) = %+v, want empty", got)
	}
}

func TestStationsSortedStable(t *testing.T) {
	stations := []models.Station{
		{ID: "2", Name: "Same"},
		{ID: "1", Name: "Alpha"},
		{ID: "3", Name: "Same"},
		{ID: "2", Name: "Beta"},
	}
	trips := []models.Trip{{StartStationID: "2", EndStationID: "1"}}

	got := New(stations, trips).Stations()

	want := []struct {
		id, name string
		trips    int
	}{
		{"1", "Alpha", 1},
		{"2", "Beta", 1},
		{"2", "Same", 1},
		{"3", "Same", 0},
	}
	if len(got) != len(want) {
		t.Fatalf("len = %d, want %d", len(got), len(want))
	}
	for i, w := range want {
		if got[i].ID != w.id || got[i].Name != w.name || got[i].TripCount != w.trips {
			t.Errorf("got[%d] = %+v, want %+v", i, got[i], w)
		}
	}
}

func TestQueriesDoNotMutate(t *testing.T) {
	stations := testStations()
	e := New(stations, nil)

	e.Stations()
	e.Find("Park")
	e.NearMe(41, -87, 1000)

	for i, s := range testStations() {
		if stations[i] != s {
			t.Errorf("stations[%d] changed: %+v", i, stations[i])
		}
	}
}
