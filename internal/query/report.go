package query

import (
	"fmt"
	"io"

	"github.com/randytsao24/divvystats/internal/models"
)

const noneFound = " none found\n"

// WriteSummary prints the stats report.
func WriteSummary(w io.Writer, s models.Summary) {
	fmt.Fprintf(w, " stations: %d\n", s.Stations)
	fmt.Fprintf(w, " trips: %d\n", s.Trips)
	fmt.Fprintf(w, " total bike capacity: %d\n", s.TotalCapacity)
}

// WriteDurations prints one line per duration bucket.
func WriteDurations(w io.Writer, h DurationHistogram) {
	for i, count := range h {
		fmt.Fprintf(w, " trips %s: %d\n", DurationLabels[i], count)
	}
}

// WriteStartingHours prints all 24 hour slots, including empty ones.
func WriteStartingHours(w io.Writer, h HourHistogram) {
	for hour, count := range h.Counts {
		fmt.Fprintf(w, " %d: %d\n", hour, count)
	}
}

// WriteNearby prints the stations found by NearMe.
func WriteNearby(w io.Writer, stations []models.StationWithDistance) {
	if len(stations) == 0 {
		io.WriteString(w, noneFound)
		return
	}
	for _, s := range stations {
		fmt.Fprintf(w, " station %s (%s): %g miles\n", s.ID, s.Name, s.DistanceMiles)
	}
}

// WriteStations prints the stations found by Find or Stations.
func WriteStations(w io.Writer, stations []models.StationSummary) {
	if len(stations) == 0 {
		io.WriteString(w, noneFound)
		return
	}
	for _, s := range stations {
		fmt.Fprintf(w, " %s (%s) @ (%g, %g), %d capacity, %d trips\n",
			s.Name, s.ID, s.Lat, s.Lng, s.Capacity, s.TripCount)
	}
}
