// Package query answers read-only questions about the loaded station and trip datasets.
package query

import (
	"cmp"
	"slices"
	"strings"

	"github.com/randytsao24/divvystats/internal/location"
	"github.com/randytsao24/divvystats/internal/models"
)

// DistanceFunc returns the great-circle distance in miles between two points.
type DistanceFunc func(lat1, lng1, lat2, lng2 float64) float64

// Engine runs queries over immutable station and trip datasets.
// The slices passed to New must not be modified afterwards.
type Engine struct {
	stations   []models.Station
	trips      []models.Trip
	tripCounts map[string]int
	distance   DistanceFunc
}

// Option configures an Engine
type Option func(*Engine)

// WithDistance replaces the great-circle distance function used by NearMe.
func WithDistance(fn DistanceFunc) Option {
	return func(e *Engine) {
		e.distance = fn
	}
}

// New creates an engine and indexes trip counts per station id.
func New(stations []models.Station, trips []models.Trip, opts ...Option) *Engine {
	e := &Engine{
		stations:   stations,
		trips:      trips,
		tripCounts: indexTripCounts(trips),
		distance:   location.GreatCircleMiles,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// A trip that starts and ends at the same station counts once for it.
func indexTripCounts(trips []models.Trip) map[string]int {
	counts := make(map[string]int)
	for _, trip := range trips {
		counts[trip.StartStationID]++
		if trip.EndStationID != trip.StartStationID {
			counts[trip.EndStationID]++
		}
	}
	return counts
}

// StationCount returns the number of loaded stations
func (e *Engine) StationCount() int {
	return len(e.stations)
}

// TripCount returns the number of loaded trips
func (e *Engine) TripCount() int {
	return len(e.trips)
}

// Summary reports the station count, trip count and total bike capacity.
func (e *Engine) Summary() models.Summary {
	total := 0
	for _, station := range e.stations {
		total += station.Capacity
	}
	return models.Summary{
		Stations:      len(e.stations),
		Trips:         len(e.trips),
		TotalCapacity: total,
	}
}

// TripsForStation returns how many trips start or end at the station id.
func (e *Engine) TripsForStation(stationID string) int {
	return e.tripCounts[stationID]
}

// NearMe returns the stations within maxMiles of the point, closest first.
// Stations at equal distance keep their file order.
func (e *Engine) NearMe(lat, lng, maxMiles float64) []models.StationWithDistance {
	var results []models.StationWithDistance

	for _, station := range e.stations {
		dist := e.distance(lat, lng, station.Lat, station.Lng)
		if dist <= maxMiles {
			results = append(results, models.StationWithDistance{
				Station:       station,
				DistanceMiles: dist,
			})
		}
	}

	slices.SortStableFunc(results, func(a, b models.StationWithDistance) int {
		return cmp.Compare(a.DistanceMiles, b.DistanceMiles)
	})

	return results
}

// Find returns the stations whose name contains term (case-sensitive),
// sorted by name.
func (e *Engine) Find(term string) []models.StationSummary {
	return e.summarize(func(s models.Station) bool {
		return strings.Contains(s.Name, term)
	})
}

// Stations returns every station sorted by name.
func (e *Engine) Stations() []models.StationSummary {
	return e.summarize(func(models.Station) bool { return true })
}

func (e *Engine) summarize(keep func(models.Station) bool) []models.StationSummary {
	var results []models.StationSummary

	for _, station := range e.stations {
		if !keep(station) {
			continue
		}
		results = append(results, models.StationSummary{
			Station:   station,
			TripCount: e.tripCounts[station.ID],
		})
	}

	slices.SortStableFunc(results, func(a, b models.StationSummary) int {
		return strings.Compare(a.Name, b.Name)
	})

	return results
}
