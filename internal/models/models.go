// Package models defines shared data types
package models

// Station represents a bike dock location
type Station struct {
	ID       string  `json:"station_id"`
	Capacity int     `json:"capacity"`
	Lat      float64 `json:"lat"`
	Lng      float64 `json:"lng"`
	Name     string  `json:"name"`
}

// Trip represents a single bike rental
type Trip struct {
	ID             string `json:"trip_id"`
	BikeID         string `json:"bike_id"`
	StartStationID string `json:"start_station_id"`
	EndStationID   string `json:"end_station_id"`
	Duration       int    `json:"duration_seconds"`
	StartTime      string `json:"start_time"`
}

// StationWithDistance is a Station with distance from a reference point
type StationWithDistance struct {
	Station
	DistanceMiles float64 `json:"distance_miles"`
}

// StationSummary is a Station with the number of trips that start or end there
type StationSummary struct {
	Station
	TripCount int `json:"trip_count"`
}

// Summary holds the aggregate dataset statistics
type Summary struct {
	Stations      int `json:"stations"`
	Trips         int `json:"trips"`
	TotalCapacity int `json:"total_capacity"`
}
