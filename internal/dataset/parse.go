package dataset

import (
	"strconv"
	"strings"

	"github.com/randytsao24/divvystats/internal/models"
)

// ParseStation reads one "id capacity lat lon name..." line.
// The name is the remainder of the line and may contain spaces. The second
// return value is false when capacity, lat or lon are missing entirely.
func ParseStation(line string) (models.Station, bool) {
	rest := trimNewline(line)

	id, rest := nextField(rest)
	capacity, rest := nextField(rest)
	lat, rest := nextField(rest)
	lng, rest := nextField(rest)

	if capacity == "" || lat == "" || lng == "" {
		return models.Station{}, false
	}

	return models.Station{
		ID:       id,
		Capacity: Atoi(capacity),
		Lat:      Atof(lat),
		Lng:      Atof(lng),
		Name:     strings.TrimLeft(rest, " \t"),
	}, true
}

// ParseTrip reads one "id bikeId startId endId duration startTime" line.
// The start time is optional; only a missing duration drops the line.
func ParseTrip(line string) (models.Trip, bool) {
	rest := trimNewline(line)

	id, rest := nextField(rest)
	bike, rest := nextField(rest)
	start, rest := nextField(rest)
	end, rest := nextField(rest)
	duration, rest := nextField(rest)
	startTime, _ := nextField(rest)

	if duration == "" {
		return models.Trip{}, false
	}

	return models.Trip{
		ID:             id,
		BikeID:         bike,
		StartStationID: start,
		EndStationID:   end,
		Duration:       Atoi(duration),
		StartTime:      startTime,
	}, true
}

// nextField returns the next space or tab separated token and the unread remainder.
func nextField(s string) (string, string) {
	s = strings.TrimLeft(s, " \t")
	end := strings.IndexAny(s, " \t")
	if end < 0 {
		return s, ""
	}
	return s[:end], s[end:]
}

func trimNewline(s string) string {
	s = strings.TrimSuffix(s, "\n")
	return strings.TrimSuffix(s, "\r")
}

// Atoi converts the leading integer of s, returning 0 when there is none.
// Trailing garbage is ignored and values saturate at the int range.
func Atoi(s string) int {
	s = strings.TrimLeft(s, " \t")
	n := numericPrefix(s, false)
	if n == 0 {
		return 0
	}
	// on ErrRange strconv hands back the saturated value
	v, _ := strconv.Atoi(s[:n])
	return v
}

// Atof converts the leading decimal number of s, returning 0 when there is none.
func Atof(s string) float64 {
	s = strings.TrimLeft(s, " \t")
	n := numericPrefix(s, true)
	if n == 0 {
		return 0
	}
	v, _ := strconv.ParseFloat(s[:n], 64)
	return v
}

// numericPrefix returns the length of the longest prefix of s that forms a
// number, or 0 if s does not start with a digit after an optional sign.
func numericPrefix(s string, float bool) int {
	i := 0
	if i < len(s) && (s[i] == '+' || s[i] == '-') {
		i++
	}
	digits := 0
	for i < len(s) && isDigit(s[i]) {
		i++
		digits++
	}
	if float && i < len(s) && s[i] == '.' {
		j := i + 1
		frac := 0
		for j < len(s) && isDigit(s[j]) {
			j++
			frac++
		}
		if digits+frac > 0 {
			i = j
			digits += frac
		}
	}
	if digits == 0 {
		return 0
	}
	if float && i < len(s) && (s[i] == 'e' || s[i] == 'E') {
		j := i + 1
		if j < len(s) && (s[j] == '+' || s[j] == '-') {
			j++
		}
		exp := 0
		for j < len(s) && isDigit(s[j]) {
			j++
			exp++
		}
		if exp > 0 {
			i = j
		}
	}
	return i
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}
