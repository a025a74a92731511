package query

import "github.com/randytsao24/divvystats/internal/dataset"

// Duration bucket upper bounds in seconds, inclusive.
const (
	halfHour   = 1800
	oneHour    = 3600
	twoHours   = 7200
	fiveHours  = 18000
	numBuckets = 5
)

// DurationLabels names the duration buckets in report order.
var DurationLabels = [numBuckets]string{
	"<= 30 mins",
	"30..60 mins",
	"1-2 hrs",
	"2-5 hrs",
	"> 5 hrs",
}

// DurationHistogram counts trips per duration bucket.
type DurationHistogram [numBuckets]int

// HourHistogram counts trips per starting hour. Skipped holds trips whose
// start time has no hour in 0..23.
type HourHistogram struct {
	Counts  [24]int
	Skipped int
}

// DurationBucket returns the bucket index for a duration in seconds.
// Boundary values belong to the lower bucket.
func DurationBucket(seconds int) int {
	switch {
	case seconds <= halfHour:
		return 0
	case seconds <= oneHour:
		return 1
	case seconds <= twoHours:
		return 2
	case seconds <= fiveHours:
		return 3
	default:
		return 4
	}
}

// Durations partitions the trips into the five duration buckets.
func (e *Engine) Durations() DurationHistogram {
	var h DurationHistogram
	for _, trip := range e.trips {
		h[DurationBucket(trip.Duration)]++
	}
	return h
}

// StartHour extracts the leading hour from an "H:MM" or "HH:MM" start time.
// ok is false when there is no leading number or it falls outside 0..23.
func StartHour(startTime string) (int, bool) {
	if !hasLeadingDigit(startTime) {
		return 0, false
	}
	hour := dataset.Atoi(startTime)
	if hour < 0 || hour > 23 {
		return 0, false
	}
	return hour, true
}

// StartingHours counts trips by the hour of their start time.
func (e *Engine) StartingHours() HourHistogram {
	var h HourHistogram
	for _, trip := range e.trips {
		hour, ok := StartHour(trip.StartTime)
		if !ok {
			h.Skipped++
			continue
		}
		h.Counts[hour]++
	}
	return h
}

func hasLeadingDigit(s string) bool {
	if s != "" && (s[0] == '+' || s[0] == '-') {
		s = s[1:]
	}
	return s != "" && s[0] >= '0' && s[0] <= '9'
}
