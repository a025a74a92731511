// Package dataset parses and loads the whitespace-delimited station and trip files.
package dataset

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/randytsao24/divvystats/internal/models"
)

// ErrUnreadable is returned when a dataset file cannot be opened or read.
var ErrUnreadable = errors.New("unable to open file")

// LoadStats describes the outcome of loading one dataset file.
type LoadStats struct {
	Records int
	Skipped int
}

// LoadStations reads every parseable station line from path, in file order.
func LoadStations(path string) ([]models.Station, LoadStats, error) {
	return loadFile(path, ParseStation)
}

// LoadTrips reads every parseable trip line from path, in file order.
func LoadTrips(path string) ([]models.Trip, LoadStats, error) {
	return loadFile(path, ParseTrip)
}

// ReadStations parses station lines from r until EOF.
func ReadStations(r io.Reader) ([]models.Station, LoadStats, error) {
	return readLines(r, ParseStation)
}

// ReadTrips parses trip lines from r until EOF.
func ReadTrips(r io.Reader) ([]models.Trip, LoadStats, error) {
	return readLines(r, ParseTrip)
}

func loadFile[T any](path string, parse func(string) (T, bool)) ([]T, LoadStats, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, LoadStats{}, fmt.Errorf("%w %q: %w", ErrUnreadable, path, err)
	}
	defer file.Close()

	records, stats, err := readLines(file, parse)
	if err != nil {
		return nil, LoadStats{}, fmt.Errorf("%w %q: %w", ErrUnreadable, path, err)
	}

	slog.Info("loaded dataset",
		"path", path,
		"records", stats.Records,
		"skipped", stats.Skipped,
	)
	return records, stats, nil
}

// readLines uses a bufio.Reader rather than a Scanner so that arbitrarily
// long lines are accepted.
func readLines[T any](r io.Reader, parse func(string) (T, bool)) ([]T, LoadStats, error) {
	var (
		records []T
		stats   LoadStats
	)

	reader := bufio.NewReader(r)
	for {
		line, err := reader.ReadString('\n')
		if line != "" {
			if rec, ok := parse(line); ok {
				records = append(records, rec)
				stats.Records++
			} else {
				stats.Skipped++
			}
		}
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, LoadStats{}, fmt.Errorf("reading lines: %w", err)
		}
	}

	return records, stats, nil
}
