// Package cli implements the interactive read-eval loop over the query engine.
package cli

import (
	"errors"
	"strconv"
	"strings"
)

// Command names understood by the dispatcher.
const (
	CmdQuit     = "#"
	CmdStats    = "stats"
	CmdDuration = "durations"
	CmdStarting = "starting"
	CmdNearMe   = "nearme"
	CmdStations = "stations"
	CmdFind     = "find"
)

var (
	// ErrInvalidCommand is returned for an unknown command word.
	ErrInvalidCommand = errors.New("invalid command")
	// ErrInvalidArguments is returned when a known command has missing or malformed arguments.
	ErrInvalidArguments = errors.New("invalid arguments")
)

// Command is one parsed input line.
type Command struct {
	Name string

	// nearme
	Lat, Lng, MaxMiles float64

	// find
	Term string
}

// Key returns a normalized form of the command, used to memoize its output.
func (c Command) Key() string {
	switch c.Name {
	case CmdNearMe:
		return CmdNearMe + " " +
			strconv.FormatFloat(c.Lat, 'g', -1, 64) + " " +
			strconv.FormatFloat(c.Lng, 'g', -1, 64) + " " +
			strconv.FormatFloat(c.MaxMiles, 'g', -1, 64)
	case CmdFind:
		return CmdFind + " " + c.Term
	default:
		return c.Name
	}
}

// ParseCommand parses one input line. Surrounding whitespace is ignored;
// the find term is everything after "find " taken verbatim.
func ParseCommand(line string) (Command, error) {
	line = strings.TrimSpace(line)

	switch line {
	case CmdQuit, CmdStats, CmdDuration, CmdStarting, CmdStations:
		return Command{Name: line}, nil
	}

	if line == CmdFind {
		return Command{Name: CmdFind}, ErrInvalidArguments
	}
	if term, ok := strings.CutPrefix(line, CmdFind+" "); ok {
		return Command{Name: CmdFind, Term: term}, nil
	}

	fields := strings.Fields(line)
	if len(fields) > 0 && fields[0] == CmdNearMe {
		if len(fields) != 4 {
			return Command{Name: CmdNearMe}, ErrInvalidArguments
		}
		var vals [3]float64
		for i, f := range fields[1:] {
			v, err := strconv.ParseFloat(f, 64)
			if err != nil {
				return Command{Name: CmdNearMe}, ErrInvalidArguments
			}
			vals[i] = v
		}
		return Command{Name: CmdNearMe, Lat: vals[0], Lng: vals[1], MaxMiles: vals[2]}, nil
	}

	return Command{}, ErrInvalidCommand
}
