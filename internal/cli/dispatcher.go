package cli

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"runtime/debug"
	"strings"
	"time"

	"github.com/buger/goterm"

	"github.com/randytsao24/divvystats/internal/cache"
	"github.com/randytsao24/divvystats/internal/metrics"
	"github.com/randytsao24/divvystats/internal/query"
)

// Prompt is printed before each command is read.
const Prompt = "Enter command (# to stop)> "

// Dispatcher maps command lines to query engine operations and writes the
// reports to its output.
type Dispatcher struct {
	engine  *query.Engine
	out     io.Writer
	cache   *cache.Cache[string]
	metrics *metrics.Recorder
	color   bool
}

// Option configures a Dispatcher
type Option func(*Dispatcher)

// WithCache memoizes rendered command output in c.
func WithCache(c *cache.Cache[string]) Option {
	return func(d *Dispatcher) {
		d.cache = c
	}
}

// WithMetrics records command counts and latencies in r.
func WithMetrics(r *metrics.Recorder) Option {
	return func(d *Dispatcher) {
		d.metrics = r
	}
}

// WithColor enables terminal colors for the prompt and error lines.
func WithColor(enabled bool) Option {
	return func(d *Dispatcher) {
		d.color = enabled
	}
}

// NewDispatcher creates a dispatcher writing to out.
func NewDispatcher(engine *query.Engine, out io.Writer, opts ...Option) *Dispatcher {
	d := &Dispatcher{
		engine: engine,
		out:    out,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Run prompts for and executes commands from in until "#", end of input, or
// ctx is cancelled. Cancellation interrupts a pending read.
func (d *Dispatcher) Run(ctx context.Context, in io.Reader) error {
	reader, ok := in.(*bufio.Reader)
	if !ok {
		reader = bufio.NewReader(in)
	}

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		d.writePrompt()

		var res lineResult
		select {
		case <-ctx.Done():
			return ctx.Err()
		case res = <-readLine(reader):
		}

		if res.err != nil && !errors.Is(res.err, io.EOF) {
			return fmt.Errorf("reading command: %w", res.err)
		}
		if res.line == "" && errors.Is(res.err, io.EOF) {
			return nil
		}

		if quit := d.Execute(res.line); quit {
			return nil
		}
		if errors.Is(res.err, io.EOF) {
			return nil
		}
	}
}

type lineResult struct {
	line string
	err  error
}

// readLine reads one line in the background so the caller can stop waiting
// when its context ends.
func readLine(r *bufio.Reader) <-chan lineResult {
	ch := make(chan lineResult, 1)
	go func() {
		line, err := r.ReadString('\n')
		ch <- lineResult{line: line, err: err}
	}()
	return ch
}

// Execute runs a single command line and reports whether it was the quit command.
// Invalid input is reported on the output and never stops the loop.
func (d *Dispatcher) Execute(line string) bool {
	cmd, err := ParseCommand(line)
	if err != nil {
		d.reject(cmd, line, err)
		return false
	}
	if cmd.Name == CmdQuit {
		return true
	}

	defer d.recoverPanic(cmd)

	start := time.Now()
	output := d.render(cmd)
	io.WriteString(d.out, output)

	elapsed := time.Since(start)
	slog.Debug("command",
		"name", cmd.Name,
		"duration", elapsed.String(),
	)
	if d.metrics != nil {
		d.metrics.ObserveCommand(cmd.Name, elapsed)
	}
	return false
}

// recoverPanic keeps a failing query from ending the session.
func (d *Dispatcher) recoverPanic(cmd Command) {
	if err := recover(); err != nil {
		slog.Error("panic recovered",
			"command", cmd.Name,
			"error", err,
			"stack", string(debug.Stack()),
		)
		fmt.Fprintf(d.out, "** Internal error running %s\n", cmd.Name)
	}
}

func (d *Dispatcher) render(cmd Command) string {
	if d.cache == nil {
		return d.answer(cmd)
	}

	output, hit := d.cache.GetOrCompute(cmd.Key(), func() string {
		return d.answer(cmd)
	})
	if d.metrics != nil {
		d.metrics.CacheResult(hit)
	}
	return output
}

func (d *Dispatcher) answer(cmd Command) string {
	var buf bytes.Buffer

	switch cmd.Name {
	case CmdStats:
		query.WriteSummary(&buf, d.engine.Summary())
	case CmdDuration:
		query.WriteDurations(&buf, d.engine.Durations())
	case CmdStarting:
		query.WriteStartingHours(&buf, d.engine.StartingHours())
	case CmdNearMe:
		query.WriteNearby(&buf, d.engine.NearMe(cmd.Lat, cmd.Lng, cmd.MaxMiles))
	case CmdStations:
		query.WriteStations(&buf, d.engine.Stations())
	case CmdFind:
		query.WriteStations(&buf, d.engine.Find(cmd.Term))
	}

	return buf.String()
}

func (d *Dispatcher) reject(cmd Command, line string, err error) {
	slog.Debug("rejected command", "line", strings.TrimSpace(line), "error", err)
	if d.metrics != nil {
		d.metrics.InvalidCommand()
	}

	msg := "** Invalid command, please try again..."
	if errors.Is(err, ErrInvalidArguments) {
		msg = fmt.Sprintf("** Invalid arguments to %s, please try again...", cmd.Name)
	}
	if d.color {
		msg = goterm.Color(msg, goterm.RED)
	}
	fmt.Fprintln(d.out, msg)
}

func (d *Dispatcher) writePrompt() {
	if d.color {
		io.WriteString(d.out, goterm.Color(goterm.Bold(Prompt), goterm.CYAN))
		return
	}
	io.WriteString(d.out, Prompt)
}
