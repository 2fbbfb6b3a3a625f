package input

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"project/ip-filter/ipaddr"
)

// MaxLineLength is the longest line ReadLines accepts.
const MaxLineLength = 1 << 20

// LineError is a parse failure tied to its 1-based input line.
type LineError struct {
	Line int
	Err  error
}

func (e *LineError) Error() string {
	return fmt.Sprintf("line %d: %v", e.Line, e.Err)
}

func (e *LineError) Unwrap() error {
	return e.Err
}

// Options controls Load.
type Options struct {
	// Workers is the number of goroutines parsing lines. Values below 1 mean 1.
	Workers int
	// Strict aborts the load on the first malformed line. Otherwise malformed
	// lines are logged and dropped.
	Strict bool
	Logger *slog.Logger
}

// ReadLines reads r to the end and returns its lines without terminators.
func ReadLines(r io.Reader) ([]string, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), MaxLineLength)

	var lines []string
	for sc.Scan() {
		lines = append(lines, sc.Text())
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read input: %w", err)
	}
	return lines, nil
}

type parsed struct {
	addr ipaddr.Address
	err  error
}

// Load reads every line of r and parses its address. The returned collection
// keeps input order regardless of how many workers ran. Blank lines at the end
// of the stream are dropped; any other blank line is a malformed address.
func Load(ctx context.Context, r io.Reader, opts Options) (ipaddr.Collection, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	lines, err := ReadLines(r)
	if err != nil {
		return nil, err
	}

	for len(lines) > 0 && isBlank(lines[len(lines)-1]) {
		lines = lines[:len(lines)-1]
	}

	results, err := parseAll(ctx, lines, opts.Workers)
	if err != nil {
		return nil, err
	}

	c := make(ipaddr.Collection, 0, len(lines))
	skipped := 0
	for i, res := range results {
		switch {
		case res.err != nil:
			lerr := &LineError{Line: i + 1, Err: res.err}
			if opts.Strict {
				return nil, lerr
			}
			logger.Warn("skipping malformed line", "line", lerr.Line, "error", res.err)
			skipped++
		default:
			c.Append(res.addr)
		}
	}

	logger.Info("addresses loaded", "lines", len(lines), "addresses", len(c), "skipped", skipped)
	return c, nil
}

// parseAll splits lines into one contiguous chunk per worker. Each result is
// stored at its line's index so no ordering step is needed afterwards.
func parseAll(ctx context.Context, lines []string, workers int) ([]parsed, error) {
	if workers < 1 {
		workers = 1
	}
	results := make([]parsed, len(lines))
	chunk := (len(lines) + workers - 1) / workers

	g, gctx := errgroup.WithContext(ctx)
	for start := 0; start < len(lines); start += chunk {
		end := min(start+chunk, len(lines))
		g.Go(func() error {
			for i := start; i < end; i++ {
				if err := gctx.Err(); err != nil {
					return err
				}
				results[i].addr, results[i].err = ipaddr.ParseLine(lines[i])
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	// A cancelled context must fail the load even when every chunk was empty.
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return results, nil
}

func isBlank(line string) bool {
	return line == "" || line == "\r"
}
