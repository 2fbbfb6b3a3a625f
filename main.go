// ip-filter reads tab-separated lines whose first field is an IPv4 address,
// sorts the addresses in descending order and prints the full list followed
// by the configured filtered views.
//
// Usage:
//
//	ip-filter [options] < ip_filter.tsv
//
// Exit codes:
//
//	0: success
//	1: processing failed (malformed input in strict mode, unreadable config, ...)
//	2: invalid arguments
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v3"
)

// Version can be set with -ldflags "-X main.Version=...".
var Version = "0.1.0-dev"

// usageError marks argument problems, which exit with code 2.
type usageError struct {
	err error
}

func (e *usageError) Error() string { return e.err.Error() }
func (e *usageError) Unwrap() error { return e.err }

func main() {
	os.Exit(run(os.Args, os.Stdin, os.Stdout, os.Stderr))
}

func createApp(stdin io.Reader, stdout, stderr io.Writer) *cli.Command {
	return &cli.Command{
		Name:      "ip-filter",
		Usage:     "sort IPv4 addresses and print filtered views",
		UsageText: "ip-filter [options] < input.tsv",
		Version:   Version,
		Reader:    stdin,
		Writer:    stdout,
		ErrWriter: stderr,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "YAML configuration file",
			},
			&cli.StringFlag{
				Name:    "input",
				Aliases: []string{"i"},
				Usage:   "read addresses from `FILE` instead of stdin",
			},
			&cli.BoolFlag{
				Name:  "skip-malformed",
				Usage: "log and skip malformed lines instead of aborting",
			},
			&cli.IntFlag{
				Name:    "workers",
				Aliases: []string{"w"},
				Usage:   "number of parse workers and concurrent PTR lookups",
			},
			&cli.BoolFlag{
				Name:  "resolve",
				Usage: "append the PTR name of each printed address",
			},
			&cli.StringFlag{
				Name:  "nameserver",
				Usage: "nameserver used for PTR lookups (host:port)",
			},
			&cli.StringFlag{
				Name:  "log-level",
				Usage: "debug, info, warn or error",
			},
			&cli.StringFlag{
				Name:  "log-file",
				Usage: "write logs to a rotated `FILE` instead of stderr",
			},
		},
		OnUsageError: func(_ context.Context, _ *cli.Command, err error, _ bool) error {
			return &usageError{err: err}
		},
		ExitErrHandler: func(context.Context, *cli.Command, error) {},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}

			in := stdin
			if path := cmd.String("input"); path != "" {
				f, err := os.Open(path)
				if err != nil {
					return fmt.Errorf("open input: %w", err)
				}
				defer f.Close()
				in = f
			}
			return process(ctx, cfg, in, stdout, stderr)
		},
	}
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	app := createApp(stdin, stdout, stderr)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := app.Run(ctx, args); err != nil {
		var usageErr *usageError
		if errors.As(err, &usageErr) {
			fmt.Fprintf(stderr, "usage error: %v\n", usageErr)
			return 2
		}
		fmt.Fprintf(stderr, "error: %v\n", err)
		return 1
	}
	return 0
}
