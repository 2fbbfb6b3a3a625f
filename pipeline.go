package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/urfave/cli/v3"

	"project/ip-filter/config"
	"project/ip-filter/dns"
	"project/ip-filter/filter"
	"project/ip-filter/formatter"
	"project/ip-filter/input"
	"project/ip-filter/ipaddr"
	"project/ip-filter/logging"
)

// loadConfig reads the optional configuration file and applies flag overrides.
func loadConfig(cmd *cli.Command) (*config.Config, error) {
	cfg := config.Default()
	if path := cmd.String("config"); path != "" {
		var err error
		if cfg, err = config.LoadConfig(path); err != nil {
			return nil, err
		}
	}

	if cmd.Bool("skip-malformed") {
		strict := false
		cfg.Strict = &strict
	}
	if cmd.IsSet("workers") {
		if cmd.Int("workers") < 1 {
			return nil, &usageError{err: fmt.Errorf("--workers must be at least 1, got %d", cmd.Int("workers"))}
		}
		cfg.ConcurrencyLimit = int(cmd.Int("workers"))
	}
	if cmd.Bool("resolve") {
		cfg.Resolve.Enabled = true
	}
	if ns := cmd.String("nameserver"); ns != "" {
		cfg.Resolve.Nameserver = ns
	}
	if lvl := cmd.String("log-level"); lvl != "" {
		if _, err := logging.ParseLevel(lvl); err != nil {
			return nil, &usageError{err: err}
		}
		cfg.Log.Level = lvl
	}
	if f := cmd.String("log-file"); f != "" {
		cfg.Log.File = f
	}
	return cfg, nil
}

// process runs the whole pipeline: load, sort, filter, optionally resolve and
// print every stage to out.
func process(ctx context.Context, cfg *config.Config, in io.Reader, out, logOut io.Writer) error {
	// 1. Journalisation
	logger, closeLog, err := logging.New(logging.Options{
		Level:      cfg.Log.Level,
		File:       cfg.Log.File,
		MaxSizeMB:  cfg.Log.MaxSizeMB,
		MaxBackups: cfg.Log.MaxBackups,
		Stderr:     logOut,
	})
	if err != nil {
		return err
	}
	defer closeLog()
	logger.Debug("configuration loaded",
		"concurrencyLimit", cfg.ConcurrencyLimit, "strict", cfg.IsStrict(), "stages", len(cfg.Stages))

	// 2. Étapes construites avant la lecture pour échouer tôt sur une config invalide.
	stages, err := buildStages(cfg.Stages)
	if err != nil {
		return err
	}

	// 3. Lecture et tri
	addrs, err := input.Load(ctx, in, input.Options{
		Workers: cfg.ConcurrencyLimit,
		Strict:  cfg.IsStrict(),
		Logger:  logger,
	})
	if err != nil {
		return err
	}
	addrs.SortDescending()
	if logger.Enabled(ctx, slog.LevelDebug) {
		logger.Debug("addresses sorted", "count", len(addrs), "descending", addrs.IsSortedDescending())
	}

	// 4. Filtrage
	results := make([]ipaddr.Collection, len(stages))
	for i, st := range stages {
		results[i] = st.Apply(addrs)
		logger.Debug("stage done", "stage", st.Name, "matches", len(results[i]))
	}

	// 5. Optional PTR names for everything that will be printed
	var names map[ipaddr.Address]string
	if cfg.Resolve.Enabled {
		names = resolveNames(ctx, cfg, logger, results)
	}

	// 6. Sortie
	for i, st := range stages {
		if err := formatter.WriteAddresses(out, results[i], names); err != nil {
			return fmt.Errorf("write stage %s: %w", st.Name, err)
		}
	}
	return nil
}

func resolveNames(ctx context.Context, cfg *config.Config, logger *slog.Logger, results []ipaddr.Collection) map[ipaddr.Address]string {
	var printed ipaddr.Collection
	for _, r := range results {
		printed.Append(r...)
	}
	resolver := dns.NewResolver(cfg.Resolve.Nameserver, cfg.ConcurrencyLimit, cfg.Resolve.Timeout, logger)
	names := resolver.LookupAll(ctx, printed)
	logger.Info("reverse lookups finished", "lookups", resolver.GetLookupCount(), "names", len(names))
	return names
}

// buildStages turns stage definitions into pipeline stages.
func buildStages(stages []config.Stage) ([]filter.Stage, error) {
	if err := (&config.Config{Stages: stages}).Validate(); err != nil {
		return nil, err
	}

	out := make([]filter.Stage, 0, len(stages))
	for i, s := range stages {
		switch s.Kind {
		case config.KindAll:
			out = append(out, filter.All())
		case config.KindPrefix:
			octets := make([]uint8, len(s.Octets))
			for j, o := range s.Octets {
				octets[j] = uint8(o)
			}
			out = append(out, filter.PrefixStage(octets...))
		case config.KindAny:
			out = append(out, filter.AnyStage(uint8(*s.Value)))
		case config.KindRange:
			st, err := filter.RangeStage(s.Ranges)
			if err != nil {
				return nil, fmt.Errorf("stage %d: %w: %w", i, config.ErrInvalidStage, err)
			}
			out = append(out, st)
		default:
			return nil, fmt.Errorf("stage %d: %w: unknown kind %q", i, config.ErrInvalidStage, s.Kind)
		}
	}
	return out, nil
}
