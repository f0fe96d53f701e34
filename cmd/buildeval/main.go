// Build evaluator: loads a build file, runs the full calculation chain and
// prints the graduation and optimization reports.
//
// Usage:
//
//	go run ./cmd/buildeval build.yaml
//	BUILDCALC_CONFIG=buildcalc.yaml go run ./cmd/buildeval build.yaml
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/udisondev/buildcalc/internal/config"
	"github.com/udisondev/buildcalc/internal/data"
	"github.com/udisondev/buildcalc/internal/game/build"
)

const ConfigPath = "config/buildcalc.yaml"

var errUsage = errors.New("usage: buildeval <build.yaml>")

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx, os.Args[1:], os.Stdout); err != nil {
		if errors.Is(err, errUsage) {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(2)
		}
		slog.Error("fatal", "err", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, out io.Writer) error {
	if len(args) != 1 {
		return errUsage
	}

	cfgPath := ConfigPath
	if p := os.Getenv("BUILDCALC_CONFIG"); p != "" {
		cfgPath = p
	}
	cfg, err := config.LoadCalculator(cfgPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	level, err := cfg.Level()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})))

	tables, err := data.Load(cfg.DataDir)
	if err != nil {
		return fmt.Errorf("loading game data: %w", err)
	}

	f, err := build.LoadFile(args[0])
	if err != nil {
		return err
	}

	s := build.NewSession(tables,
		build.WithParallelism(cfg.Parallelism),
		build.WithTargetLevel(cfg.TargetLevel),
	)
	if err := s.Apply(f); err != nil {
		return fmt.Errorf("applying build %s: %w", args[0], err)
	}
	slog.Debug("build applied", "sub_school", f.SubSchool, "items", len(f.Items), "techniques", len(f.Techniques))

	r, err := s.Compute(ctx)
	if err != nil {
		return fmt.Errorf("computing build: %w", err)
	}

	switch cfg.ReportFormat {
	case config.FormatJSON:
		return writeJSON(out, r)
	default:
		return writeText(out, f, r)
	}
}
