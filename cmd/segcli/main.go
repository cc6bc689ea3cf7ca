// Command segcli decodes scrambled seven-segment display notes and prints the
// sum of the decoded output values.
//
// Usage:
//
//	segcli -file input.txt
//	segcli -config segdecode.yaml -workers 8 -verify
//	segcli -bq-project my-project -bq-table puzzles.lines
//	segcli -generate 100 -seed 7 > puzzles.txt
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"os"
	"strings"
	"time"

	"github.com/pkg/profile"

	"crosswarped.com/segdecode"
	"crosswarped.com/segdecode/internal/config"
	"crosswarped.com/segdecode/internal/source"
)

func main() {
	os.Exit(run())
}

// run returns the process exit code so deferred work such as flushing a
// profile happens before exit.
func run() int {
	configFile := flag.String("config", "", "YAML config file")
	file := flag.String("file", "", "The file to load puzzle lines from")
	bqProject := flag.String("bq-project", "", "BigQuery project to read puzzle lines from")
	bqTable := flag.String("bq-table", "", "BigQuery table holding line_number and line columns")
	bqLocation := flag.String("bq-location", "", "BigQuery location (default US)")
	policy := flag.String("policy", "", "What to do with undecodable outputs: discard-line|skip-digit")
	workers := flag.Int("workers", 0, "Number of lines solved concurrently")
	verify := flag.Bool("verify", false, "Cross-check each wiring with a SAT solver")
	timeout := flag.Duration("timeout", 0, "The timeout for loading and solving")
	levelStr := flag.String("log-level", "", "debug|info|warn|error")
	unique := flag.Bool("unique", false, "Also print how many outputs are identifiable by length alone")
	generate := flag.Int("generate", 0, "Print this many random puzzle lines instead of solving")
	seed := flag.Uint64("seed", 0, "Seed for -generate (default: time based)")
	numOutputs := flag.Int("outputs", 4, "Output codewords per generated line")

	prof := flag.Bool("profile", false, "Profile the decoder")
	profileMode := flag.String("profile-mode", "cpu", "cpu|mem")
	profileDir := flag.String("profile-dir", ".", "The directory to write profiles to")

	flag.Parse()

	if *generate > 0 {
		s := *seed
		if s == 0 {
			s = uint64(time.Now().UnixNano())
		}
		gen := segdecode.CreateGenerator(*numOutputs, rand.New(rand.NewPCG(s, s>>1)))
		count := 0
		for gp := range gen.Puzzles(context.Background()) {
			fmt.Println(gp.Line)
			count++
			if count >= *generate {
				break
			}
		}
		return 0
	}

	cfg := config.Default()
	if *configFile != "" {
		var err error
		if cfg, err = config.Load(*configFile); err != nil {
			fmt.Println("Error loading config:", err)
			return 1
		}
	}

	// Flags that were given explicitly win over the config file.
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "file":
			cfg.Source.File = *file
		case "bq-project":
			cfg.Source.BigQuery.Project = *bqProject
		case "bq-table":
			cfg.Source.BigQuery.Table = *bqTable
		case "bq-location":
			cfg.Source.BigQuery.Location = *bqLocation
		case "policy":
			cfg.Policy = *policy
		case "workers":
			cfg.Workers = *workers
		case "verify":
			cfg.Verify = *verify
		case "timeout":
			cfg.Timeout = timeout.String()
		case "log-level":
			cfg.LogLevel = *levelStr
		}
	})
	if err := cfg.Finalize(); err != nil {
		fmt.Println("Invalid configuration:", err)
		return 1
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: parseLevel(cfg.LogLevel)}))

	if *prof {
		mode := profile.CPUProfile
		if strings.EqualFold(*profileMode, "mem") {
			mode = profile.MemProfile
		}
		defer profile.Start(mode, profile.ProfilePath(*profileDir), profile.Quiet).Stop()
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.TimeoutValue())
	defer cancel()

	lines, err := loadLines(ctx, cfg)
	if err != nil {
		logger.Error("loading puzzle lines", "err", err)
		return 1
	}
	logger.Info("loaded puzzle lines", "count", len(lines), "policy", cfg.Policy, "workers", cfg.Workers, "verify", cfg.Verify)

	start := time.Now()
	rep := segdecode.SolveAll(ctx, lines, segdecode.Options{
		Policy:  cfg.PolicyValue(),
		Workers: cfg.Workers,
		Verify:  cfg.Verify,
		Logger:  logger,
	})
	logger.Info("done", "solved", rep.Solved, "failed", rep.Failed, "dur", time.Since(start).Round(time.Millisecond))

	if *unique {
		fmt.Printf("%d total 1, 4, 7, 8s found\n", rep.UniqueCount)
	}
	fmt.Printf("%d total\n", rep.Total)

	if ctx.Err() != nil {
		logger.Error("context error", "err", ctx.Err())
		return 1
	}
	return 0
}

func loadLines(ctx context.Context, cfg *config.Config) ([]segdecode.Line, error) {
	switch {
	case cfg.Source.BigQuery.Table != "":
		return source.FromBigQuery(ctx, source.BigQueryParams{
			Project:  cfg.Source.BigQuery.Project,
			Table:    cfg.Source.BigQuery.Table,
			Location: cfg.Source.BigQuery.Location,
		})
	case cfg.Source.File != "":
		return source.FromFile(ctx, cfg.Source.File)
	case flag.NArg() > 0:
		return source.FromFile(ctx, flag.Arg(0))
	default:
		return nil, fmt.Errorf("no input: pass -file, -bq-table, or a file argument")
	}
}

func parseLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
