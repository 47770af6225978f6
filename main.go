package main

import (
	"database/sql"
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
	flag "github.com/spf13/pflag"

	"hypothesis_worker/hypothesis"
)

func main() {
	// Load environment from .env files for local development.
	// Prefer the Rails app .env if present.
	_ = godotenv.Load("../benchmark_ui/.env")
	_ = godotenv.Load(".env")

	cfg, err := loadConfig(os.Getenv)
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	opts, cfg, err := parseFlags(os.Args[1:], cfg)
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	dsn, err := buildDSNFromEnv()
	if err != nil {
		log.Fatalf("database config error: %v", err)
	}
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		log.Fatalf("connect error: %v", err)
	}
	defer db.Close()
	if err := db.Ping(); err != nil {
		log.Fatalf("database not reachable: %v", err)
	}

	rng := hypothesis.NewRand(cfg.Seed)

	if opts.Service || opts.ComparisonID == 0 {
		runService(db, cfg, rng)
		return
	}

	if err := processComparison(db, opts.ComparisonID, cfg, rng); err != nil {
		log.Fatal(err)
	}
}

type cliOptions struct {
	ComparisonID int64
	Service      bool
}

// parseFlags applies command-line overrides on top of cfg. A bare positional
// argument is taken as the comparison id.
func parseFlags(args []string, cfg config) (cliOptions, config, error) {
	var opts cliOptions
	var noOutliers bool
	fs := flag.NewFlagSet("hypothesis_worker", flag.ContinueOnError)
	fs.Int64Var(&opts.ComparisonID, "comparison-id", 0, "ID of comparisons row to evaluate (omit to run service)")
	fs.BoolVar(&opts.Service, "service", false, "Run as background service listening to Sidekiq queue")
	fs.BoolVar(&cfg.TwoSided, "two-sided", cfg.TwoSided, "Report two-sided p-values")
	fs.BoolVar(&noOutliers, "no-outliers", false, "Skip IQR outlier removal before testing")
	fs.IntVar(&cfg.BootIterations, "boot-iterations", cfg.BootIterations, "Bootstrap resamples for the mean difference interval")
	fs.Uint64Var(&cfg.Seed, "seed", cfg.Seed, "Random seed (0 seeds from the clock)")
	if err := fs.Parse(args); err != nil {
		return opts, cfg, err
	}
	if noOutliers {
		cfg.RemoveOutliers = false
	}
	if opts.ComparisonID == 0 && fs.NArg() > 0 {
		if _, err := fmt.Sscan(fs.Arg(0), &opts.ComparisonID); err != nil {
			return opts, cfg, fmt.Errorf("invalid comparison id %q: %w", fs.Arg(0), err)
		}
	}
	return opts, cfg, cfg.validate()
}
