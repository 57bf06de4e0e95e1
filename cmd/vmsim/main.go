package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strconv"

	"github.com/Yaash1804/Virtual-Memory-Manager/vmm"
)

const usage = `Usage: vmsim [flags] <page_size> <num_frames> <fifo|lru|optimal|random> <trace_file>

Replays a memory access trace against a simulated frame pool and reports the
page fault counts. Trace files hold one "process_id,virtual_address" record
per line; files ending in .snappy or .lz4 are decompressed transparently.

Flags:
  -processes N   number of processes (0 derives it from the trace)
  -allocation A  frame allocation discipline: global or local
  -seed S        seed for the random replacement policy
  -config FILE   JSON configuration file
  -log-level L   debug, info, warn or error
  -metrics       log simulation metrics after the run
`

func main() {
	processes := flag.Int("processes", 4, "number of processes (0 derives it from the trace)")
	allocation := flag.String("allocation", "global", "frame allocation discipline: global or local")
	seed := flag.Int64("seed", 1, "seed for the random replacement policy")
	configPath := flag.String("config", "", "JSON configuration file")
	logLevel := flag.String("log-level", "info", "log level: debug, info, warn or error")
	metrics := flag.Bool("metrics", true, "log simulation metrics after the run")

	flag.Usage = func() { fmt.Fprint(os.Stderr, usage) }
	flag.Parse()

	if flag.NArg() != 4 {
		flag.Usage()
		os.Exit(1)
	}

	cfg, err := loadBaseConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "vmsim: %v\n", err)
		os.Exit(1)
	}

	// Explicit flags override the config file and environment
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "processes":
			cfg.NumProcesses = *processes
		case "allocation":
			cfg.Allocation = *allocation
		case "seed":
			cfg.Seed = *seed
		case "log-level":
			cfg.LogLevel = *logLevel
		case "metrics":
			cfg.EnableMetrics = *metrics
		}
	})

	// Positional arguments take final precedence
	args := flag.Args()

	pageSize, err := strconv.ParseUint(args[0], 10, 32)
	if err != nil {
		fmt.Fprintf(os.Stderr, "vmsim: invalid page size %q\n", args[0])
		os.Exit(1)
	}
	cfg.PageSize = uint32(pageSize)

	numFrames, err := strconv.ParseUint(args[1], 10, 32)
	if err != nil {
		fmt.Fprintf(os.Stderr, "vmsim: invalid frame count %q\n", args[1])
		os.Exit(1)
	}
	cfg.NumFrames = uint32(numFrames)

	cfg.Policy = args[2]
	tracePath := args[3]

	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "vmsim: %v\n", err)
		os.Exit(1)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: cfg.SlogLevel(),
	}))

	trace, err := vmm.LoadTrace(tracePath, cfg.PageSize, cfg.NumProcesses)
	if err != nil {
		logger.Error("failed to load trace", slog.String("path", tracePath), slog.Any("error", err))
		os.Exit(1)
	}

	sim, err := vmm.NewSimulator(cfg, trace, logger)
	if err != nil {
		logger.Error("failed to build simulator", slog.Any("error", err))
		os.Exit(1)
	}

	report, err := sim.Run()
	if err != nil {
		logger.Error("simulation failed", slog.Any("error", err))
		os.Exit(1)
	}

	if err := report.Print(os.Stdout); err != nil {
		logger.Error("failed to write report", slog.Any("error", err))
		os.Exit(1)
	}

	if cfg.EnableMetrics {
		sim.Metrics().LogMetrics(logger)
	}
}

// loadBaseConfig picks the starting configuration: the JSON file when one is
// given, otherwise defaults overlaid with VMSIM_* environment variables.
func loadBaseConfig(path string) (*vmm.Config, error) {
	if path != "" {
		return vmm.LoadConfigFromFile(path)
	}
	return vmm.LoadConfigFromEnv(), nil
}
