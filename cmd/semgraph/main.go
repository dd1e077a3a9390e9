package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dd0wney/semgraph/pkg/analysis"
	"github.com/dd0wney/semgraph/pkg/config"
	"github.com/dd0wney/semgraph/pkg/ingest"
	"github.com/dd0wney/semgraph/pkg/logging"
	"github.com/dd0wney/semgraph/pkg/metrics"
)

const usageText = `semgraph: semantic knowledge-graph analysis

Usage:
  semgraph analyze -facts FILE [-config FILE] [-archive FILE] [-metrics FILE] [-json] [-top N]
  semgraph inspect -archive FILE [-json] [-top N]

Fact files may be YAML, JSON or CSV.
`

func main() {
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usageText)
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var err error
	switch os.Args[1] {
	case "analyze":
		err = runAnalyze(ctx, os.Args[2:], os.Stdout, os.Stderr)
	case "inspect":
		err = runInspect(os.Args[2:], os.Stdout)
	case "help", "-h", "--help":
		fmt.Print(usageText)
		return
	default:
		fmt.Fprintf(os.Stderr, "unknown command %q\n\n%s", os.Args[1], usageText)
		os.Exit(2)
	}

	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(2)
		}
		fmt.Fprintln(os.Stderr, errorStyle.Render("error: "+err.Error()))
		os.Exit(1)
	}
}

func runAnalyze(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("analyze", flag.ContinueOnError)
	fs.SetOutput(stderr)
	var (
		factsFile   = fs.String("facts", "", "Fact file (.yaml, .yml, .json or .csv)")
		configFile  = fs.String("config", "", "Config file (YAML); defaults apply when empty")
		archiveFile = fs.String("archive", "", "Write the report as a snappy-compressed JSON archive")
		metricsFile = fs.String("metrics", "", "Write Prometheus metrics to this textfile")
		asJSON      = fs.Bool("json", false, "Print the report as JSON instead of a styled summary")
		top         = fs.Int("top", 10, "Rows per section in the styled summary")
		timeout     = fs.Duration("timeout", 0, "Abort the analysis after this long (0 = no limit)")
	)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *factsFile == "" {
		return errors.New("-facts is required")
	}

	cfg := config.Default()
	if *configFile != "" {
		var err error
		if cfg, err = config.Load(*configFile); err != nil {
			return err
		}
	}
	if *archiveFile != "" {
		cfg.ArchiveFile = *archiveFile
	}
	if *metricsFile != "" {
		cfg.MetricsFile = *metricsFile
	}

	if lvl := os.Getenv("LOG_LEVEL"); lvl != "" {
		cfg.LogLevel = lvl
	}
	logger := logging.NewLogger(stderr, cfg.LogLevel).With(logging.Component("cli"))

	if *timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, *timeout)
		defer cancel()
	}

	start := time.Now()
	facts, err := ingest.LoadFile(*factsFile)
	if err != nil {
		return err
	}
	logger.Info("facts loaded", logging.File(*factsFile), logging.Facts(len(facts)))

	adapter := ingest.NewAdapter(cfg.IngestOptions())
	if err := adapter.Add(facts...); err != nil {
		return err
	}
	ds, err := adapter.Build()
	if err != nil {
		return fmt.Errorf("build graph: %w", err)
	}

	reg := metrics.NewRegistry()
	reg.RecordStage("ingest", time.Since(start))

	analyzer, err := analysis.New(cfg.Analysis, logger, reg)
	if err != nil {
		return err
	}
	report, runErr := analyzer.Run(ctx, ds)

	// metrics are written even for failed runs
	if cfg.MetricsFile != "" {
		if err := reg.WriteTextfile(cfg.MetricsFile); err != nil {
			logger.Error("metrics not written", logging.File(cfg.MetricsFile), logging.Error(err))
		}
	}
	if runErr != nil {
		return runErr
	}

	if cfg.ArchiveFile != "" {
		if err := analysis.WriteArchive(cfg.ArchiveFile, report); err != nil {
			return err
		}
		logger.Info("archive written", logging.File(cfg.ArchiveFile), logging.RunID(report.RunID))
	}

	return output(stdout, report, *asJSON, *top)
}

func runInspect(args []string, stdout io.Writer) error {
	fs := flag.NewFlagSet("inspect", flag.ContinueOnError)
	var (
		archiveFile = fs.String("archive", "", "Report archive written by analyze")
		asJSON      = fs.Bool("json", false, "Print the report as JSON")
		top         = fs.Int("top", 10, "Rows per section in the styled summary")
	)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *archiveFile == "" {
		return errors.New("-archive is required")
	}

	report, err := analysis.ReadArchive(*archiveFile)
	if err != nil {
		return err
	}
	return output(stdout, report, *asJSON, *top)
}

func output(w io.Writer, report *analysis.Report, asJSON bool, top int) error {
	if asJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(report)
	}
	_, err := io.WriteString(w, renderReport(report, top))
	return err
}
