package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"io/fs"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/livmaynard/Telecalc/internal/config"
	logpkg "github.com/livmaynard/Telecalc/internal/logger"
	"github.com/livmaynard/Telecalc/internal/metrics"
	"github.com/livmaynard/Telecalc/internal/observability"
	catalogrepo "github.com/livmaynard/Telecalc/internal/repository/catalog"
	reporttransport "github.com/livmaynard/Telecalc/internal/transport/report"
	compareuc "github.com/livmaynard/Telecalc/internal/usecase/compare"
	"github.com/livmaynard/Telecalc/internal/version"
)

// options are the command-line flags; empty values keep the config file setting.
type options struct {
	configPath    string
	telescopes    string
	eyepieces     string
	catalogFormat string
	format        string
	output        string
	showVersion   bool
}

func main() {
	opts, err := parseFlags(os.Args[1:], os.Stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		os.Exit(2)
	}
	if opts.showVersion {
		fmt.Println(version.String())
		return
	}

	env := config.GetEnv()

	cfg, err := loadConfig(env, opts)
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	logger, err := logpkg.NewLogger(env, cfg.Logging.Level)
	if err != nil {
		panic("failed to create logger: " + err.Error())
	}
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger, os.Stdout); err != nil {
		logger.Fatal("Comparison failed", zap.Error(err))
	}
}

func parseFlags(args []string, errOut io.Writer) (options, error) {
	var o options
	fset := flag.NewFlagSet("telecalc", flag.ContinueOnError)
	fset.SetOutput(errOut)
	fset.StringVar(&o.configPath, "config", "", "path to a config file (default: config/$ENV.yaml)")
	fset.StringVar(&o.telescopes, "telescopes", "", "telescope catalog path")
	fset.StringVar(&o.eyepieces, "eyepieces", "", "eyepiece catalog path")
	fset.StringVar(&o.catalogFormat, "catalog-format", "", "catalog format: text, yaml, csv, parquet (default: by extension)")
	fset.StringVar(&o.format, "format", "", "report format: text, json, yaml")
	fset.StringVar(&o.output, "output", "", "report output path, - for stdout")
	fset.BoolVar(&o.showVersion, "version", false, "print version and exit")
	if err := fset.Parse(args); err != nil {
		return options{}, err
	}
	if fset.NArg() > 0 {
		err := fmt.Errorf("unexpected arguments: %v", fset.Args())
		_, _ = fmt.Fprintln(errOut, err)
		return options{}, err
	}
	return o, nil
}

// loadConfig reads the config file and applies flag overrides. A missing
// default config file is not an error; flags alone are enough to run.
func loadConfig(env string, o options) (config.Config, error) {
	var (
		cfg config.Config
		err error
	)
	if o.configPath != "" {
		cfg, err = config.LoadFile(o.configPath)
	} else {
		cfg, err = config.Load(env)
		if errors.Is(err, fs.ErrNotExist) {
			cfg, err = config.Parse(nil)
		}
	}
	if err != nil {
		return config.Config{}, err
	}

	if o.telescopes != "" {
		cfg.Catalog.Telescopes = o.telescopes
	}
	if o.eyepieces != "" {
		cfg.Catalog.Eyepieces = o.eyepieces
	}
	if o.catalogFormat != "" {
		cfg.Catalog.Format = o.catalogFormat
	}
	if o.format != "" {
		cfg.Report.Format = o.format
	}
	if o.output != "" {
		cfg.Report.Output = o.output
	}
	if err := cfg.Validate(); err != nil {
		return config.Config{}, fmt.Errorf("invalid flags: %w", err)
	}
	return cfg, nil
}

// run loads both catalogs, evaluates every pairing and writes the report.
func run(ctx context.Context, cfg config.Config, logger *zap.Logger, stdout io.Writer) (err error) {
	if cfg.Catalog.Telescopes == "" || cfg.Catalog.Eyepieces == "" {
		return errors.New("both catalog.telescopes and catalog.eyepieces are required")
	}

	runID := uuid.NewString()
	ctx, logger = logpkg.With(logpkg.ContextWithLogger(ctx, logger), zap.String("run_id", runID))

	logger.Info("Starting telecalc",
		zap.String("version", version.Version),
		zap.String("commit", version.Commit),
		zap.String("telescopes", cfg.Catalog.Telescopes),
		zap.String("eyepieces", cfg.Catalog.Eyepieces),
		zap.String("report_format", cfg.Report.Format),
	)

	shutdown, err := observability.InitTracing(ctx, cfg.Tracing, logger)
	if err != nil {
		return fmt.Errorf("init tracing: %w", err)
	}
	defer observability.ShutdownWithTimeout(context.WithoutCancel(ctx), shutdown, logger)

	collector, err := metrics.NewCollector(prometheus.NewRegistry())
	if err != nil {
		return fmt.Errorf("init metrics: %w", err)
	}
	if cfg.Metrics.Textfile != "" {
		defer func() {
			if werr := collector.WriteTextfile(cfg.Metrics.Textfile); werr != nil {
				logger.Warn("Failed to write metrics textfile", zap.Error(werr))
			}
		}()
	}

	format, err := catalogrepo.ParseFormat(cfg.Catalog.Format)
	if err != nil {
		return err
	}
	src := catalogrepo.NewFileSource(cfg.Catalog.Telescopes, cfg.Catalog.Eyepieces, format)

	renderer, err := reporttransport.NewRenderer(cfg.Report.Format, cfg.Report.Precision)
	if err != nil {
		return err
	}

	svc := compareuc.New(src, collector, compareuc.WithRunID(runID))
	rep, err := svc.Compare(ctx)
	if err != nil {
		return err
	}

	out, err := reporttransport.Open(cfg.Report.Output, stdout)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := out.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close report output: %w", cerr)
		}
	}()

	instrumented := reporttransport.NewInstrumentedRenderer(renderer, collector, logger)
	if err := instrumented.Render(ctx, out, rep); err != nil {
		return err
	}

	logger.Info("Report written",
		zap.String("format", string(renderer.Format())),
		zap.String("output", outputName(cfg.Report.Output)),
		zap.Int("pairings", rep.Pairings()),
	)
	return nil
}

func outputName(path string) string {
	if path == "" || path == "-" {
		return "stdout"
	}
	return path
}
