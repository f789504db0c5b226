package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/iwvelando/finance-tools/internal/calculator"
	"github.com/iwvelando/finance-tools/internal/config"
	"github.com/iwvelando/finance-tools/internal/logging"
	"github.com/iwvelando/finance-tools/internal/usage"
	"github.com/iwvelando/finance-tools/pkg/constants"
	"github.com/iwvelando/finance-tools/pkg/output"
	"go.uber.org/zap"
)

func main() {
	// Process command line flags first to get config location
	configLocation := flag.String("config", constants.DefaultConfigFile, "path to configuration file")
	outputFormatFlag := flag.String("output-format", "", "type of output override: pretty, csv, json, yaml")
	logLevel := flag.String("log-level", "", "log level override (debug, info, warn, error)")
	flag.Parse()

	// Load the config file to get logging configuration
	conf, err := config.LoadConfiguration(*configLocation)
	if err != nil {
		fmt.Printf("{\"op\": \"main\", \"level\": \"fatal\", \"msg\": \"failed to load configuration at %s\", \"error\": \"%v\"}\n", *configLocation, err)
		os.Exit(1)
	}

	logger, err := logging.New(conf.Logging, *logLevel)
	if err != nil {
		fmt.Printf("{\"op\": \"main\", \"level\": \"fatal\", \"msg\": \"failed to initialize logger\", \"error\": \"%v\"}\n", err)
		os.Exit(1)
	}
	defer func() {
		_ = logger.Sync()
	}()

	// CLI override takes precedence over config
	if *outputFormatFlag != "" {
		conf.Output.Format = *outputFormatFlag
	}

	if err := conf.Validate(); err != nil {
		logger.Fatal("invalid configuration",
			zap.String("op", "main"),
			zap.Error(err),
		)
	}

	for _, warning := range conf.ValidateConfiguration() {
		logger.Warn("Configuration warning: "+warning,
			zap.String("op", "main"),
		)
	}

	if err := run(context.Background(), logger, conf, os.Stdout); err != nil {
		logger.Fatal("failed to run calculations",
			zap.String("op", "main"),
			zap.Error(err),
		)
	}
}

// run computes every configured calculation and writes the reports to w.
func run(ctx context.Context, logger *zap.Logger, conf *config.Configuration, w io.Writer) error {
	recorder, err := usage.Open(ctx, conf.Usage, logger)
	if err != nil {
		return fmt.Errorf("failed to open usage sink: %w", err)
	}
	defer func() {
		if closer, ok := recorder.(io.Closer); ok {
			if err := closer.Close(); err != nil {
				logger.Warn("failed to close usage sink",
					zap.String("op", "main.run"),
					zap.Error(err),
				)
			}
		}
	}()

	svc := calculator.NewService(logger, recorder, conf.Usage.ReportTimeout())
	reports := make([]output.Report, 0, len(conf.Calculations))
	for _, calc := range conf.Calculations {
		outcome, err := svc.Run(ctx, calc.Calculator, calc.Inputs)
		if err != nil {
			return fmt.Errorf("calculation %q: %w", calc.DisplayName(), err)
		}
		reports = append(reports, output.Report{
			Name:       calc.DisplayName(),
			Calculator: outcome.Calculator,
			OK:         outcome.OK,
			Result:     outcome.Result,
		})
	}
	// Let pending usage reports finish before the sink is closed.
	svc.Wait()

	return output.Write(w, conf.Output.Format, reports)
}
