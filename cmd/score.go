// File: cmd/score.go
package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/mitchellh/go-homedir"
	"go.uber.org/zap"

	"github.com/xkilldash9x/numo/internal/cipher"
	"github.com/xkilldash9x/numo/internal/config"
	"github.com/xkilldash9x/numo/internal/reporting"
	"github.com/xkilldash9x/numo/internal/scoring"
)

// newReporter is swapped out in tests to inject a mock reporter.
var newReporter = reporting.New

// runScore contains the core, testable logic of a scoring run: resolve the
// cipher selection, score every line of inputPath, write the report to
// outputPath. The selection is validated before any file is touched.
func runScore(
	ctx context.Context,
	logger *zap.Logger,
	cfg config.Interface,
	inputPath, outputPath string,
	stdout io.Writer,
) error {
	selection, err := cipher.Default().Select(cfg.Scoring().DefaultCiphers)
	if err != nil {
		return err
	}
	names := make([]string, len(selection))
	for i, n := range selection {
		names[i] = n.Name
	}

	input, err := homedir.Expand(inputPath)
	if err != nil {
		return fmt.Errorf("failed to resolve input path %s: %w", inputPath, err)
	}
	output := outputPath
	if output != reporting.StdoutPath {
		if output, err = homedir.Expand(outputPath); err != nil {
			return fmt.Errorf("failed to resolve output path %s: %w", outputPath, err)
		}
	}

	logger.Info("Scoring file",
		zap.String("input", input),
		zap.String("output", output),
		zap.Strings("ciphers", names),
		zap.Int("workers", cfg.Scoring().Workers),
	)
	start := time.Now()

	data, err := os.ReadFile(input)
	if err != nil {
		return fmt.Errorf("failed to read input file %s: %w", inputPath, err)
	}

	lines := scoring.SplitLines(string(data))
	results, err := scoring.ScoreLines(ctx, lines, selection, cfg.Scoring().Workers)
	if err != nil {
		return fmt.Errorf("failed to score lines: %w", err)
	}

	if err := writeReport(cfg.Report().Format, output, names, results, stdout); err != nil {
		return err
	}

	logger.Info("Report written",
		zap.String("output", output),
		zap.Int("lines", len(lines)),
		zap.Duration("elapsed", time.Since(start)),
	)
	if output != reporting.StdoutPath {
		fmt.Fprintf(stdout, "Processed %d lines to %s\n", len(lines), outputPath)
	}
	return nil
}

// writeReport streams results into a reporter, aborting it on any failure so
// no partial output is left behind. stdout receives the report when output
// is "-".
func writeReport(format, output string, ciphers []string, results []scoring.Result, stdout io.Writer) error {
	reporter, err := newReporter(format, output, ciphers, stdout)
	if err != nil {
		return fmt.Errorf("failed to initialize reporter: %w", err)
	}
	for _, res := range results {
		if err := reporter.Write(res); err != nil {
			reporter.Abort()
			return fmt.Errorf("failed to write report: %w", err)
		}
	}
	if err := reporter.Close(); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	return nil
}
