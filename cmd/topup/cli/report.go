package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/google/uuid"

	"github.com/odyssey-erp/token-topup/internal/observability"
	"github.com/odyssey-erp/token-topup/internal/topup"
)

// ReportOptions defines the inputs of the report command.
type ReportOptions struct {
	Paths           topup.Paths
	Options         topup.Options
	// MetricsTextfile, when set, receives the run metrics after the report.
	MetricsTextfile string
	Logger          *slog.Logger
	Stdout          io.Writer
	Stderr          io.Writer
}

// ReportCommand generates the top-up report and prints the outcome. Failures
// are reported on Stderr and also returned so callers can inspect the kind.
func ReportCommand(ctx context.Context, opts ReportOptions) (topup.Result, error) {
	if opts.Stdout == nil {
		opts.Stdout = os.Stdout
	}
	if opts.Stderr == nil {
		opts.Stderr = os.Stderr
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	logger = logger.With(slog.String("run_id", uuid.NewString()))

	metrics := observability.NewMetrics()
	tracker := metrics.Track()
	result, err := topup.NewGenerator(logger, opts.Options).Run(ctx, opts.Paths)
	_ = tracker.End(err)
	if err != nil {
		logger.Error("generate report", slog.String("kind", string(topup.KindOf(err))), slog.Any("error", err))
		_, _ = fmt.Fprintf(opts.Stderr, "An error occurred: %v\n", err)
	} else {
		for _, block := range result.Blocks {
			metrics.AddTopUps(block.CompanyID, block.UserCount(), block.TotalTopUp)
		}
		logger.Info("report written",
			slog.String("output", opts.Paths.Output),
			slog.Int("companies", len(result.Blocks)),
			slog.Int("users_topped_up", result.QualifyingUsers()),
			slog.Float64("tokens_granted", result.TokensGranted()),
		)
		_, _ = fmt.Fprintf(opts.Stdout, "%s file created successfully!\n", opts.Paths.Output)
	}

	if opts.MetricsTextfile != "" {
		if writeErr := metrics.WriteTextfile(opts.MetricsTextfile); writeErr != nil {
			logger.Warn("write metrics textfile", slog.String("path", opts.MetricsTextfile), slog.Any("error", writeErr))
		}
	}
	return result, err
}
