package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/odyssey-erp/token-topup/cmd/topup/cli"
	"github.com/odyssey-erp/token-topup/internal/app"
	"github.com/odyssey-erp/token-topup/internal/topup"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "topup [users.json [companies.json [output.txt]]]",
		Short: "Apply company token top-ups and write the balance report",
		Long: `topup joins active users to their companies, credits each user with the
company's top-up amount and writes a per-company report of previous and new
token balances.

Paths left off the command line fall back to USERS_PATH, COMPANIES_PATH and
OUTPUT_PATH.`,
		Args:         cobra.MaximumNArgs(3),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := app.LoadConfig()
			if err != nil {
				slog.Default().Error("load config", slog.Any("error", err))
				return err
			}
			logger := app.NewLogger(cfg, cmd.ErrOrStderr())
			locale, _ := cfg.Locale()

			paths := topup.Paths{Users: cfg.UsersPath, Companies: cfg.CompaniesPath, Output: cfg.OutputPath}
			targets := []*string{&paths.Users, &paths.Companies, &paths.Output}
			for i, arg := range args {
				*targets[i] = arg
			}
			logger.Debug("starting report", slog.String("env", cfg.AppEnv), slog.String("locale", locale.String()))

			// Report failures are printed by the command itself and do not change the exit status.
			_, _ = cli.ReportCommand(cmd.Context(), cli.ReportOptions{
				Paths:           paths,
				Options:         topup.Options{Locale: locale},
				MetricsTextfile: cfg.MetricsTextfile,
				Logger:          logger,
				Stdout:          cmd.OutOrStdout(),
				Stderr:          cmd.ErrOrStderr(),
			})
			return nil
		},
	}
}
