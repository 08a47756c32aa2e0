package cmd

import (
	"context"

	"github.com/spf13/cobra"
	"golang.org/x/exp/slog"

	"msauthexport/internal/app/exporter"
	"msauthexport/internal/domain/account"
	"msauthexport/internal/infrastructure/storage/sqlite"
)

func runExport(cmd *cobra.Command, _ []string) error {
	cfg, log, err := setup()
	if err != nil {
		return err
	}

	open := func(ctx context.Context, path string) (account.Repository, error) {
		repo, err := sqlite.Open(ctx, path, log)
		if err != nil {
			return nil, err
		}
		return repo, nil
	}

	exp := exporter.New(exporter.Config{
		DBPath:    cfg.DBPath,
		OutputDir: cfg.OutputDir,
	}, open, exporter.NewConsoleReporter(stdout, colored(stdout)), log)

	res, err := exp.Run(cmd.Context())
	if err != nil {
		return err
	}

	log.Debug("run complete", slog.Int("exported", res.Exported), slog.Int("skipped", res.Skipped))
	return nil
}
