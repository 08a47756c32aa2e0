// cmd/msauthexport/cmd/root.go
package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/exp/slog"
	"golang.org/x/term"

	"msauthexport/internal/app/exporter"
	"msauthexport/internal/config"
	"msauthexport/internal/infrastructure/storage"
	"msauthexport/internal/utils/logger"
)

var (
	cfgFile   string
	dbPath    string
	outputDir string
	debug     bool
	noColor   bool
)

// Зависимости команд, подменяются в тестах
var (
	stdout io.Writer = os.Stdout
	stderr io.Writer = os.Stderr
)

var rootCmd = newRootCmd()

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "msauthexport",
		Short: "Export Microsoft Authenticator accounts as otpauth:// URIs",
		Long: `msauthexport reads the PhoneFactor database of Microsoft Authenticator
and writes every account with a secret as an otpauth://totp/ URI,
one per line, to msauth-export-<timestamp>.txt.

Copy PhoneFactor together with PhoneFactor-wal and PhoneFactor-shm
if they exist; SQLite merges them when the database is opened.`,
		Args:          cobra.NoArgs,
		RunE:          runExport,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVar(&cfgFile, "config", "", "configuration file (yaml)")
	cmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
	cmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored output")
	cmd.Flags().StringVar(&dbPath, "db", "", "path to the PhoneFactor database")
	cmd.Flags().StringVar(&outputDir, "out", "", "directory for the export file")

	cmd.AddCommand(newVerifyCmd())
	return cmd
}

// Execute запускает CLI и возвращает код выхода процесса.
func Execute() int {
	return execute(context.Background(), rootCmd)
}

func execute(ctx context.Context, cmd *cobra.Command) int {
	if err := cmd.ExecuteContext(ctx); err != nil {
		printError(err)
		return 1
	}
	return 0
}

func printError(err error) {
	var missing *exporter.MissingInputError
	var dbErr *storage.Error

	switch {
	case errors.As(err, &missing):
		fmt.Fprintf(stderr, "Error: %v\n", exporter.ErrDatabaseNotFound)
		fmt.Fprintf(stderr, "\nPlace the database file at: %s\n", missing.Path)
		fmt.Fprintln(stderr, "If PhoneFactor-shm and PhoneFactor-wal exist, copy them as well")
		fmt.Fprintln(stderr, "     (they are merged into the main database when it is opened)")
	case errors.As(err, &dbErr):
		fmt.Fprintf(stderr, "\nDatabase error: %v\n", dbErr)
	default:
		fmt.Fprintf(stderr, "\nError: %v\n", err)
	}
}

func setup() (*config.Config, *slog.Logger, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, nil, fmt.Errorf("load config: %w", err)
	}

	// Флаги командной строки важнее конфигурации
	if dbPath != "" {
		cfg.DBPath = dbPath
	}
	if outputDir != "" {
		cfg.OutputDir = outputDir
	}
	if debug {
		cfg.LogLevel = "debug"
	}

	return cfg, logger.New(cfg.Env, cfg.LogLevel), nil
}

func colored(w io.Writer) bool {
	if noColor {
		return false
	}
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
