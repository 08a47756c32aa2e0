package exporter

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/moby/sys/atomicwriter"
	"golang.org/x/exp/slog"

	"msauthexport/internal/domain/account"
	"msauthexport/internal/domain/otpauth"
	"msauthexport/internal/infrastructure/storage"
)

const (
	filePrefix      = "msauth-export-"
	timestampLayout = "2006-01-02-150405"
	fileMode        = 0o600
)

// Opener открывает источник аккаунтов по пути к базе
type Opener func(ctx context.Context, path string) (account.Repository, error)

type Config struct {
	DBPath    string
	OutputDir string
	Now       func() time.Time
}

type Result struct {
	OutputPath string
	Found      int
	Exported   int
	Skipped    int
	Written    bool
}

type Exporter struct {
	cfg    Config
	open   Opener
	report Reporter
	log    *slog.Logger
}

func New(cfg Config, open Opener, report Reporter, log *slog.Logger) *Exporter {
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	return &Exporter{
		cfg:    cfg,
		open:   open,
		report: report,
		log:    log.With("component", "exporter"),
	}
}

// OutputPath возвращает имя файла экспорта для момента t.
func OutputPath(dir string, t time.Time) string {
	return filepath.Join(dir, filePrefix+t.Format(timestampLayout)+".txt")
}

// Run выполняет экспорт целиком: чтение базы, преобразование, запись файла.
func (e *Exporter) Run(ctx context.Context) (Result, error) {
	if _, err := os.Stat(e.cfg.DBPath); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Result{}, &MissingInputError{Path: e.cfg.DBPath}
		}
		return Result{}, fmt.Errorf("stat database: %w", err)
	}

	res := Result{OutputPath: OutputPath(e.cfg.OutputDir, e.cfg.Now())}
	e.report.Start(e.cfg.DBPath, res.OutputPath)

	accounts, err := e.load(ctx)
	if err != nil {
		return res, err
	}

	res.Found = len(accounts)
	if res.Found == 0 {
		e.log.Info("no accounts with secrets", "db", e.cfg.DBPath)
		e.report.NoAccounts()
		return Result{}, nil
	}
	e.report.Found(res.Found)

	lines := make([]string, 0, len(accounts))
	for i, acc := range accounts {
		index := i + 1
		entry, err := otpauth.Build(acc)
		if err != nil {
			if !errors.Is(err, account.ErrInvalidSecret) {
				return res, fmt.Errorf("account %d: %w", index, err)
			}
			e.log.Warn("account skipped", "index", index, "type", acc.Type.String(), "error", err)
			res.Skipped++
			e.report.Skipped(index, acc, err)
			continue
		}
		lines = append(lines, entry.URI)
		res.Exported++
		e.report.Exported(index, acc, entry)
	}

	if err := write(res.OutputPath, lines); err != nil {
		return res, err
	}
	res.Written = true

	e.log.Info("export finished",
		"output", res.OutputPath,
		"exported", res.Exported,
		"skipped", res.Skipped,
	)
	e.report.Done(res)
	return res, nil
}

func (e *Exporter) load(ctx context.Context) ([]account.Account, error) {
	repo, err := e.open(ctx, e.cfg.DBPath)
	if err != nil {
		return nil, asDatabaseError("open database", err)
	}
	defer func() {
		if err := repo.Close(); err != nil {
			e.log.Warn("failed to close database", "error", err)
		}
	}()

	accounts, err := repo.ListAccounts(ctx)
	if err != nil {
		return nil, asDatabaseError("list accounts", err)
	}
	return accounts, nil
}

func asDatabaseError(op string, err error) error {
	var dbErr *storage.Error
	if errors.As(err, &dbErr) {
		return err
	}
	return storage.Wrap(op, err)
}

func write(path string, lines []string) error {
	var b strings.Builder
	for _, line := range lines {
		b.WriteString(line)
		b.WriteByte('\n')
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}
	if err := atomicwriter.WriteFile(path, []byte(b.String()), fileMode); err != nil {
		return fmt.Errorf("write export file: %w", err)
	}
	return nil
}
