package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"net/url"
	"path/filepath"
	"strings"

	_ "github.com/mattn/go-sqlite3"
	"golang.org/x/exp/slog"

	"msauthexport/internal/domain/account"
	"msauthexport/internal/infrastructure/storage"
)

type AccountRepository struct {
	db  *sql.DB
	log *slog.Logger
}

// Open открывает базу PhoneFactor только для чтения. Файлы -wal и -shm
// рядом с базой SQLite подхватывает сам.
func Open(ctx context.Context, path string, log *slog.Logger) (*AccountRepository, error) {
	source, err := dsn(path)
	if err != nil {
		return nil, storage.Wrap("open database", err)
	}

	db, err := sql.Open("sqlite3", source)
	if err != nil {
		return nil, storage.Wrap("open database", err)
	}

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, storage.Wrap("open database", err)
	}

	log.Debug("database opened", "path", path)

	return &AccountRepository{
		db:  db,
		log: log.With("component", "account_repository"),
	}, nil
}

// dsn строит URI вида file:///abs/path?mode=ro. Путь экранируется,
// иначе '?', '#' или '%' в имени каталога обрезают URI.
func dsn(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("resolve %s: %w", path, err)
	}

	p := filepath.ToSlash(abs)
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}

	u := url.URL{Scheme: "file", Path: p, RawQuery: "mode=ro"}
	return u.String(), nil
}

func (r *AccountRepository) ListAccounts(ctx context.Context) ([]account.Account, error) {
	const query = `
		SELECT name, username, oath_secret_key, account_type
		FROM accounts
		WHERE oath_secret_key IS NOT NULL
		  AND oath_secret_key != ''
		ORDER BY account_type, name, username`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		r.log.Error("failed to list accounts", "error", err)
		return nil, storage.Wrap("list accounts", err)
	}
	defer rows.Close()

	var accounts []account.Account
	for rows.Next() {
		var acc account.Account
		var typ sql.NullInt64
		if err := rows.Scan(&acc.Name, &acc.Username, &acc.SecretKey, &typ); err != nil {
			return nil, storage.Wrap("scan account", err)
		}
		// NULL account_type ведет себя как стандартный TOTP
		acc.Type = account.Type(typ.Int64)
		accounts = append(accounts, acc)
	}
	if err := rows.Err(); err != nil {
		return nil, storage.Wrap("list accounts", err)
	}

	r.log.Debug("accounts loaded", "count", len(accounts))
	return accounts, nil
}

func (r *AccountRepository) Close() error {
	return r.db.Close()
}
