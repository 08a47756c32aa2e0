package account

import (
	"context"
)

// Repository - источник аккаунтов только для чтения
type Repository interface {
	// ListAccounts возвращает аккаунты с непустым секретом,
	// отсортированные по (account_type, name, username).
	ListAccounts(ctx context.Context) ([]Account, error)
	Close() error
}
