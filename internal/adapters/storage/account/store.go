package account

import (
	"context"

	domain "architect/internal/domain/account"
)

// Store persists accounts.
type Store interface {
	Get(ctx context.Context, id string) (domain.Account, error)
	GetByEmail(ctx context.Context, email string) (domain.Account, error)
	Save(ctx context.Context, a domain.Account) error
	Count(ctx context.Context) (int, error)
}
