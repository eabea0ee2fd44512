package account

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"architect/internal/adapters/storage"
	"architect/internal/apperr"
	domain "architect/internal/domain/account"
)

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore creates a new account store.
func NewSQLiteStore(db *sql.DB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

// Get retrieves an account by id.
func (s *SQLiteStore) Get(ctx context.Context, id string) (domain.Account, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT id, email, password_hash, role, created_at, failed_logins, locked_until FROM account WHERE id = ?", id)
	return scanAccount(row, "account.Get", id)
}

// GetByEmail retrieves an account by email. Emails are matched
// case-insensitively and stored lowercased by Save.
func (s *SQLiteStore) GetByEmail(ctx context.Context, email string) (domain.Account, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT id, email, password_hash, role, created_at, failed_logins, locked_until FROM account WHERE email = ?",
		strings.ToLower(strings.TrimSpace(email)))
	return scanAccount(row, "account.GetByEmail", email)
}

// Save upserts an account by id.
// PRE: a has been validated
// POST: The row matches a field for field
func (s *SQLiteStore) Save(ctx context.Context, a domain.Account) error {
	var lockedUntil any
	if !a.LockedUntil.IsZero() {
		lockedUntil = a.LockedUntil.UTC().Format(time.RFC3339Nano)
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO account (id, email, password_hash, role, created_at, failed_logins, locked_until)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			email = excluded.email,
			password_hash = excluded.password_hash,
			role = excluded.role,
			failed_logins = excluded.failed_logins,
			locked_until = excluded.locked_until`,
		a.ID, strings.ToLower(strings.TrimSpace(a.Email)), a.PasswordHash, a.Role,
		a.CreatedAt.UTC().Format(time.RFC3339Nano), a.FailedLogins, lockedUntil)
	return storage.ClassifyWriteError("account.Save", err)
}

// Count returns the total number of accounts.
func (s *SQLiteStore) Count(ctx context.Context) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM account").Scan(&n)
	return n, err
}

func scanAccount(row *sql.Row, op, key string) (domain.Account, error) {
	var a domain.Account
	var createdAt string
	var lockedUntil sql.NullString
	err := row.Scan(&a.ID, &a.Email, &a.PasswordHash, &a.Role, &createdAt, &a.FailedLogins, &lockedUntil)
	if err == sql.ErrNoRows {
		return domain.Account{}, apperr.Wrap(apperr.KindNotFound, op, fmt.Errorf("account %q not found", key))
	}
	if err != nil {
		return domain.Account{}, err
	}
	a.CreatedAt, err = time.Parse(time.RFC3339Nano, createdAt)
	if err != nil {
		return domain.Account{}, fmt.Errorf("corrupt created_at: %w", err)
	}
	if lockedUntil.Valid {
		a.LockedUntil, err = time.Parse(time.RFC3339Nano, lockedUntil.String)
		if err != nil {
			return domain.Account{}, fmt.Errorf("corrupt locked_until: %w", err)
		}
	}
	return a, nil
}
