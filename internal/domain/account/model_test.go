package account_test

import (
	"testing"
	"time"

	"architect/internal/domain/account"
)

// TestAccount_Validate tests validation of Account.
func TestAccount_Validate(t *testing.T) {
	tests := []struct {
		name    string
		acct    account.Account
		wantErr bool
	}{
		{
			name:    "valid admin",
			acct:    account.Account{ID: "1", Email: "admin@example.com", Role: account.RoleAdmin},
			wantErr: false,
		},
		{
			name:    "valid member",
			acct:    account.Account{ID: "2", Email: "lifter@example.com", Role: account.RoleMember},
			wantErr: false,
		},
		{
			name:    "empty email",
			acct:    account.Account{ID: "3", Email: "", Role: account.RoleMember},
			wantErr: true,
		},
		{
			name:    "email without at sign",
			acct:    account.Account{ID: "4", Email: "not-an-email", Role: account.RoleMember},
			wantErr: true,
		},
		{
			name:    "invalid role",
			acct:    account.Account{ID: "5", Email: "x@example.com", Role: "coach"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.acct.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Account.Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

// TestAccount_PasswordRoundTrip tests hashing and verification.
func TestAccount_PasswordRoundTrip(t *testing.T) {
	a := account.Account{ID: "1", Email: "x@example.com", Role: account.RoleMember}

	if err := a.SetPassword("short"); err != account.ErrPasswordTooShort {
		t.Errorf("expected ErrPasswordTooShort, got %v", err)
	}
	if err := a.SetPassword(""); err != account.ErrEmptyPassword {
		t.Errorf("expected ErrEmptyPassword, got %v", err)
	}

	if err := a.SetPassword("a long enough password"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := a.CheckPassword("a long enough password"); err != nil {
		t.Errorf("expected password to verify, got %v", err)
	}
	if err := a.CheckPassword("wrong password entirely"); err != account.ErrWrongPassword {
		t.Errorf("expected ErrWrongPassword, got %v", err)
	}
}

// TestAccount_Lockout tests failed-login lockout behavior.
func TestAccount_Lockout(t *testing.T) {
	now := time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC)
	a := account.Account{ID: "1", Email: "x@example.com", Role: account.RoleMember}

	for i := 0; i < 4; i++ {
		a.RecordFailedLogin(now)
	}
	if a.IsLocked(now) {
		t.Error("expected account unlocked after 4 failures")
	}

	a.RecordFailedLogin(now)
	if !a.IsLocked(now) {
		t.Error("expected account locked after 5 failures")
	}
	if a.IsLocked(now.Add(16 * time.Minute)) {
		t.Error("expected lock to expire after 15 minutes")
	}

	a.ResetFailedLogins()
	if a.FailedLogins != 0 || a.IsLocked(now) {
		t.Error("expected reset to clear lockout")
	}
}
