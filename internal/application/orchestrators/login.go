package orchestrators

import (
	"context"
	"errors"
	"log/slog"

	"mergington/internal/domain/account"
)

// AccountStoreForLogin defines the store interface needed by Login.
type AccountStoreForLogin interface {
	GetByEmail(ctx context.Context, email string) (account.Account, error)
}

// LoginInput carries input for the login orchestrator.
type LoginInput struct {
	Email    string
	Password string
}

// LoginResult carries the result of a successful login.
type LoginResult struct {
	Email    string
	FullName string
	Role     string
}

// LoginDeps holds dependencies for Login.
type LoginDeps struct {
	AccountStore AccountStoreForLogin
}

var (
	ErrInvalidCredentials = errors.New("Incorrect email or password")
	ErrAccountInactive    = errors.New("Account is inactive")
)

// ExecuteLogin validates credentials and returns account info for token issuing.
// PRE: Valid email and password provided
// POST: Returns account info on success
// INVARIANT: Account must be active
func ExecuteLogin(ctx context.Context, input LoginInput, deps LoginDeps) (LoginResult, error) {
	if input.Email == "" || input.Password == "" {
		return LoginResult{}, ErrInvalidCredentials
	}

	acct, err := deps.AccountStore.GetByEmail(ctx, input.Email)
	if err != nil {
		slog.Info("auth_event", "event", "login_failed", "email", input.Email, "reason", "not_found")
		return LoginResult{}, ErrInvalidCredentials
	}

	if err := acct.CheckPassword(input.Password); err != nil {
		slog.Info("auth_event", "event", "login_failed", "email", input.Email, "reason", "wrong_password")
		return LoginResult{}, ErrInvalidCredentials
	}

	if !acct.IsActive {
		slog.Info("auth_event", "event", "login_blocked", "email", input.Email, "reason", "inactive")
		return LoginResult{}, ErrAccountInactive
	}

	slog.Info("auth_event", "event", "login_success", "email", input.Email, "role", acct.Role)

	return LoginResult{
		Email:    acct.Email,
		FullName: acct.FullName,
		Role:     acct.Role,
	}, nil
}
