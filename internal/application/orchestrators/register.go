package orchestrators

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"mergington/internal/adapters/email"
	accountStore "mergington/internal/adapters/storage/account"
	"mergington/internal/domain/account"
)

// AccountStoreForRegister defines the store interface needed by Register.
type AccountStoreForRegister interface {
	GetByEmail(ctx context.Context, email string) (account.Account, error)
	Save(ctx context.Context, a account.Account) error
}

// RegisterInput carries input for the register orchestrator.
type RegisterInput struct {
	Email    string
	Password string
	FullName string
	Role     string
}

// RegisterDeps holds dependencies for Register.
type RegisterDeps struct {
	AccountStore AccountStoreForRegister
	EmailSender  email.Sender
	EmailFrom    string
	GenerateID   func() string
	Now          func() time.Time
}

var ErrEmailAlreadyExists = errors.New("Email already registered")

// ExecuteRegister creates a new account and sends a welcome email.
// Welcome email failures are logged, never surfaced: the account is created
// either way.
// PRE: input fields are populated; role is the caller's requested role
// POST: Account persisted with hashed password, or a rejection error
// INVARIANT: Only the student role may self-register
func ExecuteRegister(ctx context.Context, input RegisterInput, deps RegisterDeps) (account.Account, error) {
	role := input.Role
	if role == "" {
		role = account.RoleStudent
	}
	if account.IsValidRole(role) && !account.CanSelfRegister(role) {
		return account.Account{}, account.ErrElevatedRole
	}

	// A store failure here must surface as-is, not read as "email free"
	_, err := deps.AccountStore.GetByEmail(ctx, input.Email)
	switch {
	case err == nil:
		return account.Account{}, ErrEmailAlreadyExists
	case !errors.Is(err, accountStore.ErrNotFound):
		return account.Account{}, fmt.Errorf("check existing account: %w", err)
	}

	acct := account.Account{
		ID:        deps.GenerateID(),
		Email:     input.Email,
		FullName:  input.FullName,
		Role:      role,
		IsActive:  true,
		CreatedAt: deps.Now(),
	}
	if err := acct.Validate(); err != nil {
		return account.Account{}, err
	}
	if err := acct.SetPassword(input.Password); err != nil {
		return account.Account{}, err
	}

	if err := deps.AccountStore.Save(ctx, acct); err != nil {
		return account.Account{}, fmt.Errorf("save account: %w", err)
	}

	slog.Info("auth_event", "event", "registered", "email", acct.Email, "role", acct.Role)

	if deps.EmailSender != nil {
		_, err := deps.EmailSender.Send(ctx, email.SendRequest{
			To:      []string{acct.Email},
			From:    deps.EmailFrom,
			Subject: "Welcome to Mergington High activities",
			HTML: fmt.Sprintf("<p>Hi %s,</p><p>Your account is ready. Log in to browse and sign up for extracurricular activities.</p>",
				acct.FullName),
		})
		if err != nil {
			slog.Error("welcome_email_failed", "email", acct.Email, "error", err)
		}
	}

	return acct, nil
}
