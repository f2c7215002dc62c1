package orchestrators

import (
	"context"
	"testing"
	"time"

	accountStore "mergington/internal/adapters/storage/account"
	"mergington/internal/domain/account"
)

// mockAccountStore implements the account store interfaces for testing.
type mockAccountStore struct {
	accounts  map[string]account.Account
	lookupErr error // returned by GetByEmail when set
}

func newMockAccountStore() *mockAccountStore {
	return &mockAccountStore{accounts: make(map[string]account.Account)}
}

// GetByEmail implements the mock account store.
// PRE: email is non-empty
// POST: returns account or error
func (m *mockAccountStore) GetByEmail(_ context.Context, email string) (account.Account, error) {
	if m.lookupErr != nil {
		return account.Account{}, m.lookupErr
	}
	for _, a := range m.accounts {
		if a.Email == email {
			return a, nil
		}
	}
	return account.Account{}, accountStore.ErrNotFound
}

// Save implements the mock account store.
// PRE: account is valid
// POST: account is persisted
func (m *mockAccountStore) Save(_ context.Context, a account.Account) error {
	m.accounts[a.ID] = a
	return nil
}

// Count implements the mock account store.
// PRE: none
// POST: returns number of stored accounts
func (m *mockAccountStore) Count(_ context.Context) (int, error) {
	return len(m.accounts), nil
}

var fixedTime = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func fixedNow() time.Time { return fixedTime }

func fixedID() string { return "test-id-001" }

func seedStudent(t *testing.T, store *mockAccountStore, email, password string) account.Account {
	t.Helper()
	acct := account.Account{
		ID:        "acct-" + email,
		Email:     email,
		FullName:  "Test Student",
		Role:      account.RoleStudent,
		IsActive:  true,
		CreatedAt: fixedTime,
	}
	if err := acct.SetPassword(password); err != nil {
		t.Fatalf("SetPassword: %v", err)
	}
	store.accounts[acct.ID] = acct
	return acct
}

// TestExecuteLogin_Valid tests a successful login.
func TestExecuteLogin_Valid(t *testing.T) {
	store := newMockAccountStore()
	seedStudent(t, store, "ana@mergington.edu", "open sesame plz")

	result, err := ExecuteLogin(context.Background(),
		LoginInput{Email: "ana@mergington.edu", Password: "open sesame plz"},
		LoginDeps{AccountStore: store})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Email != "ana@mergington.edu" {
		t.Errorf("Email = %s, want ana@mergington.edu", result.Email)
	}
	if result.Role != account.RoleStudent {
		t.Errorf("Role = %s, want student", result.Role)
	}
	if result.FullName != "Test Student" {
		t.Errorf("FullName = %s, want Test Student", result.FullName)
	}
}

// TestExecuteLogin_WrongPassword tests the generic rejection.
func TestExecuteLogin_WrongPassword(t *testing.T) {
	store := newMockAccountStore()
	seedStudent(t, store, "ana@mergington.edu", "open sesame plz")

	_, err := ExecuteLogin(context.Background(),
		LoginInput{Email: "ana@mergington.edu", Password: "guess"},
		LoginDeps{AccountStore: store})
	if err != ErrInvalidCredentials {
		t.Errorf("error = %v, want ErrInvalidCredentials", err)
	}
}

// TestExecuteLogin_UnknownEmail tests that unknown users get the same rejection.
func TestExecuteLogin_UnknownEmail(t *testing.T) {
	store := newMockAccountStore()

	_, err := ExecuteLogin(context.Background(),
		LoginInput{Email: "ghost@mergington.edu", Password: "whatever"},
		LoginDeps{AccountStore: store})
	if err != ErrInvalidCredentials {
		t.Errorf("error = %v, want ErrInvalidCredentials", err)
	}
}

// TestExecuteLogin_Inactive tests that deactivated accounts cannot log in.
func TestExecuteLogin_Inactive(t *testing.T) {
	store := newMockAccountStore()
	acct := seedStudent(t, store, "ana@mergington.edu", "open sesame plz")
	acct.IsActive = false
	store.accounts[acct.ID] = acct

	_, err := ExecuteLogin(context.Background(),
		LoginInput{Email: "ana@mergington.edu", Password: "open sesame plz"},
		LoginDeps{AccountStore: store})
	if err != ErrAccountInactive {
		t.Errorf("error = %v, want ErrAccountInactive", err)
	}
}
