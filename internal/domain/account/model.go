package account

import (
	"errors"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"
)

// Max length constants for user-editable fields.
const (
	MaxEmailLength    = 254
	MaxFullNameLength = 120
)

// Role constants
const (
	RoleStudent = "student"
	RoleTeacher = "teacher"
	RoleAdmin   = "admin"
)

// SchoolDomain is the email domain accounts must belong to.
const SchoolDomain = "@mergington.edu"

// ValidRoles contains all valid role values.
var ValidRoles = []string{RoleStudent, RoleTeacher, RoleAdmin}

// Domain errors
var (
	ErrEmptyEmail    = errors.New("email cannot be empty")
	ErrInvalidEmail  = errors.New("email must contain '@'")
	ErrWrongDomain   = errors.New("Only @mergington.edu email addresses are allowed")
	ErrEmptyFullName = errors.New("full name cannot be empty")
	ErrInvalidRole   = errors.New("role must be one of: student, teacher, admin")
	ErrEmptyPassword = errors.New("password cannot be empty")
	ErrWrongPassword = errors.New("incorrect password")
	ErrElevatedRole  = errors.New("cannot self-register as teacher or admin")
	ErrInactive      = errors.New("account is inactive")
)

// Account holds state for the Account concept.
type Account struct {
	ID           string
	Email        string
	FullName     string
	PasswordHash string
	Role         string
	IsActive     bool
	CreatedAt    time.Time
}

// Validate checks if the Account has valid data.
// PRE: Account struct is populated
// POST: Returns nil if valid, error otherwise
func (a *Account) Validate() error {
	if strings.TrimSpace(a.Email) == "" {
		return ErrEmptyEmail
	}
	if len(a.Email) > MaxEmailLength {
		return errors.New("email cannot exceed 254 characters")
	}
	if !strings.Contains(a.Email, "@") {
		return ErrInvalidEmail
	}
	if !strings.HasSuffix(a.Email, SchoolDomain) {
		return ErrWrongDomain
	}
	if strings.TrimSpace(a.FullName) == "" {
		return ErrEmptyFullName
	}
	if len(a.FullName) > MaxFullNameLength {
		return errors.New("full name cannot exceed 120 characters")
	}
	if !IsValidRole(a.Role) {
		return ErrInvalidRole
	}
	return nil
}

// SetPassword hashes and stores a password using bcrypt.
// PRE: plaintext is non-empty
// POST: PasswordHash is set to bcrypt hash
func (a *Account) SetPassword(plaintext string) error {
	if plaintext == "" {
		return ErrEmptyPassword
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(plaintext), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	a.PasswordHash = string(hash)
	return nil
}

// CheckPassword verifies a plaintext password against the stored hash.
// PRE: PasswordHash is set
// INVARIANT: Account fields are not mutated
func (a *Account) CheckPassword(plaintext string) error {
	if a.PasswordHash == "" {
		return ErrWrongPassword
	}
	if err := bcrypt.CompareHashAndPassword([]byte(a.PasswordHash), []byte(plaintext)); err != nil {
		return ErrWrongPassword
	}
	return nil
}

// IsAdmin returns true if the account has admin role.
// INVARIANT: Account fields are not mutated
func (a *Account) IsAdmin() bool {
	return a.Role == RoleAdmin
}

// IsStudent returns true if the account has student role.
// INVARIANT: Account fields are not mutated
func (a *Account) IsStudent() bool {
	return a.Role == RoleStudent
}

// CanSelfRegister reports whether a role may be chosen at registration time.
// Teacher and admin accounts are provisioned by an administrator.
func CanSelfRegister(role string) bool {
	return role == RoleStudent
}

// IsValidRole reports whether role is one of the closed role set.
func IsValidRole(role string) bool {
	for _, r := range ValidRoles {
		if r == role {
			return true
		}
	}
	return false
}
