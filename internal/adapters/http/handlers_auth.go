package web

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"mergington/internal/adapters/http/middleware"
	accountStore "mergington/internal/adapters/storage/account"
	"mergington/internal/application/orchestrators"
	"mergington/internal/auth"
	"mergington/internal/domain/account"
)

const detailInvalidCredentials = "Could not validate credentials"

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

type registerRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	FullName string `json:"full_name"`
	Role     string `json:"role"`
}

type userResponse struct {
	Email    string `json:"email"`
	FullName string `json:"full_name"`
	Role     string `json:"role"`
	IsActive bool   `json:"is_active"`
}

// handleLogin validates credentials and issues a bearer token.
// POST /auth/login
func handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeDetail(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	result, err := orchestrators.ExecuteLogin(r.Context(), orchestrators.LoginInput{
		Email:    req.Email,
		Password: req.Password,
	}, orchestrators.LoginDeps{AccountStore: stores.AccountStore})
	switch {
	case errors.Is(err, orchestrators.ErrInvalidCredentials):
		writeDetail(w, http.StatusUnauthorized, err.Error())
		return
	case errors.Is(err, orchestrators.ErrAccountInactive):
		writeDetail(w, http.StatusForbidden, err.Error())
		return
	case err != nil:
		slog.Error("login_failed", "error", err)
		writeDetail(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	token, err := auth.NewAccessToken(config.TokenSecret, result.Email, result.Role)
	if err != nil {
		slog.Error("token_issue_failed", "error", err)
		writeDetail(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	writeJSON(w, http.StatusOK, tokenResponse{AccessToken: token, TokenType: "bearer"})
}

// handleRegister creates a student account.
// POST /auth/register
func handleRegister(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeDetail(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	acct, err := orchestrators.ExecuteRegister(r.Context(), orchestrators.RegisterInput{
		Email:    req.Email,
		Password: req.Password,
		FullName: req.FullName,
		Role:     req.Role,
	}, orchestrators.RegisterDeps{
		AccountStore: stores.AccountStore,
		EmailSender:  config.EmailSender,
		EmailFrom:    config.EmailFrom,
		GenerateID:   newID,
		Now:          now,
	})
	switch {
	case errors.Is(err, account.ErrElevatedRole):
		writeDetail(w, http.StatusForbidden, "Cannot self-register as teacher or admin. Contact an administrator.")
		return
	case errors.Is(err, orchestrators.ErrEmailAlreadyExists),
		errors.Is(err, account.ErrWrongDomain),
		errors.Is(err, account.ErrEmptyEmail),
		errors.Is(err, account.ErrInvalidEmail),
		errors.Is(err, account.ErrEmptyFullName),
		errors.Is(err, account.ErrEmptyPassword),
		errors.Is(err, account.ErrInvalidRole):
		writeDetail(w, http.StatusBadRequest, err.Error())
		return
	case err != nil:
		slog.Error("register_failed", "error", err)
		writeDetail(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	writeJSON(w, http.StatusCreated, userResponse{
		Email:    acct.Email,
		FullName: acct.FullName,
		Role:     acct.Role,
		IsActive: acct.IsActive,
	})
}

// handleMe returns the profile of the authenticated user.
// GET /auth/me
func handleMe(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.GetIdentityFromContext(r.Context())
	if !ok {
		writeDetail(w, http.StatusUnauthorized, detailInvalidCredentials)
		return
	}

	acct, err := stores.AccountStore.GetByEmail(r.Context(), identity.Email)
	if err != nil {
		writeDetail(w, http.StatusUnauthorized, "User not found")
		return
	}

	writeJSON(w, http.StatusOK, userResponse{
		Email:    acct.Email,
		FullName: acct.FullName,
		Role:     acct.Role,
		IsActive: acct.IsActive,
	})
}

// handleUsers lists all accounts. Admin only.
// GET /auth/users
func handleUsers(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.GetIdentityFromContext(r.Context())
	if !ok {
		writeDetail(w, http.StatusUnauthorized, detailInvalidCredentials)
		return
	}
	if !identity.IsAdmin() {
		writeDetail(w, http.StatusForbidden, "Admin privileges required")
		return
	}

	accounts, err := stores.AccountStore.List(r.Context(), accountStore.ListFilter{})
	if err != nil {
		slog.Error("list_users_failed", "error", err)
		writeDetail(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	users := make([]userResponse, 0, len(accounts))
	for _, a := range accounts {
		users = append(users, userResponse{
			Email:    a.Email,
			FullName: a.FullName,
			Role:     a.Role,
			IsActive: a.IsActive,
		})
	}
	writeJSON(w, http.StatusOK, users)
}
