package roster

import (
	"context"
	"errors"
	"log/slog"

	"mergington/internal/client/api"
	"mergington/internal/client/session"
)

// ViewModel fetches the read-only account roster. The admin gate here is a
// courtesy for the UI; the server enforces the authoritative check and
// rejects non-admin tokens regardless.
type ViewModel struct {
	API   *api.Client
	Store *session.Store

	Invalidate func()
}

// CanView reports whether the roster should be offered to the viewer.
func (vm *ViewModel) CanView() bool {
	id, ok := vm.Store.Identity()
	return ok && id.Role == "admin"
}

// Fetch retrieves the account list snapshot. An unauthorized response
// invalidates the session; other failures are logged and surfaced so the
// view can degrade inline without touching the session.
func (vm *ViewModel) Fetch(ctx context.Context) ([]api.Account, error) {
	token, ok := vm.Store.Token()
	if !ok {
		vm.Invalidate()
		return nil, api.ErrSessionInvalid
	}

	accounts, err := vm.API.Users(ctx, token)
	if errors.Is(err, api.ErrSessionInvalid) {
		vm.Invalidate()
		return nil, err
	}
	if err != nil {
		slog.Warn("roster_fetch_failed", "error", err)
		return nil, err
	}
	return accounts, nil
}
