package session

import (
	"context"
	"errors"
	"log/slog"

	"mergington/internal/client/api"
)

// Verifier is the single source of truth for session validity. Any failure
// to exchange the token for an identity, including network-level failures,
// means the session cannot be trusted and must be discarded by the caller.
type Verifier struct {
	API   *api.Client
	Store *Store
}

// Verify exchanges the stored token for the current identity.
// POST: On success the store's cached identity is replaced wholesale
// POST: On any failure the error is api.ErrSessionInvalid; there is no
// transient-failure path because the client has no partial-trust state
func (v *Verifier) Verify(ctx context.Context) (api.Identity, error) {
	token, ok := v.Store.Token()
	if !ok {
		return api.Identity{}, api.ErrSessionInvalid
	}

	id, err := v.API.Me(ctx, token)
	if err != nil {
		if !errors.Is(err, api.ErrSessionInvalid) {
			slog.Debug("session_verify_failed", "error", err)
		}
		return api.Identity{}, api.ErrSessionInvalid
	}

	v.Store.SetIdentity(id)
	return id, nil
}
