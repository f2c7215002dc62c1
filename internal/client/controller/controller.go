package controller

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"mergington/internal/client/api"
	"mergington/internal/client/session"
)

// RegisterRedirectDelay is how long the UI lingers on a successful
// registration before returning to the login flow.
const RegisterRedirectDelay = 2 * time.Second

// ErrPasswordMismatch is the local validation failure for registration. It is
// raised before any request is issued.
var ErrPasswordMismatch = errors.New("Passwords do not match")

// Controller drives the login, registration, and logout flows. It is the only
// writer of the session store.
type Controller struct {
	API      *api.Client
	Store    *session.Store
	Verifier *session.Verifier
}

// New wires a controller and its verifier around one store and API client.
func New(client *api.Client, store *session.Store) *Controller {
	return &Controller{
		API:      client,
		Store:    store,
		Verifier: &session.Verifier{API: client, Store: store},
	}
}

// Login exchanges credentials for a session. The login is complete only once
// the returned token has been verified: a token that cannot be exchanged for
// an identity is discarded and the login reported as failed.
// POST: On success the store holds a verified token and identity
// POST: On failure the store is left unauthenticated
func (c *Controller) Login(ctx context.Context, email, password string) (api.Identity, error) {
	token, err := c.API.Login(ctx, email, password)
	if err != nil {
		return api.Identity{}, err
	}

	if err := c.Store.SetToken(token); err != nil {
		return api.Identity{}, fmt.Errorf("persist token: %w", err)
	}

	id, err := c.Verifier.Verify(ctx)
	if err != nil {
		// The server granted a token it will not honor. Roll back.
		c.Invalidate()
		return api.Identity{}, err
	}

	slog.Info("auth_event", "event", "login", "email", id.Email, "role", id.Role)
	return id, nil
}

// Register creates a student account. The password confirmation is checked
// locally first; a mismatch issues no request.
func (c *Controller) Register(ctx context.Context, fullName, email, password, confirmPassword string) error {
	if password != confirmPassword {
		return ErrPasswordMismatch
	}
	if err := c.API.Register(ctx, fullName, email, password); err != nil {
		return err
	}
	slog.Info("auth_event", "event", "registered", "email", email)
	return nil
}

// Resume attempts silent re-verification of a persisted token at startup.
// An unverifiable token is cleared.
func (c *Controller) Resume(ctx context.Context) (api.Identity, error) {
	id, err := c.Verifier.Verify(ctx)
	if err != nil {
		c.Invalidate()
		return api.Identity{}, err
	}
	return id, nil
}

// Logout clears the session. Safe to call when no session exists.
func (c *Controller) Logout() {
	c.Invalidate()
	slog.Info("auth_event", "event", "logout")
}

// Invalidate is the single recovery action for a rejected session: clear the
// store and return to the unauthenticated state. Idempotent.
func (c *Controller) Invalidate() {
	if err := c.Store.Clear(); err != nil {
		slog.Warn("session_clear_failed", "error", err)
	}
}
