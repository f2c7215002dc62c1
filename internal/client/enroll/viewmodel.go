package enroll

import (
	"context"
	"errors"

	"mergington/internal/client/api"
	"mergington/internal/client/session"
)

// ViewModel fetches catalog snapshots and issues enrollment commands. It holds
// no catalog state of its own: every fetch returns a snapshot that fully
// replaces whatever the caller rendered before.
//
// Commands never pre-check eligibility. The server is the sole arbiter; a
// stale view simply produces a rejection whose reason is surfaced verbatim.
type ViewModel struct {
	API   *api.Client
	Store *session.Store

	// Invalidate is the session recovery action, invoked exactly once per
	// unauthorized response.
	Invalidate func()
}

// FetchCatalog retrieves the full catalog snapshot.
// POST: An unauthorized response invalidates the session; any other failure
// is a catalog-level error that leaves the session alone
func (vm *ViewModel) FetchCatalog(ctx context.Context) (api.Catalog, error) {
	token, ok := vm.Store.Token()
	if !ok {
		vm.Invalidate()
		return nil, api.ErrSessionInvalid
	}

	catalog, err := vm.API.Activities(ctx, token)
	if errors.Is(err, api.ErrSessionInvalid) {
		vm.Invalidate()
		return nil, err
	}
	if err != nil {
		return nil, err
	}
	return catalog, nil
}

// Rows derives the viewer's per-activity state from a catalog snapshot.
func (vm *ViewModel) Rows(catalog api.Catalog) []Row {
	id, _ := vm.Store.Identity()
	return DeriveRows(id, catalog)
}

// Signup enrolls the current user in the named activity, then re-fetches the
// catalog so the view reflects authoritative counts. The returned snapshot is
// what the caller must render; membership is never inferred locally.
func (vm *ViewModel) Signup(ctx context.Context, activityName string) (string, api.Catalog, error) {
	return vm.command(ctx, activityName, vm.API.Signup)
}

// Unregister removes the current user from the named activity. Same re-fetch
// rule as Signup.
func (vm *ViewModel) Unregister(ctx context.Context, activityName string) (string, api.Catalog, error) {
	return vm.command(ctx, activityName, vm.API.Unregister)
}

func (vm *ViewModel) command(ctx context.Context, activityName string,
	send func(ctx context.Context, token, name string) (string, error)) (string, api.Catalog, error) {

	token, ok := vm.Store.Token()
	if !ok {
		vm.Invalidate()
		return "", nil, api.ErrSessionInvalid
	}

	message, err := send(ctx, token, activityName)
	if errors.Is(err, api.ErrSessionInvalid) {
		vm.Invalidate()
		return "", nil, err
	}
	if err != nil {
		return "", nil, err
	}

	// The command settled on the server; the view is not settled until the
	// catalog has been re-fetched. Counts may have moved by more than one.
	catalog, err := vm.FetchCatalog(ctx)
	if err != nil {
		return message, nil, err
	}
	return message, catalog, nil
}
