package enroll

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"mergington/internal/client/api"
	"mergington/internal/client/session"
)

// fakeCatalogServer serves a mutable catalog and counts fetches, so tests can
// observe the re-fetch-after-mutation protocol.
type fakeCatalogServer struct {
	catalog      map[string]api.Activity
	fetches      int
	rejectDetail string
	rejectStatus int
}

func (s *fakeCatalogServer) handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /activities", func(w http.ResponseWriter, r *http.Request) {
		s.fetches++
		if r.Header.Get("Authorization") != "Bearer tok-valid" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		json.NewEncoder(w).Encode(s.catalog)
	})
	mux.HandleFunc("POST /activities/{name}/signup", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer tok-valid" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		if s.rejectStatus != 0 {
			w.WriteHeader(s.rejectStatus)
			json.NewEncoder(w).Encode(map[string]string{"detail": s.rejectDetail})
			return
		}
		name := r.PathValue("name")
		a := s.catalog[name]
		a.Participants = append(a.Participants, "b@x.com")
		s.catalog[name] = a
		json.NewEncoder(w).Encode(map[string]string{"message": "Successfully signed up for " + name})
	})
	mux.HandleFunc("DELETE /activities/{name}/unregister", func(w http.ResponseWriter, r *http.Request) {
		name := r.PathValue("name")
		a := s.catalog[name]
		a.Participants = nil
		s.catalog[name] = a
		json.NewEncoder(w).Encode(map[string]string{"message": "Successfully unregistered from " + name})
	})
	return mux
}

func newTestViewModel(t *testing.T, fake *fakeCatalogServer) (*ViewModel, *int) {
	t.Helper()
	srv := httptest.NewServer(fake.handler())
	t.Cleanup(srv.Close)

	store := session.NewStoreAt(filepath.Join(t.TempDir(), "token"))
	store.SetToken("tok-valid")
	store.SetIdentity(api.Identity{FullName: "B", Role: "student", Email: "b@x.com"})

	invalidations := 0
	vm := &ViewModel{
		API:        api.NewClient(srv.URL),
		Store:      store,
		Invalidate: func() { invalidations++; store.Clear() },
	}
	return vm, &invalidations
}

func TestSignupRefetchesCatalog(t *testing.T) {
	fake := &fakeCatalogServer{catalog: map[string]api.Activity{
		"Chess Club": {MaxParticipants: 2, Participants: []string{"a@x.com"}},
	}}
	vm, _ := newTestViewModel(t, fake)

	message, catalog, err := vm.Signup(context.Background(), "Chess Club")
	if err != nil {
		t.Fatalf("signup: %v", err)
	}
	if message != "Successfully signed up for Chess Club" {
		t.Errorf("message = %q", message)
	}
	if fake.fetches != 1 {
		t.Errorf("fetches = %d, want 1 (catalog must be re-fetched after the command)", fake.fetches)
	}

	// The returned snapshot carries the authoritative counts
	rows := vm.Rows(catalog)
	if len(rows) != 1 {
		t.Fatalf("rows = %d", len(rows))
	}
	if rows[0].SpotsLeft != 0 || rows[0].CanJoin || !rows[0].CanLeave {
		t.Errorf("row after signup = %+v", rows[0])
	}
}

func TestSignupRejectionSkipsRefetch(t *testing.T) {
	fake := &fakeCatalogServer{
		catalog:      map[string]api.Activity{"Chess Club": {MaxParticipants: 1, Participants: []string{"a@x.com"}}},
		rejectStatus: http.StatusBadRequest,
		rejectDetail: "Activity is full",
	}
	vm, invalidations := newTestViewModel(t, fake)

	_, _, err := vm.Signup(context.Background(), "Chess Club")
	var cmdErr *api.CommandError
	if !errors.As(err, &cmdErr) {
		t.Fatalf("want CommandError, got %T: %v", err, err)
	}
	if cmdErr.Error() != "Activity is full" {
		t.Errorf("message = %q", cmdErr.Error())
	}
	if fake.fetches != 0 {
		t.Errorf("fetches = %d, want 0 after a rejected command", fake.fetches)
	}
	if *invalidations != 0 {
		t.Errorf("rejected command must not invalidate the session")
	}
}

func TestUnregisterRefetchesCatalog(t *testing.T) {
	fake := &fakeCatalogServer{catalog: map[string]api.Activity{
		"Chess Club": {MaxParticipants: 2, Participants: []string{"b@x.com"}},
	}}
	vm, _ := newTestViewModel(t, fake)

	message, catalog, err := vm.Unregister(context.Background(), "Chess Club")
	if err != nil {
		t.Fatalf("unregister: %v", err)
	}
	if message != "Successfully unregistered from Chess Club" {
		t.Errorf("message = %q", message)
	}
	rows := vm.Rows(catalog)
	if rows[0].SpotsLeft != 2 || !rows[0].CanJoin || rows[0].CanLeave {
		t.Errorf("row after unregister = %+v", rows[0])
	}
}

func TestUnauthorizedFetchInvalidatesSession(t *testing.T) {
	fake := &fakeCatalogServer{catalog: map[string]api.Activity{}}
	vm, invalidations := newTestViewModel(t, fake)
	vm.Store.SetToken("tok-expired")

	_, err := vm.FetchCatalog(context.Background())
	if !errors.Is(err, api.ErrSessionInvalid) {
		t.Fatalf("want ErrSessionInvalid, got %v", err)
	}
	if *invalidations != 1 {
		t.Errorf("invalidations = %d, want 1", *invalidations)
	}
	if _, ok := vm.Store.Token(); ok {
		t.Error("token survived invalidation")
	}
}

func TestFetchFailureKeepsSession(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	store := session.NewStoreAt(filepath.Join(t.TempDir(), "token"))
	store.SetToken("tok-valid")
	invalidations := 0
	vm := &ViewModel{
		API:        api.NewClient(srv.URL),
		Store:      store,
		Invalidate: func() { invalidations++ },
	}

	_, err := vm.FetchCatalog(context.Background())
	var fetchErr *api.FetchError
	if !errors.As(err, &fetchErr) {
		t.Fatalf("want FetchError, got %T: %v", err, err)
	}
	if invalidations != 0 {
		t.Error("a server error must not clear the session")
	}
	if _, ok := store.Token(); !ok {
		t.Error("token should survive a non-auth failure")
	}
}

func TestMissingTokenInvalidates(t *testing.T) {
	fake := &fakeCatalogServer{catalog: map[string]api.Activity{}}
	vm, invalidations := newTestViewModel(t, fake)
	vm.Store.Clear()

	if _, err := vm.FetchCatalog(context.Background()); !errors.Is(err, api.ErrSessionInvalid) {
		t.Fatalf("want ErrSessionInvalid, got %v", err)
	}
	if *invalidations != 1 {
		t.Errorf("invalidations = %d, want 1", *invalidations)
	}
}
