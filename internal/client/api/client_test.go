package api

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestLogin(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/auth/login" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"access_token":"tok-123","token_type":"bearer"}`))
	}))
	defer srv.Close()

	token, err := NewClient(srv.URL).Login(context.Background(), "a@mergington.edu", "pw")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if token != "tok-123" {
		t.Errorf("token = %q", token)
	}
}

func TestLoginRejected(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"detail":"Incorrect email or password"}`))
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL).Login(context.Background(), "a@mergington.edu", "bad")
	var authErr *AuthError
	if !errors.As(err, &authErr) {
		t.Fatalf("want AuthError, got %T: %v", err, err)
	}
	if authErr.Error() != "Incorrect email or password" {
		t.Errorf("message = %q", authErr.Error())
	}
}

func TestAuthErrorFallbackMessage(t *testing.T) {
	// No detail body: the error falls back to a generic message
	err := &AuthError{StatusCode: 500}
	if err.Error() != "authentication failed (status 500)" {
		t.Errorf("message = %q", err.Error())
	}
}

func TestMeSendsBearerToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer tok-123" {
			t.Errorf("Authorization = %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"full_name":"Sam Student","role":"student","email":"sam@mergington.edu"}`))
	}))
	defer srv.Close()

	id, err := NewClient(srv.URL).Me(context.Background(), "tok-123")
	if err != nil {
		t.Fatalf("me: %v", err)
	}
	want := Identity{FullName: "Sam Student", Role: "student", Email: "sam@mergington.edu"}
	if id != want {
		t.Errorf("identity = %+v, want %+v", id, want)
	}
}

func TestMeUnauthorized(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL).Me(context.Background(), "expired")
	if !errors.Is(err, ErrSessionInvalid) {
		t.Fatalf("want ErrSessionInvalid, got %v", err)
	}
}

func TestActivities(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"Chess Club":{"description":"Chess","schedule":"Fridays","max_participants":2,"participants":["a@x.com"]}}`))
	}))
	defer srv.Close()

	catalog, err := NewClient(srv.URL).Activities(context.Background(), "tok")
	if err != nil {
		t.Fatalf("activities: %v", err)
	}
	chess := catalog["Chess Club"]
	if chess.MaxParticipants != 2 || len(chess.Participants) != 1 {
		t.Errorf("unexpected entry: %+v", chess)
	}
}

func TestSignupEscapesActivityName(t *testing.T) {
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.EscapedPath()
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"message":"Successfully signed up for Chess Club"}`))
	}))
	defer srv.Close()

	msg, err := NewClient(srv.URL).Signup(context.Background(), "tok", "Chess Club")
	if err != nil {
		t.Fatalf("signup: %v", err)
	}
	if gotPath != "/activities/Chess%20Club/signup" {
		t.Errorf("path = %q", gotPath)
	}
	if msg != "Successfully signed up for Chess Club" {
		t.Errorf("message = %q", msg)
	}
}

func TestSignupRejectedVerbatim(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"detail":"Activity is full"}`))
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL).Signup(context.Background(), "tok", "Chess Club")
	var cmdErr *CommandError
	if !errors.As(err, &cmdErr) {
		t.Fatalf("want CommandError, got %T: %v", err, err)
	}
	if cmdErr.Error() != "Activity is full" {
		t.Errorf("message = %q", cmdErr.Error())
	}
}

func TestUnregister(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodDelete {
			t.Errorf("method = %s", r.Method)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"message":"Successfully unregistered from Chess Club"}`))
	}))
	defer srv.Close()

	msg, err := NewClient(srv.URL).Unregister(context.Background(), "tok", "Chess Club")
	if err != nil {
		t.Fatalf("unregister: %v", err)
	}
	if msg != "Successfully unregistered from Chess Club" {
		t.Errorf("message = %q", msg)
	}
}

func TestTransportError(t *testing.T) {
	// Connect to a closed server
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	_, err := NewClient(srv.URL).Activities(context.Background(), "tok")
	var transportErr *TransportError
	if !errors.As(err, &transportErr) {
		t.Fatalf("want TransportError, got %T: %v", err, err)
	}
}
