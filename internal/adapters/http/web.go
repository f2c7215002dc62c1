package web

import (
	"net/http"
	"time"

	"github.com/google/uuid"

	"mergington/internal/adapters/email"
	"mergington/internal/adapters/http/middleware"
	accountStore "mergington/internal/adapters/storage/account"
	activityStore "mergington/internal/adapters/storage/activity"
)

// Stores holds all storage dependencies.
type Stores struct {
	AccountStore  accountStore.Store
	ActivityStore activityStore.Store
}

// Config carries the non-storage dependencies of the HTTP layer.
type Config struct {
	TokenSecret  string
	EmailSender  email.Sender
	EmailFrom    string
	EmailReplyTo string
}

// Global stores instance (set by NewMux)
var stores *Stores

// Global config instance (set by NewMux)
var config Config

// RateLimitPerSecond controls the per-IP rate limit. Tests can increase this.
var RateLimitPerSecond = 10

// Global rate limiter instance (set by NewMux)
var limiter *middleware.RateLimiter

// NewMux wires HTTP handlers for the portal API.
func NewMux(s *Stores, cfg Config) http.Handler {
	stores = s
	config = cfg

	mux := http.NewServeMux()
	registerRoutes(mux)

	// Rate limiter: configurable requests per second per IP (OWASP A04).
	// Rebuilding the mux retires the previous limiter's cleanup goroutine.
	if limiter != nil {
		limiter.Close()
	}
	limiter = middleware.NewRateLimiter(RateLimitPerSecond, time.Second)

	// Apply middleware: Logging -> RateLimit -> BearerAuth -> SecurityHeaders -> CORS -> Mux
	return middleware.Chain(mux,
		middleware.CORS,
		middleware.SecurityHeaders,
		middleware.BearerAuth(cfg.TokenSecret),
		middleware.RateLimit(limiter),
		middleware.Logging,
	)
}

// newID and now are the default identity and clock sources for handlers.
func newID() string { return uuid.NewString() }

func now() time.Time { return time.Now().UTC() }

func registerRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /auth/login", handleLogin)
	mux.HandleFunc("POST /auth/register", handleRegister)
	mux.HandleFunc("GET /auth/me", handleMe)
	mux.HandleFunc("GET /auth/users", handleUsers)
	mux.HandleFunc("GET /activities", handleActivities)
	mux.HandleFunc("POST /activities/{name}/signup", handleSignup)
	mux.HandleFunc("DELETE /activities/{name}/unregister", handleUnregister)
}
