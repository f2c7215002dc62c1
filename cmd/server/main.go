package main

import (
	"context"
	"database/sql"
	"log"
	"net/http"
	"os"

	_ "modernc.org/sqlite"

	emailPkg "mergington/internal/adapters/email"
	web "mergington/internal/adapters/http"
	"mergington/internal/adapters/storage"
	accountStore "mergington/internal/adapters/storage/account"
	activityStore "mergington/internal/adapters/storage/activity"
	"mergington/internal/application/orchestrators"
)

// version is set at build time via -ldflags "-X main.version=..."
var version = "dev"

func main() {
	// Initialize database with WAL mode, foreign keys, and busy timeout
	dbPath := envOrDefault("MERGINGTON_DB", "mergington.db")
	dsn := dbPath + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=foreign_keys(ON)&_pragma=synchronous(NORMAL)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		log.Fatalf("failed to open database: %v", err)
	}
	defer db.Close()

	// Connection pool settings for WAL mode
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)

	if err := db.Ping(); err != nil {
		log.Fatalf("database unreachable: %v", err)
	}
	if err := storage.InitDB(db); err != nil {
		log.Fatalf("failed to initialize database: %v", err)
	}
	log.Println("Database initialized successfully!")

	acctStore := accountStore.NewSQLiteStore(db)
	actStore := activityStore.NewSQLiteStore(db)
	stores := &web.Stores{
		AccountStore:  acctStore,
		ActivityStore: actStore,
	}

	// Seed default admin account if no accounts exist
	adminEmail := envOrDefault("MERGINGTON_ADMIN_EMAIL", "admin@mergington.edu")
	adminPassword := envOrDefault("MERGINGTON_ADMIN_PASSWORD", "admin123")
	seedDeps := orchestrators.SeedAdminDeps{AccountStore: acctStore}
	if err := orchestrators.ExecuteSeedAdmin(context.Background(), seedDeps, adminEmail, adminPassword); err != nil {
		log.Fatalf("failed to seed admin: %v", err)
	}

	// Seed the default activity catalog if no activities exist
	seedActDeps := orchestrators.SeedActivitiesDeps{ActivityStore: actStore}
	if err := orchestrators.ExecuteSeedActivities(context.Background(), seedActDeps); err != nil {
		log.Fatalf("failed to seed activities: %v", err)
	}

	// Configure email sender
	resendKey := os.Getenv("MERGINGTON_RESEND_KEY")
	emailFrom := envOrDefault("MERGINGTON_RESEND_FROM", "Mergington High <noreply@mergington.edu>")
	emailReply := envOrDefault("MERGINGTON_REPLY_TO", "activities@mergington.edu")
	var sender emailPkg.Sender
	if resendKey != "" {
		sender = emailPkg.NewResendSender(resendKey, emailFrom)
		log.Println("Email sender configured (Resend)")
	} else {
		sender = emailPkg.NewNoopSender()
		if os.Getenv("MERGINGTON_ENV") == "production" {
			log.Println("WARNING: MERGINGTON_RESEND_KEY is not set, email delivery is DISABLED in production")
		} else {
			log.Println("Email sender configured (noop, set MERGINGTON_RESEND_KEY for real delivery)")
		}
	}

	tokenSecret := os.Getenv("MERGINGTON_TOKEN_SECRET")
	if tokenSecret == "" {
		if os.Getenv("MERGINGTON_ENV") == "production" {
			log.Fatal("MERGINGTON_TOKEN_SECRET must be set in production")
		}
		tokenSecret = "dev-secret-change-me"
		log.Println("WARNING: using development token secret")
	}

	mux := web.NewMux(stores, web.Config{
		TokenSecret:  tokenSecret,
		EmailSender:  sender,
		EmailFrom:    emailFrom,
		EmailReplyTo: emailReply,
	})

	addr := envOrDefault("MERGINGTON_ADDR", ":8000")
	log.Printf("Mergington activities API %s starting on %s (env=%s)", version, addr, envOrDefault("MERGINGTON_ENV", "development"))

	if err := http.ListenAndServe(addr, mux); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
