package web

import (
	"crypto/rand"
	"encoding/hex"
	"log"
	"net/http"
	"os"
	"time"

	"architect/internal/adapters/email"
	"architect/internal/adapters/http/middleware"
	accountStore "architect/internal/adapters/storage/account"
	catalogStore "architect/internal/adapters/storage/catalog"
	planStore "architect/internal/adapters/storage/plan"
	sessionStore "architect/internal/adapters/storage/session"
	"architect/internal/application/orchestrators"
	"architect/internal/application/projections"
)

// Stores holds all storage dependencies.
type Stores struct {
	AccountStore accountStore.Store
	CatalogStore catalogStore.Store
	PlanStore    planStore.Store
	SessionStore sessionStore.Store
}

// loadCSRFKey reads the CSRF secret from ARCHITECT_CSRF_KEY (hex-encoded, 32 bytes).
// In production, the key MUST be set. In development, a random key is generated per startup.
func loadCSRFKey() []byte {
	if keyHex := os.Getenv("ARCHITECT_CSRF_KEY"); keyHex != "" {
		key, err := hex.DecodeString(keyHex)
		if err != nil || len(key) != 32 {
			log.Fatal("ARCHITECT_CSRF_KEY must be 64 hex characters (32 bytes)")
		}
		return key
	}
	if os.Getenv("ARCHITECT_ENV") == "production" {
		log.Fatal("ARCHITECT_CSRF_KEY is required in production")
	}
	key := make([]byte, 32)
	if _, err := rand.Read(key); err != nil {
		log.Fatalf("failed to generate CSRF key: %v", err)
	}
	log.Println("WARNING: using random CSRF key (sessions won't survive restart). Set ARCHITECT_CSRF_KEY for production.")
	return key
}

// Global stores instance (set by NewMux)
var stores *Stores

// Global session store instance
var sessions *middleware.SessionStore

// Per-scope view cache and session-scoped sync flags (set by NewMux)
var views *projections.ViewCache
var syncTracker *orchestrators.SessionSyncTracker

// Per-account plan editors (set by NewMux)
var editors *EditorRegistry

// RateLimitPerSecond controls the per-IP rate limit. Tests can increase this.
var RateLimitPerSecond = 10

// Global email sender instance (set by SetEmailSender)
var emailSender email.Sender

// SetEmailSender sets the global email sender for the application.
func SetEmailSender(sender email.Sender) {
	emailSender = sender
}

// NewMux wires HTTP handlers for the app.
func NewMux(s *Stores) http.Handler {
	stores = s
	sessions = middleware.NewSessionStore()
	views = projections.NewViewCache()
	syncTracker = orchestrators.NewSessionSyncTracker()
	editors = NewEditorRegistry()
	middleware.SecureCookies = os.Getenv("ARCHITECT_ENV") == "production"

	mux := http.NewServeMux()
	registerRoutes(mux)

	// CSRF key: 32-byte hex-encoded secret from env var
	csrfKey := loadCSRFKey()

	// Rate limiter: configurable requests per second per IP (OWASP A04)
	limiter := middleware.NewRateLimiter(RateLimitPerSecond, time.Second)

	// Request path: RateLimit -> Auth -> CSRF -> SecurityHeaders -> Mux
	return middleware.Chain(mux,
		middleware.SecurityHeaders,
		middleware.CSRF(csrfKey),
		middleware.Auth(sessions),
		middleware.RateLimit(limiter),
	)
}
