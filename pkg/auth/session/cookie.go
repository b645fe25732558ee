package session

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/dmcneil/catalog-api/pkg/config"
)

// ErrNoSession is returned when the request carries no session cookie.
var ErrNoSession = errors.New("no session cookie")

// Manager writes and clears the HttpOnly session cookie. Session state lives
// entirely client-side in the signed token; there is no server-side record.
type Manager struct {
	cfg config.JWTConfig
}

// NewManager constructs a cookie session manager from the JWT configuration.
func NewManager(cfg config.JWTConfig) (*Manager, error) {
	if cfg.CookieName == "" {
		return nil, fmt.Errorf("session cookie name is required")
	}
	if cfg.SessionTTL() <= 0 {
		return nil, fmt.Errorf("session ttl must be positive")
	}
	return &Manager{cfg: cfg}, nil
}

// Issue sets the session cookie carrying the signed token.
func (m *Manager) Issue(w http.ResponseWriter, token string) {
	http.SetCookie(w, m.cookie(token, m.cfg.SessionTTL()))
}

// Clear expires the session cookie immediately.
func (m *Manager) Clear(w http.ResponseWriter) {
	http.SetCookie(w, m.cookie("", -time.Hour))
}

// Read returns the raw token from the request, or ErrNoSession.
func (m *Manager) Read(r *http.Request) (string, error) {
	cookie, err := r.Cookie(m.cfg.CookieName)
	if err != nil {
		return "", ErrNoSession
	}
	if cookie.Value == "" {
		return "", ErrNoSession
	}
	return cookie.Value, nil
}

func (m *Manager) cookie(value string, ttl time.Duration) *http.Cookie {
	sameSite := http.SameSiteLaxMode
	if m.cfg.CookieSecure {
		// Credentialed cross-origin requests need SameSite=None, which
		// browsers only accept on secure cookies.
		sameSite = http.SameSiteNoneMode
	}
	return &http.Cookie{
		Name:     m.cfg.CookieName,
		Value:    value,
		Path:     "/",
		Domain:   m.cfg.CookieDomain,
		MaxAge:   int(ttl.Seconds()),
		HttpOnly: true,
		Secure:   m.cfg.CookieSecure,
		SameSite: sameSite,
	}
}
