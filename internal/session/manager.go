// Package session manages the client-held session cookie. The cookie
// value is a signed token encoding the user id; the server keeps no
// session table, so logout and expiry are purely cookie operations.
package session

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"kudos/api/internal/security"
)

type Manager struct {
	secret     string
	cookieName string
	maxAge     time.Duration
	secure     bool
}

func NewManager(secret string, cookieName string, maxAge time.Duration, secure bool) *Manager {
	return &Manager{
		secret:     secret,
		cookieName: cookieName,
		maxAge:     maxAge,
		secure:     secure,
	}
}

func (m *Manager) CookieName() string {
	return m.cookieName
}

// Establish attaches a fresh session cookie for the user to the response.
func (m *Manager) Establish(c *gin.Context, userID string) error {
	token, err := security.MintSessionToken(m.secret, userID, m.maxAge)
	if err != nil {
		return err
	}
	m.setCookie(c, token, int(m.maxAge.Seconds()))
	return nil
}

// Destroy expires the session cookie on the client.
func (m *Manager) Destroy(c *gin.Context) {
	m.setCookie(c, "", -1)
}

// UserID reads and verifies the session cookie, returning the
// authenticated user id. Empty string means no valid session.
func (m *Manager) UserID(r *http.Request) string {
	cookie, err := r.Cookie(m.cookieName)
	if err != nil || cookie.Value == "" {
		return ""
	}
	claims, err := security.ParseSessionToken(cookie.Value, m.secret)
	if err != nil {
		return ""
	}
	return claims.UserID
}

func (m *Manager) setCookie(c *gin.Context, value string, maxAge int) {
	http.SetCookie(c.Writer, &http.Cookie{
		Name:     m.cookieName,
		Value:    value,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   m.secure,
		SameSite: http.SameSiteLaxMode,
	})
}
