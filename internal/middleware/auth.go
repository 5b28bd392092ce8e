package middleware

import (
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"

	"kudos/api/internal/session"
)

const userIDKey = "user_id"

// RequireUser gates protected routes. Requests without a valid session
// cookie are redirected to the login page with the originally requested
// path preserved in a redirectTo query parameter, never answered with a
// raw 401.
func RequireUser(sessions *session.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := sessions.UserID(c.Request)
		if userID == "" {
			RedirectToLogin(c, c.Request.URL.Path)
			return
		}

		c.Set(userIDKey, userID)
		c.Next()
	}
}

// RedirectToLogin aborts the request with a redirect to the login page.
func RedirectToLogin(c *gin.Context, redirectTo string) {
	target := "/login"
	if redirectTo != "" {
		target += "?" + url.Values{"redirectTo": {redirectTo}}.Encode()
	}
	c.Redirect(http.StatusFound, target)
	c.Abort()
}

// UserID returns the authenticated user id placed in the context by
// RequireUser.
func UserID(c *gin.Context) string {
	return c.GetString(userIDKey)
}

// SetUserID injects a user id into the context, for handlers invoked
// outside the middleware chain.
func SetUserID(c *gin.Context, userID string) {
	c.Set(userIDKey, userID)
}
