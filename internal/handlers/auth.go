package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"kudos/api/internal/forms"
	"kudos/api/internal/repository"
	"kudos/api/internal/service"
)

// ShowLogin is the login-page loader. Rendering is the client's job;
// the loader only hands back the pending redirect target.
func (h HandlerSet) ShowLogin(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"redirectTo": forms.RedirectTarget(c.Query("redirectTo"), "/home"),
	})
}

func (h HandlerSet) Login(c *gin.Context) {
	var form forms.LoginForm
	if err := c.ShouldBind(&form); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid Form Data"})
		return
	}

	if errs := form.Validate(); len(errs) > 0 {
		c.JSON(http.StatusBadRequest, gin.H{
			"errors": errs,
			"fields": gin.H{"email": form.Email},
		})
		return
	}

	user, err := h.auth.Login(c.Request.Context(), form.Email, form.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			c.JSON(http.StatusBadRequest, gin.H{
				"error":  "Incorrect login",
				"fields": gin.H{"email": form.Email},
			})
			return
		}
		h.log.Error().Err(err).Msg("login failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal_server_error"})
		return
	}

	h.establishAndRedirect(c, user.ID)
}

func (h HandlerSet) ShowRegister(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"redirectTo": forms.RedirectTarget(c.Query("redirectTo"), "/home"),
	})
}

func (h HandlerSet) RegisterUser(c *gin.Context) {
	var form forms.RegisterForm
	if err := c.ShouldBind(&form); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid Form Data"})
		return
	}

	if errs := form.Validate(); len(errs) > 0 {
		c.JSON(http.StatusBadRequest, gin.H{
			"errors": errs,
			"fields": form.Fields(),
		})
		return
	}

	user, err := h.auth.Register(c.Request.Context(), service.RegisterInput{
		Email:     form.Email,
		Password:  form.Password,
		FirstName: form.FirstName,
		LastName:  form.LastName,
	})
	if err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			c.JSON(http.StatusBadRequest, gin.H{
				"error":  "User already exists with that email",
				"fields": form.Fields(),
			})
			return
		}
		h.log.Error().Err(err).Msg("register failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal_server_error"})
		return
	}

	h.establishAndRedirect(c, user.ID)
}

func (h HandlerSet) Logout(c *gin.Context) {
	h.sessions.Destroy(c)
	c.Redirect(http.StatusFound, "/login")
}

// establishAndRedirect attaches a fresh session cookie and sends the
// client to its post-login destination.
func (h HandlerSet) establishAndRedirect(c *gin.Context, userID string) {
	if err := h.sessions.Establish(c, userID); err != nil {
		h.log.Error().Err(err).Str("user_id", userID).Msg("establish session failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal_server_error"})
		return
	}

	target := forms.RedirectTarget(c.PostForm("redirectTo"), "/home")
	c.Redirect(http.StatusFound, target)
}
