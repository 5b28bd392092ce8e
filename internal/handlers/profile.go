package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"kudos/api/internal/forms"
	"kudos/api/internal/middleware"
	"kudos/api/internal/models"
	"kudos/api/internal/repository"
	"kudos/api/internal/service"
)

// ShowProfile is the profile-modal loader.
func (h HandlerSet) ShowProfile(c *gin.Context) {
	user, ok := h.currentUser(c)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"user":        user,
		"departments": models.Departments,
	})
}

// ProfileAction dispatches on the _action discriminator: save validates
// and persists the profile form, delete removes the account and ends
// the session. Anything else is Invalid Form Data.
func (h HandlerSet) ProfileAction(c *gin.Context) {
	userID := middleware.UserID(c)

	switch c.PostForm("_action") {
	case "save":
		h.saveProfile(c, userID)
	case "delete":
		h.deleteAccount(c, userID)
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid Form Data"})
	}
}

func (h HandlerSet) saveProfile(c *gin.Context, userID string) {
	var form forms.ProfileForm
	if err := c.ShouldBind(&form); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid Form Data"})
		return
	}

	// All field errors are reported together with the submitted values
	// so the form redisplays without data loss.
	if errs := form.Validate(); len(errs) > 0 {
		c.JSON(http.StatusBadRequest, gin.H{
			"errors": errs,
			"fields": form.Fields(),
		})
		return
	}

	err := h.users.SaveProfile(c.Request.Context(), userID, service.SaveProfileInput{
		Email:      form.Email,
		FirstName:  form.FirstName,
		LastName:   form.LastName,
		Department: models.Department(form.Department),
	})
	if err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			c.JSON(http.StatusBadRequest, gin.H{
				"error":  "User already exists with that email",
				"fields": form.Fields(),
			})
			return
		}
		h.log.Error().Err(err).Str("user_id", userID).Msg("save profile failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal_server_error"})
		return
	}

	c.Redirect(http.StatusFound, "/home")
}

func (h HandlerSet) deleteAccount(c *gin.Context, userID string) {
	if err := h.users.Delete(c.Request.Context(), userID); err != nil {
		h.log.Error().Err(err).Str("user_id", userID).Msg("delete account failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal_server_error"})
		return
	}

	h.sessions.Destroy(c)
	c.Redirect(http.StatusFound, "/login")
}
