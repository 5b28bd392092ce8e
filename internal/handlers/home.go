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

// Home is the main page loader: colleague roster, current user, the
// filtered/sorted received feed and the system-wide recent rail.
func (h HandlerSet) Home(c *gin.Context) {
	userID := middleware.UserID(c)
	ctx := c.Request.Context()

	users, err := h.users.Roster(ctx, userID)
	if err != nil {
		h.log.Error().Err(err).Msg("load roster failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal_server_error"})
		return
	}

	user, ok := h.currentUser(c)
	if !ok {
		return
	}

	sort := models.KudoSort(c.Query("sort"))
	filter := c.Query("filter")

	kudos, err := h.kudos.Feed(ctx, userID, sort, filter)
	if err != nil {
		h.log.Error().Err(err).Str("user_id", userID).Msg("load feed failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal_server_error"})
		return
	}

	recent, err := h.kudos.Recent(ctx)
	if err != nil {
		h.log.Error().Err(err).Msg("load recent kudos failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal_server_error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"users":       users,
		"user":        user,
		"kudos":       kudos,
		"recentKudos": recent,
	})
}

// ShowKudoForm loads the send-kudo modal: the chosen recipient plus the
// style options.
func (h HandlerSet) ShowKudoForm(c *gin.Context) {
	recipient, err := h.users.Get(c.Request.Context(), c.Param("userId"))
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
			return
		}
		h.log.Error().Err(err).Msg("load recipient failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal_server_error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"recipient": recipient,
		"colors":    models.Colors,
		"emojis":    models.Emojis,
	})
}

func (h HandlerSet) SendKudo(c *gin.Context) {
	userID := middleware.UserID(c)
	recipientID := c.Param("userId")

	var form forms.KudoForm
	if err := c.ShouldBind(&form); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid Form Data"})
		return
	}

	if errs := form.Validate(); len(errs) > 0 {
		c.JSON(http.StatusBadRequest, gin.H{
			"errors": errs,
			"fields": gin.H{"message": form.Message},
		})
		return
	}

	err := h.kudos.Send(c.Request.Context(), service.SendKudoInput{
		Message:     form.Message,
		AuthorID:    userID,
		RecipientID: recipientID,
		Style:       form.Style(),
	})
	if err != nil {
		if errors.Is(err, service.ErrSelfKudo) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "You cannot send a kudo to yourself"})
			return
		}
		h.log.Error().Err(err).Str("recipient_id", recipientID).Msg("send kudo failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal_server_error"})
		return
	}

	c.Redirect(http.StatusFound, "/home")
}
