package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"kudos/api/internal/middleware"
)

// UploadAvatar accepts the profile-pic multipart field, stores the
// bytes and answers with the resulting URL. Failures are reported as a
// JSON errorMsg on a 200 response; the form treats them as non-fatal.
func (h HandlerSet) UploadAvatar(c *gin.Context) {
	userID := middleware.UserID(c)

	file, header, err := c.Request.FormFile("profile-pic")
	if err != nil {
		c.JSON(http.StatusOK, gin.H{"errorMsg": "Something went wrong while uploading"})
		return
	}
	defer file.Close()

	url, err := h.avatars.Upload(c.Request.Context(), userID, file, header)
	if err != nil {
		h.log.Warn().Err(err).Str("user_id", userID).Msg("avatar upload failed")
		c.JSON(http.StatusOK, gin.H{"errorMsg": "Something went wrong while uploading"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"imageUrl": url})
}
