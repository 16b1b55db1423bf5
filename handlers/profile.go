package handlers

import (
	"net/http"

	"hussboss/middleware"
	"hussboss/models"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type profileView struct {
	Session models.Session
	History []models.ServiceRequestRecord
}

// Profile handles GET /profile behind RequireSession. A failed history
// fetch shows an empty history.
func (h *AuthHandler) Profile(c *gin.Context) {
	sess := middleware.CurrentSession(c)
	if sess == nil {
		redirect(c, "/login")
		return
	}

	history, err := h.Client.GetMyRequests(c.Request.Context(), sess.ID)
	if err != nil {
		getLogger(c).Warn("Failed to fetch booking history", zap.Int("userID", sess.ID), zap.Error(err))
		history = []models.ServiceRequestRecord{}
	}

	render(c, http.StatusOK, "profile", "My Profile", profileView{Session: *sess, History: history})
}
