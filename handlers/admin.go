package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"hussboss/models"
	"hussboss/services/admin"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AdminHandler serves the dashboard of incoming service requests.
type AdminHandler struct {
	Requests *admin.Requests
}

// NewAdminHandler creates an AdminHandler.
func NewAdminHandler(requests *admin.Requests) *AdminHandler {
	return &AdminHandler{Requests: requests}
}

type adminView struct {
	Stats    admin.Stats
	Requests []models.ServiceRequestRecord
}

// Dashboard handles GET /admin behind AdminGuard.
func (h *AdminHandler) Dashboard(c *gin.Context) {
	records, err := h.Requests.List(c.Request.Context())
	if err != nil {
		getLogger(c).Warn("Failed to fetch admin requests", zap.Error(err))
		notices(c).Error("Failed to load service requests")
		records = []models.ServiceRequestRecord{}
	}
	h.renderDashboard(c, records)
}

// Assign handles POST /admin/requests/:id/assign. On success the re-fetched
// list is rendered directly.
func (h *AdminHandler) Assign(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		notices(c).Error("Error updating status")
		redirect(c, "/admin")
		return
	}

	records, err := h.Requests.MarkAssigned(c.Request.Context(), id)
	if errors.Is(err, admin.ErrReloadFailed) {
		getLogger(c).Warn("Assigned request but failed to reload list", zap.Int("requestID", id), zap.Error(err))
		notices(c).Info("Marked as Assigned, but the list could not be reloaded")
		redirect(c, "/admin")
		return
	}
	if err != nil {
		getLogger(c).Warn("Failed to assign request", zap.Int("requestID", id), zap.Error(err))
		notices(c).Error("Error updating status")
		redirect(c, "/admin")
		return
	}

	notices(c).Success("Marked as Assigned")
	h.renderDashboard(c, records)
}

func (h *AdminHandler) renderDashboard(c *gin.Context, records []models.ServiceRequestRecord) {
	render(c, http.StatusOK, "admin", "Admin Dashboard", adminView{
		Stats:    admin.Summarize(records),
		Requests: records,
	})
}
