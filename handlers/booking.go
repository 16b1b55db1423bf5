package handlers

import (
	"errors"
	"net/url"
	"strconv"

	"hussboss/middleware"
	"hussboss/models"
	"hussboss/services/booking"
	"hussboss/services/pages"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// BookingHandler drives the booking modal on every page. Each action is a
// form post answered with a redirect back to the page it came from.
type BookingHandler struct {
	Registry *pages.Registry
}

// NewBookingHandler creates a BookingHandler.
func NewBookingHandler(reg *pages.Registry) *BookingHandler {
	return &BookingHandler{Registry: reg}
}

// workflow picks the workflow named by the form's "page" field and the
// path to return to.
func (h *BookingHandler) workflow(c *gin.Context, tab *pages.Tab) (*booking.Workflow, pages.Flow, string) {
	switch pages.Flow(c.PostForm("page")) {
	case pages.FlowServices:
		return h.Registry.Booking(tab, pages.FlowServices), pages.FlowServices,
			localPath(c.PostForm("back"), "/services")
	case pages.FlowListings:
		service, location := c.PostForm("flow_service"), c.PostForm("flow_location")
		fallback := "/search?" + url.Values{"service": {service}, "location": {location}}.Encode()
		return h.Registry.ListingsBooking(tab, service, location), pages.FlowListings,
			localPath(c.PostForm("back"), fallback)
	default:
		return h.Registry.Booking(tab, pages.FlowHome), pages.FlowHome,
			localPath(c.PostForm("back"), "/")
	}
}

func (h *BookingHandler) begin(c *gin.Context) (*pages.Tab, *booking.Workflow, pages.Flow, string, bool) {
	tab := middleware.CurrentTab(c)
	if tab == nil {
		redirect(c, "/")
		return nil, nil, "", "", false
	}
	wf, flow, back := h.workflow(c, tab)
	return tab, wf, flow, back, true
}

// Choose handles POST /book/choose: the service or location typed or
// picked in the search bar. Picking a suggestion closes its dropdown;
// filtering keeps it open.
func (h *BookingHandler) Choose(c *gin.Context) {
	_, wf, flow, back, ok := h.begin(c)
	if !ok {
		return
	}

	term, picked := c.GetPostForm("pick_service")
	if !picked {
		term = c.PostForm("service")
	}
	location, pickedLocation := c.GetPostForm("pick_location")
	if !pickedLocation {
		location = c.PostForm("location")
	}

	if err := wf.ChooseService(term); err != nil {
		getLogger(c).Debug("Choose ignored", zap.String("page", string(flow)), zap.Error(err))
	}
	wf.SetLocation(location)

	if flow == pages.FlowHome && !picked && !pickedLocation {
		redirect(c, "/?"+url.Values{"q": {term}, "loc": {location}}.Encode())
		return
	}
	redirect(c, back)
}

// Open handles POST /book/open, the "Book Now" button.
func (h *BookingHandler) Open(c *gin.Context) {
	_, wf, flow, back, ok := h.begin(c)
	if !ok {
		return
	}

	if term, typed := c.GetPostForm("service"); typed {
		if err := wf.ChooseService(term); err != nil {
			getLogger(c).Debug("Choose ignored", zap.String("page", string(flow)), zap.Error(err))
		}
	}
	if location, typed := c.GetPostForm("location"); typed {
		wf.SetLocation(location)
	}

	if err := wf.Open(nil); err != nil && !errors.Is(err, booking.ErrEmptyService) {
		getLogger(c).Debug("Open ignored", zap.String("page", string(flow)), zap.Error(err))
	}
	redirect(c, back)
}

// Select handles POST /book/select/:id, a click on a service card.
func (h *BookingHandler) Select(c *gin.Context) {
	_, wf, flow, back, ok := h.begin(c)
	if !ok {
		return
	}

	id, _ := strconv.Atoi(c.Param("id"))
	svc := models.ServiceType{
		ID:       id,
		Name:     c.PostForm("name"),
		ImageURL: c.PostForm("image_url"),
	}
	if err := wf.SelectService(svc); err != nil && !errors.Is(err, booking.ErrEmptyService) {
		getLogger(c).Debug("Select ignored", zap.String("page", string(flow)), zap.Error(err))
	}
	redirect(c, back)
}

// Close handles POST /book/close.
func (h *BookingHandler) Close(c *gin.Context) {
	_, wf, flow, back, ok := h.begin(c)
	if !ok {
		return
	}
	if err := wf.Close(); err != nil {
		getLogger(c).Debug("Close ignored", zap.String("page", string(flow)), zap.Error(err))
	}
	redirect(c, back)
}

// Submit handles POST /book/submit. The workflow reports the outcome as a
// notice; a logged out user is sent to the login page instead.
func (h *BookingHandler) Submit(c *gin.Context) {
	tab, wf, flow, back, ok := h.begin(c)
	if !ok {
		return
	}

	var draft models.BookingDraft
	if err := c.ShouldBind(&draft); err != nil {
		getLogger(c).Debug("Failed to bind booking form", zap.Error(err))
	}

	if err := wf.Submit(c.Request.Context(), draft); err != nil {
		var verr *booking.ValidationError
		switch {
		case errors.As(err, &verr), errors.Is(err, booking.ErrNoSession), errors.Is(err, booking.ErrEmptyService):
			getLogger(c).Debug("Booking rejected", zap.String("page", string(flow)), zap.Error(err))
		default:
			getLogger(c).Warn("Booking failed", zap.String("page", string(flow)), zap.Error(err))
		}
	}

	if path := tab.TakeRedirect(); path != "" {
		redirect(c, path)
		return
	}
	redirect(c, back)
}
