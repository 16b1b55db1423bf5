package handlers

import (
	"html/template"
	"net/http"
	"net/url"
	"strconv"

	"hussboss/middleware"
	"hussboss/models"
	"hussboss/services/booking"
	"hussboss/services/catalog"
	"hussboss/services/listings"
	"hussboss/services/pages"
	"hussboss/views"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// PageHandler renders the browsing pages that carry a booking modal.
type PageHandler struct {
	Registry        *pages.Registry
	Catalog         *catalog.Loader
	Providers       *listings.Service
	DefaultLocation string

	about template.HTML
}

// NewPageHandler creates a PageHandler. The about page is rendered once here.
func NewPageHandler(reg *pages.Registry, loader *catalog.Loader, listingsSvc *listings.Service, defaultLocation string) (*PageHandler, error) {
	about, err := views.About()
	if err != nil {
		return nil, err
	}
	return &PageHandler{
		Registry:        reg,
		Catalog:         loader,
		Providers:       listingsSvc,
		DefaultLocation: defaultLocation,
		about:           about,
	}, nil
}

// bookingView is what the booking modal partial renders.
type bookingView struct {
	Flow            string
	Back            string
	Snapshot        booking.Snapshot
	Icon            string
	Areas           []string
	FixedLocation   bool
	FlowService     string
	FlowLocation    string
	DefaultLocation string
}

type homeView struct {
	Query         string
	LocQuery      string
	ShowServices  bool
	ShowLocations bool
	Suggestions   []models.ServiceType
	Locations     []models.Location
	Popular       []models.ServiceType
	Booking       bookingView
}

type servicesView struct {
	Services []models.ServiceType
	Active   models.ServiceType
	Details  catalog.Details
	Booking  bookingView
}

type listingsView struct {
	Service   string
	Location  string
	Providers []models.Provider
	Booking   bookingView
}

// Home handles GET /. The catalog is fetched once per render; ?q= and
// ?loc= open the service and location dropdowns filtered by their value.
func (h *PageHandler) Home(c *gin.Context) {
	tab := middleware.CurrentTab(c)
	if tab == nil {
		c.AbortWithStatus(http.StatusInternalServerError)
		return
	}

	cat, err := h.Catalog.Load(c.Request.Context())
	if err != nil {
		getLogger(c).Warn("Home: catalog incomplete", zap.Error(err))
	}

	snap := h.Registry.Booking(tab, pages.FlowHome).Snapshot()
	q, showServices := c.GetQuery("q")
	loc, showLocations := c.GetQuery("loc")
	if !showServices {
		q = snap.Term
	}
	if !showLocations {
		loc = snap.Location
	}

	render(c, http.StatusOK, "home", "", homeView{
		Query:         q,
		LocQuery:      loc,
		ShowServices:  showServices,
		ShowLocations: showLocations,
		Suggestions:   cat.FilterServices(q),
		Locations:     cat.FilterLocations(loc),
		Popular:       cat.Services,
		Booking: bookingView{
			Flow:            string(pages.FlowHome),
			Back:            "/",
			Snapshot:        snap,
			Icon:            iconFor(cat, snap),
			DefaultLocation: h.DefaultLocation,
		},
	})
}

// Services handles GET /services. ?active= selects a service by id; the
// first one is shown by default.
func (h *PageHandler) Services(c *gin.Context) {
	tab := middleware.CurrentTab(c)
	if tab == nil {
		c.AbortWithStatus(http.StatusInternalServerError)
		return
	}

	cat, err := h.Catalog.Load(c.Request.Context())
	if err != nil {
		getLogger(c).Warn("Services: catalog incomplete", zap.Error(err))
	}

	var active models.ServiceType
	if len(cat.Services) > 0 {
		active = cat.Services[0]
	}
	if id, err := strconv.Atoi(c.Query("active")); err == nil {
		if svc, ok := cat.ServiceByID(id); ok {
			active = svc
		}
	}

	back := "/services"
	if active.ID != 0 {
		back += "?active=" + strconv.Itoa(active.ID)
	}
	snap := h.Registry.Booking(tab, pages.FlowServices).Snapshot()

	render(c, http.StatusOK, "services", "Services", servicesView{
		Services: cat.Services,
		Active:   active,
		Details:  catalog.DetailsFor(active.Name),
		Booking: bookingView{
			Flow:     string(pages.FlowServices),
			Back:     back,
			Snapshot: snap,
			Icon:     iconFor(cat, snap),
			Areas:    pages.ServiceAreas,
		},
	})
}

// Listings handles GET /search?service=&location=.
func (h *PageHandler) Listings(c *gin.Context) {
	tab := middleware.CurrentTab(c)
	if tab == nil {
		c.AbortWithStatus(http.StatusInternalServerError)
		return
	}

	page := h.Providers.Search(c.Request.Context(), c.Query("service"), c.Query("location"))
	if page.Failed && len(page.Providers) == 0 {
		tab.Notices.Error("Could not load professionals. Please try again.")
	}

	wf := h.Registry.ListingsBooking(tab, page.Service, page.Location)
	back := "/search?" + url.Values{"service": {c.Query("service")}, "location": {c.Query("location")}}.Encode()

	render(c, http.StatusOK, "listings", page.Service+"s in "+page.Location, listingsView{
		Service:   page.Service,
		Location:  page.Location,
		Providers: page.Providers,
		Booking: bookingView{
			Flow:          string(pages.FlowListings),
			Back:          back,
			Snapshot:      wf.Snapshot(),
			FixedLocation: true,
			FlowService:   page.Service,
			FlowLocation:  page.Location,
		},
	})
}

// About handles GET /about.
func (h *PageHandler) About(c *gin.Context) {
	render(c, http.StatusOK, "about", "About", gin.H{"Body": h.about})
}

// iconFor picks the icon shown in the booking modal.
func iconFor(cat *catalog.Catalog, snap booking.Snapshot) string {
	if snap.Selected.ImageURL != "" {
		return snap.Selected.ImageURL
	}
	if svc, ok := cat.FindService(snap.Term); ok {
		return svc.ImageURL
	}
	return ""
}
