package routes

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	slotRepo "hussboss/database/repository/slot"
	"hussboss/handlers"
	"hussboss/middleware"
	"hussboss/models"
	"hussboss/services/backend"
	"hussboss/services/backend/backendtest"
	"hussboss/services/pages"

	"github.com/gin-gonic/gin"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newSite(t *testing.T) (*gin.Engine, *backendtest.Server) {
	t.Helper()
	be := backendtest.NewServer(t)
	client := backend.NewHTTPClient(be.URL, 5*time.Second, nil)
	reg := pages.NewRegistry(pages.Deps{
		Slots:           slotRepo.NewMemorySlotRepo(),
		Booker:          client,
		DefaultLocation: "Kathmandu",
	}, time.Hour)

	hb, err := handlers.NewHandlerBundle(handlers.BundleConfig{
		Client:          client,
		Registry:        reg,
		DefaultLocation: "Kathmandu",
	})
	if err != nil {
		t.Fatalf("NewHandlerBundle: %v", err)
	}
	r, err := NewEngine(hb, Options{Registry: reg, SlotSecret: []byte("test-slot-secret")})
	if err != nil {
		t.Fatalf("NewEngine: %v", err)
	}
	return r, be
}

// browser replays the slot cookie like a real browser would.
type browser struct {
	t      *testing.T
	r      *gin.Engine
	cookie *http.Cookie
}

func (b *browser) do(req *http.Request) *httptest.ResponseRecorder {
	b.t.Helper()
	if b.cookie != nil {
		req.AddCookie(b.cookie)
	}
	rec := httptest.NewRecorder()
	b.r.ServeHTTP(rec, req)
	for _, c := range rec.Result().Cookies() {
		if c.Name == middleware.SlotCookie {
			b.cookie = c
		}
	}
	return rec
}

func (b *browser) get(path string) *httptest.ResponseRecorder {
	return b.do(httptest.NewRequest(http.MethodGet, path, nil))
}

func (b *browser) post(path string, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return b.do(req)
}

func expectRedirect(t *testing.T, rec *httptest.ResponseRecorder, location string) {
	t.Helper()
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("status = %d, want 303; body: %s", rec.Code, rec.Body.String())
	}
	if got := rec.Header().Get("Location"); got != location {
		t.Fatalf("Location = %q, want %q", got, location)
	}
}

func login(t *testing.T, b *browser, email, password string) {
	t.Helper()
	rec := b.post("/login", url.Values{"email": {email}, "password": {password}})
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("login status = %d", rec.Code)
	}
}

func TestHome_RendersCatalog(t *testing.T) {
	r, _ := newSite(t)
	b := &browser{t: t, r: r}

	rec := b.get("/")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	body := rec.Body.String()
	for _, want := range []string{"Plumber", "Electrician", `href="/login"`} {
		if !strings.Contains(body, want) {
			t.Errorf("home page missing %q", want)
		}
	}
	if b.cookie == nil {
		t.Error("first visit did not set a slot cookie")
	}
}

func TestGuards_RedirectLoggedOutBrowsers(t *testing.T) {
	r, _ := newSite(t)
	b := &browser{t: t, r: r}

	expectRedirect(t, b.get("/admin"), "/admin/login")
	expectRedirect(t, b.get("/profile"), "/login")
}

func TestLogin_SuccessAndFailure(t *testing.T) {
	r, be := newSite(t)
	be.AddAccount("asha@example.com", "secret", models.Session{ID: 7, FullName: "Asha Rai"})
	b := &browser{t: t, r: r}

	expectRedirect(t, b.post("/login", url.Values{"email": {"asha@example.com"}, "password": {"wrong"}}), "/login")
	if body := b.get("/login").Body.String(); !strings.Contains(body, "Invalid credentials") {
		t.Error("failed login did not show the backend detail")
	}

	expectRedirect(t, b.post("/login", url.Values{"email": {"asha@example.com"}, "password": {"secret"}}), "/")
	body := b.get("/").Body.String()
	if !strings.Contains(body, "Welcome back!") {
		t.Error("missing welcome notice after login")
	}
	if !strings.Contains(body, `title="Asha Rai"`) {
		t.Error("nav does not show the logged in user")
	}

	if rec := b.get("/profile"); rec.Code != http.StatusOK {
		t.Errorf("profile status = %d after login", rec.Code)
	}

	expectRedirect(t, b.post("/logout", nil), "/")
	expectRedirect(t, b.get("/profile"), "/login")
}

func TestAdminLogin_RefusesNonAdmin(t *testing.T) {
	r, be := newSite(t)
	be.AddAccount("user@example.com", "pw", models.Session{ID: 3, FullName: "Plain User"})
	b := &browser{t: t, r: r}

	expectRedirect(t, b.post("/admin/login", url.Values{"email": {"user@example.com"}, "password": {"pw"}}), "/admin/login")
	if body := b.get("/admin/login").Body.String(); !strings.Contains(body, "Access Denied: You are not an Admin.") {
		t.Error("missing access denied notice")
	}
	if body := b.get("/").Body.String(); !strings.Contains(body, `href="/login"`) {
		t.Error("refused admin login must not store a session")
	}
	expectRedirect(t, b.get("/admin"), "/admin/login")
}

func TestBooking_HomeSubmit(t *testing.T) {
	r, be := newSite(t)
	be.AddAccount("asha@example.com", "secret", models.Session{ID: 7, FullName: "Asha Rai"})
	b := &browser{t: t, r: r}
	login(t, b, "asha@example.com", "secret")

	expectRedirect(t, b.post("/book/open", url.Values{"page": {"home"}, "back": {"/"}, "service": {"Plumber"}, "location": {""}}), "/")
	if body := b.get("/").Body.String(); !strings.Contains(body, `action="/book/submit"`) {
		t.Fatal("booking modal is not open after Book Now")
	}

	expectRedirect(t, b.post("/book/submit", url.Values{
		"page":      {"home"},
		"back":      {"/"},
		"user_name": {"Asha"},
		"phone":     {"9800000000"},
		"address":   {"Thamel"},
	}), "/")

	if got := be.BookingCount(); got != 1 {
		t.Fatalf("bookings = %d, want 1", got)
	}
	req := be.Bookings[0]
	if req.ServiceType != "Plumber" || req.Location != "Kathmandu" || req.UserID != 7 {
		t.Errorf("booking = %+v", req)
	}

	body := b.get("/").Body.String()
	if !strings.Contains(body, "Request Received! We will call you shortly.") {
		t.Error("missing success notice")
	}
	if strings.Contains(body, `action="/book/submit"`) {
		t.Error("modal still open after a successful booking")
	}
}

func TestBooking_SubmitWhileLoggedOut(t *testing.T) {
	r, be := newSite(t)
	b := &browser{t: t, r: r}

	expectRedirect(t, b.post("/book/open", url.Values{"page": {"home"}, "service": {"Plumber"}}), "/")
	expectRedirect(t, b.post("/book/submit", url.Values{
		"page":      {"home"},
		"user_name": {"Asha"},
		"phone":     {"9800000000"},
		"address":   {"Thamel"},
	}), "/login")

	if got := be.BookingCount(); got != 0 {
		t.Errorf("bookings = %d, want 0", got)
	}
	if body := b.get("/login").Body.String(); !strings.Contains(body, "Please login to book a service") {
		t.Error("missing login required notice")
	}
}

func TestBooking_RejectsOffsiteBack(t *testing.T) {
	r, _ := newSite(t)
	b := &browser{t: t, r: r}

	expectRedirect(t, b.post("/book/close", url.Values{"page": {"services"}, "back": {"//evil.example.com"}}), "/services")
}

func TestAdmin_AssignRequest(t *testing.T) {
	r, be := newSite(t)
	be.AddAccount("admin@example.com", "pw", models.Session{ID: 1, FullName: "Admin", IsAdmin: true})
	be.AddRequest(models.ServiceRequestRecord{ID: 42, UserName: "Asha", ServiceType: "Plumber", Status: models.StatusPending})
	b := &browser{t: t, r: r}

	expectRedirect(t, b.post("/admin/login", url.Values{"email": {"admin@example.com"}, "password": {"pw"}}), "/admin")
	if rec := b.get("/admin"); rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), "#42") {
		t.Fatalf("dashboard status = %d", rec.Code)
	}

	rec := b.post("/admin/requests/42/assign", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("assign status = %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Marked as Assigned") {
		t.Error("missing assigned notice")
	}
	if got, _ := be.Request(42); got.Status != models.StatusAssigned {
		t.Errorf("status = %q, want %q", got.Status, models.StatusAssigned)
	}
}

func TestCatalogAPI(t *testing.T) {
	r, be := newSite(t)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/catalog/services?q=plu", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var out struct {
		Items []models.ServiceType `json:"items"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(out.Items) != 1 || out.Items[0].Name != "Plumber" {
		t.Errorf("items = %+v, want [Plumber]", out.Items)
	}

	be.FailNext("GET /services", 1)
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/catalog/services", nil))
	if rec.Code != http.StatusBadGateway {
		t.Errorf("status = %d, want 502 when the backend fails", rec.Code)
	}
}

func TestSystemRoutes(t *testing.T) {
	r, _ := newSite(t)

	for _, path := range []string{"/health", "/metrics", "/static/app.css"} {
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		if rec.Code != http.StatusOK {
			t.Errorf("GET %s = %d, want 200", path, rec.Code)
		}
		if cookies := rec.Result().Cookies(); len(cookies) != 0 {
			t.Errorf("GET %s set cookies %v", path, cookies)
		}
	}
}

func TestListings_BookWithFixedLocation(t *testing.T) {
	r, be := newSite(t)
	be.Providers = []backendtest.Listing{
		{Service: "Plumber", Provider: models.Provider{Name: "Ram Thapa", Location: "Lalitpur", Rating: "4.9"}},
		{Service: "Plumber", Provider: models.Provider{Name: "Sita Gurung", Location: "Pokhara", Rating: "4.7"}},
	}
	be.AddAccount("asha@example.com", "secret", models.Session{ID: 7, FullName: "Asha Rai"})
	b := &browser{t: t, r: r}
	login(t, b, "asha@example.com", "secret")

	rec := b.get("/search?service=Plumber&location=Lalitpur")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, "Ram Thapa") || strings.Contains(body, "Sita Gurung") {
		t.Fatal("listings do not match the search")
	}

	back := "/search?location=Lalitpur&service=Plumber"
	flow := url.Values{"page": {"listings"}, "back": {back}, "flow_service": {"Plumber"}, "flow_location": {"Lalitpur"}}
	expectRedirect(t, b.post("/book/open", flow), back)

	submit := url.Values{"user_name": {"Asha"}, "phone": {"9800000000"}, "address": {"Pulchowk"}, "location": {"Kathmandu"}}
	for k, v := range flow {
		submit[k] = v
	}
	expectRedirect(t, b.post("/book/submit", submit), back)

	if got := be.BookingCount(); got != 1 {
		t.Fatalf("bookings = %d, want 1", got)
	}
	if req := be.Bookings[0]; req.Location != "Lalitpur" || req.ServiceType != "Plumber" {
		t.Errorf("booking = %+v, want Plumber in Lalitpur", req)
	}
}

func TestListings_BookTwiceOnSamePage(t *testing.T) {
	r, be := newSite(t)
	be.Providers = []backendtest.Listing{
		{Service: "Plumber", Provider: models.Provider{Name: "Ram Thapa", Location: "Lalitpur", Rating: "4.9"}},
	}
	be.AddAccount("asha@example.com", "secret", models.Session{ID: 7, FullName: "Asha Rai"})
	b := &browser{t: t, r: r}
	login(t, b, "asha@example.com", "secret")

	page := "/search?service=Plumber&location=Lalitpur"
	back := "/search?location=Lalitpur&service=Plumber"
	flow := url.Values{"page": {"listings"}, "back": {back}, "flow_service": {"Plumber"}, "flow_location": {"Lalitpur"}}

	for round := 1; round <= 2; round++ {
		b.get(page)
		expectRedirect(t, b.post("/book/open", flow), back)

		body := b.get(page).Body.String()
		if !strings.Contains(body, `action="/book/submit"`) {
			t.Fatalf("round %d: modal not open", round)
		}
		if strings.Contains(body, "Please enter a service") {
			t.Fatalf("round %d: service was lost", round)
		}

		submit := url.Values{"user_name": {"Asha"}, "phone": {"9800000000"}, "address": {"Pulchowk"}}
		for k, v := range flow {
			submit[k] = v
		}
		expectRedirect(t, b.post("/book/submit", submit), back)
	}

	if got := be.BookingCount(); got != 2 {
		t.Errorf("bookings = %d, want 2", got)
	}
}

func TestAdmin_AssignedButListNotReloaded(t *testing.T) {
	r, be := newSite(t)
	be.AddAccount("admin@example.com", "pw", models.Session{ID: 1, FullName: "Admin", IsAdmin: true})
	be.AddRequest(models.ServiceRequestRecord{ID: 42, UserName: "Asha", ServiceType: "Plumber", Status: models.StatusPending})
	b := &browser{t: t, r: r}
	expectRedirect(t, b.post("/admin/login", url.Values{"email": {"admin@example.com"}, "password": {"pw"}}), "/admin")

	be.FailNext("GET /admin/requests", 1)
	expectRedirect(t, b.post("/admin/requests/42/assign", nil), "/admin")

	body := b.get("/admin").Body.String()
	if !strings.Contains(body, "Marked as Assigned, but the list could not be reloaded") {
		t.Error("missing reload notice")
	}
	if strings.Contains(body, "Error updating status") {
		t.Error("a completed assignment was reported as failed")
	}
	if got, _ := be.Request(42); got.Status != models.StatusAssigned {
		t.Errorf("status = %q, want %q", got.Status, models.StatusAssigned)
	}
}
