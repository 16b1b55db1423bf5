// Package backendtest runs an in-memory stand-in for the marketplace
// backend so page and workflow tests can use the real HTTP client.
package backendtest

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"hussboss/models"
)

// Account is a user known to the fake backend.
type Account struct {
	Password string
	Session  models.Session
}

// Listing is a provider offering one service.
type Listing struct {
	Service string
	models.Provider
}

// Server is a fake backend. Exported fields may be edited before requests
// are made; use the methods once the server is in use.
type Server struct {
	*httptest.Server

	mu        sync.Mutex
	Services  []models.ServiceType
	Locations []string
	Providers []Listing
	Accounts  map[string]Account
	Emails    []string
	Requests  []models.ServiceRequestRecord
	Bookings  []models.BookingRequest

	calls  map[string]int
	fail   map[string]int
	nextID int
}

// NewServer starts a fake backend seeded with a small catalog. It is closed
// when the test ends.
func NewServer(t *testing.T) *Server {
	t.Helper()
	s := &Server{
		Services: []models.ServiceType{
			{ID: 1, Name: "Plumber", ImageURL: "https://cdn.example.com/plumber.png"},
			{ID: 2, Name: "Electrician", ImageURL: "https://cdn.example.com/electrician.png"},
		},
		Locations: []string{"Kathmandu", "Lalitpur", "Bhaktapur"},
		Accounts:  map[string]Account{},
		calls:     map[string]int{},
		fail:      map[string]int{},
		nextID:    1,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /services", s.handle("GET /services", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, s.Services)
	}))
	mux.HandleFunc("GET /locations", s.handle("GET /locations", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, s.Locations)
	}))
	mux.HandleFunc("GET /search", s.handle("GET /search", s.search))
	mux.HandleFunc("POST /auth/login", s.handle("POST /auth/login", s.login))
	mux.HandleFunc("POST /auth/signup", s.handle("POST /auth/signup", s.signup))
	mux.HandleFunc("POST /book_service", s.handle("POST /book_service", s.book))
	mux.HandleFunc("GET /my_requests/{id}", s.handle("GET /my_requests", s.myRequests))
	mux.HandleFunc("GET /admin/requests", s.handle("GET /admin/requests", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, s.Requests)
	}))
	mux.HandleFunc("PUT /admin/requests/{id}", s.handle("PUT /admin/requests", s.updateStatus))
	mux.HandleFunc("POST /register", s.handle("POST /register", s.register))

	s.Server = httptest.NewServer(mux)
	t.Cleanup(s.Close)
	return s
}

// AddAccount registers a user that can log in.
func (s *Server) AddAccount(email, password string, sess models.Session) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess.Email = email
	s.Accounts[email] = Account{Password: password, Session: sess}
}

// AddRequest stores a service request record and returns its ID.
func (s *Server) AddRequest(rec models.ServiceRequestRecord) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	if rec.ID == 0 {
		rec.ID = s.nextID
	}
	if rec.ID >= s.nextID {
		s.nextID = rec.ID + 1
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = models.Timestamp{Time: time.Now().UTC()}
	}
	s.Requests = append(s.Requests, rec)
	return rec.ID
}

// FailNext makes the next n calls to route ("METHOD /path") answer 500.
func (s *Server) FailNext(route string, n int) {
	s.mu.Lock()
	s.fail[route] = n
	s.mu.Unlock()
}

// Calls returns how many requests reached route.
func (s *Server) Calls(route string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls[route]
}

// Request returns the stored record with id.
func (s *Server) Request(id int) (models.ServiceRequestRecord, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, rec := range s.Requests {
		if rec.ID == id {
			return rec, true
		}
	}
	return models.ServiceRequestRecord{}, false
}

// BookingCount returns how many bookings were accepted.
func (s *Server) BookingCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.Bookings)
}

func (s *Server) handle(route string, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		s.calls[route]++
		failing := s.fail[route] > 0
		if failing {
			s.fail[route]--
		}
		s.mu.Unlock()

		if failing {
			writeJSON(w, http.StatusInternalServerError, map[string]string{"detail": "injected failure"})
			return
		}

		s.mu.Lock()
		defer s.mu.Unlock()
		next(w, r)
	}
}

func (s *Server) search(w http.ResponseWriter, r *http.Request) {
	service := strings.ToLower(r.URL.Query().Get("service_name"))
	location := r.URL.Query().Get("location")

	type row struct {
		ID          int    `json:"id"`
		Name        string `json:"name"`
		Location    string `json:"location"`
		Description string `json:"description"`
		Rating      string `json:"rating"`
	}
	out := []row{}
	for i, p := range s.Providers {
		if location != "" && location != "All Nepal" && p.Location != location {
			continue
		}
		if service != "" && !strings.Contains(strings.ToLower(p.Service), service) {
			continue
		}
		out = append(out, row{ID: i + 1, Name: p.Name, Location: p.Location, Description: p.Description, Rating: p.Rating})
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) login(w http.ResponseWriter, r *http.Request) {
	var creds models.Credentials
	if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
		writeJSON(w, http.StatusUnprocessableEntity, map[string]any{"detail": []map[string]string{{"msg": "invalid body"}}})
		return
	}
	acct, ok := s.Accounts[creds.Email]
	if !ok || acct.Password != creds.Password {
		writeJSON(w, http.StatusBadRequest, map[string]string{"detail": "Invalid credentials"})
		return
	}
	writeJSON(w, http.StatusOK, acct.Session)
}

func (s *Server) signup(w http.ResponseWriter, r *http.Request) {
	var req models.SignupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusUnprocessableEntity, map[string]string{"detail": "invalid body"})
		return
	}
	if _, exists := s.Accounts[req.Email]; exists {
		writeJSON(w, http.StatusBadRequest, map[string]string{"detail": "Email already registered"})
		return
	}
	sess := models.Session{
		ID:       len(s.Accounts) + 100,
		FullName: req.FullName,
		Email:    req.Email,
		Phone:    req.Phone,
		Address:  req.Address,
	}
	s.Accounts[req.Email] = Account{Password: req.Password, Session: sess}
	writeJSON(w, http.StatusOK, sess)
}

func (s *Server) book(w http.ResponseWriter, r *http.Request) {
	var req models.BookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusUnprocessableEntity, map[string]string{"detail": "invalid body"})
		return
	}
	s.Bookings = append(s.Bookings, req)
	id := s.nextID
	s.nextID++
	s.Requests = append(s.Requests, models.ServiceRequestRecord{
		ID:          id,
		UserID:      req.UserID,
		UserName:    req.UserName,
		Phone:       req.Phone,
		ServiceType: req.ServiceType,
		Location:    req.Location,
		Address:     req.Address,
		Status:      models.StatusPending,
		CreatedAt:   models.Timestamp{Time: time.Now().UTC()},
	})
	writeJSON(w, http.StatusOK, map[string]string{"message": "Request submitted! We will contact you shortly."})
}

func (s *Server) myRequests(w http.ResponseWriter, r *http.Request) {
	userID, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		writeJSON(w, http.StatusUnprocessableEntity, map[string]string{"detail": "bad user id"})
		return
	}
	out := []models.ServiceRequestRecord{}
	for _, rec := range s.Requests {
		if rec.UserID == userID {
			out = append(out, rec)
		}
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) updateStatus(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		writeJSON(w, http.StatusUnprocessableEntity, map[string]string{"detail": "bad id"})
		return
	}
	status := r.URL.Query().Get("status")
	for i := range s.Requests {
		if s.Requests[i].ID == id {
			s.Requests[i].Status = status
			writeJSON(w, http.StatusOK, map[string]string{"message": "Status updated successfully"})
			return
		}
	}
	writeJSON(w, http.StatusNotFound, map[string]string{"detail": "Request not found"})
}

func (s *Server) register(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(1 << 20); err != nil {
		writeJSON(w, http.StatusUnprocessableEntity, map[string]string{"detail": "invalid form"})
		return
	}
	email := r.FormValue("email")
	for _, known := range s.Emails {
		if known == email {
			writeJSON(w, http.StatusBadRequest, map[string]string{"detail": "Email already registered"})
			return
		}
	}
	var image *string
	if _, header, err := r.FormFile("profile_image"); err == nil {
		name := "static/uploads/" + header.Filename
		image = &name
	}
	s.Emails = append(s.Emails, email)
	s.Providers = append(s.Providers, Listing{
		Service: r.FormValue("service_id"),
		Provider: models.Provider{
			Name:         r.FormValue("name"),
			Location:     r.FormValue("location"),
			Description:  r.FormValue("description"),
			Phone:        r.FormValue("phone"),
			Rating:       "New",
			ProfileImage: image,
		},
	})
	writeJSON(w, http.StatusOK, map[string]string{"message": "Account created successfully!"})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
