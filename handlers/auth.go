package handlers

import (
	"errors"
	"net/http"
	"strings"

	"hussboss/metrics"
	"hussboss/middleware"
	"hussboss/models"
	"hussboss/services/backend"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AuthHandler logs users in and out. A successful login or signup stores
// the backend's user record in the browser's session slot.
type AuthHandler struct {
	Client backend.Client
}

// NewAuthHandler creates an AuthHandler.
func NewAuthHandler(client backend.Client) *AuthHandler {
	return &AuthHandler{Client: client}
}

type loginView struct {
	Signup bool
	Email  string
}

// LoginPage handles GET /login. ?mode=signup shows the short signup form.
func (h *AuthHandler) LoginPage(c *gin.Context) {
	view := loginView{Signup: c.Query("mode") == "signup", Email: c.Query("email")}
	title := "Login"
	if view.Signup {
		title = "Sign Up"
	}
	render(c, http.StatusOK, "login", title, view)
}

// Login handles POST /login.
func (h *AuthHandler) Login(c *gin.Context) {
	tab := middleware.CurrentTab(c)
	if tab == nil {
		redirect(c, "/login")
		return
	}

	var creds models.Credentials
	if err := c.ShouldBind(&creds); err != nil || creds.Email == "" || creds.Password == "" {
		tab.Notices.Error("Please enter your email and password")
		redirect(c, "/login")
		return
	}

	sess, err := h.Client.Login(c.Request.Context(), creds)
	if err != nil {
		if !errors.Is(err, backend.ErrInvalidCredentials) {
			getLogger(c).Warn("Login failed", zap.String("email", creds.Email), zap.Error(err))
		}
		tab.Notices.Error(backend.Detail(err, "Login failed. Please try again."))
		redirect(c, "/login")
		return
	}

	if err := tab.Store.Set(c.Request.Context(), *sess); err != nil {
		getLogger(c).Error("Failed to store session", zap.Int("userID", sess.ID), zap.Error(err))
		tab.Notices.Error("Could not save your session. Please try again.")
		redirect(c, "/login")
		return
	}
	metrics.SessionChanges.WithLabelValues("login").Inc()
	getLogger(c).Info("User logged in", zap.Int("userID", sess.ID), zap.Bool("isAdmin", sess.IsAdmin))

	tab.Notices.Success("Welcome back!")
	if sess.IsAdmin {
		redirect(c, "/admin")
		return
	}
	redirect(c, "/")
}

// SignupPage handles GET /signup.
func (h *AuthHandler) SignupPage(c *gin.Context) {
	render(c, http.StatusOK, "signup", "Sign Up", nil)
}

// Signup handles POST /signup. Phone and address are optional.
func (h *AuthHandler) Signup(c *gin.Context) {
	tab := middleware.CurrentTab(c)
	if tab == nil {
		redirect(c, "/signup")
		return
	}

	req := models.SignupRequest{
		FullName: strings.TrimSpace(c.PostForm("full_name")),
		Email:    strings.TrimSpace(c.PostForm("email")),
		Password: c.PostForm("password"),
		Phone:    optional(c.PostForm("phone")),
		Address:  optional(c.PostForm("address")),
	}
	if req.FullName == "" || req.Email == "" || req.Password == "" {
		tab.Notices.Error("Please fill in all required fields")
		redirect(c, "/signup")
		return
	}

	sess, err := h.Client.Signup(c.Request.Context(), req)
	if err != nil {
		getLogger(c).Info("Signup failed", zap.String("email", req.Email), zap.Error(err))
		tab.Notices.Error(backend.Detail(err, "Signup failed. Please try again."))
		redirect(c, "/signup")
		return
	}

	if err := tab.Store.Set(c.Request.Context(), *sess); err != nil {
		getLogger(c).Error("Failed to store session", zap.Int("userID", sess.ID), zap.Error(err))
		tab.Notices.Error("Account created, but we could not log you in. Please login.")
		redirect(c, "/login")
		return
	}
	metrics.SessionChanges.WithLabelValues("signup").Inc()
	getLogger(c).Info("User signed up", zap.Int("userID", sess.ID))

	tab.Notices.Success("Account created successfully!")
	redirect(c, "/")
}

// AdminLoginPage handles GET /admin/login.
func (h *AuthHandler) AdminLoginPage(c *gin.Context) {
	render(c, http.StatusOK, "admin_login", "Admin Login", nil)
}

// AdminLogin handles POST /admin/login. Only accounts the backend flags as
// admin are stored; anyone else is refused without touching the session.
func (h *AuthHandler) AdminLogin(c *gin.Context) {
	tab := middleware.CurrentTab(c)
	if tab == nil {
		redirect(c, "/admin/login")
		return
	}

	var creds models.Credentials
	if err := c.ShouldBind(&creds); err != nil || creds.Email == "" || creds.Password == "" {
		tab.Notices.Error("Invalid Admin Credentials")
		redirect(c, "/admin/login")
		return
	}

	sess, err := h.Client.Login(c.Request.Context(), creds)
	if err != nil {
		getLogger(c).Info("Admin login failed", zap.String("email", creds.Email), zap.Error(err))
		tab.Notices.Error("Invalid Admin Credentials")
		redirect(c, "/admin/login")
		return
	}
	if !sess.IsAdmin {
		getLogger(c).Warn("Non-admin tried admin login", zap.Int("userID", sess.ID))
		tab.Notices.Error("Access Denied: You are not an Admin.")
		redirect(c, "/admin/login")
		return
	}

	if err := tab.Store.Set(c.Request.Context(), *sess); err != nil {
		getLogger(c).Error("Failed to store admin session", zap.Int("userID", sess.ID), zap.Error(err))
		tab.Notices.Error("Could not save your session. Please try again.")
		redirect(c, "/admin/login")
		return
	}
	metrics.SessionChanges.WithLabelValues("login").Inc()

	tab.Notices.Success("Welcome Admin!")
	redirect(c, "/admin")
}

// Logout handles POST /logout.
func (h *AuthHandler) Logout(c *gin.Context) {
	tab := middleware.CurrentTab(c)
	if tab == nil {
		redirect(c, "/")
		return
	}
	if err := tab.Store.Clear(c.Request.Context()); err != nil {
		getLogger(c).Error("Failed to clear session", zap.Error(err))
		tab.Notices.Error("Logout failed. Please try again.")
		redirect(c, "/")
		return
	}
	metrics.SessionChanges.WithLabelValues("logout").Inc()
	tab.Notices.Info("You have been logged out.")
	redirect(c, "/")
}

func optional(v string) *string {
	v = strings.TrimSpace(v)
	if v == "" {
		return nil
	}
	return &v
}
