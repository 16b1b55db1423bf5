package handlers

import (
	"errors"
	"io"
	"net/http"

	"hussboss/models"
	"hussboss/services/backend"
	"hussboss/services/catalog"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// maxProfileImageBytes caps the optional profile picture of a registration.
const maxProfileImageBytes = 5 << 20

var errImageTooLarge = errors.New("profile image too large")

// RegisterHandler serves the business registration form.
type RegisterHandler struct {
	Client  backend.Client
	Catalog *catalog.Loader
}

// NewRegisterHandler creates a RegisterHandler.
func NewRegisterHandler(client backend.Client, loader *catalog.Loader) *RegisterHandler {
	return &RegisterHandler{Client: client, Catalog: loader}
}

type registerView struct {
	Form      models.ProviderRegistration
	Services  []models.ServiceType
	Locations []models.Location
}

// Page handles GET /register.
func (h *RegisterHandler) Page(c *gin.Context) {
	h.renderForm(c, http.StatusOK, models.ProviderRegistration{})
}

// Submit handles POST /register. The form is shown again with its values
// when anything fails.
func (h *RegisterHandler) Submit(c *gin.Context) {
	var reg models.ProviderRegistration
	if err := c.ShouldBind(&reg); err != nil {
		getLogger(c).Debug("Invalid registration form", zap.Error(err))
		notices(c).Error("Please fill in all required fields")
		h.renderForm(c, http.StatusBadRequest, reg)
		return
	}

	image, err := profileImage(c)
	if err != nil {
		getLogger(c).Info("Rejected profile image", zap.Error(err))
		notices(c).Error("Profile image must be smaller than 5 MB")
		h.renderForm(c, http.StatusBadRequest, reg)
		return
	}

	if err := h.Client.RegisterProvider(c.Request.Context(), reg, image); err != nil {
		getLogger(c).Warn("Provider registration failed", zap.String("email", reg.Email), zap.Error(err))
		notices(c).Error(backend.Detail(err, "Registration failed. Please try again."))
		h.renderForm(c, http.StatusOK, reg)
		return
	}

	getLogger(c).Info("Provider registered", zap.String("email", reg.Email), zap.Int("serviceID", reg.ServiceID))
	notices(c).Success("Registration successful! Customers can now find you.")
	redirect(c, "/")
}

func (h *RegisterHandler) renderForm(c *gin.Context, status int, form models.ProviderRegistration) {
	cat, err := h.Catalog.Load(c.Request.Context())
	if err != nil {
		getLogger(c).Warn("Register: catalog incomplete", zap.Error(err))
	}
	if form.Location == "" && len(cat.Locations) > 0 {
		form.Location = cat.Locations[0]
	}
	form.Password = ""
	render(c, status, "register", "Join as a Professional", registerView{
		Form:      form,
		Services:  cat.Services,
		Locations: cat.Locations,
	})
}

// profileImage reads the optional profile_image upload. A missing file is
// not an error.
func profileImage(c *gin.Context) (*models.ProviderImage, error) {
	fh, err := c.FormFile("profile_image")
	if err != nil {
		return nil, nil
	}
	if fh.Size > maxProfileImageBytes {
		return nil, errImageTooLarge
	}
	f, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()

	content, err := io.ReadAll(io.LimitReader(f, maxProfileImageBytes+1))
	if err != nil {
		return nil, err
	}
	if len(content) > maxProfileImageBytes {
		return nil, errImageTooLarge
	}
	if len(content) == 0 {
		return nil, nil
	}
	return &models.ProviderImage{Filename: fh.Filename, Content: content}, nil
}
