package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"hussboss/metrics"
	"hussboss/models"

	"go.uber.org/zap"
)

// maxBodyBytes caps how much of a backend response is read.
const maxBodyBytes = 4 << 20

// HTTPClient talks to the marketplace backend over its JSON API.
type HTTPClient struct {
	baseURL string
	http    *http.Client
	logger  *zap.Logger
}

// NewHTTPClient creates a client for baseURL. timeout applies per request;
// zero keeps the transport default.
func NewHTTPClient(baseURL string, timeout time.Duration, logger *zap.Logger) *HTTPClient {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
		logger:  logger,
	}
}

// backendProvider mirrors the backend's provider row.
type backendProvider struct {
	ID           int     `json:"id"`
	Name         string  `json:"name"`
	Phone        string  `json:"phone"`
	Location     string  `json:"location"`
	Description  string  `json:"description"`
	Rating       string  `json:"rating"`
	ProfileImage *string `json:"profile_image"`
}

func (c *HTTPClient) GetServices(ctx context.Context) ([]models.ServiceType, error) {
	var services []models.ServiceType
	if err := c.getJSON(ctx, "/services", nil, &services); err != nil {
		return nil, err
	}
	return services, nil
}

func (c *HTTPClient) GetLocations(ctx context.Context) ([]models.Location, error) {
	var locations []models.Location
	if err := c.getJSON(ctx, "/locations", nil, &locations); err != nil {
		return nil, err
	}
	return locations, nil
}

func (c *HTTPClient) SearchProviders(ctx context.Context, serviceName, location string) ([]models.Provider, error) {
	query := url.Values{}
	if serviceName != "" {
		query.Set("service_name", serviceName)
	}
	if location != "" {
		query.Set("location", location)
	}

	var rows []backendProvider
	if err := c.getJSON(ctx, "/search", query, &rows); err != nil {
		return nil, err
	}

	providers := make([]models.Provider, 0, len(rows))
	for _, row := range rows {
		providers = append(providers, models.Provider{
			ID:           strconv.Itoa(row.ID),
			Name:         row.Name,
			Location:     row.Location,
			Rating:       row.Rating,
			Description:  row.Description,
			Phone:        row.Phone,
			ProfileImage: row.ProfileImage,
			IsVerified:   true,
		})
	}
	return providers, nil
}

func (c *HTTPClient) Login(ctx context.Context, creds models.Credentials) (*models.Session, error) {
	var sess models.Session
	err := c.postJSON(ctx, "/auth/login", creds, &sess)
	var apiErr *APIError
	if errors.As(err, &apiErr) && (apiErr.Status == http.StatusBadRequest || apiErr.Status == http.StatusUnauthorized) {
		return nil, fmt.Errorf("%w: %s", ErrInvalidCredentials, apiErr.Detail)
	}
	if err != nil {
		return nil, err
	}
	return &sess, nil
}

func (c *HTTPClient) Signup(ctx context.Context, req models.SignupRequest) (*models.Session, error) {
	var sess models.Session
	if err := c.postJSON(ctx, "/auth/signup", req, &sess); err != nil {
		return nil, err
	}
	return &sess, nil
}

func (c *HTTPClient) RegisterProvider(ctx context.Context, reg models.ProviderRegistration, image *models.ProviderImage) error {
	var buf bytes.Buffer
	form := multipart.NewWriter(&buf)

	fields := []struct{ key, value string }{
		{"name", reg.Name},
		{"email", reg.Email},
		{"password", reg.Password},
		{"phone", reg.Phone},
		{"location", reg.Location},
		{"service_id", strconv.Itoa(reg.ServiceID)},
		{"description", reg.Description},
	}
	for _, f := range fields {
		if err := form.WriteField(f.key, f.value); err != nil {
			return fmt.Errorf("backend: failed to encode registration: %w", err)
		}
	}
	if image != nil && len(image.Content) > 0 {
		part, err := form.CreateFormFile("profile_image", image.Filename)
		if err != nil {
			return fmt.Errorf("backend: failed to attach profile image: %w", err)
		}
		if _, err := part.Write(image.Content); err != nil {
			return fmt.Errorf("backend: failed to attach profile image: %w", err)
		}
	}
	if err := form.Close(); err != nil {
		return fmt.Errorf("backend: failed to encode registration: %w", err)
	}

	return c.do(ctx, http.MethodPost, "/register", nil, &buf, form.FormDataContentType(), nil)
}

func (c *HTTPClient) BookService(ctx context.Context, req models.BookingRequest) (*models.BookingAck, error) {
	var ack models.BookingAck
	if err := c.postJSON(ctx, "/book_service", req, &ack); err != nil {
		return nil, err
	}
	return &ack, nil
}

func (c *HTTPClient) GetMyRequests(ctx context.Context, userID int) ([]models.ServiceRequestRecord, error) {
	var records []models.ServiceRequestRecord
	if err := c.getJSON(ctx, "/my_requests/"+strconv.Itoa(userID), nil, &records); err != nil {
		return nil, err
	}
	return records, nil
}

func (c *HTTPClient) GetAdminRequests(ctx context.Context) ([]models.ServiceRequestRecord, error) {
	var records []models.ServiceRequestRecord
	if err := c.getJSON(ctx, "/admin/requests", nil, &records); err != nil {
		return nil, err
	}
	return records, nil
}

func (c *HTTPClient) UpdateRequestStatus(ctx context.Context, requestID int, status string) error {
	query := url.Values{"status": {status}}
	return c.do(ctx, http.MethodPut, "/admin/requests/"+strconv.Itoa(requestID), query, nil, "", nil)
}

func (c *HTTPClient) Ping(ctx context.Context) error {
	return c.do(ctx, http.MethodGet, "/locations", nil, nil, "", nil)
}

func (c *HTTPClient) getJSON(ctx context.Context, path string, query url.Values, out any) error {
	return c.do(ctx, http.MethodGet, path, query, nil, "", out)
}

func (c *HTTPClient) postJSON(ctx context.Context, path string, in, out any) error {
	body, err := json.Marshal(in)
	if err != nil {
		return fmt.Errorf("backend: failed to encode %s body: %w", path, err)
	}
	return c.do(ctx, http.MethodPost, path, nil, bytes.NewReader(body), "application/json", out)
}

// do performs one request. out may be nil when the response body is ignored.
func (c *HTTPClient) do(ctx context.Context, method, path string, query url.Values, body io.Reader, contentType string, out any) error {
	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return fmt.Errorf("backend: failed to build %s %s: %w", method, path, err)
	}
	req.Header.Set("Accept", "application/json")
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	endpoint := metricEndpoint(path)
	started := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		metrics.ObserveBackend(endpoint, 0, started)
		c.logger.Warn("Backend request failed", zap.String("method", method), zap.String("path", path), zap.Error(err))
		return fmt.Errorf("backend %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()
	metrics.ObserveBackend(endpoint, resp.StatusCode, started)

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return fmt.Errorf("backend %s %s: failed to read body: %w", method, path, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{Method: method, Path: path, Status: resp.StatusCode, Detail: parseDetail(data)}
		c.logger.Info("Backend returned error", zap.String("method", method), zap.String("path", path),
			zap.Int("status", resp.StatusCode), zap.String("detail", apiErr.Detail))
		return apiErr
	}

	if out == nil || len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("backend %s %s: failed to decode response: %w", method, path, err)
	}
	return nil
}

// metricEndpoint collapses path IDs so metric labels stay bounded.
func metricEndpoint(path string) string {
	switch {
	case strings.HasPrefix(path, "/my_requests/"):
		return "/my_requests/:user_id"
	case strings.HasPrefix(path, "/admin/requests/"):
		return "/admin/requests/:id"
	}
	return path
}
