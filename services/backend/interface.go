package backend

import (
	"context"

	"hussboss/models"
)

// Client is the marketplace backend as seen by the pages. Calls are not
// retried; each failure is returned to the caller.
type Client interface {
	// Catalog
	GetServices(ctx context.Context) ([]models.ServiceType, error)
	GetLocations(ctx context.Context) ([]models.Location, error)
	SearchProviders(ctx context.Context, serviceName, location string) ([]models.Provider, error)

	// Accounts
	Login(ctx context.Context, creds models.Credentials) (*models.Session, error)
	Signup(ctx context.Context, req models.SignupRequest) (*models.Session, error)
	RegisterProvider(ctx context.Context, reg models.ProviderRegistration, image *models.ProviderImage) error

	// Bookings
	BookService(ctx context.Context, req models.BookingRequest) (*models.BookingAck, error)
	GetMyRequests(ctx context.Context, userID int) ([]models.ServiceRequestRecord, error)

	// Admin
	GetAdminRequests(ctx context.Context) ([]models.ServiceRequestRecord, error)
	UpdateRequestStatus(ctx context.Context, requestID int, status string) error

	// Ping checks that the backend answers at all.
	Ping(ctx context.Context) error
}
