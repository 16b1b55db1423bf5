package handlers

import (
	"hussboss/services/admin"
	"hussboss/services/backend"
	"hussboss/services/catalog"
	"hussboss/services/listings"
	"hussboss/services/pages"

	"go.uber.org/zap"
)

// BundleConfig carries what the handlers are built from.
type BundleConfig struct {
	Client          backend.Client
	Registry        *pages.Registry
	Icons           catalog.IconRewriter
	Listings        listings.Config
	DefaultLocation string
	Logger          *zap.Logger
}

// HandlerBundle groups all endpoint handlers into one struct.
type HandlerBundle struct {
	Pages    *PageHandler
	Booking  *BookingHandler
	Auth     *AuthHandler
	Admin    *AdminHandler
	Register *RegisterHandler
	Catalog  *CatalogHandler
}

// NewHandlerBundle wires every handler to the shared services.
func NewHandlerBundle(cfg BundleConfig) (*HandlerBundle, error) {
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	loader := catalog.NewLoader(cfg.Client, cfg.Icons, cfg.Logger)

	pageHandler, err := NewPageHandler(cfg.Registry, loader,
		listings.NewService(cfg.Client, cfg.Listings, cfg.Logger), cfg.DefaultLocation)
	if err != nil {
		return nil, err
	}

	return &HandlerBundle{
		Pages:    pageHandler,
		Booking:  NewBookingHandler(cfg.Registry),
		Auth:     NewAuthHandler(cfg.Client),
		Admin:    NewAdminHandler(admin.NewRequests(cfg.Client, cfg.Logger)),
		Register: NewRegisterHandler(cfg.Client, loader),
		Catalog:  NewCatalogHandler(loader),
	}, nil
}
