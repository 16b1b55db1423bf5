package catalog

import (
	"context"
	"fmt"
	"strings"

	"hussboss/models"
	"hussboss/services/backend"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// IconRewriter maps a raw service icon URL to the URL rendered in pages.
type IconRewriter interface {
	IconURL(raw string) string
}

// Catalog is the set of services and locations fetched for one page render.
type Catalog struct {
	Services  []models.ServiceType
	Locations []models.Location
}

// Loader fetches catalogs from the backend.
type Loader struct {
	client backend.Client
	icons  IconRewriter
	logger *zap.Logger
}

// NewLoader creates a loader. icons may be nil.
func NewLoader(client backend.Client, icons IconRewriter, logger *zap.Logger) *Loader {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Loader{client: client, icons: icons, logger: logger}
}

// Load fetches services and locations concurrently, once. A failed list is
// left empty and the other list is still returned; the first error is
// reported alongside the partial catalog. Nothing is retried.
func (l *Loader) Load(ctx context.Context) (*Catalog, error) {
	cat := &Catalog{
		Services:  []models.ServiceType{},
		Locations: []models.Location{},
	}

	// No shared context: one failed list must not cancel the other.
	var g errgroup.Group
	g.Go(func() error {
		services, err := l.client.GetServices(ctx)
		if err != nil {
			l.logger.Warn("Failed to fetch services", zap.Error(err))
			return fmt.Errorf("catalog: services: %w", err)
		}
		for i := range services {
			if l.icons != nil {
				services[i].ImageURL = l.icons.IconURL(services[i].ImageURL)
			}
		}
		cat.Services = services
		return nil
	})
	g.Go(func() error {
		locations, err := l.client.GetLocations(ctx)
		if err != nil {
			l.logger.Warn("Failed to fetch locations", zap.Error(err))
			return fmt.Errorf("catalog: locations: %w", err)
		}
		cat.Locations = locations
		return nil
	})

	err := g.Wait()
	return cat, err
}

// FilterServices returns the services whose name contains q, ignoring case,
// in catalog order.
func (c *Catalog) FilterServices(q string) []models.ServiceType {
	if c == nil {
		return []models.ServiceType{}
	}
	return FilterServices(c.Services, q)
}

// FilterLocations returns the locations containing q, ignoring case, in
// catalog order.
func (c *Catalog) FilterLocations(q string) []models.Location {
	if c == nil {
		return []models.Location{}
	}
	return FilterLocations(c.Locations, q)
}

// FindService returns the catalog entry whose name equals name, ignoring
// case and surrounding space.
func (c *Catalog) FindService(name string) (models.ServiceType, bool) {
	name = strings.TrimSpace(name)
	if c == nil || name == "" {
		return models.ServiceType{}, false
	}
	for _, s := range c.Services {
		if strings.EqualFold(s.Name, name) {
			return s, true
		}
	}
	return models.ServiceType{}, false
}

// ServiceByID returns the catalog entry with id.
func (c *Catalog) ServiceByID(id int) (models.ServiceType, bool) {
	if c == nil {
		return models.ServiceType{}, false
	}
	for _, s := range c.Services {
		if s.ID == id {
			return s, true
		}
	}
	return models.ServiceType{}, false
}
