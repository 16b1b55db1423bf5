package listings

import (
	"context"
	"math/rand"
	"strings"
	"sync"
	"time"

	"hussboss/models"
	"hussboss/services/backend"

	"go.uber.org/zap"
)

// Display defaults for a search without service or location.
const (
	DefaultService  = "Professional"
	DefaultLocation = "Nepal"
)

// Config controls filler entries. With Enabled false only real providers
// are ever shown.
type Config struct {
	FillerEnabled bool
	FillerMin     int
	FillerMax     int
}

// Page is the result of one listings search.
type Page struct {
	Service   string
	Location  string
	Providers []models.Provider
	// Failed is set when the backend could not be reached.
	Failed bool
}

// Real counts the non-synthetic providers.
func (p Page) Real() int {
	n := 0
	for _, pr := range p.Providers {
		if !pr.Synthetic {
			n++
		}
	}
	return n
}

// Service searches providers for the listings page.
type Service struct {
	client backend.Client
	cfg    Config
	logger *zap.Logger

	mu  sync.Mutex
	rng *rand.Rand
}

// NewService creates a listings service. Filler bounds are normalized so
// that 0 <= FillerMin <= FillerMax.
func NewService(client backend.Client, cfg Config, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.FillerMin < 0 {
		cfg.FillerMin = 0
	}
	if cfg.FillerMax < cfg.FillerMin {
		cfg.FillerMax = cfg.FillerMin
	}
	return &Service{
		client: client,
		cfg:    cfg,
		logger: logger,
		rng:    rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// Search returns the providers offering service in location. Blank
// arguments are sent as-is and displayed with the package defaults.
func (s *Service) Search(ctx context.Context, service, location string) Page {
	service = strings.TrimSpace(service)
	location = strings.TrimSpace(location)

	page := Page{Service: service, Location: location}
	if page.Service == "" {
		page.Service = DefaultService
	}
	if page.Location == "" {
		page.Location = DefaultLocation
	}

	providers, err := s.client.SearchProviders(ctx, service, location)
	if err != nil {
		s.logger.Warn("Provider search failed", zap.String("service", service),
			zap.String("location", location), zap.Error(err))
		page.Failed = true
		page.Providers = s.errorFiller(page.Service, page.Location)
		return page
	}

	page.Providers = s.fill(providers, page.Service, page.Location)
	return page
}

// fill tops providers up to a random target in [FillerMin, FillerMax].
func (s *Service) fill(providers []models.Provider, service, location string) []models.Provider {
	if !s.cfg.FillerEnabled {
		return providers
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	target := s.cfg.FillerMin + s.rng.Intn(s.cfg.FillerMax-s.cfg.FillerMin+1)
	for len(providers) < target {
		providers = append(providers, fillerProvider(s.rng, service, location))
	}
	return providers
}

func (s *Service) errorFiller(service, location string) []models.Provider {
	if !s.cfg.FillerEnabled {
		return []models.Provider{}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Provider, 0, errorFillerCount)
	for range errorFillerCount {
		out = append(out, errorFillerProvider(s.rng, service, location))
	}
	return out
}
