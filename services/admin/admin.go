package admin

import (
	"context"
	"errors"
	"fmt"

	"hussboss/models"
	"hussboss/services/backend"

	"go.uber.org/zap"
)

// ErrReloadFailed is returned by MarkAssigned when the status was changed
// but the list could not be fetched again.
var ErrReloadFailed = errors.New("admin: request list could not be reloaded")

// Requests is the admin view of service requests.
type Requests struct {
	client backend.Client
	logger *zap.Logger
}

// NewRequests creates the admin request service.
func NewRequests(client backend.Client, logger *zap.Logger) *Requests {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Requests{client: client, logger: logger}
}

// List fetches every service request.
func (r *Requests) List(ctx context.Context) ([]models.ServiceRequestRecord, error) {
	records, err := r.client.GetAdminRequests(ctx)
	if err != nil {
		return nil, fmt.Errorf("admin: failed to list requests: %w", err)
	}
	return records, nil
}

// MarkAssigned sets request id to Assigned and returns the list as the
// backend now reports it. Assigned is the only status change offered.
func (r *Requests) MarkAssigned(ctx context.Context, id int) ([]models.ServiceRequestRecord, error) {
	if err := r.client.UpdateRequestStatus(ctx, id, models.StatusAssigned); err != nil {
		r.logger.Warn("Failed to assign request", zap.Int("requestID", id), zap.Error(err))
		return nil, fmt.Errorf("admin: failed to assign request %d: %w", id, err)
	}
	r.logger.Info("Request assigned", zap.Int("requestID", id))

	records, err := r.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrReloadFailed, err)
	}
	return records, nil
}

// Stats summarizes a request list for the dashboard header.
type Stats struct {
	Total    int
	Pending  int
	Assigned int
}

// Summarize counts requests by status.
func Summarize(records []models.ServiceRequestRecord) Stats {
	stats := Stats{Total: len(records)}
	for _, rec := range records {
		switch rec.Status {
		case models.StatusPending:
			stats.Pending++
		case models.StatusAssigned:
			stats.Assigned++
		}
	}
	return stats
}
