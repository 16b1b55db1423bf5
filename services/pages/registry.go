package pages

import (
	"context"
	"sync"
	"time"

	slotRepo "hussboss/database/repository/slot"
	"hussboss/metrics"
	"hussboss/services/booking"
	"hussboss/services/session"

	"go.uber.org/zap"
)

// ServiceAreas are the locations offered on the services page.
var ServiceAreas = []string{"Kathmandu", "Lalitpur", "Bhaktapur", "Pokhara", "Chitwan"}

// Deps are shared by every tab.
type Deps struct {
	Slots  slotRepo.SlotRepository
	Booker booking.Booker
	// DefaultLocation replaces a blank location on the home page.
	DefaultLocation string
	Logger          *zap.Logger
}

// Registry holds the tabs of all browsers seen recently.
type Registry struct {
	deps Deps
	ttl  time.Duration
	now  func() time.Time

	mu   sync.Mutex
	tabs map[string]*Tab
}

// NewRegistry creates a registry whose tabs expire after ttl without a request.
func NewRegistry(deps Deps, ttl time.Duration) *Registry {
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}
	return &Registry{
		deps: deps,
		ttl:  ttl,
		now:  time.Now,
		tabs: make(map[string]*Tab),
	}
}

// Tab returns the tab of browser slotID, creating it on first sight.
func (r *Registry) Tab(ctx context.Context, slotID string) *Tab {
	now := r.now()

	r.mu.Lock()
	defer r.mu.Unlock()
	if t, ok := r.tabs[slotID]; ok {
		t.touch(now)
		return t
	}

	store := session.NewStore(r.deps.Slots, slotID, r.deps.Logger)
	t := newTab(ctx, slotID, store, now)
	r.tabs[slotID] = t
	metrics.ActiveTabs.Set(float64(len(r.tabs)))
	return t
}

// Len returns the number of live tabs.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.tabs)
}

// Sweep drops tabs idle for longer than the ttl and returns how many went.
// Their sessions stay in the slot repository.
func (r *Registry) Sweep() int {
	if r.ttl <= 0 {
		return 0
	}
	now := r.now()

	r.mu.Lock()
	defer r.mu.Unlock()
	removed := 0
	for id, t := range r.tabs {
		if t.idleSince(now) > r.ttl {
			t.close()
			delete(r.tabs, id)
			removed++
		}
	}
	metrics.ActiveTabs.Set(float64(len(r.tabs)))
	return removed
}

// Booking returns the home or services workflow of t.
func (r *Registry) Booking(t *Tab, flow Flow) *booking.Workflow {
	return t.Workflow(string(flow), func() *booking.Workflow {
		opts := r.options(t, flow)
		switch flow {
		case FlowServices:
			opts.Policy = booking.LocationRequired
			opts.Location = ServiceAreas[0]
			opts.SuccessMessage = "Booking Confirmed! Check your profile."
			opts.FailureMessage = "Booking failed. Please try again."
		default:
			opts.Policy = booking.LocationFallback
			opts.Location = r.deps.DefaultLocation
		}
		return r.build(opts)
	})
}

// ListingsBooking returns the workflow for one listings search. The
// service is preselected and the location is fixed to the page's. A tab
// keeps only the workflow of the last listings search it used.
func (r *Registry) ListingsBooking(t *Tab, service, location string) *booking.Workflow {
	key := string(FlowListings) + "|" + service + "|" + location
	wf := t.LatestWorkflow(string(FlowListings), key, func() *booking.Workflow {
		opts := r.options(t, FlowListings)
		opts.Policy = booking.LocationFixed
		opts.Location = location
		opts.SuccessMessage = "Request Received! We will call you."
		opts.FailureMessage = "Error submitting request."
		return r.build(opts)
	})

	// The page's service stays chosen, also after a completed booking.
	if snap := wf.Snapshot(); snap.State == booking.Idle && snap.Term == "" {
		_ = wf.ChooseService(service)
	}
	return wf
}

func (r *Registry) options(t *Tab, flow Flow) booking.Options {
	return booking.Options{
		Page:      string(flow),
		Session:   t.Store,
		Booker:    r.deps.Booker,
		Notifier:  t.Notices,
		Navigator: t,
		Logger:    r.deps.Logger,
	}
}

func (r *Registry) build(opts booking.Options) *booking.Workflow {
	wf := booking.New(opts)
	wf.Observe(booking.LogTransitions(r.deps.Logger))
	wf.Observe(booking.CountTransitions)
	return wf
}
