package pages

import (
	"context"
	"sync"
	"time"

	"hussboss/models"
	"hussboss/services/booking"
	"hussboss/services/session"
)

// Flow names a booking workflow owned by a tab.
type Flow string

const (
	FlowHome     Flow = "home"
	FlowServices Flow = "services"
	FlowListings Flow = "listings"
)

// Nav is what the navigation bar shows. It follows the session store
// through a subscription.
type Nav struct {
	LoggedIn bool
	IsAdmin  bool
	Name     string
	Initial  string
}

func navFor(s *models.Session) Nav {
	if s == nil {
		return Nav{}
	}
	return Nav{
		LoggedIn: true,
		IsAdmin:  session.IsAdmin(s),
		Name:     s.FullName,
		Initial:  s.Initial(),
	}
}

// Tab is the page state of one browser.
type Tab struct {
	ID      string
	Store   *session.Store
	Notices *Notices

	mu          sync.Mutex
	nav         Nav
	redirect    string
	workflows   map[string]*booking.Workflow
	latest      map[string]string
	lastSeen    time.Time
	unsubscribe func()
}

func newTab(ctx context.Context, id string, store *session.Store, now time.Time) *Tab {
	t := &Tab{
		ID:        id,
		Store:     store,
		Notices:   &Notices{},
		workflows: make(map[string]*booking.Workflow),
		latest:    make(map[string]string),
		lastSeen:  now,
	}
	if sess, err := store.Get(ctx); err == nil {
		t.nav = navFor(sess)
	}
	t.unsubscribe = store.Subscribe(t.onSession)
	return t
}

func (t *Tab) onSession(s *models.Session) {
	t.mu.Lock()
	t.nav = navFor(s)
	t.mu.Unlock()
}

// Nav returns the navigation state.
func (t *Tab) Nav() Nav {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.nav
}

// Redirect records a redirect to follow after the current action.
func (t *Tab) Redirect(path string) {
	t.mu.Lock()
	t.redirect = path
	t.mu.Unlock()
}

// TakeRedirect returns and clears the pending redirect.
func (t *Tab) TakeRedirect() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	path := t.redirect
	t.redirect = ""
	return path
}

// Workflow returns the workflow stored under key, creating it with build
// on first use.
func (t *Tab) Workflow(key string, build func() *booking.Workflow) *booking.Workflow {
	t.mu.Lock()
	defer t.mu.Unlock()
	if wf, ok := t.workflows[key]; ok {
		return wf
	}
	wf := build()
	t.workflows[key] = wf
	return wf
}

// LatestWorkflow is Workflow for pages with many variants. Only the most
// recently used key of group is kept; switching to another key drops the
// previous workflow.
func (t *Tab) LatestWorkflow(group, key string, build func() *booking.Workflow) *booking.Workflow {
	t.mu.Lock()
	defer t.mu.Unlock()
	if prev, ok := t.latest[group]; ok && prev != key {
		delete(t.workflows, prev)
	}
	t.latest[group] = key
	if wf, ok := t.workflows[key]; ok {
		return wf
	}
	wf := build()
	t.workflows[key] = wf
	return wf
}

// workflowCount returns how many workflows t holds.
func (t *Tab) workflowCount() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.workflows)
}

func (t *Tab) touch(now time.Time) {
	t.mu.Lock()
	t.lastSeen = now
	t.mu.Unlock()
}

func (t *Tab) idleSince(now time.Time) time.Duration {
	t.mu.Lock()
	defer t.mu.Unlock()
	return now.Sub(t.lastSeen)
}

func (t *Tab) close() {
	if t.unsubscribe != nil {
		t.unsubscribe()
	}
}
