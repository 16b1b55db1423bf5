package booking

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"hussboss/models"
	"hussboss/services/session"

	"go.uber.org/zap"
)

// LoginPath is where a logged out submit is sent.
const LoginPath = "/login"

// Booker sends a booking to the backend.
type Booker interface {
	BookService(ctx context.Context, req models.BookingRequest) (*models.BookingAck, error)
}

// ServiceFinder looks a typed service name up in the catalog.
type ServiceFinder interface {
	FindService(name string) (models.ServiceType, bool)
}

// Notifier shows transient messages to the user.
type Notifier interface {
	Success(message string)
	Error(message string)
}

// Navigator records a redirect for the current page.
type Navigator interface {
	Redirect(path string)
}

// Transition is one state change of a workflow.
type Transition struct {
	Page string
	From State
	To   State
}

// Observer is told about every transition. Observers run with the workflow
// locked and must not call back into it.
type Observer func(Transition)

// Options configures a Workflow.
type Options struct {
	// Page names the flow in logs and metrics.
	Page string
	// Policy and Location decide the submitted location. For
	// LocationRequired, Location only presets the form.
	Policy   LocationPolicy
	Location string

	// SuccessMessage and FailureMessage override MsgBooked and MsgSubmitFailed.
	SuccessMessage string
	FailureMessage string

	Session   session.Reader
	Booker    Booker
	Notifier  Notifier
	Navigator Navigator
	Logger    *zap.Logger
}

// Snapshot is a copy of the workflow state for rendering.
type Snapshot struct {
	State    State
	Term     string
	Location string
	Selected models.ServiceType
	Draft    models.BookingDraft
}

// ModalOpen reports whether the booking form should be shown.
func (s Snapshot) ModalOpen() bool {
	return s.State == ModalOpen || s.State == Submitting
}

// Workflow drives one page's service selection and booking submission.
type Workflow struct {
	opts Options

	mu        sync.Mutex
	state     State
	term      string
	location  string
	selected  models.ServiceType
	draft     models.BookingDraft
	observers []Observer
}

// New creates an idle workflow.
func New(opts Options) *Workflow {
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.SuccessMessage == "" {
		opts.SuccessMessage = MsgBooked
	}
	if opts.FailureMessage == "" {
		opts.FailureMessage = MsgSubmitFailed
	}
	return &Workflow{opts: opts, state: Idle}
}

// Observe registers an observer for future transitions.
func (w *Workflow) Observe(fn Observer) {
	w.mu.Lock()
	w.observers = append(w.observers, fn)
	w.mu.Unlock()
}

// Snapshot returns the current state.
func (w *Workflow) Snapshot() Snapshot {
	w.mu.Lock()
	defer w.mu.Unlock()
	return Snapshot{
		State:    w.state,
		Term:     w.term,
		Location: w.location,
		Selected: w.selected,
		Draft:    w.draft,
	}
}

// State returns the current state.
func (w *Workflow) State() State {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.state
}

// ChooseService records a typed service term. An empty term returns the
// workflow to Idle.
func (w *Workflow) ChooseService(term string) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.choose(models.ServiceType{Name: strings.TrimSpace(term)})
}

// SetLocation records the location picked next to the search bar.
func (w *Workflow) SetLocation(location string) {
	w.mu.Lock()
	w.location = strings.TrimSpace(location)
	w.mu.Unlock()
}

// SelectService chooses a catalog entry and opens the booking form for it.
func (w *Workflow) SelectService(svc models.ServiceType) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if err := w.choose(svc); err != nil {
		return err
	}
	return w.open(nil)
}

// Open shows the booking form for the chosen service. It fails with
// ErrEmptyService, leaving the workflow Idle, when no service is chosen.
func (w *Workflow) Open(finder ServiceFinder) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.open(finder)
}

// Close hides the booking form and discards the draft.
func (w *Workflow) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	switch w.state {
	case Submitting:
		return ErrInvalidTransition
	case Idle:
		return nil
	}
	w.draft = models.BookingDraft{}
	w.transition(Idle)
	return nil
}

// Submit validates form and sends the booking. All checks run before the
// backend is called. A missing session discards the draft and redirects to
// the login page; a backend failure keeps the draft and reopens the form.
func (w *Workflow) Submit(ctx context.Context, form models.BookingDraft) error {
	w.mu.Lock()
	if w.state != ModalOpen {
		w.mu.Unlock()
		return ErrInvalidTransition
	}
	w.mergeDraft(form)

	sess, err := w.opts.Session.Get(ctx)
	if err != nil {
		w.opts.Logger.Error("Failed to read session", zap.String("page", w.opts.Page), zap.Error(err))
		w.opts.Notifier.Error(w.opts.FailureMessage)
		w.mu.Unlock()
		return fmt.Errorf("booking: %w", err)
	}
	if sess == nil {
		w.opts.Notifier.Error(MsgLoginRequired)
		w.draft = models.BookingDraft{}
		w.transition(Idle)
		w.mu.Unlock()
		w.opts.Navigator.Redirect(LoginPath)
		return ErrNoSession
	}

	req, err := w.buildRequest(sess)
	if err != nil {
		w.mu.Unlock()
		return err
	}

	w.transition(Submitting)
	w.mu.Unlock()

	// The booking completes even if the browser goes away.
	_, err = w.opts.Booker.BookService(context.WithoutCancel(ctx), req)

	w.mu.Lock()
	defer w.mu.Unlock()
	if err != nil {
		w.opts.Logger.Warn("Booking failed", zap.String("page", w.opts.Page),
			zap.String("service", req.ServiceType), zap.Error(err))
		w.opts.Notifier.Error(w.opts.FailureMessage)
		w.transition(Failed)
		w.transition(ModalOpen)
		return fmt.Errorf("booking: submit: %w", err)
	}

	w.opts.Logger.Info("Booking submitted", zap.String("page", w.opts.Page),
		zap.Int("userID", req.UserID), zap.String("service", req.ServiceType), zap.String("location", req.Location))
	w.opts.Notifier.Success(w.opts.SuccessMessage)
	w.transition(Success)
	w.draft = models.BookingDraft{}
	w.term = ""
	w.selected = models.ServiceType{}
	w.transition(Idle)
	return nil
}

func (w *Workflow) choose(svc models.ServiceType) error {
	if w.state != Idle && w.state != ServiceChosen {
		return ErrInvalidTransition
	}
	w.term = svc.Name
	w.selected = svc
	if svc.Name == "" {
		w.transition(Idle)
		return nil
	}
	w.transition(ServiceChosen)
	return nil
}

func (w *Workflow) open(finder ServiceFinder) error {
	if w.state != Idle && w.state != ServiceChosen {
		return ErrInvalidTransition
	}
	if w.term == "" {
		w.opts.Notifier.Error(MsgEmptyService)
		w.transition(Idle)
		return ErrEmptyService
	}

	if finder != nil {
		if svc, ok := finder.FindService(w.term); ok {
			w.selected = svc
		}
	}
	if w.selected.Name == "" {
		w.selected = models.ServiceType{Name: w.term}
	}

	w.draft.ServiceType = w.selected.Name
	switch {
	case w.opts.Policy == LocationFixed:
		w.draft.Location = w.opts.Location
	case w.location != "":
		w.draft.Location = w.location
	case w.opts.Policy == LocationRequired:
		w.draft.Location = w.opts.Location
	}
	w.transition(ModalOpen)
	return nil
}

// mergeDraft copies the submitted form into the draft so typed values
// survive a rejected submit.
func (w *Workflow) mergeDraft(form models.BookingDraft) {
	w.draft.UserName = strings.TrimSpace(form.UserName)
	w.draft.Phone = strings.TrimSpace(form.Phone)
	w.draft.Address = strings.TrimSpace(form.Address)
	w.draft.Location = strings.TrimSpace(form.Location)
	if w.draft.ServiceType == "" {
		w.draft.ServiceType = w.term
	}
}

func (w *Workflow) buildRequest(sess *models.Session) (models.BookingRequest, error) {
	if w.term == "" {
		w.opts.Notifier.Error(MsgEmptyService)
		return models.BookingRequest{}, ErrEmptyService
	}

	required := []struct{ field, value string }{
		{"user_name", w.draft.UserName},
		{"phone", w.draft.Phone},
		{"address", w.draft.Address},
	}
	for _, r := range required {
		if r.value == "" {
			w.opts.Notifier.Error(fieldMessages[r.field])
			return models.BookingRequest{}, &ValidationError{Field: r.field}
		}
	}

	location := w.draft.Location
	switch w.opts.Policy {
	case LocationFixed:
		location = w.opts.Location
	case LocationRequired:
		if location == "" {
			w.opts.Notifier.Error(fieldMessages["location"])
			return models.BookingRequest{}, &ValidationError{Field: "location"}
		}
	default:
		if location == "" {
			location = w.opts.Location
		}
	}

	service := w.draft.ServiceType
	if service == "" {
		service = w.term
	}

	return models.BookingRequest{
		UserName:    w.draft.UserName,
		Phone:       w.draft.Phone,
		Address:     w.draft.Address,
		UserID:      sess.ID,
		ServiceType: service,
		Location:    location,
	}, nil
}

func (w *Workflow) transition(to State) {
	from := w.state
	if from == to {
		return
	}
	w.state = to
	t := Transition{Page: w.opts.Page, From: from, To: to}
	for _, fn := range w.observers {
		fn(t)
	}
}
