package booking

import (
	"errors"
	"fmt"
)

// State is a booking workflow state.
type State int

const (
	Idle State = iota
	ServiceChosen
	ModalOpen
	Submitting
	Success
	Failed
)

var stateNames = map[State]string{
	Idle:          "idle",
	ServiceChosen: "service_chosen",
	ModalOpen:     "modal_open",
	Submitting:    "submitting",
	Success:       "success",
	Failed:        "failed",
}

func (s State) String() string {
	if name, ok := stateNames[s]; ok {
		return name
	}
	return fmt.Sprintf("state(%d)", int(s))
}

// LocationPolicy decides what happens to a blank location on submit.
type LocationPolicy int

const (
	// LocationFallback replaces a blank location with the workflow's location.
	LocationFallback LocationPolicy = iota
	// LocationRequired rejects a blank location.
	LocationRequired
	// LocationFixed ignores the form and always uses the workflow's location.
	LocationFixed
)

func (p LocationPolicy) String() string {
	switch p {
	case LocationFallback:
		return "fallback"
	case LocationRequired:
		return "required"
	case LocationFixed:
		return "fixed"
	}
	return fmt.Sprintf("policy(%d)", int(p))
}

var (
	// ErrEmptyService is returned when an action needs a service term and none is set.
	ErrEmptyService = errors.New("booking: service is empty")
	// ErrNoSession is returned when a booking is submitted while logged out.
	ErrNoSession = errors.New("booking: login required")
	// ErrInvalidTransition is returned when an action is not allowed in the current state.
	ErrInvalidTransition = errors.New("booking: invalid transition")
)

// ValidationError reports a required booking field left blank.
type ValidationError struct {
	Field string
}

func (e *ValidationError) Error() string {
	return "booking: " + e.Field + " is required"
}

// User facing notices.
const (
	MsgEmptyService  = "Please enter a service (e.g. Plumber)"
	MsgLoginRequired = "Please login to book a service"
	MsgBooked        = "Request Received! We will call you shortly."
	MsgSubmitFailed  = "Error submitting request. Please try again."
)

var fieldMessages = map[string]string{
	"user_name": "Please enter your name",
	"phone":     "Please enter your phone number",
	"address":   "Please enter your address",
	"location":  "Please select a location",
}
