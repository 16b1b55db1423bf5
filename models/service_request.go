package models

// Request statuses as stored by the backend.
const (
	StatusPending   = "Pending"
	StatusAssigned  = "Assigned"
	StatusCompleted = "Completed"
)

// ServiceRequestRecord is a booking as the backend stores it. Read-only here.
type ServiceRequestRecord struct {
	ID          int       `json:"id"`
	UserID      int       `json:"user_id,omitempty"`
	UserName    string    `json:"user_name"`
	Phone       string    `json:"phone"`
	ServiceType string    `json:"service_type"`
	Location    string    `json:"location"`
	Address     string    `json:"address"`
	Status      string    `json:"status"`
	CreatedAt   Timestamp `json:"created_at"`
}

// IsPending reports whether the request still awaits assignment.
func (r ServiceRequestRecord) IsPending() bool {
	return r.Status == StatusPending
}
