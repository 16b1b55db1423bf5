package models

// BookingDraft holds the booking form while the modal is open.
type BookingDraft struct {
	UserName    string `form:"user_name" json:"user_name"`
	Phone       string `form:"phone" json:"phone"`
	Address     string `form:"address" json:"address"`
	ServiceType string `form:"service_type" json:"service_type"`
	Location    string `form:"location" json:"location"`
}

// BookingRequest is the body of POST /book_service.
type BookingRequest struct {
	UserName    string `json:"user_name"`
	Phone       string `json:"phone"`
	Address     string `json:"address"`
	UserID      int    `json:"user_id"`
	ServiceType string `json:"service_type"`
	Location    string `json:"location"`
}

// BookingAck is the backend acknowledgement of a booking.
type BookingAck struct {
	Message string `json:"message"`
}
