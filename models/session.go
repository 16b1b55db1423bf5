package models

// Session is the logged-in user record kept in the browser's slot. It is
// built from the backend's login/signup response; IsAdmin is copied as-is.
type Session struct {
	ID       int     `json:"id"`
	FullName string  `json:"full_name"`
	Email    string  `json:"email"`
	IsAdmin  bool    `json:"is_admin"`
	Phone    *string `json:"phone,omitempty"`
	Address  *string `json:"address,omitempty"`
}

// Initial returns the first letter of the user's name for the avatar badge.
func (s Session) Initial() string {
	for _, r := range s.FullName {
		return string(r)
	}
	return "U"
}

// PhoneOr returns the phone number or fallback when none is stored.
func (s Session) PhoneOr(fallback string) string {
	if s.Phone == nil || *s.Phone == "" {
		return fallback
	}
	return *s.Phone
}

// AddressOr returns the address or fallback when none is stored.
func (s Session) AddressOr(fallback string) string {
	if s.Address == nil || *s.Address == "" {
		return fallback
	}
	return *s.Address
}
