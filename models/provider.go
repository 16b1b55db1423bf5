package models

// Provider is one entry on the listings page.
type Provider struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	Location     string  `json:"location"`
	Rating       string  `json:"rating"`
	Description  string  `json:"description"`
	Phone        string  `json:"phone,omitempty"`
	ProfileImage *string `json:"profile_image,omitempty"`
	IsVerified   bool    `json:"is_verified"`

	// Synthetic marks filler entries generated by this frontend.
	Synthetic bool `json:"-"`
}

// ProviderRegistration is the business signup form forwarded to POST /register.
type ProviderRegistration struct {
	Name        string `form:"name" binding:"required"`
	Email       string `form:"email" binding:"required"`
	Password    string `form:"password" binding:"required"`
	Phone       string `form:"phone" binding:"required"`
	Location    string `form:"location" binding:"required"`
	ServiceID   int    `form:"service_id" binding:"required"`
	Description string `form:"description" binding:"required"`
}

// ProviderImage is an optional profile picture attached to a registration.
type ProviderImage struct {
	Filename string
	Content  []byte
}

// Initial returns the first letter of the provider name for the avatar.
func (p Provider) Initial() string {
	for _, r := range p.Name {
		return string(r)
	}
	return "?"
}
