package models

// Credentials is the body of POST /auth/login.
type Credentials struct {
	Email    string `form:"email" json:"email"`
	Password string `form:"password" json:"password"`
}

// SignupRequest is the body of POST /auth/signup.
type SignupRequest struct {
	FullName string  `form:"full_name" json:"full_name"`
	Email    string  `form:"email" json:"email"`
	Password string  `form:"password" json:"password"`
	Phone    *string `form:"phone" json:"phone,omitempty"`
	Address  *string `form:"address" json:"address,omitempty"`
}
