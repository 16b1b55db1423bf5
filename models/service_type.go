// models/service_type.go
package models

// ServiceType is a catalog entry offered by the marketplace, e.g. "Plumber".
type ServiceType struct {
	ID       int    `json:"id"`
	Name     string `json:"name"`
	ImageURL string `json:"image_url"`
}

// Location is a plain city name; it has no identity beyond its text.
type Location = string
