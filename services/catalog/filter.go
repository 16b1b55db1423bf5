package catalog

import (
	"strings"

	"hussboss/models"
)

// FilterServices keeps the entries of services whose name contains q
// case-insensitively. The input is never modified and order is preserved.
func FilterServices(services []models.ServiceType, q string) []models.ServiceType {
	needle := strings.ToLower(q)
	out := make([]models.ServiceType, 0, len(services))
	for _, s := range services {
		if strings.Contains(strings.ToLower(s.Name), needle) {
			out = append(out, s)
		}
	}
	return out
}

// FilterLocations keeps the locations containing q case-insensitively.
func FilterLocations(locations []models.Location, q string) []models.Location {
	needle := strings.ToLower(q)
	out := make([]models.Location, 0, len(locations))
	for _, loc := range locations {
		if strings.Contains(strings.ToLower(loc), needle) {
			out = append(out, loc)
		}
	}
	return out
}
