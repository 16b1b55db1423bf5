package catalog

import "strings"

// Details is the fixed description shown for a service on the services page.
type Details struct {
	Desc  string
	Steps []string
}

var details = map[string]Details{
	"plumber": {
		Desc:  "Expert solutions for leaks, blockages, and pipe installations.",
		Steps: []string{"Leak Detection", "Pipe Fitting & Repair", "Drainage Cleaning", "Final Pressure Test"},
	},
	"electrician": {
		Desc:  "Certified professionals for wiring, safety inspections, and appliance setups.",
		Steps: []string{"Circuit Analysis", "Safe Wiring", "Component Installation", "Safety Check"},
	},
	"ac repair": {
		Desc:  "Keep your cool with our comprehensive AC servicing and repair.",
		Steps: []string{"Filter Cleaning", "Gas Refill", "Compressor Check", "Cooling Test"},
	},
	"painter": {
		Desc:  "Transform your home with high-quality interior and exterior painting.",
		Steps: []string{"Surface Priming", "Color Consultation", "Double Coat Application", "Clean Finish"},
	},
}

var defaultDetails = Details{
	Desc:  "Verified professionals delivering high-quality service at your doorstep.",
	Steps: []string{"Requirement Analysis", "Expert Service Delivery", "Quality Assurance", "Post-Service Cleanup"},
}

// DetailsFor returns the description of a service by name, or a generic one.
func DetailsFor(name string) Details {
	if d, ok := details[strings.ToLower(strings.TrimSpace(name))]; ok {
		return d
	}
	return defaultDetails
}
