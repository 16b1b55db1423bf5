package listings

import (
	"fmt"
	"math/rand"

	"hussboss/models"

	"github.com/google/uuid"
)

var (
	firstNames = []string{
		"Ram", "Sita", "Hari", "Gita", "Bikash", "Sunita", "Rabin", "Sarita",
		"Kiran", "Nabin", "Anita", "Prakash", "Binod", "Manju", "Deepak",
		"Suresh", "Kabita", "Roshan", "Pooja", "Arjun",
	}
	lastNames = []string{
		"Karki", "Sharma", "Gurung", "Shrestha", "Thapa", "Rai", "Joshi",
		"Lama", "Tamang", "Yadav", "Basnet", "Magar", "Bhandari", "Ghimire",
		"Khatri", "Poudel", "Adhikari", "Maharjan", "Singh", "Chaudhary",
	}
)

const (
	minFillerRating = 4.2
	maxFillerRating = 5.0
	// errorFillerCount entries replace the list when the backend fails.
	errorFillerCount = 12
)

func randomName(rng *rand.Rand) string {
	return firstNames[rng.Intn(len(firstNames))] + " " + lastNames[rng.Intn(len(lastNames))]
}

// fillerProvider builds one synthetic listing.
func fillerProvider(rng *rand.Rand, service, location string) models.Provider {
	rating := minFillerRating + rng.Float64()*(maxFillerRating-minFillerRating)
	return models.Provider{
		ID:          "filler-" + uuid.NewString(),
		Name:        randomName(rng),
		Location:    location,
		Rating:      fmt.Sprintf("%.1f", rating),
		Description: fmt.Sprintf("Certified %s with %d years of experience. Verified by HussBoss.", service, rng.Intn(8)+2),
		IsVerified:  true,
		Synthetic:   true,
	}
}

func errorFillerProvider(rng *rand.Rand, service, location string) models.Provider {
	return models.Provider{
		ID:          "filler-" + uuid.NewString(),
		Name:        randomName(rng),
		Location:    location,
		Rating:      "4.8",
		Description: fmt.Sprintf("Expert %s provider.", service),
		IsVerified:  true,
		Synthetic:   true,
	}
}
