package wizard

// Choices offered by the wizard forms. Order is the display order; for
// ActivityLevels it is also the intensity order.
var (
	Budgets = []string{"Budget", "Moderate", "Luxury"}

	Purposes = []string{"Sightseeing", "Adventure", "Relaxation", "Culture", "Food", "Shopping"}

	DietaryOptions = []string{"Vegetarian", "Vegan", "Halal", "Kosher", "Gluten-free", "None"}

	ActivityLevels = []string{"Very Light", "Light", "Moderate", "Active", "Very Active"}

	AccommodationOptions = []string{"Hotel", "Hostel", "Resort", "Apartment", "Boutique Hotel"}

	SpecialInterestOptions = []string{
		"History", "Art", "Nature", "Photography", "Local Markets", "Museums",
		"Nightlife", "Live Music", "Water Sports", "Hiking",
	}
)

const (
	DefaultBudget        = "Moderate"
	DefaultActivityLevel = "Moderate"
)

func contains(options []string, v string) bool {
	for _, o := range options {
		if o == v {
			return true
		}
	}
	return false
}

// unknown returns the first value not present in options.
func unknown(options, values []string) (string, bool) {
	for _, v := range values {
		if !contains(options, v) {
			return v, true
		}
	}
	return "", false
}

// dedupe keeps the first occurrence of every value.
func dedupe(values []string) []string {
	if len(values) == 0 {
		return []string{}
	}
	seen := make(map[string]struct{}, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}
