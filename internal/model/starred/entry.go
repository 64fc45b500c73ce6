package starred

// Entry is a bookmark of one catalog restaurant with an optional comment.
type Entry struct {
	ID           string  `json:"id"`
	RestaurantID string  `json:"restaurantId"`
	Comment      *string `json:"comment"`
}

// View joins an Entry with the display name of its catalog restaurant.
type View struct {
	ID           string  `json:"id"`
	RestaurantID string  `json:"restaurantID"`
	Name         string  `json:"name"`
	Comment      *string `json:"comment"`
}

// Seed returns the entries the service starts with.
func Seed() []Entry {
	return []Entry{
		{
			ID:           "a7272cd9-26fb-44b5-8d53-9781f55175a1",
			RestaurantID: "869c848c-7a58-4ed6-ab88-72ee2e8e677c",
			Comment:      stringPtr("Best pho in NYC"),
		},
		{
			ID:           "8df59b21-2152-4f9b-9200-95c19aa88226",
			RestaurantID: "e8036613-4b72-46f6-ab5e-edd2fc7c4fe4",
			Comment:      stringPtr("Their lunch special is the best!"),
		},
	}
}

func stringPtr(v string) *string { return &v }
