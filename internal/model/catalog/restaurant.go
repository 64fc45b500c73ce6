package catalog

// Restaurant is a read-only catalog entry that starred entries point at.
type Restaurant struct {
	ID           string `json:"id" yaml:"id"`
	Name         string `json:"name" yaml:"name"`
	Cuisine      string `json:"cuisine,omitempty" yaml:"cuisine,omitempty"`
	Neighborhood string `json:"neighborhood,omitempty" yaml:"neighborhood,omitempty"`
}

// Seed provides the built-in catalog used when no external source is configured.
func Seed() []Restaurant {
	return []Restaurant{
		{
			ID:           "869c848c-7a58-4ed6-ab88-72ee2e8e677c",
			Name:         "Pho Bac",
			Cuisine:      "Vietnamese",
			Neighborhood: "Lower East Side",
		},
		{
			ID:           "e8036613-4b72-46f6-ab5e-edd2fc7c4fe4",
			Name:         "Golden Lotus Kitchen",
			Cuisine:      "Chinese",
			Neighborhood: "Chinatown",
		},
		{
			ID:           "8e9d2a1c-6f0b-4c3e-9a57-2b1f4d6c8e03",
			Name:         "Trattoria Lucia",
			Cuisine:      "Italian",
			Neighborhood: "West Village",
		},
		{
			ID:           "3c5f7b19-0d2e-4a8b-b6c4-91e2f3a4d5b6",
			Name:         "Masala Junction",
			Cuisine:      "Indian",
			Neighborhood: "Murray Hill",
		},
		{
			ID:           "f1a2b3c4-5d6e-4f70-8a9b-0c1d2e3f4a5b",
			Name:         "Taqueria del Sol",
			Cuisine:      "Mexican",
			Neighborhood: "Bushwick",
		},
	}
}
