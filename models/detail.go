package models

// EvolutionStub is one stage of an evolution line
type EvolutionStub struct {
	Name    string `json:"name"`
	Locator string `json:"locator"`
}

// Gender classifies a species' gender ratio code
type Gender string

const (
	GenderUnknown    Gender = "genderless"
	GenderMaleOnly   Gender = "male-only"
	GenderFemaleOnly Gender = "female-only"
	GenderMixed      Gender = "mixed"
)

// SpeciesDescriptor holds the localized species data shown on a detail view
type SpeciesDescriptor struct {
	FlavorText string   `json:"flavorText"`
	Genus      string   `json:"genus"`
	GenderRate int      `json:"genderRate"` // eighths female, -1 for genderless
	Gender     Gender   `json:"gender"`
	Versions   []string `json:"versions"`
}

// Ability is an ability slot on an entity
type Ability struct {
	Name   string `json:"name"`
	Hidden bool   `json:"hidden"`
}

// Stat is a base stat value
type Stat struct {
	Name     string `json:"name"`
	BaseStat int    `json:"baseStat"`
}

// PokemonDetail is the fully assembled detail view of one entity
type PokemonDetail struct {
	ID         int               `json:"id"`
	Name       string            `json:"name"`
	Height     int               `json:"height"` // decimetres
	Weight     int               `json:"weight"` // hectograms
	Categories []string          `json:"categories"`
	ImageURL   string            `json:"imageUrl,omitempty"`
	Abilities  []Ability         `json:"abilities"`
	Stats      []Stat            `json:"stats"`
	Species    SpeciesDescriptor `json:"species"`
	Weaknesses []string          `json:"weaknesses"`
	Evolutions []EvolutionStub   `json:"evolutions"`
}
