package models

// Upstream PokéAPI v2 payloads. Only the fields the catalog reads are mapped.

// NamedResource is the {name, url} pair the upstream uses for every reference
type NamedResource struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

// ResourceList is the response of an index endpoint such as /pokemon?limit=N
type ResourceList struct {
	Count   int             `json:"count"`
	Next    *string         `json:"next"`
	Results []NamedResource `json:"results"`
}

// PokemonResponse is the response of /pokemon/{name}
type PokemonResponse struct {
	ID     int    `json:"id"`
	Name   string `json:"name"`
	Height int    `json:"height"`
	Weight int    `json:"weight"`
	Types  []struct {
		Slot int           `json:"slot"`
		Type NamedResource `json:"type"`
	} `json:"types"`
	Sprites   PokemonSprites `json:"sprites"`
	Abilities []struct {
		Ability  NamedResource `json:"ability"`
		IsHidden bool          `json:"is_hidden"`
		Slot     int           `json:"slot"`
	} `json:"abilities"`
	Stats []struct {
		BaseStat int           `json:"base_stat"`
		Effort   int           `json:"effort"`
		Stat     NamedResource `json:"stat"`
	} `json:"stats"`
	Species     *NamedResource `json:"species"`
	GameIndices []struct {
		GameIndex int           `json:"game_index"`
		Version   NamedResource `json:"version"`
	} `json:"game_indices"`
}

// PokemonSprites holds the sprite URLs of an entity; any of them may be null upstream
type PokemonSprites struct {
	FrontDefault *string `json:"front_default"`
	Other        struct {
		OfficialArtwork struct {
			FrontDefault *string `json:"front_default"`
		} `json:"official-artwork"`
	} `json:"other"`
}

// SpeciesResponse is the response of /pokemon-species/{id}
type SpeciesResponse struct {
	ID     int    `json:"id"`
	Name   string `json:"name"`
	Genera []struct {
		Genus    string        `json:"genus"`
		Language NamedResource `json:"language"`
	} `json:"genera"`
	FlavorTextEntries []struct {
		FlavorText string        `json:"flavor_text"`
		Language   NamedResource `json:"language"`
		Version    NamedResource `json:"version"`
	} `json:"flavor_text_entries"`
	GenderRate     int `json:"gender_rate"`
	EvolutionChain *struct {
		URL string `json:"url"`
	} `json:"evolution_chain"`
}

// EvolutionChainResponse is the response of /evolution-chain/{id}
type EvolutionChainResponse struct {
	ID    int            `json:"id"`
	Chain *ChainLinkNode `json:"chain"`
}

// ChainLinkNode is one node of the evolution tree.
// EvolvesTo is nil when the field is absent and empty for a final stage.
type ChainLinkNode struct {
	Species   *NamedResource  `json:"species"`
	EvolvesTo []ChainLinkNode `json:"evolves_to"`
}

// TypeResponse is the response of /type/{name}
type TypeResponse struct {
	ID              int    `json:"id"`
	Name            string `json:"name"`
	DamageRelations struct {
		DoubleDamageFrom []NamedResource `json:"double_damage_from"`
		DoubleDamageTo   []NamedResource `json:"double_damage_to"`
		HalfDamageFrom   []NamedResource `json:"half_damage_from"`
		NoDamageFrom     []NamedResource `json:"no_damage_from"`
	} `json:"damage_relations"`
	Pokemon []struct {
		Slot    int           `json:"slot"`
		Pokemon NamedResource `json:"pokemon"`
	} `json:"pokemon"`
}
