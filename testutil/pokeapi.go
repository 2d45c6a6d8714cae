// Package testutil provides an in-process fake of the PokéAPI for tests.
package testutil

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
)

const apiPrefix = "/api/v2/"

// Chain describes one node of a fake evolution chain
type Chain struct {
	Species   string
	EvolvesTo []Chain
}

// FakePokeAPI serves canned PokéAPI responses keyed by resource path
type FakePokeAPI struct {
	Server *httptest.Server

	mu       sync.Mutex
	handlers map[string]http.HandlerFunc
	hits     map[string]int
}

// NewFakePokeAPI starts a fake upstream that is closed when the test ends
func NewFakePokeAPI(t testing.TB) *FakePokeAPI {
	t.Helper()
	f := &FakePokeAPI{
		handlers: make(map[string]http.HandlerFunc),
		hits:     make(map[string]int),
	}
	f.Server = httptest.NewServer(http.HandlerFunc(f.serve))
	t.Cleanup(f.Server.Close)
	return f
}

func (f *FakePokeAPI) serve(w http.ResponseWriter, r *http.Request) {
	path := strings.Trim(strings.TrimPrefix(r.URL.Path, apiPrefix), "/")

	f.mu.Lock()
	f.hits[path]++
	h, ok := f.handlers[path]
	f.mu.Unlock()

	if !ok {
		http.Error(w, "Not Found", http.StatusNotFound)
		return
	}
	h(w, r)
}

// BaseURL is the API root to hand to the client under test
func (f *FakePokeAPI) BaseURL() string {
	return f.Server.URL + strings.TrimSuffix(apiPrefix, "/")
}

// URL returns the absolute URL of a resource path such as "pokemon/pikachu"
func (f *FakePokeAPI) URL(path string) string {
	return f.Server.URL + apiPrefix + strings.Trim(path, "/") + "/"
}

// HandleFunc registers a custom handler for a resource path
func (f *FakePokeAPI) HandleFunc(path string, h http.HandlerFunc) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.handlers[strings.Trim(path, "/")] = h
}

// Handle serves body as JSON for a resource path
func (f *FakePokeAPI) Handle(path string, body any) {
	data, err := json.Marshal(body)
	if err != nil {
		panic(fmt.Sprintf("testutil: marshal %s: %v", path, err))
	}
	f.HandleFunc(path, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write(data)
	})
}

// HandleStatus answers a resource path with a bare status code
func (f *FakePokeAPI) HandleStatus(path string, status int) {
	f.HandleFunc(path, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, http.StatusText(status), status)
	})
}

// Hits returns how many requests reached a resource path
func (f *FakePokeAPI) Hits(path string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.hits[strings.Trim(path, "/")]
}

// AddIndex serves the catalog index with one entry per name, in order
func (f *FakePokeAPI) AddIndex(names ...string) {
	results := make([]map[string]any, len(names))
	for i, name := range names {
		results[i] = map[string]any{"name": name, "url": f.URL("pokemon/" + name)}
	}
	f.Handle("pokemon", map[string]any{
		"count":    len(names),
		"next":     nil,
		"previous": nil,
		"results":  results,
	})
}

// AddPokemon serves /pokemon/{name}. The species locator points at
// pokemon-species/{name} and the sprite at sprites/{name}.png.
func (f *FakePokeAPI) AddPokemon(name string, id int, weight int, types ...string) {
	f.Handle("pokemon/"+name, f.PokemonBody(name, id, weight, types...))
}

// PokemonBody builds the JSON body AddPokemon serves, for tests that tweak it
func (f *FakePokeAPI) PokemonBody(name string, id int, weight int, types ...string) map[string]any {
	typeList := make([]map[string]any, len(types))
	for i, t := range types {
		typeList[i] = map[string]any{
			"slot": i + 1,
			"type": map[string]any{"name": t, "url": f.URL("type/" + t)},
		}
	}
	return map[string]any{
		"id":     id,
		"name":   name,
		"height": 7,
		"weight": weight,
		"types":  typeList,
		"sprites": map[string]any{
			"front_default": f.URL("sprites/" + name + ".png"),
			"other": map[string]any{
				"official-artwork": map[string]any{
					"front_default": f.URL("sprites/artwork/" + name + ".png"),
				},
			},
		},
		"abilities": []map[string]any{
			{"ability": map[string]any{"name": "overgrow"}, "is_hidden": false, "slot": 1},
			{"ability": map[string]any{"name": "chlorophyll"}, "is_hidden": true, "slot": 3},
		},
		"stats": []map[string]any{
			{"base_stat": 45, "effort": 0, "stat": map[string]any{"name": "hp"}},
			{"base_stat": 49, "effort": 0, "stat": map[string]any{"name": "attack"}},
		},
		"species": map[string]any{"name": name, "url": f.URL("pokemon-species/" + name)},
		"game_indices": []map[string]any{
			{"game_index": id, "version": map[string]any{"name": "red"}},
			{"game_index": id, "version": map[string]any{"name": "blue"}},
			{"game_index": id, "version": map[string]any{"name": "yellow"}},
		},
	}
}

// AddSpecies serves pokemon-species/{name} pointing at evolution-chain/{chainID}
func (f *FakePokeAPI) AddSpecies(name string, chainID int, genderRate int) {
	f.Handle("pokemon-species/"+name, map[string]any{
		"id":   chainID,
		"name": name,
		"genera": []map[string]any{
			{"genus": "Seed Pokémon", "language": map[string]any{"name": "en"}},
			{"genus": "Pokémon Semilla", "language": map[string]any{"name": "es"}},
		},
		"flavor_text_entries": []map[string]any{
			{"flavor_text": "A strange seed was\nplanted on its\fback at birth.", "language": map[string]any{"name": "en"}, "version": map[string]any{"name": "red"}},
			{"flavor_text": "Una rara semilla\nle fue plantada\fal nacer.", "language": map[string]any{"name": "es"}, "version": map[string]any{"name": "x"}},
		},
		"gender_rate":     genderRate,
		"evolution_chain": map[string]any{"url": f.URL(fmt.Sprintf("evolution-chain/%d", chainID))},
	})
}

// AddChain serves evolution-chain/{id} with the given tree
func (f *FakePokeAPI) AddChain(id int, root Chain) {
	f.Handle(fmt.Sprintf("evolution-chain/%d", id), map[string]any{
		"id":    id,
		"chain": f.chainNode(root),
	})
}

func (f *FakePokeAPI) chainNode(c Chain) map[string]any {
	next := make([]map[string]any, len(c.EvolvesTo))
	for i, child := range c.EvolvesTo {
		next[i] = f.chainNode(child)
	}
	return map[string]any{
		"species":    map[string]any{"name": c.Species, "url": f.URL("pokemon-species/" + c.Species)},
		"evolves_to": next,
	}
}

// AddType serves type/{name} with its weaknesses and member names
func (f *FakePokeAPI) AddType(name string, doubleDamageFrom []string, members ...string) {
	weak := make([]map[string]any, len(doubleDamageFrom))
	for i, w := range doubleDamageFrom {
		weak[i] = map[string]any{"name": w, "url": f.URL("type/" + w)}
	}
	pokemon := make([]map[string]any, len(members))
	for i, m := range members {
		pokemon[i] = map[string]any{
			"slot":    1,
			"pokemon": map[string]any{"name": m, "url": f.URL("pokemon/" + m)},
		}
	}
	f.Handle("type/"+name, map[string]any{
		"name": name,
		"damage_relations": map[string]any{
			"double_damage_from": weak,
			"double_damage_to":   []any{},
			"half_damage_from":   []any{},
			"no_damage_from":     []any{},
		},
		"pokemon": pokemon,
	})
}
