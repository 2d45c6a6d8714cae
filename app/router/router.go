package router

import (
	"net/http"
	"strings"

	"pokedex-catalog/app/controller"
)

type Controllers struct {
	Pokemon *controller.PokemonController
	Session *controller.SessionController
}

// pingHandler handles GET /ping
func pingHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}

// SetupRoutes registers every endpoint on mux
func SetupRoutes(mux *http.ServeMux, controllers *Controllers) {
	// Ping endpoint
	mux.HandleFunc("/ping", pingHandler)

	// Catalog page
	mux.HandleFunc("/pokemon", controllers.Pokemon.ListPokemon)

	// Detail, evolutions and sprite by name
	mux.HandleFunc("/pokemon/", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}

		path := strings.Trim(strings.TrimPrefix(r.URL.Path, "/pokemon/"), "/")
		parts := strings.Split(path, "/")
		if parts[0] == "" || len(parts) > 2 {
			http.Error(w, "Not found", http.StatusNotFound)
			return
		}

		name := parts[0]
		if len(parts) == 1 {
			controllers.Pokemon.GetPokemon(w, r, name)
			return
		}
		switch parts[1] {
		case "evolutions":
			controllers.Pokemon.GetEvolutions(w, r, name)
		case "sprite":
			controllers.Pokemon.GetSprite(w, r, name)
		default:
			http.Error(w, "Not found", http.StatusNotFound)
		}
	})

	// Type membership and weaknesses
	mux.HandleFunc("/types/", controllers.Pokemon.GetTypeMembers)
	mux.HandleFunc("/weaknesses", controllers.Pokemon.GetWeaknesses)

	// Browse sessions
	mux.HandleFunc("/sessions", controllers.Session.CreateSession)
	mux.HandleFunc("/sessions/", func(w http.ResponseWriter, r *http.Request) {
		path := strings.Trim(strings.TrimPrefix(r.URL.Path, "/sessions/"), "/")
		id, action, _ := strings.Cut(path, "/")
		if id == "" {
			http.Error(w, "Not found", http.StatusNotFound)
			return
		}

		// Handle PUT /sessions/:id/view
		if action == "view" {
			if r.Method != http.MethodPut {
				http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
				return
			}
			controllers.Session.UpdateView(w, r, id)
			return
		}

		// Otherwise, treat as GET /sessions/:id
		if action == "" && r.Method == http.MethodGet {
			controllers.Session.GetSession(w, r, id)
			return
		}
		if action != "" {
			http.Error(w, "Not found", http.StatusNotFound)
			return
		}
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	})
}
