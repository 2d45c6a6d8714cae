package controller

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"pokedex-catalog/models"
	"pokedex-catalog/service"
)

// SessionController handles HTTP requests for browse sessions
type SessionController struct {
	sessions *service.SessionService
	logger   *zap.Logger
}

// NewSessionController creates a new SessionController
func NewSessionController(sessions *service.SessionService, logger *zap.Logger) *SessionController {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SessionController{
		sessions: sessions,
		logger:   logger,
	}
}

// CreateSession handles POST /sessions
func (c *SessionController) CreateSession(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	snap, err := c.sessions.Create(r.Context())
	if err != nil {
		writeError(w, c.logger, "CreateSession", err)
		return
	}
	writeJSON(w, c.logger, http.StatusCreated, snap)
}

// GetSession handles GET /sessions/{id}
func (c *SessionController) GetSession(w http.ResponseWriter, r *http.Request, id string) {
	snap, err := c.sessions.Get(id)
	if err != nil {
		writeError(w, c.logger, "GetSession", err)
		return
	}
	writeJSON(w, c.logger, http.StatusOK, snap)
}

// UpdateView handles PUT /sessions/{id}/view
// Body is a ViewState; omitted fields take their default values
func (c *SessionController) UpdateView(w http.ResponseWriter, r *http.Request, id string) {
	state := models.DefaultViewState()
	if err := json.NewDecoder(r.Body).Decode(&state); err != nil {
		http.Error(w, fmt.Sprintf("Invalid request body: %v", err), http.StatusBadRequest)
		return
	}
	state.CategoryFilter = strings.TrimSpace(state.CategoryFilter)

	page, err := c.sessions.Update(r.Context(), id, state)
	if err != nil {
		writeError(w, c.logger, "UpdateView", err)
		return
	}
	writeJSON(w, c.logger, http.StatusOK, page)
}
