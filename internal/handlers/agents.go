package handlers

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/dutchiono/headless-markets/internal/catalog"
	"github.com/dutchiono/headless-markets/internal/models"
)

// AgentResponse is the public representation of a shop agent.
type AgentResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Category    string `json:"category"`
	IsVerified  bool   `json:"is_verified"`
	IsActive    bool   `json:"is_active"`
	ListedAt    string `json:"listed_at"`
}

// AgentListResponse mirrors the activeAgents GraphQL result.
type AgentListResponse struct {
	Items      []AgentResponse `json:"items"`
	TotalItems int             `json:"total_items"`
}

func toAgentResponse(a models.Agent) AgentResponse {
	return AgentResponse{
		ID:          a.ID,
		Name:        a.Name,
		Description: a.Description,
		Category:    a.Category,
		IsVerified:  a.IsVerified,
		IsActive:    a.IsActive,
		ListedAt:    a.CreatedAt.UTC().Format(time.RFC3339),
	}
}

func toAgentResponses(agents []models.Agent) []AgentResponse {
	out := make([]AgentResponse, 0, len(agents))
	for _, a := range agents {
		out = append(out, toAgentResponse(a))
	}
	return out
}

// ListAgents handles GET /api/agents.
func (h *Handler) ListAgents(w http.ResponseWriter, r *http.Request) {
	skip, ok := intParam(r, "skip", 0)
	if !ok {
		h.Error(w, http.StatusBadRequest, "skip must be a non-negative integer")
		return
	}
	take, ok := intParam(r, "take", 0)
	if !ok {
		h.Error(w, http.StatusBadRequest, "take must be a non-negative integer")
		return
	}

	list, err := h.shop.ActiveAgents(r.Context(), &catalog.ListOptions{
		Category:     sanitizeParam(r.URL.Query().Get("category")),
		NameContains: sanitizeParam(r.URL.Query().Get("q")),
		Skip:         skip,
		Take:         take,
	})
	if err != nil {
		h.logger.Error().Err(err).Msg("list agents failed")
		h.Error(w, http.StatusInternalServerError, "database error")
		return
	}

	h.JSON(w, http.StatusOK, AgentListResponse{
		Items:      toAgentResponses(list.Items),
		TotalItems: list.TotalItems,
	})
}

// GetAgent handles GET /api/agents/{id}. Hidden agents read as not found.
func (h *Handler) GetAgent(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		h.Error(w, http.StatusBadRequest, "agent id is required")
		return
	}

	agent, err := h.shop.Agent(r.Context(), id)
	if err != nil {
		h.logger.Error().Err(err).Str("agent_id", id).Msg("agent lookup failed")
		h.Error(w, http.StatusInternalServerError, "database error")
		return
	}

	if agent == nil {
		h.Error(w, http.StatusNotFound, "agent not found")
		return
	}

	h.JSON(w, http.StatusOK, toAgentResponse(*agent))
}

// AgentsByCategory handles GET /api/categories/{category}/agents.
func (h *Handler) AgentsByCategory(w http.ResponseWriter, r *http.Request) {
	category := sanitizeParam(chi.URLParam(r, "category"))

	agents, err := h.shop.AgentsByCategory(r.Context(), category)
	if err != nil {
		h.logger.Error().Err(err).Str("category", category).Msg("category listing failed")
		h.Error(w, http.StatusInternalServerError, "database error")
		return
	}

	h.JSON(w, http.StatusOK, toAgentResponses(agents))
}
