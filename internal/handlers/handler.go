package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"unicode"

	"github.com/rs/zerolog"

	"github.com/dutchiono/headless-markets/internal/catalog"
	"github.com/dutchiono/headless-markets/internal/store"
)

// Handler contains shared dependencies for all HTTP handlers.
type Handler struct {
	shop   *catalog.Shop
	db     store.DataStore
	redis  *store.RedisStore
	logger zerolog.Logger
}

// NewHandler creates a new Handler. redis may be nil when caching is disabled.
func NewHandler(shop *catalog.Shop, db store.DataStore, redis *store.RedisStore, logger zerolog.Logger) *Handler {
	return &Handler{shop: shop, db: db, redis: redis, logger: logger}
}

// JSON sends a JSON response with the given status code.
func (h *Handler) JSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// Error sends a JSON error response with the given status code.
func (h *Handler) Error(w http.ResponseWriter, status int, message string) {
	h.JSON(w, status, map[string]string{"error": message})
}

// sanitizeParam trims and limits a query value to 100 characters, removing control characters.
func sanitizeParam(value string) string {
	value = strings.TrimSpace(value)

	value = strings.Map(func(r rune) rune {
		if unicode.IsControl(r) {
			return -1
		}
		return r
	}, value)

	if len(value) > 100 {
		value = value[:100]
	}

	return value
}

// intParam parses a non-negative integer query parameter. Empty means def.
func intParam(r *http.Request, name string, def int) (int, bool) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def, true
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}
