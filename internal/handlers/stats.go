package handlers

import (
	"net/http"
	"sort"
	"strconv"
	"time"
)

// CategoryStats counts shop-visible agents in one category.
type CategoryStats struct {
	Category string `json:"category"`
	Agents   int    `json:"agents"`
	Active   int    `json:"active"`
}

// StatsResponse represents the response from the stats endpoint.
type StatsResponse struct {
	TotalAgents    int64           `json:"total_agents"`
	VerifiedAgents int             `json:"verified_agents"`
	ActiveAgents   int             `json:"active_agents"`
	LastListing    string          `json:"last_listing"`
	Categories     []CategoryStats `json:"categories"`
}

// Stats returns catalog statistics for the landing page.
func (h *Handler) Stats(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	totalAgents, err := h.db.CountAgents(ctx)
	if err != nil {
		h.Error(w, http.StatusInternalServerError, "failed to count agents")
		return
	}

	list, err := h.shop.ActiveAgents(ctx, nil)
	if err != nil {
		h.Error(w, http.StatusInternalServerError, "failed to list agents")
		return
	}

	byCategory := map[string]*CategoryStats{}
	active := 0
	var newest time.Time
	for _, a := range list.Items {
		cs, ok := byCategory[a.Category]
		if !ok {
			cs = &CategoryStats{Category: a.Category}
			byCategory[a.Category] = cs
		}
		cs.Agents++
		if a.IsActive {
			cs.Active++
			active++
		}
		if a.CreatedAt.After(newest) {
			newest = a.CreatedAt
		}
	}

	categories := make([]CategoryStats, 0, len(byCategory))
	for _, cs := range byCategory {
		categories = append(categories, *cs)
	}
	sort.Slice(categories, func(i, j int) bool {
		if categories[i].Agents != categories[j].Agents {
			return categories[i].Agents > categories[j].Agents
		}
		return categories[i].Category < categories[j].Category
	})

	lastListing := "no agents yet"
	if !newest.IsZero() {
		lastListing = formatTimeAgo(newest)
	}

	h.JSON(w, http.StatusOK, StatsResponse{
		TotalAgents:    totalAgents,
		VerifiedAgents: list.TotalItems,
		ActiveAgents:   active,
		LastListing:    lastListing,
		Categories:     categories,
	})
}

// formatTimeAgo formats a time as a human-readable "X ago" string.
func formatTimeAgo(t time.Time) string {
	diff := time.Since(t)

	switch {
	case diff < time.Minute:
		return "just now"
	case diff < time.Hour:
		return plural(int(diff.Minutes()), "minute") + " ago"
	case diff < 24*time.Hour:
		return plural(int(diff.Hours()), "hour") + " ago"
	default:
		return plural(int(diff.Hours()/24), "day") + " ago"
	}
}

func plural(n int, unit string) string {
	if n == 1 {
		return "1 " + unit
	}
	return strconv.Itoa(n) + " " + unit + "s"
}
