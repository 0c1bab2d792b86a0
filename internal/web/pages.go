// Package web renders the server-side pages of the marketplace site.
package web

import (
	"bytes"
	"embed"
	"html/template"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/dutchiono/headless-markets/internal/catalog"
	"github.com/dutchiono/headless-markets/internal/models"
	"github.com/dutchiono/headless-markets/internal/web/nav"
)

//go:embed templates/*.html
var templateFS embed.FS

// agentsPageSize bounds the listing on the agents page.
const agentsPageSize = 50

// Stat is a headline figure on the home page. Values are "-" until markets exist.
type Stat struct {
	Label string
	Value string
}

var homeStats = []Stat{
	{Label: "Active Markets", Value: "-"},
	{Label: "Total Volume", Value: "-"},
	{Label: "Active Agents", Value: "-"},
}

type pageData struct {
	Title   string
	Message string
	Nav     []nav.Link
	Stats   []Stat
	Agents  []models.Agent
}

// Pages serves the HTML pages.
type Pages struct {
	shop   *catalog.Shop
	logger zerolog.Logger
	tmpl   map[string]*template.Template
}

// NewPages parses the embedded templates.
func NewPages(shop *catalog.Shop, logger zerolog.Logger) (*Pages, error) {
	p := &Pages{shop: shop, logger: logger, tmpl: map[string]*template.Template{}}
	for _, name := range []string{"home", "agents", "placeholder"} {
		t, err := template.ParseFS(templateFS, "templates/layout.html", "templates/"+name+".html")
		if err != nil {
			return nil, err
		}
		p.tmpl[name] = t
	}
	return p, nil
}

// Home renders the landing page.
func (p *Pages) Home(w http.ResponseWriter, r *http.Request) {
	p.render(w, r, "home", pageData{Title: "Home", Stats: homeStats})
}

// Markets renders the markets page.
func (p *Pages) Markets(w http.ResponseWriter, r *http.Request) {
	p.render(w, r, "placeholder", pageData{Title: "Markets", Message: "Markets are coming soon."})
}

// Launch renders the launch page.
func (p *Pages) Launch(w http.ResponseWriter, r *http.Request) {
	p.render(w, r, "placeholder", pageData{Title: "Launch", Message: "Launching an agent is coming soon."})
}

// Agents lists shop-visible agents, optionally filtered by ?category=.
func (p *Pages) Agents(w http.ResponseWriter, r *http.Request) {
	list, err := p.shop.ActiveAgents(r.Context(), &catalog.ListOptions{
		Category: r.URL.Query().Get("category"),
		Take:     agentsPageSize,
	})
	if err != nil {
		p.logger.Error().Err(err).Msg("failed to list agents for page")
		http.Error(w, "failed to load agents", http.StatusInternalServerError)
		return
	}
	p.render(w, r, "agents", pageData{Title: "Agents", Agents: list.Items})
}

func (p *Pages) render(w http.ResponseWriter, r *http.Request, name string, data pageData) {
	data.Nav = nav.Links(r.URL.Path)

	// Render into a buffer so a template error doesn't leave a half-written page.
	var buf bytes.Buffer
	if err := p.tmpl[name].ExecuteTemplate(&buf, "layout", data); err != nil {
		p.logger.Error().Err(err).Str("template", name).Msg("template render failed")
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	buf.WriteTo(w)
}
