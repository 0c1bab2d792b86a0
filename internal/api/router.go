package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	graphql "github.com/graph-gophers/graphql-go"
	"github.com/graph-gophers/graphql-go/relay"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/dutchiono/headless-markets/internal/api/middleware"
	"github.com/dutchiono/headless-markets/internal/catalog"
	"github.com/dutchiono/headless-markets/internal/handlers"
	"github.com/dutchiono/headless-markets/internal/shopapi"
	"github.com/dutchiono/headless-markets/internal/store"
	"github.com/dutchiono/headless-markets/internal/web"
)

// Deps are the collaborators the router wires into handlers.
type Deps struct {
	Logger    zerolog.Logger
	Store     store.DataStore
	Redis     *store.RedisStore // optional
	RateLimit middleware.RateLimiterConfig
}

// NewRouter creates and configures the HTTP router.
func NewRouter(deps Deps) (*chi.Mux, error) {
	shop := catalog.NewShop(deps.Store, deps.Logger)

	schema, err := shopapi.NewSchema(shop)
	if err != nil {
		return nil, err
	}
	pages, err := web.NewPages(shop, deps.Logger)
	if err != nil {
		return nil, err
	}

	r := chi.NewRouter()

	// Metrics middleware (first to capture all requests)
	r.Use(middleware.Metrics)

	// Security middleware (order matters!)
	r.Use(middleware.SecurityHeaders)
	r.Use(middleware.MaxBodySize(16 * 1024)) // 16KB max body
	r.Use(middleware.ValidateRequest)

	// Standard middleware
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.Logger(deps.Logger))
	r.Use(chimw.Recoverer)

	// Rate limiting
	limiter := middleware.NewRateLimiter(deps.redisClient(), deps.Logger, deps.RateLimit)
	r.Use(limiter.Middleware)

	// CORS - the storefront may be served from any origin
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "Authorization"},
		ExposedHeaders:   []string{"X-RateLimit-Limit", "X-RateLimit-Remaining", "X-RateLimit-Reset", "Retry-After"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	h := handlers.NewHandler(shop, deps.Store, deps.Redis, deps.Logger)

	// Metrics endpoint (for Prometheus scraping)
	r.Handle("/metrics", promhttp.Handler())

	// Pages
	r.Get("/", pages.Home)
	r.Get("/markets", pages.Markets)
	r.Get("/agents", pages.Agents)
	r.Get("/launch", pages.Launch)

	// Shop GraphQL API
	r.Handle("/shop-api", shopHandler(schema))

	// REST mirror of the shop API
	r.Get("/api", h.Root)
	r.Get("/api/agents", h.ListAgents)
	r.Get("/api/agents/{id}", h.GetAgent)
	r.Get("/api/categories/{category}/agents", h.AgentsByCategory)

	// Operations
	r.Get("/health", h.Health)
	r.Get("/stats", h.Stats)

	return r, nil
}

func (d Deps) redisClient() *redis.Client {
	if d.Redis == nil {
		return nil
	}
	return d.Redis.Client()
}

// shopHandler accepts GraphQL over POST bodies only.
func shopHandler(schema *graphql.Schema) http.Handler {
	relayHandler := &relay.Handler{Schema: schema}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			w.Header().Set("Allow", http.MethodPost)
			http.Error(w, `{"error":"method not allowed"}`, http.StatusMethodNotAllowed)
			return
		}
		relayHandler.ServeHTTP(w, r)
	})
}
