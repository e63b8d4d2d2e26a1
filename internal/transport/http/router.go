package http

import (
	"net/http"
	"time"

	"clubhub/internal/observability/middleware"
	"clubhub/internal/service"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type RouterConfig struct {
	CORSOrigins    []string
	AuthRateLimit  int // per IP per minute on register/login; 0 disables
	MaxUploadBytes int64
	PublicBaseURL  string
	// Uploads serves locally stored posters under /uploads/. Nil when
	// posters live in object storage.
	Uploads http.Handler
}

func NewRouter(auth service.AuthService, events service.EventService, cfg RouterConfig) http.Handler {
	if cfg.MaxUploadBytes <= 0 {
		cfg.MaxUploadBytes = 10 << 20
	}
	h := &handlers{auth: auth, events: events, cfg: cfg}

	r := chi.NewRouter()

	r.Use(chimw.RealIP)
	r.Use(middleware.WithRequestAndTrace)
	r.Use(chimw.Recoverer)
	r.Use(middleware.WithMetrics)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: cfg.CORSOrigins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Authorization", "Content-Type", middleware.HeaderRequestID, middleware.HeaderTraceID},
		ExposedHeaders: []string{middleware.HeaderRequestID},
		MaxAge:         300,
	}))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Handle("/metrics", promhttp.Handler())

	if cfg.Uploads != nil {
		r.Handle("/uploads/*", cfg.Uploads)
	}

	r.Route("/api", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			if cfg.AuthRateLimit > 0 {
				r.Use(httprate.LimitByIP(cfg.AuthRateLimit, time.Minute))
			}
			r.Post("/club/register", h.registerClub)
			r.Post("/club/login", h.loginClub)
			r.Post("/student/register", h.registerStudent)
			r.Post("/student/login", h.loginStudent)
		})

		r.Get("/events", h.listEvents)
		r.Get("/users", h.listUsers)

		r.Group(func(r chi.Router) {
			r.Use(RequireBearer(auth))
			r.Post("/events", h.createEvent)
			r.Get("/profile", h.profile)
		})
	})

	return r
}
