package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/zhouzirui/person-records/backend/internal/handler/person"
	"github.com/zhouzirui/person-records/backend/internal/handler/system"
	middlewarePkg "github.com/zhouzirui/person-records/backend/internal/middleware"
	personService "github.com/zhouzirui/person-records/backend/internal/service/person"
)

// Options carries the router's optional collaborators.
type Options struct {
	CORSOrigins []string
	// Metrics is mounted at /metrics when non-nil.
	Metrics http.Handler
}

// NewRouter wires HTTP routes to core services.
func NewRouter(personSvc *personService.Service, hub *personService.Hub, info system.Info, opts Options) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middlewarePkg.CORS(opts.CORSOrigins))

	system.New(info).RegisterRoutes(r)
	if opts.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", opts.Metrics)
	}

	personHandler := person.New(personSvc, hub, info.InstanceID)
	r.Route("/api", func(api chi.Router) {
		personHandler.RegisterRoutes(api)
	})

	return r
}
