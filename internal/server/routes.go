package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(s.requestID)
	r.Use(middleware.RealIP)
	r.Use(s.logRequests)
	r.Use(middleware.Recoverer)
	r.Use(s.instrument)

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		s.clientError(w, r, http.StatusNotFound)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		s.clientError(w, r, http.StatusMethodNotAllowed)
	})

	r.Get("/healthz", s.health)
	r.Handle("/metrics", promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{}))

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/info/{db}", s.info)
		r.Get("/list/{db}", s.list)
		r.Get("/list/{db}/{org}", s.list)
		r.Get("/organisms", s.organisms)
		r.Get("/find/{db}/{query}", s.find)
		r.Get("/get/{ids}", s.get)
		r.Get("/seq/{ids}", s.seq)
		r.Get("/conv/{target}/{source}", s.conv)
		r.Get("/link/{target}/{source}", s.link)
		r.Get("/compounds/{pathway}", s.compounds)
	})

	return r
}
