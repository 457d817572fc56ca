package api

import (
	"io"
	"net/http"

	"github.com/alexanderramin/rectplan/internal/service"
	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
)

// Server exposes profiles and the planner over HTTP.
type Server struct {
	profiles service.ProfileService
	plans    service.PlanService
}

func NewServer(profiles service.ProfileService, plans service.PlanService) *Server {
	return &Server{profiles: profiles, plans: plans}
}

// NewRouter registers every route. Literal paths under /rest/profiles are
// registered before the {id} routes so they are not captured as IDs.
func (s *Server) NewRouter() *mux.Router {
	r := mux.NewRouter()

	r.HandleFunc("/health", healthHandler).Methods(http.MethodGet)

	rest := r.PathPrefix("/rest").Subrouter()
	rest.HandleFunc("/calculate", s.calculate).Methods(http.MethodPost)

	rest.HandleFunc("/profiles", s.listProfiles).Methods(http.MethodGet)
	rest.HandleFunc("/profiles", s.createProfile).Methods(http.MethodPost)
	rest.HandleFunc("/profiles/active", s.activeProfile).Methods(http.MethodGet)
	rest.HandleFunc("/profiles/set-active", s.setActive).Methods(http.MethodPost)
	rest.HandleFunc("/profiles/import", s.importProfile).Methods(http.MethodPost)

	rest.HandleFunc("/profiles/{id}", s.getProfile).Methods(http.MethodGet)
	rest.HandleFunc("/profiles/{id}", s.deleteProfile).Methods(http.MethodDelete)
	rest.HandleFunc("/profiles/{id}/content", s.updateContent).Methods(http.MethodPut)
	rest.HandleFunc("/profiles/{id}/meta", s.updateMeta).Methods(http.MethodPost)
	rest.HandleFunc("/profiles/{id}/copy", s.copyProfile).Methods(http.MethodPost)
	rest.HandleFunc("/profiles/{id}/export", s.exportProfile).Methods(http.MethodGet)
	rest.HandleFunc("/profiles/{id}/plan", s.planProfile).Methods(http.MethodGet)
	rest.HandleFunc("/profiles/{id}/apply", s.applyProfile).Methods(http.MethodPost)
	rest.HandleFunc("/profiles/{id}/history", s.history).Methods(http.MethodGet)

	return r
}

// Handler wraps the router with request logging to logOut and panic
// recovery.
func (s *Server) Handler(logOut io.Writer) http.Handler {
	var h http.Handler = s.NewRouter()
	h = handlers.RecoveryHandler(handlers.PrintRecoveryStack(false))(h)
	if logOut != nil {
		h = handlers.LoggingHandler(logOut, h)
	}
	return h
}
