package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/lotusloft/studio/internal/studio/service"
	"github.com/lotusloft/studio/internal/studio/store"
	"github.com/lotusloft/studio/pkg/httpx"
	"github.com/lotusloft/studio/pkg/jwtx"
	"github.com/lotusloft/studio/pkg/slogx"

	_ "github.com/lotusloft/studio/api/docs" // Swagger docs
	httpSwagger "github.com/swaggo/http-swagger"
)

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	codec        *jwtx.Codec
	buildVersion string
	startTime    time.Time
	logger       *slog.Logger

	store          store.Store
	AuthService    *service.AuthService
	UserService    *service.UserService
	TeacherService *service.TeacherService
	SessionService *service.SessionService
}

func NewRouter(codec *jwtx.Codec, buildVersion string, st store.Store, logger *slog.Logger) *Router {
	return &Router{
		Mux:          http.NewServeMux(),
		codec:        codec,
		buildVersion: buildVersion,
		startTime:    time.Now(),
		store:        st,
		logger:       logger,
	}
}

// ApplyRoutes registers all routes and builds the global middleware chain.
// The authentication filter sits in the chain so it runs exactly once per
// request; the RequireAuth gate is added per-route for protected surfaces.
func (r *Router) ApplyRoutes() {
	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
		httpx.AuthnMiddleware(r.codec, r.AuthService),
	}

	r.registerAuth()
	r.registerSessions()
	r.registerTeachers()
	r.registerUsers()
	r.registerSystem()

	r.Mux.Handle("/swagger/", httpSwagger.Handler())
}

// ServeHTTP implements http.Handler for Router and applies the global
// middleware chain.
//
//	@title			Yoga Studio API
//	@version		0.1.0
//	@description	CRUD REST API for a yoga-class booking app, secured with JWT bearer tokens.
//
//	@license.name	MIT
//	@license.url	https://opensource.org/licenses/MIT
//
//	@host			localhost:8080
//	@BasePath		/
//
//	@schemes		http https
//
//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				JWT access token. Format: "Bearer {token}".
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

func (r *Router) registerAuth() {
	h := &AuthHandler{AuthService: r.AuthService}

	r.Mux.Handle("POST /api/auth/login", http.HandlerFunc(h.HandleLogin))
	r.Mux.Handle("POST /api/auth/register", http.HandlerFunc(h.HandleRegister))
}

func (r *Router) registerSessions() {
	h := &SessionHandler{SessionService: r.SessionService}

	r.Mux.Handle("GET /api/session", secured(h.HandleList))
	r.Mux.Handle("GET /api/session/{id}", secured(h.HandleGet))
	r.Mux.Handle("POST /api/session", secured(h.HandleCreate))
	r.Mux.Handle("PUT /api/session/{id}", secured(h.HandleUpdate))
	r.Mux.Handle("DELETE /api/session/{id}", secured(h.HandleDelete))
	r.Mux.Handle("POST /api/session/{id}/participate/{userId}", secured(h.HandleParticipate))
	r.Mux.Handle("DELETE /api/session/{id}/participate/{userId}", secured(h.HandleNoLongerParticipate))
}

func (r *Router) registerTeachers() {
	h := &TeacherHandler{TeacherService: r.TeacherService}

	r.Mux.Handle("GET /api/teacher", secured(h.HandleList))
	r.Mux.Handle("GET /api/teacher/{id}", secured(h.HandleGet))
}

func (r *Router) registerUsers() {
	h := &UserHandler{UserService: r.UserService}

	r.Mux.Handle("GET /api/user/{id}", secured(h.HandleGet))
	r.Mux.Handle("DELETE /api/user/{id}", secured(h.HandleDelete))
}

func (r *Router) registerSystem() {
	r.Mux.Handle("GET /livez", LivezHandler(r.startTime, r.buildVersion))
	r.Mux.Handle("GET /readyz", ReadyzHandler(r.store, r.startTime, r.buildVersion))
}

func secured(h http.HandlerFunc) http.Handler {
	return httpx.Chain(h, httpx.RequireAuth)
}
