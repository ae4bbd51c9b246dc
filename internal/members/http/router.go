package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/aussiebroadwan/rendezvous/internal/members/service"
	"github.com/aussiebroadwan/rendezvous/internal/members/store"
	"github.com/aussiebroadwan/rendezvous/pkg/authz"
	"github.com/aussiebroadwan/rendezvous/pkg/httpx"
	"github.com/aussiebroadwan/rendezvous/pkg/slogx"

	_ "github.com/aussiebroadwan/rendezvous/api/members" // Swagger docs
)

// DefaultMaxUploadBytes caps photo uploads when MaxUploadBytes is unset.
const DefaultMaxUploadBytes = 10 << 20

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	authorizer   *authz.Authorizer
	buildVersion string
	startTime    time.Time
	logger       *slog.Logger
	store        store.Store

	AuthService       *service.AuthService
	CredentialService *service.CredentialService
	RoleService       *service.RoleService
	UserService       *service.UserService
	PhotoService      *service.PhotoService
	ModerationService *service.ModerationService
	BootstrapService  *service.BootstrapService

	// Media serves stored photo blobs under /media/ when set. Requests
	// reach it only after the photo passed the visibility check.
	Media          http.Handler
	MaxUploadBytes int64
}

func NewRouter(
	authorizer *authz.Authorizer,
	buildVersion string,
	st store.Store,
	logger *slog.Logger,
) *Router {
	r := &Router{
		Mux:            http.NewServeMux(),
		authorizer:     authorizer,
		buildVersion:   buildVersion,
		startTime:      time.Now(),
		logger:         logger,
		store:          st,
		MaxUploadBytes: DefaultMaxUploadBytes,
	}

	// Set default middleware chain
	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
	}

	return r
}

func (r *Router) ApplyRoutes() {
	r.registerAuth()
	r.registerAdmin()
	r.registerModeration()
	r.registerUsers()
	r.registerBootstrap()
	r.registerSystem()
	r.registerMedia()

	r.Mux.Handle("/swagger/", httpSwagger.Handler())
}

// ServeHTTP implements http.Handler for Router and applies the global middleware chain.
//
//	@title			Rendezvous Members API
//	@version		0.1.0
//	@description	Member registration, login, role administration and photo moderation.
//	@description
//	@description				Access tokens are HS512-signed JWTs valid for 24 hours. Role changes apply to tokens issued after the change.
//
//	@contact.name				AussieBroadWAN Team
//	@contact.url				https://github.com/aussiebroadwan/rendezvous
//
//	@license.name				MIT
//	@license.url				https://opensource.org/licenses/MIT
//
//	@host						localhost:8080
//	@BasePath					/
//
//	@schemes					http https
//
//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				JWT access token. Format: "Bearer {token}".
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

// gate wraps h with authentication followed by mws. Requests that pass
// every gate update the caller's last active time.
func (r *Router) gate(h http.Handler, mws ...httpx.Middleware) http.Handler {
	chain := append([]httpx.Middleware{httpx.AuthnMiddleware(r.authorizer)}, mws...)
	if r.UserService != nil {
		chain = append(chain, httpx.ActivityMiddleware(r.UserService))
	}
	return httpx.Chain(h, chain...)
}

func (r *Router) registerAuth() {
	register := &RegisterHandler{CredentialService: r.CredentialService}
	login := &LoginHandler{AuthService: r.AuthService}

	r.Mux.Handle("POST /auth/register", register)
	r.Mux.Handle("POST /auth/login", login)
}

func (r *Router) registerAdmin() {
	roles := &RolesHandler{RoleService: r.RoleService}
	users := &AdminUsersHandler{UserService: r.UserService}
	admin := httpx.RequirePolicy(authz.RequireAdminRole)

	r.Mux.Handle("POST /admin/roles/{username}", r.gate(http.HandlerFunc(roles.HandleEdit), admin))
	r.Mux.Handle("GET /admin/roles", r.gate(http.HandlerFunc(roles.HandleList), admin))
	r.Mux.Handle("POST /admin/roles", r.gate(http.HandlerFunc(roles.HandleCreate), admin))
	r.Mux.Handle("GET /admin/users", r.gate(users, admin))
}

func (r *Router) registerModeration() {
	h := &ModerationHandler{ModerationService: r.ModerationService}
	moderate := httpx.RequirePolicy(authz.ModeratePhotoRole)

	r.Mux.Handle("GET /admin/photos/pending", r.gate(http.HandlerFunc(h.HandlePending), moderate))
	r.Mux.Handle("POST /admin/photos/{userId}/{photoId}/approve", r.gate(http.HandlerFunc(h.HandleApprove), moderate))
	r.Mux.Handle("POST /admin/photos/{userId}/{photoId}/reject", r.gate(http.HandlerFunc(h.HandleReject), moderate))
	r.Mux.Handle("DELETE /admin/photos/{userId}/{photoId}", r.gate(http.HandlerFunc(h.HandleDelete), moderate))
}

func (r *Router) registerUsers() {
	users := &UsersHandler{UserService: r.UserService}
	photos := &PhotosHandler{PhotoService: r.PhotoService, MaxUploadBytes: r.MaxUploadBytes}
	self := httpx.RequireSelf("id")

	r.Mux.Handle("GET /users/{id}", r.gate(http.HandlerFunc(users.HandleGet), httpx.RequirePolicy(authz.Authenticated)))
	r.Mux.Handle("PUT /users/{id}", r.gate(http.HandlerFunc(users.HandleUpdate), self))
	r.Mux.Handle("POST /users/{id}/photos", r.gate(http.HandlerFunc(photos.HandleUpload), self))
	r.Mux.Handle("POST /users/{id}/photos/{photoId}/resubmit", r.gate(http.HandlerFunc(photos.HandleResubmit), self))
}

func (r *Router) registerBootstrap() {
	r.Mux.Handle("POST /bootstrap", &BootstrapHandler{BootstrapService: r.BootstrapService})
}

func (r *Router) registerMedia() {
	if r.Media == nil {
		return
	}
	h := &MediaHandler{PhotoService: r.PhotoService, Files: r.Media}
	r.Mux.Handle("GET /media/", http.StripPrefix("/media/", httpx.Chain(h, httpx.OptionalAuthnMiddleware(r.authorizer))))
}

func (r *Router) registerSystem() {
	r.Mux.Handle("GET /livez", LivezHandler(r.startTime, r.buildVersion))
	r.Mux.Handle("GET /readyz", ReadyzHandler(r.startTime, r.buildVersion, r.store))
	r.Mux.Handle("GET /metrics", promhttp.Handler())
}
