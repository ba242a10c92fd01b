package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/clearlens/camwatch/internal/objstore"
	"github.com/clearlens/camwatch/internal/service"
	"github.com/clearlens/camwatch/internal/store"
	"github.com/clearlens/camwatch/pkg/httpx"
	"github.com/clearlens/camwatch/pkg/slogx"

	_ "github.com/clearlens/camwatch/api" // Swagger docs
	httpSwagger "github.com/swaggo/http-swagger"
)

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	buildVersion string
	startTime    time.Time
	logger       *slog.Logger

	store store.Store

	AuthService   *service.AuthService
	UserService   *service.UserService
	CameraService *service.CameraService
	ObjectStore   objstore.Store
}

func NewRouter(buildVersion string, st store.Store, logger *slog.Logger) *Router {
	r := &Router{
		Mux:          http.NewServeMux(),
		buildVersion: buildVersion,
		startTime:    time.Now(),
		store:        st,
		logger:       logger,
	}

	// Set default middleware chain
	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
	}

	return r
}

func (r *Router) ApplyRoutes() {
	r.registerAuth()
	r.registerUsers()
	r.registerCameras()
	r.registerStorage()
	r.registerSystem()

	r.Mux.Handle("/swagger/", httpSwagger.Handler())
}

// ServeHTTP implements http.Handler for Router and applies the global middleware chain.
//
//	@title			CamWatch Authentication API
//	@version		0.1.0
//	@description	Token-based authentication service for the camera monitoring backend.
//	@description
//	@description				Access and refresh tokens are HS256 JWTs carrying a per-user salt;
//	@description				rotating the salt revokes every outstanding token at once.
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

func (r *Router) registerAuth() {
	h := &AuthHandler{AuthService: r.AuthService}

	// POST /login - strict rate limit by IP (brute force prevention)
	r.Mux.Handle("POST /login",
		httpx.Chain(http.HandlerFunc(h.HandleLogin),
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)

	// POST /refreshToken - moderate rate limit by IP
	r.Mux.Handle("POST /refreshToken",
		httpx.Chain(http.HandlerFunc(h.HandleRefresh),
			httpx.RateLimitByIP(httpx.ModerateLimit),
		),
	)

	// POST /validateAccessToken - lenient, other services call this per request
	r.Mux.Handle("POST /validateAccessToken",
		httpx.Chain(http.HandlerFunc(h.HandleValidate),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)

	// POST /logout - authenticated
	r.Mux.Handle("POST /logout",
		httpx.Chain(http.HandlerFunc(h.HandleLogout),
			httpx.AuthnMiddleware(r.AuthService),
			httpx.RateLimitByUser(httpx.ModerateLimit),
		),
	)
}

func (r *Router) registerUsers() {
	h := &UsersHandler{UserService: r.UserService}

	// Registration endpoints are public; strict limits keep enumeration slow.
	r.Mux.Handle("POST /user/register/begin",
		httpx.Chain(http.HandlerFunc(h.HandleBeginRegistration),
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)
	r.Mux.Handle("POST /user/register/check",
		httpx.Chain(http.HandlerFunc(h.HandleCheckRegistrationCode),
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)
	r.Mux.Handle("POST /user/register/complete",
		httpx.Chain(http.HandlerFunc(h.HandleCompleteRegistration),
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)

	r.Mux.Handle("GET /user/profile",
		httpx.Chain(http.HandlerFunc(h.HandleGetProfile),
			httpx.AuthnMiddleware(r.AuthService),
			httpx.RateLimitByUser(httpx.LenientLimit),
		),
	)
}

func (r *Router) registerCameras() {
	h := &CamerasHandler{CameraService: r.CameraService}

	secured := func(next http.HandlerFunc) http.Handler {
		return httpx.Chain(next,
			httpx.AuthnMiddleware(r.AuthService),
			httpx.RateLimitByUser(httpx.LenientLimit),
		)
	}

	r.Mux.Handle("GET /cameras", secured(h.HandleFirstPage))
	r.Mux.Handle("GET /cameras/pages/{page}", secured(h.HandlePage))
	r.Mux.Handle("GET /cameras/{camera_id}", secured(h.HandleGet))
}

func (r *Router) registerStorage() {
	h := &StorageHandler{ObjectStore: r.ObjectStore}

	secured := func(next http.HandlerFunc) http.Handler {
		return httpx.Chain(next,
			httpx.AuthnMiddleware(r.AuthService),
			httpx.RateLimitByUser(httpx.ModerateLimit),
		)
	}

	r.Mux.Handle("POST /s3/{bucket}/{key...}", secured(h.HandleUpload))
	r.Mux.Handle("GET /s3/{bucket}/{key...}", secured(h.HandleDownload))
}

func (r *Router) registerSystem() {
	r.Mux.Handle("GET /livez", LivezHandler(r.startTime, r.buildVersion))
	r.Mux.Handle("GET /readyz", ReadyzHandler(r.startTime, r.buildVersion, r.store, r.AuthService.Cache))
	r.Mux.Handle("GET /healthcheck", LivezHandler(r.startTime, r.buildVersion))
}
