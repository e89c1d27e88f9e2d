package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"membership-api/internal/config"
	"membership-api/internal/handler"
	"membership-api/internal/middleware"
	"membership-api/internal/model"
	"membership-api/internal/observability"
)

const authPrefix = "/api/v1/user"

type Handlers struct {
	Auth           *handler.AuthHandler
	Members        *handler.MemberHandler
	MedicalSociety *handler.MedicalSocietyHandler
	Spaces         *handler.SpaceHandler
	Health         *handler.HealthHandler
}

func New(
	cfg *config.Config,
	authMiddleware *middleware.AuthMiddleware,
	metrics *observability.Metrics,
	h Handlers,
) http.Handler {
	r := chi.NewRouter()
	rateLimitMiddleware := middleware.NewRateLimitMiddleware(cfg.RateLimitRPM, cfg.AuthRateLimitRPM, authPrefix)

	r.Use(middleware.Recovery)
	r.Use(middleware.Logging)
	r.Use(middleware.Metrics(metrics))
	r.Use(middleware.CORS(cfg.CORSOrigins))
	r.Use(middleware.SecurityHeaders)
	r.Use(rateLimitMiddleware.Handler)

	r.Get("/health", h.Health.Check)
	r.Method(http.MethodGet, "/metrics", metrics.Handler())

	authenticated := authMiddleware.Gate(middleware.GateOptions{Source: middleware.TokenSourceAny})
	currentUser := authMiddleware.Gate(middleware.GateOptions{Source: middleware.TokenSourceAny, ReloadUser: true})
	adminClaim := authMiddleware.Gate(middleware.GateOptions{Source: middleware.TokenSourceAny, RequiredRole: model.RoleAdmin})
	admin := authMiddleware.Gate(middleware.GateOptions{Source: middleware.TokenSourceAny, RequiredRole: model.RoleAdmin, ReloadUser: true})

	r.Route("/api/v1", func(api chi.Router) {
		api.Use(middleware.Timeout(cfg.RequestTimeout))

		api.Route("/user", func(user chi.Router) {
			user.Post("/register", h.Auth.Register)
			user.Post("/login", h.Auth.Login)
			user.Post("/logout", h.Auth.Logout)
			user.With(currentUser).Get("/me", h.Auth.Me)
		})

		api.With(adminClaim).Get("/medical_societies", h.MedicalSociety.List)
		api.With(admin).Post("/medical_societies", h.MedicalSociety.Create)

		api.Route("/space", func(space chi.Router) {
			space.With(authenticated).Get("/find", h.Spaces.FindByName)
			space.With(admin).Post("/create", h.Spaces.Create)
		})

		api.Route("/members", func(members chi.Router) {
			members.With(authenticated).Get("/", h.Members.List)
			members.With(authenticated).Get("/find", h.Members.Search)
			members.With(authenticated).Get("/find_by_name", h.Members.Search)
			members.With(admin).Post("/create", h.Members.Create)
			members.With(authenticated).Get("/{id}", h.Members.Get)
			members.With(admin).Patch("/{id}", h.Members.Update)
			members.With(admin).Delete("/{id}", h.Members.Delete)
		})
	})

	return r
}
