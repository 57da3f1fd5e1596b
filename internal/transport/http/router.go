package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"golang.org/x/time/rate"

	"github.com/hs-portal-api/internal/application/authn"
	"github.com/hs-portal-api/internal/application/directory"
	"github.com/hs-portal-api/internal/application/notification"
	"github.com/hs-portal-api/internal/application/report"
	"github.com/hs-portal-api/internal/application/review"
	"github.com/hs-portal-api/internal/application/session"
	"github.com/hs-portal-api/internal/config"
	"github.com/hs-portal-api/internal/domain"
	"github.com/hs-portal-api/internal/infrastructure/dynamo"
	jwtinfra "github.com/hs-portal-api/internal/infrastructure/jwt"
	s3infra "github.com/hs-portal-api/internal/infrastructure/s3"
	"github.com/hs-portal-api/internal/infrastructure/smtp"
	"github.com/hs-portal-api/internal/infrastructure/sns"
	"github.com/hs-portal-api/internal/infrastructure/upstream"
	"github.com/hs-portal-api/internal/transport/http/handler"
	appmiddleware "github.com/hs-portal-api/internal/transport/http/middleware"
)

// Deps holds all infrastructure dependencies for the router.
type Deps struct {
	SessionRepo      *dynamo.SessionRepo
	NotificationRepo *dynamo.NotificationRepo
	SeenCommentRepo  *dynamo.SeenCommentRepo
	EvidenceRepo     *dynamo.EvidenceRepo
	S3Store          *s3infra.Store
	Upstream         *upstream.Client
	Mailer           smtp.Mailer
	Pusher           sns.Pusher
	JWTProvider      *jwtinfra.Provider
}

// NewRouter builds and returns the application router.
func NewRouter(cfg *config.Config, deps *Deps) http.Handler {
	r := chi.NewRouter()
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.RequestID)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	// 5 requests/second, burst of 10 — applied to the login endpoint.
	sensitiveRL := appmiddleware.NewRateLimiter(rate.Limit(5), 10)

	authnSvc := authn.NewService(deps.SessionRepo, deps.Upstream)
	sessionSvc := session.NewService(deps.SessionRepo, deps.Upstream, deps.JWTProvider)
	notifSvc := notification.NewService(deps.NotificationRepo, deps.SeenCommentRepo, deps.Pusher, deps.Mailer)
	reportSvc := report.NewService(deps.Upstream, deps.EvidenceRepo, deps.S3Store, notifSvc)
	reviewSvc := review.NewService(deps.Upstream)
	directorySvc := directory.NewService(deps.Upstream, deps.SessionRepo, deps.NotificationRepo)

	healthH := handler.NewHealthHandler()
	sessionH := handler.NewSessionHandler(sessionSvc, authnSvc)
	notifH := handler.NewNotificationHandler(notifSvc)
	reportH := handler.NewReportHandler(reportSvc, notifSvc)
	reviewH := handler.NewReviewHandler(reviewSvc)
	dirH := handler.NewDirectoryHandler(directorySvc)

	authMw := appmiddleware.Auth(deps.JWTProvider)
	anyRole := appmiddleware.Guard(authnSvc, "")
	studentOnly := appmiddleware.Guard(authnSvc, domain.RoleStudent)
	adminOnly := appmiddleware.Guard(authnSvc, domain.RoleAdmin)

	r.Route("/v1", func(r chi.Router) {
		// ── Public routes (no auth) ──────────────────────────────────────────
		r.Get("/health-check/{action}", healthH.Ping)
		r.With(sensitiveRL.Limit).Post("/sessions/login", sessionH.Login)

		// ── Authenticated routes ─────────────────────────────────────────────
		r.Group(func(r chi.Router) {
			r.Use(authMw)

			// GetCurrent runs its own verification (it needs the cached
			// variant), so it sits outside the guard.
			r.Get("/sessions", sessionH.GetCurrent)

			// Any authenticated user with a live session
			r.Group(func(r chi.Router) {
				r.Use(anyRole)

				r.Post("/sessions/logout", sessionH.Logout)
				r.Put("/sessions/password", sessionH.ChangePassword)

				r.Get("/notifications", notifH.List)
				r.Get("/notifications/unread", notifH.Unread)
				r.Put("/notifications/read-all", notifH.MarkAllRead)
				r.Put("/notifications/{id}", notifH.MarkRead)
				r.Delete("/notifications/{id}", notifH.Remove)
				r.Delete("/notifications", notifH.ClearAll)

				r.Get("/services", reportH.List)
				r.Get("/services/{id}", reportH.Get)

				r.Get("/categories", dirH.ListCategories)
				r.Get("/roles", dirH.ListRoles)
				r.Get("/schools", dirH.ListSchools)
				r.Get("/schools/{id}", dirH.GetSchool)
			})

			// Student-only routes
			r.Group(func(r chi.Router) {
				r.Use(studentOnly)

				r.Post("/services", reportH.Create)
				r.Delete("/services/{id}", reportH.Delete)
			})

			// Admin-only routes
			r.Group(func(r chi.Router) {
				r.Use(adminOnly)

				r.Patch("/review/{id}", reviewH.Submit)

				r.Get("/services/{id}/evidence", reportH.EvidenceArchive)
				r.Get("/evidence/{evidenceID}/download", reportH.EvidenceDownload)

				r.Get("/users", dirH.ListUsers)
				r.Post("/users", dirH.CreateUser)
				r.Put("/users/{id}", dirH.UpdateUser)
				r.Delete("/users/{id}", dirH.DeleteUser)

				r.Post("/categories", dirH.CreateCategory)
				r.Put("/categories/{id}", dirH.UpdateCategory)
				r.Delete("/categories/{id}", dirH.DeleteCategory)
			})
		})
	})

	return r
}
