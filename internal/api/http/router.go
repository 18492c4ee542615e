package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/albedo-hq/support-portal/internal/api/http/handlers"
	"github.com/albedo-hq/support-portal/internal/auth"
	"github.com/albedo-hq/support-portal/internal/domain"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Tickets        *handlers.TicketsHandler
	Auth           *handlers.AuthHandler
	Categories     *handlers.CategoriesHandler
	Articles       *handlers.ArticlesHandler
	Search         *handlers.SearchHandler
	AuthMiddleware *auth.Middleware
}

// RegisterRoutes wires HTTP routes. Everything under /api/admin
// requires authentication plus a ticket-management role; deletes are
// SUPER_ADMIN only.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	api := app.Group("/api")

	// Public surface: knowledge base and search.
	api.Get("/categories", cfg.Categories.ListCategories)
	api.Get("/categories/:id", cfg.Categories.GetCategory)
	api.Get("/articles", cfg.Articles.ListArticles)
	api.Get("/articles/:slug", cfg.Articles.GetArticleBySlug)
	api.Post("/search/articles", cfg.Search.SearchArticles)

	authGroup := api.Group("/auth")
	authGroup.Post("/login", cfg.Auth.Login)

	authenticated := authGroup.Group("", cfg.AuthMiddleware.Handle)
	authenticated.Get("/me", cfg.Auth.Me)
	authenticated.Put("/change-password", cfg.Auth.ChangePassword)
	authenticated.Post("/register", auth.RequireRole(domain.RoleSuperAdmin), cfg.Auth.Register)

	manage := auth.RequireRole(domain.RoleSuperAdmin, domain.RoleSupportAgent)

	// Submission and token lookup are public; everything else on the
	// ticket resource is staff-gated.
	tickets := api.Group("/tickets")
	tickets.Post("/submit", cfg.Tickets.CreateTicket)
	tickets.Get("/token/:token", cfg.Tickets.TrackTicket)

	staff := tickets.Group("", cfg.AuthMiddleware.Handle, manage)
	staff.Get("/", cfg.Tickets.ListTickets)
	staff.Get("/:id", cfg.Tickets.GetTicket)
	staff.Put("/:id", cfg.Tickets.UpdateTicket)
	staff.Post("/:id/replies", cfg.Tickets.AddReply)
	staff.Post("/:id/notes", cfg.Tickets.AddNote)
	staff.Delete("/:id", auth.RequireRole(domain.RoleSuperAdmin), cfg.Tickets.DeleteTicket)

	admin := api.Group("/admin", cfg.AuthMiddleware.Handle, manage)
	admin.Get("/users", auth.RequireRole(domain.RoleSuperAdmin), cfg.Auth.ListUsers)

	admin.Post("/categories", cfg.Categories.CreateCategory)
	admin.Put("/categories/:id", cfg.Categories.UpdateCategory)
	admin.Delete("/categories/:id", auth.RequireRole(domain.RoleSuperAdmin), cfg.Categories.DeleteCategory)

	admin.Get("/articles/:id", cfg.Articles.GetArticle)
	admin.Post("/articles", cfg.Articles.CreateArticle)
	admin.Put("/articles/:id", cfg.Articles.UpdateArticle)
	admin.Delete("/articles/:id", auth.RequireRole(domain.RoleSuperAdmin), cfg.Articles.DeleteArticle)
}
