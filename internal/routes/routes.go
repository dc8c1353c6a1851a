package routes

import (
	"review-backend/internal/handlers"
	"review-backend/internal/middleware"
	"review-backend/internal/permissions"

	"github.com/gofiber/fiber/v2"
)

type Handlers struct {
	Auth    *handlers.AuthHandler
	Users   *handlers.UserHandler
	Catalog *handlers.CatalogHandler
	Titles  *handlers.TitleHandler
	Reviews *handlers.ReviewHandler
	Comment *handlers.CommentHandler
	Upload  *handlers.UploadHandler
}

// Setup wires every resource under /v1. authenticate resolves the
// bearer token for the whole tree; per-route gates express each
// endpoint's permission predicate explicitly.
func Setup(app *fiber.App, authenticate fiber.Handler, h Handlers) {
	v1 := app.Group("/v1", authenticate)

	adminOnly := middleware.RequirePermission(permissions.CanManageUsers)
	catalogAdmin := middleware.RequirePermission(permissions.CanManageCatalog)

	auth := v1.Group("/auth")
	{
		auth.Post("/signup", h.Auth.SignUp)
		auth.Post("/token", h.Auth.Token)
	}

	users := v1.Group("/users")
	{
		// /me before /:username so the literal segment wins.
		users.Get("/me", middleware.RequireAuth(), h.Users.Me)
		users.Patch("/me", middleware.RequireAuth(), h.Users.UpdateMe)

		users.Get("/", adminOnly, h.Users.List)
		users.Post("/", adminOnly, h.Users.Create)
		users.Get("/:username", adminOnly, h.Users.Get)
		users.Patch("/:username", adminOnly, h.Users.Update)
		users.Delete("/:username", adminOnly, h.Users.Delete)
	}

	categories := v1.Group("/categories")
	{
		categories.Get("/", h.Catalog.ListCategories)
		categories.Post("/", catalogAdmin, h.Catalog.CreateCategory)
		categories.Delete("/:slug", catalogAdmin, h.Catalog.DeleteCategory)
	}

	genres := v1.Group("/genres")
	{
		genres.Get("/", h.Catalog.ListGenres)
		genres.Post("/", catalogAdmin, h.Catalog.CreateGenre)
		genres.Delete("/:slug", catalogAdmin, h.Catalog.DeleteGenre)
	}

	titles := v1.Group("/titles")
	{
		titles.Get("/upload/presign", catalogAdmin, h.Upload.PresignCover)

		titles.Get("/", h.Titles.List)
		titles.Post("/", catalogAdmin, h.Titles.Create)
		titles.Get("/:id", h.Titles.Get)
		titles.Patch("/:id", catalogAdmin, h.Titles.Update)
		titles.Delete("/:id", catalogAdmin, h.Titles.Delete)
	}

	reviews := v1.Group("/titles/:titleID/reviews")
	{
		reviews.Get("/", h.Reviews.List)
		reviews.Post("/", middleware.RequireAuth(), h.Reviews.Create)
		reviews.Get("/:id", h.Reviews.Get)
		reviews.Patch("/:id", middleware.RequireAuth(), h.Reviews.Update)
		reviews.Delete("/:id", middleware.RequireAuth(), h.Reviews.Delete)
	}

	comments := v1.Group("/titles/:titleID/reviews/:reviewID/comments")
	{
		comments.Get("/", h.Comment.List)
		comments.Post("/", middleware.RequireAuth(), h.Comment.Create)
		comments.Get("/:id", h.Comment.Get)
		comments.Patch("/:id", middleware.RequireAuth(), h.Comment.Update)
		comments.Delete("/:id", middleware.RequireAuth(), h.Comment.Delete)
	}
}
