package api

import (
	"github.com/go-chi/chi/v5"
)

// setupRoutes wires the public read surface and the authenticated
// moderation surface
func setupRoutes(r chi.Router, handlers *routeHandlers, authMiddleware authMiddleware) {
	// Public routes. identify attaches a requester identity when a valid
	// token is present but never rejects.
	r.Group(func(r chi.Router) {
		r.Use(ColoredHTTPLoggingMiddleware)
		r.Use(authMiddleware.identify)

		r.Get("/health/", handlers.healthHandler.healthCheck())

		r.Get("/posts/", handlers.blogPostHandler.listBlogPosts())
		r.Get("/posts/{postID}/", handlers.blogPostHandler.getBlogPost())

		r.Post("/posts/{postID}/comments/", handlers.commentHandler.createComment())
		r.Get("/posts/{postID}/comments/list/", handlers.commentHandler.listComments())
	})

	// Moderation routes
	r.Route("/admin", func(r chi.Router) {
		r.Use(ColoredHTTPLoggingMiddleware)
		r.Use(authMiddleware.authenticate)

		r.Get("/authors", handlers.adminHandler.listAuthors())
		r.Post("/authors", handlers.adminHandler.createAuthor())
		r.Put("/authors/{authorID}", handlers.adminHandler.updateAuthor())
		r.Delete("/authors/{authorID}", handlers.adminHandler.deleteAuthor())

		r.Get("/tags", handlers.adminHandler.listTags())

		r.Post("/posts", handlers.adminHandler.createBlogPost())
		r.Put("/posts/{postID}", handlers.adminHandler.updateBlogPost())
		r.Delete("/posts/{postID}", handlers.adminHandler.deleteBlogPost())
		r.Post("/posts/publish", handlers.adminHandler.publishPosts())
		r.Post("/posts/draft", handlers.adminHandler.draftPosts())
		r.Post("/posts/feature", handlers.adminHandler.featurePosts())
		r.Post("/posts/unfeature", handlers.adminHandler.unfeaturePosts())

		r.Get("/comments", handlers.adminHandler.listAllComments())
		r.Post("/comments/approve", handlers.adminHandler.approveComments())
		r.Post("/comments/disapprove", handlers.adminHandler.disapproveComments())
	})
}
