package api

import (
	"github.com/rpupo63/blog-platform-backend/database"
)

// initializeHandlers creates and returns all handlers organized in a routeHandlers struct
func initializeHandlers(database database.Database) *routeHandlers {
	return &routeHandlers{
		healthHandler:   newHealthHandler(),
		blogPostHandler: newBlogPostHandler(database.BlogPostRepo()),
		commentHandler:  newCommentHandler(database.BlogPostRepo(), database.CommentRepo()),
		adminHandler:    newAdminHandler(database),
	}
}
