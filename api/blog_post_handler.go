package api

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/rpupo63/blog-platform-backend/database"
	"github.com/rpupo63/blog-platform-backend/errs"
	"github.com/rpupo63/blog-platform-backend/models"
	"github.com/rpupo63/blog-platform-backend/serializer"
)

type blogPostHandler struct {
	responder    Responder
	logger       zerolog.Logger
	blogPostRepo *database.BlogPostRepo
}

func newBlogPostHandler(blogPostRepo *database.BlogPostRepo) blogPostHandler {
	logger := log.With().Str("handlerName", "blogPostHandler").Logger()

	return blogPostHandler{
		responder:    NewResponder(logger),
		logger:       logger,
		blogPostRepo: blogPostRepo,
	}
}

// BlogPostCollection represents a list of blog posts in their list-view shape
type BlogPostCollection struct {
	BlogPosts []serializer.BlogPostListItem `json:"blog_posts"`
	Total     int                           `json:"total"`
}

// listBlogPosts retrieves blog posts in the lightweight list-view shape.
// Supported query parameters: author, status, category, featured, search,
// ordering. Unauthenticated requesters without an explicit status filter
// only see published posts.
func (h blogPostHandler) listBlogPosts() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		params := r.URL.Query()

		filter := database.BlogPostFilter{
			Status:   models.BlogPostStatus(params.Get("status")),
			Category: params.Get("category"),
			Search:   params.Get("search"),
			Ordering: params.Get("ordering"),
		}

		// An unparseable author id degrades to no author filter rather
		// than erroring
		if authorParam := params.Get("author"); authorParam != "" {
			if authorID, err := uuid.Parse(authorParam); err == nil {
				filter.AuthorID = &authorID
			}
		}

		// Anything other than "true" (case-insensitive) buckets to false
		if featuredParam := params.Get("featured"); featuredParam != "" {
			featured := strings.EqualFold(featuredParam, "true")
			filter.Featured = &featured
		}

		// Anonymous requesters without an explicit status filter only see
		// published posts. Authentication or an explicit status bypasses
		// the restriction.
		if _, authenticated := ctxGetUserID(r.Context()); !authenticated && filter.Status == "" {
			filter.Status = models.StatusPublished
		}

		blogPosts, err := h.blogPostRepo.FindAll(filter)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find blog posts", "blog_posts", err))
			return
		}

		response := BlogPostCollection{
			BlogPosts: serializer.NewBlogPostListItems(blogPosts),
			Total:     len(blogPosts),
		}

		h.responder.WriteJSON(w, response)
	}
}

// getBlogPost retrieves a specific blog post by ID in its full detail-view
// shape. The detail fetch does not re-check publication status; the list
// endpoint is the visibility gate.
func (h blogPostHandler) getBlogPost() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		postID, err := parsePostID(r)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		blogPost, err := h.blogPostRepo.FindByID(postID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find blog post", "blog_post", err))
			return
		}

		if blogPost == nil {
			h.responder.WriteError(w, errs.NewNotFoundError("blog post not found"))
			return
		}

		h.responder.WriteJSON(w, serializer.NewBlogPostDetail(blogPost))
	}
}

// parsePostID extracts and parses the {postID} URL parameter
func parsePostID(r *http.Request) (uuid.UUID, error) {
	postIDStr := chi.URLParam(r, "postID")
	if postIDStr == "" {
		return uuid.Nil, errs.NewBadRequestError("missing postID")
	}

	postID, err := uuid.Parse(postIDStr)
	if err != nil {
		return uuid.Nil, errs.NewBadRequestError("invalid postID")
	}
	return postID, nil
}
