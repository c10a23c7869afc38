package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/rpupo63/blog-platform-backend/database"
	"github.com/rpupo63/blog-platform-backend/errs"
	"github.com/rpupo63/blog-platform-backend/models"
	"github.com/rpupo63/blog-platform-backend/serializer"
)

// adminHandler is the moderation surface: author management, post writes
// through the serializer path, comment review and the bulk state-transition
// actions. Every route behind it requires an authenticated actor, whose id
// feeds audit stamping.
type adminHandler struct {
	responder          Responder
	logger             zerolog.Logger
	authorRepo         *database.AuthorRepo
	tagRepo            *database.TagRepo
	blogPostRepo       *database.BlogPostRepo
	commentRepo        *database.CommentRepo
	blogPostSerializer serializer.BlogPostSerializer
}

func newAdminHandler(db database.Database) adminHandler {
	logger := log.With().Str("handlerName", "adminHandler").Logger()

	return adminHandler{
		responder:          NewResponder(logger),
		logger:             logger,
		authorRepo:         db.AuthorRepo(),
		tagRepo:            db.TagRepo(),
		blogPostRepo:       db.BlogPostRepo(),
		commentRepo:        db.CommentRepo(),
		blogPostSerializer: serializer.NewBlogPostSerializer(db.BlogPostRepo(), db.TagRepo(), db.AuthorRepo()),
	}
}

// AuthorSummary is an author with its computed post count
type AuthorSummary struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	PostCount int64     `json:"post_count"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TagSummary is a tag with its computed post count
type TagSummary struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Slug      string    `json:"slug"`
	PostCount int64     `json:"post_count"`
}

type authorInput struct {
	Name string `json:"name"`
}

// bulkActionRequest selects the entities a bulk action applies to
type bulkActionRequest struct {
	IDs []uuid.UUID `json:"ids"`
}

// bulkActionResponse reports the affected count with a severity-tagged
// user-facing message
type bulkActionResponse struct {
	Updated  int64  `json:"updated"`
	Message  string `json:"message"`
	Severity string `json:"severity"`
}

func (h adminHandler) listAuthors() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		authors, err := h.authorRepo.FindAll()
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find authors", "authors", err))
			return
		}

		summaries := make([]AuthorSummary, 0, len(authors))
		for _, author := range authors {
			count, err := h.authorRepo.CountPosts(author.ID)
			if err != nil {
				h.responder.WriteError(w, wrapDatabaseError("count posts", "author", err))
				return
			}
			summaries = append(summaries, AuthorSummary{
				ID:        author.ID,
				Name:      author.Name,
				PostCount: count,
				CreatedAt: author.CreatedAt,
				UpdatedAt: author.UpdatedAt,
			})
		}

		h.responder.WriteJSON(w, summaries)
	}
}

func (h adminHandler) createAuthor() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var input authorInput
		if err := h.decodeBody(r, &input); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		if input.Name == "" {
			h.responder.WriteError(w, errs.NewMissingRequiredFieldError("name"))
			return
		}

		author := models.Author{Name: input.Name}
		if err := h.authorRepo.Add(&author); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("create author", "author", err))
			return
		}

		w.WriteHeader(http.StatusCreated)
		h.responder.WriteJSON(w, author)
	}
}

func (h adminHandler) updateAuthor() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		authorID, err := parseAuthorID(r)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		author, err := h.authorRepo.FindByID(authorID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find author", "author", err))
			return
		}
		if author == nil {
			h.responder.WriteError(w, errs.NewNotFoundError("author not found"))
			return
		}

		var input authorInput
		if err := h.decodeBody(r, &input); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		if input.Name == "" {
			h.responder.WriteError(w, errs.NewMissingRequiredFieldError("name"))
			return
		}

		author.Name = input.Name
		if err := h.authorRepo.Update(author); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("update author", "author", err))
			return
		}

		h.responder.WriteJSON(w, author)
	}
}

// deleteAuthor removes an author; deletion cascades to the author's posts
// and their comments
func (h adminHandler) deleteAuthor() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		authorID, err := parseAuthorID(r)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		author, err := h.authorRepo.FindByID(authorID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find author", "author", err))
			return
		}
		if author == nil {
			h.responder.WriteError(w, errs.NewNotFoundError("author not found"))
			return
		}

		if err := h.authorRepo.Delete(authorID); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("delete author", "author", err))
			return
		}

		h.responder.WriteJSON(w, map[string]string{
			"status":  "success",
			"message": "author deleted successfully",
		})
	}
}

func (h adminHandler) listTags() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tags, err := h.tagRepo.FindAll()
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find tags", "tags", err))
			return
		}

		summaries := make([]TagSummary, 0, len(tags))
		for _, tag := range tags {
			count, err := h.tagRepo.CountPosts(tag.ID)
			if err != nil {
				h.responder.WriteError(w, wrapDatabaseError("count posts", "tag", err))
				return
			}
			summaries = append(summaries, TagSummary{
				ID:        tag.ID,
				Name:      tag.Name,
				Slug:      tag.Slug,
				PostCount: count,
			})
		}

		h.responder.WriteJSON(w, summaries)
	}
}

// createBlogPost creates a post through the serializer write path, which
// validates the slug, resolves tag_names and stamps the acting identity
// into created_by and updated_by.
func (h adminHandler) createBlogPost() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var input serializer.BlogPostInput
		if err := h.decodeBody(r, &input); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		blogPost, err := h.blogPostSerializer.Create(input, actorID(r))
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		w.WriteHeader(http.StatusCreated)
		h.responder.WriteJSON(w, serializer.NewBlogPostDetail(blogPost))
	}
}

// updateBlogPost updates a post through the serializer write path; only
// updated_by is stamped on update
func (h adminHandler) updateBlogPost() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		postID, err := parsePostID(r)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		existing, err := h.blogPostRepo.FindByID(postID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find blog post", "blog_post", err))
			return
		}
		if existing == nil {
			h.responder.WriteError(w, errs.NewNotFoundError("blog post not found"))
			return
		}

		var input serializer.BlogPostInput
		if err := h.decodeBody(r, &input); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		blogPost, err := h.blogPostSerializer.Update(existing, input, actorID(r))
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteJSON(w, serializer.NewBlogPostDetail(blogPost))
	}
}

func (h adminHandler) deleteBlogPost() http.HandlerFunc {
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

		if err := h.blogPostRepo.Delete(postID); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("delete blog post", "blog_post", err))
			return
		}

		h.responder.WriteJSON(w, map[string]string{
			"status":  "success",
			"message": "blog post deleted successfully",
		})
	}
}

// listAllComments lists comments for moderation review, optionally
// narrowed by approval state and post
func (h adminHandler) listAllComments() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		params := r.URL.Query()

		var filter database.CommentFilter
		if approvedParam := params.Get("approved"); approvedParam != "" {
			approved := approvedParam == "true"
			filter.Approved = &approved
		}
		if postParam := params.Get("post"); postParam != "" {
			postID, err := uuid.Parse(postParam)
			if err != nil {
				h.responder.WriteError(w, errs.NewBadRequestError("invalid post filter"))
				return
			}
			filter.BlogPostID = &postID
		}

		comments, err := h.commentRepo.FindAll(filter)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find comments", "comments", err))
			return
		}

		h.responder.WriteJSON(w, serializer.NewCommentResponses(comments))
	}
}

func (h adminHandler) approveComments() http.HandlerFunc {
	return h.commentAction(true, "approved", "success")
}

func (h adminHandler) disapproveComments() http.HandlerFunc {
	return h.commentAction(false, "disapproved", "warning")
}

// commentAction flips the approval flag on a selected set of comments with
// a single update-by-filter
func (h adminHandler) commentAction(approved bool, verb, severity string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ids, err := h.decodeBulkIDs(r)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		count, err := h.commentRepo.SetApprovedByIDs(ids, approved)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError(verb+" comments", "comments", err))
			return
		}

		h.responder.WriteJSON(w, bulkActionResponse{
			Updated:  count,
			Message:  fmt.Sprintf("Successfully %s %d comment%s.", verb, count, pluralSuffix(count)),
			Severity: severity,
		})
	}
}

func (h adminHandler) publishPosts() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ids, err := h.decodeBulkIDs(r)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		count, err := h.blogPostRepo.UpdateStatusByIDs(ids, models.StatusPublished)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("publish posts", "blog_posts", err))
			return
		}

		h.responder.WriteJSON(w, bulkActionResponse{
			Updated:  count,
			Message:  fmt.Sprintf("Successfully published %d post%s.", count, pluralSuffix(count)),
			Severity: "success",
		})
	}
}

func (h adminHandler) draftPosts() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ids, err := h.decodeBulkIDs(r)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		count, err := h.blogPostRepo.UpdateStatusByIDs(ids, models.StatusDraft)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("draft posts", "blog_posts", err))
			return
		}

		h.responder.WriteJSON(w, bulkActionResponse{
			Updated:  count,
			Message:  fmt.Sprintf("Successfully marked %d post%s as draft.", count, pluralSuffix(count)),
			Severity: "info",
		})
	}
}

func (h adminHandler) featurePosts() http.HandlerFunc {
	return h.featuredAction(true, "featured", "success")
}

func (h adminHandler) unfeaturePosts() http.HandlerFunc {
	return h.featuredAction(false, "unfeatured", "info")
}

func (h adminHandler) featuredAction(featured bool, verb, severity string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ids, err := h.decodeBulkIDs(r)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		count, err := h.blogPostRepo.SetFeaturedByIDs(ids, featured)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError(verb+" posts", "blog_posts", err))
			return
		}

		h.responder.WriteJSON(w, bulkActionResponse{
			Updated:  count,
			Message:  fmt.Sprintf("Successfully %s %d post%s.", verb, count, pluralSuffix(count)),
			Severity: severity,
		})
	}
}

// decodeBody reads and decodes a JSON request body
func (h adminHandler) decodeBody(r *http.Request, dest any) error {
	bodyBytes, err := io.ReadAll(r.Body)
	if err != nil {
		h.logger.Error().Err(err).Msg("Failed to read request body")
		return errs.NewBadRequestError("failed to read request body")
	}

	if err := json.NewDecoder(bytes.NewReader(bodyBytes)).Decode(dest); err != nil {
		h.logger.Error().Err(err).Str("body", string(bodyBytes)).Msg("Failed to decode request body")
		return errs.NewBadRequestError("malformed request body")
	}
	return nil
}

func (h adminHandler) decodeBulkIDs(r *http.Request) ([]uuid.UUID, error) {
	var req bulkActionRequest
	if err := h.decodeBody(r, &req); err != nil {
		return nil, err
	}
	if len(req.IDs) == 0 {
		return nil, errs.NewMissingRequiredFieldError("ids")
	}
	return req.IDs, nil
}

// actorID returns the acting user's id from the request context, nil when
// absent
func actorID(r *http.Request) *uuid.UUID {
	userID, ok := ctxGetUserID(r.Context())
	if !ok {
		return nil
	}
	return &userID
}

func parseAuthorID(r *http.Request) (uuid.UUID, error) {
	authorIDStr := chi.URLParam(r, "authorID")
	if authorIDStr == "" {
		return uuid.Nil, errs.NewBadRequestError("missing authorID")
	}

	authorID, err := uuid.Parse(authorIDStr)
	if err != nil {
		return uuid.Nil, errs.NewBadRequestError("invalid authorID")
	}
	return authorID, nil
}

func pluralSuffix(count int64) string {
	if count == 1 {
		return ""
	}
	return "s"
}
