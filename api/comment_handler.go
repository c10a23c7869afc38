package api

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/rpupo63/blog-platform-backend/database"
	"github.com/rpupo63/blog-platform-backend/errs"
	"github.com/rpupo63/blog-platform-backend/serializer"
)

type commentHandler struct {
	responder         Responder
	logger            zerolog.Logger
	blogPostRepo      *database.BlogPostRepo
	commentRepo       *database.CommentRepo
	commentSerializer serializer.CommentSerializer
}

func newCommentHandler(blogPostRepo *database.BlogPostRepo, commentRepo *database.CommentRepo) commentHandler {
	logger := log.With().Str("handlerName", "commentHandler").Logger()

	return commentHandler{
		responder:         NewResponder(logger),
		logger:            logger,
		blogPostRepo:      blogPostRepo,
		commentRepo:       commentRepo,
		commentSerializer: serializer.NewCommentSerializer(commentRepo),
	}
}

// createComment submits a new comment on a blog post. The comment is
// persisted unapproved and stays hidden from the public listing until
// moderation approves it.
func (h commentHandler) createComment() http.HandlerFunc {
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

		bodyBytes, err := io.ReadAll(r.Body)
		if err != nil {
			h.logger.Error().Err(err).Msg("Failed to read request body")
			h.responder.WriteError(w, errs.NewBadRequestError("failed to read request body"))
			return
		}

		var input serializer.CommentCreateInput
		if err := json.NewDecoder(bytes.NewReader(bodyBytes)).Decode(&input); err != nil {
			h.logger.Error().Err(err).Str("body", string(bodyBytes)).Msg("Failed to decode comment request body")
			h.responder.WriteError(w, errs.NewBadRequestError("malformed request body"))
			return
		}

		comment, err := h.commentSerializer.Create(blogPost, input)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		w.WriteHeader(http.StatusCreated)
		h.responder.WriteJSON(w, serializer.NewCommentResponse(comment))
	}
}

// listComments retrieves the approved comments on a blog post, newest
// first. Unapproved comments exist but are never listed here.
func (h commentHandler) listComments() http.HandlerFunc {
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

		comments, err := h.commentRepo.FindApprovedByPost(postID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find comments", "comments", err))
			return
		}

		h.responder.WriteJSON(w, serializer.NewCommentResponses(comments))
	}
}
