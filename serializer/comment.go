package serializer

import (
	"errors"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/rpupo63/blog-platform-backend/database"
	"github.com/rpupo63/blog-platform-backend/errs"
	"github.com/rpupo63/blog-platform-backend/models"
)

// CommentResponse is the full read representation of a comment
type CommentResponse struct {
	ID            uuid.UUID `json:"id"`
	BlogPostID    uuid.UUID `json:"blog_post_id"`
	BlogPostTitle string    `json:"blog_post_title"`
	Name          string    `json:"name"`
	Email         string    `json:"email"`
	Content       string    `json:"content"`
	IsApproved    bool      `json:"is_approved"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

func NewCommentResponse(comment *models.Comment) CommentResponse {
	return CommentResponse{
		ID:            comment.ID,
		BlogPostID:    comment.BlogPostID,
		BlogPostTitle: comment.BlogPost.Title,
		Name:          comment.Name,
		Email:         comment.Email,
		Content:       comment.Content,
		IsApproved:    comment.IsApproved,
		CreatedAt:     comment.CreatedAt,
		UpdatedAt:     comment.UpdatedAt,
	}
}

func NewCommentResponses(comments []*models.Comment) []CommentResponse {
	responses := make([]CommentResponse, 0, len(comments))
	for _, comment := range comments {
		responses = append(responses, NewCommentResponse(comment))
	}
	return responses
}

// CommentCreateInput is the minimal creation shape. Approval state and
// timestamps are server-assigned, never client-writable.
type CommentCreateInput struct {
	Name    string `json:"name" validate:"required"`
	Email   string `json:"email" validate:"required,email"`
	Content string `json:"content" validate:"required"`
}

// CommentSerializer validates and persists reader comments.
type CommentSerializer struct {
	commentRepo *database.CommentRepo
	validate    *validator.Validate
}

func NewCommentSerializer(commentRepo *database.CommentRepo) CommentSerializer {
	return CommentSerializer{
		commentRepo: commentRepo,
		validate:    validator.New(),
	}
}

// Create persists a new unapproved comment on the given post. The post
// comes from the calling endpoint, never from the client payload. Fails
// before touching storage when the post has comments disabled or the
// payload is invalid.
func (s CommentSerializer) Create(blogPost *models.BlogPost, input CommentCreateInput) (*models.Comment, error) {
	if !blogPost.CommentsEnabled {
		return nil, errs.NewBadRequestError("Comments are disabled for this blog post.")
	}

	input.Email = strings.ToLower(strings.TrimSpace(input.Email))

	if err := s.validate.Struct(input); err != nil {
		return nil, validationError(err)
	}

	comment := models.Comment{
		BlogPostID: blogPost.ID,
		Name:       input.Name,
		Email:      input.Email,
		Content:    input.Content,
		IsApproved: false,
	}
	if err := s.commentRepo.Add(&comment); err != nil {
		return nil, errs.NewDatabaseError("create comment", "comment", err)
	}

	comment.BlogPost = *blogPost
	return &comment, nil
}

// validationError maps a validator error to a field-level ApiErr
func validationError(err error) error {
	var fieldErrors validator.ValidationErrors
	if !errors.As(err, &fieldErrors) || len(fieldErrors) == 0 {
		return errs.NewBadRequestError(err.Error())
	}

	first := fieldErrors[0]
	field := strings.ToLower(first.Field())
	if first.Tag() == "required" {
		return errs.NewMissingRequiredFieldError(field)
	}
	return errs.NewInvalidFieldError(field, "failed "+first.Tag()+" validation")
}
