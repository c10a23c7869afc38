package database

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/rpupo63/blog-platform-backend/models"
)

type CommentRepo struct {
	db *gorm.DB
}

func NewCommentRepo(db *gorm.DB) *CommentRepo {
	return &CommentRepo{db}
}

// CommentFilter narrows a moderation listing. Both fields are optional.
type CommentFilter struct {
	BlogPostID *uuid.UUID
	Approved   *bool
}

// FindAll returns comments matching the filter, newest first, with their
// blog posts preloaded
func (r *CommentRepo) FindAll(filter CommentFilter) ([]*models.Comment, error) {
	query := r.db.Preload("BlogPost")
	if filter.BlogPostID != nil {
		query = query.Where("blog_post_id = ?", *filter.BlogPostID)
	}
	if filter.Approved != nil {
		query = query.Where("is_approved = ?", *filter.Approved)
	}

	var comments []*models.Comment
	err := query.Order("created_at DESC").Find(&comments).Error
	return comments, err
}

// FindApprovedByPost returns the approved comments on a post, newest first
func (r *CommentRepo) FindApprovedByPost(blogPostID uuid.UUID) ([]*models.Comment, error) {
	var comments []*models.Comment
	err := r.db.Preload("BlogPost").
		Where("blog_post_id = ? AND is_approved = ?", blogPostID, true).
		Order("created_at DESC").
		Find(&comments).Error
	return comments, err
}

// Add inserts a new comment into the database
func (r *CommentRepo) Add(comment *models.Comment) error {
	return r.db.Omit("BlogPost").Create(comment).Error
}

// SetApprovedByIDs sets the approval flag of every comment in ids with a
// single update-by-filter and returns the affected row count.
func (r *CommentRepo) SetApprovedByIDs(ids []uuid.UUID, approved bool) (int64, error) {
	result := r.db.Model(&models.Comment{}).Where("id IN ?", ids).Update("is_approved", approved)
	return result.RowsAffected, result.Error
}
