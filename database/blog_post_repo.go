package database

import (
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/rpupo63/blog-platform-backend/models"
)

type BlogPostRepo struct {
	db *gorm.DB
}

func NewBlogPostRepo(db *gorm.DB) *BlogPostRepo {
	return &BlogPostRepo{db}
}

// BlogPostFilter narrows a post listing. Every field is optional and the
// filters combine independently.
type BlogPostFilter struct {
	AuthorID *uuid.UUID
	Status   models.BlogPostStatus
	Category string
	Featured *bool
	Search   string
	Ordering string
}

// orderColumns is the whitelist of sortable columns. Anything else falls
// back to the default ordering.
var orderColumns = map[string]string{
	"created_at":   "created_at",
	"updated_at":   "updated_at",
	"published_at": "published_at",
}

const defaultOrdering = "created_at DESC"

func orderClause(ordering string) string {
	direction := "ASC"
	if strings.HasPrefix(ordering, "-") {
		direction = "DESC"
		ordering = strings.TrimPrefix(ordering, "-")
	}
	column, ok := orderColumns[ordering]
	if !ok {
		return defaultOrdering
	}
	return column + " " + direction
}

// FindAll returns the blog posts matching the filter, with authors and tags
// preloaded. Default ordering is newest created first.
func (r *BlogPostRepo) FindAll(filter BlogPostFilter) ([]*models.BlogPost, error) {
	query := r.db.Preload("Author").Preload("Tags")

	if filter.AuthorID != nil {
		query = query.Where("author_id = ?", *filter.AuthorID)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.Category != "" {
		query = query.Where("category = ?", filter.Category)
	}
	if filter.Featured != nil {
		query = query.Where("featured = ?", *filter.Featured)
	}
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where("title LIKE ? OR subtitle LIKE ? OR category LIKE ?", pattern, pattern, pattern)
	}

	var blogPosts []*models.BlogPost
	err := query.Order(orderClause(filter.Ordering)).Find(&blogPosts).Error
	return blogPosts, err
}

// FindByID returns a blog post by its ID with author and tags preloaded,
// or nil if no post exists
func (r *BlogPostRepo) FindByID(id uuid.UUID) (*models.BlogPost, error) {
	var blogPost models.BlogPost
	err := r.db.Preload("Author").Preload("Tags").First(&blogPost, "id = ?", id).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &blogPost, nil
}

// FindBySlug returns a blog post by its slug, or nil if no post exists
func (r *BlogPostRepo) FindBySlug(slug string) (*models.BlogPost, error) {
	var blogPost models.BlogPost
	err := r.db.First(&blogPost, "slug = ?", slug).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &blogPost, nil
}

// Add inserts a new blog post into the database
func (r *BlogPostRepo) Add(blogPost *models.BlogPost) error {
	return r.db.Omit("Tags", "Author", "Comments").Create(blogPost).Error
}

// Update updates an existing blog post in the database
func (r *BlogPostRepo) Update(blogPost *models.BlogPost) error {
	return r.db.Omit("Tags", "Author", "Comments").Save(blogPost).Error
}

// SetTags replaces the post's tag associations with exactly the given set
func (r *BlogPostRepo) SetTags(blogPost *models.BlogPost, tags []*models.Tag) error {
	return r.db.Model(blogPost).Association("Tags").Replace(tags)
}

// Delete removes a blog post and its comments and tag associations by id
func (r *BlogPostRepo) Delete(id uuid.UUID) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("blog_post_id = ?", id).Delete(&models.Comment{}).Error; err != nil {
			return err
		}
		if err := tx.Exec("DELETE FROM blog_post_tags WHERE blog_post_id = ?", id).Error; err != nil {
			return err
		}
		return tx.Delete(&models.BlogPost{}, "id = ?", id).Error
	})
}

// UpdateStatusByIDs sets the status of every post in ids with a single
// update-by-filter and returns the affected row count.
func (r *BlogPostRepo) UpdateStatusByIDs(ids []uuid.UUID, status models.BlogPostStatus) (int64, error) {
	result := r.db.Model(&models.BlogPost{}).Where("id IN ?", ids).Update("status", status)
	return result.RowsAffected, result.Error
}

// SetFeaturedByIDs sets the featured flag of every post in ids and returns
// the affected row count.
func (r *BlogPostRepo) SetFeaturedByIDs(ids []uuid.UUID, featured bool) (int64, error) {
	result := r.db.Model(&models.BlogPost{}).Where("id IN ?", ids).Update("featured", featured)
	return result.RowsAffected, result.Error
}
