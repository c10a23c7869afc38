package database

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/rpupo63/blog-platform-backend/models"
)

type TagRepo struct {
	db *gorm.DB
}

func NewTagRepo(db *gorm.DB) *TagRepo {
	return &TagRepo{db}
}

// FindAll returns all tags ordered by name
func (r *TagRepo) FindAll() ([]*models.Tag, error) {
	var tags []*models.Tag
	err := r.db.Order("name ASC").Find(&tags).Error
	return tags, err
}

// GetOrCreateByName looks a tag up by exact name and creates it with the
// given slug when it does not exist yet. Lookup is case-sensitive.
func (r *TagRepo) GetOrCreateByName(name, slug string) (*models.Tag, error) {
	var tag models.Tag
	err := r.db.Where("name = ?", name).First(&tag).Error
	if err == nil {
		return &tag, nil
	}
	if err != gorm.ErrRecordNotFound {
		return nil, err
	}

	tag = models.Tag{Name: name, Slug: slug}
	if err := r.db.Create(&tag).Error; err != nil {
		return nil, err
	}
	return &tag, nil
}

// CountPosts returns the number of blog posts carrying the tag
func (r *TagRepo) CountPosts(id uuid.UUID) (int64, error) {
	var count int64
	err := r.db.Table("blog_post_tags").Where("tag_id = ?", id).Count(&count).Error
	return count, err
}
