package database

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/rpupo63/blog-platform-backend/models"
)

type AuthorRepo struct {
	db *gorm.DB
}

func NewAuthorRepo(db *gorm.DB) *AuthorRepo {
	return &AuthorRepo{db}
}

// FindAll returns all authors ordered by name
func (r *AuthorRepo) FindAll() ([]*models.Author, error) {
	var authors []*models.Author
	err := r.db.Order("name ASC").Find(&authors).Error
	return authors, err
}

// FindByID returns an author by its ID, or nil if no author exists
func (r *AuthorRepo) FindByID(id uuid.UUID) (*models.Author, error) {
	var author models.Author
	err := r.db.First(&author, "id = ?", id).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &author, nil
}

// Add inserts a new author into the database
func (r *AuthorRepo) Add(author *models.Author) error {
	return r.db.Create(author).Error
}

// Update updates an existing author in the database
func (r *AuthorRepo) Update(author *models.Author) error {
	return r.db.Save(author).Error
}

// Delete removes an author and everything it owns. Deleting an author
// cascades to its posts, and post deletion cascades to comments and tag
// associations.
func (r *AuthorRepo) Delete(id uuid.UUID) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var postIDs []uuid.UUID
		if err := tx.Model(&models.BlogPost{}).Where("author_id = ?", id).Pluck("id", &postIDs).Error; err != nil {
			return err
		}
		if len(postIDs) > 0 {
			if err := tx.Where("blog_post_id IN ?", postIDs).Delete(&models.Comment{}).Error; err != nil {
				return err
			}
			if err := tx.Exec("DELETE FROM blog_post_tags WHERE blog_post_id IN ?", postIDs).Error; err != nil {
				return err
			}
			if err := tx.Where("id IN ?", postIDs).Delete(&models.BlogPost{}).Error; err != nil {
				return err
			}
		}
		return tx.Delete(&models.Author{}, "id = ?", id).Error
	})
}

// CountPosts returns the number of blog posts owned by the author
func (r *AuthorRepo) CountPosts(id uuid.UUID) (int64, error) {
	var count int64
	err := r.db.Model(&models.BlogPost{}).Where("author_id = ?", id).Count(&count).Error
	return count, err
}
