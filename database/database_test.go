package database

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/rpupo63/blog-platform-backend/models"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(&models.Author{}, &models.Tag{}, &models.BlogPost{}, &models.Comment{})
	require.NoError(t, err)
	return db
}

func createTestAuthor(t *testing.T, db *gorm.DB, name string) *models.Author {
	t.Helper()

	author := &models.Author{Name: name}
	require.NoError(t, db.Create(author).Error)
	return author
}

type postSeed struct {
	slug      string
	status    models.BlogPostStatus
	category  string
	featured  bool
	createdAt time.Time
}

func createTestPost(t *testing.T, db *gorm.DB, author *models.Author, seed postSeed) *models.BlogPost {
	t.Helper()

	if seed.category == "" {
		seed.category = "general"
	}
	post := &models.BlogPost{
		Title:           "Post " + seed.slug,
		Slug:            seed.slug,
		Content:         datatypes.JSON([]byte(`{}`)),
		AuthorID:        author.ID,
		Category:        seed.category,
		Status:          seed.status,
		Featured:        seed.featured,
		CommentsEnabled: true,
		CreatedAt:       seed.createdAt,
	}
	require.NoError(t, db.Create(post).Error)
	return post
}

func createTestComment(t *testing.T, db *gorm.DB, post *models.BlogPost, approved bool, createdAt time.Time) *models.Comment {
	t.Helper()

	comment := &models.Comment{
		BlogPostID: post.ID,
		Name:       "Reader",
		Email:      "reader@example.com",
		Content:    "nice",
		IsApproved: approved,
		CreatedAt:  createdAt,
	}
	require.NoError(t, db.Create(comment).Error)
	return comment
}
