package serializer

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/rpupo63/blog-platform-backend/database"
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

func newTestBlogPostSerializer(db *gorm.DB) BlogPostSerializer {
	return NewBlogPostSerializer(
		database.NewBlogPostRepo(db),
		database.NewTagRepo(db),
		database.NewAuthorRepo(db),
	)
}
