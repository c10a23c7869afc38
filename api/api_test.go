package api

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/rpupo63/blog-platform-backend/database"
	"github.com/rpupo63/blog-platform-backend/models"
)

const testSecret = "test-secret"

func setupTestServer(t *testing.T) (*chi.Mux, *gorm.DB) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Author{}, &models.Tag{}, &models.BlogPost{}, &models.Comment{}))

	router := newRouter(database.New(db), withConfig(map[string]string{
		"JWT_SECRET": testSecret,
	}))
	return router, db
}

func testToken(t *testing.T, userID uuid.UUID) string {
	t.Helper()

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   userID.String(),
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	})
	signed, err := token.SignedString([]byte(testSecret))
	require.NoError(t, err)
	return signed
}

func createTestAuthor(t *testing.T, db *gorm.DB, name string) *models.Author {
	t.Helper()

	author := &models.Author{Name: name}
	require.NoError(t, db.Create(author).Error)
	return author
}

func createTestPost(t *testing.T, db *gorm.DB, author *models.Author, slug string, status models.BlogPostStatus, featured, commentsEnabled bool) *models.BlogPost {
	t.Helper()

	post := &models.BlogPost{
		Title:           "Post " + slug,
		Slug:            slug,
		Content:         datatypes.JSON([]byte(`{}`)),
		AuthorID:        author.ID,
		Category:        "general",
		Status:          status,
		Featured:        featured,
		CommentsEnabled: commentsEnabled,
	}
	require.NoError(t, db.Create(post).Error)
	return post
}

func doRequest(router *chi.Mux, method, path string, body any, token string) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		data, _ := json.Marshal(body)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)
	return recorder
}

func decodeBody[T any](t *testing.T, recorder *httptest.ResponseRecorder) T {
	t.Helper()

	var result T
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &result))
	return result
}
