package api

import (
	"net/http"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/rpupo63/blog-platform-backend/models"
	"github.com/rpupo63/blog-platform-backend/serializer"
)

func createTestComment(t *testing.T, db *gorm.DB, post *models.BlogPost, approved bool) *models.Comment {
	t.Helper()

	comment := &models.Comment{
		BlogPostID: post.ID,
		Name:       "Reader",
		Email:      "reader@example.com",
		Content:    "nice",
		IsApproved: approved,
		CreatedAt:  time.Now(),
	}
	require.NoError(t, db.Create(comment).Error)
	return comment
}

func TestAdmin_RequiresToken(t *testing.T) {
	router, _ := setupTestServer(t)

	recorder := doRequest(router, http.MethodGet, "/admin/authors", nil, "")
	assert.Equal(t, http.StatusUnauthorized, recorder.Code)

	recorder = doRequest(router, http.MethodGet, "/admin/authors", nil, "garbage-token")
	assert.Equal(t, http.StatusUnauthorized, recorder.Code)
}

func TestAdminCreatePost_StampsActor(t *testing.T) {
	router, db := setupTestServer(t)
	author := createTestAuthor(t, db, "Ada")
	actor := uuid.New()

	payload := map[string]any{
		"title":     "From Admin",
		"slug":      "from-admin",
		"content":   map[string]any{"blocks": []any{}},
		"author_id": author.ID.String(),
		"category":  "engineering",
		"tag_names": []string{"Systems", "Go"},
	}
	recorder := doRequest(router, http.MethodPost, "/admin/posts", payload, testToken(t, actor))
	require.Equal(t, http.StatusCreated, recorder.Code)

	detail := decodeBody[serializer.BlogPostDetail](t, recorder)
	require.NotNil(t, detail.CreatedByID)
	require.NotNil(t, detail.UpdatedByID)
	assert.Equal(t, actor, *detail.CreatedByID)
	assert.Equal(t, actor, *detail.UpdatedByID)
	assert.Len(t, detail.Tags, 2)
	assert.Equal(t, models.StatusDraft, detail.Status)
}

func TestAdminCreatePost_DuplicateSlug(t *testing.T) {
	router, db := setupTestServer(t)
	author := createTestAuthor(t, db, "Ada")
	createTestPost(t, db, author, "taken", models.StatusPublished, false, true)

	payload := map[string]any{
		"title":     "Another",
		"slug":      "taken",
		"content":   map[string]any{},
		"author_id": author.ID.String(),
		"category":  "engineering",
	}
	recorder := doRequest(router, http.MethodPost, "/admin/posts", payload, testToken(t, uuid.New()))
	require.Equal(t, http.StatusBadRequest, recorder.Code)

	body := decodeBody[ErrorResponse](t, recorder)
	assert.Equal(t, "A blog post with this slug already exists.", body.Error)
}

func TestAdminBulkApproveComments(t *testing.T) {
	router, db := setupTestServer(t)
	author := createTestAuthor(t, db, "Ada")
	post := createTestPost(t, db, author, "commented", models.StatusPublished, false, true)
	first := createTestComment(t, db, post, false)
	second := createTestComment(t, db, post, false)

	payload := map[string]any{"ids": []string{first.ID.String(), second.ID.String()}}
	recorder := doRequest(router, http.MethodPost, "/admin/comments/approve", payload, testToken(t, uuid.New()))
	require.Equal(t, http.StatusOK, recorder.Code)

	response := decodeBody[bulkActionResponse](t, recorder)
	assert.Equal(t, int64(2), response.Updated)
	assert.Equal(t, "Successfully approved 2 comments.", response.Message)
	assert.Equal(t, "success", response.Severity)
}

func TestAdminBulkDisapprove_SingularMessage(t *testing.T) {
	router, db := setupTestServer(t)
	author := createTestAuthor(t, db, "Ada")
	post := createTestPost(t, db, author, "commented", models.StatusPublished, false, true)
	comment := createTestComment(t, db, post, true)

	payload := map[string]any{"ids": []string{comment.ID.String()}}
	recorder := doRequest(router, http.MethodPost, "/admin/comments/disapprove", payload, testToken(t, uuid.New()))
	require.Equal(t, http.StatusOK, recorder.Code)

	response := decodeBody[bulkActionResponse](t, recorder)
	assert.Equal(t, int64(1), response.Updated)
	assert.Equal(t, "Successfully disapproved 1 comment.", response.Message)
	assert.Equal(t, "warning", response.Severity)
}

func TestAdminBulkPublishAndFeature(t *testing.T) {
	router, db := setupTestServer(t)
	author := createTestAuthor(t, db, "Ada")
	post := createTestPost(t, db, author, "draft", models.StatusDraft, false, true)
	token := testToken(t, uuid.New())

	payload := map[string]any{"ids": []string{post.ID.String()}}
	recorder := doRequest(router, http.MethodPost, "/admin/posts/publish", payload, token)
	require.Equal(t, http.StatusOK, recorder.Code)
	response := decodeBody[bulkActionResponse](t, recorder)
	assert.Equal(t, "Successfully published 1 post.", response.Message)

	recorder = doRequest(router, http.MethodPost, "/admin/posts/feature", payload, token)
	require.Equal(t, http.StatusOK, recorder.Code)

	var reloaded models.BlogPost
	require.NoError(t, db.First(&reloaded, "id = ?", post.ID).Error)
	assert.Equal(t, models.StatusPublished, reloaded.Status)
	assert.True(t, reloaded.Featured)

	recorder = doRequest(router, http.MethodPost, "/admin/posts/draft", payload, token)
	response = decodeBody[bulkActionResponse](t, recorder)
	assert.Equal(t, "Successfully marked 1 post as draft.", response.Message)
	assert.Equal(t, "info", response.Severity)
}

func TestAdminBulk_EmptyIDs(t *testing.T) {
	router, _ := setupTestServer(t)

	payload := map[string]any{"ids": []string{}}
	recorder := doRequest(router, http.MethodPost, "/admin/comments/approve", payload, testToken(t, uuid.New()))
	assert.Equal(t, http.StatusBadRequest, recorder.Code)
}

func TestAdminAuthors_CRUDAndCounts(t *testing.T) {
	router, db := setupTestServer(t)
	token := testToken(t, uuid.New())

	recorder := doRequest(router, http.MethodPost, "/admin/authors", map[string]string{"name": "Grace"}, token)
	require.Equal(t, http.StatusCreated, recorder.Code)
	created := decodeBody[models.Author](t, recorder)

	createTestPost(t, db, &created, "graced", models.StatusPublished, false, true)

	recorder = doRequest(router, http.MethodGet, "/admin/authors", nil, token)
	require.Equal(t, http.StatusOK, recorder.Code)
	summaries := decodeBody[[]AuthorSummary](t, recorder)
	require.Len(t, summaries, 1)
	assert.Equal(t, "Grace", summaries[0].Name)
	assert.Equal(t, int64(1), summaries[0].PostCount)

	recorder = doRequest(router, http.MethodPost, "/admin/authors", map[string]string{}, token)
	assert.Equal(t, http.StatusBadRequest, recorder.Code)

	recorder = doRequest(router, http.MethodDelete, "/admin/authors/"+created.ID.String(), nil, token)
	require.Equal(t, http.StatusOK, recorder.Code)

	var posts int64
	require.NoError(t, db.Model(&models.BlogPost{}).Count(&posts).Error)
	assert.Equal(t, int64(0), posts)
}

func TestAdminUpdatePost_TagReplace(t *testing.T) {
	router, db := setupTestServer(t)
	author := createTestAuthor(t, db, "Ada")
	token := testToken(t, uuid.New())

	payload := map[string]any{
		"title":     "Tagged",
		"slug":      "tagged",
		"content":   map[string]any{},
		"author_id": author.ID.String(),
		"category":  "engineering",
		"tag_names": []string{"Go", "Databases"},
	}
	recorder := doRequest(router, http.MethodPost, "/admin/posts", payload, token)
	require.Equal(t, http.StatusCreated, recorder.Code)
	created := decodeBody[serializer.BlogPostDetail](t, recorder)

	update := map[string]any{"tag_names": []string{"Go"}}
	recorder = doRequest(router, http.MethodPut, "/admin/posts/"+created.ID.String(), update, token)
	require.Equal(t, http.StatusOK, recorder.Code)
	updated := decodeBody[serializer.BlogPostDetail](t, recorder)
	require.Len(t, updated.Tags, 1)
	assert.Equal(t, "Go", updated.Tags[0].Name)
}

func TestAdminListComments_ApprovedFilter(t *testing.T) {
	router, db := setupTestServer(t)
	author := createTestAuthor(t, db, "Ada")
	post := createTestPost(t, db, author, "commented", models.StatusPublished, false, true)
	createTestComment(t, db, post, true)
	createTestComment(t, db, post, false)
	token := testToken(t, uuid.New())

	recorder := doRequest(router, http.MethodGet, "/admin/comments?approved=false", nil, token)
	require.Equal(t, http.StatusOK, recorder.Code)
	comments := decodeBody[[]serializer.CommentResponse](t, recorder)
	require.Len(t, comments, 1)
	assert.False(t, comments[0].IsApproved)
}
