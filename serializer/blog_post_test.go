package serializer

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"

	"github.com/rpupo63/blog-platform-backend/errs"
	"github.com/rpupo63/blog-platform-backend/models"
)

func validInput(authorID uuid.UUID, slug string) BlogPostInput {
	return BlogPostInput{
		Title:    "A Post",
		Slug:     slug,
		Content:  datatypes.JSON([]byte(`{"blocks":[]}`)),
		AuthorID: authorID,
		Category: "engineering",
	}
}

func TestSlugify(t *testing.T) {
	assert.Equal(t, "systems", Slugify("Systems"))
	assert.Equal(t, "distributed-systems", Slugify("  Distributed Systems "))
	assert.Equal(t, "go", Slugify("Go"))
}

func TestCreateBlogPost(t *testing.T) {
	db := setupTestDB(t)
	s := newTestBlogPostSerializer(db)
	author := createTestAuthor(t, db, "Ada")

	actor := uuid.New()
	post, err := s.Create(validInput(author.ID, "a-post"), &actor)
	require.NoError(t, err)

	assert.Equal(t, models.StatusDraft, post.Status)
	assert.True(t, post.CommentsEnabled)
	assert.False(t, post.Featured)
	require.NotNil(t, post.CreatedBy)
	require.NotNil(t, post.UpdatedBy)
	assert.Equal(t, actor, *post.CreatedBy)
	assert.Equal(t, actor, *post.UpdatedBy)
	assert.Equal(t, "Ada", post.Author.Name)
}

func TestCreateBlogPost_MissingFields(t *testing.T) {
	db := setupTestDB(t)
	s := newTestBlogPostSerializer(db)
	author := createTestAuthor(t, db, "Ada")

	input := validInput(author.ID, "a-post")
	input.Title = ""
	_, err := s.Create(input, nil)
	assert.True(t, errs.IsMissingRequiredFieldError(err))

	input = validInput(author.ID, "a-post")
	input.Content = nil
	_, err = s.Create(input, nil)
	assert.True(t, errs.IsMissingRequiredFieldError(err))

	input = validInput(uuid.Nil, "a-post")
	_, err = s.Create(input, nil)
	assert.True(t, errs.IsMissingRequiredFieldError(err))
}

func TestCreateBlogPost_UnknownAuthor(t *testing.T) {
	db := setupTestDB(t)
	s := newTestBlogPostSerializer(db)

	_, err := s.Create(validInput(uuid.New(), "a-post"), nil)
	assert.True(t, errs.IsInvalidFieldError(err))
}

func TestCreateBlogPost_DuplicateSlug(t *testing.T) {
	db := setupTestDB(t)
	s := newTestBlogPostSerializer(db)
	author := createTestAuthor(t, db, "Ada")

	_, err := s.Create(validInput(author.ID, "taken"), nil)
	require.NoError(t, err)

	_, err = s.Create(validInput(author.ID, "taken"), nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "A blog post with this slug already exists.")
}

func TestUpdateBlogPost_KeepsOwnSlug(t *testing.T) {
	db := setupTestDB(t)
	s := newTestBlogPostSerializer(db)
	author := createTestAuthor(t, db, "Ada")

	post, err := s.Create(validInput(author.ID, "mine"), nil)
	require.NoError(t, err)

	// Writing the post back with its own unchanged slug succeeds
	updated, err := s.Update(post, BlogPostInput{Slug: "mine", Title: "Renamed"}, nil)
	require.NoError(t, err)
	assert.Equal(t, "mine", updated.Slug)
	assert.Equal(t, "Renamed", updated.Title)
}

func TestUpdateBlogPost_SlugCollision(t *testing.T) {
	db := setupTestDB(t)
	s := newTestBlogPostSerializer(db)
	author := createTestAuthor(t, db, "Ada")

	_, err := s.Create(validInput(author.ID, "first"), nil)
	require.NoError(t, err)
	second, err := s.Create(validInput(author.ID, "second"), nil)
	require.NoError(t, err)

	_, err = s.Update(second, BlogPostInput{Slug: "first"}, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "A blog post with this slug already exists.")
}

func TestUpdateBlogPost_StampsUpdatedByOnly(t *testing.T) {
	db := setupTestDB(t)
	s := newTestBlogPostSerializer(db)
	author := createTestAuthor(t, db, "Ada")

	creator := uuid.New()
	post, err := s.Create(validInput(author.ID, "stamped"), &creator)
	require.NoError(t, err)

	editor := uuid.New()
	updated, err := s.Update(post, BlogPostInput{Title: "Edited"}, &editor)
	require.NoError(t, err)

	require.NotNil(t, updated.CreatedBy)
	require.NotNil(t, updated.UpdatedBy)
	assert.Equal(t, creator, *updated.CreatedBy)
	assert.Equal(t, editor, *updated.UpdatedBy)
}

func TestTagResolution_GetOrCreate(t *testing.T) {
	db := setupTestDB(t)
	s := newTestBlogPostSerializer(db)
	author := createTestAuthor(t, db, "Ada")

	input := validInput(author.ID, "one")
	input.TagNames = &[]string{"Systems"}
	first, err := s.Create(input, nil)
	require.NoError(t, err)
	require.Len(t, first.Tags, 1)
	assert.Equal(t, "Systems", first.Tags[0].Name)
	assert.Equal(t, "systems", first.Tags[0].Slug)

	// Re-using the same tag name on another post reuses the persisted tag
	input = validInput(author.ID, "two")
	input.TagNames = &[]string{"Systems"}
	second, err := s.Create(input, nil)
	require.NoError(t, err)
	require.Len(t, second.Tags, 1)
	assert.Equal(t, first.Tags[0].ID, second.Tags[0].ID)

	var count int64
	require.NoError(t, db.Model(&models.Tag{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestTagResolution_CaseSensitive(t *testing.T) {
	db := setupTestDB(t)
	s := newTestBlogPostSerializer(db)
	author := createTestAuthor(t, db, "Ada")

	input := validInput(author.ID, "case")
	input.TagNames = &[]string{"Go"}
	_, err := s.Create(input, nil)
	require.NoError(t, err)

	// Lookup is by exact name, so "go" is a distinct tag from "Go"
	input = validInput(author.ID, "case-2")
	input.TagNames = &[]string{"go"}
	_, err = s.Create(input, nil)
	require.NoError(t, err)

	var count int64
	require.NoError(t, db.Model(&models.Tag{}).Count(&count).Error)
	assert.Equal(t, int64(2), count)
}

func TestUpdateBlogPost_TagSemantics(t *testing.T) {
	db := setupTestDB(t)
	s := newTestBlogPostSerializer(db)
	author := createTestAuthor(t, db, "Ada")

	input := validInput(author.ID, "tagged")
	input.TagNames = &[]string{"Go", "Databases"}
	post, err := s.Create(input, nil)
	require.NoError(t, err)
	require.Len(t, post.Tags, 2)

	// Omitted tag_names leaves the tag set untouched
	post, err = s.Update(post, BlogPostInput{Title: "Still Tagged"}, nil)
	require.NoError(t, err)
	assert.Len(t, post.Tags, 2)

	// Provided tag_names replaces the set, it does not merge
	post, err = s.Update(post, BlogPostInput{TagNames: &[]string{"Go"}}, nil)
	require.NoError(t, err)
	require.Len(t, post.Tags, 1)
	assert.Equal(t, "Go", post.Tags[0].Name)

	// An explicit empty list clears the set
	post, err = s.Update(post, BlogPostInput{TagNames: &[]string{}}, nil)
	require.NoError(t, err)
	assert.Len(t, post.Tags, 0)
}

func TestCreateBlogPost_InvalidStatus(t *testing.T) {
	db := setupTestDB(t)
	s := newTestBlogPostSerializer(db)
	author := createTestAuthor(t, db, "Ada")

	input := validInput(author.ID, "bad-status")
	input.Status = "scheduled"
	_, err := s.Create(input, nil)
	assert.True(t, errs.IsInvalidFieldError(err))
}
