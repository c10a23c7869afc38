package serializer

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"github.com/rpupo63/blog-platform-backend/database"
	"github.com/rpupo63/blog-platform-backend/errs"
	"github.com/rpupo63/blog-platform-backend/models"
)

// BlogPostListItem is the lightweight list-view representation of a post.
// No content body, no audit user ids.
type BlogPostListItem struct {
	ID            uuid.UUID             `json:"id"`
	Title         string                `json:"title"`
	Slug          string                `json:"slug"`
	Subtitle      *string               `json:"subtitle,omitempty"`
	AuthorName    string                `json:"author_name"`
	Category      string                `json:"category"`
	Tags          []TagResponse         `json:"tags"`
	FeaturedImage *string               `json:"featured_image,omitempty"`
	Status        models.BlogPostStatus `json:"status"`
	PublishedAt   *time.Time            `json:"published_at,omitempty"`
	Featured      bool                  `json:"featured"`
	CreatedAt     time.Time             `json:"created_at"`
}

// BlogPostDetail is the full detail-view representation of a post,
// including the content payload and audit user ids.
type BlogPostDetail struct {
	ID              uuid.UUID             `json:"id"`
	Title           string                `json:"title"`
	Slug            string                `json:"slug"`
	Subtitle        *string               `json:"subtitle,omitempty"`
	Content         datatypes.JSON        `json:"content"`
	AuthorID        uuid.UUID             `json:"author_id"`
	AuthorName      string                `json:"author_name"`
	Category        string                `json:"category"`
	Tags            []TagResponse         `json:"tags"`
	FeaturedImage   *string               `json:"featured_image,omitempty"`
	MetaTitle       *string               `json:"meta_title,omitempty"`
	MetaDescription *string               `json:"meta_description,omitempty"`
	Status          models.BlogPostStatus `json:"status"`
	PublishedAt     *time.Time            `json:"published_at,omitempty"`
	CommentsEnabled bool                  `json:"comments_enabled"`
	Featured        bool                  `json:"featured"`
	CreatedAt       time.Time             `json:"created_at"`
	UpdatedAt       time.Time             `json:"updated_at"`
	CreatedByID     *uuid.UUID            `json:"created_by_id,omitempty"`
	UpdatedByID     *uuid.UUID            `json:"updated_by_id,omitempty"`
}

func NewBlogPostListItem(post *models.BlogPost) BlogPostListItem {
	return BlogPostListItem{
		ID:            post.ID,
		Title:         post.Title,
		Slug:          post.Slug,
		Subtitle:      post.Subtitle,
		AuthorName:    post.Author.Name,
		Category:      post.Category,
		Tags:          NewTagResponses(post.Tags),
		FeaturedImage: post.FeaturedImage,
		Status:        post.Status,
		PublishedAt:   post.PublishedAt,
		Featured:      post.Featured,
		CreatedAt:     post.CreatedAt,
	}
}

func NewBlogPostListItems(posts []*models.BlogPost) []BlogPostListItem {
	items := make([]BlogPostListItem, 0, len(posts))
	for _, post := range posts {
		items = append(items, NewBlogPostListItem(post))
	}
	return items
}

func NewBlogPostDetail(post *models.BlogPost) BlogPostDetail {
	return BlogPostDetail{
		ID:              post.ID,
		Title:           post.Title,
		Slug:            post.Slug,
		Subtitle:        post.Subtitle,
		Content:         post.Content,
		AuthorID:        post.AuthorID,
		AuthorName:      post.Author.Name,
		Category:        post.Category,
		Tags:            NewTagResponses(post.Tags),
		FeaturedImage:   post.FeaturedImage,
		MetaTitle:       post.MetaTitle,
		MetaDescription: post.MetaDescription,
		Status:          post.Status,
		PublishedAt:     post.PublishedAt,
		CommentsEnabled: post.CommentsEnabled,
		Featured:        post.Featured,
		CreatedAt:       post.CreatedAt,
		UpdatedAt:       post.UpdatedAt,
		CreatedByID:     post.CreatedBy,
		UpdatedByID:     post.UpdatedBy,
	}
}

// BlogPostInput is the writable shape of a post. The author is set on
// create and immutable through this path afterwards. TagNames distinguishes
// "omitted" (nil, tags untouched) from "empty" (replace with no tags).
type BlogPostInput struct {
	Title           string                `json:"title"`
	Slug            string                `json:"slug"`
	Subtitle        *string               `json:"subtitle"`
	Content         datatypes.JSON        `json:"content"`
	AuthorID        uuid.UUID             `json:"author_id"`
	Category        string                `json:"category"`
	TagNames        *[]string             `json:"tag_names"`
	FeaturedImage   *string               `json:"featured_image"`
	MetaTitle       *string               `json:"meta_title"`
	MetaDescription *string               `json:"meta_description"`
	Status          models.BlogPostStatus `json:"status"`
	PublishedAt     *time.Time            `json:"published_at"`
	CommentsEnabled *bool                 `json:"comments_enabled"`
	Featured        *bool                 `json:"featured"`
}

// BlogPostSerializer implements the write path for posts: slug validation,
// audit-field stamping and tag-name resolution.
type BlogPostSerializer struct {
	blogPostRepo *database.BlogPostRepo
	tagRepo      *database.TagRepo
	authorRepo   *database.AuthorRepo
}

func NewBlogPostSerializer(blogPostRepo *database.BlogPostRepo, tagRepo *database.TagRepo, authorRepo *database.AuthorRepo) BlogPostSerializer {
	return BlogPostSerializer{
		blogPostRepo: blogPostRepo,
		tagRepo:      tagRepo,
		authorRepo:   authorRepo,
	}
}

// Create validates the input, stamps the acting identity into created_by
// and updated_by, persists the post and sets its tag set to exactly the
// resolved tag_names.
func (s BlogPostSerializer) Create(input BlogPostInput, actor *uuid.UUID) (*models.BlogPost, error) {
	if input.Title == "" {
		return nil, errs.NewMissingRequiredFieldError("title")
	}
	if input.Slug == "" {
		return nil, errs.NewMissingRequiredFieldError("slug")
	}
	if input.Category == "" {
		return nil, errs.NewMissingRequiredFieldError("category")
	}
	if len(input.Content) == 0 {
		return nil, errs.NewMissingRequiredFieldError("content")
	}
	if input.AuthorID == uuid.Nil {
		return nil, errs.NewMissingRequiredFieldError("author_id")
	}
	if input.Status != "" && !models.ValidStatus(input.Status) {
		return nil, errs.NewInvalidFieldError("status", "must be one of draft, published, archived")
	}

	author, err := s.authorRepo.FindByID(input.AuthorID)
	if err != nil {
		return nil, errs.NewDatabaseError("find author", "author", err)
	}
	if author == nil {
		return nil, errs.NewInvalidFieldError("author_id", "author does not exist")
	}

	if err := s.validateSlug(input.Slug, nil); err != nil {
		return nil, err
	}

	blogPost := models.BlogPost{
		Title:           input.Title,
		Slug:            input.Slug,
		Subtitle:        input.Subtitle,
		Content:         input.Content,
		AuthorID:        input.AuthorID,
		Category:        input.Category,
		FeaturedImage:   input.FeaturedImage,
		MetaTitle:       input.MetaTitle,
		MetaDescription: input.MetaDescription,
		Status:          input.Status,
		PublishedAt:     input.PublishedAt,
		CommentsEnabled: true,
		CreatedBy:       actor,
		UpdatedBy:       actor,
	}
	if input.CommentsEnabled != nil {
		blogPost.CommentsEnabled = *input.CommentsEnabled
	}
	if input.Featured != nil {
		blogPost.Featured = *input.Featured
	}

	if err := s.blogPostRepo.Add(&blogPost); err != nil {
		return nil, errs.NewDatabaseError("create blog post", "blog_post", err)
	}

	if input.TagNames != nil {
		tags, err := s.resolveTags(*input.TagNames)
		if err != nil {
			return nil, err
		}
		if err := s.blogPostRepo.SetTags(&blogPost, tags); err != nil {
			return nil, errs.NewDatabaseError("set blog post tags", "blog_post", err)
		}
	}

	created, err := s.blogPostRepo.FindByID(blogPost.ID)
	if err != nil {
		return nil, errs.NewDatabaseError("find created blog post", "blog_post", err)
	}
	return created, nil
}

// Update applies the provided fields to an existing post, stamps updated_by
// and replaces the tag set when tag_names is present (an empty list clears
// it; omitting the field leaves tags untouched). The owning author is not
// writable through this path.
func (s BlogPostSerializer) Update(existing *models.BlogPost, input BlogPostInput, actor *uuid.UUID) (*models.BlogPost, error) {
	if input.Status != "" && !models.ValidStatus(input.Status) {
		return nil, errs.NewInvalidFieldError("status", "must be one of draft, published, archived")
	}
	if input.Slug != "" {
		if err := s.validateSlug(input.Slug, &existing.ID); err != nil {
			return nil, err
		}
		existing.Slug = input.Slug
	}

	if input.Title != "" {
		existing.Title = input.Title
	}
	if input.Subtitle != nil {
		existing.Subtitle = input.Subtitle
	}
	if len(input.Content) > 0 {
		existing.Content = input.Content
	}
	if input.Category != "" {
		existing.Category = input.Category
	}
	if input.FeaturedImage != nil {
		existing.FeaturedImage = input.FeaturedImage
	}
	if input.MetaTitle != nil {
		existing.MetaTitle = input.MetaTitle
	}
	if input.MetaDescription != nil {
		existing.MetaDescription = input.MetaDescription
	}
	if input.Status != "" {
		existing.Status = input.Status
	}
	if input.PublishedAt != nil {
		existing.PublishedAt = input.PublishedAt
	}
	if input.CommentsEnabled != nil {
		existing.CommentsEnabled = *input.CommentsEnabled
	}
	if input.Featured != nil {
		existing.Featured = *input.Featured
	}
	existing.UpdatedBy = actor

	if err := s.blogPostRepo.Update(existing); err != nil {
		return nil, errs.NewDatabaseError("update blog post", "blog_post", err)
	}

	if input.TagNames != nil {
		tags, err := s.resolveTags(*input.TagNames)
		if err != nil {
			return nil, err
		}
		if err := s.blogPostRepo.SetTags(existing, tags); err != nil {
			return nil, errs.NewDatabaseError("set blog post tags", "blog_post", err)
		}
	}

	updated, err := s.blogPostRepo.FindByID(existing.ID)
	if err != nil {
		return nil, errs.NewDatabaseError("find updated blog post", "blog_post", err)
	}
	return updated, nil
}

// validateSlug rejects a slug that belongs to a different existing post.
// A post keeping its own slug passes.
func (s BlogPostSerializer) validateSlug(slug string, selfID *uuid.UUID) error {
	existing, err := s.blogPostRepo.FindBySlug(slug)
	if err != nil {
		return errs.NewDatabaseError("find blog post by slug", "blog_post", err)
	}
	if existing == nil {
		return nil
	}
	if selfID != nil && existing.ID == *selfID {
		return nil
	}
	return errs.NewBadRequestErrorWithField("A blog post with this slug already exists.", "slug", "")
}

// resolveTags trims each name and resolves it via get-or-create. Lookup is
// by exact name; the slug is only derived for tags that do not exist yet.
func (s BlogPostSerializer) resolveTags(names []string) ([]*models.Tag, error) {
	tags := make([]*models.Tag, 0, len(names))
	seen := make(map[string]bool, len(names))
	for _, name := range names {
		trimmed := strings.TrimSpace(name)
		if trimmed == "" || seen[trimmed] {
			continue
		}
		seen[trimmed] = true

		tag, err := s.tagRepo.GetOrCreateByName(trimmed, Slugify(trimmed))
		if err != nil {
			return nil, errs.NewDatabaseError("get or create tag", "tag", err)
		}
		tags = append(tags, tag)
	}
	return tags, nil
}
