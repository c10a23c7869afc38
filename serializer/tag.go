package serializer

import (
	"strings"

	"github.com/google/uuid"

	"github.com/rpupo63/blog-platform-backend/models"
)

// TagResponse is the wire representation of a tag
type TagResponse struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
	Slug string    `json:"slug"`
}

func NewTagResponse(tag models.Tag) TagResponse {
	return TagResponse{
		ID:   tag.ID,
		Name: tag.Name,
		Slug: tag.Slug,
	}
}

func NewTagResponses(tags []models.Tag) []TagResponse {
	responses := make([]TagResponse, 0, len(tags))
	for _, tag := range tags {
		responses = append(responses, NewTagResponse(tag))
	}
	return responses
}

// Slugify derives a URL-safe slug from a tag name: trim, lowercase,
// spaces to hyphens.
func Slugify(name string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(name)), " ", "-")
}
