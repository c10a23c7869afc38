package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// BlogPostStatus is the publication state of a post.
type BlogPostStatus string

const (
	StatusDraft     BlogPostStatus = "draft"
	StatusPublished BlogPostStatus = "published"
	StatusArchived  BlogPostStatus = "archived"
)

// ValidStatus reports whether s is one of the known publication states.
func ValidStatus(s BlogPostStatus) bool {
	switch s {
	case StatusDraft, StatusPublished, StatusArchived:
		return true
	}
	return false
}

// BlogPost represents a complete blog post with metadata. Content is an
// arbitrary JSON document, uninterpreted by the API layer.
type BlogPost struct {
	ID              uuid.UUID      `json:"id" db:"id" gorm:"type:uuid;primaryKey;not null"`
	Title           string         `json:"title" db:"title" gorm:"type:text;not null"`
	Slug            string         `json:"slug" db:"slug" gorm:"type:text;not null;uniqueIndex"`
	Subtitle        *string        `json:"subtitle,omitempty" db:"subtitle" gorm:"type:text"`
	Content         datatypes.JSON `json:"content" db:"content" gorm:"not null"`
	AuthorID        uuid.UUID      `json:"author_id" db:"author_id" gorm:"type:uuid;not null;index"`
	Category        string         `json:"category" db:"category" gorm:"type:text;not null;index"`
	FeaturedImage   *string        `json:"featured_image,omitempty" db:"featured_image" gorm:"type:text"`
	MetaTitle       *string        `json:"meta_title,omitempty" db:"meta_title" gorm:"type:text"`
	MetaDescription *string        `json:"meta_description,omitempty" db:"meta_description" gorm:"type:text"`
	Status          BlogPostStatus `json:"status" db:"status" gorm:"type:text;not null;default:draft;index"`
	PublishedAt     *time.Time     `json:"published_at,omitempty" db:"published_at" gorm:"index"`
	CommentsEnabled bool           `json:"comments_enabled" db:"comments_enabled" gorm:"not null;default:true"`
	Featured        bool           `json:"featured" db:"featured" gorm:"not null;default:false"`
	CreatedAt       time.Time      `json:"created_at" db:"created_at" gorm:"not null"`
	UpdatedAt       time.Time      `json:"updated_at" db:"updated_at" gorm:"not null"`
	CreatedBy       *uuid.UUID     `json:"created_by,omitempty" db:"created_by" gorm:"type:uuid"`
	UpdatedBy       *uuid.UUID     `json:"updated_by,omitempty" db:"updated_by" gorm:"type:uuid"`

	Author   Author    `json:"author,omitempty" gorm:"foreignKey:AuthorID;references:ID"`
	Tags     []Tag     `json:"tags,omitempty" gorm:"many2many:blog_post_tags;"`
	Comments []Comment `json:"comments,omitempty" gorm:"foreignKey:BlogPostID;references:ID;constraint:OnDelete:CASCADE"`
}

func (p *BlogPost) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	if p.Status == "" {
		p.Status = StatusDraft
	}
	return nil
}
