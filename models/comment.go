package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Comment represents a reader comment on a blog post. Comments start out
// unapproved and stay hidden from public listings until moderation flips
// IsApproved.
type Comment struct {
	ID         uuid.UUID `json:"id" db:"id" gorm:"type:uuid;primaryKey;not null"`
	BlogPostID uuid.UUID `json:"blog_post_id" db:"blog_post_id" gorm:"type:uuid;not null;index:idx_comment_post_created"`
	Name       string    `json:"name" db:"name" gorm:"type:text;not null"`
	Email      string    `json:"email" db:"email" gorm:"type:text;not null"`
	Content    string    `json:"content" db:"content" gorm:"type:text;not null"`
	IsApproved bool      `json:"is_approved" db:"is_approved" gorm:"not null;default:false;index"`
	CreatedAt  time.Time `json:"created_at" db:"created_at" gorm:"not null;index:idx_comment_post_created"`
	UpdatedAt  time.Time `json:"updated_at" db:"updated_at" gorm:"not null"`

	BlogPost BlogPost `json:"blog_post,omitempty" gorm:"foreignKey:BlogPostID;references:ID"`
}

func (c *Comment) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}
