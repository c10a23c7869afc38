package database

import (
	"gorm.io/gorm"
)

type Database struct {
	authorRepo   *AuthorRepo
	tagRepo      *TagRepo
	blogPostRepo *BlogPostRepo
	commentRepo  *CommentRepo
}

// New initializes a new Database struct with each repository using a shared GORM database instance
func New(db *gorm.DB) Database {
	return Database{
		authorRepo:   NewAuthorRepo(db),
		tagRepo:      NewTagRepo(db),
		blogPostRepo: NewBlogPostRepo(db),
		commentRepo:  NewCommentRepo(db),
	}
}

// Accessor methods for each repository

func (d Database) AuthorRepo() *AuthorRepo {
	return d.authorRepo
}

func (d Database) TagRepo() *TagRepo {
	return d.tagRepo
}

func (d Database) BlogPostRepo() *BlogPostRepo {
	return d.blogPostRepo
}

func (d Database) CommentRepo() *CommentRepo {
	return d.commentRepo
}
