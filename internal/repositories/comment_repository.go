package repositories

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/weienlee/wset/internal/apperrors"
	"github.com/weienlee/wset/internal/models"
	"github.com/weienlee/wset/internal/store"
)

// CommentRepository creates the comment documents that stories link to.
type CommentRepository interface {
	CreateNew(ctx context.Context, storyID primitive.ObjectID, text, username string) (*models.Comment, error)
}

type commentRepository struct {
	comments store.CommentStore
}

// NewCommentRepository creates a CommentRepository over the given store.
func NewCommentRepository(comments store.CommentStore) CommentRepository {
	return &commentRepository{comments: comments}
}

func (r *commentRepository) CreateNew(ctx context.Context, storyID primitive.ObjectID, text, username string) (*models.Comment, error) {
	if text == "" {
		return nil, apperrors.Forbidden("You cannot leave the text blank")
	}
	comment := &models.Comment{
		StoryID:  storyID,
		Text:     text,
		Username: username,
	}
	created, err := r.comments.Insert(ctx, comment)
	if err != nil {
		return nil, apperrors.Internal("Could not create comment")
	}
	return created, nil
}
