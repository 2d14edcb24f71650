// Package store defines the document-store capability the repositories
// consume: typed find/insert/update operations over the stories and
// comments collections. A MongoDB implementation backs production; an
// in-memory implementation backs tests.
package store

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/weienlee/wset/internal/models"
)

// ErrNotFound is returned when no document matches the requested id.
var ErrNotFound = errors.New("store: document not found")

// StoryFilter selects stories for a query page.
type StoryFilter struct {
	Tag      string // empty means any tag
	IsActive bool
	Before   time.Time // created strictly before this instant
	Limit    int64
}

// StoryStore is the document-store adapter for the stories collection.
// Mutations are field-scoped and atomic at the store; each returns the
// updated document.
type StoryStore interface {
	All(ctx context.Context) ([]models.Story, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Story, error)
	Find(ctx context.Context, f StoryFilter) ([]models.Story, error)
	// Insert assigns the id and created-at timestamp when unset.
	Insert(ctx context.Context, story *models.Story) (*models.Story, error)
	SetText(ctx context.Context, id primitive.ObjectID, text string) (*models.Story, error)
	SetTags(ctx context.Context, id primitive.ObjectID, tags []string) (*models.Story, error)
	Archive(ctx context.Context, id primitive.ObjectID) (*models.Story, error)
	IncrementPoints(ctx context.Context, id primitive.ObjectID, delta int) (*models.Story, error)
	PushComment(ctx context.Context, id, commentID primitive.ObjectID) (*models.Story, error)
	SetComments(ctx context.Context, id primitive.ObjectID, commentIDs []primitive.ObjectID) (*models.Story, error)
}

// CommentStore is the document-store adapter for the comments collection.
type CommentStore interface {
	Insert(ctx context.Context, comment *models.Comment) (*models.Comment, error)
	// FindByIDs resolves comment references, preserving the order of ids.
	// References with no backing document are skipped.
	FindByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.Comment, error)
}
