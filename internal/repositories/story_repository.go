package repositories

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/weienlee/wset/internal/apperrors"
	"github.com/weienlee/wset/internal/models"
	"github.com/weienlee/wset/internal/store"
)

// storyPageSize caps a single page of the story feed.
const storyPageSize = 50

// StoryRepository encapsulates story lifecycle, query and authorization
// logic. Every operation resolves to a payload or an *apperrors.Error
// envelope, never a bare store error.
type StoryRepository interface {
	GetAll(ctx context.Context) ([]models.Story, error)
	// GetStories pages backward in time: up to 50 stories created
	// strictly before startDate (zero means now), newest first,
	// optionally restricted to one tag.
	GetStories(ctx context.Context, tag string, isActive bool, startDate time.Time) ([]models.Story, error)
	CreateNew(ctx context.Context, text, image, userID, username string, tags []string) (*models.Story, error)
	GetStory(ctx context.Context, storyID string) (*models.ExpandedStory, error)
	ArchiveStory(ctx context.Context, storyID string) (*models.Story, error)
	UpdateTags(ctx context.Context, storyID string, tags []string) (*models.Story, error)
	UpdateText(ctx context.Context, storyID, username, text string) (*models.Story, error)
	AddComment(ctx context.Context, storyID string, commentID primitive.ObjectID) (*models.Story, error)
	RemoveComment(ctx context.Context, storyID string, commentID primitive.ObjectID) (*models.Story, error)
	UpdatePoints(ctx context.Context, storyID string, delta int) (*models.Story, error)
}

type storyRepository struct {
	stories  store.StoryStore
	comments store.CommentStore
	now      func() time.Time
}

// NewStoryRepository creates a StoryRepository over the given stores.
func NewStoryRepository(stories store.StoryStore, comments store.CommentStore) StoryRepository {
	return &storyRepository{stories: stories, comments: comments, now: time.Now}
}

func (r *storyRepository) GetAll(ctx context.Context) ([]models.Story, error) {
	stories, err := r.stories.All(ctx)
	if err != nil {
		return nil, apperrors.Internal("Unknown error")
	}
	return stories, nil
}

func (r *storyRepository) GetStories(ctx context.Context, tag string, isActive bool, startDate time.Time) ([]models.Story, error) {
	if startDate.IsZero() {
		startDate = r.now()
	}
	stories, err := r.stories.Find(ctx, store.StoryFilter{
		Tag:      tag,
		IsActive: isActive,
		Before:   startDate,
		Limit:    storyPageSize,
	})
	if err != nil {
		return nil, apperrors.Internal("Unknown error")
	}
	return stories, nil
}

func (r *storyRepository) CreateNew(ctx context.Context, text, image, userID, username string, tags []string) (*models.Story, error) {
	if text == "" {
		return nil, apperrors.Forbidden("You cannot leave the text blank")
	}
	if image == "" {
		return nil, apperrors.Forbidden("Please upload a picture")
	}
	if tags == nil {
		tags = []string{}
	}
	story := &models.Story{
		Text:       text,
		Image:      image,
		UserID:     userID,
		Username:   username,
		CreatedAt:  r.now(),
		IsActive:   true,
		Points:     0,
		Tags:       tags,
		CommentIDs: []primitive.ObjectID{},
	}
	created, err := r.stories.Insert(ctx, story)
	if err != nil {
		return nil, apperrors.Internal("Could not create story")
	}
	return created, nil
}

func (r *storyRepository) GetStory(ctx context.Context, storyID string) (*models.ExpandedStory, error) {
	id, err := parseStoryID(storyID)
	if err != nil {
		return nil, err
	}
	story, err := r.stories.FindByID(ctx, id)
	if err != nil {
		return nil, storyLookupError(err)
	}
	comments, err := r.comments.FindByIDs(ctx, story.CommentIDs)
	if err != nil {
		return nil, apperrors.Internal("Unknown error")
	}
	return &models.ExpandedStory{Story: *story, Comments: comments}, nil
}

func (r *storyRepository) ArchiveStory(ctx context.Context, storyID string) (*models.Story, error) {
	id, err := parseStoryID(storyID)
	if err != nil {
		return nil, err
	}
	story, err := r.stories.Archive(ctx, id)
	if err != nil {
		return nil, storyMutationError(err, "Could not archive story")
	}
	return story, nil
}

func (r *storyRepository) UpdateTags(ctx context.Context, storyID string, tags []string) (*models.Story, error) {
	id, err := parseStoryID(storyID)
	if err != nil {
		return nil, err
	}
	if tags == nil {
		tags = []string{}
	}
	story, err := r.stories.SetTags(ctx, id, tags)
	if err != nil {
		return nil, storyMutationError(err, "Could not update tags")
	}
	return story, nil
}

func (r *storyRepository) UpdateText(ctx context.Context, storyID, username, text string) (*models.Story, error) {
	if text == "" {
		return nil, apperrors.Forbidden("You cannot leave the text blank")
	}
	id, err := parseStoryID(storyID)
	if err != nil {
		return nil, err
	}
	story, err := r.stories.FindByID(ctx, id)
	if err != nil {
		return nil, storyLookupError(err)
	}
	if story.Username != username {
		return nil, apperrors.Forbidden("Operation unauthorized")
	}
	updated, err := r.stories.SetText(ctx, id, text)
	if err != nil {
		return nil, storyMutationError(err, "Could not update text")
	}
	return updated, nil
}

func (r *storyRepository) AddComment(ctx context.Context, storyID string, commentID primitive.ObjectID) (*models.Story, error) {
	id, err := parseStoryID(storyID)
	if err != nil {
		return nil, err
	}
	story, err := r.stories.PushComment(ctx, id, commentID)
	if err != nil {
		return nil, storyMutationError(err, "Could not add comment to story")
	}
	return story, nil
}

func (r *storyRepository) RemoveComment(ctx context.Context, storyID string, commentID primitive.ObjectID) (*models.Story, error) {
	id, err := parseStoryID(storyID)
	if err != nil {
		return nil, err
	}
	story, err := r.stories.FindByID(ctx, id)
	if err != nil {
		return nil, storyLookupError(err)
	}
	// Removing an unlinked comment succeeds without touching the store.
	if !story.UnlinkComment(commentID) {
		return story, nil
	}
	updated, err := r.stories.SetComments(ctx, id, story.CommentIDs)
	if err != nil {
		return nil, storyMutationError(err, "Could not remove comment from story")
	}
	return updated, nil
}

func (r *storyRepository) UpdatePoints(ctx context.Context, storyID string, delta int) (*models.Story, error) {
	id, err := parseStoryID(storyID)
	if err != nil {
		return nil, err
	}
	story, err := r.stories.IncrementPoints(ctx, id, delta)
	if err != nil {
		return nil, storyMutationError(err, "Could not update points")
	}
	return story, nil
}

// parseStoryID maps a malformed id onto the same envelope as a missing
// one: a caller cannot tell them apart.
func parseStoryID(storyID string) (primitive.ObjectID, error) {
	id, err := primitive.ObjectIDFromHex(storyID)
	if err != nil {
		return primitive.NilObjectID, apperrors.NotFound("Could not find story")
	}
	return id, nil
}

func storyLookupError(err error) error {
	if err == store.ErrNotFound {
		return apperrors.NotFound("Could not find story")
	}
	return apperrors.Internal("Unknown error")
}

func storyMutationError(err error, message string) error {
	if err == store.ErrNotFound {
		return apperrors.NotFound("Could not find story")
	}
	return apperrors.Internal(message)
}
