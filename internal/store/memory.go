package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/weienlee/wset/internal/models"
)

// MemoryStoryStore is an in-memory StoryStore used by tests and local
// development. Mutations hold the lock for their whole read-update
// cycle, giving the same per-field atomicity as the Mongo adapter.
type MemoryStoryStore struct {
	mu      sync.RWMutex
	stories map[primitive.ObjectID]models.Story
	order   []primitive.ObjectID
}

// NewMemoryStoryStore creates an empty MemoryStoryStore.
func NewMemoryStoryStore() *MemoryStoryStore {
	return &MemoryStoryStore{stories: map[primitive.ObjectID]models.Story{}}
}

func (s *MemoryStoryStore) All(ctx context.Context) ([]models.Story, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stories := make([]models.Story, 0, len(s.order))
	for _, id := range s.order {
		stories = append(stories, copyStory(s.stories[id]))
	}
	return stories, nil
}

func (s *MemoryStoryStore) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Story, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	story, ok := s.stories[id]
	if !ok {
		return nil, ErrNotFound
	}
	c := copyStory(story)
	return &c, nil
}

func (s *MemoryStoryStore) Find(ctx context.Context, f StoryFilter) ([]models.Story, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	matched := []models.Story{}
	for _, story := range s.stories {
		if story.IsActive != f.IsActive || !story.CreatedAt.Before(f.Before) {
			continue
		}
		if f.Tag != "" && !containsTag(story.Tags, f.Tag) {
			continue
		}
		matched = append(matched, copyStory(story))
	}
	sort.Slice(matched, func(i, j int) bool {
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})
	if f.Limit > 0 && int64(len(matched)) > f.Limit {
		matched = matched[:f.Limit]
	}
	return matched, nil
}

func (s *MemoryStoryStore) Insert(ctx context.Context, story *models.Story) (*models.Story, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if story.ID.IsZero() {
		story.ID = primitive.NewObjectID()
	}
	if story.CreatedAt.IsZero() {
		story.CreatedAt = time.Now()
	}
	s.stories[story.ID] = copyStory(*story)
	s.order = append(s.order, story.ID)
	return story, nil
}

func (s *MemoryStoryStore) SetText(ctx context.Context, id primitive.ObjectID, text string) (*models.Story, error) {
	return s.update(id, func(story *models.Story) { story.Text = text })
}

func (s *MemoryStoryStore) SetTags(ctx context.Context, id primitive.ObjectID, tags []string) (*models.Story, error) {
	return s.update(id, func(story *models.Story) { story.Tags = append([]string(nil), tags...) })
}

func (s *MemoryStoryStore) Archive(ctx context.Context, id primitive.ObjectID) (*models.Story, error) {
	return s.update(id, func(story *models.Story) { story.IsActive = false })
}

func (s *MemoryStoryStore) IncrementPoints(ctx context.Context, id primitive.ObjectID, delta int) (*models.Story, error) {
	return s.update(id, func(story *models.Story) { story.Points += delta })
}

func (s *MemoryStoryStore) PushComment(ctx context.Context, id, commentID primitive.ObjectID) (*models.Story, error) {
	return s.update(id, func(story *models.Story) { story.AppendComment(commentID) })
}

func (s *MemoryStoryStore) SetComments(ctx context.Context, id primitive.ObjectID, commentIDs []primitive.ObjectID) (*models.Story, error) {
	return s.update(id, func(story *models.Story) {
		story.CommentIDs = append([]primitive.ObjectID(nil), commentIDs...)
	})
}

func (s *MemoryStoryStore) update(id primitive.ObjectID, mutate func(*models.Story)) (*models.Story, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	story, ok := s.stories[id]
	if !ok {
		return nil, ErrNotFound
	}
	mutate(&story)
	s.stories[id] = copyStory(story)
	c := copyStory(story)
	return &c, nil
}

func copyStory(s models.Story) models.Story {
	s.Tags = append([]string(nil), s.Tags...)
	s.CommentIDs = append([]primitive.ObjectID(nil), s.CommentIDs...)
	return s
}

func containsTag(tags []string, tag string) bool {
	for _, t := range tags {
		if t == tag {
			return true
		}
	}
	return false
}

// MemoryCommentStore is an in-memory CommentStore used by tests.
type MemoryCommentStore struct {
	mu       sync.RWMutex
	comments map[primitive.ObjectID]models.Comment
}

// NewMemoryCommentStore creates an empty MemoryCommentStore.
func NewMemoryCommentStore() *MemoryCommentStore {
	return &MemoryCommentStore{comments: map[primitive.ObjectID]models.Comment{}}
}

func (s *MemoryCommentStore) Insert(ctx context.Context, comment *models.Comment) (*models.Comment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if comment.ID.IsZero() {
		comment.ID = primitive.NewObjectID()
	}
	if comment.CreatedAt.IsZero() {
		comment.CreatedAt = time.Now()
	}
	s.comments[comment.ID] = *comment
	return comment, nil
}

func (s *MemoryCommentStore) FindByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.Comment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	comments := make([]models.Comment, 0, len(ids))
	for _, id := range ids {
		if c, ok := s.comments[id]; ok {
			comments = append(comments, c)
		}
	}
	return comments, nil
}
