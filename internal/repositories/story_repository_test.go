package repositories

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/weienlee/wset/internal/apperrors"
	"github.com/weienlee/wset/internal/models"
	"github.com/weienlee/wset/internal/store"
)

func newTestRepo() (*storyRepository, *store.MemoryStoryStore, *store.MemoryCommentStore) {
	stories := store.NewMemoryStoryStore()
	comments := store.NewMemoryCommentStore()
	repo := NewStoryRepository(stories, comments).(*storyRepository)
	return repo, stories, comments
}

func requireEnvelope(t *testing.T, err error, code int, message string) {
	t.Helper()
	r := require.New(t)
	r.Error(err)
	r.Equal(code, apperrors.CodeOf(err))
	r.Equal(message, apperrors.MessageOf(err))
}

func TestCreateNew(t *testing.T) {
	r := require.New(t)
	repo, _, _ := newTestRepo()
	ctx := context.Background()

	story, err := repo.CreateNew(ctx, "hello", "img1", "1", "alice", []string{"a", "b"})
	r.NoError(err)
	r.False(story.ID.IsZero())
	r.True(story.IsActive)
	r.Equal(0, story.Points)
	r.Equal([]string{"a", "b"}, story.Tags)
	r.Equal("alice", story.Username)
	r.Equal("1", story.UserID)
	r.False(story.CreatedAt.IsZero())
	r.Empty(story.CommentIDs)
}

func TestCreateNewBlankFields(t *testing.T) {
	r := require.New(t)
	repo, stories, _ := newTestRepo()
	ctx := context.Background()

	_, err := repo.CreateNew(ctx, "", "img1", "1", "alice", nil)
	requireEnvelope(t, err, http.StatusForbidden, "You cannot leave the text blank")

	_, err = repo.CreateNew(ctx, "hello", "", "1", "alice", nil)
	requireEnvelope(t, err, http.StatusForbidden, "Please upload a picture")

	// Nothing persisted on either failure.
	all, err := stories.All(ctx)
	r.NoError(err)
	r.Empty(all)
}

func TestGetStoriesPaging(t *testing.T) {
	r := require.New(t)
	repo, stories, _ := newTestRepo()
	ctx := context.Background()
	base := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)

	for i := 0; i < 55; i++ {
		_, err := stories.Insert(ctx, &models.Story{
			Text:      "s",
			Image:     "img",
			IsActive:  true,
			Tags:      []string{"go"},
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		})
		r.NoError(err)
	}

	page, err := repo.GetStories(ctx, "", true, base.Add(2*time.Hour))
	r.NoError(err)
	r.Len(page, 50)
	for i := 1; i < len(page); i++ {
		r.True(page[i-1].CreatedAt.After(page[i].CreatedAt))
	}

	// Page backward using the oldest createdAt of the first page.
	rest, err := repo.GetStories(ctx, "", true, page[len(page)-1].CreatedAt)
	r.NoError(err)
	r.Len(rest, 5)
}

func TestGetStoriesTagAndActivityFilter(t *testing.T) {
	r := require.New(t)
	repo, stories, _ := newTestRepo()
	ctx := context.Background()
	base := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)

	_, err := stories.Insert(ctx, &models.Story{Text: "a", Image: "i", IsActive: true, Tags: []string{"go"}, CreatedAt: base})
	r.NoError(err)
	_, err = stories.Insert(ctx, &models.Story{Text: "b", Image: "i", IsActive: true, Tags: []string{"rust"}, CreatedAt: base.Add(time.Minute)})
	r.NoError(err)
	_, err = stories.Insert(ctx, &models.Story{Text: "c", Image: "i", IsActive: false, Tags: []string{"go"}, CreatedAt: base.Add(2 * time.Minute)})
	r.NoError(err)

	active, err := repo.GetStories(ctx, "go", true, base.Add(time.Hour))
	r.NoError(err)
	r.Len(active, 1)
	r.Equal("a", active[0].Text)

	archived, err := repo.GetStories(ctx, "go", false, base.Add(time.Hour))
	r.NoError(err)
	r.Len(archived, 1)
	r.Equal("c", archived[0].Text)
}

func TestGetStoriesDefaultCursorIsNow(t *testing.T) {
	r := require.New(t)
	repo, stories, _ := newTestRepo()
	ctx := context.Background()

	now := time.Date(2020, 6, 1, 12, 0, 0, 0, time.UTC)
	repo.now = func() time.Time { return now }

	_, err := stories.Insert(ctx, &models.Story{Text: "old", Image: "i", IsActive: true, CreatedAt: now.Add(-time.Hour)})
	r.NoError(err)
	_, err = stories.Insert(ctx, &models.Story{Text: "future", Image: "i", IsActive: true, CreatedAt: now.Add(time.Hour)})
	r.NoError(err)

	page, err := repo.GetStories(ctx, "", true, time.Time{})
	r.NoError(err)
	r.Len(page, 1)
	r.Equal("old", page[0].Text)
}

func TestGetStoryExpandsComments(t *testing.T) {
	r := require.New(t)
	repo, _, comments := newTestRepo()
	ctx := context.Background()

	story, err := repo.CreateNew(ctx, "hello", "img", "1", "alice", nil)
	r.NoError(err)

	c1, err := comments.Insert(ctx, &models.Comment{StoryID: story.ID, Text: "first", Username: "bob"})
	r.NoError(err)
	c2, err := comments.Insert(ctx, &models.Comment{StoryID: story.ID, Text: "second", Username: "carol"})
	r.NoError(err)

	_, err = repo.AddComment(ctx, story.ID.Hex(), c1.ID)
	r.NoError(err)
	_, err = repo.AddComment(ctx, story.ID.Hex(), c2.ID)
	r.NoError(err)

	expanded, err := repo.GetStory(ctx, story.ID.Hex())
	r.NoError(err)
	r.Len(expanded.Comments, 2)
	r.Equal("first", expanded.Comments[0].Text)
	r.Equal("second", expanded.Comments[1].Text)
}

func TestRemoveComment(t *testing.T) {
	r := require.New(t)
	repo, _, comments := newTestRepo()
	ctx := context.Background()

	story, err := repo.CreateNew(ctx, "hello", "img", "1", "alice", nil)
	r.NoError(err)

	c1, err := comments.Insert(ctx, &models.Comment{StoryID: story.ID, Text: "first", Username: "bob"})
	r.NoError(err)
	_, err = repo.AddComment(ctx, story.ID.Hex(), c1.ID)
	r.NoError(err)

	// Removing an unlinked comment is a no-op that still succeeds.
	unchanged, err := repo.RemoveComment(ctx, story.ID.Hex(), primitive.NewObjectID())
	r.NoError(err)
	r.Equal([]primitive.ObjectID{c1.ID}, unchanged.CommentIDs)

	removed, err := repo.RemoveComment(ctx, story.ID.Hex(), c1.ID)
	r.NoError(err)
	r.Empty(removed.CommentIDs)

	expanded, err := repo.GetStory(ctx, story.ID.Hex())
	r.NoError(err)
	r.Empty(expanded.Comments)
}

func TestArchiveStoryIsIdempotent(t *testing.T) {
	r := require.New(t)
	repo, _, _ := newTestRepo()
	ctx := context.Background()

	story, err := repo.CreateNew(ctx, "hello", "img", "1", "alice", nil)
	r.NoError(err)

	archived, err := repo.ArchiveStory(ctx, story.ID.Hex())
	r.NoError(err)
	r.False(archived.IsActive)

	again, err := repo.ArchiveStory(ctx, story.ID.Hex())
	r.NoError(err)
	r.False(again.IsActive)
}

func TestUpdateText(t *testing.T) {
	r := require.New(t)
	repo, _, _ := newTestRepo()
	ctx := context.Background()

	story, err := repo.CreateNew(ctx, "hello", "img", "1", "alice", nil)
	r.NoError(err)

	_, err = repo.UpdateText(ctx, story.ID.Hex(), "alice", "")
	requireEnvelope(t, err, http.StatusForbidden, "You cannot leave the text blank")

	_, err = repo.UpdateText(ctx, story.ID.Hex(), "mallory", "hijacked")
	requireEnvelope(t, err, http.StatusForbidden, "Operation unauthorized")

	// Text untouched after the refused edit.
	current, err := repo.GetStory(ctx, story.ID.Hex())
	r.NoError(err)
	r.Equal("hello", current.Text)

	updated, err := repo.UpdateText(ctx, story.ID.Hex(), "alice", "edited")
	r.NoError(err)
	r.Equal("edited", updated.Text)
}

func TestUpdateTagsReplacesWholesale(t *testing.T) {
	r := require.New(t)
	repo, _, _ := newTestRepo()
	ctx := context.Background()

	story, err := repo.CreateNew(ctx, "hello", "img", "1", "alice", []string{"a", "b"})
	r.NoError(err)

	updated, err := repo.UpdateTags(ctx, story.ID.Hex(), []string{"c"})
	r.NoError(err)
	r.Equal([]string{"c"}, updated.Tags)

	cleared, err := repo.UpdateTags(ctx, story.ID.Hex(), nil)
	r.NoError(err)
	r.Empty(cleared.Tags)
}

func TestUpdatePointsAccumulates(t *testing.T) {
	r := require.New(t)
	repo, _, _ := newTestRepo()
	ctx := context.Background()

	story, err := repo.CreateNew(ctx, "hello", "img", "1", "alice", nil)
	r.NoError(err)

	_, err = repo.UpdatePoints(ctx, story.ID.Hex(), 5)
	r.NoError(err)
	updated, err := repo.UpdatePoints(ctx, story.ID.Hex(), -2)
	r.NoError(err)
	r.Equal(3, updated.Points)
}

func TestOperationsOnMissingStory(t *testing.T) {
	repo, _, _ := newTestRepo()
	ctx := context.Background()
	missing := primitive.NewObjectID().Hex()

	_, err := repo.GetStory(ctx, missing)
	requireEnvelope(t, err, http.StatusNotFound, "Could not find story")

	_, err = repo.ArchiveStory(ctx, missing)
	requireEnvelope(t, err, http.StatusNotFound, "Could not find story")

	_, err = repo.UpdateTags(ctx, missing, []string{"a"})
	requireEnvelope(t, err, http.StatusNotFound, "Could not find story")

	_, err = repo.UpdateText(ctx, missing, "alice", "x")
	requireEnvelope(t, err, http.StatusNotFound, "Could not find story")

	_, err = repo.AddComment(ctx, missing, primitive.NewObjectID())
	requireEnvelope(t, err, http.StatusNotFound, "Could not find story")

	_, err = repo.RemoveComment(ctx, missing, primitive.NewObjectID())
	requireEnvelope(t, err, http.StatusNotFound, "Could not find story")

	_, err = repo.UpdatePoints(ctx, missing, 1)
	requireEnvelope(t, err, http.StatusNotFound, "Could not find story")

	// A malformed id is indistinguishable from a missing one.
	_, err = repo.GetStory(ctx, "not-a-hex-id")
	requireEnvelope(t, err, http.StatusNotFound, "Could not find story")
}

func TestArchiveScenario(t *testing.T) {
	r := require.New(t)
	repo, _, _ := newTestRepo()
	ctx := context.Background()

	// Stepping clock: every now() call lands strictly after the last.
	current := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	repo.now = func() time.Time {
		current = current.Add(time.Second)
		return current
	}

	story, err := repo.CreateNew(ctx, "hi", "img1", "1", "alice", []string{"a", "b"})
	r.NoError(err)
	r.Equal(0, story.Points)

	archived, err := repo.ArchiveStory(ctx, story.ID.Hex())
	r.NoError(err)
	r.False(archived.IsActive)

	inactive, err := repo.GetStories(ctx, "a", false, time.Time{})
	r.NoError(err)
	r.Len(inactive, 1)
	r.Equal(story.ID, inactive[0].ID)

	active, err := repo.GetStories(ctx, "a", true, time.Time{})
	r.NoError(err)
	r.Empty(active)
}
