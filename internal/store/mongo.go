package store

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/weienlee/wset/internal/models"
)

// MongoStoryStore implements StoryStore over a MongoDB collection.
type MongoStoryStore struct {
	collection *mongo.Collection
}

// NewMongoStoryStore creates a MongoStoryStore over the "stories" collection.
func NewMongoStoryStore(db *mongo.Database) *MongoStoryStore {
	return &MongoStoryStore{collection: db.Collection("stories")}
}

func (s *MongoStoryStore) All(ctx context.Context) ([]models.Story, error) {
	cursor, err := s.collection.Find(ctx, bson.D{})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	stories := []models.Story{}
	if err = cursor.All(ctx, &stories); err != nil {
		return nil, err
	}
	return stories, nil
}

func (s *MongoStoryStore) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Story, error) {
	var story models.Story
	err := s.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&story)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &story, nil
}

func (s *MongoStoryStore) Find(ctx context.Context, f StoryFilter) ([]models.Story, error) {
	filter := bson.M{
		"is_active":  f.IsActive,
		"created_at": bson.M{"$lt": f.Before},
	}
	if f.Tag != "" {
		filter["tags"] = f.Tag
	}
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetLimit(f.Limit)
	cursor, err := s.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	stories := []models.Story{}
	if err = cursor.All(ctx, &stories); err != nil {
		return nil, err
	}
	return stories, nil
}

func (s *MongoStoryStore) Insert(ctx context.Context, story *models.Story) (*models.Story, error) {
	if story.ID.IsZero() {
		story.ID = primitive.NewObjectID()
	}
	if story.CreatedAt.IsZero() {
		story.CreatedAt = time.Now()
	}
	if _, err := s.collection.InsertOne(ctx, story); err != nil {
		return nil, err
	}
	return story, nil
}

func (s *MongoStoryStore) SetText(ctx context.Context, id primitive.ObjectID, text string) (*models.Story, error) {
	return s.updateOne(ctx, id, bson.M{"$set": bson.M{"text": text}})
}

func (s *MongoStoryStore) SetTags(ctx context.Context, id primitive.ObjectID, tags []string) (*models.Story, error) {
	return s.updateOne(ctx, id, bson.M{"$set": bson.M{"tags": tags}})
}

func (s *MongoStoryStore) Archive(ctx context.Context, id primitive.ObjectID) (*models.Story, error) {
	return s.updateOne(ctx, id, bson.M{"$set": bson.M{"is_active": false}})
}

func (s *MongoStoryStore) IncrementPoints(ctx context.Context, id primitive.ObjectID, delta int) (*models.Story, error) {
	return s.updateOne(ctx, id, bson.M{"$inc": bson.M{"points": delta}})
}

func (s *MongoStoryStore) PushComment(ctx context.Context, id, commentID primitive.ObjectID) (*models.Story, error) {
	return s.updateOne(ctx, id, bson.M{"$push": bson.M{"comments": commentID}})
}

func (s *MongoStoryStore) SetComments(ctx context.Context, id primitive.ObjectID, commentIDs []primitive.ObjectID) (*models.Story, error) {
	return s.updateOne(ctx, id, bson.M{"$set": bson.M{"comments": commentIDs}})
}

// updateOne applies a field-scoped update and returns the resulting
// document, so concurrent writers never clobber unrelated fields.
func (s *MongoStoryStore) updateOne(ctx context.Context, id primitive.ObjectID, update bson.M) (*models.Story, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var story models.Story
	err := s.collection.FindOneAndUpdate(ctx, bson.M{"_id": id}, update, opts).Decode(&story)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &story, nil
}

// MongoCommentStore implements CommentStore over a MongoDB collection.
type MongoCommentStore struct {
	collection *mongo.Collection
}

// NewMongoCommentStore creates a MongoCommentStore over the "comments" collection.
func NewMongoCommentStore(db *mongo.Database) *MongoCommentStore {
	return &MongoCommentStore{collection: db.Collection("comments")}
}

func (s *MongoCommentStore) Insert(ctx context.Context, comment *models.Comment) (*models.Comment, error) {
	if comment.ID.IsZero() {
		comment.ID = primitive.NewObjectID()
	}
	if comment.CreatedAt.IsZero() {
		comment.CreatedAt = time.Now()
	}
	if _, err := s.collection.InsertOne(ctx, comment); err != nil {
		return nil, err
	}
	return comment, nil
}

func (s *MongoCommentStore) FindByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.Comment, error) {
	if len(ids) == 0 {
		return []models.Comment{}, nil
	}
	cursor, err := s.collection.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var found []models.Comment
	if err = cursor.All(ctx, &found); err != nil {
		return nil, err
	}

	// Reorder to match the reference list; a reference with no backing
	// document is dropped rather than surfaced as a hole.
	byID := make(map[primitive.ObjectID]models.Comment, len(found))
	for _, c := range found {
		byID[c.ID] = c
	}
	comments := make([]models.Comment, 0, len(ids))
	for _, id := range ids {
		if c, ok := byID[id]; ok {
			comments = append(comments, c)
		}
	}
	return comments, nil
}
