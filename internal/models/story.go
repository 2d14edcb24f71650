package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Story represents a user-authored post stored in MongoDB. Comments are
// stored in their own collection and referenced by id.
type Story struct {
	ID         primitive.ObjectID   `json:"id,omitempty" bson:"_id,omitempty"`
	Text       string               `json:"text" bson:"text"`
	Image      string               `json:"image" bson:"image"`
	UserID     string               `json:"user_id" bson:"user_id"`
	Username   string               `json:"username" bson:"username"`
	CreatedAt  time.Time            `json:"created_at" bson:"created_at"`
	IsActive   bool                 `json:"is_active" bson:"is_active"`
	Points     int                  `json:"points" bson:"points"`
	Tags       []string             `json:"tags" bson:"tags"`
	CommentIDs []primitive.ObjectID `json:"comment_ids" bson:"comments"`
}

// ExpandedStory is a Story with its comment references resolved to full
// Comment records, in reference order.
type ExpandedStory struct {
	Story
	Comments []Comment `json:"comments"`
}

// AppendComment links a comment to the story, preserving insertion order.
// No dedup: linking the same id twice keeps both entries.
func (s *Story) AppendComment(id primitive.ObjectID) {
	s.CommentIDs = append(s.CommentIDs, id)
}

// UnlinkComment removes the first occurrence of id from the story's
// comment references. Removing an id that is not linked is a no-op.
func (s *Story) UnlinkComment(id primitive.ObjectID) bool {
	for i, c := range s.CommentIDs {
		if c == id {
			s.CommentIDs = append(s.CommentIDs[:i], s.CommentIDs[i+1:]...)
			return true
		}
	}
	return false
}

// CreateStoryRequest defines the request body for posting a story.
// Text and image emptiness is checked by the repository so the exact
// error messages are produced.
type CreateStoryRequest struct {
	Text  string   `json:"text"`
	Image string   `json:"image"`
	Tags  []string `json:"tags"`
}

// UpdateTextRequest defines the request body for editing story text.
type UpdateTextRequest struct {
	Text string `json:"text"`
}

// UpdateTagsRequest defines the request body for replacing story tags.
type UpdateTagsRequest struct {
	Tags []string `json:"tags"`
}

// VoteRequest defines the request body for changing story points.
// Delta may be negative.
type VoteRequest struct {
	Delta int `json:"delta"`
}
