package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Comment represents a comment on a story, stored in MongoDB and
// referenced from the story's comment list.
type Comment struct {
	ID        primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	StoryID   primitive.ObjectID `json:"story_id" bson:"story_id"`
	Text      string             `json:"text" bson:"text"`
	Username  string             `json:"username" bson:"username"`
	CreatedAt time.Time          `json:"created_at" bson:"created_at"`
}

// CreateCommentRequest defines the request body for commenting on a story.
type CreateCommentRequest struct {
	Text string `json:"text" validate:"required,min=1,max=500"`
}
