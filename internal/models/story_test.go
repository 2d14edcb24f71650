package models

import (
	"testing"

	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestAppendComment(t *testing.T) {
	r := require.New(t)

	var s Story
	a := primitive.NewObjectID()
	b := primitive.NewObjectID()

	s.AppendComment(a)
	s.AppendComment(b)
	s.AppendComment(a) // no dedup

	r.Equal([]primitive.ObjectID{a, b, a}, s.CommentIDs)
}

func TestUnlinkCommentRemovesFirstOccurrence(t *testing.T) {
	r := require.New(t)

	a := primitive.NewObjectID()
	b := primitive.NewObjectID()
	s := Story{CommentIDs: []primitive.ObjectID{a, b, a}}

	r.True(s.UnlinkComment(a))
	r.Equal([]primitive.ObjectID{b, a}, s.CommentIDs)

	r.True(s.UnlinkComment(a))
	r.Equal([]primitive.ObjectID{b}, s.CommentIDs)
}

func TestUnlinkCommentMissingIsNoop(t *testing.T) {
	r := require.New(t)

	a := primitive.NewObjectID()
	b := primitive.NewObjectID()
	s := Story{CommentIDs: []primitive.ObjectID{a}}

	r.False(s.UnlinkComment(b))
	r.Equal([]primitive.ObjectID{a}, s.CommentIDs)
}
