package handlers

import (
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/labstack/echo/v4"

	"github.com/weienlee/wset/internal/middleware"
	"github.com/weienlee/wset/internal/models"
	"github.com/weienlee/wset/internal/repositories"
)

// CommentHandler handles comment-related HTTP requests.
type CommentHandler struct {
	commentRepository repositories.CommentRepository
	storyRepository   repositories.StoryRepository
	sessions          *middleware.SessionManager
}

// NewCommentHandler creates a new CommentHandler.
func NewCommentHandler(commentRepo repositories.CommentRepository, storyRepo repositories.StoryRepository, sessions *middleware.SessionManager) *CommentHandler {
	return &CommentHandler{
		commentRepository: commentRepo,
		storyRepository:   storyRepo,
		sessions:          sessions,
	}
}

// RegisterCommentRoutes registers comment-related routes.
func (h *CommentHandler) RegisterCommentRoutes(g *echo.Group) {
	g.POST("/stories/:id/comments", h.CreateComment, h.sessions.RequireLogin)
	g.DELETE("/stories/:id/comments/:comment_id", h.RemoveComment, h.sessions.RequireLogin)
}

// CreateComment creates a comment document and links it to the story.
func (h *CommentHandler) CreateComment(c echo.Context) error {
	var req models.CreateCommentRequest
	if err := c.Bind(&req); err != nil {
		return sendBadRequest(c, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return sendBadRequest(c, "Invalid request payload")
	}

	ctx := c.Request().Context()

	// Confirm the story exists before minting a comment for it.
	story, err := h.storyRepository.GetStory(ctx, c.Param("id"))
	if err != nil {
		return sendError(c, err)
	}

	username, _ := h.sessions.CurrentUsername(c)

	comment, err := h.commentRepository.CreateNew(ctx, story.ID, req.Text, username)
	if err != nil {
		return sendError(c, err)
	}

	if _, err := h.storyRepository.AddComment(ctx, c.Param("id"), comment.ID); err != nil {
		return sendError(c, err)
	}

	return sendSuccess(c, comment)
}

// RemoveComment unlinks a comment from the story. The comment document
// itself is kept; only the story's reference goes away. Unlinking a
// comment that is not linked succeeds without changing anything.
func (h *CommentHandler) RemoveComment(c echo.Context) error {
	commentID, err := primitive.ObjectIDFromHex(c.Param("comment_id"))
	if err != nil {
		return sendBadRequest(c, "Invalid comment id")
	}

	story, err := h.storyRepository.RemoveComment(c.Request().Context(), c.Param("id"), commentID)
	if err != nil {
		return sendError(c, err)
	}
	return sendSuccess(c, story)
}
