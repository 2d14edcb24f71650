package handlers

import (
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/weienlee/wset/internal/middleware"
	"github.com/weienlee/wset/internal/models"
	"github.com/weienlee/wset/internal/repositories"
)

// StoryHandler handles story-related HTTP requests.
type StoryHandler struct {
	storyRepository repositories.StoryRepository
	sessions        *middleware.SessionManager
}

// NewStoryHandler creates a new StoryHandler.
func NewStoryHandler(storyRepo repositories.StoryRepository, sessions *middleware.SessionManager) *StoryHandler {
	return &StoryHandler{
		storyRepository: storyRepo,
		sessions:        sessions,
	}
}

// RegisterStoryRoutes registers story-related routes. Mutations sit
// behind the login gate; archive and tag replacement are capability
// checks enforced here at the boundary, not inside the repository.
func (h *StoryHandler) RegisterStoryRoutes(g *echo.Group, admins []string) {
	g.GET("/stories", h.GetStories)
	g.GET("/stories/all", h.GetAllStories, h.sessions.RequireAdmin(admins))
	g.GET("/stories/:id", h.GetStory)
	g.POST("/stories", h.CreateStory, h.sessions.RequireLogin)
	g.PUT("/stories/:id/text", h.UpdateText, h.sessions.RequireLogin)
	g.PUT("/stories/:id/tags", h.UpdateTags, h.sessions.RequireLogin)
	g.DELETE("/stories/:id", h.ArchiveStory, h.sessions.RequireLogin)
	g.POST("/stories/:id/vote", h.Vote, h.sessions.RequireLogin)
}

// GetStories returns one feed page: stories older than start_date,
// newest first, optionally filtered by tag.
func (h *StoryHandler) GetStories(c echo.Context) error {
	tag := c.QueryParam("tag")

	isActive := true
	if raw := c.QueryParam("is_active"); raw != "" {
		parsed, err := strconv.ParseBool(raw)
		if err != nil {
			return sendBadRequest(c, "Invalid is_active parameter")
		}
		isActive = parsed
	}

	var startDate time.Time
	if raw := c.QueryParam("start_date"); raw != "" {
		parsed, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return sendBadRequest(c, "Invalid start_date parameter")
		}
		startDate = parsed
	}

	stories, err := h.storyRepository.GetStories(c.Request().Context(), tag, isActive, startDate)
	if err != nil {
		return sendError(c, err)
	}
	return sendSuccess(c, stories)
}

// GetAllStories returns every story regardless of state.
func (h *StoryHandler) GetAllStories(c echo.Context) error {
	stories, err := h.storyRepository.GetAll(c.Request().Context())
	if err != nil {
		return sendError(c, err)
	}
	return sendSuccess(c, stories)
}

// GetStory returns a single story with its comments expanded.
func (h *StoryHandler) GetStory(c echo.Context) error {
	story, err := h.storyRepository.GetStory(c.Request().Context(), c.Param("id"))
	if err != nil {
		return sendError(c, err)
	}
	return sendSuccess(c, story)
}

// CreateStory posts a new story authored by the session user.
func (h *StoryHandler) CreateStory(c echo.Context) error {
	var req models.CreateStoryRequest
	if err := c.Bind(&req); err != nil {
		return sendBadRequest(c, "Invalid request payload")
	}

	username, _ := h.sessions.CurrentUsername(c)
	userID, _ := h.sessions.CurrentUserID(c)

	story, err := h.storyRepository.CreateNew(
		c.Request().Context(),
		req.Text,
		req.Image,
		strconv.FormatUint(uint64(userID), 10),
		username,
		req.Tags,
	)
	if err != nil {
		return sendError(c, err)
	}
	return sendSuccess(c, story)
}

// UpdateText edits story text; only the author may do so.
func (h *StoryHandler) UpdateText(c echo.Context) error {
	var req models.UpdateTextRequest
	if err := c.Bind(&req); err != nil {
		return sendBadRequest(c, "Invalid request payload")
	}

	username, _ := h.sessions.CurrentUsername(c)

	story, err := h.storyRepository.UpdateText(c.Request().Context(), c.Param("id"), username, req.Text)
	if err != nil {
		return sendError(c, err)
	}
	return sendSuccess(c, story)
}

// UpdateTags replaces the story's tags wholesale.
func (h *StoryHandler) UpdateTags(c echo.Context) error {
	var req models.UpdateTagsRequest
	if err := c.Bind(&req); err != nil {
		return sendBadRequest(c, "Invalid request payload")
	}

	story, err := h.storyRepository.UpdateTags(c.Request().Context(), c.Param("id"), req.Tags)
	if err != nil {
		return sendError(c, err)
	}
	return sendSuccess(c, story)
}

// ArchiveStory soft-deletes a story. Archiving twice succeeds.
func (h *StoryHandler) ArchiveStory(c echo.Context) error {
	story, err := h.storyRepository.ArchiveStory(c.Request().Context(), c.Param("id"))
	if err != nil {
		return sendError(c, err)
	}
	return sendSuccess(c, story)
}

// Vote applies a point delta to a story.
func (h *StoryHandler) Vote(c echo.Context) error {
	var req models.VoteRequest
	if err := c.Bind(&req); err != nil {
		return sendBadRequest(c, "Invalid request payload")
	}

	story, err := h.storyRepository.UpdatePoints(c.Request().Context(), c.Param("id"), req.Delta)
	if err != nil {
		return sendError(c, err)
	}
	return sendSuccess(c, story)
}
