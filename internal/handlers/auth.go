package handlers

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/weienlee/wset/internal/middleware"
	"github.com/weienlee/wset/internal/models"
	"github.com/weienlee/wset/internal/repositories"
)

// AuthHandler handles account registration and session sign-in/out.
type AuthHandler struct {
	userRepository repositories.UserRepository
	sessions       *middleware.SessionManager
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(userRepo repositories.UserRepository, sessions *middleware.SessionManager) *AuthHandler {
	return &AuthHandler{
		userRepository: userRepo,
		sessions:       sessions,
	}
}

// RegisterAuthRoutes registers authentication-related routes.
func (h *AuthHandler) RegisterAuthRoutes(g *echo.Group) {
	g.POST("/register", h.Register)
	g.POST("/login", h.Login)
	g.POST("/logout", h.Logout)
	g.GET("/me", h.Me)
}

// Register creates an account and signs it in.
func (h *AuthHandler) Register(c echo.Context) error {
	var req models.RegisterRequest
	if err := c.Bind(&req); err != nil {
		return sendBadRequest(c, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return sendBadRequest(c, "You must enter a username and password.")
	}

	if _, err := h.userRepository.GetUserByUsername(req.Username); err == nil {
		return c.JSON(http.StatusConflict, echo.Map{
			"success": false,
			"err":     "Username already taken",
		})
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return sendError(c, err)
	}

	user := &models.User{
		Username: req.Username,
		Password: string(hashed),
	}
	if err := h.userRepository.CreateUser(user); err != nil {
		return sendError(c, err)
	}

	if err := h.sessions.SignIn(c, user); err != nil {
		return sendError(c, err)
	}
	return sendSuccess(c, user)
}

// Login verifies credentials and establishes a session.
func (h *AuthHandler) Login(c echo.Context) error {
	var req models.LoginRequest
	if err := c.Bind(&req); err != nil {
		return sendBadRequest(c, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return sendBadRequest(c, "You must enter a username and password.")
	}

	user, err := h.userRepository.GetUserByUsername(req.Username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.JSON(http.StatusForbidden, echo.Map{
				"success": false,
				"err":     "Invalid username or password",
			})
		}
		return sendError(c, err)
	}

	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)) != nil {
		return c.JSON(http.StatusForbidden, echo.Map{
			"success": false,
			"err":     "Invalid username or password",
		})
	}

	if err := h.sessions.SignIn(c, user); err != nil {
		return sendError(c, err)
	}
	return sendSuccess(c, user)
}

// Logout drops the session.
func (h *AuthHandler) Logout(c echo.Context) error {
	if err := h.sessions.SignOut(c); err != nil {
		return sendError(c, err)
	}
	return sendSuccess(c, nil)
}

// Me returns the identity bound to the session, if any.
func (h *AuthHandler) Me(c echo.Context) error {
	username, ok := h.sessions.CurrentUsername(c)
	if !ok {
		return sendSuccess(c, nil)
	}
	userID, _ := h.sessions.CurrentUserID(c)
	return sendSuccess(c, echo.Map{
		"username": username,
		"user_id":  userID,
	})
}
