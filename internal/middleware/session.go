package middleware

import (
	"net/http"

	"github.com/gorilla/sessions"
	"github.com/labstack/echo/v4"

	"github.com/weienlee/wset/internal/models"
)

const (
	sessionName     = "wset_session"
	sessionUsername = "username"
	sessionUserID   = "user_id"
)

// SessionManager owns the cookie session: it signs users in and out and
// exposes the authenticated identity to handlers and gates. Identity is
// always read from the request, never from process-global state.
type SessionManager struct {
	store *sessions.CookieStore
}

// NewSessionManager creates a SessionManager with the given cookie secret.
func NewSessionManager(secret string, secure bool) *SessionManager {
	store := sessions.NewCookieStore([]byte(secret))
	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   3600 * 8,
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteStrictMode,
	}
	return &SessionManager{store: store}
}

// SignIn records the user's identity in the session cookie.
func (m *SessionManager) SignIn(c echo.Context, user *models.User) error {
	session, _ := m.store.Get(c.Request(), sessionName)
	session.Values[sessionUsername] = user.Username
	session.Values[sessionUserID] = user.ID
	return session.Save(c.Request(), c.Response())
}

// SignOut drops the session cookie.
func (m *SessionManager) SignOut(c echo.Context) error {
	session, _ := m.store.Get(c.Request(), sessionName)
	session.Options.MaxAge = -1
	return session.Save(c.Request(), c.Response())
}

// CurrentUsername returns the authenticated username, if any.
func (m *SessionManager) CurrentUsername(c echo.Context) (string, bool) {
	session, err := m.store.Get(c.Request(), sessionName)
	if err != nil {
		return "", false
	}
	username, ok := session.Values[sessionUsername].(string)
	return username, ok && username != ""
}

// CurrentUserID returns the authenticated user id, if any.
func (m *SessionManager) CurrentUserID(c echo.Context) (uint, bool) {
	session, err := m.store.Get(c.Request(), sessionName)
	if err != nil {
		return 0, false
	}
	id, ok := session.Values[sessionUserID].(uint)
	return id, ok
}

// RequireLogin rejects requests without an authenticated session.
func (m *SessionManager) RequireLogin(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if _, ok := m.CurrentUsername(c); !ok {
			return c.JSON(http.StatusForbidden, echo.Map{
				"success": false,
				"err":     "You must be logged in to perform this action",
			})
		}
		return next(c)
	}
}

// RequireAdmin rejects requests whose session username is not in the
// configured admin list.
func (m *SessionManager) RequireAdmin(admins []string) echo.MiddlewareFunc {
	allowed := make(map[string]struct{}, len(admins))
	for _, a := range admins {
		allowed[a] = struct{}{}
	}
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			username, ok := m.CurrentUsername(c)
			if ok {
				_, ok = allowed[username]
			}
			if !ok {
				return c.JSON(http.StatusForbidden, echo.Map{
					"success": false,
					"err":     "You are not authorized to perform this action",
				})
			}
			return next(c)
		}
	}
}
