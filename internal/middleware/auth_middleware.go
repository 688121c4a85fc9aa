package middleware

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/cfascholars/backend/internal/app/models"
	"github.com/cfascholars/backend/internal/app/models/dto"
	"github.com/cfascholars/backend/internal/pkg/session"
)

// Context keys set by the identity resolver.
const (
	ContextUserKey  = "currentUser"
	ContextTokenKey = "sessionToken"
)

// UserLookup rehydrates the session's user id into a full user record.
type UserLookup interface {
	GetUserByID(ctx context.Context, id int64) (*models.User, error)
}

// AuthMiddleware resolves the session cookie and enforces role guards.
type AuthMiddleware struct {
	sessions   session.Store
	users      UserLookup
	cookieName string
}

// NewAuthMiddleware creates a new AuthMiddleware
func NewAuthMiddleware(sessions session.Store, users UserLookup, cookieName string) *AuthMiddleware {
	return &AuthMiddleware{
		sessions:   sessions,
		users:      users,
		cookieName: cookieName,
	}
}

// Identity resolves the session cookie into the current user. It never
// aborts: requests without a valid session simply proceed anonymously and
// are stopped by the guards on protected routes.
func (m *AuthMiddleware) Identity() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(m.cookieName)
		if err != nil || token == "" {
			c.Next()
			return
		}

		userID, err := m.sessions.Get(c.Request.Context(), token)
		if err != nil {
			c.Next()
			return
		}

		// A session whose user no longer exists counts as anonymous.
		user, err := m.users.GetUserByID(c.Request.Context(), userID)
		if err != nil {
			c.Next()
			return
		}

		c.Set(ContextUserKey, user)
		c.Set(ContextTokenKey, token)
		c.Next()
	}
}

// CurrentUser returns the resolved user, or nil for anonymous requests.
func CurrentUser(c *gin.Context) *models.User {
	value, ok := c.Get(ContextUserKey)
	if !ok {
		return nil
	}
	user, ok := value.(*models.User)
	if !ok {
		return nil
	}
	return user
}

// SessionToken returns the raw session token of the current request.
func SessionToken(c *gin.Context) string {
	return c.GetString(ContextTokenKey)
}

func abortUnauthenticated(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusUnauthorized,
		dto.NewErrorResponse(dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")))
}

func abortForbidden(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusForbidden,
		dto.NewErrorResponse(dto.NewErrorDetail(dto.ErrorCodeForbidden, message)))
}

// RequireAuthenticated rejects anonymous requests with 401.
func (m *AuthMiddleware) RequireAuthenticated() gin.HandlerFunc {
	return func(c *gin.Context) {
		if CurrentUser(c) == nil {
			abortUnauthenticated(c)
			return
		}
		c.Next()
	}
}

// RequireAdmin rejects anonymous requests with 401 and non-admins with 403.
func (m *AuthMiddleware) RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		user := CurrentUser(c)
		if user == nil {
			abortUnauthenticated(c)
			return
		}
		if user.Role != models.RoleAdmin {
			abortForbidden(c, "Admin access required")
			return
		}
		c.Next()
	}
}

// RequireOwnerOrAdmin rejects requests whose target user, named by field in
// the path, body, or query (checked in that order), is not the caller.
// Admins pass unconditionally. A missing or malformed target is a 400 even
// for admins.
func (m *AuthMiddleware) RequireOwnerOrAdmin(field string) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := CurrentUser(c)
		if user == nil {
			abortUnauthenticated(c)
			return
		}

		targetID, ok := extractTargetUserID(c, field)
		if !ok {
			c.AbortWithStatusJSON(http.StatusBadRequest,
				dto.NewErrorResponse(dto.NewErrorDetail(dto.ErrorCodeValidationFailed, field+" is required for ownership check")))
			return
		}

		if user.Role != models.RoleAdmin && user.ID != targetID {
			abortForbidden(c, "You can only access your own resources")
			return
		}
		c.Next()
	}
}

// extractTargetUserID reads the ownership field from the path, the body,
// and finally the query string. The body is restored after reading so
// handler binding still works.
func extractTargetUserID(c *gin.Context, field string) (int64, bool) {
	if raw := c.Param(field); raw != "" {
		return parseUserID(raw)
	}

	contentType := c.GetHeader("Content-Type")
	switch {
	case strings.Contains(contentType, "json"):
		if id, found := userIDFromJSONBody(c, field); found {
			return id, true
		}
	case strings.Contains(contentType, "multipart/form-data"),
		strings.Contains(contentType, "application/x-www-form-urlencoded"):
		if raw := c.PostForm(field); raw != "" {
			return parseUserID(raw)
		}
	}

	if raw := c.Query(field); raw != "" {
		return parseUserID(raw)
	}
	return 0, false
}

func userIDFromJSONBody(c *gin.Context, field string) (int64, bool) {
	if c.Request.Body == nil {
		return 0, false
	}
	raw, err := io.ReadAll(c.Request.Body)
	c.Request.Body = io.NopCloser(bytes.NewBuffer(raw))
	if err != nil {
		return 0, false
	}

	var body map[string]json.RawMessage
	if err := json.Unmarshal(raw, &body); err != nil {
		return 0, false
	}
	value, ok := body[field]
	if !ok {
		return 0, false
	}

	var asNumber int64
	if err := json.Unmarshal(value, &asNumber); err == nil {
		return asNumber, true
	}
	var asString string
	if err := json.Unmarshal(value, &asString); err == nil {
		return parseUserID(asString)
	}
	return 0, false
}

func parseUserID(raw string) (int64, bool) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}
