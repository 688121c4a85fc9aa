package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cfascholars/backend/internal/app/models"
	"github.com/cfascholars/backend/internal/pkg/apperrors"
	"github.com/cfascholars/backend/internal/pkg/session"
)

const testCookieName = "sid"

type fakeUserLookup struct {
	users map[int64]*models.User
}

func (l *fakeUserLookup) GetUserByID(ctx context.Context, id int64) (*models.User, error) {
	user, ok := l.users[id]
	if !ok {
		return nil, apperrors.ErrUserNotFound
	}
	return user, nil
}

type guardFixture struct {
	middleware *AuthMiddleware
	sessions   session.Store
	lookup     *fakeUserLookup
}

func newGuardFixture() *guardFixture {
	gin.SetMode(gin.TestMode)
	lookup := &fakeUserLookup{users: map[int64]*models.User{
		1: {ID: 1, Email: "admin@cfascholars.org", Role: models.RoleAdmin},
		5: {ID: 5, Email: "student@example.com", Role: models.RoleStudent},
	}}
	sessions := session.NewMemoryStore(time.Hour)
	return &guardFixture{
		middleware: NewAuthMiddleware(sessions, lookup, testCookieName),
		sessions:   sessions,
		lookup:     lookup,
	}
}

func (f *guardFixture) login(t *testing.T, userID int64) *http.Cookie {
	t.Helper()
	token, err := f.sessions.Create(context.Background(), userID)
	require.NoError(t, err)
	return &http.Cookie{Name: testCookieName, Value: token}
}

func okHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func TestIdentityResolvesUser(t *testing.T) {
	f := newGuardFixture()
	router := gin.New()
	router.Use(f.middleware.Identity())
	router.GET("/whoami", func(c *gin.Context) {
		user := CurrentUser(c)
		require.NotNil(t, user)
		c.JSON(http.StatusOK, gin.H{"id": user.ID})
	})

	req := httptest.NewRequest("GET", "/whoami", nil)
	req.AddCookie(f.login(t, 5))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"id":5`)
}

func TestIdentityTreatsOrphanedSessionAsAnonymous(t *testing.T) {
	f := newGuardFixture()
	router := gin.New()
	router.Use(f.middleware.Identity())
	router.GET("/private", f.middleware.RequireAuthenticated(), okHandler)

	// Session points at a user that no longer exists.
	token, err := f.sessions.Create(context.Background(), 999)
	require.NoError(t, err)

	req := httptest.NewRequest("GET", "/private", nil)
	req.AddCookie(&http.Cookie{Name: testCookieName, Value: token})
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequireAuthenticated(t *testing.T) {
	f := newGuardFixture()
	router := gin.New()
	router.Use(f.middleware.Identity())
	router.GET("/private", f.middleware.RequireAuthenticated(), okHandler)

	// Anonymous request.
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest("GET", "/private", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	// Authenticated request.
	req := httptest.NewRequest("GET", "/private", nil)
	req.AddCookie(f.login(t, 5))
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRequireAdmin(t *testing.T) {
	f := newGuardFixture()
	router := gin.New()
	router.Use(f.middleware.Identity())
	router.GET("/admin", f.middleware.RequireAdmin(), okHandler)

	tests := []struct {
		name   string
		userID int64
		want   int
	}{
		{"anonymous", 0, http.StatusUnauthorized},
		{"student", 5, http.StatusForbidden},
		{"admin", 1, http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/admin", nil)
			if tt.userID != 0 {
				req.AddCookie(f.login(t, tt.userID))
			}
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)
			assert.Equal(t, tt.want, rec.Code)
		})
	}
}

func TestRequireOwnerOrAdminFromPath(t *testing.T) {
	f := newGuardFixture()
	router := gin.New()
	router.Use(f.middleware.Identity())
	router.GET("/users/:userId", f.middleware.RequireOwnerOrAdmin("userId"), okHandler)

	tests := []struct {
		name   string
		userID int64
		target string
		want   int
	}{
		{"anonymous", 0, "5", http.StatusUnauthorized},
		{"owner", 5, "5", http.StatusOK},
		{"other student", 5, "1", http.StatusForbidden},
		{"admin any target", 1, "5", http.StatusOK},
		{"malformed target", 1, "abc", http.StatusBadRequest},
		{"non-positive target", 5, "0", http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/users/"+tt.target, nil)
			if tt.userID != 0 {
				req.AddCookie(f.login(t, tt.userID))
			}
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)
			assert.Equal(t, tt.want, rec.Code)
		})
	}
}

func TestRequireOwnerOrAdminFromJSONBody(t *testing.T) {
	f := newGuardFixture()
	router := gin.New()
	router.Use(f.middleware.Identity())

	// Handler re-reads the body to prove the guard restored it.
	router.POST("/applications", f.middleware.RequireOwnerOrAdmin("userId"), func(c *gin.Context) {
		var payload struct {
			UserID int64 `json:"userId"`
		}
		require.NoError(t, c.ShouldBindJSON(&payload))
		c.JSON(http.StatusOK, gin.H{"userId": payload.UserID})
	})

	post := func(t *testing.T, userID int64, body string) *httptest.ResponseRecorder {
		req := httptest.NewRequest("POST", "/applications", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		if userID != 0 {
			req.AddCookie(f.login(t, userID))
		}
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		return rec
	}

	rec := post(t, 5, `{"userId": 5}`)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"userId":5`)

	rec = post(t, 5, `{"userId": 1}`)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = post(t, 1, `{"userId": 5}`)
	assert.Equal(t, http.StatusOK, rec.Code)

	// Missing ownership field is a 400 even for admins.
	rec = post(t, 1, `{}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRequireOwnerOrAdminFromQuery(t *testing.T) {
	f := newGuardFixture()
	router := gin.New()
	router.Use(f.middleware.Identity())
	router.GET("/export", f.middleware.RequireOwnerOrAdmin("userId"), okHandler)

	req := httptest.NewRequest("GET", "/export?userId=5", nil)
	req.AddCookie(f.login(t, 5))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)

	req = httptest.NewRequest("GET", "/export?userId=1", nil)
	req.AddCookie(f.login(t, 5))
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}
