package middleware

import (
	"database/sql"
	"errors"
	"net/http"
	"net/http/httptest"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/supermall-dev/supermall-golang/internal/auth"
)

func adminRouter(t *testing.T) (*gin.Engine, sqlmock.Sqlmock) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	router := gin.New()
	router.Use(AuthMiddleware())
	router.Use(AdminMiddleware(db))
	router.GET("/guarded", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})
	return router, mock
}

func doGuarded(t *testing.T, router *gin.Engine, authHeader string) *httptest.ResponseRecorder {
	t.Helper()
	req, err := http.NewRequest(http.MethodGet, "/guarded", nil)
	require.NoError(t, err)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func bearerFor(t *testing.T, userID string) string {
	t.Helper()
	token, err := auth.GenerateToken(userID)
	require.NoError(t, err)
	return "Bearer " + token
}

func TestAuthMiddlewareRejectsMissingHeader(t *testing.T) {
	router, _ := adminRouter(t)

	w := doGuarded(t, router, "")

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthMiddlewareRejectsBadScheme(t *testing.T) {
	router, _ := adminRouter(t)

	w := doGuarded(t, router, "Basic dXNlcjpwYXNz")

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAdminMiddlewareAllowsAdmin(t *testing.T) {
	router, mock := adminRouter(t)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT role FROM users WHERE id = ?")).
		WithArgs("admin-1").
		WillReturnRows(sqlmock.NewRows([]string{"role"}).AddRow("admin"))

	w := doGuarded(t, router, bearerFor(t, "admin-1"))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAdminMiddlewareRejectsNonAdmin(t *testing.T) {
	router, mock := adminRouter(t)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT role FROM users WHERE id = ?")).
		WithArgs("user-1").
		WillReturnRows(sqlmock.NewRows([]string{"role"}).AddRow("user"))

	w := doGuarded(t, router, bearerFor(t, "user-1"))

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestAdminMiddlewareUnknownUserIs401(t *testing.T) {
	router, mock := adminRouter(t)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT role FROM users WHERE id = ?")).
		WithArgs("ghost").
		WillReturnError(sql.ErrNoRows)

	w := doGuarded(t, router, bearerFor(t, "ghost"))

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

// A database outage must not masquerade as a bad credential.
func TestAdminMiddlewareDatabaseErrorIs500(t *testing.T) {
	router, mock := adminRouter(t)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT role FROM users WHERE id = ?")).
		WithArgs("admin-1").
		WillReturnError(errors.New("connection refused"))

	w := doGuarded(t, router, bearerFor(t, "admin-1"))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}
