package middlewares

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"civicreport-be/models"
	authUtils "civicreport-be/utils"
)

func newAuthTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/whoami", AuthMiddleware(), func(c *gin.Context) {
		principal, ok := GetPrincipal(c)
		if !ok {
			c.Status(http.StatusInternalServerError)
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"id":       principal.ID,
			"role":     principal.Role,
			"category": principal.Category,
		})
	})
	r.GET("/staff-only", AuthMiddleware(), RequireRole(models.RoleStaff), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	return r
}

func doGet(r *gin.Engine, path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthMiddlewareResolvesPrincipal(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	r := newAuthTestRouter()

	token, err := authUtils.GenerateToken("abc123", models.RoleStaff, models.Road)
	require.NoError(t, err)

	w := doGet(r, "/whoami", token)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"id":"abc123"`)
	assert.Contains(t, w.Body.String(), `"role":"staff"`)
	assert.Contains(t, w.Body.String(), `"category":"Road"`)
}

func TestAuthMiddlewareRejectsMissingToken(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	r := newAuthTestRouter()

	w := doGet(r, "/whoami", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthMiddlewareRejectsBadToken(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	r := newAuthTestRouter()

	w := doGet(r, "/whoami", "not.a.token")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthMiddlewareRejectsTokenSignedWithOtherSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "other-secret")
	token, err := authUtils.GenerateToken("abc123", models.RoleUser, "")
	require.NoError(t, err)

	t.Setenv("JWT_SECRET", "test-secret")
	r := newAuthTestRouter()

	w := doGet(r, "/whoami", token)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireRoleGatesByRole(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	r := newAuthTestRouter()

	staffToken, err := authUtils.GenerateToken("s1", models.RoleStaff, models.Waste)
	require.NoError(t, err)
	userToken, err := authUtils.GenerateToken("u1", models.RoleUser, "")
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, doGet(r, "/staff-only", staffToken).Code)
	assert.Equal(t, http.StatusForbidden, doGet(r, "/staff-only", userToken).Code)
}

func TestRequireRoleRejectsStaffWithoutCategory(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	r := newAuthTestRouter()

	// A staff token minted without a category claim cannot act on issues.
	token, err := authUtils.GenerateToken("s1", models.RoleStaff, "")
	require.NoError(t, err)

	assert.Equal(t, http.StatusForbidden, doGet(r, "/staff-only", token).Code)
}
