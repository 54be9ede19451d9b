package authorization

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"MediTrack/role"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRouter(iss *Issuer) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(JWTAuth(iss))
	r.POST("/beds/:id/assign", Authorize(role.Beds, role.Assign), func(c *gin.Context) {
		c.String(http.StatusOK, c.GetString(ContextUserID))
	})
	return r
}

func do(r http.Handler, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/beds/1/assign", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestIssueAndVerify(t *testing.T) {
	iss := NewIssuer("secret", time.Hour)
	token, exp, err := iss.Issue("u1", role.Doctor, "doc@meditrack.test")
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Hour), exp, time.Minute)

	claims, err := iss.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "u1", claims.UserID)
	assert.Equal(t, role.Doctor, claims.Role)

	_, err = NewIssuer("other", time.Hour).Verify(token)
	assert.Error(t, err)
}

func TestVerifyRejectsExpired(t *testing.T) {
	iss := NewIssuer("secret", time.Minute)
	iss.now = func() time.Time { return time.Now().Add(-time.Hour) }
	token, _, err := iss.Issue("u1", role.Admin, "a@meditrack.test")
	require.NoError(t, err)

	_, err = NewIssuer("secret", time.Minute).Verify(token)
	assert.Error(t, err)
}

func TestMiddleware(t *testing.T) {
	iss := NewIssuer("secret", time.Hour)
	r := newRouter(iss)

	assert.Equal(t, http.StatusUnauthorized, do(r, "").Code)
	assert.Equal(t, http.StatusUnauthorized, do(r, "garbage").Code)

	doctor, _, _ := iss.Issue("d1", role.Doctor, "d@meditrack.test")
	assert.Equal(t, http.StatusForbidden, do(r, doctor).Code)

	desk, _, _ := iss.Issue("r1", role.Receptionist, "r@meditrack.test")
	w := do(r, desk)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "r1", w.Body.String())
}
