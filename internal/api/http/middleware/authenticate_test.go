package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	httpctx "github.com/dtroode/opentask-server/internal/api/http/context"
	"github.com/dtroode/opentask-server/internal/model"
	"github.com/dtroode/opentask-server/internal/testutil"
)

type fakeTokenService struct {
	userID uuid.UUID
	err    error
}

func (f *fakeTokenService) GetUserID(_ context.Context, _ string) (uuid.UUID, error) {
	return f.userID, f.err
}

func newAuthRouter(ts TokenService) (*gin.Engine, *httpctx.Manager) {
	gin.SetMode(gin.TestMode)
	ctxMgr := httpctx.NewManager()
	m := NewAuthenticate(ts, ctxMgr, testutil.MakeNoopLogger())

	e := gin.New()
	e.POST("/protected", m.Handle, func(c *gin.Context) {
		userID, ok := ctxMgr.GetUserIDFromContext(c.Request.Context())
		if !ok {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "no user in context"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"userId": userID.String()})
	})
	return e, ctxMgr
}

func TestAuthenticate_MissingHeader(t *testing.T) {
	e, _ := newAuthRouter(&fakeTokenService{})

	req := httptest.NewRequest(http.MethodPost, "/protected", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthenticate_InvalidToken(t *testing.T) {
	e, _ := newAuthRouter(&fakeTokenService{err: model.ErrInvalidToken})

	req := httptest.NewRequest(http.MethodPost, "/protected", nil)
	req.Header.Set("Authorization", "Bearer bad")
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthenticate_ValidToken(t *testing.T) {
	userID := uuid.New()
	e, _ := newAuthRouter(&fakeTokenService{userID: userID})

	req := httptest.NewRequest(http.MethodPost, "/protected", nil)
	req.Header.Set("Authorization", "Bearer good")
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), userID.String())
}
