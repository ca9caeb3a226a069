package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"northpole/wishhub/internal/config"
	"northpole/wishhub/internal/model"
	"northpole/wishhub/internal/repository"
	"northpole/wishhub/internal/service"
	jwtpkg "northpole/wishhub/pkg/jwt"
	"northpole/wishhub/pkg/response"
)

type testClock struct {
	now time.Time
}

func (c *testClock) Now() time.Time { return c.now }

type testEnv struct {
	router *gin.Engine
	jwt    *jwtpkg.Manager
	clock  *testClock
}

func newTestEnv(t *testing.T, deadline int64, denylist []string) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := &config.Config{}
	cfg.Server.Mode = "test"
	cfg.CORS.AllowedOrigins = []string{"*"}
	cfg.CORS.AllowedMethods = []string{"GET", "POST", "PUT"}
	cfg.CORS.AllowedHeaders = []string{"Authorization", "Content-Type"}

	clock := &testClock{now: time.Unix(1000, 0)}
	repo := repository.NewKVWishlistRepository(repository.NewMemoryKVStore(), 6*time.Hour, 2*time.Hour)
	svc := service.NewWishlistService(
		repo,
		NewContextAuthorizer(),
		clock,
		repository.NewMemorySequencer(),
		service.NewZapNotifier(zap.NewNop()),
		zap.NewNop(),
	)
	require.NoError(t, svc.Bootstrap(context.Background(), "santa", deadline, denylist))

	jwtManager := jwtpkg.NewManager("test-secret", "wishhub", time.Hour)
	router := SetupRouter(cfg, zap.NewNop(), jwtManager, NewWishlistHandler(svc), nil)

	return &testEnv{router: router, jwt: jwtManager, clock: clock}
}

func (e *testEnv) do(t *testing.T, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}

func (e *testEnv) token(t *testing.T, subject string) string {
	t.Helper()
	token, err := e.jwt.GenerateAccessToken(subject)
	require.NoError(t, err)
	return token
}

func decodeData(t *testing.T, rec *httptest.ResponseRecorder, out interface{}) {
	t.Helper()
	var resp response.APIResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	raw, err := json.Marshal(resp.Data)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(raw, out))
}

func TestGetListPublicAndEmpty(t *testing.T) {
	env := newTestEnv(t, 5000, nil)

	rec := env.do(t, http.MethodGet, "/api/v1/users/alice/wishes", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var wishes []model.Wish
	decodeData(t, rec, &wishes)
	assert.Empty(t, wishes)
}

func TestAddWishRequiresToken(t *testing.T) {
	env := newTestEnv(t, 5000, nil)

	rec := env.do(t, http.MethodPost, "/api/v1/users/alice/wishes", "", AddWishRequest{Text: "bike"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAddWishRejectsOtherUsersToken(t *testing.T) {
	env := newTestEnv(t, 5000, nil)

	rec := env.do(t, http.MethodPost, "/api/v1/users/alice/wishes", env.token(t, "mallory"), AddWishRequest{Text: "bike"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAddWishAndGetList(t *testing.T) {
	env := newTestEnv(t, 5000, nil)
	token := env.token(t, "alice")

	rec := env.do(t, http.MethodPost, "/api/v1/users/alice/wishes", token, AddWishRequest{Text: "bike"})
	require.Equal(t, http.StatusOK, rec.Code)

	var added AddWishResponse
	decodeData(t, rec, &added)
	assert.Equal(t, uint32(1), added.ID)

	rec = env.do(t, http.MethodGet, "/api/v1/users/alice/wishes", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var wishes []model.Wish
	decodeData(t, rec, &wishes)
	require.Len(t, wishes, 1)
	assert.Equal(t, "bike", wishes[0].Text)
	assert.False(t, wishes[0].Fulfilled)
}

func TestAddWishDenylisted(t *testing.T) {
	env := newTestEnv(t, 5000, []string{"bob"})

	rec := env.do(t, http.MethodPost, "/api/v1/users/bob/wishes", env.token(t, "bob"), AddWishRequest{Text: "coal"})
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestAddWishAfterDeadline(t *testing.T) {
	env := newTestEnv(t, 5000, nil)
	env.clock.now = time.Unix(6000, 0)

	rec := env.do(t, http.MethodPost, "/api/v1/users/alice/wishes", env.token(t, "alice"), AddWishRequest{Text: "bike"})
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestMarkFulfilled(t *testing.T) {
	env := newTestEnv(t, 5000, nil)

	rec := env.do(t, http.MethodPost, "/api/v1/users/alice/wishes", env.token(t, "alice"), AddWishRequest{Text: "bike"})
	require.Equal(t, http.StatusOK, rec.Code)

	// Only the admin may fulfill.
	rec = env.do(t, http.MethodPost, "/api/v1/admin/users/alice/wishes/1/fulfill", env.token(t, "alice"), nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = env.do(t, http.MethodPost, "/api/v1/admin/users/alice/wishes/1/fulfill", env.token(t, "santa"), nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = env.do(t, http.MethodGet, "/api/v1/users/alice/wishes", "", nil)
	var wishes []model.Wish
	decodeData(t, rec, &wishes)
	require.Len(t, wishes, 1)
	assert.True(t, wishes[0].Fulfilled)
}

func TestMarkFulfilledUnknownWish(t *testing.T) {
	env := newTestEnv(t, 5000, nil)

	rec := env.do(t, http.MethodPost, "/api/v1/admin/users/alice/wishes/999/fulfill", env.token(t, "santa"), nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = env.do(t, http.MethodPost, "/api/v1/admin/users/alice/wishes/abc/fulfill", env.token(t, "santa"), nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSetDeadline(t *testing.T) {
	env := newTestEnv(t, 5000, nil)

	// Non-admin is refused.
	rec := env.do(t, http.MethodPut, "/api/v1/admin/deadline", env.token(t, "alice"), SetDeadlineRequest{Deadline: 500})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = env.do(t, http.MethodPut, "/api/v1/admin/deadline", env.token(t, "santa"), SetDeadlineRequest{Deadline: 500})
	require.Equal(t, http.StatusOK, rec.Code)

	// The clock (t=1000) is now past the deadline.
	rec = env.do(t, http.MethodPost, "/api/v1/users/alice/wishes", env.token(t, "alice"), AddWishRequest{Text: "bike"})
	assert.Equal(t, http.StatusConflict, rec.Code)
}
