package middleware

import (
	"context"
	"database/sql"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/user-auth-service/internal/utils"
)

type fakeValidator struct {
	live map[string]uint64
}

func (f *fakeValidator) Validate(_ context.Context, tokenHash string) (uint64, error) {
	if uid, ok := f.live[tokenHash]; ok {
		return uid, nil
	}
	return 0, sql.ErrNoRows
}

func serve(secret string, v TokenValidator, authHeader string) (*httptest.ResponseRecorder, echo.Context) {
	e := echo.New()
	var captured echo.Context
	h := JWTAuth(secret, v)(func(c echo.Context) error {
		captured = c
		return c.NoContent(http.StatusOK)
	})
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	_ = h(c)
	return rec, captured
}

func TestJWTAuth_ValidTokenSetsIdentity(t *testing.T) {
	access, err := utils.NewAccessToken("secret", 42, 15)
	require.NoError(t, err)
	v := &fakeValidator{live: map[string]uint64{utils.HashTokenRaw(access.Token): 42}}

	rec, c := serve("secret", v, "Bearer "+access.Token)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, uint64(42), c.Get("user_id"))
	assert.Equal(t, utils.HashTokenRaw(access.Token), c.Get("token_hash"))
}

func TestJWTAuth_RevokedTokenRejected(t *testing.T) {
	// Signature is fine but the store no longer has a live row.
	access, err := utils.NewAccessToken("secret", 42, 15)
	require.NoError(t, err)
	v := &fakeValidator{live: map[string]uint64{}}

	rec, _ := serve("secret", v, "Bearer "+access.Token)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestJWTAuth_BadSignatureRejected(t *testing.T) {
	access, err := utils.NewAccessToken("other-secret", 42, 15)
	require.NoError(t, err)
	v := &fakeValidator{live: map[string]uint64{utils.HashTokenRaw(access.Token): 42}}

	rec, _ := serve("secret", v, "Bearer "+access.Token)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestJWTAuth_MissingHeaderRejected(t *testing.T) {
	rec, _ := serve("secret", &fakeValidator{}, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestJWTAuth_ExpiredTokenRejected(t *testing.T) {
	access, err := utils.NewAccessToken("secret", 42, 0)
	require.NoError(t, err)
	v := &fakeValidator{live: map[string]uint64{utils.HashTokenRaw(access.Token): 42}}

	time.Sleep(1100 * time.Millisecond) // let the zero-TTL token expire
	rec, _ := serve("secret", v, "Bearer "+access.Token)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
