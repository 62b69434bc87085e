package config

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestJWT(t *testing.T) *JWT {
	t.Helper()
	t.Setenv("JWT_SECRET", "0123456789abcdef0123456789abcdef")
	j, err := NewJWT()
	require.NoError(t, err)
	return j
}

func newTestCookies(t *testing.T) *Cookies {
	t.Helper()
	t.Setenv("COOKIES_DOMAIN", "localhost")
	t.Setenv("COOKIES_SECURE", "0")
	t.Setenv("COOKIES_SAMESITE", "LAX")
	c, err := NewCookies(newTestJWT(t))
	require.NoError(t, err)
	return c
}

func TestNewJWT(t *testing.T) {
	t.Run("empty", func(t *testing.T) {
		t.Setenv("JWT_SECRET", "")
		_, err := NewJWT()
		assert.Error(t, err)
	})

	t.Run("too short", func(t *testing.T) {
		t.Setenv("JWT_SECRET", "short")
		_, err := NewJWT()
		assert.Error(t, err)
	})

	t.Run("ok", func(t *testing.T) {
		j := newTestJWT(t)
		assert.NotZero(t, j.TokenLifetime)
	})
}

func TestJWTSignAndParse(t *testing.T) {
	j := newTestJWT(t)

	token, err := j.Sign(NewPlayerClaims(42, "alice"))
	require.NoError(t, err)

	var claims PlayerClaims
	_, err = j.ParseWithClaims(token, &claims)
	require.NoError(t, err)
	assert.Equal(t, int64(42), claims.PlayerID)
	assert.Equal(t, "alice", claims.Username)
}

func TestJWTRejectsTamperedToken(t *testing.T) {
	j := newTestJWT(t)

	token, err := j.Sign(NewPlayerClaims(42, "alice"))
	require.NoError(t, err)

	var claims PlayerClaims
	_, err = j.ParseWithClaims(token+"x", &claims)
	assert.Error(t, err)
}

func TestCookiesRoundTrip(t *testing.T) {
	c := newTestCookies(t)

	token, err := c.jwt.Sign(NewPlayerClaims(7, "bob"))
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	require.NoError(t, c.Refresh(rec, token))

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 2)

	byName := make(map[string]*http.Cookie)
	for _, ck := range cookies {
		byName[ck.Name] = ck
	}
	require.Contains(t, byName, "auth")
	require.Contains(t, byName, "sign")
	assert.False(t, byName["auth"].HttpOnly)
	assert.True(t, byName["sign"].HttpOnly)

	r := httptest.NewRequest("GET", "/status", nil)
	r.AddCookie(byName["auth"])
	r.AddCookie(byName["sign"])

	claims, err := c.ParsePlayerClaims(r)
	require.NoError(t, err)
	assert.Equal(t, int64(7), claims.PlayerID)
	assert.Equal(t, "bob", claims.Username)
}

func TestParsePlayerClaimsMissingCookies(t *testing.T) {
	c := newTestCookies(t)

	r := httptest.NewRequest("GET", "/status", nil)
	_, err := c.ParsePlayerClaims(r)
	assert.Error(t, err)
}

func TestParsePlayerClaimsBadSignature(t *testing.T) {
	c := newTestCookies(t)

	token, err := c.jwt.Sign(NewPlayerClaims(7, "bob"))
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	require.NoError(t, c.Refresh(rec, token))

	r := httptest.NewRequest("GET", "/status", nil)
	for _, ck := range rec.Result().Cookies() {
		if ck.Name == "sign" {
			ck.Value = "bogus"
		}
		r.AddCookie(ck)
	}

	_, err = c.ParsePlayerClaims(r)
	assert.Error(t, err)
}
