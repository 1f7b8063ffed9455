package auth

import (
	"strings"
	"testing"
	"time"

	"github.com/dmitrijs2005/opsapi/internal/common"
	"github.com/dmitrijs2005/opsapi/internal/server/models"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testUser = &models.User{ID: 7, Username: "alice", Email: "alice@x.com", Role: "user"}

type fakeClock struct {
	t time.Time
}

func (c *fakeClock) Now() time.Time { return c.t }

func newIssuer(clock *fakeClock) *TokenIssuer {
	return NewTokenIssuer("super-secret", time.Hour, WithClock(clock.Now))
}

func TestIssueAndVerify_Success(t *testing.T) {
	t.Parallel()

	clock := &fakeClock{t: time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)}
	ti := newIssuer(clock)

	tok, err := ti.Issue(testUser)
	require.NoError(t, err)

	claims, err := ti.Verify(tok)
	require.NoError(t, err)
	assert.Equal(t, "alice", claims.Username)
	assert.Equal(t, int64(7), claims.UserID)
	assert.Equal(t, "user", claims.Role)
	assert.Equal(t, clock.t.Add(time.Hour), claims.ExpiresAt.Time.UTC())
	assert.Equal(t, clock.t, claims.IssuedAt.Time.UTC())
	assert.NotEmpty(t, claims.ID)
}

func TestIssue_UniqueTokenIDs(t *testing.T) {
	t.Parallel()

	ti := NewTokenIssuer("k", time.Hour)
	a, err := ti.Issue(testUser)
	require.NoError(t, err)
	b, err := ti.Issue(testUser)
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}

func TestVerify_Expired(t *testing.T) {
	t.Parallel()

	clock := &fakeClock{t: time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)}
	ti := newIssuer(clock)

	tok, err := ti.Issue(testUser)
	require.NoError(t, err)

	clock.t = clock.t.Add(time.Hour - time.Second)
	_, err = ti.Verify(tok)
	require.NoError(t, err)

	clock.t = clock.t.Add(2 * time.Second)
	_, err = ti.Verify(tok)
	assert.ErrorIs(t, err, common.ErrTokenExpired)
	assert.NotErrorIs(t, err, common.ErrInvalidToken)
}

func TestVerify_EveryAlteredByteIsInvalid(t *testing.T) {
	t.Parallel()

	clock := &fakeClock{t: time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)}
	ti := newIssuer(clock)

	tok, err := ti.Issue(testUser)
	require.NoError(t, err)

	for i := 0; i < len(tok); i++ {
		b := []byte(tok)
		if b[i] == 'A' {
			b[i] = 'B'
		} else {
			b[i] = 'A'
		}
		_, err := ti.Verify(string(b))
		require.ErrorIs(t, err, common.ErrInvalidToken, "byte %d altered", i)
	}
}

func TestVerify_TamperedExpiredTokenIsInvalid(t *testing.T) {
	t.Parallel()

	clock := &fakeClock{t: time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)}
	ti := newIssuer(clock)

	tok, err := ti.Issue(testUser)
	require.NoError(t, err)
	clock.t = clock.t.Add(48 * time.Hour)

	_, err = ti.Verify(tok + "x")
	assert.ErrorIs(t, err, common.ErrInvalidToken)
}

func TestVerify_WrongSecret(t *testing.T) {
	t.Parallel()

	tok, err := NewTokenIssuer("right-secret", time.Hour).Issue(testUser)
	require.NoError(t, err)

	_, err = NewTokenIssuer("wrong-secret", time.Hour).Verify(tok)
	assert.ErrorIs(t, err, common.ErrInvalidToken)
}

func TestVerify_RejectsOtherAlgorithms(t *testing.T) {
	t.Parallel()

	ti := NewTokenIssuer("super-secret", time.Hour)
	claims := &Claims{
		RegisteredClaims: jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour))},
		Username:         "alice",
		UserID:           7,
		Role:             "admin",
	}

	none, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)
	_, err = ti.Verify(none)
	assert.ErrorIs(t, err, common.ErrInvalidToken)

	hs512, err := jwt.NewWithClaims(jwt.SigningMethodHS512, claims).SignedString([]byte("super-secret"))
	require.NoError(t, err)
	_, err = ti.Verify(hs512)
	assert.ErrorIs(t, err, common.ErrInvalidToken)
}

func TestVerify_RequiresExpiry(t *testing.T) {
	t.Parallel()

	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, &Claims{Username: "alice", UserID: 7}).
		SignedString([]byte("super-secret"))
	require.NoError(t, err)

	_, err = NewTokenIssuer("super-secret", time.Hour).Verify(tok)
	assert.ErrorIs(t, err, common.ErrInvalidToken)
}

func TestVerify_Garbage(t *testing.T) {
	t.Parallel()

	ti := NewTokenIssuer("k", time.Hour)
	for _, s := range []string{"", "abc", "a.b.c", strings.Repeat(".", 5)} {
		_, err := ti.Verify(s)
		assert.ErrorIs(t, err, common.ErrInvalidToken, "input %q", s)
	}
}
