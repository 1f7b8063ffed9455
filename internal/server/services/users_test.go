package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/dmitrijs2005/opsapi/internal/common"
	"github.com/dmitrijs2005/opsapi/internal/server/auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateUser_RoundTrip(t *testing.T) {
	env := newTestEnv(t)
	s := NewUserService(env.db, env.rm, env.tokens, env.cfg)
	ctx := context.Background()

	created, err := s.CreateUser(ctx, "alice", "alice@x.com", "s3cret!", "")
	require.NoError(t, err)
	assert.Positive(t, created.ID)
	assert.Equal(t, common.DefaultRole, created.Role)
	assert.NotEqual(t, "s3cret!", created.PasswordHash)

	got, err := s.GetUserByUsername(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)
	assert.Equal(t, "alice@x.com", got.Email)
	assert.Equal(t, "user", got.Role)
	assert.True(t, s.VerifyPassword(got, "s3cret!"))

	for _, v := range []string{"s3cret", "s3cret!!", "S3cret!", "s3cret?"} {
		assert.False(t, s.VerifyPassword(got, v), "variant %q", v)
	}
}

func TestCreateUser_KeepsExplicitRole(t *testing.T) {
	env := newTestEnv(t)
	s := NewUserService(env.db, env.rm, env.tokens, env.cfg)

	u, err := s.CreateUser(context.Background(), "root", "root@x.com", "pw", "admin")
	require.NoError(t, err)
	assert.Equal(t, "admin", u.Role)
}

func TestCreateUser_Conflict(t *testing.T) {
	env := newTestEnv(t)
	s := NewUserService(env.db, env.rm, env.tokens, env.cfg)
	ctx := context.Background()

	_, err := s.CreateUser(ctx, "alice", "alice@x.com", "pw", "")
	require.NoError(t, err)

	_, err = s.CreateUser(ctx, "alice", "new@x.com", "pw", "")
	assert.ErrorIs(t, err, common.ErrorConflict)

	_, err = s.CreateUser(ctx, "bob", "alice@x.com", "pw", "")
	assert.ErrorIs(t, err, common.ErrorConflict)
}

func TestCreateUser_Validation(t *testing.T) {
	s := NewUserService(nil, &fakeRepoManager{users: &fakeUsersRepo{}}, nil, newTestConfig())

	for _, in := range [][3]string{{"", "e", "p"}, {"u", "", "p"}, {"u", "e", ""}} {
		_, err := s.CreateUser(context.Background(), in[0], in[1], in[2], "")
		assert.ErrorIs(t, err, common.ErrorValidation, "input %v", in)
	}
}

func TestCreateUser_StoreError(t *testing.T) {
	repo := &fakeUsersRepo{createErr: errors.Join(common.ErrorStore, errors.New("db down"))}
	s := NewUserService(nil, &fakeRepoManager{users: repo}, nil, newTestConfig())

	_, err := s.CreateUser(context.Background(), "u", "e", "p", "")
	assert.ErrorIs(t, err, common.ErrorStore)
}

func TestGetUserByUsername_NotFound(t *testing.T) {
	env := newTestEnv(t)
	s := NewUserService(env.db, env.rm, env.tokens, env.cfg)

	_, err := s.GetUserByUsername(context.Background(), "ghost")
	assert.ErrorIs(t, err, common.ErrorNotFound)
}

func TestLogin_Success(t *testing.T) {
	env := newTestEnv(t)
	s := NewUserService(env.db, env.rm, env.tokens, env.cfg)
	ctx := context.Background()

	u, err := s.CreateUser(ctx, "alice", "alice@x.com", "s3cret!", "")
	require.NoError(t, err)

	res, err := s.Login(ctx, "alice", "s3cret!")
	require.NoError(t, err)
	assert.Equal(t, u.ID, res.User.ID)

	claims, err := env.tokens.Verify(res.Token)
	require.NoError(t, err)
	assert.Equal(t, "alice", claims.Username)
	assert.Equal(t, u.ID, claims.UserID)
	assert.Equal(t, "user", claims.Role)
	assert.WithinDuration(t, time.Now().Add(24*time.Hour), claims.ExpiresAt.Time, time.Minute)
}

func TestLogin_FailuresAreIndistinguishable(t *testing.T) {
	env := newTestEnv(t)
	s := NewUserService(env.db, env.rm, env.tokens, env.cfg)
	ctx := context.Background()

	_, err := s.CreateUser(ctx, "alice", "alice@x.com", "s3cret!", "")
	require.NoError(t, err)

	_, errWrongPw := s.Login(ctx, "alice", "wrong")
	_, errNoUser := s.Login(ctx, "nobody", "s3cret!")

	assert.ErrorIs(t, errWrongPw, common.ErrorUnauthorized)
	assert.ErrorIs(t, errNoUser, common.ErrorUnauthorized)
	assert.Equal(t, errWrongPw.Error(), errNoUser.Error())
}

func TestLogin_Validation(t *testing.T) {
	s := NewUserService(nil, &fakeRepoManager{users: &fakeUsersRepo{}}, nil, newTestConfig())

	_, err := s.Login(context.Background(), "", "pw")
	assert.ErrorIs(t, err, common.ErrorValidation)
	_, err = s.Login(context.Background(), "alice", "")
	assert.ErrorIs(t, err, common.ErrorValidation)
}

func TestLogin_StoreErrorIsNotUnauthorized(t *testing.T) {
	repo := &fakeUsersRepo{getErr: errors.Join(common.ErrorStore, errors.New("db down"))}
	s := NewUserService(nil, &fakeRepoManager{users: repo}, auth.NewTokenIssuer("k", time.Hour), newTestConfig())

	_, err := s.Login(context.Background(), "alice", "pw")
	assert.ErrorIs(t, err, common.ErrorStore)
	assert.NotErrorIs(t, err, common.ErrorUnauthorized)
}
