package auth

import (
	"context"
	"testing"

	"forum_server/internal/dao/memory"
	"forum_server/internal/dto/request"
	"forum_server/pkg/errorx"
	"forum_server/pkg/util/jwt"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService(t *testing.T) *authService {
	t.Helper()
	jwt.Init("auth-test-secret", 15, 24)
	return NewAuthService(memory.NewRepositories(memory.NewStore()), memory.NewCache())
}

func TestRegisterAndLogin(t *testing.T) {
	s := newTestService(t)
	ctx := context.Background()

	reg, err := s.Register(ctx, request.RegisterRequest{Nickname: "alice", Email: "Alice@Example.com", Password: "secret1"})
	require.NoError(t, err)
	assert.Equal(t, "USER", reg.GlobalRole)
	assert.Equal(t, "alice@example.com", reg.Email)

	_, err = s.Register(ctx, request.RegisterRequest{Nickname: "again", Email: "alice@example.com", Password: "secret1"})
	assert.Equal(t, errorx.CodeUserExist, errorx.GetCode(err))

	_, err = s.Login(ctx, request.LoginRequest{Email: "alice@example.com", Password: "wrong"})
	assert.Equal(t, errorx.CodeInvalidPassword, errorx.GetCode(err))

	_, err = s.Login(ctx, request.LoginRequest{Email: "nobody@example.com", Password: "secret1"})
	assert.Equal(t, errorx.CodeUserNotExist, errorx.GetCode(err))

	login, err := s.Login(ctx, request.LoginRequest{Email: "alice@example.com", Password: "secret1"})
	require.NoError(t, err)
	assert.NotEmpty(t, login.AccessToken)
	assert.NotEmpty(t, login.RefreshToken)

	claims, err := jwt.ParseTokenOfType(login.AccessToken, jwt.SubjectAccess)
	require.NoError(t, err)
	assert.Equal(t, reg.Uuid, claims.UserID)
}

func TestLogin_BannedUserIsForbidden(t *testing.T) {
	s := newTestService(t)
	ctx := context.Background()
	reg, err := s.Register(ctx, request.RegisterRequest{Nickname: "bob", Email: "bob@example.com", Password: "secret1"})
	require.NoError(t, err)
	require.NoError(t, s.repos.User.UpdateBan(reg.Uuid, true, nil, "spam"))

	_, err = s.Login(ctx, request.LoginRequest{Email: "bob@example.com", Password: "secret1"})
	assert.Equal(t, errorx.CodeForbidden, errorx.GetCode(err))
}

func TestRefreshToken_RotatesAndKicksOldToken(t *testing.T) {
	s := newTestService(t)
	ctx := context.Background()
	_, err := s.Register(ctx, request.RegisterRequest{Nickname: "carol", Email: "carol@example.com", Password: "secret1"})
	require.NoError(t, err)

	first, err := s.Login(ctx, request.LoginRequest{Email: "carol@example.com", Password: "secret1"})
	require.NoError(t, err)

	rotated, err := s.RefreshToken(ctx, request.RefreshTokenRequest{RefreshToken: first.RefreshToken})
	require.NoError(t, err)
	assert.NotEqual(t, first.RefreshToken, rotated.RefreshToken)

	// 旧的 Refresh Token 已被替换
	_, err = s.RefreshToken(ctx, request.RefreshTokenRequest{RefreshToken: first.RefreshToken})
	assert.Equal(t, errorx.CodeUnauthorized, errorx.GetCode(err))

	// Access Token 不能当作 Refresh Token 使用
	_, err = s.RefreshToken(ctx, request.RefreshTokenRequest{RefreshToken: rotated.AccessToken})
	assert.Equal(t, errorx.CodeUnauthorized, errorx.GetCode(err))
}

func TestLogout(t *testing.T) {
	s := newTestService(t)
	ctx := context.Background()
	reg, err := s.Register(ctx, request.RegisterRequest{Nickname: "dave", Email: "dave@example.com", Password: "secret1"})
	require.NoError(t, err)
	login, err := s.Login(ctx, request.LoginRequest{Email: "dave@example.com", Password: "secret1"})
	require.NoError(t, err)

	require.NoError(t, s.Logout(ctx, reg.Uuid))
	_, err = s.RefreshToken(ctx, request.RefreshTokenRequest{RefreshToken: login.RefreshToken})
	assert.Equal(t, errorx.CodeUnauthorized, errorx.GetCode(err))
}
