// Package auth 提供认证相关的业务逻辑
// 处理注册、登录、Token 刷新与单点互踢
package auth

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"forum_server/internal/dao/mysql/repository"
	myredis "forum_server/internal/dao/redis"
	"forum_server/internal/dto/request"
	"forum_server/internal/dto/respond"
	"forum_server/internal/model"
	"forum_server/internal/permission"
	"forum_server/pkg/errorx"
	"forum_server/pkg/util/jwt"
	"forum_server/pkg/util/snowflake"
)

// authService 认证服务实现
type authService struct {
	repos *repository.Repositories
	cache myredis.CacheService // 缓存服务（依赖倒置）
}

// NewAuthService 创建认证服务实例
func NewAuthService(repos *repository.Repositories, cache myredis.CacheService) *authService {
	return &authService{
		repos: repos,
		cache: cache,
	}
}

// Register 注册，新用户固定为 USER 角色并处于启用状态
func (s *authService) Register(ctx context.Context, req request.RegisterRequest) (*respond.RegisterRespond, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	_, err := s.repos.User.FindByEmail(email)
	if err == nil {
		return nil, errorx.New(errorx.CodeUserExist, "该邮箱已经注册")
	}
	if !errorx.IsNotFound(err) {
		return nil, err
	}

	user := &model.UserInfo{
		Uuid:       snowflake.GenerateIDString(),
		Nickname:   strings.TrimSpace(req.Nickname),
		Email:      email,
		GlobalRole: permission.GlobalUser,
		IsActive:   true,
	}
	if err := user.SetPassword(req.Password); err != nil {
		zap.L().Error("密码加密失败", zap.Error(err))
		return nil, errorx.ErrServerBusy
	}
	if err := s.repos.User.Create(user); err != nil {
		// 并发注册同一邮箱时由唯一索引兜底
		if errorx.HasCode(err, errorx.CodeConflict) {
			return nil, errorx.New(errorx.CodeUserExist, "该邮箱已经注册")
		}
		return nil, err
	}

	return &respond.RegisterRespond{
		Uuid:       user.Uuid,
		Nickname:   user.Nickname,
		Email:      user.Email,
		GlobalRole: string(user.GlobalRole),
		CreatedAt:  respond.FormatTime(&user.CreatedAt),
	}, nil
}

// Login 邮箱密码登录
func (s *authService) Login(ctx context.Context, req request.LoginRequest) (*respond.LoginRespond, error) {
	user, err := s.repos.User.FindByEmail(strings.ToLower(strings.TrimSpace(req.Email)))
	if err != nil {
		if errorx.IsNotFound(err) {
			return nil, errorx.New(errorx.CodeUserNotExist, "用户不存在，请注册")
		}
		return nil, err
	}
	if !user.CheckPassword(req.Password) {
		return nil, errorx.New(errorx.CodeInvalidPassword, "密码不正确，请重试")
	}
	if !user.CanAct() {
		return nil, errorx.New(errorx.CodeForbidden, "账号已被禁用或封禁")
	}

	accessToken, refreshToken, err := s.issueTokens(ctx, user.Uuid)
	if err != nil {
		return nil, err
	}
	return &respond.LoginRespond{
		Uuid:         user.Uuid,
		Nickname:     user.Nickname,
		Email:        user.Email,
		GlobalRole:   string(user.GlobalRole),
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}

// RefreshToken 用 Refresh Token 换取新的双 Token，旧的 Refresh Token 随之失效
func (s *authService) RefreshToken(ctx context.Context, req request.RefreshTokenRequest) (*respond.TokenRespond, error) {
	claims, err := jwt.ParseTokenOfType(req.RefreshToken, jwt.SubjectRefresh)
	if err != nil {
		return nil, errorx.New(errorx.CodeUnauthorized, "Refresh Token 无效或已过期")
	}
	ok, err := s.ValidateTokenID(ctx, claims.UserID, claims.TokenID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, errorx.New(errorx.CodeUnauthorized, "登录已失效，请重新登录")
	}

	user, err := s.repos.User.FindByUuid(claims.UserID)
	if err != nil {
		if errorx.IsNotFound(err) {
			return nil, errorx.New(errorx.CodeUnauthorized, "用户不存在，请重新登录")
		}
		return nil, err
	}
	if !user.CanAct() {
		return nil, errorx.New(errorx.CodeForbidden, "账号已被禁用或封禁")
	}

	accessToken, refreshToken, err := s.issueTokens(ctx, user.Uuid)
	if err != nil {
		return nil, err
	}
	return &respond.TokenRespond{AccessToken: accessToken, RefreshToken: refreshToken}, nil
}

// Logout 删除用户当前的 Refresh Token ID
func (s *authService) Logout(ctx context.Context, userId string) error {
	if err := s.cache.Delete(ctx, myredis.UserTokenKey(userId)); err != nil {
		return errorx.Wrap(err, errorx.CodeCacheError, "退出登录失败")
	}
	return nil
}

// ValidateTokenID 验证用户的 Token ID 是否有效
// 用于实现单点登录互踢机制
func (s *authService) ValidateTokenID(ctx context.Context, userID, tokenID string) (bool, error) {
	validTokenID, err := s.cache.Get(ctx, myredis.UserTokenKey(userID))
	if err != nil {
		return false, errorx.Wrap(err, errorx.CodeCacheError, "读取登录状态失败")
	}
	if validTokenID == "" || tokenID == "" {
		return false, nil
	}
	return tokenID == validTokenID, nil
}

// issueTokens 生成双 Token，并将 Refresh Token ID 存入缓存
func (s *authService) issueTokens(ctx context.Context, userId string) (string, string, error) {
	accessToken, err := jwt.GenerateAccessToken(userId)
	if err != nil {
		zap.L().Error("生成 Access Token 失败", zap.Error(err))
		return "", "", errorx.ErrServerBusy
	}
	refreshToken, tokenID, err := jwt.GenerateRefreshToken(userId)
	if err != nil {
		zap.L().Error("生成 Refresh Token 失败", zap.Error(err))
		return "", "", errorx.ErrServerBusy
	}
	if err := s.cache.Set(ctx, myredis.UserTokenKey(userId), tokenID, jwt.RefreshTokenExpiry()); err != nil {
		// 不阻塞登录流程，仅记录日志；之后刷新会要求重新登录
		zap.L().Error("存储 Token ID 失败", zap.Error(err))
	}
	return accessToken, refreshToken, nil
}
