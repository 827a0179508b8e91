// Package user 提供用户信息与全站账号管理
package user

import (
	"context"
	"time"

	"go.uber.org/zap"

	"forum_server/internal/dao/mysql/repository"
	myredis "forum_server/internal/dao/redis"
	"forum_server/internal/dto/request"
	"forum_server/internal/dto/respond"
	"forum_server/internal/model"
	"forum_server/internal/notify"
	"forum_server/internal/permission"
	"forum_server/internal/service/common"
	"forum_server/pkg/errorx"
)

// userInfoService 用户业务逻辑实现
type userInfoService struct {
	repos *repository.Repositories
	cache myredis.CacheService
	pub   notify.Publisher
}

// NewUserService 构造函数，注入 Repository、缓存与通知发布者
func NewUserService(repos *repository.Repositories, cache myredis.CacheService, pub notify.Publisher) *userInfoService {
	return &userInfoService{repos: repos, cache: cache, pub: pub}
}

// GetUserInfo 获取单个用户信息
func (u *userInfoService) GetUserInfo(ctx context.Context, userId string) (*respond.UserInfoRespond, error) {
	user, err := u.repos.User.FindByUuid(userId)
	if err != nil {
		if errorx.IsNotFound(err) {
			return nil, errorx.New(errorx.CodeUserNotExist, "用户不存在")
		}
		return nil, err
	}
	return toUserInfo(user), nil
}

// ChangeGlobalRole 修改全站角色，仅 ADMIN 可操作且不能修改自己
func (u *userInfoService) ChangeGlobalRole(ctx context.Context, callerId string, req request.ChangeGlobalRoleRequest) error {
	caller, err := common.LoadActor(u.repos.User, callerId)
	if err != nil {
		return err
	}
	requested, err := permission.ParseGlobalRole(req.Role)
	if err != nil {
		return err
	}
	target, err := u.findTarget(req.UserId)
	if err != nil {
		return err
	}

	ok, err := permission.CanChangeGlobalRole(caller.GlobalRole, target.GlobalRole, requested, caller.Uuid == target.Uuid)
	if err != nil {
		return err
	}
	if !ok {
		return errorx.New(errorx.CodeInvalidParam, "不能降低自己的管理员角色")
	}
	if target.GlobalRole == requested {
		return nil
	}
	if err := u.repos.User.UpdateGlobalRole(target.Uuid, requested); err != nil {
		return err
	}

	zap.L().Info("global role changed",
		zap.String("operator", caller.Uuid),
		zap.String("user_id", target.Uuid),
		zap.String("from", string(target.GlobalRole)),
		zap.String("to", string(requested)))
	common.Publish(ctx, u.pub, notify.New(target.Uuid, notify.GlobalRoleChanged, map[string]string{
		"from": string(target.GlobalRole),
		"to":   string(requested),
	}))
	return nil
}

// BanUser 封禁用户；已封禁的用户保持原封禁信息不变
// 封禁同时禁用账号，并使其 Refresh Token 失效
func (u *userInfoService) BanUser(ctx context.Context, callerId string, req request.BanUserRequest) error {
	target, err := u.checkToggle(callerId, req.UserId)
	if err != nil {
		return err
	}
	if target.IsBanned {
		return nil
	}
	now := time.Now()
	if err := u.repos.User.UpdateBan(target.Uuid, true, &now, req.Reason); err != nil {
		return err
	}
	if err := u.cache.Delete(ctx, myredis.UserTokenKey(target.Uuid)); err != nil {
		zap.L().Warn("清除被封禁用户的 Token 失败", zap.Error(err), zap.String("user_id", target.Uuid))
	}

	common.Publish(ctx, u.pub, notify.New(target.Uuid, notify.UserBanned, map[string]string{
		"reason": req.Reason,
	}))
	return nil
}

// UnbanUser 解封用户，解封后账号仍需单独启用
func (u *userInfoService) UnbanUser(ctx context.Context, callerId string, req request.UnbanUserRequest) error {
	target, err := u.checkToggle(callerId, req.UserId)
	if err != nil {
		return err
	}
	if !target.IsBanned {
		return nil
	}
	return u.repos.User.UpdateBan(target.Uuid, false, nil, "")
}

// SetActive 启用或禁用账号，被封禁的账号不能启用
func (u *userInfoService) SetActive(ctx context.Context, callerId string, req request.SetActiveRequest) error {
	if req.IsActive == nil {
		return errorx.ErrInvalidParam
	}
	target, err := u.checkToggle(callerId, req.UserId)
	if err != nil {
		return err
	}
	if err := permission.CheckActivation(*req.IsActive, target.IsBanned); err != nil {
		return err
	}
	if target.IsActive == *req.IsActive {
		return nil
	}
	return u.repos.User.UpdateActive(target.Uuid, *req.IsActive)
}

// checkToggle 校验封禁/启用类操作的权限并读取目标用户
func (u *userInfoService) checkToggle(callerId, targetId string) (*model.UserInfo, error) {
	caller, err := common.LoadActor(u.repos.User, callerId)
	if err != nil {
		return nil, err
	}
	if err := permission.CheckBanToggle(caller.GlobalRole, caller.Uuid == targetId); err != nil {
		return nil, err
	}
	return u.findTarget(targetId)
}

func (u *userInfoService) findTarget(userId string) (*model.UserInfo, error) {
	target, err := u.repos.User.FindByUuid(userId)
	if err != nil {
		if errorx.IsNotFound(err) {
			return nil, errorx.New(errorx.CodeUserNotExist, "目标用户不存在")
		}
		return nil, err
	}
	return target, nil
}

func toUserInfo(user *model.UserInfo) *respond.UserInfoRespond {
	return &respond.UserInfoRespond{
		Uuid:       user.Uuid,
		Nickname:   user.Nickname,
		Email:      user.Email,
		GlobalRole: string(user.GlobalRole),
		IsActive:   user.IsActive,
		IsBanned:   user.IsBanned,
		BannedAt:   respond.FormatTime(user.BannedAt),
		BanReason:  user.BanReason,
		CreatedAt:  respond.FormatTime(&user.CreatedAt),
	}
}
