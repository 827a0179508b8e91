// Package member 实现社区成员生命周期：申请加入、审核、踢出/封禁、解封、退出
package member

import (
	"context"
	"time"

	"go.uber.org/zap"

	"forum_server/internal/config"
	"forum_server/internal/dao/mysql/repository"
	myredis "forum_server/internal/dao/redis"
	"forum_server/internal/dto/request"
	"forum_server/internal/dto/respond"
	"forum_server/internal/model"
	"forum_server/internal/notify"
	"forum_server/internal/permission"
	"forum_server/internal/service/common"
	"forum_server/pkg/constants"
	"forum_server/pkg/errorx"
)

// memberService 社区成员业务逻辑实现
type memberService struct {
	repos *repository.Repositories
	cache myredis.AsyncCacheService
	pub   notify.Publisher
	conf  config.ModerationConfig
}

// NewMemberService 构造函数
func NewMemberService(repos *repository.Repositories, cache myredis.AsyncCacheService, pub notify.Publisher, conf config.ModerationConfig) *memberService {
	return &memberService{repos: repos, cache: cache, pub: pub, conf: conf}
}

// JoinCommunity 申请加入社区
// 开放社区直接成为正式成员，需要审核的社区进入待审核
func (s *memberService) JoinCommunity(ctx context.Context, userId string, req request.JoinCommunityRequest) (*respond.JoinRespond, error) {
	if _, err := common.LoadActor(s.repos.User, userId); err != nil {
		return nil, err
	}
	if err := s.throttleJoin(ctx, userId); err != nil {
		return nil, err
	}

	var status permission.MembershipStatus
	err := s.repos.Transaction(func(txRepos *repository.Repositories) error {
		community, err := txRepos.Community.FindByUuidForUpdate(req.CommunityId)
		if err != nil {
			return err
		}
		if community.Status == model.CommunityStatusDisable {
			return errorx.New(errorx.CodeForbidden, "该社区已被禁用")
		}

		existing, err := txRepos.Member.Find(req.CommunityId, userId)
		if err == nil {
			if existing.Status == permission.StatusBanned {
				return errorx.New(errorx.CodeForbidden, "你已被该社区封禁")
			}
			return errorx.New(errorx.CodeConflict, "你已经是成员或正在等待审核")
		}
		if !errorx.IsNotFound(err) {
			return err
		}

		status = permission.InitialStatus(community.RequiresApproval)
		if err := txRepos.Member.Create(&model.CommunityMember{
			CommunityUuid: req.CommunityId,
			UserUuid:      userId,
			Role:          permission.CommunityMember,
			Status:        status,
		}); err != nil {
			return err
		}
		if status == permission.StatusActive {
			return txRepos.Community.AddMemberCount(req.CommunityId, 1)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if status == permission.StatusActive {
		common.InvalidateCommunity(s.cache, req.CommunityId)
	}
	return &respond.JoinRespond{Status: string(status)}, nil
}

// throttleJoin 固定窗口计数限流；缓存不可用时放行
func (s *memberService) throttleJoin(ctx context.Context, userId string) error {
	if s.conf.JoinApplyLimit <= 0 {
		return nil
	}
	window := time.Duration(s.conf.JoinApplyWindowMinutes) * time.Minute
	n, err := s.cache.IncrWithTTL(ctx, myredis.JoinThrottleKey(userId), window)
	if err != nil {
		zap.L().Warn("join throttle unavailable", zap.Error(err), zap.String("user_id", userId))
		return nil
	}
	if n > int64(s.conf.JoinApplyLimit) {
		return errorx.ErrTooManyRequests
	}
	return nil
}

// ApproveMembers 批量通过入群申请
// 非 PENDING 的用户直接跳过；返回实际被通过的用户，按请求顺序
func (s *memberService) ApproveMembers(ctx context.Context, callerId string, req request.ReviewMembersRequest) (*respond.ReviewRespond, error) {
	approved, err := s.review(callerId, req, permission.ActionApprove)
	if err != nil {
		return nil, err
	}
	if len(approved) > 0 {
		common.InvalidateCommunity(s.cache, req.CommunityId)
	}

	intents := make([]notify.Intent, 0, len(approved))
	for _, userId := range approved {
		intents = append(intents, notify.New(userId, notify.MembershipApproved, map[string]string{
			"community_id": req.CommunityId,
		}))
	}
	common.Publish(ctx, s.pub, intents...)
	return &respond.ReviewRespond{UserIds: approved}, nil
}

// RejectApplications 批量拒绝入群申请，记录被删除
func (s *memberService) RejectApplications(ctx context.Context, callerId string, req request.ReviewMembersRequest) (*respond.ReviewRespond, error) {
	rejected, err := s.review(callerId, req, permission.ActionReject)
	if err != nil {
		return nil, err
	}

	intents := make([]notify.Intent, 0, len(rejected))
	for _, userId := range rejected {
		intents = append(intents, notify.New(userId, notify.JoinRejected, map[string]string{
			"community_id": req.CommunityId,
		}))
	}
	common.Publish(ctx, s.pub, intents...)
	return &respond.ReviewRespond{UserIds: rejected}, nil
}

// review 审核入群申请的公共流程，在一个事务内完成
func (s *memberService) review(callerId string, req request.ReviewMembersRequest, action permission.MembershipAction) ([]string, error) {
	if _, err := common.LoadActor(s.repos.User, callerId); err != nil {
		return nil, err
	}
	userIds := common.Dedupe(req.UserIds)
	if len(userIds) == 0 || len(userIds) > constants.MAX_BATCH_REVIEW_SIZE {
		return nil, errorx.Newf(errorx.CodeInvalidParam, "单次审核人数需在 1 到 %d 之间", constants.MAX_BATCH_REVIEW_SIZE)
	}

	handled := make([]string, 0, len(userIds))
	err := s.repos.Transaction(func(txRepos *repository.Repositories) error {
		if _, err := txRepos.Community.FindByUuidForUpdate(req.CommunityId); err != nil {
			return err
		}
		caller, err := common.ActiveMember(txRepos.Member, req.CommunityId, callerId)
		if err != nil {
			return err
		}
		ok, err := permission.CanReviewMembership(caller.Role)
		if err != nil {
			return err
		}
		if !ok {
			return errorx.New(errorx.CodeForbidden, "只有版主及以上可以审核入群申请")
		}

		members, err := txRepos.Member.FindByUserUuids(req.CommunityId, userIds)
		if err != nil {
			return err
		}
		byUser := make(map[string]model.CommunityMember, len(members))
		for _, m := range members {
			byUser[m.UserUuid] = m
		}

		for _, userId := range userIds {
			m, ok := byUser[userId]
			if !ok || m.Status != permission.StatusPending {
				continue
			}
			next, err := permission.Transition(m.Status, action)
			if err != nil {
				return err
			}
			if next == permission.StatusRemoved {
				err = txRepos.Member.Delete(req.CommunityId, userId, m.Status)
			} else {
				err = txRepos.Member.UpdateStatus(req.CommunityId, userId, m.Status, repository.MemberUpdate{Status: next})
			}
			if err != nil {
				return err
			}
			handled = append(handled, userId)
		}

		if action == permission.ActionApprove && len(handled) > 0 {
			return txRepos.Community.AddMemberCount(req.CommunityId, len(handled))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return handled, nil
}

// KickMember 踢出成员；Ban 为 true 时改为封禁并保留记录
// 封禁不减少成员数，踢出减少成员数
func (s *memberService) KickMember(ctx context.Context, callerId string, req request.KickMemberRequest) error {
	if _, err := common.LoadActor(s.repos.User, callerId); err != nil {
		return err
	}
	action := permission.ActionKick
	if req.Ban {
		action = permission.ActionBan
	}

	err := s.repos.Transaction(func(txRepos *repository.Repositories) error {
		target, err := s.checkModeration(txRepos, req.CommunityId, callerId, req.UserId)
		if err != nil {
			return err
		}
		next, err := permission.Transition(target.Status, action)
		if err != nil {
			return err
		}
		if next == permission.StatusBanned {
			now := time.Now()
			return txRepos.Member.UpdateStatus(req.CommunityId, req.UserId, target.Status, repository.MemberUpdate{
				Status:    next,
				BannedAt:  &now,
				BannedBy:  callerId,
				BanReason: req.Reason,
			})
		}
		if err := txRepos.Member.Delete(req.CommunityId, req.UserId, target.Status); err != nil {
			return err
		}
		return txRepos.Community.AddMemberCount(req.CommunityId, -1)
	})
	if err != nil {
		return err
	}

	typ := notify.MemberKicked
	if req.Ban {
		typ = notify.MemberBanned
	} else {
		common.InvalidateCommunity(s.cache, req.CommunityId)
	}
	common.Publish(ctx, s.pub, notify.New(req.UserId, typ, map[string]string{
		"community_id": req.CommunityId,
		"reason":       req.Reason,
	}))
	return nil
}

// UnbanMember 解封成员，权限要求与封禁相同
func (s *memberService) UnbanMember(ctx context.Context, callerId string, req request.UnbanMemberRequest) error {
	if _, err := common.LoadActor(s.repos.User, callerId); err != nil {
		return err
	}
	err := s.repos.Transaction(func(txRepos *repository.Repositories) error {
		target, err := s.checkModeration(txRepos, req.CommunityId, callerId, req.UserId)
		if err != nil {
			return err
		}
		next, err := permission.Transition(target.Status, permission.ActionUnban)
		if err != nil {
			return err
		}
		return txRepos.Member.UpdateStatus(req.CommunityId, req.UserId, target.Status, repository.MemberUpdate{Status: next})
	})
	if err != nil {
		return err
	}

	common.Publish(ctx, s.pub, notify.New(req.UserId, notify.MemberUnbanned, map[string]string{
		"community_id": req.CommunityId,
	}))
	return nil
}

// checkModeration 踢出、封禁、解封共用的权限校验，返回加锁读取的目标成员
func (s *memberService) checkModeration(txRepos *repository.Repositories, communityId, callerId, targetId string) (*model.CommunityMember, error) {
	community, err := txRepos.Community.FindByUuidForUpdate(communityId)
	if err != nil {
		return nil, err
	}
	caller, err := common.ActiveMember(txRepos.Member, communityId, callerId)
	if err != nil {
		return nil, err
	}
	ok, err := permission.CanReviewMembership(caller.Role)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, errorx.New(errorx.CodeForbidden, "只有版主及以上可以管理成员")
	}

	target, err := txRepos.Member.FindForUpdate(communityId, targetId)
	if err != nil {
		if errorx.IsNotFound(err) {
			return nil, errorx.New(errorx.CodeNotFound, "目标用户不是该社区成员")
		}
		return nil, err
	}
	targetIsOwner := target.Role == permission.CommunityOwner || community.OwnerId == targetId
	ok, err = permission.CanKickOrBan(caller.Role, target.Role, callerId == targetId, targetIsOwner)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, errorx.New(errorx.CodeForbidden, "无权处理该成员")
	}
	return target, nil
}

// LeaveCommunity 主动退出社区，群主需先转让
func (s *memberService) LeaveCommunity(ctx context.Context, userId string, req request.LeaveCommunityRequest) error {
	if _, err := common.LoadActor(s.repos.User, userId); err != nil {
		return err
	}
	err := s.repos.Transaction(func(txRepos *repository.Repositories) error {
		m, err := txRepos.Member.FindForUpdate(req.CommunityId, userId)
		if err != nil {
			if errorx.IsNotFound(err) {
				return errorx.New(errorx.CodeNotFound, "你不是该社区成员")
			}
			return err
		}
		if m.Role == permission.CommunityOwner {
			return errorx.New(errorx.CodeForbidden, "群主需要先转让社区才能退出")
		}
		if _, err := permission.Transition(m.Status, permission.ActionLeave); err != nil {
			return err
		}
		if err := txRepos.Member.Delete(req.CommunityId, userId, m.Status); err != nil {
			return err
		}
		return txRepos.Community.AddMemberCount(req.CommunityId, -1)
	})
	if err != nil {
		return err
	}
	common.InvalidateCommunity(s.cache, req.CommunityId)
	return nil
}

// GetMemberList 查询成员列表
// 正式成员对所有人可见，待审核与封禁名单只有版主及以上可见
func (s *memberService) GetMemberList(ctx context.Context, callerId string, req request.MemberListRequest) ([]respond.MemberRespond, error) {
	if _, err := s.repos.Community.FindByUuid(req.CommunityId); err != nil {
		return nil, err
	}
	status := permission.StatusActive
	if req.Status != "" {
		status = permission.MembershipStatus(req.Status)
		if !status.Valid() {
			return nil, errorx.Newf(errorx.CodeInvalidParam, "不支持的成员状态: %q", req.Status)
		}
	}
	if status != permission.StatusActive {
		caller, err := common.ActiveMember(s.repos.Member, req.CommunityId, callerId)
		if err != nil {
			return nil, err
		}
		ok, err := permission.CanReviewMembership(caller.Role)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, errorx.New(errorx.CodeForbidden, "只有版主及以上可以查看该名单")
		}
	}

	members, err := s.repos.Member.ListByStatus(req.CommunityId, status)
	if err != nil {
		return nil, err
	}
	rsp := make([]respond.MemberRespond, 0, len(members))
	for _, m := range members {
		rsp = append(rsp, respond.MemberRespond{
			UserId:    m.UserUuid,
			Role:      string(m.Role),
			Status:    string(m.Status),
			BannedAt:  respond.FormatTime(m.BannedAt),
			BannedBy:  m.BannedBy,
			BanReason: m.BanReason,
			JoinedAt:  respond.FormatTime(&m.CreatedAt),
		})
	}
	return rsp, nil
}
