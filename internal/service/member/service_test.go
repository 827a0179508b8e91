package member

import (
	"context"
	"testing"
	"time"

	"forum_server/internal/config"
	"forum_server/internal/dao/memory"
	"forum_server/internal/dao/mysql/repository"
	"forum_server/internal/dto/request"
	"forum_server/internal/model"
	"forum_server/internal/notify"
	"forum_server/internal/permission"
	"forum_server/pkg/errorx"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	openId   = "open"
	closedId = "closed"
)

type fixture struct {
	svc   *memberService
	repos *repository.Repositories
	cache *memory.Cache
	rec   *notify.Recorder
}

// newFixture 两个社区：open 无需审核，closed 需要审核；owner 是两个社区的群主
func newFixture(t *testing.T, conf config.ModerationConfig) *fixture {
	t.Helper()
	repos := memory.NewRepositories(memory.NewStore())
	for _, id := range []string{"owner", "admin", "mod", "mod2", "alice", "bob", "carol"} {
		require.NoError(t, repos.User.Create(&model.UserInfo{Uuid: id, Email: id + "@x.io", GlobalRole: permission.GlobalUser, IsActive: true}))
	}
	for _, c := range []model.Community{
		{Uuid: openId, Name: "open", Slug: "open", OwnerId: "owner", MemberCnt: 4},
		{Uuid: closedId, Name: "closed", Slug: "closed", OwnerId: "owner", MemberCnt: 4, RequiresApproval: true},
	} {
		c := c
		require.NoError(t, repos.Community.Create(&c))
		for user, role := range map[string]permission.CommunityRole{
			"owner": permission.CommunityOwner,
			"admin": permission.CommunityAdmin,
			"mod":   permission.CommunityModerator,
			"mod2":  permission.CommunityModerator,
		} {
			require.NoError(t, repos.Member.Create(&model.CommunityMember{CommunityUuid: c.Uuid, UserUuid: user, Role: role, Status: permission.StatusActive}))
		}
	}
	cache := memory.NewCache()
	rec := &notify.Recorder{}
	return &fixture{svc: NewMemberService(repos, cache, rec, conf), repos: repos, cache: cache, rec: rec}
}

func (f *fixture) memberCount(t *testing.T, id string) int {
	t.Helper()
	c, err := f.repos.Community.FindByUuid(id)
	require.NoError(t, err)
	return c.MemberCnt
}

func (f *fixture) status(t *testing.T, community, user string) permission.MembershipStatus {
	t.Helper()
	m, err := f.repos.Member.Find(community, user)
	if errorx.IsNotFound(err) {
		return permission.StatusRemoved
	}
	require.NoError(t, err)
	return m.Status
}

func TestJoinCommunity(t *testing.T) {
	f := newFixture(t, config.ModerationConfig{})
	ctx := context.Background()

	rsp, err := f.svc.JoinCommunity(ctx, "alice", request.JoinCommunityRequest{CommunityId: openId})
	require.NoError(t, err)
	assert.Equal(t, "ACTIVE", rsp.Status)
	assert.Equal(t, 5, f.memberCount(t, openId))

	rsp, err = f.svc.JoinCommunity(ctx, "alice", request.JoinCommunityRequest{CommunityId: closedId})
	require.NoError(t, err)
	assert.Equal(t, "PENDING", rsp.Status)
	assert.Equal(t, 4, f.memberCount(t, closedId), "pending members are not counted")

	_, err = f.svc.JoinCommunity(ctx, "alice", request.JoinCommunityRequest{CommunityId: closedId})
	assert.Equal(t, errorx.CodeConflict, errorx.GetCode(err))

	_, err = f.svc.JoinCommunity(ctx, "alice", request.JoinCommunityRequest{CommunityId: "missing"})
	assert.Equal(t, errorx.CodeNotFound, errorx.GetCode(err))
}

func TestJoinCommunity_Throttled(t *testing.T) {
	f := newFixture(t, config.ModerationConfig{JoinApplyLimit: 1, JoinApplyWindowMinutes: 10})
	ctx := context.Background()

	_, err := f.svc.JoinCommunity(ctx, "alice", request.JoinCommunityRequest{CommunityId: openId})
	require.NoError(t, err)
	_, err = f.svc.JoinCommunity(ctx, "alice", request.JoinCommunityRequest{CommunityId: closedId})
	assert.Equal(t, errorx.CodeTooManyRequests, errorx.GetCode(err))

	f.cache.Advance(11 * time.Minute)
	_, err = f.svc.JoinCommunity(ctx, "alice", request.JoinCommunityRequest{CommunityId: closedId})
	require.NoError(t, err)
}

func TestApproveMembers(t *testing.T) {
	f := newFixture(t, config.ModerationConfig{})
	ctx := context.Background()
	for _, u := range []string{"alice", "bob"} {
		_, err := f.svc.JoinCommunity(ctx, u, request.JoinCommunityRequest{CommunityId: closedId})
		require.NoError(t, err)
	}

	// carol 不是申请人，mod 已是正式成员，都被跳过
	rsp, err := f.svc.ApproveMembers(ctx, "mod", request.ReviewMembersRequest{
		CommunityId: closedId,
		UserIds:     []string{"bob", "carol", "mod", "alice", "bob"},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"bob", "alice"}, rsp.UserIds)
	assert.Equal(t, 6, f.memberCount(t, closedId))
	assert.Equal(t, permission.StatusActive, f.status(t, closedId, "alice"))
	assert.Len(t, f.rec.OfType(notify.MembershipApproved), 2)

	// 再次通过是空结果，不是错误
	rsp, err = f.svc.ApproveMembers(ctx, "mod", request.ReviewMembersRequest{CommunityId: closedId, UserIds: []string{"alice"}})
	require.NoError(t, err)
	assert.Empty(t, rsp.UserIds)
	assert.Equal(t, 6, f.memberCount(t, closedId))
}

func TestReviewMembers_RequiresModerator(t *testing.T) {
	f := newFixture(t, config.ModerationConfig{})
	ctx := context.Background()
	_, err := f.svc.JoinCommunity(ctx, "alice", request.JoinCommunityRequest{CommunityId: openId})
	require.NoError(t, err)
	_, err = f.svc.JoinCommunity(ctx, "bob", request.JoinCommunityRequest{CommunityId: closedId})
	require.NoError(t, err)

	_, err = f.svc.ApproveMembers(ctx, "alice", request.ReviewMembersRequest{CommunityId: openId, UserIds: []string{"bob"}})
	assert.Equal(t, errorx.CodeForbidden, errorx.GetCode(err))

	// alice 只是 open 社区成员，对 closed 社区无权
	_, err = f.svc.RejectApplications(ctx, "alice", request.ReviewMembersRequest{CommunityId: closedId, UserIds: []string{"bob"}})
	assert.Equal(t, errorx.CodeForbidden, errorx.GetCode(err))
	assert.Equal(t, permission.StatusPending, f.status(t, closedId, "bob"))
}

func TestRejectApplications(t *testing.T) {
	f := newFixture(t, config.ModerationConfig{})
	ctx := context.Background()
	_, err := f.svc.JoinCommunity(ctx, "alice", request.JoinCommunityRequest{CommunityId: closedId})
	require.NoError(t, err)

	rsp, err := f.svc.RejectApplications(ctx, "admin", request.ReviewMembersRequest{CommunityId: closedId, UserIds: []string{"alice"}})
	require.NoError(t, err)
	assert.Equal(t, []string{"alice"}, rsp.UserIds)
	assert.Equal(t, permission.StatusRemoved, f.status(t, closedId, "alice"))
	assert.Equal(t, 4, f.memberCount(t, closedId))
	assert.Len(t, f.rec.OfType(notify.JoinRejected), 1)

	// 被拒绝后可以重新申请
	_, err = f.svc.JoinCommunity(ctx, "alice", request.JoinCommunityRequest{CommunityId: closedId})
	require.NoError(t, err)
}

func TestKickAndBan(t *testing.T) {
	f := newFixture(t, config.ModerationConfig{})
	ctx := context.Background()
	for _, u := range []string{"alice", "bob"} {
		_, err := f.svc.JoinCommunity(ctx, u, request.JoinCommunityRequest{CommunityId: openId})
		require.NoError(t, err)
	}
	assert.Equal(t, 6, f.memberCount(t, openId))

	require.NoError(t, f.svc.KickMember(ctx, "mod", request.KickMemberRequest{CommunityId: openId, UserId: "alice"}))
	assert.Equal(t, permission.StatusRemoved, f.status(t, openId, "alice"))
	assert.Equal(t, 5, f.memberCount(t, openId))
	assert.Len(t, f.rec.OfType(notify.MemberKicked), 1)

	require.NoError(t, f.svc.KickMember(ctx, "mod", request.KickMemberRequest{CommunityId: openId, UserId: "bob", Ban: true, Reason: "spam"}))
	m, err := f.repos.Member.Find(openId, "bob")
	require.NoError(t, err)
	assert.Equal(t, permission.StatusBanned, m.Status)
	assert.Equal(t, "mod", m.BannedBy)
	assert.Equal(t, "spam", m.BanReason)
	require.NotNil(t, m.BannedAt)
	assert.Equal(t, 5, f.memberCount(t, openId), "ban keeps the member count")
	assert.Len(t, f.rec.OfType(notify.MemberBanned), 1)

	// 被封禁的用户不能重新加入
	_, err = f.svc.JoinCommunity(ctx, "bob", request.JoinCommunityRequest{CommunityId: openId})
	assert.Equal(t, errorx.CodeForbidden, errorx.GetCode(err))

	// 封禁状态不能再被踢出
	err = f.svc.KickMember(ctx, "admin", request.KickMemberRequest{CommunityId: openId, UserId: "bob"})
	assert.Equal(t, errorx.CodeConflict, errorx.GetCode(err))

	require.NoError(t, f.svc.UnbanMember(ctx, "admin", request.UnbanMemberRequest{CommunityId: openId, UserId: "bob"}))
	m, err = f.repos.Member.Find(openId, "bob")
	require.NoError(t, err)
	assert.Equal(t, permission.StatusActive, m.Status)
	assert.Nil(t, m.BannedAt)
	assert.Empty(t, m.BanReason)
	assert.Len(t, f.rec.OfType(notify.MemberUnbanned), 1)

	err = f.svc.UnbanMember(ctx, "admin", request.UnbanMemberRequest{CommunityId: openId, UserId: "bob"})
	assert.Equal(t, errorx.CodeConflict, errorx.GetCode(err))
}

func TestKickMember_Gates(t *testing.T) {
	f := newFixture(t, config.ModerationConfig{})
	ctx := context.Background()
	_, err := f.svc.JoinCommunity(ctx, "alice", request.JoinCommunityRequest{CommunityId: openId})
	require.NoError(t, err)

	tests := []struct {
		name   string
		caller string
		target string
		code   int
	}{
		{"member cannot kick", "alice", "mod", errorx.CodeForbidden},
		{"equal rank", "mod", "mod2", errorx.CodeForbidden},
		{"lower rank", "mod", "admin", errorx.CodeForbidden},
		{"owner is untouchable", "admin", "owner", errorx.CodeForbidden},
		{"self", "admin", "admin", errorx.CodeForbidden},
		{"outsider caller", "carol", "alice", errorx.CodeForbidden},
		{"target not a member", "admin", "carol", errorx.CodeNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := f.svc.KickMember(ctx, tt.caller, request.KickMemberRequest{CommunityId: openId, UserId: tt.target, Ban: true})
			assert.Equal(t, tt.code, errorx.GetCode(err))
		})
	}
	assert.Empty(t, f.rec.Intents())
}

func TestLeaveCommunity(t *testing.T) {
	f := newFixture(t, config.ModerationConfig{})
	ctx := context.Background()
	_, err := f.svc.JoinCommunity(ctx, "alice", request.JoinCommunityRequest{CommunityId: openId})
	require.NoError(t, err)

	require.NoError(t, f.svc.LeaveCommunity(ctx, "alice", request.LeaveCommunityRequest{CommunityId: openId}))
	assert.Equal(t, 4, f.memberCount(t, openId))

	err = f.svc.LeaveCommunity(ctx, "alice", request.LeaveCommunityRequest{CommunityId: openId})
	assert.Equal(t, errorx.CodeNotFound, errorx.GetCode(err))

	err = f.svc.LeaveCommunity(ctx, "owner", request.LeaveCommunityRequest{CommunityId: openId})
	assert.Equal(t, errorx.CodeForbidden, errorx.GetCode(err))

	_, err = f.svc.JoinCommunity(ctx, "bob", request.JoinCommunityRequest{CommunityId: closedId})
	require.NoError(t, err)
	err = f.svc.LeaveCommunity(ctx, "bob", request.LeaveCommunityRequest{CommunityId: closedId})
	assert.Equal(t, errorx.CodeConflict, errorx.GetCode(err))
}

func TestGetMemberList(t *testing.T) {
	f := newFixture(t, config.ModerationConfig{})
	ctx := context.Background()
	_, err := f.svc.JoinCommunity(ctx, "alice", request.JoinCommunityRequest{CommunityId: closedId})
	require.NoError(t, err)

	active, err := f.svc.GetMemberList(ctx, "carol", request.MemberListRequest{CommunityId: closedId})
	require.NoError(t, err)
	assert.Len(t, active, 4)

	_, err = f.svc.GetMemberList(ctx, "carol", request.MemberListRequest{CommunityId: closedId, Status: "PENDING"})
	assert.Equal(t, errorx.CodeForbidden, errorx.GetCode(err))

	pending, err := f.svc.GetMemberList(ctx, "mod", request.MemberListRequest{CommunityId: closedId, Status: "PENDING"})
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, "alice", pending[0].UserId)
}
