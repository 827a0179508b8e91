package common

import (
	"context"
	"testing"

	"forum_server/internal/dao/memory"
	myredis "forum_server/internal/dao/redis"
	"forum_server/internal/dto/request"
	"forum_server/internal/model"
	"forum_server/internal/notify"
	"forum_server/internal/permission"
	"forum_server/pkg/errorx"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadActor(t *testing.T) {
	repos := memory.NewRepositories(memory.NewStore())
	require.NoError(t, repos.User.Create(&model.UserInfo{Uuid: "ok", Email: "ok@x.io", IsActive: true, GlobalRole: permission.GlobalUser}))
	require.NoError(t, repos.User.Create(&model.UserInfo{Uuid: "banned", Email: "b@x.io", IsActive: false, IsBanned: true}))
	require.NoError(t, repos.User.Create(&model.UserInfo{Uuid: "off", Email: "off@x.io", IsActive: false}))

	u, err := LoadActor(repos.User, "ok")
	require.NoError(t, err)
	assert.Equal(t, "ok", u.Uuid)

	_, err = LoadActor(repos.User, "ghost")
	assert.Equal(t, errorx.CodeUnauthorized, errorx.GetCode(err))
	_, err = LoadActor(repos.User, "banned")
	assert.Equal(t, errorx.CodeForbidden, errorx.GetCode(err))
	_, err = LoadActor(repos.User, "off")
	assert.Equal(t, errorx.CodeForbidden, errorx.GetCode(err))
}

func TestActiveMember(t *testing.T) {
	repos := memory.NewRepositories(memory.NewStore())
	require.NoError(t, repos.Member.Create(&model.CommunityMember{CommunityUuid: "c", UserUuid: "a", Role: permission.CommunityMember, Status: permission.StatusActive}))
	require.NoError(t, repos.Member.Create(&model.CommunityMember{CommunityUuid: "c", UserUuid: "p", Role: permission.CommunityMember, Status: permission.StatusPending}))

	m, err := ActiveMember(repos.Member, "c", "a")
	require.NoError(t, err)
	assert.Equal(t, permission.StatusActive, m.Status)

	_, err = ActiveMember(repos.Member, "c", "p")
	assert.Equal(t, errorx.CodeForbidden, errorx.GetCode(err))
	_, err = ActiveMember(repos.Member, "c", "nobody")
	assert.Equal(t, errorx.CodeForbidden, errorx.GetCode(err))
}

func TestPublishAndInvalidate(t *testing.T) {
	rec := &notify.Recorder{}
	Publish(context.Background(), rec)
	Publish(context.Background(), rec, notify.New("u", notify.MemberKicked, nil))
	Publish(context.Background(), nil, notify.New("u", notify.MemberKicked, nil))
	assert.Len(t, rec.Intents(), 1)

	cache := memory.NewCache()
	ctx := context.Background()
	require.NoError(t, cache.Set(ctx, myredis.CommunityInfoKey("c1"), "{}", 0))
	InvalidateCommunity(cache, "c1")
	v, err := cache.Get(ctx, myredis.CommunityInfoKey("c1"))
	require.NoError(t, err)
	assert.Empty(t, v)
	gen, err := cache.Get(ctx, myredis.CommunityInfoGenKey("c1"))
	require.NoError(t, err)
	assert.Equal(t, "1", gen)
}

func TestPageAndDedupe(t *testing.T) {
	p, size := Page(request.PageRequest{})
	assert.Equal(t, 1, p)
	assert.Equal(t, 20, size)
	_, size = Page(request.PageRequest{Page: 3, PageSize: 1000})
	assert.Equal(t, 100, size)

	assert.Equal(t, []string{"a", "b"}, Dedupe([]string{"a", "", "b", "a"}))
}

func TestRequireText(t *testing.T) {
	text, err := RequireText("标题", "  hello ")
	require.NoError(t, err)
	assert.Equal(t, "hello", text)

	_, err = RequireText("标题", " \t\n")
	assert.Equal(t, errorx.CodeInvalidParam, errorx.GetCode(err))
}
