package post

import (
	"context"
	"sync"
	"testing"

	"forum_server/internal/dao/memory"
	"forum_server/internal/dao/mysql/repository"
	"forum_server/internal/dto/request"
	"forum_server/internal/dto/respond"
	"forum_server/internal/model"
	"forum_server/internal/notify"
	"forum_server/internal/permission"
	"forum_server/pkg/errorx"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	svc      *postService
	repos    *repository.Repositories
	rec      *notify.Recorder
	open     string // 无需审核的分区
	reviewed string // 需要审核的分区
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	repos := memory.NewRepositories(memory.NewStore())
	for id, role := range map[string]permission.GlobalRole{
		"admin":    permission.GlobalAdmin,
		"manager":  permission.GlobalManager,
		"manager2": permission.GlobalManager,
		"alice":    permission.GlobalUser,
		"bob":      permission.GlobalUser,
	} {
		require.NoError(t, repos.User.Create(&model.UserInfo{Uuid: id, Email: id + "@x.io", GlobalRole: role, IsActive: true}))
	}
	rec := &notify.Recorder{}
	f := &fixture{svc: NewPostService(repos, rec), repos: repos, rec: rec}

	ctx := context.Background()
	open, err := f.svc.CreateCategory(ctx, "admin", request.CreateCategoryRequest{Name: "chat"})
	require.NoError(t, err)
	reviewed, err := f.svc.CreateCategory(ctx, "admin", request.CreateCategoryRequest{Name: "news", RequiresApproval: true})
	require.NoError(t, err)
	f.open, f.reviewed = open.Uuid, reviewed.Uuid
	return f
}

func (f *fixture) draft(t *testing.T, author, category string, tags ...string) *respond.PostRespond {
	t.Helper()
	p, err := f.svc.CreatePost(context.Background(), author, request.CreatePostRequest{CategoryId: category, Title: "title", Content: "body", Tags: tags})
	require.NoError(t, err)
	return p
}

func (f *fixture) tagCounts(t *testing.T, postId string) map[string]int {
	t.Helper()
	tags, err := f.repos.Tag.FindByPost(postId)
	require.NoError(t, err)
	counts := make(map[string]int, len(tags))
	for _, tag := range tags {
		counts[tag.Name] = tag.PostCount
	}
	return counts
}

func TestCreateCategory_AdminOnly(t *testing.T) {
	f := newFixture(t)
	_, err := f.svc.CreateCategory(context.Background(), "manager", request.CreateCategoryRequest{Name: "x"})
	assert.Equal(t, errorx.CodeForbidden, errorx.GetCode(err))

	list, err := f.svc.ListCategories(context.Background())
	require.NoError(t, err)
	assert.Len(t, list, 2)
}

func TestCreatePost_DraftWithNormalizedTags(t *testing.T) {
	f := newFixture(t)
	p := f.draft(t, "alice", f.open, " Go ", "go", "GRPC")
	assert.Equal(t, "DRAFT", p.Status)
	assert.Equal(t, "USER", p.AuthorGlobalRole)
	assert.ElementsMatch(t, []string{"go", "grpc"}, p.Tags)
	assert.Equal(t, map[string]int{"go": 0, "grpc": 0}, f.tagCounts(t, p.Uuid))

	_, err := f.svc.CreatePost(context.Background(), "alice", request.CreatePostRequest{
		CategoryId: f.open, Title: "t", Tags: []string{"a", "b", "c", "d", "e", "f"},
	})
	assert.Equal(t, errorx.CodeInvalidParam, errorx.GetCode(err))

	_, err = f.svc.CreatePost(context.Background(), "alice", request.CreatePostRequest{CategoryId: "missing", Title: "t"})
	assert.Equal(t, errorx.CodeNotFound, errorx.GetCode(err))
}

func TestSubmitPost_OpenCategoryPublishesDirectly(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	p := f.draft(t, "alice", f.open, "go")

	_, err := f.svc.SubmitPost(ctx, "bob", request.PostIdRequest{PostId: p.Uuid})
	assert.Equal(t, errorx.CodeForbidden, errorx.GetCode(err))

	submitted, err := f.svc.SubmitPost(ctx, "alice", request.PostIdRequest{PostId: p.Uuid})
	require.NoError(t, err)
	assert.Equal(t, "PUBLISHED", submitted.Status)
	assert.Empty(t, submitted.ApprovedAt)
	assert.Empty(t, submitted.ApprovedById)
	assert.NotEmpty(t, submitted.SubmittedAt)
	assert.Equal(t, map[string]int{"go": 1}, f.tagCounts(t, p.Uuid))

	_, err = f.svc.SubmitPost(ctx, "alice", request.PostIdRequest{PostId: p.Uuid})
	assert.Equal(t, errorx.CodeConflict, errorx.GetCode(err))
	assert.Empty(t, f.rec.Intents())
}

func TestApprovePost(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	p := f.draft(t, "alice", f.reviewed, "go", "db")

	submitted, err := f.svc.SubmitPost(ctx, "alice", request.PostIdRequest{PostId: p.Uuid})
	require.NoError(t, err)
	assert.Equal(t, "PENDING", submitted.Status)
	assert.Equal(t, map[string]int{"go": 0, "db": 0}, f.tagCounts(t, p.Uuid))

	_, err = f.svc.ApprovePost(ctx, "alice", request.PostIdRequest{PostId: p.Uuid})
	assert.Equal(t, errorx.CodeForbidden, errorx.GetCode(err))

	pending, err := f.svc.ListPending(ctx, "manager", request.PageRequest{})
	require.NoError(t, err)
	assert.EqualValues(t, 1, pending.Total)

	approved, err := f.svc.ApprovePost(ctx, "manager", request.PostIdRequest{PostId: p.Uuid})
	require.NoError(t, err)
	assert.Equal(t, "PUBLISHED", approved.Status)
	assert.Equal(t, "manager", approved.ApprovedById)
	assert.Equal(t, map[string]int{"go": 1, "db": 1}, f.tagCounts(t, p.Uuid))
	require.Len(t, f.rec.OfType(notify.PostApproved), 1)
	assert.Equal(t, "alice", f.rec.OfType(notify.PostApproved)[0].UserID)

	// 重复审核通过：重写字段，不累加计数，不再通知
	again, err := f.svc.ApprovePost(ctx, "admin", request.PostIdRequest{PostId: p.Uuid})
	require.NoError(t, err)
	assert.Equal(t, "admin", again.ApprovedById)
	assert.Equal(t, map[string]int{"go": 1, "db": 1}, f.tagCounts(t, p.Uuid))
	assert.Len(t, f.rec.OfType(notify.PostApproved), 1)

	_, err = f.svc.RejectPost(ctx, "admin", request.RejectPostRequest{PostId: p.Uuid, Reason: "late"})
	assert.Equal(t, errorx.CodeConflict, errorx.GetCode(err))
}

func TestRejectPost(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	p := f.draft(t, "alice", f.reviewed, "go")
	_, err := f.svc.SubmitPost(ctx, "alice", request.PostIdRequest{PostId: p.Uuid})
	require.NoError(t, err)

	// 原因为空属于参数错误，状态不变
	_, err = f.svc.RejectPost(ctx, "manager", request.RejectPostRequest{PostId: p.Uuid, Reason: "   "})
	assert.Equal(t, errorx.CodeInvalidParam, errorx.GetCode(err))
	stored, err := f.repos.Post.FindByUuid(p.Uuid)
	require.NoError(t, err)
	assert.Equal(t, permission.PostPending, stored.Status)

	rejected, err := f.svc.RejectPost(ctx, "manager", request.RejectPostRequest{PostId: p.Uuid, Reason: " off topic "})
	require.NoError(t, err)
	assert.Equal(t, "REJECTED", rejected.Status)
	assert.Equal(t, "off topic", rejected.RejectedReason)
	assert.Empty(t, rejected.ApprovedById)
	assert.Equal(t, map[string]int{"go": 0}, f.tagCounts(t, p.Uuid))

	intents := f.rec.OfType(notify.PostRejected)
	require.Len(t, intents, 1)
	assert.Equal(t, "off topic", intents[0].Payload["reason"])

	_, err = f.svc.ApprovePost(ctx, "manager", request.PostIdRequest{PostId: p.Uuid})
	assert.Equal(t, errorx.CodeConflict, errorx.GetCode(err))

	_, err = f.svc.RejectPost(ctx, "manager", request.RejectPostRequest{PostId: p.Uuid, Reason: "again"})
	require.NoError(t, err)
	assert.Len(t, f.rec.OfType(notify.PostRejected), 1)
}

func TestApprovePost_ConcurrentIncrementsTagsOnce(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	p := f.draft(t, "alice", f.reviewed, "go")
	_, err := f.svc.SubmitPost(ctx, "alice", request.PostIdRequest{PostId: p.Uuid})
	require.NoError(t, err)

	var wg sync.WaitGroup
	for _, moderator := range []string{"admin", "manager", "manager2"} {
		wg.Add(1)
		go func(moderator string) {
			defer wg.Done()
			_, err := f.svc.ApprovePost(ctx, moderator, request.PostIdRequest{PostId: p.Uuid})
			assert.NoError(t, err)
		}(moderator)
	}
	wg.Wait()

	assert.Equal(t, map[string]int{"go": 1}, f.tagCounts(t, p.Uuid))
	assert.Len(t, f.rec.OfType(notify.PostApproved), 1)
}

func TestApproveVsReject_ConcurrentOneWins(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	p := f.draft(t, "alice", f.reviewed)
	_, err := f.svc.SubmitPost(ctx, "alice", request.PostIdRequest{PostId: p.Uuid})
	require.NoError(t, err)

	var (
		wg                    sync.WaitGroup
		approveErr, rejectErr error
	)
	wg.Add(2)
	go func() {
		defer wg.Done()
		_, approveErr = f.svc.ApprovePost(ctx, "admin", request.PostIdRequest{PostId: p.Uuid})
	}()
	go func() {
		defer wg.Done()
		_, rejectErr = f.svc.RejectPost(ctx, "manager", request.RejectPostRequest{PostId: p.Uuid, Reason: "no"})
	}()
	wg.Wait()

	if approveErr == nil {
		assert.Equal(t, errorx.CodeConflict, errorx.GetCode(rejectErr))
	} else {
		assert.NoError(t, rejectErr)
		assert.Equal(t, errorx.CodeConflict, errorx.GetCode(approveErr))
	}
	assert.Len(t, f.rec.Intents(), 1)
}

func TestModifyPost_UsesAuthorSnapshot(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	p := f.draft(t, "alice", f.open)

	// alice 发帖时是 USER，之后升为 MANAGER；另一个 MANAGER 仍可按快照编辑
	require.NoError(t, f.repos.User.UpdateGlobalRole("alice", permission.GlobalManager))
	require.NoError(t, f.svc.UpdatePost(ctx, "manager", request.UpdatePostRequest{PostId: p.Uuid, Title: "edited"}))
	stored, err := f.repos.Post.FindByUuid(p.Uuid)
	require.NoError(t, err)
	assert.Equal(t, "edited", stored.Title)

	err = f.svc.UpdatePost(ctx, "bob", request.UpdatePostRequest{PostId: p.Uuid, Title: "hijack"})
	assert.Equal(t, errorx.CodeForbidden, errorx.GetCode(err))

	managerPost := f.draft(t, "manager", f.open)
	err = f.svc.DeletePost(ctx, "manager2", request.PostIdRequest{PostId: managerPost.Uuid})
	assert.Equal(t, errorx.CodeForbidden, errorx.GetCode(err))
	require.NoError(t, f.svc.DeletePost(ctx, "admin", request.PostIdRequest{PostId: managerPost.Uuid}))

	// 作者被降级后仍可编辑自己的帖子
	require.NoError(t, f.repos.User.UpdateGlobalRole("alice", permission.GlobalUser))
	require.NoError(t, f.svc.UpdatePost(ctx, "alice", request.UpdatePostRequest{PostId: p.Uuid, Title: "mine"}))
}

func TestGetPost_Visibility(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	p := f.draft(t, "alice", f.open)

	_, err := f.svc.GetPost(ctx, "bob", p.Uuid)
	assert.Equal(t, errorx.CodeNotFound, errorx.GetCode(err))
	_, err = f.svc.GetPost(ctx, "manager", p.Uuid)
	require.NoError(t, err)
	_, err = f.svc.GetPost(ctx, "alice", p.Uuid)
	require.NoError(t, err)
}

func TestComments(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	p := f.draft(t, "alice", f.open)

	_, err := f.svc.CreateComment(ctx, "bob", request.CreateCommentRequest{PostId: p.Uuid, Content: "first"})
	assert.Equal(t, errorx.CodeConflict, errorx.GetCode(err))

	_, err = f.svc.SubmitPost(ctx, "alice", request.PostIdRequest{PostId: p.Uuid})
	require.NoError(t, err)

	c, err := f.svc.CreateComment(ctx, "bob", request.CreateCommentRequest{PostId: p.Uuid, Content: " first "})
	require.NoError(t, err)
	assert.Equal(t, "first", c.Content)

	err = f.svc.UpdateComment(ctx, "alice", request.UpdateCommentRequest{CommentId: c.Uuid, Content: "x"})
	assert.Equal(t, errorx.CodeForbidden, errorx.GetCode(err))

	require.NoError(t, f.svc.UpdateComment(ctx, "bob", request.UpdateCommentRequest{CommentId: c.Uuid, Content: "edited"}))
	require.NoError(t, f.svc.DeleteComment(ctx, "manager", request.DeleteCommentRequest{CommentId: c.Uuid}))
	_, err = f.repos.Comment.FindByUuid(c.Uuid)
	assert.Equal(t, errorx.CodeNotFound, errorx.GetCode(err))
}

func TestBlankText_Rejected(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.svc.CreatePost(ctx, "alice", request.CreatePostRequest{CategoryId: f.open, Title: "   "})
	assert.Equal(t, errorx.CodeInvalidParam, errorx.GetCode(err))
	_, err = f.svc.CreateCategory(ctx, "admin", request.CreateCategoryRequest{Name: "\t"})
	assert.Equal(t, errorx.CodeInvalidParam, errorx.GetCode(err))

	p := f.draft(t, "alice", f.open)
	err = f.svc.UpdatePost(ctx, "alice", request.UpdatePostRequest{PostId: p.Uuid, Title: " "})
	assert.Equal(t, errorx.CodeInvalidParam, errorx.GetCode(err))
	stored, err := f.repos.Post.FindByUuid(p.Uuid)
	require.NoError(t, err)
	assert.Equal(t, "title", stored.Title)

	_, err = f.svc.SubmitPost(ctx, "alice", request.PostIdRequest{PostId: p.Uuid})
	require.NoError(t, err)
	_, err = f.svc.CreateComment(ctx, "bob", request.CreateCommentRequest{PostId: p.Uuid, Content: " \n "})
	assert.Equal(t, errorx.CodeInvalidParam, errorx.GetCode(err))

	c, err := f.svc.CreateComment(ctx, "bob", request.CreateCommentRequest{PostId: p.Uuid, Content: "ok"})
	require.NoError(t, err)
	err = f.svc.UpdateComment(ctx, "bob", request.UpdateCommentRequest{CommentId: c.Uuid, Content: "  "})
	assert.Equal(t, errorx.CodeInvalidParam, errorx.GetCode(err))
	comment, err := f.repos.Comment.FindByUuid(c.Uuid)
	require.NoError(t, err)
	assert.Equal(t, "ok", comment.Content)
}
