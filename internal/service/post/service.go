// Package post 实现主站帖子、标签、评论以及帖子审核流程
package post

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"forum_server/internal/dao/mysql/repository"
	"forum_server/internal/dto/request"
	"forum_server/internal/dto/respond"
	"forum_server/internal/model"
	"forum_server/internal/notify"
	"forum_server/internal/permission"
	"forum_server/internal/service/common"
	"forum_server/pkg/constants"
	"forum_server/pkg/errorx"
	"forum_server/pkg/util/snowflake"
)

// postService 主站帖子业务逻辑实现
type postService struct {
	repos *repository.Repositories
	pub   notify.Publisher
}

// NewPostService 构造函数
func NewPostService(repos *repository.Repositories, pub notify.Publisher) *postService {
	return &postService{repos: repos, pub: pub}
}

// CreateCategory 创建主站分区，仅 ADMIN
func (s *postService) CreateCategory(ctx context.Context, callerId string, req request.CreateCategoryRequest) (*respond.CategoryRespond, error) {
	name, err := common.RequireText("分区名称", req.Name)
	if err != nil {
		return nil, err
	}
	caller, err := common.LoadActor(s.repos.User, callerId)
	if err != nil {
		return nil, err
	}
	ok, err := permission.CanManageMainCategories(caller.GlobalRole)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, errorx.New(errorx.CodeForbidden, "只有管理员可以创建分区")
	}
	category := &model.Category{
		Uuid:             snowflake.GenerateIDString(),
		Name:             name,
		RequiresApproval: req.RequiresApproval,
	}
	if err := s.repos.Category.Create(category); err != nil {
		return nil, err
	}
	return &respond.CategoryRespond{
		Uuid:             category.Uuid,
		Name:             category.Name,
		RequiresApproval: category.RequiresApproval,
	}, nil
}

// ListCategories 列出主站分区
func (s *postService) ListCategories(ctx context.Context) ([]respond.CategoryRespond, error) {
	categories, err := s.repos.Category.ListByCommunity("")
	if err != nil {
		return nil, err
	}
	rsp := make([]respond.CategoryRespond, 0, len(categories))
	for _, c := range categories {
		rsp = append(rsp, respond.CategoryRespond{Uuid: c.Uuid, Name: c.Name, RequiresApproval: c.RequiresApproval})
	}
	return rsp, nil
}

// CreatePost 创建帖子草稿，记录作者当时的全站角色
func (s *postService) CreatePost(ctx context.Context, callerId string, req request.CreatePostRequest) (*respond.PostRespond, error) {
	title, err := common.RequireText("标题", req.Title)
	if err != nil {
		return nil, err
	}
	caller, err := common.LoadActor(s.repos.User, callerId)
	if err != nil {
		return nil, err
	}
	tagNames, err := normalizeTags(req.Tags)
	if err != nil {
		return nil, err
	}
	category, err := s.repos.Category.FindByUuid(req.CategoryId)
	if err != nil {
		return nil, err
	}
	if category.CommunityUuid != "" {
		return nil, errorx.New(errorx.CodeInvalidParam, "不能在社区分区下发布主站帖子")
	}

	post := &model.Post{
		Uuid:             snowflake.GenerateIDString(),
		AuthorId:         caller.Uuid,
		AuthorGlobalRole: caller.GlobalRole,
		CategoryUuid:     category.Uuid,
		Title:            title,
		Content:          req.Content,
		Status:           permission.PostDraft,
	}
	var tags []model.Tag
	err = s.repos.Transaction(func(txRepos *repository.Repositories) error {
		if err := txRepos.Post.Create(post); err != nil {
			return err
		}
		if len(tagNames) == 0 {
			return nil
		}
		found, err := txRepos.Tag.FindOrCreateByNames(tagNames)
		if err != nil {
			return err
		}
		tags = found
		return txRepos.Tag.AttachToPost(post.Uuid, tagUuids(tags))
	})
	if err != nil {
		return nil, err
	}
	return toPost(post, tags), nil
}

// GetPost 查询帖子详情
// 未发布的帖子只有作者和审核人员可见
func (s *postService) GetPost(ctx context.Context, callerId, postId string) (*respond.PostRespond, error) {
	post, err := s.repos.Post.FindByUuid(postId)
	if err != nil {
		return nil, err
	}
	if post.Status != permission.PostPublished && post.AuthorId != callerId {
		caller, err := common.LoadActor(s.repos.User, callerId)
		if err != nil {
			return nil, err
		}
		ok, err := permission.CanModeratePosts(caller.GlobalRole)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, errorx.ErrNotFound
		}
	}
	tags, err := s.repos.Tag.FindByPost(post.Uuid)
	if err != nil {
		return nil, err
	}
	return toPost(post, tags), nil
}

// SubmitPost 作者提交草稿
// 按提交时分区的 requiresApproval 决定进入待审核还是直接发布
func (s *postService) SubmitPost(ctx context.Context, callerId string, req request.PostIdRequest) (*respond.PostRespond, error) {
	if _, err := common.LoadActor(s.repos.User, callerId); err != nil {
		return nil, err
	}
	var (
		post *model.Post
		tags []model.Tag
	)
	err := s.repos.Transaction(func(txRepos *repository.Repositories) error {
		var err error
		if post, err = txRepos.Post.FindByUuidForUpdate(req.PostId); err != nil {
			return err
		}
		if post.AuthorId != callerId {
			return errorx.New(errorx.CodeForbidden, "只有作者可以提交帖子")
		}
		category, err := txRepos.Category.FindByUuid(post.CategoryUuid)
		if err != nil {
			return err
		}
		now := time.Now()
		out, err := permission.Submit(post.Status, category.RequiresApproval, now)
		if err != nil {
			return err
		}
		if tags, err = s.apply(txRepos, post, out, &now); err != nil {
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return toPost(post, tags), nil
}

// UpdatePost 编辑帖子标题与正文
func (s *postService) UpdatePost(ctx context.Context, callerId string, req request.UpdatePostRequest) error {
	title, err := common.RequireText("标题", req.Title)
	if err != nil {
		return err
	}
	post, err := s.checkModifier(callerId, req.PostId)
	if err != nil {
		return err
	}
	return s.repos.Post.UpdateContent(post.Uuid, title, req.Content)
}

// DeletePost 删除帖子
func (s *postService) DeletePost(ctx context.Context, callerId string, req request.PostIdRequest) error {
	post, err := s.checkModifier(callerId, req.PostId)
	if err != nil {
		return err
	}
	return s.repos.Post.Delete(post.Uuid)
}

// checkModifier 作者本人或全站角色高于作者发帖时角色的用户可以修改
func (s *postService) checkModifier(callerId, postId string) (*model.Post, error) {
	caller, err := common.LoadActor(s.repos.User, callerId)
	if err != nil {
		return nil, err
	}
	post, err := s.repos.Post.FindByUuid(postId)
	if err != nil {
		return nil, err
	}
	ok, err := permission.CanModifyMainContent(caller.GlobalRole, post.AuthorId == callerId, post.AuthorGlobalRole)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, errorx.ErrForbidden
	}
	return post, nil
}

// ApprovePost 审核通过，ADMIN 或 MANAGER
// 对已发布的帖子重复调用只会重写审核字段，不会重复累加标签计数
func (s *postService) ApprovePost(ctx context.Context, callerId string, req request.PostIdRequest) (*respond.PostRespond, error) {
	if _, err := s.loadModerator(callerId); err != nil {
		return nil, err
	}
	return s.review(ctx, req.PostId, func(current permission.PostStatus) (permission.Outcome, error) {
		return permission.Approve(current, callerId, time.Now())
	})
}

// RejectPost 审核驳回，原因不能为空
func (s *postService) RejectPost(ctx context.Context, callerId string, req request.RejectPostRequest) (*respond.PostRespond, error) {
	if strings.TrimSpace(req.Reason) == "" {
		return nil, errorx.New(errorx.CodeInvalidParam, "驳回原因不能为空")
	}
	if _, err := s.loadModerator(callerId); err != nil {
		return nil, err
	}
	return s.review(ctx, req.PostId, func(current permission.PostStatus) (permission.Outcome, error) {
		return permission.Reject(current, req.Reason)
	})
}

// review 审核的公共流程：加锁读取、计算结果、条件写入，提交后通知作者
func (s *postService) review(ctx context.Context, postId string, decide func(permission.PostStatus) (permission.Outcome, error)) (*respond.PostRespond, error) {
	var (
		post *model.Post
		tags []model.Tag
		out  permission.Outcome
	)
	err := s.repos.Transaction(func(txRepos *repository.Repositories) error {
		var err error
		if post, err = txRepos.Post.FindByUuidForUpdate(postId); err != nil {
			return err
		}
		if out, err = decide(post.Status); err != nil {
			return err
		}
		tags, err = s.apply(txRepos, post, out, nil)
		return err
	})
	if err != nil {
		return nil, err
	}

	if out.Notify {
		typ := notify.PostApproved
		payload := map[string]string{"post_id": post.Uuid, "title": post.Title}
		if out.Status == permission.PostRejected {
			typ = notify.PostRejected
			payload["reason"] = out.RejectedReason
		}
		common.Publish(ctx, s.pub, notify.New(post.AuthorId, typ, payload))
	}
	zap.L().Info("post reviewed",
		zap.String("post_id", post.Uuid),
		zap.String("from", string(out.From)),
		zap.String("to", string(out.Status)))
	return toPost(post, tags), nil
}

// apply 以条件更新写入审核结果，需要时累加标签计数，并同步内存中的 post
func (s *postService) apply(txRepos *repository.Repositories, post *model.Post, out permission.Outcome, submittedAt *time.Time) ([]model.Tag, error) {
	err := txRepos.Post.UpdateStatus(post.Uuid, out.From, repository.PostStatusUpdate{
		Status:         out.Status,
		SubmittedAt:    submittedAt,
		ApprovedAt:     out.ApprovedAt,
		ApprovedById:   out.ApprovedById,
		RejectedReason: out.RejectedReason,
	})
	if err != nil {
		return nil, err
	}
	tags, err := txRepos.Tag.FindByPost(post.Uuid)
	if err != nil {
		return nil, err
	}
	if out.IncrementTags && len(tags) > 0 {
		if err := txRepos.Tag.IncrementPostCount(tagUuids(tags)); err != nil {
			return nil, err
		}
		for i := range tags {
			tags[i].PostCount++
		}
	}

	post.Status = out.Status
	post.ApprovedAt = out.ApprovedAt
	post.ApprovedById = out.ApprovedById
	post.RejectedReason = out.RejectedReason
	if submittedAt != nil {
		post.SubmittedAt = submittedAt
	}
	return tags, nil
}

// ListPending 分页查询待审核帖子，按提交先后排序
func (s *postService) ListPending(ctx context.Context, callerId string, req request.PageRequest) (*respond.PostListRespond, error) {
	if _, err := s.loadModerator(callerId); err != nil {
		return nil, err
	}
	page, pageSize := common.Page(req)
	posts, total, err := s.repos.Post.ListByStatus(permission.PostPending, page, pageSize)
	if err != nil {
		return nil, err
	}
	rsp := &respond.PostListRespond{Total: total, List: make([]respond.PostRespond, 0, len(posts))}
	for i := range posts {
		tags, err := s.repos.Tag.FindByPost(posts[i].Uuid)
		if err != nil {
			return nil, err
		}
		rsp.List = append(rsp.List, *toPost(&posts[i], tags))
	}
	return rsp, nil
}

func (s *postService) loadModerator(callerId string) (*model.UserInfo, error) {
	caller, err := common.LoadActor(s.repos.User, callerId)
	if err != nil {
		return nil, err
	}
	ok, err := permission.CanModeratePosts(caller.GlobalRole)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, errorx.New(errorx.CodeForbidden, "只有管理员或版主可以审核帖子")
	}
	return caller, nil
}

// normalizeTags 去空白、转小写、去重，数量不超过上限
func normalizeTags(raw []string) ([]string, error) {
	names := make([]string, 0, len(raw))
	for _, t := range raw {
		names = append(names, strings.ToLower(strings.TrimSpace(t)))
	}
	names = common.Dedupe(names)
	if len(names) > constants.MAX_TAGS_PER_POST {
		return nil, errorx.Newf(errorx.CodeInvalidParam, "标签最多 %d 个", constants.MAX_TAGS_PER_POST)
	}
	return names, nil
}

func tagUuids(tags []model.Tag) []string {
	ids := make([]string, 0, len(tags))
	for _, t := range tags {
		ids = append(ids, t.Uuid)
	}
	return ids
}

func toPost(p *model.Post, tags []model.Tag) *respond.PostRespond {
	names := make([]string, 0, len(tags))
	for _, t := range tags {
		names = append(names, t.Name)
	}
	return &respond.PostRespond{
		Uuid:             p.Uuid,
		AuthorId:         p.AuthorId,
		AuthorGlobalRole: string(p.AuthorGlobalRole),
		CategoryId:       p.CategoryUuid,
		Title:            p.Title,
		Content:          p.Content,
		Status:           string(p.Status),
		Tags:             names,
		SubmittedAt:      respond.FormatTime(p.SubmittedAt),
		ApprovedAt:       respond.FormatTime(p.ApprovedAt),
		ApprovedById:     p.ApprovedById,
		RejectedReason:   p.RejectedReason,
		CreatedAt:        respond.FormatTime(&p.CreatedAt),
	}
}
