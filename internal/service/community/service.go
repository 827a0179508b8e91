// Package community 提供社区本身的业务逻辑：创建、详情、群主转让、角色调整、分区与社区帖子
package community

import (
	"context"
	"encoding/json"
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
	"forum_server/pkg/constants"
	"forum_server/pkg/errorx"
	"forum_server/pkg/slug"
	"forum_server/pkg/util/snowflake"
)

// communityService 社区业务逻辑实现
type communityService struct {
	repos *repository.Repositories
	cache myredis.AsyncCacheService
	pub   notify.Publisher
}

// NewCommunityService 构造函数
func NewCommunityService(repos *repository.Repositories, cache myredis.AsyncCacheService, pub notify.Publisher) *communityService {
	return &communityService{repos: repos, cache: cache, pub: pub}
}

// CreateCommunity 创建社区，创建者成为群主
func (s *communityService) CreateCommunity(ctx context.Context, callerId string, req request.CreateCommunityRequest) (*respond.CommunityInfoRespond, error) {
	name, err := common.RequireText("社区名称", req.Name)
	if err != nil {
		return nil, err
	}
	caller, err := common.LoadActor(s.repos.User, callerId)
	if err != nil {
		return nil, err
	}

	community := &model.Community{
		Uuid:             snowflake.GenerateIDString(),
		Name:             name,
		Description:      req.Description,
		OwnerId:          caller.Uuid,
		MemberCnt:        1,
		RequiresApproval: req.RequiresApproval,
		Status:           model.CommunityStatusNormal,
	}
	community.Slug, err = s.uniqueSlug(community.Name, community.Uuid)
	if err != nil {
		return nil, err
	}

	err = s.repos.Transaction(func(txRepos *repository.Repositories) error {
		if err := txRepos.Community.Create(community); err != nil {
			return err
		}
		return txRepos.Member.Create(&model.CommunityMember{
			CommunityUuid: community.Uuid,
			UserUuid:      caller.Uuid,
			Role:          permission.CommunityOwner,
			Status:        permission.StatusActive,
		})
	})
	if err != nil {
		return nil, err
	}

	zap.L().Info("community created", zap.String("community_id", community.Uuid), zap.String("owner", caller.Uuid))
	return toCommunityInfo(community, nil), nil
}

// uniqueSlug 名称生成的短链为空或已被占用时，追加社区 ID 作为后缀
func (s *communityService) uniqueSlug(name, uuid string) (string, error) {
	base := slug.From(name)
	if base == "" {
		return slug.WithSuffix(base, uuid), nil
	}
	taken, err := s.repos.Community.ExistsBySlug(base)
	if err != nil {
		return "", err
	}
	if taken {
		return slug.WithSuffix(base, uuid), nil
	}
	return base, nil
}

// GetCommunityInfo 获取社区详情（含分区），优先读缓存
func (s *communityService) GetCommunityInfo(ctx context.Context, communityId string) (*respond.CommunityInfoRespond, error) {
	key := myredis.CommunityInfoKey(communityId)
	cached, err := s.cache.Get(ctx, key)
	if err != nil {
		zap.L().Warn("read community cache failed", zap.Error(err), zap.String("community_id", communityId))
	}
	if cached != "" {
		var rsp respond.CommunityInfoRespond
		if err := json.Unmarshal([]byte(cached), &rsp); err == nil {
			return &rsp, nil
		}
		zap.L().Warn("community cache is corrupted", zap.String("community_id", communityId))
	}

	// 回填前的版本号必须在读库之前取得
	genKey := myredis.CommunityInfoGenKey(communityId)
	gen, genErr := s.cache.Get(ctx, genKey)

	community, err := s.repos.Community.FindByUuid(communityId)
	if err != nil {
		return nil, err
	}
	categories, err := s.repos.Category.ListByCommunity(communityId)
	if err != nil {
		return nil, err
	}
	rsp := toCommunityInfo(community, categories)

	data, err := json.Marshal(rsp)
	if err == nil && genErr == nil {
		s.cache.SubmitTask(func() {
			ttl := time.Duration(constants.COMMUNITY_CACHE_TTL) * time.Minute
			if _, err := s.cache.SetIfUnchanged(context.Background(), key, string(data), ttl, genKey, gen); err != nil {
				zap.L().Warn("write community cache failed", zap.Error(err), zap.String("community_id", communityId))
			}
		})
	}
	return rsp, nil
}

// TransferOwnership 转让群主
// 目标成为 OWNER，原群主降为 ADMIN，社区群主同步修改，三者在同一事务内完成
func (s *communityService) TransferOwnership(ctx context.Context, callerId string, req request.TransferOwnershipRequest) error {
	if _, err := common.LoadActor(s.repos.User, callerId); err != nil {
		return err
	}

	err := s.repos.Transaction(func(txRepos *repository.Repositories) error {
		community, err := txRepos.Community.FindByUuidForUpdate(req.CommunityId)
		if err != nil {
			return err
		}
		caller, err := txRepos.Member.FindForUpdate(req.CommunityId, callerId)
		if err != nil {
			if errorx.IsNotFound(err) {
				return errorx.New(errorx.CodeForbidden, "只有群主可以转让社区")
			}
			return err
		}
		if caller.Role != permission.CommunityOwner || caller.Status != permission.StatusActive {
			return errorx.New(errorx.CodeForbidden, "只有群主可以转让社区")
		}

		target, err := txRepos.Member.FindForUpdate(req.CommunityId, req.TargetUserId)
		if err != nil {
			if errorx.IsNotFound(err) {
				return errorx.New(errorx.CodeNotFound, "目标用户不是该社区成员")
			}
			return err
		}
		if target.Role == permission.CommunityOwner {
			return errorx.New(errorx.CodeConflict, "目标用户已经是群主")
		}
		if target.Status != permission.StatusActive {
			return errorx.New(errorx.CodeInvalidParam, "只能转让给正式成员")
		}

		if err := txRepos.Member.UpdateRole(req.CommunityId, target.UserUuid, target.Role, permission.CommunityOwner); err != nil {
			return err
		}
		if err := txRepos.Member.UpdateRole(req.CommunityId, callerId, permission.CommunityOwner, permission.CommunityAdmin); err != nil {
			return err
		}
		return txRepos.Community.UpdateOwner(community.Uuid, callerId, target.UserUuid)
	})
	if err != nil {
		return err
	}

	common.InvalidateCommunity(s.cache, req.CommunityId)
	common.Publish(ctx, s.pub, notify.New(req.TargetUserId, notify.OwnershipTransferred, map[string]string{
		"community_id": req.CommunityId,
		"from":         callerId,
	}))
	return nil
}

// ChangeMemberRole 调整成员的社区角色（不包括群主）
func (s *communityService) ChangeMemberRole(ctx context.Context, callerId string, req request.ChangeMemberRoleRequest) error {
	if _, err := common.LoadActor(s.repos.User, callerId); err != nil {
		return err
	}
	next, err := permission.ParseCommunityRole(req.Role)
	if err != nil {
		return err
	}

	var from permission.CommunityRole
	err = s.repos.Transaction(func(txRepos *repository.Repositories) error {
		caller, err := common.ActiveMember(txRepos.Member, req.CommunityId, callerId)
		if err != nil {
			return err
		}
		target, err := txRepos.Member.FindForUpdate(req.CommunityId, req.UserId)
		if err != nil {
			if errorx.IsNotFound(err) {
				return errorx.New(errorx.CodeNotFound, "目标用户不是该社区成员")
			}
			return err
		}
		if target.Status != permission.StatusActive {
			return errorx.New(errorx.CodeInvalidParam, "只能调整正式成员的角色")
		}
		ok, err := permission.CanChangeCommunityRole(caller.Role, target.Role, next)
		if err != nil {
			return err
		}
		if !ok || caller.UserUuid == target.UserUuid {
			return errorx.New(errorx.CodeForbidden, "无权调整该成员的角色")
		}
		from = target.Role
		if from == next {
			return nil
		}
		return txRepos.Member.UpdateRole(req.CommunityId, req.UserId, from, next)
	})
	if err != nil {
		return err
	}
	if from == next {
		return nil
	}

	common.Publish(ctx, s.pub, notify.New(req.UserId, notify.CommunityRoleChanged, map[string]string{
		"community_id": req.CommunityId,
		"from":         string(from),
		"to":           string(next),
	}))
	return nil
}

// CreateCategory 创建社区分区，需要社区 ADMIN 及以上
func (s *communityService) CreateCategory(ctx context.Context, callerId string, req request.CreateCommunityCategoryRequest) (*respond.CategoryRespond, error) {
	name, err := common.RequireText("分区名称", req.Name)
	if err != nil {
		return nil, err
	}
	if err := s.checkCategoryManager(callerId, req.CommunityId); err != nil {
		return nil, err
	}
	category := &model.Category{
		Uuid:          snowflake.GenerateIDString(),
		CommunityUuid: req.CommunityId,
		Name:          name,
	}
	if err := s.repos.Category.Create(category); err != nil {
		return nil, err
	}
	common.InvalidateCommunity(s.cache, req.CommunityId)
	return toCategory(category), nil
}

// DeleteCategory 删除社区分区
func (s *communityService) DeleteCategory(ctx context.Context, callerId string, req request.DeleteCommunityCategoryRequest) error {
	if err := s.checkCategoryManager(callerId, req.CommunityId); err != nil {
		return err
	}
	category, err := s.repos.Category.FindByUuid(req.CategoryId)
	if err != nil {
		return err
	}
	if category.CommunityUuid != req.CommunityId {
		return errorx.New(errorx.CodeNotFound, "分区不属于该社区")
	}
	if err := s.repos.Category.Delete(category.Uuid); err != nil {
		return err
	}
	common.InvalidateCommunity(s.cache, req.CommunityId)
	return nil
}

func (s *communityService) checkCategoryManager(callerId, communityId string) error {
	if _, err := common.LoadActor(s.repos.User, callerId); err != nil {
		return err
	}
	if _, err := s.repos.Community.FindByUuid(communityId); err != nil {
		return err
	}
	member, err := common.ActiveMember(s.repos.Member, communityId, callerId)
	if err != nil {
		return err
	}
	ok, err := permission.CanManageCategories(member.Role)
	if err != nil {
		return err
	}
	if !ok {
		return errorx.New(errorx.CodeForbidden, "只有社区管理员可以管理分区")
	}
	return nil
}

// CreatePost 发布社区帖子，公告需要 MODERATOR 及以上
// 作者当时的社区角色写入 AuthorRole，之后的编辑、删除按该快照判断
func (s *communityService) CreatePost(ctx context.Context, callerId string, req request.CreateCommunityPostRequest) (*respond.CommunityPostRespond, error) {
	title, err := common.RequireText("标题", req.Title)
	if err != nil {
		return nil, err
	}
	if _, err := common.LoadActor(s.repos.User, callerId); err != nil {
		return nil, err
	}
	if _, err := s.repos.Community.FindByUuid(req.CommunityId); err != nil {
		return nil, err
	}
	member, err := common.ActiveMember(s.repos.Member, req.CommunityId, callerId)
	if err != nil {
		return nil, err
	}
	if req.IsAnnouncement {
		ok, err := permission.CanCreateAnnouncement(member.Role)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, errorx.New(errorx.CodeForbidden, "只有版主及以上可以发布公告")
		}
	}
	if req.CategoryId != "" {
		category, err := s.repos.Category.FindByUuid(req.CategoryId)
		if err != nil {
			return nil, err
		}
		if category.CommunityUuid != req.CommunityId {
			return nil, errorx.New(errorx.CodeNotFound, "分区不属于该社区")
		}
	}

	post := &model.CommunityPost{
		Uuid:           snowflake.GenerateIDString(),
		CommunityUuid:  req.CommunityId,
		CategoryUuid:   req.CategoryId,
		AuthorId:       callerId,
		AuthorRole:     member.Role,
		Title:          title,
		Content:        req.Content,
		IsAnnouncement: req.IsAnnouncement,
	}
	if err := s.repos.CommunityPost.Create(post); err != nil {
		return nil, err
	}
	return toCommunityPost(post), nil
}

// UpdatePost 编辑社区帖子
func (s *communityService) UpdatePost(ctx context.Context, callerId string, req request.UpdateCommunityPostRequest) error {
	title, err := common.RequireText("标题", req.Title)
	if err != nil {
		return err
	}
	post, err := s.checkPostModifier(callerId, req.PostId)
	if err != nil {
		return err
	}
	return s.repos.CommunityPost.UpdateContent(post.Uuid, title, req.Content)
}

// DeletePost 删除社区帖子
func (s *communityService) DeletePost(ctx context.Context, callerId string, req request.DeleteCommunityPostRequest) error {
	post, err := s.checkPostModifier(callerId, req.PostId)
	if err != nil {
		return err
	}
	return s.repos.CommunityPost.Delete(post.Uuid)
}

// checkPostModifier 作者本人或社区角色高于作者发帖时角色的成员可以修改
func (s *communityService) checkPostModifier(callerId, postId string) (*model.CommunityPost, error) {
	if _, err := common.LoadActor(s.repos.User, callerId); err != nil {
		return nil, err
	}
	post, err := s.repos.CommunityPost.FindByUuid(postId)
	if err != nil {
		return nil, err
	}
	member, err := common.ActiveMember(s.repos.Member, post.CommunityUuid, callerId)
	if err != nil {
		return nil, err
	}
	ok, err := permission.CanModifyCommunityContent(member.Role, post.AuthorId == callerId, post.AuthorRole)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, errorx.ErrForbidden
	}
	return post, nil
}

func toCategory(c *model.Category) *respond.CategoryRespond {
	return &respond.CategoryRespond{
		Uuid:             c.Uuid,
		CommunityId:      c.CommunityUuid,
		Name:             c.Name,
		RequiresApproval: c.RequiresApproval,
	}
}

func toCommunityInfo(c *model.Community, categories []model.Category) *respond.CommunityInfoRespond {
	rsp := &respond.CommunityInfoRespond{
		Uuid:             c.Uuid,
		Name:             c.Name,
		Slug:             c.Slug,
		Description:      c.Description,
		OwnerId:          c.OwnerId,
		MemberCnt:        c.MemberCnt,
		RequiresApproval: c.RequiresApproval,
		Categories:       make([]respond.CategoryRespond, 0, len(categories)),
		CreatedAt:        respond.FormatTime(&c.CreatedAt),
	}
	for i := range categories {
		rsp.Categories = append(rsp.Categories, *toCategory(&categories[i]))
	}
	return rsp
}

func toCommunityPost(p *model.CommunityPost) *respond.CommunityPostRespond {
	return &respond.CommunityPostRespond{
		Uuid:           p.Uuid,
		CommunityId:    p.CommunityUuid,
		CategoryId:     p.CategoryUuid,
		AuthorId:       p.AuthorId,
		AuthorRole:     string(p.AuthorRole),
		Title:          p.Title,
		Content:        p.Content,
		IsAnnouncement: p.IsAnnouncement,
		CreatedAt:      respond.FormatTime(&p.CreatedAt),
	}
}
