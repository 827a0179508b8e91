package memory

import (
	"slices"
	"time"

	"forum_server/internal/dao/mysql/repository"
	"forum_server/internal/model"
	"forum_server/internal/permission"
	"forum_server/pkg/errorx"
	"forum_server/pkg/util/snowflake"

	"gorm.io/gorm"
)

type gormModel = gorm.Model

// ==================== User ====================

type userRepository struct{ s *Store }

func (r *userRepository) FindByUuid(uuid string) (*model.UserInfo, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	u, ok := r.s.data.users[uuid]
	if !ok {
		return nil, errorx.Newf(errorx.CodeNotFound, "查询用户 uuid=%s", uuid)
	}
	return &u, nil
}

func (r *userRepository) FindByEmail(email string) (*model.UserInfo, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, u := range r.s.data.users {
		if u.Email == email {
			return &u, nil
		}
	}
	return nil, errorx.Newf(errorx.CodeNotFound, "查询用户 email=%s", email)
}

func (r *userRepository) Create(user *model.UserInfo) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.data.users[user.Uuid]; ok {
		return errorx.New(errorx.CodeConflict, "创建用户")
	}
	for _, u := range r.s.data.users {
		if u.Email == user.Email {
			return errorx.New(errorx.CodeConflict, "创建用户")
		}
	}
	r.s.stamp(&user.Model)
	r.s.data.users[user.Uuid] = *user
	return nil
}

func (r *userRepository) update(uuid string, fn func(u *model.UserInfo)) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	u, ok := r.s.data.users[uuid]
	if !ok {
		return errorx.Newf(errorx.CodeConflict, "用户 %s 不存在", uuid)
	}
	fn(&u)
	u.UpdatedAt = time.Now()
	r.s.data.users[uuid] = u
	return nil
}

func (r *userRepository) UpdateGlobalRole(uuid string, role permission.GlobalRole) error {
	return r.update(uuid, func(u *model.UserInfo) { u.GlobalRole = role })
}

func (r *userRepository) UpdateBan(uuid string, banned bool, bannedAt *time.Time, reason string) error {
	return r.update(uuid, func(u *model.UserInfo) {
		u.IsBanned = banned
		u.BannedAt = bannedAt
		u.BanReason = reason
		if banned {
			u.IsActive = false
		}
	})
}

func (r *userRepository) UpdateActive(uuid string, active bool) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if u, ok := r.s.data.users[uuid]; ok {
		u.IsActive = active
		r.s.data.users[uuid] = u
	}
	return nil
}

// ==================== Community ====================

type communityRepository struct{ s *Store }

func (r *communityRepository) FindByUuid(uuid string) (*model.Community, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	c, ok := r.s.data.communities[uuid]
	if !ok {
		return nil, errorx.Newf(errorx.CodeNotFound, "查询社区 uuid=%s", uuid)
	}
	return &c, nil
}

// FindByUuidForUpdate 事务已串行化，等同于普通读取
func (r *communityRepository) FindByUuidForUpdate(uuid string) (*model.Community, error) {
	return r.FindByUuid(uuid)
}

func (r *communityRepository) ExistsBySlug(slug string) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, c := range r.s.data.communities {
		if c.Slug == slug {
			return true, nil
		}
	}
	return false, nil
}

func (r *communityRepository) Create(community *model.Community) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, c := range r.s.data.communities {
		if c.Uuid == community.Uuid || c.Slug == community.Slug {
			return errorx.New(errorx.CodeConflict, "创建社区")
		}
	}
	r.s.stamp(&community.Model)
	r.s.data.communities[community.Uuid] = *community
	return nil
}

func (r *communityRepository) UpdateOwner(uuid, fromOwnerId, toOwnerId string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	c, ok := r.s.data.communities[uuid]
	if !ok || c.OwnerId != fromOwnerId {
		return errorx.Newf(errorx.CodeConflict, "社区 %s 的群主已变更", uuid)
	}
	c.OwnerId = toOwnerId
	r.s.data.communities[uuid] = c
	return nil
}

func (r *communityRepository) AddMemberCount(uuid string, delta int) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if c, ok := r.s.data.communities[uuid]; ok {
		c.MemberCnt += delta
		r.s.data.communities[uuid] = c
	}
	return nil
}

// ==================== CommunityMember ====================

type memberRepository struct{ s *Store }

func (r *memberRepository) Find(communityUuid, userUuid string) (*model.CommunityMember, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	m, ok := r.s.data.members[memberKey{communityUuid, userUuid}]
	if !ok {
		return nil, errorx.Newf(errorx.CodeNotFound, "查询社区成员 community=%s user=%s", communityUuid, userUuid)
	}
	return &m, nil
}

func (r *memberRepository) FindForUpdate(communityUuid, userUuid string) (*model.CommunityMember, error) {
	return r.Find(communityUuid, userUuid)
}

func (r *memberRepository) FindByUserUuids(communityUuid string, userUuids []string) ([]model.CommunityMember, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	members := make([]model.CommunityMember, 0, len(userUuids))
	seen := make(map[string]bool, len(userUuids))
	for _, userUuid := range userUuids {
		if seen[userUuid] {
			continue
		}
		seen[userUuid] = true
		if m, ok := r.s.data.members[memberKey{communityUuid, userUuid}]; ok {
			members = append(members, m)
		}
	}
	return sortedByID(members, memberID), nil
}

func (r *memberRepository) ListByStatus(communityUuid string, status permission.MembershipStatus) ([]model.CommunityMember, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var members []model.CommunityMember
	for key, m := range r.s.data.members {
		if key.community == communityUuid && m.Status == status {
			members = append(members, m)
		}
	}
	return sortedByID(members, memberID), nil
}

func (r *memberRepository) Create(member *model.CommunityMember) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	key := memberKey{member.CommunityUuid, member.UserUuid}
	if _, ok := r.s.data.members[key]; ok {
		return errorx.New(errorx.CodeConflict, "创建社区成员")
	}
	r.s.stamp(&member.Model)
	r.s.data.members[key] = *member
	return nil
}

func (r *memberRepository) UpdateRole(communityUuid, userUuid string, from, to permission.CommunityRole) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	key := memberKey{communityUuid, userUuid}
	m, ok := r.s.data.members[key]
	if !ok || m.Role != from {
		return errorx.Newf(errorx.CodeConflict, "成员 %s 的角色已变更", userUuid)
	}
	m.Role = to
	r.s.data.members[key] = m
	return nil
}

func (r *memberRepository) UpdateStatus(communityUuid, userUuid string, from permission.MembershipStatus, update repository.MemberUpdate) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	key := memberKey{communityUuid, userUuid}
	m, ok := r.s.data.members[key]
	if !ok || m.Status != from {
		return errorx.Newf(errorx.CodeConflict, "成员 %s 的状态已变更", userUuid)
	}
	m.Status = update.Status
	m.BannedAt = update.BannedAt
	m.BannedBy = update.BannedBy
	m.BanReason = update.BanReason
	r.s.data.members[key] = m
	return nil
}

func (r *memberRepository) Delete(communityUuid, userUuid string, from permission.MembershipStatus) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	key := memberKey{communityUuid, userUuid}
	m, ok := r.s.data.members[key]
	if !ok || m.Status != from {
		return errorx.Newf(errorx.CodeConflict, "成员 %s 的状态已变更", userUuid)
	}
	delete(r.s.data.members, key)
	return nil
}

func memberID(m model.CommunityMember) uint { return m.ID }

// ==================== Category ====================

type categoryRepository struct{ s *Store }

func (r *categoryRepository) FindByUuid(uuid string) (*model.Category, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	c, ok := r.s.data.categories[uuid]
	if !ok {
		return nil, errorx.Newf(errorx.CodeNotFound, "查询分区 uuid=%s", uuid)
	}
	return &c, nil
}

func (r *categoryRepository) ListByCommunity(communityUuid string) ([]model.Category, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	list := make([]model.Category, 0)
	for _, c := range r.s.data.categories {
		if c.CommunityUuid == communityUuid {
			list = append(list, c)
		}
	}
	return sortedByID(list, func(c model.Category) uint { return c.ID }), nil
}

func (r *categoryRepository) Create(category *model.Category) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.data.categories[category.Uuid]; ok {
		return errorx.New(errorx.CodeConflict, "创建分区")
	}
	r.s.stamp(&category.Model)
	r.s.data.categories[category.Uuid] = *category
	return nil
}

func (r *categoryRepository) Delete(uuid string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.data.categories[uuid]; !ok {
		return errorx.Newf(errorx.CodeNotFound, "分区 %s 不存在", uuid)
	}
	delete(r.s.data.categories, uuid)
	return nil
}

// ==================== Post ====================

type postRepository struct{ s *Store }

func (r *postRepository) FindByUuid(uuid string) (*model.Post, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p, ok := r.s.data.posts[uuid]
	if !ok {
		return nil, errorx.Newf(errorx.CodeNotFound, "查询帖子 uuid=%s", uuid)
	}
	return &p, nil
}

func (r *postRepository) FindByUuidForUpdate(uuid string) (*model.Post, error) {
	return r.FindByUuid(uuid)
}

func (r *postRepository) Create(post *model.Post) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.data.posts[post.Uuid]; ok {
		return errorx.New(errorx.CodeConflict, "创建帖子")
	}
	r.s.stamp(&post.Model)
	r.s.data.posts[post.Uuid] = *post
	return nil
}

func (r *postRepository) UpdateContent(uuid, title, content string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if p, ok := r.s.data.posts[uuid]; ok {
		p.Title, p.Content = title, content
		r.s.data.posts[uuid] = p
	}
	return nil
}

func (r *postRepository) Delete(uuid string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	delete(r.s.data.posts, uuid)
	return nil
}

func (r *postRepository) UpdateStatus(uuid string, from permission.PostStatus, update repository.PostStatusUpdate) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p, ok := r.s.data.posts[uuid]
	if !ok || p.Status != from {
		return errorx.Newf(errorx.CodeConflict, "帖子 %s 的状态已变更", uuid)
	}
	p.Status = update.Status
	p.ApprovedAt = update.ApprovedAt
	p.ApprovedById = update.ApprovedById
	p.RejectedReason = update.RejectedReason
	if update.SubmittedAt != nil {
		p.SubmittedAt = update.SubmittedAt
	}
	r.s.data.posts[uuid] = p
	return nil
}

func (r *postRepository) ListByStatus(status permission.PostStatus, pageNum, pageSize int) ([]model.Post, int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var list []model.Post
	for _, p := range r.s.data.posts {
		if p.Status == status {
			list = append(list, p)
		}
	}
	list = sortedByID(list, func(p model.Post) uint { return p.ID })
	return page(list, pageNum, pageSize), int64(len(list)), nil
}

// ==================== Tag ====================

type tagRepository struct{ s *Store }

func (r *tagRepository) FindOrCreateByNames(names []string) ([]model.Tag, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	tags := make([]model.Tag, 0, len(names))
	for _, name := range names {
		var found *model.Tag
		for _, t := range r.s.data.tags {
			if t.Name == name {
				found = &t
				break
			}
		}
		if found == nil {
			t := model.Tag{Uuid: snowflake.GenerateIDString(), Name: name}
			r.s.stamp(&t.Model)
			r.s.data.tags[t.Uuid] = t
			found = &t
		}
		if !slices.ContainsFunc(tags, func(t model.Tag) bool { return t.Uuid == found.Uuid }) {
			tags = append(tags, *found)
		}
	}
	return sortedByID(tags, tagID), nil
}

func (r *tagRepository) FindByPost(postUuid string) ([]model.Tag, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	tags := make([]model.Tag, 0)
	for key := range r.s.data.postTags {
		if key.post == postUuid {
			if t, ok := r.s.data.tags[key.tag]; ok {
				tags = append(tags, t)
			}
		}
	}
	return sortedByID(tags, tagID), nil
}

func (r *tagRepository) AttachToPost(postUuid string, tagUuids []string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, tagUuid := range tagUuids {
		r.s.data.postTags[postTagKey{postUuid, tagUuid}] = struct{}{}
	}
	return nil
}

func (r *tagRepository) IncrementPostCount(tagUuids []string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, tagUuid := range tagUuids {
		if t, ok := r.s.data.tags[tagUuid]; ok {
			t.PostCount++
			r.s.data.tags[tagUuid] = t
		}
	}
	return nil
}

func tagID(t model.Tag) uint { return t.ID }

// ==================== Comment ====================

type commentRepository struct{ s *Store }

func (r *commentRepository) FindByUuid(uuid string) (*model.Comment, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	c, ok := r.s.data.comments[uuid]
	if !ok {
		return nil, errorx.Newf(errorx.CodeNotFound, "查询评论 uuid=%s", uuid)
	}
	return &c, nil
}

func (r *commentRepository) Create(comment *model.Comment) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.stamp(&comment.Model)
	r.s.data.comments[comment.Uuid] = *comment
	return nil
}

func (r *commentRepository) UpdateContent(uuid, content string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if c, ok := r.s.data.comments[uuid]; ok {
		c.Content = content
		r.s.data.comments[uuid] = c
	}
	return nil
}

func (r *commentRepository) Delete(uuid string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	delete(r.s.data.comments, uuid)
	return nil
}

// ==================== CommunityPost ====================

type communityPostRepository struct{ s *Store }

func (r *communityPostRepository) FindByUuid(uuid string) (*model.CommunityPost, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p, ok := r.s.data.communityPosts[uuid]
	if !ok {
		return nil, errorx.Newf(errorx.CodeNotFound, "查询社区帖子 uuid=%s", uuid)
	}
	return &p, nil
}

func (r *communityPostRepository) Create(post *model.CommunityPost) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.stamp(&post.Model)
	r.s.data.communityPosts[post.Uuid] = *post
	return nil
}

func (r *communityPostRepository) UpdateContent(uuid, title, content string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if p, ok := r.s.data.communityPosts[uuid]; ok {
		p.Title, p.Content = title, content
		r.s.data.communityPosts[uuid] = p
	}
	return nil
}

func (r *communityPostRepository) Delete(uuid string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	delete(r.s.data.communityPosts, uuid)
	return nil
}

// ==================== Notification ====================

type notificationRepository struct{ s *Store }

func (r *notificationRepository) Create(notification *model.Notification) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.data.notifications[notification.Uuid]; ok {
		return nil
	}
	r.s.stamp(&notification.Model)
	r.s.data.notifications[notification.Uuid] = *notification
	return nil
}

func (r *notificationRepository) ListByUser(userId string, pageNum, pageSize int) ([]model.Notification, int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var list []model.Notification
	for _, n := range r.s.data.notifications {
		if n.UserId == userId {
			list = append(list, n)
		}
	}
	list = sortedByID(list, func(n model.Notification) uint { return n.ID })
	slices.Reverse(list)
	return page(list, pageNum, pageSize), int64(len(list)), nil
}

func (r *notificationRepository) MarkRead(userId string, uuids []string) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var affected int64
	for _, uuid := range uuids {
		n, ok := r.s.data.notifications[uuid]
		if !ok || n.UserId != userId || n.IsRead {
			continue
		}
		n.IsRead = true
		r.s.data.notifications[uuid] = n
		affected++
	}
	return affected, nil
}

func (r *notificationRepository) CountUnread(userId string) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var count int64
	for _, n := range r.s.data.notifications {
		if n.UserId == userId && !n.IsRead {
			count++
		}
	}
	return count, nil
}

// 编译期检查
var (
	_ repository.UserRepository            = (*userRepository)(nil)
	_ repository.CommunityRepository       = (*communityRepository)(nil)
	_ repository.CommunityMemberRepository = (*memberRepository)(nil)
	_ repository.CategoryRepository        = (*categoryRepository)(nil)
	_ repository.PostRepository            = (*postRepository)(nil)
	_ repository.TagRepository             = (*tagRepository)(nil)
	_ repository.CommentRepository         = (*commentRepository)(nil)
	_ repository.CommunityPostRepository   = (*communityPostRepository)(nil)
	_ repository.NotificationRepository    = (*notificationRepository)(nil)
)
