package permission

// CanModifyCommunityContent 判断调用者能否修改/删除社区内容（帖子、公告）
// 与主站规则结构相同，区别在于无条件放行的是 OWNER
func CanModifyCommunityContent(callerRole CommunityRole, isAuthor bool, authorRoleAtCreation CommunityRole) (bool, error) {
	if isAuthor {
		return true, nil
	}
	if _, err := Rank(callerRole); err != nil {
		return false, err
	}
	if callerRole == CommunityOwner {
		return true, nil
	}
	return IsStrictlyHigher(callerRole, authorRoleAtCreation)
}

// CanKickOrBan 判断调用者能否踢出/封禁目标成员
//   - 群主永远不能被踢出或封禁
//   - 不能对自己操作
//   - 同级之间不能互相操作，必须严格高于目标
//
// 调用方还需要保证调用者至少是 MODERATOR，见 CanReviewMembership
func CanKickOrBan(callerRole, targetRole CommunityRole, isSelf, targetIsOwner bool) (bool, error) {
	if targetIsOwner || isSelf {
		return false, nil
	}
	return IsStrictlyHigher(callerRole, targetRole)
}

// CanChangeCommunityRole 判断调用者能否把目标成员从 targetCurrentRole 调整为 targetNewRole
//   - OWNER 身份只能通过转让群主流程变更，任何方向都不允许
//   - OWNER 可以设置任意非 OWNER 角色
//   - ADMIN 只能把 MEMBER 提升为 MODERATOR
//   - MODERATOR / MEMBER 没有此权限
func CanChangeCommunityRole(callerRole, targetCurrentRole, targetNewRole CommunityRole) (bool, error) {
	for _, r := range []CommunityRole{callerRole, targetCurrentRole, targetNewRole} {
		if _, err := Rank(r); err != nil {
			return false, err
		}
	}
	if targetCurrentRole == CommunityOwner || targetNewRole == CommunityOwner {
		return false, nil
	}
	switch callerRole {
	case CommunityOwner:
		return true, nil
	case CommunityAdmin:
		return targetCurrentRole == CommunityMember && targetNewRole == CommunityModerator, nil
	default:
		return false, nil
	}
}

// CanCreateAnnouncement 发布公告：MODERATOR 及以上
func CanCreateAnnouncement(role CommunityRole) (bool, error) {
	return IsEqualOrHigher(role, CommunityModerator)
}

// CanManageCategories 管理社区分区：ADMIN 及以上
func CanManageCategories(role CommunityRole) (bool, error) {
	return IsEqualOrHigher(role, CommunityAdmin)
}

// CanReviewMembership 审核入群申请、踢人、封禁的入口门槛：MODERATOR 及以上
func CanReviewMembership(role CommunityRole) (bool, error) {
	return IsEqualOrHigher(role, CommunityModerator)
}
