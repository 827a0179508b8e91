package permission

import (
	"forum_server/pkg/errorx"
)

// CanModifyMainContent 判断调用者能否修改/删除主站内容（帖子、评论）
// callerRole: 调用者当前全站角色
// isAuthor: 调用者是否为作者
// authorRoleAtCreation: 作者发布时的角色快照，不是作者当前角色
//
// 规则：
//  1. 作者本人永远可以修改
//  2. ADMIN 可以修改任何内容
//  3. 其余情况要求调用者严格高于作者发布时的角色
func CanModifyMainContent(callerRole GlobalRole, isAuthor bool, authorRoleAtCreation GlobalRole) (bool, error) {
	if isAuthor {
		return true, nil
	}
	if _, err := Rank(callerRole); err != nil {
		return false, err
	}
	if callerRole == GlobalAdmin {
		return true, nil
	}
	return IsStrictlyHigher(callerRole, authorRoleAtCreation)
}

// CanChangeGlobalRole 判断调用者能否修改目标用户的全站角色
// 只有 ADMIN 可以调用；ADMIN 不能把自己降级
// 返回 false 且 err 为 nil 表示被自我降级规则拦截
func CanChangeGlobalRole(callerRole, targetCurrentRole, requestedRole GlobalRole, isSelf bool) (bool, error) {
	if _, err := Rank(callerRole); err != nil {
		return false, err
	}
	if callerRole != GlobalAdmin {
		return false, errorx.New(errorx.CodeForbidden, "只有管理员可以修改用户角色")
	}
	if !requestedRole.Valid() {
		return false, errorx.Newf(errorx.CodeInvalidParam, "不支持的全站角色: %q", string(requestedRole))
	}
	if _, err := Rank(targetCurrentRole); err != nil {
		return false, err
	}
	if isSelf && requestedRole != GlobalAdmin {
		return false, nil
	}
	return true, nil
}

// CheckBanToggle 封禁/解封前置校验
// 封禁与解封的门槛相同：调用者必须是 ADMIN，且不能对自己操作
func CheckBanToggle(callerRole GlobalRole, isSelf bool) error {
	if _, err := Rank(callerRole); err != nil {
		return err
	}
	if callerRole != GlobalAdmin {
		return errorx.New(errorx.CodeForbidden, "只有管理员可以封禁或解封用户")
	}
	if isSelf {
		return errorx.New(errorx.CodeInvalidParam, "不能封禁或解封自己")
	}
	return nil
}

// CheckActivation 启用状态与封禁状态联动校验
// 被封禁的用户必须先解封才能启用
func CheckActivation(isActive, isBanned bool) error {
	if isActive && isBanned {
		return errorx.New(errorx.CodeInvalidParam, "用户处于封禁状态，请先解封再启用")
	}
	return nil
}

// CanModeratePosts 主站帖子审核权限：ADMIN 或 MANAGER
func CanModeratePosts(callerRole GlobalRole) (bool, error) {
	return IsEqualOrHigher(callerRole, GlobalManager)
}

// CanManageMainCategories 主站分区管理权限：仅 ADMIN
func CanManageMainCategories(callerRole GlobalRole) (bool, error) {
	return IsEqualOrHigher(callerRole, GlobalAdmin)
}
