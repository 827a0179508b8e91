// Package permission 权限判定核心
// 包含全局/社区两套角色层级表、内容修改判定、成员管理判定、成员状态机与帖子审核流程
// 本包内所有函数均为纯函数，不做任何 I/O，可并发调用
package permission

import (
	"forum_server/pkg/errorx"
)

// GlobalRole 全站角色
type GlobalRole string

// CommunityRole 社区内角色
type CommunityRole string

const (
	GlobalAdmin   GlobalRole = "ADMIN"
	GlobalManager GlobalRole = "MANAGER"
	GlobalUser    GlobalRole = "USER"
)

const (
	CommunityOwner     CommunityRole = "OWNER"
	CommunityAdmin     CommunityRole = "ADMIN"
	CommunityModerator CommunityRole = "MODERATOR"
	CommunityMember    CommunityRole = "MEMBER"
)

// ==================== 角色层级表 ====================
// 权限从高到低排列，下标越小权限越高
// 全项目仅此一处定义层级顺序

var globalHierarchy = []GlobalRole{GlobalAdmin, GlobalManager, GlobalUser}

var communityHierarchy = []CommunityRole{CommunityOwner, CommunityAdmin, CommunityModerator, CommunityMember}

// Role 两套角色的类型约束
// 泛型参数保证全局角色与社区角色不会被混在一起比较
type Role interface {
	GlobalRole | CommunityRole
}

// Rank 返回角色在层级表中的下标，下标越小权限越高
// 未定义的角色返回 CodeInvalidRole 错误
func Rank[R Role](r R) (int, error) {
	switch v := any(r).(type) {
	case GlobalRole:
		for i, role := range globalHierarchy {
			if role == v {
				return i, nil
			}
		}
		return -1, errorx.Newf(errorx.CodeInvalidRole, "未知的全站角色: %q", string(v))
	case CommunityRole:
		for i, role := range communityHierarchy {
			if role == v {
				return i, nil
			}
		}
		return -1, errorx.Newf(errorx.CodeInvalidRole, "未知的社区角色: %q", string(v))
	}
	return -1, errorx.New(errorx.CodeInvalidRole, "未知的角色类型")
}

// IsStrictlyHigher a 的权限严格高于 b
func IsStrictlyHigher[R Role](a, b R) (bool, error) {
	ra, rb, err := rankPair(a, b)
	if err != nil {
		return false, err
	}
	return ra < rb, nil
}

// IsEqualOrHigher a 的权限不低于 b
func IsEqualOrHigher[R Role](a, b R) (bool, error) {
	ra, rb, err := rankPair(a, b)
	if err != nil {
		return false, err
	}
	return ra <= rb, nil
}

func rankPair[R Role](a, b R) (int, int, error) {
	ra, err := Rank(a)
	if err != nil {
		return 0, 0, err
	}
	rb, err := Rank(b)
	if err != nil {
		return 0, 0, err
	}
	return ra, rb, nil
}

// Valid 是否为已定义的全站角色
func (r GlobalRole) Valid() bool {
	_, err := Rank(r)
	return err == nil
}

// Valid 是否为已定义的社区角色
func (r CommunityRole) Valid() bool {
	_, err := Rank(r)
	return err == nil
}

// ParseGlobalRole 解析外部输入的全站角色，非法值返回 CodeInvalidParam
// 外部输入属于参数错误，而不是数据错误
func ParseGlobalRole(s string) (GlobalRole, error) {
	r := GlobalRole(s)
	if !r.Valid() {
		return "", errorx.Newf(errorx.CodeInvalidParam, "不支持的全站角色: %q", s)
	}
	return r, nil
}

// ParseCommunityRole 解析外部输入的社区角色，非法值返回 CodeInvalidParam
func ParseCommunityRole(s string) (CommunityRole, error) {
	r := CommunityRole(s)
	if !r.Valid() {
		return "", errorx.Newf(errorx.CodeInvalidParam, "不支持的社区角色: %q", s)
	}
	return r, nil
}

// GlobalRoles 返回全站角色列表（高到低），返回副本
func GlobalRoles() []GlobalRole {
	return append([]GlobalRole(nil), globalHierarchy...)
}

// CommunityRoles 返回社区角色列表（高到低），返回副本
func CommunityRoles() []CommunityRole {
	return append([]CommunityRole(nil), communityHierarchy...)
}
