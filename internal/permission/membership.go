package permission

import (
	"forum_server/pkg/errorx"
)

// MembershipStatus 成员状态
type MembershipStatus string

const (
	StatusPending MembershipStatus = "PENDING" // 待审核
	StatusActive  MembershipStatus = "ACTIVE"  // 正式成员
	StatusBanned  MembershipStatus = "BANNED"  // 已封禁，保留记录
	// StatusRemoved 记录已删除，只作为状态机的终态，不落库
	StatusRemoved MembershipStatus = "REMOVED"
)

// MembershipAction 成员状态变更动作
type MembershipAction string

const (
	ActionApprove MembershipAction = "APPROVE" // 通过入群申请
	ActionReject  MembershipAction = "REJECT"  // 拒绝入群申请
	ActionBan     MembershipAction = "BAN"     // 踢出并封禁
	ActionKick    MembershipAction = "KICK"    // 踢出（删除记录）
	ActionUnban   MembershipAction = "UNBAN"   // 解封
	ActionLeave   MembershipAction = "LEAVE"   // 主动退出
)

// membershipTransitions 状态转移表：当前状态 -> 动作 -> 目标状态
// BANNED 没有直接到 REMOVED 的路径
var membershipTransitions = map[MembershipStatus]map[MembershipAction]MembershipStatus{
	StatusPending: {
		ActionApprove: StatusActive,
		ActionReject:  StatusRemoved,
	},
	StatusActive: {
		ActionBan:   StatusBanned,
		ActionKick:  StatusRemoved,
		ActionLeave: StatusRemoved,
	},
	StatusBanned: {
		ActionUnban: StatusActive,
	},
}

// Valid 是否为可落库的成员状态
func (s MembershipStatus) Valid() bool {
	return s == StatusPending || s == StatusActive || s == StatusBanned
}

// InitialStatus 新成员的初始状态
// 需要审核的社区为 PENDING，开放社区直接 ACTIVE，永远不会是 BANNED
func InitialStatus(requiresApproval bool) MembershipStatus {
	if requiresApproval {
		return StatusPending
	}
	return StatusActive
}

// Transition 计算成员状态转移结果
// 不在转移表中的组合返回 CodeConflict
func Transition(current MembershipStatus, action MembershipAction) (MembershipStatus, error) {
	next, ok := membershipTransitions[current][action]
	if !ok {
		return current, errorx.Newf(errorx.CodeConflict, "成员状态 %s 不支持操作 %s", current, action)
	}
	return next, nil
}
