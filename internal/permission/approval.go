package permission

import (
	"strings"
	"time"

	"forum_server/pkg/errorx"
)

// PostStatus 主站帖子状态
type PostStatus string

const (
	PostDraft     PostStatus = "DRAFT"
	PostPending   PostStatus = "PENDING"
	PostPublished PostStatus = "PUBLISHED"
	PostRejected  PostStatus = "REJECTED"
)

// Outcome 一次审核流转的结果
// 调用方按字段原样写库；ApprovedAt/ApprovedById 与 RejectedReason 互斥
type Outcome struct {
	From           PostStatus
	Status         PostStatus
	ApprovedAt     *time.Time
	ApprovedById   string
	RejectedReason string
	// IncrementTags 首次进入 PUBLISHED 时为 true，每个帖子一生只会出现一次
	IncrementTags bool
	// Notify 是否需要通知作者
	Notify bool
}

// Changed 状态是否发生了变化
func (o Outcome) Changed() bool {
	return o.From != o.Status
}

// SubmitStatus 提交时的目标状态，由提交时分区的 requiresApproval 决定
func SubmitStatus(requiresApproval bool) PostStatus {
	if requiresApproval {
		return PostPending
	}
	return PostPublished
}

// Submit 草稿提交
// 只有 DRAFT 可以提交；不需要审核时直接发布并累加标签计数
// 直接发布不是审核通过，ApprovedAt/ApprovedById 保持为空，发布时间见 SubmittedAt
func Submit(current PostStatus, requiresApproval bool, now time.Time) (Outcome, error) {
	if current != PostDraft {
		return Outcome{}, errorx.Newf(errorx.CodeConflict, "帖子状态为 %s，不能重复提交", current)
	}
	next := SubmitStatus(requiresApproval)
	out := Outcome{From: current, Status: next}
	if next == PostPublished {
		out.IncrementTags = true
	}
	return out, nil
}

// Approve 审核通过
//   - PENDING -> PUBLISHED：写入审核人与时间，清空驳回原因，累加标签计数，通知作者
//   - PUBLISHED：重复审核，重新写入相同字段，不累加计数也不通知
//   - DRAFT / REJECTED：返回 CodeConflict
func Approve(current PostStatus, approverId string, now time.Time) (Outcome, error) {
	switch current {
	case PostPending, PostPublished:
	default:
		return Outcome{}, errorx.Newf(errorx.CodeConflict, "帖子状态为 %s，不能审核通过", current)
	}
	return Outcome{
		From:          current,
		Status:        PostPublished,
		ApprovedAt:    &now,
		ApprovedById:  approverId,
		IncrementTags: current == PostPending,
		Notify:        current == PostPending,
	}, nil
}

// Reject 审核驳回
// 驳回原因不能为空，校验发生在任何状态判断之前
//   - PENDING -> REJECTED：写入原因，清空审核人与时间，通知作者
//   - REJECTED：重复驳回，重新写入字段，不通知
//   - DRAFT / PUBLISHED：返回 CodeConflict
func Reject(current PostStatus, reason string) (Outcome, error) {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return Outcome{}, errorx.New(errorx.CodeInvalidParam, "驳回原因不能为空")
	}
	switch current {
	case PostPending, PostRejected:
	default:
		return Outcome{}, errorx.Newf(errorx.CodeConflict, "帖子状态为 %s，不能驳回", current)
	}
	return Outcome{
		From:           current,
		Status:         PostRejected,
		RejectedReason: reason,
		Notify:         current == PostPending,
	}, nil
}
