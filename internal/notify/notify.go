// Package notify 定义通知意图
// 业务层在事务提交后发布 Intent，由消息队列异步投递并落库为站内通知
package notify

import (
	"context"
	"sync"
	"time"

	"forum_server/pkg/util/snowflake"
)

// Type 通知类型
type Type string

const (
	MembershipApproved   Type = "MEMBERSHIP_APPROVED"
	JoinRejected         Type = "JOIN_REJECTED"
	MemberBanned         Type = "MEMBER_BANNED"
	MemberUnbanned       Type = "MEMBER_UNBANNED"
	MemberKicked         Type = "MEMBER_KICKED"
	CommunityRoleChanged Type = "COMMUNITY_ROLE_CHANGED"
	OwnershipTransferred Type = "OWNERSHIP_TRANSFERRED"
	GlobalRoleChanged    Type = "GLOBAL_ROLE_CHANGED"
	UserBanned           Type = "USER_BANNED"
	PostApproved         Type = "POST_APPROVED"
	PostRejected         Type = "POST_REJECTED"
)

// Intent 一条待投递的通知
// ID 在创建时生成，消费端据此去重
type Intent struct {
	ID        string            `json:"id"`
	UserID    string            `json:"user_id"`
	Type      Type              `json:"type"`
	Payload   map[string]string `json:"payload,omitempty"`
	CreatedAt time.Time         `json:"created_at"`
}

// New 创建通知意图
func New(userID string, typ Type, payload map[string]string) Intent {
	return Intent{
		ID:        snowflake.GenerateIDString(),
		UserID:    userID,
		Type:      typ,
		Payload:   payload,
		CreatedAt: time.Now(),
	}
}

// Publisher 通知发布接口
type Publisher interface {
	Publish(ctx context.Context, intents ...Intent) error
}

// Recorder 记录所有发布的通知，不做投递
type Recorder struct {
	mu      sync.Mutex
	intents []Intent
}

func (r *Recorder) Publish(_ context.Context, intents ...Intent) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.intents = append(r.intents, intents...)
	return nil
}

// Intents 返回已记录通知的副本
func (r *Recorder) Intents() []Intent {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Intent(nil), r.intents...)
}

// OfType 过滤指定类型
func (r *Recorder) OfType(typ Type) []Intent {
	var out []Intent
	for _, in := range r.Intents() {
		if in.Type == typ {
			out = append(out, in)
		}
	}
	return out
}

// Reset 清空记录
func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.intents = nil
}
