package respond

// NotificationRespond 站内通知
type NotificationRespond struct {
	Uuid      string            `json:"uuid"`
	Type      string            `json:"type"`
	Payload   map[string]string `json:"payload"`
	IsRead    bool              `json:"is_read"`
	CreatedAt string            `json:"created_at"`
}

// NotificationListRespond 通知分页列表
type NotificationListRespond struct {
	Total int64                 `json:"total"`
	List  []NotificationRespond `json:"list"`
}

// UnreadCountRespond 未读数
type UnreadCountRespond struct {
	Count int64 `json:"count"`
}

// MarkReadRespond 标记已读结果
type MarkReadRespond struct {
	Updated int64 `json:"updated"`
}
