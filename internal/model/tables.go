package model

// All 返回需要迁移的全部表模型
func All() []any {
	return []any{
		&UserInfo{},
		&Community{},
		&CommunityMember{},
		&Category{},
		&Post{},
		&Tag{},
		&PostTag{},
		&Comment{},
		&CommunityPost{},
		&Notification{},
	}
}
