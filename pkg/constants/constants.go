package constants

const (
	CHANNEL_SIZE          = 100 // 通知通道大小
	COMMUNITY_CACHE_TTL   = 10  // 社区详情缓存有效期（分钟）
	UNREAD_CACHE_TTL      = 30  // 未读通知数缓存有效期（分钟）
	DEFAULT_PAGE_SIZE     = 20  // 默认分页大小
	MAX_PAGE_SIZE         = 100 // 最大分页大小
	MAX_TAGS_PER_POST     = 5   // 单个帖子最多标签数
	MAX_BATCH_REVIEW_SIZE = 100 // 单次批量审核的最大用户数
	DISPATCH_TIMEOUT      = 5   // 通知落库超时（秒）
	SHUTDOWN_TIMEOUT      = 10  // 优雅关闭超时（秒）
)

// Gin 上下文中的键
const (
	CtxUserID = "user_id"
)
