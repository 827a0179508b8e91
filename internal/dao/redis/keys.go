package redis

import "fmt"

// 缓存 key 约定
const (
	communityInfoPrefix = "community_info_"
	communityGenPrefix  = "community_info_gen_"
	unreadCountPrefix   = "notification_unread_"
	joinThrottlePrefix  = "join_apply_"
	userTokenPrefix     = "user_token:"
)

// CommunityInfoKey 社区详情缓存
func CommunityInfoKey(communityUuid string) string {
	return communityInfoPrefix + communityUuid
}

// CommunityInfoGenKey 社区详情缓存版本号，每次失效 +1
func CommunityInfoGenKey(communityUuid string) string {
	return communityGenPrefix + communityUuid
}

// UnreadCountKey 用户未读通知数
func UnreadCountKey(userId string) string {
	return unreadCountPrefix + userId
}

// JoinThrottleKey 用户入群申请限流计数器
func JoinThrottleKey(userId string) string {
	return fmt.Sprintf("%s%s", joinThrottlePrefix, userId)
}

// UserTokenKey 用户当前有效的 Refresh Token ID，用于单点互踢
func UserTokenKey(userId string) string {
	return userTokenPrefix + userId
}
