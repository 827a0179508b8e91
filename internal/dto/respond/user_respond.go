package respond

// LoginRespond 登录响应
type LoginRespond struct {
	Uuid         string `json:"uuid"`
	Nickname     string `json:"nickname"`
	Email        string `json:"email"`
	GlobalRole   string `json:"global_role"`
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// RegisterRespond 注册响应
type RegisterRespond struct {
	Uuid       string `json:"uuid"`
	Nickname   string `json:"nickname"`
	Email      string `json:"email"`
	GlobalRole string `json:"global_role"`
	CreatedAt  string `json:"created_at"`
}

// TokenRespond 刷新 Token 响应
type TokenRespond struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// UserInfoRespond 用户信息
type UserInfoRespond struct {
	Uuid       string `json:"uuid"`
	Nickname   string `json:"nickname"`
	Email      string `json:"email"`
	GlobalRole string `json:"global_role"`
	IsActive   bool   `json:"is_active"`
	IsBanned   bool   `json:"is_banned"`
	BannedAt   string `json:"banned_at,omitempty"`
	BanReason  string `json:"ban_reason,omitempty"`
	CreatedAt  string `json:"created_at"`
}
