package request

// ChangeGlobalRoleRequest 修改全站角色（仅 ADMIN）
type ChangeGlobalRoleRequest struct {
	UserId string `json:"user_id" binding:"required"`
	Role   string `json:"role" binding:"required,global_role"`
}

// BanUserRequest 封禁用户（仅 ADMIN）
type BanUserRequest struct {
	UserId string `json:"user_id" binding:"required"`
	Reason string `json:"reason" binding:"max=200"`
}

// UnbanUserRequest 解封用户（仅 ADMIN）
type UnbanUserRequest struct {
	UserId string `json:"user_id" binding:"required"`
}

// SetActiveRequest 启用/禁用账号（仅 ADMIN）
type SetActiveRequest struct {
	UserId   string `json:"user_id" binding:"required"`
	IsActive *bool  `json:"is_active" binding:"required"`
}
