package request

// MarkReadRequest 标记通知已读
type MarkReadRequest struct {
	Ids []string `json:"ids" binding:"required,min=1,max=100,dive,required"`
}
