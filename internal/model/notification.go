package model

import "gorm.io/gorm"

// Notification 站内通知，由通知分发器从消息队列消费后落库
type Notification struct {
	gorm.Model
	Uuid    string `gorm:"column:uuid;uniqueIndex;type:char(20);not null;comment:通知唯一id"`
	UserId  string `gorm:"column:user_id;type:char(20);index;not null;comment:接收人"`
	Type    string `gorm:"column:type;type:varchar(32);not null;comment:通知类型"`
	Payload string `gorm:"column:payload;type:text;comment:通知内容(JSON)"`
	IsRead  bool   `gorm:"column:is_read;index;default:false;comment:是否已读"`
}

func (Notification) TableName() string {
	return "notification"
}
