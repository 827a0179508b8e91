// Package mq 提供通知消息的投递通道
// 支持 Kafka（分布式）和 Channel（单机）两种实现，由 kafkaConfig.messageMode 选择
package mq

import (
	"context"
	"errors"

	"forum_server/internal/notify"
)

// ErrBrokerClosed 代理已关闭
var ErrBrokerClosed = errors.New("mq: broker closed")

// HandlerFunc 处理一条通知
type HandlerFunc func(ctx context.Context, intent notify.Intent) error

// Broker 通知消息代理
type Broker interface {
	notify.Publisher
	// Start 启动消费循环，阻塞直到 ctx 取消或代理关闭
	Start(ctx context.Context, handle HandlerFunc)
	// Close 关闭代理资源
	Close() error
}
