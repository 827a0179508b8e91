package mq

import (
	"context"
	"sync"
	"time"

	"forum_server/internal/notify"
	"forum_server/pkg/constants"

	"go.uber.org/zap"
)

// ChannelBroker 进程内通知代理，基于带缓冲的 channel
type ChannelBroker struct {
	ch     chan notify.Intent
	mu     sync.RWMutex
	closed bool
}

// NewChannelBroker 创建单机通知代理
func NewChannelBroker(size int) *ChannelBroker {
	return &ChannelBroker{ch: make(chan notify.Intent, size)}
}

// Publish 写入通道；通道满时阻塞直到 ctx 取消
func (b *ChannelBroker) Publish(ctx context.Context, intents ...notify.Intent) error {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if b.closed {
		return ErrBrokerClosed
	}
	for _, intent := range intents {
		select {
		case b.ch <- intent:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return nil
}

// Start 消费通道中的通知，关闭后会处理完剩余通知再返回
func (b *ChannelBroker) Start(ctx context.Context, handle HandlerFunc) {
	for {
		select {
		case intent, ok := <-b.ch:
			if !ok {
				return
			}
			dispatch(ctx, handle, intent)
		case <-ctx.Done():
			return
		}
	}
}

func (b *ChannelBroker) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if !b.closed {
		b.closed = true
		close(b.ch)
	}
	return nil
}

// dispatch 调用处理函数，错误和 panic 只记录日志
// 单条通知的处理时间不超过 DISPATCH_TIMEOUT
func dispatch(ctx context.Context, handle HandlerFunc, intent notify.Intent) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), constants.DISPATCH_TIMEOUT*time.Second)
	defer cancel()
	defer func() {
		if rec := recover(); rec != nil {
			zap.L().Error("notification handler panic", zap.Any("recover", rec), zap.String("id", intent.ID))
		}
	}()
	if err := handle(ctx, intent); err != nil {
		zap.L().Error("notification dispatch failed",
			zap.Error(err),
			zap.String("id", intent.ID),
			zap.String("user_id", intent.UserID),
			zap.String("type", string(intent.Type)),
		)
	}
}
