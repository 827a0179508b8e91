package mq

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"time"

	"forum_server/internal/config"
	"forum_server/internal/notify"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// messageWriter kafka.Writer 中用到的方法
type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// messageReader kafka.Reader 中用到的方法
type messageReader interface {
	FetchMessage(ctx context.Context) (kafka.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// KafkaBroker 基于 Kafka 的通知代理
// 消息 key 为接收人 ID，同一用户的通知落在同一分区，保持顺序
type KafkaBroker struct {
	writer messageWriter
	reader messageReader
}

// NewKafkaBroker 根据配置创建 Writer 与消费组 Reader
func NewKafkaBroker(conf *config.KafkaConfig) *KafkaBroker {
	return &KafkaBroker{
		writer: &kafka.Writer{
			Addr:                   kafka.TCP(conf.HostPort),
			Topic:                  conf.NotificationTopic,
			Balancer:               &kafka.Hash{},
			WriteTimeout:           conf.Timeout * time.Second,
			RequiredAcks:           kafka.RequireOne,
			AllowAutoTopicCreation: false,
		},
		reader: kafka.NewReader(kafka.ReaderConfig{
			Brokers:        []string{conf.HostPort},
			Topic:          conf.NotificationTopic,
			GroupID:        conf.GroupID,
			CommitInterval: conf.Timeout * time.Second,
			StartOffset:    kafka.FirstOffset,
		}),
	}
}

// EnsureTopic 创建通知主题，已存在时 Kafka 不会报错
func EnsureTopic(conf *config.KafkaConfig) error {
	conn, err := kafka.Dial("tcp", conf.HostPort)
	if err != nil {
		return err
	}
	defer conn.Close()

	return conn.CreateTopics(kafka.TopicConfig{
		Topic:             conf.NotificationTopic,
		NumPartitions:     conf.Partition,
		ReplicationFactor: 1,
	})
}

// Publish 序列化为 JSON 后批量写入
func (b *KafkaBroker) Publish(ctx context.Context, intents ...notify.Intent) error {
	if len(intents) == 0 {
		return nil
	}
	msgs := make([]kafka.Message, 0, len(intents))
	for _, intent := range intents {
		value, err := json.Marshal(intent)
		if err != nil {
			return err
		}
		msgs = append(msgs, kafka.Message{Key: []byte(intent.UserID), Value: value})
	}
	return b.writer.WriteMessages(ctx, msgs...)
}

// Start 消费循环：读取、处理、提交位移
// 处理失败只记录日志并继续提交，避免一条坏消息阻塞整个分区
func (b *KafkaBroker) Start(ctx context.Context, handle HandlerFunc) {
	for {
		msg, err := b.reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil || errors.Is(err, io.EOF) {
				return
			}
			zap.L().Error("kafka fetch message failed", zap.Error(err))
			continue
		}

		var intent notify.Intent
		if err := json.Unmarshal(msg.Value, &intent); err != nil {
			zap.L().Error("kafka message decode failed",
				zap.Error(err),
				zap.Int("partition", msg.Partition),
				zap.Int64("offset", msg.Offset),
			)
		} else {
			dispatch(ctx, handle, intent)
		}

		if err := b.reader.CommitMessages(ctx, msg); err != nil {
			if ctx.Err() != nil {
				return
			}
			zap.L().Error("kafka commit failed", zap.Error(err), zap.Int64("offset", msg.Offset))
		}
	}
}

func (b *KafkaBroker) Close() error {
	return errors.Join(b.writer.Close(), b.reader.Close())
}
