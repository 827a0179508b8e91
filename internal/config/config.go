// Package config 提供应用程序的配置加载和管理功能
// 使用 TOML 格式的配置文件，支持多路径查找
package config

import (
	"fmt"
	"time"

	"github.com/BurntSushi/toml" // TOML 配置文件解析库
)

// MainConfig 主配置，包含应用基本信息
type MainConfig struct {
	AppName  string `toml:"appName"`  // 应用名称，用于日志标识等
	Host     string `toml:"host"`     // 服务器监听地址，如 "0.0.0.0"
	Port     int    `toml:"port"`     // 服务器监听端口，如 8000
	Mode     string `toml:"mode"`     // 运行模式：dev / release
	ForceTLS bool   `toml:"forceTLS"` // 是否将 HTTP 请求重定向到 HTTPS
}

// MysqlConfig MySQL 数据库连接配置
type MysqlConfig struct {
	Host         string `toml:"host"`         // MySQL 服务器地址
	Port         int    `toml:"port"`         // MySQL 端口，默认 3306
	User         string `toml:"user"`         // 数据库用户名
	Password     string `toml:"password"`     // 数据库密码
	DatabaseName string `toml:"databaseName"` // 数据库名称
}

// RedisConfig Redis 连接配置
type RedisConfig struct {
	Host     string `toml:"host"`     // Redis 服务器地址
	Port     int    `toml:"port"`     // Redis 端口，默认 6379
	Password string `toml:"password"` // Redis 密码，无密码留空
	Db       int    `toml:"db"`       // Redis 数据库编号，默认 0
}

// LogConfig 日志配置，使用 lumberjack 进行日志轮转
type LogConfig struct {
	LogPath    string `toml:"logPath"`    // 日志文件存储目录
	FileName   string `toml:"fileName"`   // 日志文件名
	MaxSize    int    `toml:"maxSize"`    // 单个日志文件最大大小（MB）
	MaxBackups int    `toml:"maxBackups"` // 保留旧日志文件的最大个数
	MaxAge     int    `toml:"maxAge"`     // 保留旧日志文件的最大天数
	Level      string `toml:"level"`      // 日志级别：debug, info, warn, error
}

// KafkaConfig 通知消息队列配置
type KafkaConfig struct {
	MessageMode       string        `toml:"messageMode"`       // 消息模式："channel" 或 "kafka"
	HostPort          string        `toml:"hostPort"`          // Kafka 服务器地址，如 "localhost:9092"
	NotificationTopic string        `toml:"notificationTopic"` // 站内通知主题
	GroupID           string        `toml:"groupId"`           // 通知分发器消费组
	Partition         int           `toml:"partition"`         // 分区数
	Timeout           time.Duration `toml:"timeout"`           // 超时时间（秒）
}

// JWTConfig JWT 认证配置
type JWTConfig struct {
	Secret             string `toml:"secret"`             // JWT 签名密钥，建议 32 字符以上
	AccessTokenExpiry  int    `toml:"accessTokenExpiry"`  // Access Token 有效期（分钟）
	RefreshTokenExpiry int    `toml:"refreshTokenExpiry"` // Refresh Token 有效期（小时）
}

// SnowflakeConfig 雪花算法配置
type SnowflakeConfig struct {
	MachineID int64 `toml:"machineId"` // 雪花算法节点 ID，范围 0-1023，分布式部署时每台机器需唯一
}

// ModerationConfig 社区管理相关配置
type ModerationConfig struct {
	JoinApplyLimit         int `toml:"joinApplyLimit"`         // 窗口期内单个用户最多发起的入群申请数
	JoinApplyWindowMinutes int `toml:"joinApplyWindowMinutes"` // 入群申请限流窗口（分钟）
}

// RateLimitConfig 接口限流配置，按客户端 IP 令牌桶
type RateLimitConfig struct {
	RPS   float64 `toml:"rps"`   // 每秒补充令牌数，<=0 表示不限流
	Burst int     `toml:"burst"` // 桶容量
}

// Config 应用程序总配置，聚合所有子配置
type Config struct {
	MainConfig       `toml:"mainConfig"`       // 主配置
	MysqlConfig      `toml:"mysqlConfig"`      // MySQL 配置
	RedisConfig      `toml:"redisConfig"`      // Redis 配置
	LogConfig        `toml:"logConfig"`        // 日志配置
	KafkaConfig      `toml:"kafkaConfig"`      // Kafka 配置
	JWTConfig        `toml:"jwtConfig"`        // JWT 配置
	SnowflakeConfig  `toml:"snowflakeConfig"`  // 雪花算法配置
	ModerationConfig `toml:"moderationConfig"` // 社区管理配置
	RateLimitConfig  `toml:"rateLimitConfig"`  // 限流配置
}

// config 全局配置单例，延迟加载
var config *Config

// LoadConfig 从多个候选路径加载配置文件
// 按顺序尝试加载，找到第一个可用的配置文件即停止
func LoadConfig() error {
	paths := []string{
		"configs/config_local.toml",       // 本地开发配置（优先）
		"configs/config.toml",             // 默认配置
		"../../configs/config_local.toml", // 从子目录运行时的路径
		"../../configs/config.toml",
	}

	for _, path := range paths {
		if _, err := toml.DecodeFile(path, config); err == nil {
			return nil
		}
	}

	return fmt.Errorf("could not find configuration file in any of the search paths")
}

// Decode 从 TOML 文本解析配置，未出现的字段保持默认值
func Decode(data string) (*Config, error) {
	conf := Default()
	if _, err := toml.Decode(data, conf); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	return conf, nil
}

// Default 返回带默认值的配置
func Default() *Config {
	return &Config{
		MainConfig:       MainConfig{AppName: "forum_server", Host: "0.0.0.0", Port: 8000, Mode: "dev"},
		KafkaConfig:      KafkaConfig{MessageMode: "channel", NotificationTopic: "forum_notification", GroupID: "forum_notification_dispatcher", Partition: 1, Timeout: 1},
		JWTConfig:        JWTConfig{AccessTokenExpiry: 30, RefreshTokenExpiry: 168},
		SnowflakeConfig:  SnowflakeConfig{MachineID: 1},
		ModerationConfig: ModerationConfig{JoinApplyLimit: 10, JoinApplyWindowMinutes: 60},
		RateLimitConfig:  RateLimitConfig{RPS: 20, Burst: 40},
	}
}

// GetConfig 获取全局配置实例（单例模式）
// 首次调用时会自动加载配置文件
func GetConfig() *Config {
	if config == nil {
		config = Default()
		_ = LoadConfig() // 忽略加载错误，使用默认值
	}
	return config
}
