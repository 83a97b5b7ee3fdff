package database

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/vaalikone-dev/vaalikone-backend/internal/platform/config"
)

// RDB 是全局的Redis客户端。Redis承载运行时的热数据：
// 问题评分、排名Sorted Set和实时投票检查点。
var RDB *redis.Client

// Ctx 是Redis操作使用的全局上下文
var Ctx = context.Background()

// InitRedis 按配置建立Redis连接，并用Ping验证连接可用。
// 启动阶段连不上Redis直接panic；运行期的Redis故障由健康检查器接管。
func InitRedis(cfg config.RedisConfig) {
	RDB = redis.NewClient(&redis.Options{
		Addr:     cfg.Address,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	pingCtx, cancel := context.WithTimeout(Ctx, 5*time.Second)
	defer cancel()
	if _, err := RDB.Ping(pingCtx).Result(); err != nil {
		panic("无法连接到Redis: " + err.Error())
	}

	fmt.Printf("Redis 连接成功: %s\n", cfg.Address)
}
