package config

import (
	"context"
	"log"

	"github.com/redis/go-redis/v9"
)

var (
	RDB *redis.Client
	Ctx = context.Background()
)

// InitRedis connects the shared redis client used for send cooldowns. The
// application keeps working without redis; callers must treat a nil RDB as
// "no cooldown"
func InitRedis() {
	RDB = redis.NewClient(&redis.Options{
		Addr:     RedisAddress,
		Password: RedisPassword,
	})

	if err := RDB.Ping(Ctx).Err(); err != nil {
		log.Println("Redis unavailable, cooldowns disabled: ", err)
		RDB = nil
	}
}
