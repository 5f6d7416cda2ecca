package services

import (
	"time"

	"api/config"
)

// IsCooldownEnded reports whether the cooldown behind key has expired. With
// redis unavailable every cooldown counts as ended
func IsCooldownEnded(key string) bool {
	if config.RDB == nil {
		return true
	}
	value, err := config.RDB.Get(config.Ctx, key).Result()
	if err != nil {
		return true
	}
	return value == ""
}

// SetKeyWithTimeout starts a cooldown window for key
func SetKeyWithTimeout(key string, timeout time.Duration) {
	if config.RDB == nil {
		return
	}
	config.RDB.SetEx(config.Ctx, key, "1", timeout)
}
