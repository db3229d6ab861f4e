package config

import "time"

const (
	SessionStoreMemory = "memory"
	SessionStoreRedis  = "redis"
)

type SessionConfig interface {
	GetSessionStore() string
	GetMaxSessionAge() time.Duration
	GetRedisAddr() string
	GetRedisPassword() string
	GetRedisDB() int
}

type Session struct{}

var _ SessionConfig = Session{}

func (Session) GetSessionStore() string {
	return GetEnv("SESSION_STORE", SessionStoreMemory)
}

func (Session) GetMaxSessionAge() time.Duration {
	return GetEnvDuration("SESSION_MAX_AGE", 12*time.Hour)
}

func (Session) GetRedisAddr() string {
	return GetEnv("REDIS_ADDR", "localhost:6379")
}

func (Session) GetRedisPassword() string {
	return GetEnv("REDIS_PASSWORD", "")
}

func (Session) GetRedisDB() int {
	return GetEnvInt("REDIS_DB", 0)
}
