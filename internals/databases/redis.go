package database

import (
	"context"
	"log"
	"time"

	"github.com/redis/go-redis/v9"

	"teecha_backend/internals/configs"
)

var Redis *redis.Client

// ConnectRedis is optional; without REDIS_URL the app keeps Redis nil.
func ConnectRedis() *redis.Client {
	url := configs.GetEnv("REDIS_URL")
	if url == "" {
		log.Println("[INFO] REDIS_URL empty, token blacklist uses Postgres")
		return nil
	}
	opt, err := redis.ParseURL(url)
	if err != nil {
		log.Printf("[WARN] invalid REDIS_URL: %v", err)
		return nil
	}
	client := redis.NewClient(opt)

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		log.Printf("[WARN] redis ping failed, falling back to Postgres: %v", err)
		_ = client.Close()
		return nil
	}
	log.Println("✅ Redis connected.")
	Redis = client
	return client
}
