package rdx

import (
	"log"
	"os"
	"time"

	"rezerv/globals"

	"github.com/redis/go-redis/v9"
)

var Conn *redis.Client

func init() {
	redisURL := os.Getenv("REDIS_URL")
	if redisURL == "" {
		redisURL = "localhost:6379"
	}
	Conn = redis.NewClient(&redis.Options{
		Addr:     redisURL,
		Password: os.Getenv("REDIS_PASSWORD"),
		DB:       0,
	})
}

// RdxGet fetches a cached string value; empty string on miss.
func RdxGet(key string) (string, error) {
	val, err := Conn.Get(globals.Ctx, key).Result()
	if err == redis.Nil {
		return "", nil
	}
	return val, err
}

// RdxSet stores a cache entry with a short TTL. Cache entries are a
// read optimization only; Mongo stays authoritative.
func RdxSet(key, value string) {
	if err := Conn.Set(globals.Ctx, key, value, 2*time.Minute).Err(); err != nil {
		log.Println("Redis set error:", err)
	}
}

// RdxDel drops a cache entry after the backing data changes.
func RdxDel(key string) {
	if err := Conn.Del(globals.Ctx, key).Err(); err != nil {
		log.Println("Redis del error:", err)
	}
}
