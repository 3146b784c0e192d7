package middleware

import (
	"fmt"
	"log"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
)

type RateLimitConfig struct {
	Max    int
	Window time.Duration
	Prefix string
}

// RateLimit counts requests per client IP in a fixed Redis window. Redis
// being down fails open: availability wins over throttling here.
func RateLimit(client *redis.Client, cfg RateLimitConfig) fiber.Handler {
	if cfg.Max <= 0 {
		cfg.Max = 100
	}
	if cfg.Window <= 0 {
		cfg.Window = time.Minute
	}
	if cfg.Prefix == "" {
		cfg.Prefix = "ratelimit"
	}

	return func(c *fiber.Ctx) error {
		key := fmt.Sprintf("%s:%s", cfg.Prefix, c.IP())

		count, err := client.Incr(c.Context(), key).Result()
		if err != nil {
			log.Printf("Rate limit check failed for %s: %v", c.IP(), err)
			return c.Next()
		}

		if count == 1 {
			if err := client.Expire(c.Context(), key, cfg.Window).Err(); err != nil {
				log.Printf("Failed to set rate limit window for %s: %v", c.IP(), err)
			}
		}

		ttl, err := client.TTL(c.Context(), key).Result()
		if err != nil || ttl < 0 {
			ttl = cfg.Window
		}

		remaining := cfg.Max - int(count)
		if remaining < 0 {
			remaining = 0
		}
		c.Set("X-RateLimit-Limit", strconv.Itoa(cfg.Max))
		c.Set("X-RateLimit-Remaining", strconv.Itoa(remaining))

		if count > int64(cfg.Max) {
			c.Set("Retry-After", strconv.Itoa(int(ttl.Seconds())))
			return c.Status(fiber.StatusTooManyRequests).JSON(ErrorResponse{
				Code:    "RATE_LIMITED",
				Message: "Too many requests, please try again later",
			})
		}

		return c.Next()
	}
}
