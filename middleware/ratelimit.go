package middleware

import (
	"fmt"
	"sync"
	"time"

	"github.com/gofiber/fiber/v2"
)

type rateBucket struct {
	window int64
	count  int
}

var (
	rateMu      sync.Mutex
	rateBuckets = make(map[string]*rateBucket)
)

// RateLimit returns a fixed-window per-IP limiter for a route group. It only
// protects the auth endpoints against brute force; the rating cooldown is a
// separate, store-backed rule.
func RateLimit(keyPrefix string, maxPerMinute int) fiber.Handler {
	return func(c *fiber.Ctx) error {
		key := fmt.Sprintf("%s:%s", keyPrefix, c.IP())
		window := time.Now().Unix() / 60

		rateMu.Lock()
		bucket, ok := rateBuckets[key]
		if !ok || bucket.window != window {
			rateBuckets[key] = &rateBucket{window: window, count: 1}
			rateMu.Unlock()
			return c.Next()
		}
		bucket.count++
		count := bucket.count
		rateMu.Unlock()

		if count > maxPerMinute {
			return JsonResponse(c, fiber.StatusTooManyRequests, false, "Too many requests!", nil)
		}
		return c.Next()
	}
}
