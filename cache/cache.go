package cache

import (
	"context"
	"strconv"
	"time"
)

// Cache is the small key/value surface the services need: JSON values with
// a TTL and expiring counters.
type Cache interface {
	// GetJSON decodes the value under key into dst and reports whether it was present.
	GetJSON(ctx context.Context, key string, dst any) (bool, error)
	SetJSON(ctx context.Context, key string, v any, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
	// Incr bumps the counter under key, starting the ttl on first use.
	Incr(ctx context.Context, key string, ttl time.Duration) (int64, error)
	// Count reads the counter under key, zero when absent.
	Count(ctx context.Context, key string) (int64, error)
}

// SlotsKey names the cached free slots of a doctor's day at one generation.
// Bumping the generation retires every list computed before the bump.
func SlotsKey(doctorID, date string, gen int64) string {
	return "slots:" + doctorID + ":" + date + ":" + strconv.FormatInt(gen, 10)
}

func SlotsGenKey(doctorID, date string) string {
	return "slots:gen:" + doctorID + ":" + date
}

func LoginFailKey(email string) string {
	return "login:fail:" + email
}
