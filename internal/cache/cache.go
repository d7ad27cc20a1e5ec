// Package cache is the gateway's transient lookup cache: small JSON values
// with short TTLs (resume-to-assistant resolutions) on the shared redis
// instance. Nothing cached here is authoritative; a miss always falls
// through to the upstream interview API.
package cache

import (
	"context"
	"time"
)

type Cache interface {
	GetJSON(ctx context.Context, key string, dst any) (hit bool, err error)
	SetJSON(ctx context.Context, key string, val any, ttl time.Duration) error
	Del(ctx context.Context, keys ...string) error
}
