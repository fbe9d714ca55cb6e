// Package cache stores viewer-independent read results. Values are kept as
// JSON so every hit decodes into a fresh copy the caller may annotate.
package cache

import (
	"context"
	"time"
)

type Cache interface {
	// Get decodes the value stored under key into dst and reports a hit.
	Get(ctx context.Context, key string, dst any) bool
	Set(ctx context.Context, key string, v any, ttl time.Duration)
	Delete(ctx context.Context, keys ...string)
}

// Nop never stores anything.
type Nop struct{}

func (Nop) Get(context.Context, string, any) bool          { return false }
func (Nop) Set(context.Context, string, any, time.Duration) {}
func (Nop) Delete(context.Context, ...string)               {}
