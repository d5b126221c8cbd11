package cache

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/rs/zerolog"

	"github.com/solaceapp/solace/pkg/memory"
)

// DefaultTTL is how long a cached answer stays servable.
const DefaultTTL = 7 * 24 * time.Hour

var nonAlnumPattern = regexp.MustCompile(`[^a-z0-9\s]`)
var whitespacePattern = regexp.MustCompile(`\s+`)

// Normalize derives the cache key from raw question text: lowercase, strip
// everything outside [a-z0-9\s], collapse whitespace. Idempotent.
func Normalize(text string) string {
	key := strings.ToLower(text)
	key = nonAlnumPattern.ReplaceAllString(key, "")
	key = whitespacePattern.ReplaceAllString(key, " ")
	return strings.TrimSpace(key)
}

// Store is the durable cache backing, satisfied by memory.SQLiteStore.
type Store interface {
	GetCachedResponse(ctx context.Context, key, personality string) (memory.CachedResponse, error)
	PutCachedResponse(ctx context.Context, key, personality, response string) error
	PurgeExpiredCache(ctx context.Context, cutoffMS int64) (int, error)
}

// hotEntry carries the durable creation time into the hot layer. The LRU's
// own expiry clock starts at Add, so promoted entries must keep their
// original age or a late read would extend their life past the TTL.
type hotEntry struct {
	response    string
	createdAtMS int64
}

// ResponseCache serves frequently asked, context-free questions. A small
// in-process LRU sits in front of the durable store so repeated FAQ hits
// skip SQLite entirely. Failures on either layer degrade to a miss; the
// chat path never sees a cache error.
type ResponseCache struct {
	store Store
	hot   *expirable.LRU[string, hotEntry]
	ttl   time.Duration
	log   zerolog.Logger
}

func NewResponseCache(store Store, ttl time.Duration, hotEntries int, log zerolog.Logger) *ResponseCache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	if hotEntries <= 0 {
		hotEntries = 256
	}
	return &ResponseCache{
		store: store,
		hot:   expirable.NewLRU[string, hotEntry](hotEntries, nil, ttl),
		ttl:   ttl,
		log:   log.With().Str("component", "cache").Logger(),
	}
}

func (c *ResponseCache) TTL() time.Duration { return c.ttl }

func hotKey(key, personality string) string {
	return personality + "\x00" + key
}

// Get returns the cached answer for (key, personality). Absent entries,
// expired entries, and store failures all report a miss.
func (c *ResponseCache) Get(ctx context.Context, key, personality string) (string, bool) {
	if key == "" {
		return "", false
	}
	if hot, ok := c.hot.Get(hotKey(key, personality)); ok {
		if time.Since(time.UnixMilli(hot.createdAtMS)) <= c.ttl {
			return hot.response, true
		}
		c.hot.Remove(hotKey(key, personality))
	}
	if c.store == nil {
		return "", false
	}

	entry, err := c.store.GetCachedResponse(ctx, key, personality)
	if err != nil {
		if !errors.Is(err, memory.ErrNotFound) {
			c.log.Warn().Err(err).Str("key", key).Msg("cache read failed, treating as miss")
		}
		return "", false
	}
	if time.Since(time.UnixMilli(entry.CreatedAtMS)) > c.ttl {
		return "", false
	}

	c.hot.Add(hotKey(key, personality), hotEntry{response: entry.Response, createdAtMS: entry.CreatedAtMS})
	return entry.Response, true
}

// Put upserts an answer and reports success. Failures are logged, never
// returned as errors.
func (c *ResponseCache) Put(ctx context.Context, key, personality, response string) bool {
	if key == "" || response == "" {
		return false
	}
	if c.store != nil {
		if err := c.store.PutCachedResponse(ctx, key, personality, response); err != nil {
			c.log.Warn().Err(err).Str("key", key).Msg("cache write failed")
			return false
		}
	}
	c.hot.Add(hotKey(key, personality), hotEntry{response: response, createdAtMS: time.Now().UnixMilli()})
	return true
}
