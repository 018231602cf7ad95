package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/community-hub-api/pkg/middleware/requestid"
)

const (
	responseMetaKey   = "response_meta"
	requestStartKey   = "request_start"
	cacheHitKey       = "cache_hit"
	processingTimeKey = "processing_time_ms"

	// CacheHeader tells clients whether a listing was served from the snapshot cache.
	CacheHeader = "X-Cache"
)

// WithResponseMeta initialises response metadata storage on the request context.
// The request ID is copied in so envelopes can be correlated with logs, and
// the start time is kept so ResponseMeta can report processing time.
func WithResponseMeta() gin.HandlerFunc {
	return func(c *gin.Context) {
		meta := map[string]interface{}{}
		if id := requestid.Value(c); id != "" {
			meta["request_id"] = id
		}
		c.Set(requestStartKey, time.Now())
		c.Set(responseMetaKey, meta)
		c.Next()
	}
}

// ResponseMeta returns the stored metadata with processing_time_ms stamped
// from the request start. Handlers call it right before writing the envelope.
func ResponseMeta(c *gin.Context) map[string]interface{} {
	meta := ExtractMeta(c)
	if meta == nil {
		return nil
	}
	if start, ok := c.Get(requestStartKey); ok {
		if t, ok := start.(time.Time); ok {
			meta[processingTimeKey] = time.Since(t).Milliseconds()
		}
	}
	return meta
}

// SetCacheHit records cache hit information for the current response and
// mirrors it into the X-Cache header. Call before the body is written.
func SetCacheHit(c *gin.Context, hit bool) {
	meta := ensureMeta(c)
	meta[cacheHitKey] = hit
	if c == nil {
		return
	}
	if hit {
		c.Header(CacheHeader, "HIT")
	} else {
		c.Header(CacheHeader, "MISS")
	}
}

// ExtractMeta returns the metadata map stored on the context.
func ExtractMeta(c *gin.Context) map[string]interface{} {
	if c == nil {
		return nil
	}
	if meta, exists := c.Get(responseMetaKey); exists {
		if typed, ok := meta.(map[string]interface{}); ok {
			return typed
		}
	}
	return nil
}

func ensureMeta(c *gin.Context) map[string]interface{} {
	if c == nil {
		return map[string]interface{}{}
	}
	if meta := ExtractMeta(c); meta != nil {
		return meta
	}
	meta := make(map[string]interface{})
	c.Set(responseMetaKey, meta)
	return meta
}
