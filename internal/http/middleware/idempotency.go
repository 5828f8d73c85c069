package middleware

import (
	"context"
	"net/http"
	"regexp"
	"time"

	"github.com/gin-gonic/gin"
)

// HeaderIdempotencyKey carries the client-chosen key that makes retried
// mints and repair-log appends safe to repeat.
const HeaderIdempotencyKey = "Idempotency-Key"

// Unexported context keys, read through the accessors below.
const (
	ctxKeyIdemKey    = "idem.key"
	ctxKeyIdemReplay = "idem.replay"
	ctxKeyRateBypass = "rate.bypass"
)

// GetIdempotencyKey returns the validated key stashed by
// IdempotencyValidator; handlers should use this instead of re-reading the
// header.
func GetIdempotencyKey(c *gin.Context) (string, bool) {
	v, ok := c.Get(ctxKeyIdemKey)
	if !ok {
		return "", false
	}
	s, _ := v.(string)
	return s, s != ""
}

// IsReplay reports whether the lookup found a stored receipt for this
// request, meaning the handler should serve the prior result instead of
// executing the operation again.
func IsReplay(c *gin.Context) bool {
	v, ok := c.Get(ctxKeyIdemReplay)
	if !ok {
		return false
	}
	b, _ := v.(bool)
	return b
}

// IdempotencyOptions tunes header validation. MaxLen <= 0 defaults to 200;
// a nil Pattern defaults to a conservative token alphabet
// (^[A-Za-z0-9._~\-:]+$). Receipt TTL is not a transport concern and lives
// in the lookup implementation.
type IdempotencyOptions struct {
	MaxLen  int
	Pattern *regexp.Regexp
}

// IdempotencyLookup answers whether a still-valid receipt exists for
// (caller, scope, key) at the given time. Scope is the :id path parameter
// for per-token operations and "mint" for token creation, mirroring how
// receipts are persisted. Lookup errors must not block the request; they
// simply mean no replay.
type IdempotencyLookup func(ctx context.Context, caller, scope, key string, now time.Time) (exists bool, err error)

// IdempotencyValidator validates the Idempotency-Key header when present,
// stashes it in the context, and consults the lookup for a prior completed
// request. On a hit it sets the replay flag (see IsReplay) and the
// rate-bypass flag so the limiter does not charge the caller twice for the
// same operation. Requests without the header pass through untouched; an
// invalid key is answered with 400 before any handler runs. The cached
// payload itself is served by the handler, not here.
func IdempotencyValidator(opts IdempotencyOptions, lookup IdempotencyLookup) gin.HandlerFunc {
	maxLen := opts.MaxLen
	if maxLen <= 0 {
		maxLen = 200
	}
	pat := opts.Pattern
	if pat == nil {
		pat = regexp.MustCompile(`^[A-Za-z0-9._~\-:]+$`)
	}

	return func(c *gin.Context) {
		key := c.GetHeader(HeaderIdempotencyKey)
		if key == "" {
			c.Next()
			return
		}
		if len(key) > maxLen || !pat.MatchString(key) {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
				"code":    "bad_idempotency_key",
				"message": "invalid Idempotency-Key",
			})
			return
		}

		c.Set(ctxKeyIdemKey, key)

		if lookup != nil {
			scope := c.Param("id")
			if scope == "" {
				scope = "mint"
			}
			if exists, _ := lookup(c.Request.Context(), callerFromCtx(c), scope, key, time.Now().UTC()); exists {
				c.Set(ctxKeyIdemReplay, true)
				c.Set(ctxKeyRateBypass, true)
			}
		}

		c.Next()
	}
}

// callerFromCtx reads a caller identity stashed under "callerID" by earlier
// middleware, falling back to the raw header. Empty simply means no receipt
// can match.
func callerFromCtx(c *gin.Context) string {
	if v, ok := c.Get("callerID"); ok {
		if s, ok := v.(string); ok && s != "" {
			return s
		}
	}
	return c.GetHeader("X-Caller-ID")
}
