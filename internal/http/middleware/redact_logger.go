package middleware

import (
	"regexp"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// Scrub patterns applied to query strings and header values before they
// reach the log stream. Caller identities in this API are free-form, so
// operators sometimes use corporate email addresses or directory UUIDs as
// identities; neither belongs in logs. Order matters: UUIDs are replaced
// first so the loose phone pattern cannot match their digit runs.
var (
	scrubUUID  = regexp.MustCompile(`(?i)\b[0-9a-f]{8}\-[0-9a-f]{4}\-[1-5][0-9a-f]{3}\-[89ab][0-9a-f]{3}\-[0-9a-f]{12}\b`)
	scrubEmail = regexp.MustCompile(`(?i)\b[a-z0-9._%+\-]+@[a-z0-9.\-]+\.[a-z]{2,}\b`)
	scrubPhone = regexp.MustCompile(`\b(?:\+?\d{1,3}[ .-]?)?(?:\(?\d{2,4}\)?[ .-]?)?\d{3,4}[ .-]?\d{4}\b`)
)

func scrub(s string) string {
	if s == "" {
		return s
	}
	s = scrubUUID.ReplaceAllString(s, "[REDACTED:id]")
	s = scrubEmail.ReplaceAllString(s, "[REDACTED:email]")
	return scrubPhone.ReplaceAllString(s, "[REDACTED:phone]")
}

// RedactOptions lists extra header names (case-insensitive) whose values are
// fully masked in addition to the built-in Authorization, Cookie and
// Set-Cookie set.
type RedactOptions struct {
	MaskHeaders []string
}

// RedactingLogger returns a middleware that writes one structured zerolog
// line per request: method, route path, scrubbed query, status, response
// size, latency and scrubbed headers. Request and response bodies are never
// logged. Severity follows the status code: info below 400, warn for 4xx,
// error for 5xx. The request id is taken from the X-Request-ID response
// header when RequestID ran earlier in the chain, falling back to the
// request header.
func RedactingLogger(opts RedactOptions) gin.HandlerFunc {
	masked := map[string]struct{}{
		"authorization": {},
		"cookie":        {},
		"set-cookie":    {},
	}
	for _, h := range opts.MaskHeaders {
		if h = strings.ToLower(strings.TrimSpace(h)); h != "" {
			masked[h] = struct{}{}
		}
	}

	return func(c *gin.Context) {
		start := time.Now()

		path := c.FullPath()
		if path == "" {
			path = c.Request.URL.Path
		}
		query := scrub(c.Request.URL.RawQuery)

		headers := make(map[string]string, len(c.Request.Header))
		for name, vals := range c.Request.Header {
			if _, ok := masked[strings.ToLower(name)]; ok {
				headers[name] = "[REDACTED]"
				continue
			}
			headers[name] = scrub(strings.Join(vals, ", "))
		}

		c.Next()

		status := c.Writer.Status()
		reqID := c.Writer.Header().Get("X-Request-ID")
		if reqID == "" {
			reqID = c.GetHeader("X-Request-ID")
		}

		ev := log.Info()
		switch {
		case status >= 500:
			ev = log.Error()
		case status >= 400:
			ev = log.Warn()
		}
		ev.
			Str("request_id", reqID).
			Str("method", c.Request.Method).
			Str("path", path).
			Str("query", query).
			Int("status", status).
			Int("bytes", c.Writer.Size()).
			Dur("latency", time.Since(start)).
			Interface("headers", headers).
			Msg("http_request")
	}
}
