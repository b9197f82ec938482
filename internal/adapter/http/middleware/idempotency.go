package middleware

import (
	"bytes"
	"encoding/json"
	"net/http"
	"time"

	"bitpesa-lending/internal/core/domain"
	"bitpesa-lending/internal/core/ports"
	"bitpesa-lending/pkg/apperror"
	"bitpesa-lending/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

const (
	HeaderIdempotentReplay = "Idempotent-Replayed"

	maxIdempotencyKeyLength = 128
)

// cachedResponse is what the idempotency cache stores per key.
type cachedResponse struct {
	Status int             `json:"status"`
	Body   json.RawMessage `json:"body"`
}

type bodyRecorder struct {
	gin.ResponseWriter
	buf bytes.Buffer
}

func (w *bodyRecorder) Write(b []byte) (int, error) {
	w.buf.Write(b)
	return w.ResponseWriter.Write(b)
}

func (w *bodyRecorder) WriteString(s string) (int, error) {
	w.buf.WriteString(s)
	return w.ResponseWriter.WriteString(s)
}

// Idempotency replays the first successful response of a request carrying
// the same Idempotency-Key. Keys are scoped to the caller, the method and
// the concrete request path, so one key sent to /loans/1/repay and
// /loans/2/repay names two different requests.
// Requests without the header pass through. Cache failures degrade to
// executing the request.
func Idempotency(cache ports.IdempotencyCache, ttl time.Duration, log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := c.GetHeader(HeaderIdempotencyKey)
		if key == "" {
			c.Next()
			return
		}
		if len(key) > maxIdempotencyKeyLength {
			response.Error(c, apperror.Validation("Idempotency-Key is too long"))
			c.Abort()
			return
		}

		var account domain.Account
		if caller, ok := CallerFrom(c); ok {
			account = caller.Account
		}
		scoped := domain.BuildIdempotencyKey(account, c.Request.Method+" "+c.Request.URL.Path, key)

		cached, err := cache.Get(c.Request.Context(), scoped)
		if err != nil {
			log.Warn().Err(err).Str("key", scoped).Msg("idempotency lookup failed, executing request")
		}
		if cached != nil {
			var prev cachedResponse
			if err := json.Unmarshal(cached, &prev); err == nil {
				c.Header(HeaderIdempotentReplay, "true")
				c.Data(prev.Status, "application/json; charset=utf-8", prev.Body)
				c.Abort()
				return
			}
			log.Warn().Str("key", scoped).Msg("discarding corrupt idempotency entry")
		}

		rec := &bodyRecorder{ResponseWriter: c.Writer}
		c.Writer = rec
		c.Next()

		status := rec.Status()
		if status < http.StatusOK || status >= http.StatusMultipleChoices {
			return
		}
		payload, err := json.Marshal(cachedResponse{Status: status, Body: rec.buf.Bytes()})
		if err != nil {
			return
		}
		if err := cache.Set(c.Request.Context(), scoped, payload, ttl); err != nil {
			log.Warn().Err(err).Str("key", scoped).Msg("failed to cache idempotent response")
		}
	}
}
