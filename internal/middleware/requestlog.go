package middleware

import (
	"time"

	"github.com/m1z23r/drift/pkg/drift"
	"github.com/rs/zerolog"
)

// RequestLog logs each request after the chain has run.
func RequestLog(log zerolog.Logger) drift.HandlerFunc {
	return func(c *drift.Context) {
		start := time.Now()

		c.Next()

		log.Debug().
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.RequestURI()).
			Dur("duration", time.Since(start)).
			Msg("request")
	}
}
