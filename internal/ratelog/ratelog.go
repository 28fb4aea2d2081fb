// Package ratelog provides a rate-limited logger, adapted from the
// teacher's pkg/util.RateLimitedLogger. internal/transport uses it for
// its "retrying request" messages, which would otherwise flood the log
// when many parallel requests are retried at once.
package ratelog

import (
	"time"

	"github.com/go-kit/log"
	"golang.org/x/time/rate"
)

// Logger wraps a go-kit logger and drops log calls beyond the
// configured rate.
type Logger struct {
	limiter *rate.Limiter
	logger  log.Logger
}

// New returns a Logger that allows at most logsPerSecond Log calls per
// second, after which calls are silently dropped.
func New(logsPerSecond int, logger log.Logger) *Logger {
	return &Logger{
		limiter: rate.NewLimiter(rate.Limit(logsPerSecond), 1),
		logger:  logger,
	}
}

// Log forwards keyvals to the wrapped logger if under the rate limit.
func (l *Logger) Log(keyvals ...interface{}) error {
	if !l.limiter.AllowN(time.Now(), 1) {
		return nil
	}
	return l.logger.Log(keyvals...)
}
