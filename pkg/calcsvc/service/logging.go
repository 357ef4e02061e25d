package service

import (
	"context"
	"time"

	"github.com/go-kit/kit/log"
	"github.com/go-kit/kit/log/level"
)

type loggingMiddleware struct {
	logger log.Logger     `json:""`
	next   CalcsvcService `json:""`
}

// LoggingMiddleware takes a logger as a dependency
// and returns a ServiceMiddleware.
func LoggingMiddleware(logger log.Logger) Middleware {
	return func(next CalcsvcService) CalcsvcService {
		return loggingMiddleware{logger, next}
	}
}

func (lm loggingMiddleware) Multiply(ctx context.Context, a float64, b float64) (rs float64, err error) {
	defer func(begin time.Time) {
		lm.log(err).Log("method", "Multiply", "a", a, "b", b, "rs", rs, "err", err, "took", time.Since(begin))
	}(time.Now())

	return lm.next.Multiply(ctx, a, b)
}

func (lm loggingMiddleware) Divide(ctx context.Context, a float64, b float64) (rs float64, err error) {
	defer func(begin time.Time) {
		lm.log(err).Log("method", "Divide", "a", a, "b", b, "rs", rs, "err", err, "took", time.Since(begin))
	}(time.Now())

	return lm.next.Divide(ctx, a, b)
}

func (lm loggingMiddleware) log(err error) log.Logger {
	if err != nil {
		return level.Warn(lm.logger)
	}
	return level.Info(lm.logger)
}
