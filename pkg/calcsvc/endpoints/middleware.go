package endpoints

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-kit/kit/endpoint"
	"github.com/go-kit/kit/log"
	"github.com/go-kit/kit/log/level"
	"github.com/go-kit/kit/metrics"
)

// ErrUnexpected is returned in place of a recovered panic.
var ErrUnexpected = errors.New("an unexpected error occurred")

// InstrumentingMiddleware returns an endpoint middleware that records
// the duration of each invocation to the passed histogram. The middleware adds
// a single field: "success", which is "true" if no error is returned, and
// "false" otherwise.
func InstrumentingMiddleware(duration metrics.Histogram) endpoint.Middleware {
	return func(next endpoint.Endpoint) endpoint.Endpoint {
		return func(ctx context.Context, request interface{}) (response interface{}, err error) {
			defer func(begin time.Time) {
				duration.With("success", fmt.Sprint(err == nil)).Observe(time.Since(begin).Seconds())
			}(time.Now())
			return next(ctx, request)
		}
	}
}

// LoggingMiddleware returns an endpoint middleware that logs the
// duration of each invocation, the resulting error, if any, and the business
// error carried by the response, if any.
func LoggingMiddleware(logger log.Logger) endpoint.Middleware {
	return func(next endpoint.Endpoint) endpoint.Endpoint {
		return func(ctx context.Context, request interface{}) (response interface{}, err error) {
			defer func(begin time.Time) {
				took := time.Since(begin)
				if err != nil {
					level.Error(logger).Log("transport_error", err, "took", took)
					return
				}
				if f, ok := response.(Failer); ok && f.Failed() != nil {
					level.Warn(logger).Log("request", fmt.Sprintf("%+v", request), "failed", f.Failed(), "took", took)
					return
				}
				level.Info(logger).Log("transport_error", err, "took", took)
			}(time.Now())
			return next(ctx, request)
		}
	}
}

// RecoverMiddleware returns an endpoint middleware that turns a panic in the
// wrapped endpoint into ErrUnexpected. The panic value is logged, never
// returned.
func RecoverMiddleware(logger log.Logger) endpoint.Middleware {
	return func(next endpoint.Endpoint) endpoint.Endpoint {
		return func(ctx context.Context, request interface{}) (response interface{}, err error) {
			defer func() {
				if r := recover(); r != nil {
					level.Error(logger).Log("panic", fmt.Sprint(r))
					response, err = nil, ErrUnexpected
				}
			}()
			return next(ctx, request)
		}
	}
}
