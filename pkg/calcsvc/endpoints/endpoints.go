package endpoints

import (
	"context"

	"github.com/go-kit/kit/circuitbreaker"
	"github.com/go-kit/kit/endpoint"
	"github.com/go-kit/kit/log"
	"github.com/go-kit/kit/metrics"
	"github.com/go-kit/kit/ratelimit"
	"github.com/go-kit/kit/tracing/opentracing"
	"github.com/go-kit/kit/tracing/zipkin"
	stdopentracing "github.com/opentracing/opentracing-go"
	stdzipkin "github.com/openzipkin/zipkin-go"
	"github.com/sony/gobreaker"
	"golang.org/x/time/rate"

	"github.com/cage1016/gokitcalc/pkg/calcsvc/service"
)

// Options switches on the protective middlewares. The zero value leaves both
// off, so every request is handled on its own.
type Options struct {
	// RateLimit caps each endpoint at this many requests per second; 0 disables it.
	RateLimit int
	// CircuitBreaker opens an endpoint after consecutive unexpected failures.
	CircuitBreaker bool
}

// Endpoints collects all of the endpoints that compose the calcsvc service. It's
// meant to be used as a helper struct, to collect all of the endpoints into a
// single parameter.
type Endpoints struct {
	MultiplyEndpoint endpoint.Endpoint `json:""`
	DivideEndpoint   endpoint.Endpoint `json:""`
}

// New return a new instance of the endpoint that wraps the provided service.
func New(svc service.CalcsvcService, logger log.Logger, duration metrics.Histogram, otTracer stdopentracing.Tracer, zipkinTracer *stdzipkin.Tracer, opts Options) (ep Endpoints) {
	var multiplyEndpoint endpoint.Endpoint
	{
		method := "multiply"
		multiplyEndpoint = MakeMultiplyEndpoint(svc)
		multiplyEndpoint = RecoverMiddleware(log.With(logger, "method", method))(multiplyEndpoint)
		multiplyEndpoint = opts.protect(method)(multiplyEndpoint)
		multiplyEndpoint = opentracing.TraceServer(otTracer, method)(multiplyEndpoint)
		multiplyEndpoint = zipkin.TraceEndpoint(zipkinTracer, method)(multiplyEndpoint)
		multiplyEndpoint = InstrumentingMiddleware(duration.With("method", method))(multiplyEndpoint)
		multiplyEndpoint = LoggingMiddleware(log.With(logger, "method", method))(multiplyEndpoint)
		ep.MultiplyEndpoint = multiplyEndpoint
	}

	var divideEndpoint endpoint.Endpoint
	{
		method := "divide"
		divideEndpoint = MakeDivideEndpoint(svc)
		divideEndpoint = RecoverMiddleware(log.With(logger, "method", method))(divideEndpoint)
		divideEndpoint = opts.protect(method)(divideEndpoint)
		divideEndpoint = opentracing.TraceServer(otTracer, method)(divideEndpoint)
		divideEndpoint = zipkin.TraceEndpoint(zipkinTracer, method)(divideEndpoint)
		divideEndpoint = InstrumentingMiddleware(duration.With("method", method))(divideEndpoint)
		divideEndpoint = LoggingMiddleware(log.With(logger, "method", method))(divideEndpoint)
		ep.DivideEndpoint = divideEndpoint
	}

	return ep
}

// protect returns the enabled breaker and limiter for one endpoint. The
// limiter sits outside the breaker so that rejected requests are never
// counted as failures.
func (o Options) protect(method string) endpoint.Middleware {
	return func(next endpoint.Endpoint) endpoint.Endpoint {
		if o.CircuitBreaker {
			next = circuitbreaker.Gobreaker(gobreaker.NewCircuitBreaker(gobreaker.Settings{Name: method}))(next)
		}
		if o.RateLimit > 0 {
			next = ratelimit.NewErroringLimiter(rate.NewLimiter(rate.Limit(o.RateLimit), o.RateLimit))(next)
		}
		return next
	}
}

// MakeMultiplyEndpoint returns an endpoint that invokes Multiply on the service.
// Invalid input is reported in the response, not as an endpoint error.
func MakeMultiplyEndpoint(svc service.CalcsvcService) (ep endpoint.Endpoint) {
	return func(ctx context.Context, request interface{}) (interface{}, error) {
		a, b, err := request.(Request).validate()
		if err != nil {
			return MultiplyResponse{Err: err}, nil
		}
		rs, err := svc.Multiply(ctx, a, b)
		if err != nil && !service.IsBadRequest(err) {
			return nil, err
		}
		return MultiplyResponse{A: a, B: b, Rs: rs, Err: err}, nil
	}
}

// MakeDivideEndpoint returns an endpoint that invokes Divide on the service.
// Invalid input is reported in the response, not as an endpoint error.
func MakeDivideEndpoint(svc service.CalcsvcService) (ep endpoint.Endpoint) {
	return func(ctx context.Context, request interface{}) (interface{}, error) {
		a, b, err := request.(Request).validate()
		if err != nil {
			return DivideResponse{Err: err}, nil
		}
		rs, err := svc.Divide(ctx, a, b)
		if err != nil && !service.IsBadRequest(err) {
			return nil, err
		}
		return DivideResponse{A: a, B: b, Rs: rs, Err: err}, nil
	}
}
