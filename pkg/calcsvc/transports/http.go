package transports

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-kit/kit/log"
	"github.com/go-kit/kit/log/level"
	"github.com/go-kit/kit/ratelimit"
	"github.com/go-kit/kit/tracing/opentracing"
	"github.com/go-kit/kit/tracing/zipkin"
	httptransport "github.com/go-kit/kit/transport/http"
	"github.com/gorilla/mux"
	stdopentracing "github.com/opentracing/opentracing-go"
	stdzipkin "github.com/openzipkin/zipkin-go"
	"github.com/sony/gobreaker"

	"github.com/cage1016/gokitcalc/pkg/calcsvc/endpoints"
	"github.com/cage1016/gokitcalc/pkg/calcsvc/service"
)

// NewHTTPHandler returns a handler that makes a set of endpoints available on
// predefined paths. Every response, failures included, is an HTML page.
func NewHTTPHandler(endpoints endpoints.Endpoints, otTracer stdopentracing.Tracer, zipkinTracer *stdzipkin.Tracer, logger log.Logger) http.Handler {
	// A global zipkin tracing service is fed to each endpoint as ServerOption;
	// the operation name will be the endpoint's http method.
	zipkinServer := zipkin.HTTPServerTrace(zipkinTracer)

	options := []httptransport.ServerOption{
		httptransport.ServerErrorEncoder(httpEncodeError),
		httptransport.ServerErrorLogger(logger),
		httptransport.ServerBefore(logRequest(logger)),
		zipkinServer,
	}

	m := mux.NewRouter()
	m.Handle("/multiply", httptransport.NewServer(
		endpoints.MultiplyEndpoint,
		decodeHTTPMultiplyRequest,
		encodeHTTPMultiplyResponse,
		append(options, httptransport.ServerBefore(opentracing.HTTPToContext(otTracer, "Multiply", logger)))...,
	)).Methods(http.MethodGet, http.MethodPost)
	m.Handle("/divide", httptransport.NewServer(
		endpoints.DivideEndpoint,
		decodeHTTPDivideRequest,
		encodeHTTPDivideResponse,
		append(options, httptransport.ServerBefore(opentracing.HTTPToContext(otTracer, "Divide", logger)))...,
	)).Methods(http.MethodGet, http.MethodPost)
	m.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte("ok"))
	}).Methods(http.MethodGet)

	return recoverHandler(m, logger)
}

// decodeHTTPMultiplyRequest is a transport/http.DecodeRequestFunc that reads
// A and B from the query string or the form body. Primarily useful in a server.
func decodeHTTPMultiplyRequest(_ context.Context, r *http.Request) (interface{}, error) {
	return endpoints.MultiplyRequest{
		A: r.FormValue(service.ParamA),
		B: r.FormValue(service.ParamB),
	}, nil
}

// decodeHTTPDivideRequest is a transport/http.DecodeRequestFunc that reads
// A and B from the query string or the form body. Primarily useful in a server.
func decodeHTTPDivideRequest(_ context.Context, r *http.Request) (interface{}, error) {
	return endpoints.DivideRequest{
		A: r.FormValue(service.ParamA),
		B: r.FormValue(service.ParamB),
	}, nil
}

// encodeHTTPMultiplyResponse is a transport/http.EncodeResponseFunc that
// renders the product, or the business error, as an HTML page.
func encodeHTTPMultiplyResponse(_ context.Context, w http.ResponseWriter, response interface{}) error {
	resp := response.(endpoints.MultiplyResponse)
	copyHeaders(w, resp.Headers())
	if err := resp.Failed(); err != nil {
		return Render(errorFragment(err.Error()), resp.StatusCode()).WriteTo(w)
	}
	return Render(multiplication.fragment(resp.A, resp.B, resp.Rs), resp.StatusCode()).WriteTo(w)
}

// encodeHTTPDivideResponse is a transport/http.EncodeResponseFunc that
// renders the quotient, or the business error, as an HTML page.
func encodeHTTPDivideResponse(_ context.Context, w http.ResponseWriter, response interface{}) error {
	resp := response.(endpoints.DivideResponse)
	copyHeaders(w, resp.Headers())
	if err := resp.Failed(); err != nil {
		return Render(errorFragment(err.Error()), resp.StatusCode()).WriteTo(w)
	}
	return Render(division.fragment(resp.A, resp.B, resp.Rs), resp.StatusCode()).WriteTo(w)
}

func copyHeaders(w http.ResponseWriter, h http.Header) {
	for k, values := range h {
		for _, v := range values {
			w.Header().Add(k, v)
		}
	}
}

// httpEncodeError renders endpoint errors. Only the protective middlewares
// get a specific message; anything else is reported without detail.
func httpEncodeError(_ context.Context, err error, w http.ResponseWriter) {
	code, msg := http.StatusInternalServerError, endpoints.ErrUnexpected.Error()
	switch {
	case errors.Is(err, ratelimit.ErrLimited):
		code, msg = http.StatusTooManyRequests, "too many requests, try again later"
	case errors.Is(err, gobreaker.ErrOpenState), errors.Is(err, gobreaker.ErrTooManyRequests):
		code, msg = http.StatusServiceUnavailable, "service temporarily unavailable"
	}
	Render(errorFragment(msg), code).WriteTo(w)
}

// sensitiveHeaders have their values replaced before request logging.
var sensitiveHeaders = []string{"Authorization", "Proxy-Authorization", "Cookie", "Set-Cookie"}

func logRequest(logger log.Logger) httptransport.RequestFunc {
	return func(ctx context.Context, r *http.Request) context.Context {
		level.Debug(logger).Log("http_method", r.Method, "url", r.URL.String(), "headers", fmt.Sprint(redactHeaders(r.Header)))
		return ctx
	}
}

func redactHeaders(h http.Header) http.Header {
	out := h.Clone()
	for _, k := range sensitiveHeaders {
		if _, ok := out[k]; ok {
			out[k] = []string{"[REDACTED]"}
		}
	}
	return out
}

// recoverHandler answers with the generic 500 page when next panics, for
// example inside a response encoder. If the response has already started it
// is left as is.
func recoverHandler(next http.Handler, logger log.Logger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tw := &trackingWriter{ResponseWriter: w}
		defer func() {
			v := recover()
			if v == nil {
				return
			}
			if v == http.ErrAbortHandler {
				panic(v)
			}
			level.Error(logger).Log("panic", fmt.Sprint(v), "url", r.URL.String(), "response_started", tw.started)
			if !tw.started {
				Render(errorFragment(endpoints.ErrUnexpected.Error()), http.StatusInternalServerError).WriteTo(w)
			}
		}()
		next.ServeHTTP(tw, r)
	})
}

// trackingWriter records whether a status line or body was written.
type trackingWriter struct {
	http.ResponseWriter
	started bool
}

func (w *trackingWriter) WriteHeader(code int) {
	w.started = true
	w.ResponseWriter.WriteHeader(code)
}

func (w *trackingWriter) Write(b []byte) (int, error) {
	w.started = true
	return w.ResponseWriter.Write(b)
}
