package main

import (
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	"github.com/go-kit/kit/log"
	"github.com/go-kit/kit/log/level"
	kitprometheus "github.com/go-kit/kit/metrics/prometheus"
	"github.com/go-kit/kit/sd"
	"github.com/gorilla/mux"
	stdopentracing "github.com/opentracing/opentracing-go"
	"github.com/openzipkin/zipkin-go"
	zipkinhttp "github.com/openzipkin/zipkin-go/reporter/http"
	stdprometheus "github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/cage1016/gokitcalc/pkg/calcsvc/endpoints"
	"github.com/cage1016/gokitcalc/pkg/calcsvc/registry"
	"github.com/cage1016/gokitcalc/pkg/calcsvc/service"
	"github.com/cage1016/gokitcalc/pkg/calcsvc/transports"
)

const (
	defZipkinV2URL string = ""
	defConsulAddr  string = ""
	defNameSpace   string = "gokitcalc"
	defServiceName string = "calcsvc"
	defLogLevel    string = "info"
	defServiceHost string = "localhost"
	defHTTPPort    string = "8180"
	defRateLimit   string = "0"
	defBreaker     string = "false"
	envZipkinV2URL string = "QS_ZIPKIN_V2_URL"
	envConsulAddr  string = "QS_CONSUL_ADDR"
	envNameSpace   string = "QS_CALCSVC_NAMESPACE"
	envServiceName string = "QS_CALCSVC_SERVICE_NAME"
	envLogLevel    string = "QS_CALCSVC_LOG_LEVEL"
	envServiceHost string = "QS_CALCSVC_SERVICE_HOST"
	envHTTPPort    string = "QS_CALCSVC_HTTP_PORT"
	envRateLimit   string = "QS_CALCSVC_RATE_LIMIT"
	envBreaker     string = "QS_CALCSVC_CIRCUIT_BREAKER"
)

type config struct {
	nameSpace   string
	serviceName string
	logLevel    string
	serviceHost string
	httpPort    string
	rateLimit   int
	breaker     bool
	zipkinV2URL string
	consulAddr  string
}

// Env reads specified environment variable. If no value has been found,
// fallback is returned.
func env(key string, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func main() {
	var logger log.Logger
	{
		logger = log.NewLogfmtLogger(os.Stderr)
		logger = log.With(logger, "ts", log.DefaultTimestampUTC)
	}
	cfg := loadConfig(logger)
	{
		logger = level.NewFilter(logger, levelOption(cfg.logLevel))
		logger = log.With(logger, "caller", log.DefaultCaller)
		logger = log.With(logger, "service", cfg.serviceName)
	}

	var tracer stdopentracing.Tracer
	{
		tracer = stdopentracing.GlobalTracer()
	}

	var zipkinTracer *zipkin.Tracer
	{
		var (
			err           error
			hostPort      = fmt.Sprintf("%s:%s", cfg.serviceHost, cfg.httpPort)
			serviceName   = cfg.serviceName
			useNoopTracer = (cfg.zipkinV2URL == "")
			reporter      = zipkinhttp.NewReporter(cfg.zipkinV2URL)
		)
		defer reporter.Close()
		zEP, _ := zipkin.NewEndpoint(serviceName, hostPort)
		zipkinTracer, err = zipkin.NewTracer(reporter, zipkin.WithLocalEndpoint(zEP), zipkin.WithNoopTracer(useNoopTracer))
		if err != nil {
			level.Error(logger).Log("err", err)
			os.Exit(1)
		}
		if !useNoopTracer {
			level.Info(logger).Log("tracer", "Zipkin", "type", "Native", "URL", cfg.zipkinV2URL)
		}
	}

	httpHandler := NewServer(cfg, logger, tracer, zipkinTracer)

	var registrar sd.Registrar
	if cfg.consulAddr != "" {
		r, err := registry.NewRegistrar(registry.Config{
			ConsulAddr:  cfg.consulAddr,
			NameSpace:   cfg.nameSpace,
			ServiceName: cfg.serviceName,
			ServiceHost: cfg.serviceHost,
			HTTPPort:    cfg.httpPort,
			CheckPath:   "/health",
		}, logger)
		if err != nil {
			level.Error(logger).Log("consul", cfg.consulAddr, "err", err)
			os.Exit(1)
		}
		registrar = r
	}

	ln, err := net.Listen("tcp", fmt.Sprintf(":%s", cfg.httpPort))
	if err != nil {
		level.Error(logger).Log("protocol", "HTTP", "exposed", cfg.httpPort, "err", err)
		os.Exit(1)
	}

	errs := make(chan error, 2)
	startHTTPServer(cfg, ln, httpHandler, registrar, logger, errs)

	go func() {
		c := make(chan os.Signal, 1)
		signal.Notify(c, syscall.SIGINT, syscall.SIGTERM)
		errs <- fmt.Errorf("%s", <-c)
	}()

	err = <-errs
	if registrar != nil {
		registrar.Deregister()
	}
	level.Info(logger).Log("serviceName", cfg.serviceName, "terminated", err)
}

func loadConfig(logger log.Logger) (cfg config) {
	rateLimit, err := strconv.Atoi(env(envRateLimit, defRateLimit))
	if err != nil || rateLimit < 0 {
		level.Error(logger).Log("envRateLimit", envRateLimit, "error", "invalid rate limit, rate limiting disabled")
		rateLimit, _ = strconv.Atoi(defRateLimit)
	}
	breaker, err := strconv.ParseBool(env(envBreaker, defBreaker))
	if err != nil {
		level.Error(logger).Log("envBreaker", envBreaker, "error", "invalid boolean, circuit breaker disabled")
		breaker = false
	}

	cfg.nameSpace = env(envNameSpace, defNameSpace)
	cfg.serviceName = env(envServiceName, defServiceName)
	cfg.logLevel = env(envLogLevel, defLogLevel)
	cfg.serviceHost = env(envServiceHost, defServiceHost)
	cfg.httpPort = env(envHTTPPort, defHTTPPort)
	cfg.rateLimit = rateLimit
	cfg.breaker = breaker
	cfg.zipkinV2URL = env(envZipkinV2URL, defZipkinV2URL)
	cfg.consulAddr = env(envConsulAddr, defConsulAddr)
	return cfg
}

func levelOption(s string) level.Option {
	switch strings.ToLower(s) {
	case "debug":
		return level.AllowDebug()
	case "warn", "warning":
		return level.AllowWarn()
	case "error":
		return level.AllowError()
	case "none":
		return level.AllowNone()
	default:
		return level.AllowInfo()
	}
}

// NewServer wires the service, its endpoints and the HTTP transport, and
// mounts the Prometheus handler next to them.
func NewServer(cfg config, logger log.Logger, tracer stdopentracing.Tracer, zipkinTracer *zipkin.Tracer) http.Handler {
	duration := kitprometheus.NewSummaryFrom(stdprometheus.SummaryOpts{
		Namespace: cfg.nameSpace,
		Subsystem: cfg.serviceName,
		Name:      "request_duration_seconds",
		Help:      "Request duration in seconds.",
	}, []string{"method", "success"})

	service := service.New(logger)
	endpoints := endpoints.New(service, logger, duration, tracer, zipkinTracer, endpoints.Options{
		RateLimit:      cfg.rateLimit,
		CircuitBreaker: cfg.breaker,
	})
	httpHandler := transports.NewHTTPHandler(endpoints, tracer, zipkinTracer, logger)

	r := mux.NewRouter()
	r.Handle("/metrics", promhttp.Handler())
	r.PathPrefix("/").Handler(httpHandler)
	return r
}

// startHTTPServer serves on ln in the background. The instance is announced to
// the registrar only once the listener is accepting, so health checks never
// reach a closed port.
func startHTTPServer(cfg config, ln net.Listener, httpHandler http.Handler, registrar sd.Registrar, logger log.Logger, errs chan error) {
	level.Info(logger).Log("serviceName", cfg.serviceName, "protocol", "HTTP", "exposed", ln.Addr().String())
	go func() {
		errs <- http.Serve(ln, httpHandler)
	}()
	if registrar != nil {
		registrar.Register()
	}
}
