// Package registry announces a calcsvc instance to Consul so that routers can
// discover it.
package registry

import (
	"fmt"
	"net"
	"strconv"

	"github.com/go-kit/kit/log"
	consulsd "github.com/go-kit/kit/sd/consul"
	"github.com/hashicorp/consul/api"
)

// Config describes the instance being registered.
type Config struct {
	ConsulAddr  string
	NameSpace   string
	ServiceName string
	ServiceHost string
	HTTPPort    string
	// CheckPath is polled by Consul over HTTP, e.g. "/health".
	CheckPath     string
	CheckInterval string
	CheckTimeout  string
}

// NewRegistrar returns a registrar for the instance described by cfg. Nothing
// is sent to Consul until Register is called.
func NewRegistrar(cfg Config, logger log.Logger) (*consulsd.Registrar, error) {
	registration, err := Registration(cfg)
	if err != nil {
		return nil, err
	}

	consulCfg := api.DefaultConfig()
	consulCfg.Address = cfg.ConsulAddr
	consulClient, err := api.NewClient(consulCfg)
	if err != nil {
		return nil, err
	}

	return consulsd.NewRegistrar(consulsd.NewClient(consulClient), registration, logger), nil
}

// Registration builds the Consul agent registration for cfg.
func Registration(cfg Config) (*api.AgentServiceRegistration, error) {
	port, err := strconv.Atoi(cfg.HTTPPort)
	if err != nil {
		return nil, fmt.Errorf("invalid http port %q: %v", cfg.HTTPPort, err)
	}

	interval, timeout := cfg.CheckInterval, cfg.CheckTimeout
	if interval == "" {
		interval = "10s"
	}
	if timeout == "" {
		timeout = "1s"
	}

	hostPort := net.JoinHostPort(cfg.ServiceHost, cfg.HTTPPort)
	return &api.AgentServiceRegistration{
		ID:      fmt.Sprintf("%s-%s", cfg.ServiceName, hostPort),
		Name:    cfg.ServiceName,
		Address: cfg.ServiceHost,
		Port:    port,
		Tags:    []string{cfg.NameSpace, "http"},
		Check: &api.AgentServiceCheck{
			HTTP:     fmt.Sprintf("http://%s%s", hostPort, cfg.CheckPath),
			Interval: interval,
			Timeout:  timeout,
		},
	}, nil
}
