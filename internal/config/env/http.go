package env

import (
	"net"
	"os"

	"slots_backend/internal/config"
)

const (
	hostEnvName = "HTTP_HOST"
	portEnvName = "HTTP_PORT"

	defaultHost = "0.0.0.0"
	defaultPort = "8080"
)

type httpConfig struct {
	host string
	port string
}

func NewHTTPConfig() (config.HTTPConfig, error) {
	host := os.Getenv(hostEnvName)
	if len(host) == 0 {
		host = defaultHost
	}

	port := os.Getenv(portEnvName)
	if len(port) == 0 {
		port = defaultPort
	}

	return &httpConfig{
		host: host,
		port: port,
	}, nil
}

func (cfg *httpConfig) Address() string {
	return net.JoinHostPort(cfg.host, cfg.port)
}
