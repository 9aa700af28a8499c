package server

import (
	"net"
	"net/http"
	"time"

	"photo-gallery/internal/config"
)

const (
	defaultReadTimeout  = 15 * time.Second
	defaultWriteTimeout = 15 * time.Second
	defaultIdleTimeout  = 60 * time.Second
)

// New builds the HTTP server for the configured host and port. A nil
// ServerConfig falls back to the default timeouts.
func New(cfg *config.Config, handler http.Handler) *http.Server {
	timeouts := config.ServerConfig{
		ReadTimeout:  defaultReadTimeout,
		WriteTimeout: defaultWriteTimeout,
		IdleTimeout:  defaultIdleTimeout,
	}
	if cfg.Server != nil {
		timeouts = *cfg.Server
	}

	return &http.Server{
		Addr:              Addr(cfg),
		Handler:           handler,
		ReadHeaderTimeout: timeouts.ReadTimeout,
		ReadTimeout:       timeouts.ReadTimeout,
		WriteTimeout:      timeouts.WriteTimeout,
		IdleTimeout:       timeouts.IdleTimeout,
	}
}

// Addr is the listen address. In production the server binds all interfaces.
func Addr(cfg *config.Config) string {
	host := cfg.Host
	if cfg.Environment == "production" {
		host = ""
	}
	return net.JoinHostPort(host, cfg.Port)
}
