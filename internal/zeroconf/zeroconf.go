// Package zeroconf advertises the deskprofile HTTP API over mDNS/DNS-SD so
// companion apps on the LAN can find it.
package zeroconf

import (
	"context"
	"fmt"
	"log/slog"
	"runtime"

	"github.com/grandcat/zeroconf"
)

// ServiceType is the DNS-SD service type registered by Start.
const ServiceType = "_deskprofile._tcp"

// Service manages mDNS service registration.
type Service struct {
	name    string // instance name, usually the hostname
	port    int
	version string
}

// New creates a Service advertising port under instance name.
func New(name string, port int, version string) *Service {
	return &Service{
		name:    name,
		port:    port,
		version: version,
	}
}

// TXT returns the TXT records published with the service.
func (s *Service) TXT() []string {
	return []string{
		"version=" + s.version,
		"os=" + runtime.GOOS,
		"path=/api",
	}
}

// Start registers the mDNS service and blocks until ctx is cancelled, at which
// point it shuts down the server cleanly.
func (s *Service) Start(ctx context.Context) error {
	txt := s.TXT()

	server, err := zeroconf.Register(
		s.name,      // instance name
		ServiceType, // service type
		"local.",    // domain
		s.port,      // port
		txt,         // TXT records
		nil,         // ifaces, nil means all interfaces
	)
	if err != nil {
		return fmt.Errorf("zeroconf register: %w", err)
	}
	slog.Info("zeroconf: registered mDNS service",
		"name", s.name,
		"type", ServiceType,
		"port", s.port,
	)

	<-ctx.Done()

	server.Shutdown()
	slog.Info("zeroconf: mDNS service unregistered")
	return nil
}
