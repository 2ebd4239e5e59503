package net

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/hashicorp/mdns"
)

// ServiceType is the mDNS service drawing servers advertise.
const ServiceType = "_shapeboard._tcp"

// ErrNoServer is returned by Discover when nothing answered in time.
var ErrNoServer = errors.New("no drawing server found")

// Advertise announces a drawing server listening on port. Shut the
// returned server down to withdraw the announcement.
func Advertise(port int, info ...string) (*mdns.Server, error) {
	host, err := os.Hostname()
	if err != nil {
		return nil, fmt.Errorf("could not get hostname: %w", err)
	}
	if len(info) == 0 {
		info = []string{"ShapeBoard"}
	}

	service, err := mdns.NewMDNSService(host, ServiceType, "", "", port, nil, info)
	if err != nil {
		return nil, fmt.Errorf("failed to create mDNS service: %w", err)
	}
	server, err := mdns.NewServer(&mdns.Config{Zone: service})
	if err != nil {
		return nil, fmt.Errorf("failed to start mDNS server: %w", err)
	}
	Logger().Info("advertising drawing server", slog.String("host", host), slog.Int("port", port))
	return server, nil
}

// Browse calls found with host:port for every server that answers within
// timeout.
func Browse(timeout time.Duration, found func(addr string)) error {
	entries := make(chan *mdns.ServiceEntry, 8)
	done := make(chan struct{})
	go func() {
		defer close(done)
		for e := range entries {
			if addr, ok := entryAddr(e); ok {
				found(addr)
			}
		}
	}()

	params := mdns.DefaultParams(ServiceType)
	params.Entries = entries
	params.Timeout = timeout
	err := mdns.Query(params)
	close(entries)
	<-done
	return err
}

// Discover returns the first server found within timeout.
func Discover(timeout time.Duration) (string, error) {
	var first string
	err := Browse(timeout, func(addr string) {
		if first == "" {
			first = addr
		}
	})
	if err != nil {
		return "", fmt.Errorf("mDNS query: %w", err)
	}
	if first == "" {
		return "", ErrNoServer
	}
	Logger().Info("discovered drawing server", slog.String("addr", first))
	return first, nil
}

func entryAddr(e *mdns.ServiceEntry) (string, bool) {
	if e == nil || e.AddrV4 == nil || e.Port == 0 {
		return "", false
	}
	return fmt.Sprintf("%s:%d", e.AddrV4.String(), e.Port), true
}
