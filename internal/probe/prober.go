// Package probe checks whether a host answers an ICMP echo.
package probe

import (
	"context"
	"fmt"
	"net"
	"time"

	"github.com/isdelr/linkstart-be/internal/common"
	"github.com/isdelr/linkstart-be/internal/models"
	probing "github.com/prometheus-community/pro-bing"
)

// DefaultTimeout bounds a single echo.
const DefaultTimeout = 2 * time.Second

const resolveTimeout = 5 * time.Second

// Messages embedded in a failed ProbeResult.
const (
	NoResponseMessage = "No response"
	ResolutionMessage = "Invalid domain name or unable to resolve"
)

// Resolver looks up host addresses. *net.Resolver satisfies it.
type Resolver interface {
	LookupIP(ctx context.Context, network, host string) ([]net.IP, error)
}

// Pinger sends one echo to ip. ok is false when no reply arrived within timeout.
type Pinger func(ip string, timeout time.Duration) (rtt time.Duration, ok bool, err error)

// Prober resolves an address and sends it a single echo.
type Prober struct {
	resolver Resolver
	ping     Pinger
	timeout  time.Duration
}

// New creates a Prober using the system resolver and ICMP echo. privileged
// selects raw sockets over unprivileged UDP ICMP sockets.
func New(timeout time.Duration, privileged bool) *Prober {
	return NewWithDeps(net.DefaultResolver, ICMPPinger(privileged), timeout)
}

// NewWithDeps creates a Prober with explicit collaborators.
func NewWithDeps(resolver Resolver, ping Pinger, timeout time.Duration) *Prober {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Prober{resolver: resolver, ping: ping, timeout: timeout}
}

// Probe resolves address (a literal IP is used as is) and sends one echo.
// The returned result always describes the outcome, including failures; err
// is non-nil for resolution and transport failures, wrapping
// common.ErrResolution for the former. A probe is not cancelled with ctx:
// once started it runs until a reply or the timeout.
func (p *Prober) Probe(ctx context.Context, address string) (models.ProbeResult, error) {
	ip, err := p.resolve(context.WithoutCancel(ctx), address)
	if err != nil {
		return models.ProbeResult{Reachable: false, Error: ResolutionMessage}, err
	}

	rtt, ok, err := p.ping(ip, p.timeout)
	if err != nil {
		return models.ProbeResult{Reachable: false, ResolvedIP: ip, Error: err.Error()}, fmt.Errorf("ping %s: %w", ip, err)
	}
	if !ok {
		return models.ProbeResult{Reachable: false, ResolvedIP: ip, Error: NoResponseMessage}, nil
	}

	seconds := rtt.Seconds()
	return models.ProbeResult{Reachable: true, ResponseTime: &seconds, ResolvedIP: ip}, nil
}

// resolve prefers an IPv4 address, falling back to the first address returned.
func (p *Prober) resolve(ctx context.Context, address string) (string, error) {
	if ip := net.ParseIP(address); ip != nil {
		return ip.String(), nil
	}

	ctx, cancel := context.WithTimeout(ctx, resolveTimeout)
	defer cancel()

	ips, err := p.resolver.LookupIP(ctx, "ip", address)
	if err != nil {
		return "", fmt.Errorf("%w: %s: %v", common.ErrResolution, address, err)
	}
	if len(ips) == 0 {
		return "", fmt.Errorf("%w: %s: no addresses", common.ErrResolution, address)
	}
	for _, ip := range ips {
		if v4 := ip.To4(); v4 != nil {
			return v4.String(), nil
		}
	}
	return ips[0].String(), nil
}

// ICMPPinger returns a Pinger backed by pro-bing.
func ICMPPinger(privileged bool) Pinger {
	return func(ip string, timeout time.Duration) (time.Duration, bool, error) {
		pinger, err := probing.NewPinger(ip)
		if err != nil {
			return 0, false, err
		}
		pinger.Count = 1
		pinger.Timeout = timeout
		pinger.SetPrivileged(privileged)

		if err := pinger.Run(); err != nil {
			return 0, false, err
		}
		stats := pinger.Statistics()
		if stats.PacketsRecv == 0 {
			return 0, false, nil
		}
		return stats.AvgRtt, true, nil
	}
}
