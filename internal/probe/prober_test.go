package probe

import (
	"context"
	"errors"
	"net"
	"testing"
	"time"

	"github.com/isdelr/linkstart-be/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeResolver struct {
	ips   map[string][]net.IP
	calls int
}

func (f *fakeResolver) LookupIP(ctx context.Context, network, host string) ([]net.IP, error) {
	f.calls++
	ips, ok := f.ips[host]
	if !ok {
		return nil, &net.DNSError{Err: "no such host", Name: host, IsNotFound: true}
	}
	return ips, nil
}

type pingCall struct {
	ip      string
	timeout time.Duration
}

func fakePinger(replies map[string]time.Duration, calls *[]pingCall) Pinger {
	return func(ip string, timeout time.Duration) (time.Duration, bool, error) {
		*calls = append(*calls, pingCall{ip: ip, timeout: timeout})
		rtt, ok := replies[ip]
		return rtt, ok, nil
	}
}

func TestProbe_LiteralLoopback(t *testing.T) {
	var calls []pingCall
	resolver := &fakeResolver{}
	p := NewWithDeps(resolver, fakePinger(map[string]time.Duration{"127.0.0.1": 300 * time.Microsecond}, &calls), DefaultTimeout)

	res, err := p.Probe(context.Background(), "127.0.0.1")
	require.NoError(t, err)

	assert.True(t, res.Reachable)
	require.NotNil(t, res.ResponseTime)
	assert.InDelta(t, 0.0003, *res.ResponseTime, 1e-9)
	assert.Equal(t, "127.0.0.1", res.ResolvedIP)
	assert.Empty(t, res.Error)

	assert.Zero(t, resolver.calls, "literal IPs must not hit DNS")
	require.Len(t, calls, 1)
	assert.Equal(t, 2*time.Second, calls[0].timeout)
}

func TestProbe_ResolvesHostname(t *testing.T) {
	var calls []pingCall
	resolver := &fakeResolver{ips: map[string][]net.IP{
		"example.test": {net.ParseIP("2001:db8::1"), net.ParseIP("192.0.2.7")},
	}}
	p := NewWithDeps(resolver, fakePinger(map[string]time.Duration{"192.0.2.7": 10 * time.Millisecond}, &calls), 0)

	res, err := p.Probe(context.Background(), "example.test")
	require.NoError(t, err)
	assert.True(t, res.Reachable)
	assert.Equal(t, "192.0.2.7", res.ResolvedIP)
	require.Len(t, calls, 1)
	assert.Equal(t, DefaultTimeout, calls[0].timeout)
}

func TestProbe_IPv6Only(t *testing.T) {
	var calls []pingCall
	resolver := &fakeResolver{ips: map[string][]net.IP{"v6.test": {net.ParseIP("2001:db8::2")}}}
	p := NewWithDeps(resolver, fakePinger(nil, &calls), DefaultTimeout)

	res, err := p.Probe(context.Background(), "v6.test")
	require.NoError(t, err)
	assert.Equal(t, "2001:db8::2", res.ResolvedIP)
}

func TestProbe_ResolutionFailure(t *testing.T) {
	var calls []pingCall
	p := NewWithDeps(&fakeResolver{}, fakePinger(nil, &calls), DefaultTimeout)

	res, err := p.Probe(context.Background(), "no-such-host.invalid")
	assert.ErrorIs(t, err, common.ErrResolution)
	assert.False(t, res.Reachable)
	assert.Equal(t, ResolutionMessage, res.Error)
	assert.Empty(t, res.ResolvedIP)
	assert.Empty(t, calls)
}

func TestProbe_NoResponse(t *testing.T) {
	var calls []pingCall
	p := NewWithDeps(&fakeResolver{}, fakePinger(nil, &calls), DefaultTimeout)

	res, err := p.Probe(context.Background(), "192.0.2.1")
	require.NoError(t, err)
	assert.False(t, res.Reachable)
	assert.Nil(t, res.ResponseTime)
	assert.Equal(t, NoResponseMessage, res.Error)
	assert.Equal(t, "192.0.2.1", res.ResolvedIP)
}

func TestProbe_PingError(t *testing.T) {
	boom := errors.New("socket: operation not permitted")
	p := NewWithDeps(&fakeResolver{}, func(string, time.Duration) (time.Duration, bool, error) {
		return 0, false, boom
	}, DefaultTimeout)

	res, err := p.Probe(context.Background(), "10.0.0.1")
	assert.ErrorIs(t, err, boom)
	assert.False(t, errors.Is(err, common.ErrResolution))
	assert.False(t, res.Reachable)
	assert.Equal(t, boom.Error(), res.Error)
}

func TestProbe_IgnoresCancelledContext(t *testing.T) {
	var calls []pingCall
	resolver := &fakeResolver{ips: map[string][]net.IP{"host.test": {net.ParseIP("192.0.2.9")}}}
	p := NewWithDeps(resolver, fakePinger(map[string]time.Duration{"192.0.2.9": time.Millisecond}, &calls), DefaultTimeout)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	res, err := p.Probe(ctx, "host.test")
	require.NoError(t, err)
	assert.True(t, res.Reachable)
}
