package probe

import (
	"context"
	"fmt"
	"net"
	"strconv"
	"time"
)

const (
	minDialTimeout = time.Second
	dialSpacing    = 10 * time.Millisecond
)

// TCPProbe measures connect time to a host port, e.g. an RTSP or RTMP server
type TCPProbe struct {
	base
	port int
}

// NewTCPProbe creates a new TCP probe for the given target
func NewTCPProbe(name, host string, port int, timeout time.Duration, pings int) *TCPProbe {
	return &TCPProbe{
		base: newBase(name, host, timeout, pings),
		port: port,
	}
}

// Type returns "tcp"
func (p *TCPProbe) Type() string {
	return TypeTCP
}

// Address returns host:port
func (p *TCPProbe) Address() string {
	return net.JoinHostPort(p.host, strconv.Itoa(p.port))
}

// Execute dials the target once per ping and summarizes connect times.
// It stops early when ctx is done.
func (p *TCPProbe) Execute(ctx context.Context) Result {
	dialer := &net.Dialer{Timeout: p.timeout / time.Duration(p.pings)}
	if dialer.Timeout < minDialTimeout {
		dialer.Timeout = minDialTimeout
	}

	var rtts []time.Duration
	var lastErr error
	sent := 0

	for i := 0; i < p.pings && ctx.Err() == nil; i++ {
		if i > 0 {
			time.Sleep(dialSpacing)
		}

		sent++
		start := time.Now()
		conn, err := dialer.DialContext(ctx, "tcp", p.Address())
		elapsed := time.Since(start)
		if err != nil {
			lastErr = err
			continue
		}
		conn.Close()
		rtts = append(rtts, elapsed)
	}

	if len(rtts) == 0 && lastErr != nil {
		lastErr = fmt.Errorf("connect to %s failed: %w", p.Address(), lastErr)
	}
	return p.result(TypeTCP, rtts, sent, lastErr)
}
