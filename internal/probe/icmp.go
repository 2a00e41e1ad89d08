package probe

import (
	"context"
	"fmt"
	"time"

	probing "github.com/prometheus-community/pro-bing"
)

// Echo requests are spaced this far apart within a burst
const icmpInterval = 50 * time.Millisecond

// ICMPProbe pings a host with a burst of echo requests
type ICMPProbe struct {
	base
	privileged bool
}

// NewICMPProbe creates a new ICMP probe for the given target
func NewICMPProbe(name, host string, timeout time.Duration, pings int) *ICMPProbe {
	return &ICMPProbe{
		base:       newBase(name, host, timeout, pings),
		privileged: true,
	}
}

// Type returns "icmp"
func (p *ICMPProbe) Type() string {
	return TypeICMP
}

// Execute sends the burst and summarizes the replies.
// Raw sockets are tried first; on failure the probe falls back to
// unprivileged UDP pings and keeps that mode for later runs.
func (p *ICMPProbe) Execute(ctx context.Context) Result {
	pinger, err := probing.NewPinger(p.host)
	if err != nil {
		return p.result(TypeICMP, nil, 0, fmt.Errorf("failed to create pinger: %w", err))
	}

	pinger.Count = p.pings
	pinger.Interval = icmpInterval
	pinger.Timeout = p.timeout
	pinger.SetPrivileged(p.privileged)

	var rtts []time.Duration
	pinger.OnRecv = func(pkt *probing.Packet) {
		rtts = append(rtts, pkt.Rtt)
	}

	err = pinger.RunWithContext(ctx)
	if err != nil && p.privileged {
		p.privileged = false
		pinger.SetPrivileged(false)
		rtts = nil
		err = pinger.RunWithContext(ctx)
	}
	if err != nil {
		return p.result(TypeICMP, nil, 0, fmt.Errorf("ping failed: %w", err))
	}

	return p.result(TypeICMP, rtts, pinger.Statistics().PacketsSent, nil)
}
