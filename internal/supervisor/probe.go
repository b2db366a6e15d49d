package supervisor

import (
	"context"
	"net"
	"time"
)

const defaultDialTimeout = 500 * time.Millisecond

// TCPProber treats a successful TCP connect as "service alive".
type TCPProber struct {
	Addr        string
	DialTimeout time.Duration
}

func (p *TCPProber) Probe(ctx context.Context) bool {
	timeout := p.DialTimeout
	if timeout <= 0 {
		timeout = defaultDialTimeout
	}
	dialer := net.Dialer{Timeout: timeout}
	conn, err := dialer.DialContext(ctx, "tcp", p.Addr)
	if err != nil {
		return false
	}
	_ = conn.Close()
	return true
}
