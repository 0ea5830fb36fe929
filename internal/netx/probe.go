// Package netx provides network reachability helpers. The connectivity
// monitor treats a successful TCP dial to the remote backend as the
// platform's "online" signal.
package netx

import (
	"context"
	"net"
	"time"
)

// TCPProber reports reachability of a single host:port address.
type TCPProber struct {
	Addr    string
	Timeout time.Duration
}

// Probe dials the address once and returns nil if the connection succeeds.
// The connection is closed immediately; no data is exchanged.
func (p *TCPProber) Probe(ctx context.Context) error {
	timeout := p.Timeout
	if timeout <= 0 {
		timeout = 3 * time.Second
	}

	d := net.Dialer{Timeout: timeout}
	conn, err := d.DialContext(ctx, "tcp", p.Addr)
	if err != nil {
		return err
	}
	return conn.Close()
}
