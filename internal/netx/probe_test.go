package netx

import (
	"context"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestTCPProber_Reachable(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer ln.Close()

	go func() {
		conn, err := ln.Accept()
		if err == nil {
			_ = conn.Close()
		}
	}()

	p := &TCPProber{Addr: ln.Addr().String(), Timeout: time.Second}
	require.NoError(t, p.Probe(context.Background()))
}

func TestTCPProber_Unreachable(t *testing.T) {
	// Grab a free port and close the listener so nothing accepts on it.
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := ln.Addr().String()
	require.NoError(t, ln.Close())

	p := &TCPProber{Addr: addr, Timeout: 200 * time.Millisecond}
	require.Error(t, p.Probe(context.Background()))
}

func TestTCPProber_ContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	p := &TCPProber{Addr: "192.0.2.1:5432", Timeout: time.Second}
	require.Error(t, p.Probe(ctx))
}
