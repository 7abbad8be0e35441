package tcp

import (
	"net"
	"testing"
	"time"

	"github.com/indigo-web/gemini/gem/status"
	"github.com/stretchr/testify/require"
)

func TestServer(t *testing.T) {
	listener, err := net.Listen("tcp", "localhost:16961")
	require.NoError(t, err)

	accepted := make(chan struct{}, 16)
	server := NewServer(listener, 4, func(conn net.Conn) {
		accepted <- struct{}{}
		_ = conn.Close()
	})

	startErr := make(chan error)
	go func() {
		startErr <- server.Start()
	}()

	for i := 0; i < 3; i++ {
		conn, err := net.Dial("tcp", "localhost:16961")
		require.NoError(t, err)

		select {
		case <-accepted:
		case <-time.After(5 * time.Second):
			t.Fatal("connection was never dispatched")
		}

		_ = conn.Close()
	}

	require.NoError(t, server.Stop())

	select {
	case err = <-startErr:
		require.ErrorIs(t, err, status.ErrShutdown)
	case <-time.After(5 * time.Second):
		t.Fatal("Start did not return after Stop")
	}
}
