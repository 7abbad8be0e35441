package gemini

import (
	"context"
	"net"
	"syscall"
)

func (a *App) defaultListener() ListenerConstructor {
	reuse := a.cfg.NET.ReuseAddress

	return func(network, addr string) (net.Listener, error) {
		lc := net.ListenConfig{}
		if reuse {
			lc.Control = reuseAddr
		}

		return lc.Listen(context.Background(), network, addr)
	}
}

func reuseAddr(network, address string, conn syscall.RawConn) error {
	var soErr error
	err := conn.Control(func(fd uintptr) {
		soErr = syscall.SetsockoptInt(
			int(fd), syscall.SOL_SOCKET, syscall.SO_REUSEADDR, 1,
		)
	})
	if err != nil {
		return err
	}

	return soErr
}
