package config

import "time"

type (
	NET struct {
		// ReadBufferSize is the size of the per-connection buffer the
		// request line is read into. The protocol bounds the request line
		// by 1026 bytes, so values below that are rejected at startup.
		ReadBufferSize int
		// WriteBufferSize stores the response header and body before they
		// are pushed to the socket, coalescing both into as few writes as
		// possible.
		WriteBufferSize int
		// ReadTimeout bounds how long a connection may take to deliver its
		// request line. Zero disables the deadline, which matches the
		// original one-shot model but lets a stalled peer occupy a
		// connection slot indefinitely.
		ReadTimeout time.Duration
		// MaxConnections caps the number of concurrently served
		// connections. Connections beyond the cap pile up in the kernel's
		// accept backlog instead of being dispatched.
		MaxConnections int
		// ReuseAddress sets SO_REUSEADDR on the listening socket, letting
		// the server rebind an address still occupied by sockets in
		// TIME_WAIT.
		ReuseAddress bool
	}

	Body struct {
		// BufferPrealloc is the initial capacity of the response body
		// accumulator.
		BufferPrealloc int
		// MaxSize limits how much body a single response may accumulate.
		// Writes past the limit fail with gem.ErrBodyOverflow.
		MaxSize int
	}
)

// Config holds settings used across the library, mainly restrictions,
// limitations and pre-allocations.
//
// Always modify defaults (returned via Default()) instead of constructing
// the struct manually, otherwise zero-valued limits will reject everything.
type Config struct {
	NET  NET
	Body Body
}

// Default returns the default config.
func Default() *Config {
	return &Config{
		NET: NET{
			// the request line is at most 1026 bytes; the extra room keeps
			// reads of surplus bytes from pessimistically small chunks
			ReadBufferSize:  2 * 1024,
			WriteBufferSize: 4 * 1024,
			ReadTimeout:     0,
			MaxConnections:  256,
			ReuseAddress:    true,
		},
		Body: Body{
			BufferPrealloc: 1024,
			MaxSize:        16 * 1024 * 1024,
		},
	}
}
