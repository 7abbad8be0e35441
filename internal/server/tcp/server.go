package tcp

import (
	"net"
	"sync"
	"sync/atomic"

	"github.com/indigo-web/gemini/gem/status"
)

type onConnection func(net.Conn)

// Server runs the accept loop of a single listening socket. Each accepted
// connection is served by its own goroutine; the number of concurrently
// live connections is capped by a counting semaphore sized at start.
// A slot is claimed before Accept is even called, so connections beyond
// the cap queue up in the kernel's backlog instead of being dispatched.
type Server struct {
	sock     net.Listener
	onConn   onConnection
	sem      chan struct{}
	mu       sync.Mutex
	conns    map[net.Conn]struct{}
	shutdown atomic.Bool
}

func NewServer(sock net.Listener, maxConns int, onConn onConnection) *Server {
	if maxConns < 1 {
		maxConns = 1
	}

	return &Server{
		sock:   sock,
		onConn: onConn,
		sem:    make(chan struct{}, maxConns),
		conns:  map[net.Conn]struct{}{},
	}
}

// Start blocks serving the socket until the listener fails or the server
// is stopped. On shutdown it returns status.ErrShutdown, but only after
// every connection goroutine spawned so far has finished.
func (s *Server) Start() error {
	wg := new(sync.WaitGroup)

	for {
		s.sem <- struct{}{}

		conn, err := s.sock.Accept()
		if err != nil {
			wg.Wait()

			if s.shutdown.Load() {
				return status.ErrShutdown
			}

			return err
		}

		s.track(conn)
		wg.Add(1)
		go s.connHandler(wg, conn)
	}
}

func (s *Server) stopListener() error {
	s.shutdown.Store(true)

	return s.sock.Close()
}

// Stop shuts the listener and ALL the connections down.
func (s *Server) Stop() error {
	if err := s.stopListener(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for conn := range s.conns {
		_ = conn.Close()
	}

	return nil
}

// GracefulShutdown stops the listener, leaving all the connections free
// to end their lives peacefully.
func (s *Server) GracefulShutdown() error {
	return s.stopListener()
}

func (s *Server) connHandler(wg *sync.WaitGroup, conn net.Conn) {
	defer func() {
		s.untrack(conn)
		<-s.sem
		wg.Done()
	}()

	s.onConn(conn)
}

func (s *Server) track(conn net.Conn) {
	s.mu.Lock()
	s.conns[conn] = struct{}{}
	s.mu.Unlock()
}

func (s *Server) untrack(conn net.Conn) {
	s.mu.Lock()
	delete(s.conns, conn)
	s.mu.Unlock()
}

// PauseAll stops listening on all the passed servers, keeping already
// accepted connections served to completion.
func PauseAll(servers []*Server) {
	for _, server := range servers {
		_ = server.GracefulShutdown()
	}
}

// StopAll forcefully stops all the passed servers.
func StopAll(servers []*Server) {
	for _, server := range servers {
		_ = server.Stop()
	}
}
