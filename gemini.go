package gemini

import (
	"errors"
	"fmt"
	"net"

	"github.com/indigo-web/gemini/config"
	"github.com/indigo-web/gemini/gem"
	"github.com/indigo-web/gemini/gem/status"
	"github.com/indigo-web/gemini/internal/address"
	gemserver "github.com/indigo-web/gemini/internal/server/gem"
	"github.com/indigo-web/gemini/internal/server/tcp"
)

type ListenerConstructor func(network, addr string) (net.Listener, error)

// App ties together the listening sockets, the configuration and the
// user handler, and owns the accept/drain lifecycle.
type App struct {
	addr      address.Address
	hooks     hooks
	listeners []Listener
	cfg       *config.Config
	errCh     chan error
}

// New returns a new App instance bound to the given address. The address
// may omit the port (":1965" is assumed) or the host (all interfaces).
func New(addr string) *App {
	appAddr, err := address.Parse(addr)
	if err != nil {
		panic(fmt.Errorf("gemini: listen: bad addr: %v", err))
	}

	return &App{
		addr:  appAddr,
		cfg:   config.Default(),
		errCh: make(chan error),
	}
}

// Tune replaces the default config.
func (a *App) Tune(cfg *config.Config) *App {
	a.cfg = cfg
	return a
}

// NotifyOnStart calls the callback at the moment when all the servers are
// started. It isn't strongly guaranteed that they'll be able to accept new
// connections immediately.
func (a *App) NotifyOnStart(cb func()) *App {
	a.hooks.OnStart = cb
	return a
}

// NotifyOnStop calls the callback at the moment when all the servers are
// down. At that point the app accepts no new connections and every client
// has already been disconnected.
func (a *App) NotifyOnStop(cb func()) *App {
	a.hooks.OnStop = cb
	return a
}

// Listen adds a new listener on the port. Without an explicit constructor
// a plain TCP listener is used; transport security is the listener's
// business, so a TLS-enabled deployment passes a tls.Listen-based
// constructor (see App.TLS and App.AutoTLS).
func (a *App) Listen(port uint16, optionalConstructor ...ListenerConstructor) *App {
	constructor := optional(optionalConstructor, nil)
	if constructor == nil {
		constructor = a.defaultListener()
	}

	a.listeners = append(a.listeners, Listener{
		Port:        port,
		Constructor: constructor,
	})

	return a
}

// TLS adds a TLS listener on the port using the certificate and key files.
func (a *App) TLS(port uint16, cert, key string) *App {
	return a.Listen(port, tlsListener(cert, key))
}

// AutoTLS adds a TLS listener using autocert, or generates a self-signed
// certificate when bound to localhost. Self-signed certificates are
// ordinary citizens in this protocol: clients pin them on first use.
func (a *App) AutoTLS(port uint16, domains ...string) *App {
	if a.addr.IsLocalhost() {
		cert, key, err := generateSelfSignedCert()
		if err != nil {
			panic(fmt.Errorf("gemini: AutoTLS: can't generate a self-signed certificate: %v", err))
		}

		return a.TLS(port, cert, key)
	}

	return a.Listen(port, autoTLSListener(domains...))
}

// Serve starts the application and blocks until it is stopped or fails.
// A nil handler responds to everything with Not Found.
func (a *App) Serve(handler gem.Handler) error {
	if handler == nil {
		handler = func(resp *gem.Response, req *gem.Request) error {
			return status.ErrNotFound
		}
	}

	if a.cfg.NET.ReadBufferSize < gem.MaxRequestLineLength {
		return fmt.Errorf(
			"gemini: NET.ReadBufferSize must fit a whole request line (%d bytes minimum)",
			gem.MaxRequestLineLength,
		)
	}

	if len(a.listeners) == 0 {
		a.Listen(a.addr.Port)
	}

	servers, err := a.getServers(handler)
	if err != nil {
		return err
	}

	return a.run(servers)
}

func (a *App) getServers(handler gem.Handler) ([]*tcp.Server, error) {
	transactions := gemserver.NewServer(a.cfg, handler)
	servers := make([]*tcp.Server, len(a.listeners))

	for i, listener := range a.listeners {
		sock, err := listener.Constructor("tcp", a.addr.SetPort(listener.Port).String())
		if err != nil {
			return nil, err
		}

		servers[i] = tcp.NewServer(sock, a.cfg.NET.MaxConnections, transactions.Serve)
	}

	return servers, nil
}

func (a *App) run(servers []*tcp.Server) error {
	done := make(chan error, len(servers))

	for _, server := range servers {
		server := server
		go func() {
			done <- server.Start()
		}()
	}

	callIfNotNil(a.hooks.OnStart)

	var (
		err      error
		finished int
	)

	select {
	case err = <-a.errCh:
		if errors.Is(err, status.ErrGracefulShutdown) {
			// stop listening to new clients, process the old ones till the end
			tcp.PauseAll(servers)
		} else {
			tcp.StopAll(servers)
		}
	case err = <-done:
		finished++
		tcp.StopAll(servers)
	}

	// every Start call returns only after its last connection is drained,
	// so having collected them all we know nobody is being served anymore
	for ; finished < len(servers); finished++ {
		<-done
	}

	callIfNotNil(a.hooks.OnStop)

	return err
}

// GracefulStop stops accepting new connections, but keeps serving the
// old ones.
//
// NOTE: the call isn't blocking, so the server may still be working for
// a while after the method returned.
func (a *App) GracefulStop() {
	a.errCh <- status.ErrGracefulShutdown
}

// Stop stops the whole application immediately.
//
// NOTE: the call isn't blocking, so the server may still be working for
// a while after the method returned.
func (a *App) Stop() {
	a.errCh <- status.ErrShutdown
}

// ListenAndServe is a convenience entry point starting a server with the
// default options on the address.
func ListenAndServe(addr string, handler gem.Handler) error {
	return New(addr).Serve(handler)
}

type hooks struct {
	OnStart, OnStop func()
}

func callIfNotNil(f func()) {
	if f != nil {
		f()
	}
}

type Listener struct {
	Port        uint16
	Constructor ListenerConstructor
}

func optional[T any](optionals []T, otherwise T) T {
	if len(optionals) == 0 {
		return otherwise
	}

	return optionals[0]
}
