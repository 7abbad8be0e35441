package gem

import (
	"crypto/tls"
	"crypto/x509"
	"net"

	"github.com/indigo-web/gemini/gem/uri"
)

// Request is a single parsed request line. It is created once per accepted
// connection and stays immutable for the whole transaction. The URI spans
// alias the connection's read buffer, so neither the Request nor its URI
// may be retained past the handler's return.
type Request struct {
	URI uri.URI
	// RemoteAddr is the peer's address as reported by the listener.
	RemoteAddr net.Addr
	// TLS carries the connection's TLS state if the listener was a TLS
	// listener, nil otherwise. Peer certificates found here are the
	// protocol's client identity mechanism (60-62 status family).
	TLS *tls.ConnectionState
}

func NewRequest(u uri.URI, remote net.Addr, tlsState *tls.ConnectionState) *Request {
	return &Request{
		URI:        u,
		RemoteAddr: remote,
		TLS:        tlsState,
	}
}

// Certificates returns the peer's certificate chain, if any.
func (r *Request) Certificates() []*x509.Certificate {
	if r.TLS == nil {
		return nil
	}

	return r.TLS.PeerCertificates
}
