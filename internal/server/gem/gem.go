package gem

import (
	"bufio"
	"crypto/tls"
	"errors"
	"io"
	"log"
	"net"
	"syscall"

	"github.com/indigo-web/gemini/config"
	"github.com/indigo-web/gemini/gem"
	"github.com/indigo-web/gemini/gem/mime"
	"github.com/indigo-web/gemini/gem/status"
	"github.com/indigo-web/gemini/gem/uri"
	"github.com/indigo-web/gemini/internal/server/tcp"
	"github.com/indigo-web/gemini/internal/transport"
)

// Server drives single request/response transactions. It guarantees that
// every connection whose request line was successfully parsed receives
// exactly one response, no matter what the handler did or failed to do.
type Server struct {
	cfg     *config.Config
	handler gem.Handler
}

func NewServer(cfg *config.Config, handler gem.Handler) *Server {
	return &Server{
		cfg:     cfg,
		handler: handler,
	}
}

// Serve runs the full transaction over the connection and unconditionally
// closes it afterwards: the protocol is one-shot by design.
func (s *Server) Serve(conn net.Conn) {
	defer conn.Close()

	client := tcp.NewClient(
		conn, s.cfg.NET.ReadTimeout, make([]byte, s.cfg.NET.ReadBufferSize),
	)
	lineBuff := make([]byte, gem.MaxRequestLineLength)
	resp := gem.NewResponse(
		bufio.NewWriterSize(conn, s.cfg.NET.WriteBufferSize), s.cfg.Body,
	)

	u, err := transport.Parse(client, lineBuff)
	switch {
	case err == nil:
	case isDisconnect(err):
		// the peer is gone, nobody is owed a response
		return
	case errors.Is(err, transport.ErrBufferTooSmall):
		log.Printf("BUG: under-sized request line buffer, dropping the connection")
		return
	case isMalformed(err):
		_ = resp.WriteHeader(status.BadRequest, err.Error())
		return
	default:
		_ = resp.WriteHeader(status.TemporaryFailure, "temporary failure")
		log.Printf("gemini: reading request from %s: %s", conn.RemoteAddr(), err)
		return
	}

	request := gem.NewRequest(u, conn.RemoteAddr(), tlsState(conn))

	if err = s.handler(resp, request); err != nil {
		if !resp.IsFlushed() {
			_ = resp.WriteHeader(errorStatus(err))
		}

		log.Printf("gemini: handler failed for %s: %s", conn.RemoteAddr(), err)
		return
	}

	if !resp.IsFlushed() {
		if err = resp.Flush(mime.Default); err != nil {
			log.Printf("gemini: responding to %s: %s", conn.RemoteAddr(), err)
		}
	}
}

// errorStatus maps a handler error to a response header. Typed status
// errors keep their code; everything else is reported as an anonymous
// temporary failure, never leaking the underlying message to the peer.
func errorStatus(err error) (status.Code, string) {
	var coded status.Error
	if errors.As(err, &coded) && !status.IsSuccess(coded.Code) {
		return coded.Code, coded.Message
	}

	return status.TemporaryFailure, "temporary failure"
}

// isMalformed reports whether the error is the peer's fault and deserves
// a bad request response before the connection goes down.
func isMalformed(err error) bool {
	switch {
	case errors.Is(err, transport.ErrMissingCRLF),
		errors.Is(err, transport.ErrMissingURI),
		errors.Is(err, transport.ErrURITooLong):
		return true
	}

	// everything the URI parser produces is a grammar violation
	for _, parseErr := range []error{
		uri.ErrMissingScheme, uri.ErrUnexpectedCharacter, uri.ErrMissingHost,
		uri.ErrMissingClosingBracket, uri.ErrInvalidPort,
	} {
		if errors.Is(err, parseErr) {
			return true
		}
	}

	return false
}

func isDisconnect(err error) bool {
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}

	return errors.Is(err, io.EOF) ||
		errors.Is(err, syscall.ECONNRESET) ||
		errors.Is(err, syscall.EPIPE) ||
		errors.Is(err, net.ErrClosed)
}

func tlsState(conn net.Conn) *tls.ConnectionState {
	if tlsConn, ok := conn.(*tls.Conn); ok {
		state := tlsConn.ConnectionState()
		return &state
	}

	return nil
}
