package dummy

import (
	"io"
	"net"

	"github.com/indigo-web/gemini/internal/server/tcp"
	"github.com/indigo-web/utils/unreader"
)

// StaticClient serves the chunks it was initialised with, one per Read,
// followed by io.EOF. Everything written into it is remembered, which
// makes wire-level assertions in tests trivial.
type StaticClient struct {
	unreader *unreader.Unreader
	chunks   [][]byte
	Written  []byte
	closed   bool
}

func NewStaticClient(chunks ...[]byte) *StaticClient {
	return &StaticClient{
		unreader: new(unreader.Unreader),
		chunks:   chunks,
	}
}

func (s *StaticClient) Read() ([]byte, error) {
	return s.unreader.PendingOr(func() ([]byte, error) {
		if len(s.chunks) == 0 || s.closed {
			return nil, io.EOF
		}

		chunk := s.chunks[0]
		s.chunks = s.chunks[1:]

		return chunk, nil
	})
}

func (s *StaticClient) Unread(takeback []byte) {
	s.unreader.Unread(takeback)
}

func (s *StaticClient) Write(b []byte) error {
	s.Written = append(s.Written, b...)
	return nil
}

func (*StaticClient) Remote() net.Addr {
	return &net.TCPAddr{}
}

func (s *StaticClient) Close() error {
	s.closed = true
	return nil
}

// NewNopClient returns a client that reports an immediate peer disconnect.
func NewNopClient() tcp.Client {
	return NewStaticClient()
}
