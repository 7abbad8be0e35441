package transport

import (
	"bytes"
	"errors"
	"io"

	"github.com/indigo-web/gemini/gem"
	"github.com/indigo-web/gemini/gem/uri"
	"github.com/indigo-web/gemini/internal/server/tcp"
)

var (
	// ErrBufferTooSmall signals a mis-sized request line buffer. It can
	// never happen with buffers allocated by the library itself.
	ErrBufferTooSmall = errors.New("gem: request line buffer is under-sized")
	ErrMissingURI     = errors.New("gem: request line carries no URI")
	ErrMissingCRLF    = errors.New("gem: request line is not terminated by CRLF")
	ErrURITooLong     = errors.New("gem: request URI exceeds 1024 bytes")
)

// ReadRequestLine reads exactly one LF-terminated line from the client
// into buff and validates the protocol framing. On success the returned
// slice is the URI with the CRLF stripped, aliasing buff. A peer that
// closed the connection without sending anything yields a plain io.EOF,
// which is a lifecycle event rather than a protocol violation.
func ReadRequestLine(client tcp.Client, buff []byte) ([]byte, error) {
	if len(buff) < gem.MaxRequestLineLength {
		return nil, ErrBufferTooSmall
	}

	var read int

	for {
		data, err := client.Read()
		if err != nil {
			if errors.Is(err, io.EOF) && read == 0 {
				return nil, io.EOF
			}
			if errors.Is(err, io.EOF) {
				// the stream ended mid-line
				return nil, ErrMissingCRLF
			}

			return nil, err
		}

		lf := bytes.IndexByte(data, '\n')
		if lf == -1 {
			if read+len(data) > gem.MaxRequestLineLength {
				return nil, ErrURITooLong
			}

			copy(buff[read:], data)
			read += len(data)
			continue
		}

		if read+lf+1 > gem.MaxRequestLineLength {
			return nil, ErrURITooLong
		}

		copy(buff[read:], data[:lf+1])
		read += lf + 1
		// surplus bytes past the line are returned to the client; the
		// protocol is one-shot, so nobody is going to claim them, but
		// the reader's contract is to consume exactly one line
		client.Unread(data[lf+1:])

		break
	}

	line := buff[:read]
	switch {
	case len(line) == 2 && line[0] == '\r':
		return nil, ErrMissingURI
	case len(line) < 2 || line[len(line)-2] != '\r':
		return nil, ErrMissingCRLF
	}

	return line[:len(line)-2], nil
}

// Parse reads the request line and parses the URI it carries. Parser
// errors are propagated unchanged.
func Parse(client tcp.Client, buff []byte) (uri.URI, error) {
	line, err := ReadRequestLine(client, buff)
	if err != nil {
		return uri.URI{}, err
	}

	return uri.Parse(line)
}
