package gem

// Wire-level limits fixed by the protocol. They are not configurable:
// peers exceeding them are misbehaving by definition.
const (
	// MaxURILength is the maximal length of the request URI in bytes,
	// excluding the terminating CRLF.
	MaxURILength = 1024
	// MaxRequestLineLength bounds the whole request line, CRLF included.
	MaxRequestLineLength = MaxURILength + 2
	// MaxMetaLength is the maximal length of the META field of a response.
	MaxMetaLength = 1024
	// MaxHeaderLength bounds a serialized response header: two status
	// digits, a space, META and CRLF.
	MaxHeaderLength = 2 + 1 + MaxMetaLength + 2
)

// Handler processes a single parsed request. It may send the response
// itself via Response.WriteHeader or Response.Flush; if it returns nil
// without doing so, the accumulated body is flushed automatically with
// the canonical content type. Returning an error results in a
// best-effort temporary failure response instead.
type Handler func(resp *Response, req *Request) error
