package gem

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/indigo-web/gemini/config"
	"github.com/indigo-web/gemini/gem/mime"
	"github.com/indigo-web/gemini/gem/status"
	"github.com/indigo-web/utils/buffer"
	"github.com/indigo-web/utils/uf"
	json "github.com/json-iterator/go"
)

var ErrBodyOverflow = errors.New("gem: response body exceeds the configured limit")

// Response owns the write side of a single transaction. Exactly one of
// WriteHeader or Flush terminates it, and at most once: the protocol has
// no way to recall bytes already on the wire, so a second header is a
// programming error and panics instead of returning an error.
type Response struct {
	code    status.Code
	sink    *bufio.Writer
	body    *buffer.Buffer
	flushed bool
}

// NewResponse binds a fresh response to a buffered sink. The status code
// defaults to success.
func NewResponse(sink *bufio.Writer, cfg config.Body) *Response {
	return &Response{
		code: status.Success,
		sink: sink,
		body: buffer.New(cfg.BufferPrealloc, cfg.MaxSize),
	}
}

// Code overrides the success status the body will be flushed with. Only
// success-class codes make sense here; failures and redirects carry no
// body and must go through WriteHeader.
func (r *Response) Code(code status.Code) *Response {
	r.code = code
	return r
}

// Write appends to the accumulated body. It never touches the wire; the
// body is serialized as a whole on Flush.
func (r *Response) Write(b []byte) (n int, err error) {
	if !r.body.Append(b) {
		return 0, ErrBodyOverflow
	}

	return len(b), nil
}

// WriteString appends a string to the accumulated body.
func (r *Response) WriteString(s string) (n int, err error) {
	return r.Write(uf.S2B(s))
}

// JSON serializes the model into the body and flushes it with the
// application/json content type.
func (r *Response) JSON(model any) error {
	stream := json.ConfigDefault.BorrowStream(r)
	defer json.ConfigDefault.ReturnStream(stream)

	stream.WriteVal(model)
	if err := stream.Flush(); err != nil {
		return err
	}

	return r.Flush(mime.JSON)
}

// File reads a file into the body and flushes it with the content type
// derived from the file's extension. Directories and unopenable files
// yield status.ErrNotFound without touching the wire.
func (r *Response) File(path string) error {
	fd, err := os.Open(path)
	if err != nil {
		return status.ErrNotFound
	}
	defer fd.Close()

	stat, err := fd.Stat()
	if err != nil || stat.IsDir() {
		return status.ErrNotFound
	}

	if _, err = io.Copy(r, fd); err != nil {
		return err
	}

	return r.Flush(mime.FromFileName(path))
}

// WriteHeader sends a non-success status line <code><SP><meta><CR><LF>
// and completes the response. Success codes must go through Flush, as
// they require a body; passing one here panics, as do an oversized meta
// and a double send. The response counts as flushed only once the sink
// reported the whole header written, so a half-delivered header is
// detectable by the caller.
func (r *Response) WriteHeader(code status.Code, meta string) error {
	if r.flushed {
		panic("BUG: WriteHeader on an already flushed response")
	}
	if status.IsSuccess(code) {
		panic("BUG: WriteHeader with a success code; use Flush instead")
	}
	if !status.IsValid(code) {
		panic(fmt.Sprintf("BUG: status code %d doesn't fit two digits", code))
	}
	if len(meta) > MaxMetaLength {
		panic("BUG: META exceeds 1024 bytes")
	}

	r.code = code
	if err := r.statusLine(code, meta); err != nil {
		return err
	}
	if err := r.sink.Flush(); err != nil {
		return err
	}

	r.flushed = true

	return nil
}

// Flush sends the success header <code><SP><content-type><CR><LF>
// followed by the accumulated body and completes the response.
func (r *Response) Flush(contentType mime.MIME) error {
	if r.flushed {
		panic("BUG: Flush on an already flushed response")
	}
	if r.sink.Buffered() != 0 {
		panic("BUG: Flush after direct writes to the underlying sink")
	}
	if !status.IsSuccess(r.code) {
		panic("BUG: Flush with a non-success code; use WriteHeader instead")
	}
	if len(contentType) > MaxMetaLength {
		panic("BUG: content type exceeds 1024 bytes")
	}

	if err := r.statusLine(r.code, contentType); err != nil {
		return err
	}

	if body := r.body.Finish(); len(body) > 0 {
		if _, err := r.sink.Write(body); err != nil {
			return err
		}
	}

	if err := r.sink.Flush(); err != nil {
		return err
	}

	r.flushed = true

	return nil
}

// IsFlushed reports whether the response has already been sent. Once
// true, the transaction is over and no further writes are permitted.
func (r *Response) IsFlushed() bool {
	return r.flushed
}

func (r *Response) statusLine(code status.Code, meta string) error {
	_, err := r.sink.Write([]byte{'0' + byte(code/10), '0' + byte(code%10), ' '})
	if err != nil {
		return err
	}
	if _, err = r.sink.WriteString(meta); err != nil {
		return err
	}
	_, err = r.sink.WriteString("\r\n")

	return err
}
