package gem

import (
	"bufio"
	"bytes"
	"errors"
	"testing"

	"github.com/indigo-web/gemini/config"
	"github.com/indigo-web/gemini/gem/mime"
	"github.com/indigo-web/gemini/gem/status"
	"github.com/stretchr/testify/require"
)

func newResponse() (*Response, *bytes.Buffer) {
	wire := new(bytes.Buffer)
	return NewResponse(bufio.NewWriter(wire), config.Default().Body), wire
}

func TestWriteHeader(t *testing.T) {
	t.Run("exact bytes on the wire", func(t *testing.T) {
		resp, wire := newResponse()
		require.NoError(t, resp.WriteHeader(status.BadRequest, "Malformed request"))
		require.Equal(t, "59 Malformed request\r\n", wire.String())
		require.True(t, resp.IsFlushed())
	})

	t.Run("slow down meta carries retry-after", func(t *testing.T) {
		resp, wire := newResponse()
		require.NoError(t, resp.WriteHeader(status.SlowDown, "60"))
		require.Equal(t, "44 60\r\n", wire.String())
	})

	t.Run("second header panics", func(t *testing.T) {
		resp, _ := newResponse()
		require.NoError(t, resp.WriteHeader(status.NotFound, "nothing here"))
		require.Panics(t, func() {
			_ = resp.WriteHeader(status.NotFound, "again")
		})
		require.Panics(t, func() {
			_ = resp.Flush(mime.Default)
		})
	})

	t.Run("success code must go through Flush", func(t *testing.T) {
		resp, _ := newResponse()
		require.Panics(t, func() {
			_ = resp.WriteHeader(status.Success, "text/gemini")
		})
	})

	t.Run("oversized meta panics", func(t *testing.T) {
		resp, _ := newResponse()
		require.Panics(t, func() {
			_ = resp.WriteHeader(status.NotFound, string(bytes.Repeat([]byte{'a'}, MaxMetaLength+1)))
		})
	})

	t.Run("failed write leaves the response unflushed", func(t *testing.T) {
		resp := NewResponse(bufio.NewWriterSize(brokenWriter{}, 16), config.Default().Body)
		require.Error(t, resp.WriteHeader(status.NotFound, "some really long meta text"))
		require.False(t, resp.IsFlushed())
	})
}

func TestFlush(t *testing.T) {
	t.Run("body with default content type", func(t *testing.T) {
		resp, wire := newResponse()
		_, err := resp.WriteString("Hello, world!")
		require.NoError(t, err)
		require.NoError(t, resp.Flush(mime.Default))
		require.Equal(t, "20 text/gemini; charset=UTF-8\r\nHello, world!", wire.String())
	})

	t.Run("empty body is only a header", func(t *testing.T) {
		resp, wire := newResponse()
		require.NoError(t, resp.Flush(mime.Default))
		require.Equal(t, "20 text/gemini; charset=UTF-8\r\n", wire.String())
	})

	t.Run("custom success code", func(t *testing.T) {
		resp, wire := newResponse()
		_, err := resp.Write([]byte("ok"))
		require.NoError(t, err)
		require.NoError(t, resp.Code(21).Flush(mime.Plain))
		require.Equal(t, "21 text/plain\r\nok", wire.String())
	})

	t.Run("double flush panics", func(t *testing.T) {
		resp, _ := newResponse()
		require.NoError(t, resp.Flush(mime.Default))
		require.Panics(t, func() {
			_ = resp.Flush(mime.Default)
		})
	})

	t.Run("non-success code panics", func(t *testing.T) {
		resp, _ := newResponse()
		require.Panics(t, func() {
			_ = resp.Code(status.NotFound).Flush(mime.Default)
		})
	})

	t.Run("failed flush leaves the response unflushed", func(t *testing.T) {
		resp := NewResponse(bufio.NewWriterSize(brokenWriter{}, 16), config.Default().Body)
		_, err := resp.WriteString("body")
		require.NoError(t, err)
		require.Error(t, resp.Flush(mime.Default))
		require.False(t, resp.IsFlushed())
	})
}

func TestBody(t *testing.T) {
	t.Run("write accumulates without touching the wire", func(t *testing.T) {
		resp, wire := newResponse()
		_, err := resp.Write([]byte("Hello, "))
		require.NoError(t, err)
		_, err = resp.WriteString("world!")
		require.NoError(t, err)
		require.Zero(t, wire.Len())

		require.NoError(t, resp.Flush(mime.Default))
		require.Equal(t, "20 text/gemini; charset=UTF-8\r\nHello, world!", wire.String())
	})

	t.Run("overflow", func(t *testing.T) {
		cfg := config.Default().Body
		cfg.MaxSize = 4
		resp := NewResponse(bufio.NewWriter(new(bytes.Buffer)), cfg)
		_, err := resp.Write([]byte("12345"))
		require.ErrorIs(t, err, ErrBodyOverflow)
	})

	t.Run("json", func(t *testing.T) {
		resp, wire := newResponse()
		require.NoError(t, resp.JSON(map[string]string{"hello": "world"}))
		require.Equal(t, "20 application/json\r\n{\"hello\":\"world\"}", wire.String())
	})
}

type brokenWriter struct{}

func (brokenWriter) Write([]byte) (int, error) {
	return 0, errors.New("the pipe is broken")
}
