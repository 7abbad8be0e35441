package gemini

import (
	"io"
	"net"
	"sync"
	"testing"
	"time"

	"github.com/indigo-web/gemini/gem"
	"github.com/indigo-web/gemini/gem/status"
	"github.com/stretchr/testify/require"
)

func startApp(t *testing.T, addr string, handler gem.Handler) (*App, chan error) {
	app := New(addr)
	started := make(chan struct{})
	app.NotifyOnStart(func() {
		close(started)
	})

	serveErr := make(chan error, 1)
	go func() {
		serveErr <- app.Serve(handler)
	}()

	select {
	case <-started:
	case <-time.After(5 * time.Second):
		t.Fatal("the app never started")
	}

	return app, serveErr
}

func fetch(addr, request string) (string, error) {
	conn, err := net.Dial("tcp", addr)
	if err != nil {
		return "", err
	}
	defer conn.Close()

	if _, err = conn.Write([]byte(request)); err != nil {
		return "", err
	}

	response, err := io.ReadAll(conn)

	return string(response), err
}

func TestConcurrentClients(t *testing.T) {
	const addr = "localhost:16965"

	app, serveErr := startApp(t, addr, func(resp *gem.Response, req *gem.Request) error {
		_, err := resp.WriteString("Hello, world!")
		return err
	})

	const clients = 10

	wg := new(sync.WaitGroup)
	responses := make(chan string, clients)

	for i := 0; i < clients; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			response, err := fetch(addr, "gemini://localhost/\r\n")
			require.NoError(t, err)
			responses <- response
		}()
	}

	wg.Wait()
	close(responses)

	count := 0
	for response := range responses {
		require.Equal(t, "20 text/gemini; charset=UTF-8\r\nHello, world!", response)
		count++
	}
	require.Equal(t, clients, count)

	app.GracefulStop()

	select {
	case err := <-serveErr:
		require.ErrorIs(t, err, status.ErrGracefulShutdown)
	case <-time.After(5 * time.Second):
		t.Fatal("Serve did not return after GracefulStop")
	}
}

func TestGracefulStopDrains(t *testing.T) {
	const addr = "localhost:16966"

	handlerEntered := make(chan struct{})
	app, serveErr := startApp(t, addr, func(resp *gem.Response, req *gem.Request) error {
		close(handlerEntered)
		time.Sleep(200 * time.Millisecond)
		_, err := resp.WriteString("slow but steady")
		return err
	})

	conn, err := net.Dial("tcp", addr)
	require.NoError(t, err)
	defer conn.Close()

	_, err = conn.Write([]byte("gemini://localhost/slow\r\n"))
	require.NoError(t, err)

	select {
	case <-handlerEntered:
	case <-time.After(5 * time.Second):
		t.Fatal("the request never reached the handler")
	}

	app.GracefulStop()

	// the in-flight transaction must be served to completion despite the
	// shutdown already being in progress
	response, err := io.ReadAll(conn)
	require.NoError(t, err)
	require.Equal(t, "20 text/gemini; charset=UTF-8\r\nslow but steady", string(response))

	select {
	case err = <-serveErr:
		require.ErrorIs(t, err, status.ErrGracefulShutdown)
	case <-time.After(5 * time.Second):
		t.Fatal("Serve did not return after GracefulStop")
	}
}

func TestBadRequestOverTheWire(t *testing.T) {
	const addr = "localhost:16967"

	app, serveErr := startApp(t, addr, nil)

	response, err := fetch(addr, "no-scheme-here\r\n")
	require.NoError(t, err)
	require.Equal(t, "59 uri: missing scheme\r\n", response)

	app.Stop()
	require.ErrorIs(t, <-serveErr, status.ErrShutdown)
}
