package dummy

import (
	"net"
	"time"
)

// nopConn exists for tests which need a non-nil net.Conn that goes nowhere.
type nopConn struct{}

func NewNopConn() net.Conn {
	return nopConn{}
}

func (nopConn) Read([]byte) (n int, err error) {
	return
}

func (nopConn) Write(b []byte) (n int, err error) {
	return len(b), nil
}

func (nopConn) Close() error {
	return nil
}

func (nopConn) LocalAddr() net.Addr {
	return nil
}

func (nopConn) RemoteAddr() net.Addr {
	return nil
}

func (nopConn) SetDeadline(time.Time) error {
	return nil
}

func (nopConn) SetReadDeadline(time.Time) error {
	return nil
}

func (nopConn) SetWriteDeadline(time.Time) error {
	return nil
}
