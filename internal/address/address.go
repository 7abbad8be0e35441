package address

import (
	"errors"
	"fmt"
	"net"
	"strconv"
	"strings"
)

const (
	DefaultHost = "0.0.0.0"
	// DefaultPort is the port registered for the protocol.
	DefaultPort uint16 = 1965
)

type Address struct {
	Host string
	Port uint16
}

// Parse splits a listen address of the form "host:port", "host" or
// ":port", substituting the defaults for omitted parts.
func Parse(addr string) (Address, error) {
	colon := strings.LastIndexByte(addr, ':')
	if colon == -1 {
		return Address{Host: addr, Port: DefaultPort}, nil
	}

	host := addr[:colon]
	if len(host) == 0 {
		host = DefaultHost
	}

	rawPort := addr[colon+1:]
	port, err := strconv.ParseUint(rawPort, 10, 16)
	if err != nil {
		return Address{}, errors.New("invalid port: " + rawPort)
	}

	return Address{Host: host, Port: uint16(port)}, nil
}

func (a Address) SetPort(port uint16) Address {
	a.Port = port
	return a
}

func (a Address) String() string {
	return fmt.Sprintf("%s:%d", a.Host, a.Port)
}

func (a Address) IsLocalhost() bool {
	return strings.EqualFold(a.Host, "localhost") ||
		a.Host == "127.0.0.1" || a.Host == "::1"
}

func (a Address) IsIP() bool {
	return net.ParseIP(a.Host) != nil
}
