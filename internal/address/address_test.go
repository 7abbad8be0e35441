package address

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	t.Run("host and port", func(t *testing.T) {
		addr, err := Parse("localhost:8080")
		require.NoError(t, err)
		require.Equal(t, "localhost", addr.Host)
		require.Equal(t, uint16(8080), addr.Port)
	})

	t.Run("port only", func(t *testing.T) {
		addr, err := Parse(":1965")
		require.NoError(t, err)
		require.Equal(t, DefaultHost, addr.Host)
		require.Equal(t, uint16(1965), addr.Port)
	})

	t.Run("host only gets the default port", func(t *testing.T) {
		addr, err := Parse("example.com")
		require.NoError(t, err)
		require.Equal(t, "example.com", addr.Host)
		require.Equal(t, DefaultPort, addr.Port)
	})

	t.Run("too big port", func(t *testing.T) {
		_, err := Parse(":65536")
		require.Error(t, err)
		require.Equal(t, "invalid port: 65536", err.Error())
	})
}

func TestAddress(t *testing.T) {
	addr := Address{Host: "localhost", Port: 1965}
	require.Equal(t, "localhost:1965", addr.String())
	require.Equal(t, uint16(7), addr.SetPort(7).Port)
	require.True(t, addr.IsLocalhost())
	require.False(t, addr.IsIP())
	require.True(t, Address{Host: "127.0.0.1"}.IsIP())
}
