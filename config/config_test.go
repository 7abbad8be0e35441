package config

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	// the read buffer must fit the longest legal request line
	require.GreaterOrEqual(t, cfg.NET.ReadBufferSize, 1026)
	require.Positive(t, cfg.NET.WriteBufferSize)
	require.Positive(t, cfg.NET.MaxConnections)
	require.Positive(t, cfg.Body.MaxSize)
}
