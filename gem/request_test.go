package gem

import (
	"crypto/tls"
	"crypto/x509"
	"testing"

	"github.com/indigo-web/gemini/gem/uri"
	"github.com/stretchr/testify/require"
)

func TestRequestCertificates(t *testing.T) {
	plain := NewRequest(uri.URI{}, nil, nil)
	require.Nil(t, plain.Certificates())

	peer := &x509.Certificate{}
	encrypted := NewRequest(uri.URI{}, nil, &tls.ConnectionState{
		PeerCertificates: []*x509.Certificate{peer},
	})
	require.Equal(t, []*x509.Certificate{peer}, encrypted.Certificates())
}
