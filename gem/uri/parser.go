package uri

import (
	"bytes"
	"errors"
)

var (
	ErrMissingScheme         = errors.New("uri: missing scheme")
	ErrUnexpectedCharacter   = errors.New("uri: unexpected character")
	ErrMissingHost           = errors.New("uri: missing host")
	ErrMissingClosingBracket = errors.New("uri: IP-literal is missing the closing bracket")
	ErrInvalidPort           = errors.New("uri: invalid port")
)

const maxPort = 65535

// Parse parses a generic URI of the form
//
//	<scheme>://<host>[:<port>][/<path>][?<query>][#<fragment>]
//
// into borrowed component spans. It performs no percent-decoding and no
// dot-segment normalization: path, query and fragment are handed to the
// caller verbatim. On error no partial URI is ever returned.
func Parse(input []byte) (URI, error) {
	var (
		uri URI
		pos int
	)

	for ; pos < len(input); pos++ {
		c := input[pos]
		if isSchemeChar(c) {
			continue
		}

		if c == ':' {
			break
		}

		return URI{}, ErrUnexpectedCharacter
	}

	switch {
	case pos == len(input):
		// ran off the end without a colon, so no complete scheme was given.
		// This also covers empty input
		return URI{}, ErrMissingScheme
	case pos == 0:
		return URI{}, ErrMissingScheme
	}

	uri.Scheme = input[:pos]
	pos++

	if len(input)-pos < 2 || input[pos] != '/' || input[pos+1] != '/' {
		return URI{}, ErrUnexpectedCharacter
	}
	pos += 2

	if pos < len(input) && input[pos] == '[' {
		closing := bytes.IndexByte(input[pos:], ']')
		if closing == -1 {
			return URI{}, ErrMissingClosingBracket
		}

		// the brackets stay inside the span, otherwise an IPv6 literal
		// would be indistinguishable from a host:port pair
		uri.Host = input[pos : pos+closing+1]
		pos += closing + 1
	} else {
		begin := pos
		for pos < len(input) && isRegNameChar(input[pos]) {
			pos++
		}

		if pos == begin {
			return URI{}, ErrMissingHost
		}

		uri.Host = input[begin:pos]
	}

	if pos < len(input) && input[pos] == ':' {
		pos++
		begin := pos
		port := 0

		for pos < len(input) && isDigit(input[pos]) {
			port = port*10 + int(input[pos]-'0')
			if port > maxPort {
				return URI{}, ErrInvalidPort
			}

			pos++
		}

		switch {
		case pos > begin:
			uri.Port, uri.HasPort = uint16(port), true
		case pos == len(input):
			// a bare trailing colon is malformed, not an absent port
			return URI{}, ErrInvalidPort
		}
	}

	if pos == len(input) {
		return uri, nil
	}

	switch input[pos] {
	case '/', '?', '#':
	default:
		return URI{}, ErrUnexpectedCharacter
	}

	if input[pos] == '/' {
		pos++
		begin := pos
		for pos < len(input) && input[pos] != '?' && input[pos] != '#' {
			pos++
		}

		uri.Path = input[begin:pos]
	}

	if pos < len(input) && input[pos] == '?' {
		pos++
		begin := pos
		for pos < len(input) && input[pos] != '#' {
			pos++
		}

		uri.Query = input[begin:pos]
	}

	if pos < len(input) && input[pos] == '#' {
		uri.Fragment = input[pos+1:]
	}

	return uri, nil
}

func isSchemeChar(c byte) bool {
	return isAlpha(c) || isDigit(c) || c == '+' || c == '-' || c == '.'
}

// isRegNameChar reports whether c may appear in a registered name:
// unreserved characters, the percent sign, or sub-delimiters.
func isRegNameChar(c byte) bool {
	if isAlpha(c) || isDigit(c) {
		return true
	}

	switch c {
	case '-', '.', '_', '~', '%',
		'!', '$', '&', '\'', '(', ')', '*', '+', ',', '=':
		return true
	}

	return false
}

func isAlpha(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}
