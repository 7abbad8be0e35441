package status

import "errors"

// Error carries a Gemini status code alongside a human-readable message,
// which ends up in the response META field.
type Error struct {
	Message string
	Code    Code
}

func NewError(code Code, message string) error {
	return Error{
		Code:    code,
		Message: message,
	}
}

func (e Error) Error() string {
	return e.Message
}

var (
	ErrShutdown         = errors.New("graceful shutdown")
	ErrGracefulShutdown = errors.New("graceful shutdown, system's going down")

	ErrTemporaryFailure    = NewError(TemporaryFailure, "temporary failure")
	ErrServerUnavailable   = NewError(ServerUnavailable, "server unavailable")
	ErrCGIError            = NewError(CGIError, "CGI error")
	ErrProxyError          = NewError(ProxyError, "proxy error")
	ErrSlowDown            = NewError(SlowDown, "slow down")
	ErrPermanentFailure    = NewError(PermanentFailure, "permanent failure")
	ErrNotFound            = NewError(NotFound, "not found")
	ErrGone                = NewError(Gone, "gone")
	ErrProxyRequestRefused = NewError(ProxyRequestRefused, "proxy request refused")
	ErrBadRequest          = NewError(BadRequest, "bad request")
	ErrCertificateRequired = NewError(CertificateRequired, "client certificate required")
)
