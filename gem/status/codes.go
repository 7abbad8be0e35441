package status

type (
	Code   uint8
	Status string
)

// Gemini status codes as defined by the protocol specification. The set is
// deliberately non-exhaustive: any two-digit value is a valid Code on the
// wire, and unknown codes inherit the semantics of their leading digit.
const (
	Input          Code = 10
	SensitiveInput Code = 11

	Success Code = 20

	RedirectTemporary Code = 30
	RedirectPermanent Code = 31

	TemporaryFailure  Code = 40
	ServerUnavailable Code = 41
	CGIError          Code = 42
	ProxyError        Code = 43
	// SlowDown asks the client to wait; META carries the number of seconds
	// as a decimal integer string
	SlowDown Code = 44

	PermanentFailure    Code = 50
	NotFound            Code = 51
	Gone                Code = 52
	ProxyRequestRefused Code = 53
	BadRequest          Code = 59

	CertificateRequired      Code = 60
	CertificateNotAuthorised Code = 61
	CertificateNotValid      Code = 62
)

// Class returns the leading digit of the code, determining its semantic
// family even for codes without a dedicated constant.
func Class(code Code) Code {
	return code / 10
}

func IsInput(code Code) bool {
	return Class(code) == 1
}

// IsSuccess reports whether the code requires a body to follow the header.
// Every non-success code requires an empty body instead.
func IsSuccess(code Code) bool {
	return Class(code) == 2
}

func IsRedirect(code Code) bool {
	return Class(code) == 3
}

func IsTemporaryFailure(code Code) bool {
	return Class(code) == 4
}

func IsPermanentFailure(code Code) bool {
	return Class(code) == 5
}

func IsCertificate(code Code) bool {
	return Class(code) == 6
}

// IsValid reports whether the code fits the two-digit wire representation.
func IsValid(code Code) bool {
	return code >= 10 && code <= 69
}

// Text returns a text for the Gemini status code. It returns the empty
// string if the code is unknown.
func Text(code Code) Status {
	switch code {
	case Input:
		return "Input"
	case SensitiveInput:
		return "Sensitive Input"
	case Success:
		return "Success"
	case RedirectTemporary:
		return "Redirect - Temporary"
	case RedirectPermanent:
		return "Redirect - Permanent"
	case TemporaryFailure:
		return "Temporary Failure"
	case ServerUnavailable:
		return "Server Unavailable"
	case CGIError:
		return "CGI Error"
	case ProxyError:
		return "Proxy Error"
	case SlowDown:
		return "Slow Down"
	case PermanentFailure:
		return "Permanent Failure"
	case NotFound:
		return "Not Found"
	case Gone:
		return "Gone"
	case ProxyRequestRefused:
		return "Proxy Request Refused"
	case BadRequest:
		return "Bad Request"
	case CertificateRequired:
		return "Client Certificate Required"
	case CertificateNotAuthorised:
		return "Certificate Not Authorised"
	case CertificateNotValid:
		return "Certificate Not Valid"
	default:
		return ""
	}
}
