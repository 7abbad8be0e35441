package uri

// URI holds the components of a parsed generic URI. Every byte-slice field
// aliases the input buffer passed to Parse, so a URI must not outlive the
// buffer it was parsed from. A nil slice means the component was absent;
// an empty non-nil slice means it was present but empty (e.g. "?#" yields
// an empty query).
type URI struct {
	Scheme   []byte
	Host     []byte
	Port     uint16
	HasPort  bool
	Path     []byte
	Query    []byte
	Fragment []byte
}
