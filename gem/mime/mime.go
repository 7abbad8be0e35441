package mime

type MIME = string

const (
	Gemtext     MIME = "text/gemini"
	Plain       MIME = "text/plain"
	HTML        MIME = "text/html"
	XML         MIME = "text/xml"
	CSS         MIME = "text/css"
	Markdown    MIME = "text/markdown"
	JSON        MIME = "application/json"
	PDF         MIME = "application/pdf"
	ZIP         MIME = "application/zip"
	GZIP        MIME = "application/gzip"
	OctetStream MIME = "application/octet-stream"
	GIF         MIME = "image/gif"
	JPEG        MIME = "image/jpeg"
	PNG         MIME = "image/png"
	SVG         MIME = "image/svg+xml"
	WEBP        MIME = "image/webp"
	MP3         MIME = "audio/mpeg"
	OGG         MIME = "audio/ogg"
	MP4         MIME = "video/mp4"
)

// Default is the canonical content type of the protocol, used whenever no
// better mapping is known and for auto-flushed responses.
const Default MIME = Gemtext + "; charset=UTF-8"
