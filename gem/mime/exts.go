package mime

import "strings"

var extension = map[string]MIME{
	".gmi":    Gemtext,
	".gemini": Gemtext,
	".txt":    Plain,
	".md":     Markdown,
	".htm":    HTML,
	".html":   HTML,
	".xml":    XML,
	".css":    CSS,
	".json":   JSON,
	".pdf":    PDF,
	".zip":    ZIP,
	".gz":     GZIP,
	".gif":    GIF,
	".jpeg":   JPEG,
	".jpg":    JPEG,
	".png":    PNG,
	".svg":    SVG,
	".webp":   WEBP,
	".mp3":    MP3,
	".ogg":    OGG,
	".mp4":    MP4,
}

// FromExtension maps a file extension (with or without the leading dot)
// to a content type, falling back to Default for unknown extensions.
func FromExtension(ext string) MIME {
	if len(ext) > 0 && ext[0] != '.' {
		ext = "." + ext
	}

	if m, found := extension[strings.ToLower(ext)]; found {
		return m
	}

	return Default
}

// FromFileName maps a file name to a content type by its extension.
// Names without an extension resolve to Default.
func FromFileName(name string) MIME {
	dot := strings.LastIndexByte(name, '.')
	if dot == -1 {
		return Default
	}

	return FromExtension(name[dot:])
}

// ToExtension returns a conventional extension for the content type,
// ".gmi" if the type is unknown. Parameters (e.g. charset) are ignored.
func ToExtension(m MIME) string {
	if semicolon := strings.IndexByte(m, ';'); semicolon != -1 {
		m = strings.TrimRight(m[:semicolon], " ")
	}

	if ext, found := preferredExt[m]; found {
		return ext
	}

	for ext, mapped := range extension {
		if mapped == m {
			return ext
		}
	}

	return ".gmi"
}

// preferredExt disambiguates types mapped by multiple extensions.
var preferredExt = map[MIME]string{
	Gemtext: ".gmi",
	HTML:    ".html",
	JPEG:    ".jpg",
}
