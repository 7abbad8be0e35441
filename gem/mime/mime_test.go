package mime

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFromExtension(t *testing.T) {
	require.Equal(t, Gemtext, FromExtension(".gmi"))
	require.Equal(t, Gemtext, FromExtension("gmi"))
	require.Equal(t, PNG, FromExtension(".PNG"))
	require.Equal(t, Default, FromExtension(".nonsense"))
	require.Equal(t, Default, FromExtension(""))
}

func TestFromFileName(t *testing.T) {
	require.Equal(t, Gemtext, FromFileName("index.gmi"))
	require.Equal(t, HTML, FromFileName("some/path/page.html"))
	require.Equal(t, Default, FromFileName("Makefile"))
	require.Equal(t, Default, FromFileName("archive.unknown"))
}

func TestToExtension(t *testing.T) {
	require.Equal(t, ".gmi", ToExtension(Gemtext))
	require.Equal(t, ".gmi", ToExtension(Default))
	require.Equal(t, ".html", ToExtension(HTML))
	require.Equal(t, ".jpg", ToExtension(JPEG))
	require.Equal(t, ".png", ToExtension(PNG))
	require.Equal(t, ".gmi", ToExtension("application/whatever"))
}
