package media

import (
	"github.com/h2non/filetype"
)

// DetectImage sniffs the content of a candidate upload and reports whether it
// is an image the console accepts, along with the canonical extension for the
// detected format. Detection uses magic bytes, not the filename, so a renamed
// binary does not slip through.
func DetectImage(data []byte) (ext string, ok bool) {
	kind, err := filetype.Match(data)
	if err != nil || kind == filetype.Unknown {
		return "", false
	}
	if kind.MIME.Type != "image" {
		return "", false
	}
	return kind.Extension, true
}
