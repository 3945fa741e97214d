package streamcheck

import "strings"

// classification is the result of classifying a content-type header, per
// §4.C: exactly one of the three kinds below.
type classificationKind int

const (
	classStream classificationKind = iota
	classPlaylist
	classOther
)

type classification struct {
	kind  classificationKind
	codec string // only meaningful when kind == classStream
}

// strictStreamTable maps a main content-type to a codec token for types
// unambiguously a stream (no application/octet-stream: that one is only
// trusted in the relaxed pass, after the playlist check).
var strictStreamTable = map[string]string{
	"audio/mpeg":      "MP3",
	"audio/x-mpeg":    "MP3",
	"audio/mp3":       "MP3",
	"audio/aac":       "AAC",
	"audio/x-aac":     "AAC",
	"audio/aacp":      "AAC+",
	"audio/ogg":       "OGG",
	"application/ogg": "OGG",
	"video/ogg":       "OGG",
	"audio/flac":      "FLAC",
	"application/flv": "FLV",
}

// relaxedStreamTable extends strictStreamTable with the opaque
// octet-stream type, tried only after the playlist-shape checks.
var relaxedStreamTable = map[string]string{
	"application/octet-stream": "UNKNOWN",
}

// playlistMIMESet is the set of content-types always treated as a
// playlist, regardless of content-length.
var playlistMIMESet = map[string]bool{
	"application/mpegurl":              true,
	"application/x-mpegurl":            true,
	"application/vnd.apple.mpegurl":    true,
	"application/vnd.apple.mpegurl.audio": true,
	"application/x-scpls":              true,
	"application/pls+xml":              true,
	"application/xspf+xml":             true,
	"audio/mpegurl":                    true,
	"audio/x-mpegurl":                  true,
	"audio/x-scpls":                    true,
	"video/x-ms-asx":                   true,
	"video/x-ms-asf":                   true,
}

// classifyContentType implements §4.C's classification algorithm.
// contentLengthPresent reflects whether a content-length header was
// present on the response (its value is never inspected, only its
// presence).
func classifyContentType(rawContentType string, contentLengthPresent bool) classification {
	lower := strings.ToLower(rawContentType)
	mainType := lower
	if idx := strings.IndexByte(lower, ';'); idx >= 0 {
		mainType = lower[:idx]
	}
	mainType = strings.TrimSpace(mainType)

	if mainType == "text/html" {
		return classification{kind: classOther}
	}
	if codec, ok := strictStreamTable[mainType]; ok {
		return classification{kind: classStream, codec: codec}
	}
	if playlistMIMESet[mainType] || contentLengthPresent {
		return classification{kind: classPlaylist}
	}
	if codec, ok := relaxedStreamTable[mainType]; ok {
		return classification{kind: classStream, codec: codec}
	}
	return classification{kind: classOther}
}
