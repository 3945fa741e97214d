// Package playlistdecoder decodes generic playlist bodies (M3U, PLS,
// XSPF, ASX) into their referenced URLs, and detects whether a body is
// an HLS master playlist so callers can route it elsewhere first.
package playlistdecoder

import (
	"encoding/xml"
	"fmt"
	"strings"

	"github.com/streamscout/streamscout/pkg/m3u"
)

// format is the detected shape of a playlist body.
type format int

const (
	formatUnknown format = iota
	formatM3U
	formatPLS
	formatXSPF
	formatASX
)

// Decoder implements streamcheck.PlaylistDecoder by sniffing the body
// text and dispatching to the matching format-specific decoder.
type Decoder struct{}

// New returns a ready-to-use Decoder.
func New() *Decoder {
	return &Decoder{}
}

// IsContentHLS reports whether text is an HLS master playlist: it
// carries at least one #EXT-X-STREAM-INF tag advertising a variant
// stream, which a plain M3U/VOD media playlist never does.
func (d *Decoder) IsContentHLS(text string) bool {
	return strings.Contains(text, "#EXT-X-STREAM-INF")
}

// Decode extracts URL strings from text in source order, dispatching on
// the sniffed format.
func (d *Decoder) Decode(text string) ([]string, error) {
	switch detectFormat(text) {
	case formatM3U:
		return m3u.CollectURLs(text)
	case formatPLS:
		return decodePLS(text)
	case formatXSPF:
		return decodeXSPF(text)
	case formatASX:
		return decodeASX(text)
	default:
		return nil, fmt.Errorf("playlistdecoder: unrecognized playlist format")
	}
}

func detectFormat(text string) format {
	trimmed := strings.TrimSpace(text)
	lower := strings.ToLower(trimmed)

	switch {
	case strings.HasPrefix(lower, "#extm3u") || strings.Contains(lower, "#extm3u"):
		return formatM3U
	case strings.HasPrefix(lower, "[playlist]"):
		return formatPLS
	case strings.Contains(lower, "<xspf"):
		return formatXSPF
	case strings.Contains(lower, "<asx"):
		return formatASX
	default:
		return formatUnknown
	}
}

// decodePLS parses the Shoutcast/Winamp PLS INI-like format: a
// [playlist] section with FileN=<url> entries, returned in order of
// appearance; the N suffix is not used for ordering.
func decodePLS(text string) ([]string, error) {
	var urls []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, ";") || strings.HasPrefix(line, "[") {
			continue
		}
		idx := strings.IndexByte(line, '=')
		if idx < 0 {
			continue
		}
		key := strings.TrimSpace(line[:idx])
		value := strings.TrimSpace(line[idx+1:])
		if strings.HasPrefix(strings.ToLower(key), "file") {
			urls = append(urls, value)
		}
	}
	return urls, nil
}

// xspfPlaylist models the subset of the XSPF schema streamscout cares
// about: an ordered track list of locations.
type xspfPlaylist struct {
	XMLName   xml.Name `xml:"playlist"`
	TrackList struct {
		Tracks []struct {
			Location string `xml:"location"`
		} `xml:"track"`
	} `xml:"trackList"`
}

func decodeXSPF(text string) ([]string, error) {
	var doc xspfPlaylist
	if err := xml.Unmarshal([]byte(text), &doc); err != nil {
		return nil, fmt.Errorf("decoding xspf: %w", err)
	}
	urls := make([]string, 0, len(doc.TrackList.Tracks))
	for _, t := range doc.TrackList.Tracks {
		urls = append(urls, strings.TrimSpace(t.Location))
	}
	return urls, nil
}

// asxPlaylist models the subset of the ASX schema streamscout cares
// about: an ordered list of entries, each with a ref href.
type asxPlaylist struct {
	XMLName xml.Name `xml:"asx"`
	Entries []struct {
		Ref struct {
			Href string `xml:"href,attr"`
		} `xml:"ref"`
	} `xml:"entry"`
}

func decodeASX(text string) ([]string, error) {
	var doc asxPlaylist
	if err := xml.Unmarshal([]byte(text), &doc); err != nil {
		return nil, fmt.Errorf("decoding asx: %w", err)
	}
	urls := make([]string, 0, len(doc.Entries))
	for _, e := range doc.Entries {
		urls = append(urls, strings.TrimSpace(e.Ref.Href))
	}
	return urls, nil
}
