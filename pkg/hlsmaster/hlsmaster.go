// Package hlsmaster adapts github.com/mogiioin/hls-m3u8's MasterPlaylist
// decoder into the small variant-descriptor contract streamcheck's
// playlist dispatcher needs.
package hlsmaster

import (
	"fmt"
	"strings"

	m3u8 "github.com/mogiioin/hls-m3u8"
)

// Variant is one stream variant advertised by an HLS master playlist, in
// the order it appeared in EXT-X-STREAM-INF tags.
type Variant struct {
	BandwidthBitsPerSec uint64
	Codecs              string
}

// Parser decodes HLS master playlist bodies.
type Parser struct{}

// New returns a ready-to-use Parser.
func New() *Parser {
	return &Parser{}
}

// ParseMaster decodes text as an HLS master playlist and returns its
// variants in source order. Parsing is non-strict: malformed attributes
// on individual tags are tolerated rather than failing the whole parse,
// since a single client's source it isn't in control of producing
// perfectly spec-compliant attribute lists is common in the wild.
func (p *Parser) ParseMaster(text string) ([]Variant, error) {
	playlist := &m3u8.MasterPlaylist{}
	if err := playlist.DecodeFrom(strings.NewReader(text), false); err != nil {
		return nil, fmt.Errorf("decoding hls master playlist: %w", err)
	}

	variants := make([]Variant, 0, len(playlist.Variants))
	for _, v := range playlist.Variants {
		if v == nil {
			continue
		}
		variants = append(variants, Variant{
			BandwidthBitsPerSec: uint64(v.Bandwidth),
			Codecs:              v.Codecs,
		})
	}
	return variants, nil
}
