package streamcheck

// PlaylistDecoder is the external collaborator contract for decoding
// generic (M3U/PLS/XSPF/ASX) playlist bodies, per §6.
type PlaylistDecoder interface {
	// IsContentHLS reports whether text looks like an HLS master
	// playlist, so the dispatcher can route to the HLS branch first.
	IsContentHLS(text string) bool
	// Decode extracts URL strings from text, in source order.
	Decode(text string) ([]string, error)
}

// HLSVariant is one stream variant advertised by an HLS master playlist.
type HLSVariant struct {
	// BandwidthBitsPerSec is the variant's BANDWIDTH attribute, in
	// bits per second.
	BandwidthBitsPerSec uint64
	// Codecs is the variant's raw CODECS attribute, if present.
	Codecs string
}

// HLSMasterParser is the external collaborator contract for parsing an
// HLS master playlist body into its variant streams, per §6.
type HLSMasterParser interface {
	ParseMaster(text string) ([]HLSVariant, error)
}
