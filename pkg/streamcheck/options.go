package streamcheck

import (
	"log/slog"
	"time"
)

// defaultUserAgent is the fixed User-Agent sent on every request, per
// §4.E.
const defaultUserAgent = "StreamCheckBot/0.1.0"

// Options configures a CheckTree/Check run. Zero-value Options is usable:
// missing collaborators fall back to the built-in playlist decoder and
// HLS parser, and a nil Logger discards log output.
type Options struct {
	// TCPTimeout bounds every connect/read the HTTP/ICY client performs.
	TCPTimeout time.Duration
	// MaxDepth bounds redirect/playlist recursion depth.
	MaxDepth int
	// Retries bounds how many extra attempts check_tree makes looking
	// for a Stream leaf.
	Retries int
	// EarlyExit stops a playlist fan-out at the first child whose
	// subtree contains a Stream leaf. CheckTree's retry loop does not
	// depend on it: it always stops at the first stream-containing result.
	EarlyExit bool

	Logger *slog.Logger

	PlaylistDecoder PlaylistDecoder
	HLSParser       HLSMasterParser

	// Sniff, if set, is consulted when a 2xx response omits
	// content-type entirely, before giving up with MissingContentType.
	// See deepscan.go.
	Sniff SniffFunc
}

func (o Options) logger() *slog.Logger {
	if o.Logger != nil {
		return o.Logger
	}
	return slog.New(slog.DiscardHandler)
}

func (o Options) userAgent() string {
	return defaultUserAgent
}

func (o Options) playlistDecoder() PlaylistDecoder {
	if o.PlaylistDecoder != nil {
		return o.PlaylistDecoder
	}
	return defaultPlaylistDecoder()
}

func (o Options) hlsParser() HLSMasterParser {
	if o.HLSParser != nil {
		return o.HLSParser
	}
	return defaultHLSParser()
}
