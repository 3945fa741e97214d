package streamcheck

import (
	"context"
	"net/url"
	"strings"

	"github.com/streamscout/streamscout/internal/urlutil"
)

// maxGenericPlaylistEntries bounds fan-out from a single generic
// playlist, per §4.P's rationale: adversarially long playlists are
// common enough to cap without surprising the typical case.
const maxGenericPlaylistEntries = 10

// dispatchPlaylist implements §4.P: read the body, ask the HLS detector,
// and route to the HLS or generic branch.
func dispatchPlaylist(ctx context.Context, rawURL string, req *Request, opts Options, depth int) *CheckResult {
	if err := req.ReadContent(); err != nil {
		return NewErrorResult(rawURL, NewCheckError(ErrPlaylistReadFailed))
	}
	text := req.Text()

	decoder := opts.playlistDecoder()
	if decoder.IsContentHLS(text) {
		return dispatchHLS(rawURL, text, opts)
	}
	return dispatchGeneric(ctx, rawURL, text, opts, depth, decoder)
}

// dispatchHLS parses text as an HLS master playlist and emits a single
// Stream leaf from its first variant, per §4.P's HLS branch.
func dispatchHLS(rawURL, text string, opts Options) *CheckResult {
	variants, err := opts.hlsParser().ParseMaster(text)
	if err != nil || len(variants) == 0 {
		return NewStreamResult(rawURL, &StreamInfo{
			CodecAudio: "UNKNOWN",
			HLS:        true,
			ICYVersion: 1,
		})
	}

	first := variants[0]
	audio, video := classifyHLSCodecs(first.Codecs)
	bitrate := uint32(first.BandwidthBitsPerSec / 1000)

	return NewStreamResult(rawURL, &StreamInfo{
		CodecAudio: audio,
		CodecVideo: video,
		HLS:        true,
		Bitrate:    &bitrate,
		ICYVersion: 1,
	})
}

// dispatchGeneric decodes text via the external playlist decoder and
// recurses into up to maxGenericPlaylistEntries resolved child URLs, per
// §4.P's generic branch.
func dispatchGeneric(ctx context.Context, rawURL, text string, opts Options, depth int, decoder PlaylistDecoder) *CheckResult {
	entries, err := decoder.Decode(text)
	if err != nil {
		return NewErrorResult(rawURL, NewCheckError(ErrPlayListDecodeError))
	}

	var nonBlank []string
	for _, e := range entries {
		if strings.TrimSpace(e) != "" {
			nonBlank = append(nonBlank, e)
		}
	}
	if len(nonBlank) == 0 {
		return NewErrorResult(rawURL, NewCheckError(ErrPlaylistEmpty))
	}

	if _, err := url.Parse(rawURL); err != nil {
		return NewErrorResult(rawURL, NewCheckError(ErrURLParseError))
	}

	limit := len(nonBlank)
	if limit > maxGenericPlaylistEntries {
		limit = maxGenericPlaylistEntries
	}

	var children []*CheckResult
	for i := 0; i < limit; i++ {
		entry := nonBlank[i]
		resolved, err := urlutil.ResolveReference(rawURL, entry)
		if err != nil {
			children = append(children, NewErrorResult(entry, NewCheckError(ErrURLJoinError)))
			continue
		}

		child := check(ctx, resolved, opts, depth-1)
		children = append(children, child)

		if opts.EarlyExit && child.ContainsStreamLeaf() {
			break
		}
	}

	return NewPlaylistResult(rawURL, children)
}
