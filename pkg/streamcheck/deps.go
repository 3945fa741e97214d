package streamcheck

import (
	"sync"

	"github.com/streamscout/streamscout/pkg/hlsmaster"
	"github.com/streamscout/streamscout/pkg/playlistdecoder"
)

// hlsParserAdapter adapts hlsmaster.Parser's own Variant type to the
// HLSVariant shape the resolution engine depends on, keeping the engine
// free of any direct import of the concrete HLS library.
type hlsParserAdapter struct {
	inner *hlsmaster.Parser
}

func (a *hlsParserAdapter) ParseMaster(text string) ([]HLSVariant, error) {
	variants, err := a.inner.ParseMaster(text)
	if err != nil {
		return nil, err
	}
	out := make([]HLSVariant, 0, len(variants))
	for _, v := range variants {
		out = append(out, HLSVariant{BandwidthBitsPerSec: v.BandwidthBitsPerSec, Codecs: v.Codecs})
	}
	return out, nil
}

var (
	defaultDecoderOnce sync.Once
	defaultDecoderInst PlaylistDecoder

	defaultParserOnce sync.Once
	defaultParserInst HLSMasterParser
)

func defaultPlaylistDecoder() PlaylistDecoder {
	defaultDecoderOnce.Do(func() {
		defaultDecoderInst = playlistdecoder.New()
	})
	return defaultDecoderInst
}

func defaultHLSParser() HLSMasterParser {
	defaultParserOnce.Do(func() {
		defaultParserInst = &hlsParserAdapter{inner: hlsmaster.New()}
	})
	return defaultParserInst
}
