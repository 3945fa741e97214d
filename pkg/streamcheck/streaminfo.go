package streamcheck

import (
	"strconv"
	"strings"
)

// StreamInfo is the metadata extracted from a response known to be a
// stream: Icecast/Shoutcast headers, codec classification, and (for HLS
// master playlists) the variant's advertised bandwidth and codecs.
type StreamInfo struct {
	// Type is the original raw content-type string, lowercased, before
	// any parameter was stripped.
	Type     string `json:"type"`
	SSLError bool   `json:"ssl_error"`
	HLS      bool   `json:"hls"`

	Server                 string `json:"server,omitempty"`
	Public                 *bool  `json:"public,omitempty"`
	AudioInfo              string `json:"audio_info,omitempty"`
	IceAudioInfo           string `json:"ice_audio_info,omitempty"`
	Name                   string `json:"name,omitempty"`
	Description            string `json:"description,omitempty"`
	Homepage               string `json:"homepage,omitempty"`
	Genre                  string `json:"genre,omitempty"`
	LogoURL                string `json:"logo_url,omitempty"`
	MainStreamURL          string `json:"main_stream_url,omitempty"`
	CountryCode            string `json:"country_code,omitempty"`
	CountrySubdivisionCode string `json:"country_subdivision_code,omitempty"`
	DoNotIndex             *bool  `json:"do_not_index,omitempty"`
	OverrideIndexMetadata  *bool  `json:"override_index_metadata,omitempty"`

	Bitrate    *uint32 `json:"bitrate,omitempty"`
	Sampling   *uint32 `json:"sampling,omitempty"`
	ICYVersion uint32  `json:"icy_version"`

	CodecAudio string  `json:"codec_audio"`
	CodecVideo *string `json:"codec_video,omitempty"`

	LanguageCodes []string `json:"language_codes,omitempty"`

	GeoLatLong *GeoLatLongResult `json:"geo_lat_long,omitempty"`
}

func boolPtr(b bool) *bool     { return &b }
func u32Ptr(v uint32) *uint32  { return &v }
func strPtr(s string) *string  { return &s }

// extractStreamInfo builds a StreamInfo from a response known to be a
// stream, per §4.S. codecHint is the classifier's codec token (possibly
// "UNKNOWN"); sslErr reflects whether the request downgraded its TLS
// verification to complete. rawContentType is the original, unsplit,
// lowercased content-type header value.
func extractStreamInfo(headers Headers, codecHint string, sslErr bool, rawContentType string) *StreamInfo {
	info := &StreamInfo{
		Type:       rawContentType,
		SSLError:   sslErr,
		HLS:        false,
		CodecAudio: codecHint,
		ICYVersion: 1,
	}

	info.Server = headers.Get("server")
	info.Name = headers.Get("icy-name")
	info.Description = headers.Get("icy-description")
	info.Homepage = headers.Get("icy-url")
	info.Genre = headers.Get("icy-genre")
	info.LogoURL = headers.Get("icy-logo")
	info.MainStreamURL = headers.Get("icy-main-stream-url")
	if info.MainStreamURL == "" {
		info.MainStreamURL = headers.Get("icy-loadbalancer")
	}
	info.CountryCode = headers.Get("icy-country-code")
	if info.CountryCode == "" {
		info.CountryCode = headers.Get("icy-countrycode")
	}
	info.CountrySubdivisionCode = headers.Get("icy-country-subdivision-code")
	info.AudioInfo = headers.Get("icy-audio-info")
	info.IceAudioInfo = headers.Get("ice-audio-info")

	if raw, ok := headers.Lookup("icy-pub"); ok {
		switch v, err := strconv.ParseUint(raw, 10, 32); {
		case err != nil:
			// leave Public nil on parse failure
		case v == 1:
			info.Public = boolPtr(true)
		case v == 0:
			info.Public = boolPtr(false)
		}
	}

	if raw, ok := headers.Lookup("icy-br"); ok {
		first := raw
		if idx := strings.IndexByte(raw, ','); idx >= 0 {
			first = raw[:idx]
		}
		first = strings.TrimSpace(first)
		if v, err := strconv.ParseUint(first, 10, 32); err == nil {
			info.Bitrate = u32Ptr(uint32(v))
		} else {
			info.Bitrate = u32Ptr(0)
		}
	}

	if raw, ok := headers.Lookup("icy-sr"); ok {
		info.Sampling = parseSampling(raw)
	} else if raw, ok := headers.Lookup("icy-samplerate"); ok {
		info.Sampling = parseSampling(raw)
	}

	if raw, ok := headers.Lookup("icy-version"); ok {
		if v, err := strconv.ParseUint(raw, 10, 32); err == nil {
			info.ICYVersion = uint32(v)
		}
	}

	if raw, ok := headers.Lookup("icy-index-metadata"); ok {
		info.OverrideIndexMetadata = boolFromOneZero(raw)
	}
	if raw, ok := headers.Lookup("icy-do-not-index"); ok {
		info.DoNotIndex = boolFromOneZero(raw)
	}

	if raw, ok := headers.Lookup("icy-language-codes"); ok {
		info.LanguageCodes = splitTrimNonEmpty(raw)
	}

	if raw, ok := headers.Lookup("icy-geo-lat-long"); ok {
		info.GeoLatLong = ParseLatLongResult(raw)
	}

	return info
}

func parseSampling(raw string) *uint32 {
	if v, err := strconv.ParseUint(strings.TrimSpace(raw), 10, 32); err == nil {
		return u32Ptr(uint32(v))
	}
	return u32Ptr(0)
}

func boolFromOneZero(raw string) *bool {
	v, err := strconv.ParseUint(strings.TrimSpace(raw), 10, 32)
	if err != nil {
		return nil
	}
	if v == 1 {
		return boolPtr(true)
	}
	return boolPtr(false)
}

func splitTrimNonEmpty(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}

// hlsCodecMatch pairs a CODECS attribute substring with the audio/video
// token it implies; hlsCodecTable lists them in scan order. Later matches
// in scan order overwrite earlier ones,
// per §4.S.
type hlsCodecMatch struct {
	substr string
	audio  string
	video  string
}

var hlsCodecTable = []hlsCodecMatch{
	{substr: "mp4a.40.2", audio: "AAC"},
	{substr: "mp4a.40.5", audio: "AAC+"},
	{substr: "mp4a.40.34", audio: "MP3"},
	{substr: "avc1.42001e", video: "H.264"},
	{substr: "avc1.66.30", video: "H.264"},
	{substr: "avc1.42001f", video: "H.264"},
	{substr: "avc1.4d001e", video: "H.264"},
	{substr: "avc1.77.30", video: "H.264"},
	{substr: "avc1.4d001f", video: "H.264"},
	{substr: "avc1.4d0028", video: "H.264"},
	{substr: "avc1.64001f", video: "H.264"},
	{substr: "avc1.640028", video: "H.264"},
	{substr: "avc1.640029", video: "H.264"},
}

// classifyHLSCodecs scans a raw CODECS attribute string for known
// substrings, per §4.S. Default audio is "UNKNOWN", default video is nil.
func classifyHLSCodecs(codecs string) (audio string, video *string) {
	audio = "UNKNOWN"
	lower := strings.ToLower(codecs)
	for _, m := range hlsCodecTable {
		if strings.Contains(lower, m.substr) {
			if m.audio != "" {
				audio = m.audio
			}
			if m.video != "" {
				video = strPtr(m.video)
			}
		}
	}
	return audio, video
}
