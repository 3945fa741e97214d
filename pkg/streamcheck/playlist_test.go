package streamcheck

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeDecoder struct {
	isHLS   bool
	entries []string
	err     error
}

func (f *fakeDecoder) IsContentHLS(text string) bool { return f.isHLS }
func (f *fakeDecoder) Decode(text string) ([]string, error) {
	return f.entries, f.err
}

type fakeHLSParser struct {
	variants []HLSVariant
	err      error
}

func (f *fakeHLSParser) ParseMaster(text string) ([]HLSVariant, error) {
	return f.variants, f.err
}

func playlistTestOptions(decoder PlaylistDecoder, parser HLSMasterParser) Options {
	opts := testOptions()
	opts.PlaylistDecoder = decoder
	opts.HLSParser = parser
	return opts
}

func TestDispatchPlaylist_HLSSuccess(t *testing.T) {
	addr := startFakeServer(t, "HTTP/1.0 200 OK\r\ncontent-type: application/vnd.apple.mpegurl\r\n\r\n#EXTM3U\n#EXT-X-STREAM-INF:BANDWIDTH=128000,CODECS=\"mp4a.40.2\"\nvar.m3u8\n")

	opts := playlistTestOptions(
		&fakeDecoder{isHLS: true},
		&fakeHLSParser{variants: []HLSVariant{{BandwidthBitsPerSec: 128000, Codecs: `mp4a.40.2`}}},
	)

	result := check(context.Background(), fmt.Sprintf("http://%s/master.m3u8", addr), opts, 5)
	require.True(t, result.IsStream())
	assert.True(t, result.Outcome.Stream.HLS)
	assert.Equal(t, "AAC", result.Outcome.Stream.CodecAudio)
	require.NotNil(t, result.Outcome.Stream.Bitrate)
	assert.Equal(t, uint32(128), *result.Outcome.Stream.Bitrate)
}

func TestDispatchPlaylist_HLSParseFailureStillStream(t *testing.T) {
	addr := startFakeServer(t, "HTTP/1.0 200 OK\r\ncontent-type: application/vnd.apple.mpegurl\r\n\r\ngarbage")

	opts := playlistTestOptions(&fakeDecoder{isHLS: true}, &fakeHLSParser{err: errors.New("boom")})

	result := check(context.Background(), fmt.Sprintf("http://%s/master.m3u8", addr), opts, 5)
	require.True(t, result.IsStream())
	assert.True(t, result.Outcome.Stream.HLS)
	assert.Equal(t, "UNKNOWN", result.Outcome.Stream.CodecAudio)
	assert.Nil(t, result.Outcome.Stream.Bitrate)
}

func TestDispatchPlaylist_GenericDecodeError(t *testing.T) {
	addr := startFakeServer(t, "HTTP/1.0 200 OK\r\ncontent-type: application/x-scpls\r\n\r\nbody")

	opts := playlistTestOptions(&fakeDecoder{err: errors.New("bad format")}, &fakeHLSParser{})

	result := check(context.Background(), fmt.Sprintf("http://%s/list.pls", addr), opts, 5)
	require.True(t, result.IsError())
	assert.Equal(t, ErrPlayListDecodeError, result.Error.Kind)
}

func TestDispatchPlaylist_GenericEmpty(t *testing.T) {
	addr := startFakeServer(t, "HTTP/1.0 200 OK\r\ncontent-type: application/x-scpls\r\n\r\nbody")

	opts := playlistTestOptions(&fakeDecoder{entries: []string{"  ", ""}}, &fakeHLSParser{})

	result := check(context.Background(), fmt.Sprintf("http://%s/list.pls", addr), opts, 5)
	require.True(t, result.IsError())
	assert.Equal(t, ErrPlaylistEmpty, result.Error.Kind)
}

func TestDispatchPlaylist_GenericCapsAtTenEntries(t *testing.T) {
	addr := startFakeServer(t, "HTTP/1.0 200 OK\r\ncontent-type: application/x-scpls\r\n\r\nbody")

	entries := make([]string, 15)
	for i := range entries {
		entries[i] = fmt.Sprintf("http://127.0.0.1:1/entry%d", i)
	}
	opts := playlistTestOptions(&fakeDecoder{entries: entries}, &fakeHLSParser{})
	opts.TCPTimeout = 200 * time.Millisecond

	result := check(context.Background(), fmt.Sprintf("http://%s/list.pls", addr), opts, 5)
	require.True(t, result.IsPlaylist())
	assert.Len(t, result.Outcome.Playlist, 10)
}

func TestDispatchPlaylist_EarlyExitStopsAtFirstOk(t *testing.T) {
	addr := startFakeServer(t, "HTTP/1.0 200 OK\r\ncontent-type: application/x-scpls\r\n\r\nbody")
	good := startFakeServer(t, "HTTP/1.0 200 OK\r\ncontent-type: audio/mpeg\r\n\r\n<bytes>")

	opts := playlistTestOptions(&fakeDecoder{entries: []string{
		fmt.Sprintf("http://%s/ok", good),
		"http://127.0.0.1:1/unreachable",
	}}, &fakeHLSParser{})
	opts.EarlyExit = true

	result := check(context.Background(), fmt.Sprintf("http://%s/list.pls", addr), opts, 5)
	require.True(t, result.IsPlaylist())
	assert.Len(t, result.Outcome.Playlist, 1)
}

func TestDispatchPlaylist_EarlyExitSkipsDeadRedirect(t *testing.T) {
	addr := startFakeServer(t, "HTTP/1.0 200 OK\r\ncontent-type: application/x-scpls\r\n\r\nbody")
	deadRedirect := startFakeServer(t, "HTTP/1.0 302 Found\r\nlocation: http://127.0.0.1:1/nowhere\r\n\r\n")
	good := startFakeServer(t, "HTTP/1.0 200 OK\r\ncontent-type: audio/mpeg\r\n\r\n<bytes>")

	opts := playlistTestOptions(&fakeDecoder{entries: []string{
		fmt.Sprintf("http://%s/redir", deadRedirect),
		fmt.Sprintf("http://%s/ok", good),
	}}, &fakeHLSParser{})
	opts.EarlyExit = true
	opts.TCPTimeout = 200 * time.Millisecond

	result := check(context.Background(), fmt.Sprintf("http://%s/list.pls", addr), opts, 5)
	require.True(t, result.IsPlaylist())
	require.Len(t, result.Outcome.Playlist, 2)
	assert.True(t, result.Outcome.Playlist[0].IsRedirect())
	assert.False(t, result.Outcome.Playlist[0].ContainsStreamLeaf())
	assert.True(t, result.Outcome.Playlist[1].IsStream())
}

func TestDispatchPlaylist_UrlJoinError(t *testing.T) {
	addr := startFakeServer(t, "HTTP/1.0 200 OK\r\ncontent-type: application/x-scpls\r\n\r\nbody")

	opts := playlistTestOptions(&fakeDecoder{entries: []string{"://not a url"}}, &fakeHLSParser{})

	result := check(context.Background(), fmt.Sprintf("http://%s/list.pls", addr), opts, 5)
	require.True(t, result.IsPlaylist())
	require.Len(t, result.Outcome.Playlist, 1)
	assert.Equal(t, ErrURLJoinError, result.Outcome.Playlist[0].Error.Kind)
}
