package streamcheck

import (
	"context"
	"strings"
)

// check resolves a single URL into a CheckResult, recursing into
// redirects and playlist entries up to depth, per §4.E.
func check(ctx context.Context, rawURL string, opts Options, depth int) *CheckResult {
	if depth <= 0 {
		return NewErrorResult(rawURL, NewCheckError(ErrMaxDepthReached))
	}

	req, err := NewRequest(ctx, rawURL, opts.userAgent(), opts.TCPTimeout)
	if err != nil {
		opts.logger().Debug("connection failed", "url", rawURL, "error", err)
		return NewErrorResult(rawURL, NewCheckError(ErrConnectionFailed))
	}
	defer req.Close()

	switch {
	case req.StatusCode >= 200 && req.StatusCode < 300:
		return checkSuccess(ctx, rawURL, req, opts, depth)
	case req.StatusCode >= 300 && req.StatusCode < 400:
		return checkRedirect(ctx, rawURL, req, opts, depth)
	default:
		return NewErrorResult(rawURL, &CheckError{Kind: ErrIllegalStatusCode, StatusCode: req.StatusCode})
	}
}

// checkSuccess handles the 2xx branch: classify the content-type and
// route to the stream extractor, playlist dispatcher, or
// ErrUnknownContentType.
func checkSuccess(ctx context.Context, rawURL string, req *Request, opts Options, depth int) *CheckResult {
	rawContentType, present := req.Headers.Lookup("content-type")
	req.Headers.Remove("content-type")
	if !present {
		if guessed, ok := sniffContentType(req, opts.Sniff); ok {
			rawContentType, present = guessed, true
		} else {
			return NewErrorResult(rawURL, NewCheckError(ErrMissingContentType))
		}
	}

	_, contentLengthPresent := req.Headers.Lookup("content-length")
	cls := classifyContentType(rawContentType, contentLengthPresent)

	switch cls.kind {
	case classStream:
		info := extractStreamInfo(req.Headers, cls.codec, req.SSLError(), strings.ToLower(rawContentType))
		return NewStreamResult(rawURL, info)
	case classPlaylist:
		return dispatchPlaylist(ctx, rawURL, req, opts, depth)
	default:
		return NewErrorResult(rawURL, &CheckError{Kind: ErrUnknownContentType, ContentType: rawContentType})
	}
}

// checkRedirect handles the 3xx branch: follow location with the same
// early_exit/timeout and one less depth.
func checkRedirect(ctx context.Context, rawURL string, req *Request, opts Options, depth int) *CheckResult {
	location, ok := req.Headers.Lookup("location")
	if !ok {
		return NewErrorResult(rawURL, NewCheckError(ErrNoLocationFieldForRedirect))
	}
	child := check(ctx, location, opts, depth-1)
	return NewRedirectResult(rawURL, child)
}
