package streamcheck

// SniffFunc inspects a handful of leading body bytes and returns a best
// guess content-type, for responses that omit the content-type header
// entirely. This is an optional seam, not wired to any default
// implementation — callers that want deep scanning set Options.Sniff
// themselves. Left nil (the default), §4.S's classification step never
// changes behavior.
type SniffFunc func(data []byte) (mime string, err error)

// deepScanSniffBytes is how much of the body a SniffFunc gets to look
// at before engine.go gives up and falls through to MissingContentType.
const deepScanSniffBytes = 512

// sniffContentType reads a small prefix of req's body and asks sniff for
// a content-type guess. ok is false if sniff is nil, the read failed to
// produce anything, or sniff itself errored.
func sniffContentType(req *Request, sniff SniffFunc) (mime string, ok bool) {
	if sniff == nil {
		return "", false
	}
	if err := req.ReadUpTo(deepScanSniffBytes); err != nil {
		return "", false
	}
	if len(req.body) == 0 {
		return "", false
	}
	guessed, err := sniff(req.body)
	if err != nil || guessed == "" {
		return "", false
	}
	return guessed, true
}
