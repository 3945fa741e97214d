// Package streaminfofetch fetches a stream's optional streaminfo.json
// companion file, a broadcaster-hosted JSON document that mirrors a
// subset of the icy-* headers outside the resolution core, per spec §6.
package streaminfofetch

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/streamscout/streamscout/internal/httpclient"
)

// Companion is the decoded body of <homepage>/streaminfo.json. All
// fields except IndexMetadata and Version are optional and left at their
// zero value when absent.
type Companion struct {
	IndexMetadata          int    `json:"icy-index-metadata"`
	Version                int    `json:"icy-version"`
	MainStreamURL          string `json:"icy-main-stream-url,omitempty"`
	Name                   string `json:"icy-name,omitempty"`
	Description            string `json:"icy-description,omitempty"`
	Genre                  string `json:"icy-genre,omitempty"`
	LanguageCodes          string `json:"icy-language-codes,omitempty"`
	CountryCode            string `json:"icy-country-code,omitempty"`
	CountrySubdivisionCode string `json:"icy-country-subdivision-code,omitempty"`
	Logo                   string `json:"icy-logo,omitempty"`
	GeoLatLong             string `json:"icy-geo-lat-long,omitempty"`
}

// Fetcher retrieves a Companion over the resilient httpclient.Client
// (retry/backoff and circuit breaker included), kept separate from the
// resolution core since the companion fetch is an optional, explicitly
// invoked helper rather than part of check_tree.
type Fetcher struct {
	client *httpclient.Client
}

// New wraps an existing httpclient.Client.
func New(client *httpclient.Client) *Fetcher {
	return &Fetcher{client: client}
}

// NewDefault builds a Fetcher over httpclient.CompanionFetchConfig, tuned
// for this package's one-shot best-effort fetch rather than
// httpclient's general-purpose defaults.
func NewDefault() *Fetcher {
	return New(httpclient.NewForCompanionFetch())
}

// Fetch retrieves and decodes homepage's streaminfo.json. homepage is
// joined with "/streaminfo.json" after trimming any trailing slash.
func (f *Fetcher) Fetch(ctx context.Context, homepage string) (*Companion, error) {
	url := strings.TrimRight(homepage, "/") + "/streaminfo.json"

	resp, err := f.client.Get(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("fetching streaminfo.json: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("streaminfo.json returned status %d", resp.StatusCode)
	}

	var companion Companion
	if err := json.NewDecoder(resp.Body).Decode(&companion); err != nil {
		return nil, fmt.Errorf("decoding streaminfo.json: %w", err)
	}
	return &companion, nil
}
