package oembed

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/wadjakorntonsri/linkpulse/pkg/core/domain"
	"github.com/wadjakorntonsri/linkpulse/pkg/ports"
)

// DefaultProvider is the YouTube oEmbed endpoint host.
const DefaultProvider = "https://www.youtube.com"

// Client resolves video metadata through an oEmbed provider.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

func New(baseURL string) *Client {
	if baseURL == "" {
		baseURL = DefaultProvider
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 5 * time.Second,
		},
	}
}

// Lookup asks the provider for the title and thumbnail of videoURL.
func (c *Client) Lookup(ctx context.Context, videoURL string) (*domain.VideoInfo, error) {
	params := url.Values{}
	params.Set("url", videoURL)
	params.Set("format", "json")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/oembed?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("oembed.Lookup: create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("oembed.Lookup: %w", err)
	}
	defer resp.Body.Close() //nolint:errcheck // best-effort close

	if resp.StatusCode != http.StatusOK {
		io.Copy(io.Discard, io.LimitReader(resp.Body, 1<<16)) //nolint:errcheck
		return nil, fmt.Errorf("oembed.Lookup: unexpected status %d", resp.StatusCode)
	}

	var info domain.VideoInfo
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		return nil, fmt.Errorf("oembed.Lookup: decode: %w", err)
	}
	return &info, nil
}

var _ ports.VideoInfoLookup = (*Client)(nil)
