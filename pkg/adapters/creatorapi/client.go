package creatorapi

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

// Client reads published creator profiles from a LinkPulse backend.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// New creates a new creator API client.
func New(baseURL string) *Client {
	return NewWithHTTPClient(baseURL, &http.Client{
		Timeout: 10 * time.Second,
	})
}

func NewWithHTTPClient(baseURL string, httpClient *http.Client) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
	}
}

// FetchProfile loads the published profile with the given public id.
// Any non-2xx answer is reported as domain.ErrProfileNotFound.
func (c *Client) FetchProfile(ctx context.Context, id string) (*domain.Profile, error) {
	var p domain.Profile
	if err := c.get(ctx, "/v2/getCreatorLinks/"+url.PathEscape(id), &p); err != nil {
		return nil, fmt.Errorf("creatorapi.FetchProfile: %w", err)
	}
	normalizeTheme(&p.Theme)
	return &p, nil
}

// normalizeTheme marks a fetched theme as the creator's own and fills the
// style defaults the renderer relies on.
func normalizeTheme(t *domain.Theme) {
	t.ID = domain.CustomThemeID
	t.Name = "Custom"
	t.IsCustom = true
	switch t.ButtonStyle {
	case domain.ButtonRounded, domain.ButtonPill, domain.ButtonSquare:
	default:
		t.ButtonStyle = domain.ButtonRounded
	}
	if t.FontFamily == "" {
		t.FontFamily = "system-ui"
	}
}

func (c *Client) get(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close() //nolint:errcheck // best-effort close

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
		return fmt.Errorf("%w: %w", domain.ErrProfileNotFound, &HTTPError{StatusCode: resp.StatusCode, Message: string(respBody)})
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

var _ ports.ProfileSource = (*Client)(nil)
