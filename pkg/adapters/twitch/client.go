package twitch

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"

	"github.com/wadjakorntonsri/linkpulse/pkg/ports"
)

const (
	DefaultTokenURL = "https://id.twitch.tv/oauth2/token"
	DefaultAPIURL   = "https://api.twitch.tv"

	// Helix accepts at most 100 user_login parameters per request.
	maxLoginsPerRequest = 100
)

type Config struct {
	ClientID     string
	ClientSecret string
	TokenURL     string
	APIURL       string
}

// Client reports live status from the Twitch Helix streams endpoint using
// an app access token.
type Client struct {
	clientID   string
	apiURL     string
	tokens     oauth2.TokenSource
	httpClient *http.Client
}

func New(cfg Config) *Client {
	if cfg.TokenURL == "" {
		cfg.TokenURL = DefaultTokenURL
	}
	if cfg.APIURL == "" {
		cfg.APIURL = DefaultAPIURL
	}

	cc := &clientcredentials.Config{
		ClientID:     cfg.ClientID,
		ClientSecret: cfg.ClientSecret,
		TokenURL:     cfg.TokenURL,
		AuthStyle:    oauth2.AuthStyleInParams,
	}

	return &Client{
		clientID: cfg.ClientID,
		apiURL:   strings.TrimRight(cfg.APIURL, "/"),
		// The token source outlives any single request.
		tokens: cc.TokenSource(context.Background()),
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

type streamsResponse struct {
	Data []struct {
		UserLogin string `json:"user_login"`
		Type      string `json:"type"`
	} `json:"data"`
}

// LiveStatus returns a flag for every requested username; channels that are
// not streaming map to false.
func (c *Client) LiveStatus(ctx context.Context, usernames []string) (map[string]bool, error) {
	status := make(map[string]bool, len(usernames))
	logins := make([]string, 0, len(usernames))
	for _, u := range usernames {
		u = strings.ToLower(strings.TrimSpace(u))
		if u == "" {
			continue
		}
		if _, seen := status[u]; !seen {
			status[u] = false
			logins = append(logins, u)
		}
	}

	for start := 0; start < len(logins); start += maxLoginsPerRequest {
		end := min(start+maxLoginsPerRequest, len(logins))
		live, err := c.streams(ctx, logins[start:end])
		if err != nil {
			return nil, fmt.Errorf("twitch.LiveStatus: %w", err)
		}
		for _, login := range live {
			status[login] = true
		}
	}
	return status, nil
}

func (c *Client) streams(ctx context.Context, logins []string) ([]string, error) {
	params := url.Values{}
	for _, l := range logins {
		params.Add("user_login", l)
	}
	params.Set("first", fmt.Sprint(maxLoginsPerRequest))

	token, err := c.tokens.Token()
	if err != nil {
		return nil, fmt.Errorf("app token: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.apiURL+"/helix/streams?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Client-Id", c.clientID)
	token.SetAuthHeader(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close() //nolint:errcheck // best-effort close

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<16))
		return nil, fmt.Errorf("helix streams: HTTP %d: %s", resp.StatusCode, body)
	}

	var out streamsResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}

	live := make([]string, 0, len(out.Data))
	for _, s := range out.Data {
		if s.Type == "live" {
			live = append(live, strings.ToLower(s.UserLogin))
		}
	}
	return live, nil
}

var _ ports.LiveStatusProvider = (*Client)(nil)
