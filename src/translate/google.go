package translate

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// DefaultGoogleURL is the public endpoint used by the free web client.
const DefaultGoogleURL = "https://translate.googleapis.com/translate_a/single"

// Google calls the translate.googleapis.com web endpoint with client=gtx.
type Google struct {
	BaseURL string
	Client  *http.Client
}

// NewGoogle builds a Google provider. Empty baseURL selects DefaultGoogleURL and
// a zero timeout selects 15s.
func NewGoogle(baseURL string, timeout time.Duration) *Google {
	if baseURL == "" {
		baseURL = DefaultGoogleURL
	}
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &Google{BaseURL: baseURL, Client: &http.Client{Timeout: timeout}}
}

func (g *Google) Translate(ctx context.Context, text, target string) (string, error) {
	params := url.Values{}
	params.Set("client", "gtx")
	params.Set("sl", "auto")
	params.Set("tl", target)
	params.Set("dt", "t")
	params.Set("q", text)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.BaseURL+"?"+params.Encode(), nil)
	if err != nil {
		return "", unavailable(ProviderGoogle, err)
	}
	resp, err := g.Client.Do(req)
	if err != nil {
		return "", unavailable(ProviderGoogle, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", unavailable(ProviderGoogle, err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", unavailable(ProviderGoogle, fmt.Errorf("status %d: %s", resp.StatusCode, truncate(string(body), 200)))
	}

	out, err := parseGoogle(body)
	if err != nil {
		return "", unavailable(ProviderGoogle, err)
	}
	return out, nil
}

// parseGoogle reads the nested array response: [[["seg","src",...],...],...].
// The translation is the concatenation of the first element of each segment.
func parseGoogle(body []byte) (string, error) {
	var raw []json.RawMessage
	if err := json.Unmarshal(body, &raw); err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}
	if len(raw) == 0 {
		return "", fmt.Errorf("empty response")
	}
	var segments [][]any
	if err := json.Unmarshal(raw[0], &segments); err != nil {
		return "", fmt.Errorf("decode segments: %w", err)
	}
	var b strings.Builder
	for _, seg := range segments {
		if len(seg) == 0 {
			continue
		}
		if s, ok := seg[0].(string); ok {
			b.WriteString(s)
		}
	}
	return b.String(), nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
