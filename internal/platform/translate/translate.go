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

// Translator converts free text between the configured language pair.
type Translator interface {
	Translate(ctx context.Context, text string) (string, error)
}

// Client calls the unauthenticated Google translate endpoint, the same
// provider the outreach field app relies on for Malayalam voice notes.
type Client struct {
	baseURL string
	source  string
	target  string
	httpc   *http.Client
}

func NewClient(baseURL, source, target string) *Client {
	return &Client{
		baseURL: baseURL,
		source:  source,
		target:  target,
		httpc:   &http.Client{Timeout: 15 * time.Second},
	}
}

// Translate returns the translated text. Empty input short-circuits to an
// empty result without calling upstream.
func (c *Client) Translate(ctx context.Context, text string) (string, error) {
	if text == "" {
		return "", nil
	}

	q := url.Values{}
	q.Set("client", "gtx")
	q.Set("sl", c.source)
	q.Set("tl", c.target)
	q.Set("dt", "t")
	q.Set("q", text)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+q.Encode(), nil)
	if err != nil {
		return "", fmt.Errorf("build translate request: %w", err)
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		return "", fmt.Errorf("translation provider unreachable: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read translate response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("translation provider returned status %d", resp.StatusCode)
	}

	return parseResponse(body)
}

// parseResponse unpacks the provider's nested-array payload:
// [[["<translated>","<source>",...], ...], ...]. Segments are concatenated.
func parseResponse(body []byte) (string, error) {
	var payload []interface{}
	if err := json.Unmarshal(body, &payload); err != nil {
		return "", fmt.Errorf("decode translate response: %w", err)
	}
	if len(payload) == 0 {
		return "", fmt.Errorf("empty translate response")
	}

	segments, ok := payload[0].([]interface{})
	if !ok {
		return "", fmt.Errorf("unexpected translate response shape")
	}

	var sb strings.Builder
	for _, seg := range segments {
		parts, ok := seg.([]interface{})
		if !ok || len(parts) == 0 {
			continue
		}
		if s, ok := parts[0].(string); ok {
			sb.WriteString(s)
		}
	}
	return sb.String(), nil
}
