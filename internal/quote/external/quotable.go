package external

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
)

// QuotableClient fetches human quotes from the quotable API (no API key).
type QuotableClient struct {
	baseURL    string
	httpClient *http.Client
}

func NewQuotableClient(baseURL string, httpClient *http.Client) *QuotableClient {
	if baseURL == "" {
		baseURL = "https://api.quotable.io"
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 5 * time.Second}
	}
	return &QuotableClient{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		httpClient: httpClient,
	}
}

// Quote is one entry of the /quotes/random response.
type Quote struct {
	ID      string   `json:"_id"`
	Content string   `json:"content"`
	Author  string   `json:"author"`
	Tags    []string `json:"tags,omitempty"`
}

// Filter narrows the random draw. Zero values are left out of the query.
type Filter struct {
	MinLength int
	MaxLength int
	// Tags uses quotable syntax: "a,b" means all of, "a|b" any of.
	Tags    string
	Authors string
}

func (f Filter) values(limit int) url.Values {
	values := url.Values{}
	values.Set("limit", fmt.Sprint(limit))
	if f.MaxLength > 0 {
		values.Set("maxLength", fmt.Sprint(f.MaxLength))
	}
	if f.MinLength > 0 {
		values.Set("minLength", fmt.Sprint(f.MinLength))
	}
	if f.Tags != "" {
		values.Set("tags", f.Tags)
	}
	if f.Authors != "" {
		values.Set("author", f.Authors)
	}
	return values
}

// Random returns up to limit random quotes matching f.
func (c *QuotableClient) Random(ctx context.Context, limit int, f Filter) ([]Quote, error) {
	if limit <= 0 {
		return nil, fmt.Errorf("quotable limit must be positive, got %d", limit)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		fmt.Sprintf("%s/quotes/random?%s", c.baseURL, f.values(limit).Encode()), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("quotable non-200: %d", resp.StatusCode)
	}

	var payload []Quote
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decode quotable payload: %w", err)
	}

	quotes := payload[:0]
	for _, q := range payload {
		q.Content = strings.TrimSpace(q.Content)
		if q.Content == "" {
			continue
		}
		if q.ID == "" {
			q.ID = stableID(q)
		}
		quotes = append(quotes, q)
	}
	return quotes, nil
}

// stableID names a quote that came without an id, so repeated runs map it to
// the same paraphrase cache entry.
func stableID(q Quote) string {
	return uuid.NewSHA1(uuid.NameSpaceURL, []byte(q.Author+"|"+q.Content)).String()
}
