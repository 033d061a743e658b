package lexicon

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/wfunc/scrabbleserver/game"
	"github.com/wfunc/scrabbleserver/logger"
)

// Client consults a remote dictionary service and degrades to the
// local lexicon when the service is unreachable. A move is never
// blocked on oracle availability.
type Client struct {
	baseURL  string
	http     *http.Client
	fallback *Lexicon
}

// NewClient builds an oracle client. An empty baseURL disables the
// remote lookup entirely and validates locally.
func NewClient(baseURL string, timeout time.Duration, fallback *Lexicon) *Client {
	if timeout <= 0 {
		timeout = 3 * time.Second
	}
	return &Client{
		baseURL:  baseURL,
		http:     &http.Client{Timeout: timeout},
		fallback: fallback,
	}
}

type searchResponse struct {
	Word  string `json:"word"`
	Valid bool   `json:"valid"`
}

// WordResult is one entry of a batch validation.
type WordResult struct {
	Word  string `json:"word"`
	Valid bool   `json:"valid"`
}

type validateRequest struct {
	Words []string `json:"words"`
}

type validateResponse struct {
	Results  []WordResult `json:"results"`
	AllValid bool         `json:"allValid"`
}

// IsValid implements game.Lexicon.
func (c *Client) IsValid(word string) bool {
	if c.baseURL == "" {
		return c.fallback.IsValid(word)
	}

	reqURL := fmt.Sprintf("%s/dictionary/search?q=%s", c.baseURL, url.QueryEscape(word))
	resp, err := c.http.Get(reqURL)
	if err != nil {
		logger.Log.Warnf("Dictionary service unreachable, validating %q locally: %v", word, err)
		return c.fallback.IsValid(word)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		logger.Log.Warnf("Dictionary service returned %d for %q, validating locally", resp.StatusCode, word)
		return c.fallback.IsValid(word)
	}

	var out searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		logger.Log.Warnf("Bad dictionary response for %q, validating locally: %v", word, err)
		return c.fallback.IsValid(word)
	}
	return out.Valid
}

// ValidateWords checks a batch in one request, falling back to local
// per-word validation on any transport failure.
func (c *Client) ValidateWords(ctx context.Context, words []string) ([]WordResult, error) {
	local := func() []WordResult {
		results := make([]WordResult, len(words))
		for i, w := range words {
			results[i] = WordResult{Word: w, Valid: c.fallback.IsValid(w)}
		}
		return results
	}

	if c.baseURL == "" {
		return local(), nil
	}

	body, err := json.Marshal(validateRequest{Words: words})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/dictionary/validate-words", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		logger.Log.Warnf("Dictionary service unreachable, validating batch locally: %v", err)
		return local(), nil
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return local(), nil
	}

	var out validateResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return local(), nil
	}
	return out.Results, nil
}

var _ game.Lexicon = (*Client)(nil)
