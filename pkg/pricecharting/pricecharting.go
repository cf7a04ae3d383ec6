// Package pricecharting downloads per-console price catalogs from the
// PriceCharting custom-guide endpoint. The payload is comma-delimited text
// with a header row; parsing lives in pkg/pricecsv.
package pricecharting

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/hashicorp/go-cleanhttp"
	retryablehttp "github.com/hashicorp/go-retryablehttp"
)

const (
	// DefaultBaseURL is the public PriceCharting download endpoint.
	DefaultBaseURL = "https://www.pricecharting.com/price-guide/download-custom"

	// DefaultTimeout bounds a single catalog download. Catalogs run to a
	// few MB; exceeding this is treated as a network failure.
	DefaultTimeout = 30 * time.Second
)

// Client fetches raw price catalogs for one console at a time.
type Client struct {
	baseURL string
	token   string
	client  *retryablehttp.Client
}

func NewClient(baseURL, token string, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	client := retryablehttp.NewClient()
	client.Logger = nil
	client.RetryMax = 2
	client.HTTPClient = cleanhttp.DefaultClient()
	client.HTTPClient.Timeout = timeout

	return &Client{
		baseURL: baseURL,
		token:   token,
		client:  client,
	}
}

// FetchCatalog downloads the full price catalog for a console id, e.g.
// "nes". It returns the provider's raw delimited text or an error on any
// transport failure, timeout, or non-success status.
func (c *Client) FetchCatalog(ctx context.Context, consoleID string) (string, error) {
	query := url.Values{}
	query.Set("t", c.token)
	query.Set("category", consoleID+"-games")
	fullURL := c.baseURL + "?" + query.Encode()

	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return "", fmt.Errorf("failed to build catalog request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("catalog fetch for %s failed: %w", consoleID, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("catalog fetch for %s returned status %d", consoleID, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read catalog body: %w", err)
	}
	return string(body), nil
}
