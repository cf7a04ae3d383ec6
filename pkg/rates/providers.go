package rates

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/hashicorp/go-cleanhttp"
	retryablehttp "github.com/hashicorp/go-retryablehttp"
)

const (
	bankOfCanadaURL    = "https://www.bankofcanada.ca/valet/observations/FXUSDCAD/json?recent=1"
	exchangeRateAPIURL = "https://api.exchangerate-api.com/v4/latest/USD"
)

// Provider is one substitutable source of the USD→CAD rate. Providers are
// tried in order by the Resolver; each either returns a rate or fails.
type Provider interface {
	Name() string
	Fetch(ctx context.Context) (float64, error)
}

func newRateClient(timeout time.Duration) *retryablehttp.Client {
	client := retryablehttp.NewClient()
	client.Logger = nil
	client.RetryMax = 2
	client.HTTPClient = cleanhttp.DefaultClient()
	client.HTTPClient.Timeout = timeout
	return client
}

func fetchJSON(ctx context.Context, client *retryablehttp.Client, url string, out any) error {
	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	return json.Unmarshal(body, out)
}

// BankOfCanada reads the official FXUSDCAD observation from the Bank of
// Canada valet API. Preferred source since the target currency is CAD.
type BankOfCanada struct {
	URL    string
	client *retryablehttp.Client
}

func NewBankOfCanada(timeout time.Duration) *BankOfCanada {
	return &BankOfCanada{
		URL:    bankOfCanadaURL,
		client: newRateClient(timeout),
	}
}

func (b *BankOfCanada) Name() string { return "Bank of Canada" }

func (b *BankOfCanada) Fetch(ctx context.Context) (float64, error) {
	var payload struct {
		Observations []struct {
			Date     string `json:"d"`
			FXUSDCAD struct {
				Value string `json:"v"`
			} `json:"FXUSDCAD"`
		} `json:"observations"`
	}
	if err := fetchJSON(ctx, b.client, b.URL, &payload); err != nil {
		return 0, fmt.Errorf("bank of canada: %w", err)
	}
	if len(payload.Observations) == 0 {
		return 0, fmt.Errorf("bank of canada: no observations in response")
	}

	rate, err := strconv.ParseFloat(payload.Observations[0].FXUSDCAD.Value, 64)
	if err != nil {
		return 0, fmt.Errorf("bank of canada: malformed rate %q", payload.Observations[0].FXUSDCAD.Value)
	}
	return rate, nil
}

// ExchangeRateAPI is the secondary source, a free generic rate feed.
type ExchangeRateAPI struct {
	URL    string
	client *retryablehttp.Client
}

func NewExchangeRateAPI(timeout time.Duration) *ExchangeRateAPI {
	return &ExchangeRateAPI{
		URL:    exchangeRateAPIURL,
		client: newRateClient(timeout),
	}
}

func (e *ExchangeRateAPI) Name() string { return "ExchangeRate-API" }

func (e *ExchangeRateAPI) Fetch(ctx context.Context) (float64, error) {
	var payload struct {
		Rates map[string]float64 `json:"rates"`
	}
	if err := fetchJSON(ctx, e.client, e.URL, &payload); err != nil {
		return 0, fmt.Errorf("exchangerate-api: %w", err)
	}
	rate, ok := payload.Rates["CAD"]
	if !ok {
		return 0, fmt.Errorf("exchangerate-api: no CAD rate in response")
	}
	return rate, nil
}
