package httpclient

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"cryptoquote/internal/domain"
)

const coinGeckoKeyHeader = "x-cg-demo-api-key"

// CoinGeckoClient reads spot prices from the CoinGecko simple price endpoint.
type CoinGeckoClient struct {
	http    *http.Client
	baseURL string
	apiKey  string
}

func NewCoinGeckoClient(httpClient *http.Client, baseURL, apiKey string) *CoinGeckoClient {
	return &CoinGeckoClient{http: httpClient, baseURL: baseURL, apiKey: apiKey}
}

// GetPrices returns the price of each provider id in vsCurrency. Ids the provider does not
// know are simply absent from the result.
func (c *CoinGeckoClient) GetPrices(ctx context.Context, ids []string, vsCurrency string) (map[string]float64, error) {
	u, err := url.Parse(c.baseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse base URL: %w", err)
	}
	vs := strings.ToLower(vsCurrency)

	u.Path = strings.TrimSuffix(u.Path, "/") + "/simple/price"
	q := u.Query()
	q.Set("ids", strings.Join(ids, ","))
	q.Set("vs_currencies", vs)
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create price request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if c.apiKey != "" {
		req.Header.Set(coinGeckoKeyHeader, c.apiKey)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to execute price request: %w", domain.ErrUpstreamUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("%w: unexpected status code %d from price provider", domain.ErrUpstreamUnavailable, resp.StatusCode)
	}

	var body map[string]map[string]float64
	if err = json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("%w: failed to decode price response: %w", domain.ErrUpstreamMalformed, err)
	}

	prices := make(map[string]float64, len(body))
	for id, quotes := range body {
		if p, ok := quotes[vs]; ok {
			prices[id] = p
		}
	}
	return prices, nil
}
