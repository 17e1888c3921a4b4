package datagov

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/DistrictPulse/DP-Backend/internal/mgnrega/provider"
	"golang.org/x/time/rate"
)

const (
	// PageSize is the number of records requested per page.
	PageSize = 1000

	// requestTimeout bounds a single upstream call. data.gov.in can hang for a
	// long time on large resources before answering.
	requestTimeout = 25 * time.Second
)

// Client is an HTTP client for a data.gov.in resource endpoint.
type Client struct {
	endpoint   string
	apiKey     string
	httpClient *http.Client
	limiter    *rate.Limiter
}

// NewClient creates a new data.gov.in API client. An empty endpoint is allowed
// and puts the client in a degraded mode where every fetch returns an empty
// record set.
func NewClient(endpoint, apiKey string) *Client {
	return &Client{
		endpoint: endpoint,
		apiKey:   apiKey,
		httpClient: &http.Client{
			Timeout: requestTimeout,
		},
		// data.gov.in throttles aggressively on free keys; one request per
		// second with a small burst keeps us under the documented ceiling.
		limiter: rate.NewLimiter(rate.Every(time.Second), 3),
	}
}

func init() {
	provider.RegisterProvider(provider.ProviderDataGov, func(cfg provider.Config) (provider.ReportProvider, error) {
		return NewClient(cfg.DataGovURL, cfg.DataGovKey), nil
	})
}

// Name returns the provider name for logging.
func (c *Client) Name() string { return "datagov" }

// FetchPage fetches one page of records. The response payload shape varies
// across datasets, so the decoded JSON is returned as-is for the caller to
// inspect. A 429 response surfaces as provider.ErrRateLimited.
func (c *Client) FetchPage(ctx context.Context, page int) (any, error) {
	if c.endpoint == "" {
		// No URL configured: run degraded instead of failing the pass.
		provider.LogError("datagov", "fetch", fmt.Errorf("DATA_GOV_API_URL not set, returning empty dataset"))
		return map[string]any{"records": []any{}}, nil
	}

	if page < 1 {
		page = 1
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter: %w", err)
	}

	params := url.Values{}
	params.Set("format", "json")
	params.Set("limit", strconv.Itoa(PageSize))
	params.Set("offset", strconv.Itoa((page-1)*PageSize))

	// Some government APIs expect api-key, others api_key. Sending both is
	// harmless and spares us per-dataset configuration.
	if c.apiKey != "" {
		params.Set("api-key", c.apiKey)
		params.Set("api_key", c.apiKey)
	}

	fullURL := fmt.Sprintf("%s?%s", c.endpoint, params.Encode())

	start := time.Now()
	provider.LogRequest("datagov", "GET", c.endpoint, map[string]interface{}{
		"page":   page,
		"offset": (page - 1) * PageSize,
	})

	req, err := http.NewRequestWithContext(ctx, "GET", fullURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", "MGNREGADistrictApp/1.0")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		provider.LogError("datagov", "fetch", err)
		return nil, fmt.Errorf("datagov request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusTooManyRequests {
		provider.LogError("datagov", "fetch", provider.ErrRateLimited)
		return nil, provider.ErrRateLimited
	}

	if resp.StatusCode != http.StatusOK {
		err := fmt.Errorf("datagov status %d", resp.StatusCode)
		provider.LogError("datagov", "fetch", err)
		return nil, err
	}

	var payload any
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		provider.LogError("datagov", "decode", err)
		return nil, fmt.Errorf("decode datagov: %w", err)
	}

	provider.LogResponse("datagov", resp.StatusCode, time.Since(start), -1)
	return payload, nil
}

// HealthCheck verifies the endpoint answers with a minimal request.
func (c *Client) HealthCheck(ctx context.Context) error {
	if c.endpoint == "" {
		return nil // degraded mode is a valid state
	}

	params := url.Values{}
	params.Set("format", "json")
	params.Set("limit", "1")
	if c.apiKey != "" {
		params.Set("api-key", c.apiKey)
		params.Set("api_key", c.apiKey)
	}

	fullURL := fmt.Sprintf("%s?%s", c.endpoint, params.Encode())

	req, err := http.NewRequestWithContext(ctx, "GET", fullURL, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("health check request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("health check failed: status %d", resp.StatusCode)
	}

	return nil
}
