package nregaportal

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/DistrictPulse/DP-Backend/internal/mgnrega/provider"
)

// requestTimeout bounds a single portal call. The portal is slower than
// data.gov.in but individual district reports are small.
const requestTimeout = 15 * time.Second

// Client fetches district reports from the nrega.nic.in portal API. Unlike
// data.gov.in there is no bulk endpoint: the portal serves one report per
// (state, district, financial year), so a "page" here is the assembled set of
// reports for every district in the code table.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a new NREGA portal client.
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: requestTimeout,
		},
	}
}

func init() {
	provider.RegisterProvider(provider.ProviderNregaPortal, func(cfg provider.Config) (provider.ReportProvider, error) {
		return NewClient(cfg.NregaPortalURL), nil
	})
}

// Name returns the provider name for logging.
func (c *Client) Name() string { return "nregaportal" }

// FinYear formats a starting calendar year as the portal's financial-year
// string, e.g. 2024 -> "2024-25".
func FinYear(year int) string {
	return fmt.Sprintf("%d-%02d", year, (year+1)%100)
}

// FetchPage assembles one page of records by fetching the current financial
// year's report for every district in the code table. The portal has no
// pagination, so pages past the first are empty.
func (c *Client) FetchPage(ctx context.Context, page int) (any, error) {
	if page > 1 {
		return map[string]any{"records": []any{}}, nil
	}

	year := currentFinancialYear(time.Now())
	records := make([]any, 0, len(DistrictCodes))

	start := time.Now()
	provider.LogRequest("nregaportal", "GET", c.baseURL, map[string]interface{}{
		"fin_year":  FinYear(year),
		"districts": len(DistrictCodes),
	})

	for district, code := range DistrictCodes {
		rec, err := c.fetchDistrict(ctx, district, code, year)
		if err != nil {
			// One unreachable district report should not sink the page; the
			// sync pass accounts for the rest.
			provider.LogError("nregaportal", "fetch "+district, err)
			continue
		}
		if rec != nil {
			records = append(records, rec)
		}
	}

	provider.LogResponse("nregaportal", http.StatusOK, time.Since(start), len(records))
	return map[string]any{"records": records}, nil
}

func (c *Client) fetchDistrict(ctx context.Context, district, districtCode string, year int) (map[string]any, error) {
	params := url.Values{}
	params.Set("state_code", districtState(districtCode))
	params.Set("district_code", districtCode)
	params.Set("fin_year", FinYear(year))
	params.Set("format", "json")

	fullURL := fmt.Sprintf("%s/district_report.json?%s", c.baseURL, params.Encode())

	req, err := http.NewRequestWithContext(ctx, "GET", fullURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", "MGNREGADistrictApp/1.0")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("portal request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusTooManyRequests {
		return nil, provider.ErrRateLimited
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("portal status %d", resp.StatusCode)
	}

	var payload map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decode portal response: %w", err)
	}

	// The portal omits location names from its per-district reports; stamp
	// them in so the normalizer keys the record correctly.
	payload["district_name"] = district
	payload["fin_year"] = FinYear(year)
	return payload, nil
}

// currentFinancialYear returns the starting year of the Indian financial year
// (April-March) containing t.
func currentFinancialYear(t time.Time) int {
	if t.Month() < time.April {
		return t.Year() - 1
	}
	return t.Year()
}

// HealthCheck probes the portal with a single small district report.
func (c *Client) HealthCheck(ctx context.Context) error {
	_, err := c.fetchDistrict(ctx, "Bhopal", DistrictCodes["Bhopal"], currentFinancialYear(time.Now()))
	return err
}
