package provider

import (
	"os"
	"strings"
)

// ProviderType identifies which upstream data source to use.
type ProviderType string

const (
	ProviderDataGov     ProviderType = "datagov"
	ProviderNregaPortal ProviderType = "nregaportal"
)

// Config holds configuration for the MGNREGA data provider.
type Config struct {
	// Provider type: "datagov" or "nregaportal"
	Provider ProviderType

	// data.gov.in-specific config. An empty URL puts the system in a degraded,
	// fetch-disabled mode rather than failing startup.
	DataGovURL string
	DataGovKey string

	// nrega.nic.in portal config
	NregaPortalURL string
}

// DefaultNregaPortalURL is the default report endpoint on the NREGA portal.
const DefaultNregaPortalURL = "https://nrega.nic.in/netnrega/api/reports"

// LoadFromEnv loads provider configuration from environment variables.
//
// Environment variables:
//   - MGNREGA_PROVIDER: "datagov" or "nregaportal" (default: "datagov")
//   - DATA_GOV_API_URL: resource URL on data.gov.in (empty = fetch disabled)
//   - DATA_GOV_API_KEY: API key for data.gov.in
//   - NREGA_PORTAL_URL: report endpoint on nrega.nic.in (has a default)
func LoadFromEnv() Config {
	providerStr := strings.ToLower(strings.TrimSpace(os.Getenv("MGNREGA_PROVIDER")))

	var p ProviderType
	switch providerStr {
	case "nregaportal":
		p = ProviderNregaPortal
	default:
		p = ProviderDataGov
	}

	portalURL := strings.TrimSpace(os.Getenv("NREGA_PORTAL_URL"))
	if portalURL == "" {
		portalURL = DefaultNregaPortalURL
	}

	return Config{
		Provider:       p,
		DataGovURL:     strings.TrimSpace(os.Getenv("DATA_GOV_API_URL")),
		DataGovKey:     os.Getenv("DATA_GOV_API_KEY"),
		NregaPortalURL: portalURL,
	}
}

// Validate checks that the configuration is usable for the selected provider.
// A missing data.gov.in URL is deliberately not an error: the client runs in a
// degraded mode and returns empty result sets.
func (c Config) Validate() error {
	switch c.Provider {
	case ProviderDataGov:
		if c.DataGovURL != "" && c.DataGovKey == "" {
			return ErrMissingDataGovKey
		}
	case ProviderNregaPortal:
		// portal endpoint is public; nothing to validate beyond the default URL
	}
	return nil
}
