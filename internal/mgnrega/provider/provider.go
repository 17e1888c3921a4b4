package provider

import (
	"context"
	"errors"
	"fmt"
)

// Common errors
var (
	ErrMissingDataGovKey = errors.New("DATA_GOV_API_KEY environment variable is required for datagov provider")
	ErrUnknownProvider   = errors.New("unknown provider type")

	// ErrRateLimited is returned when the upstream answers 429. Callers treat it
	// differently from a generic failure: back off until the next scheduled pass
	// instead of retrying.
	ErrRateLimited = errors.New("upstream rate limited")
)

// ReportProvider is the interface all upstream MGNREGA data sources implement.
// It abstracts the differences between the data.gov.in API, the nrega.nic.in
// portal, and any future sources.
type ReportProvider interface {
	// Name returns the provider name for logging purposes.
	Name() string

	// FetchPage fetches one page of raw records. The payload shape is not
	// guaranteed by any of the government sources, so the decoded JSON is
	// returned as-is and the caller locates the records array.
	FetchPage(ctx context.Context, page int) (any, error)

	// HealthCheck verifies the provider can reach its data source.
	HealthCheck(ctx context.Context) error
}

// providerRegistry holds registered provider constructors, keyed by type.
// New providers register themselves from init() in their own package.
var providerRegistry = make(map[ProviderType]func(Config) (ReportProvider, error))

// RegisterProvider registers a provider constructor for a given provider type.
func RegisterProvider(providerType ProviderType, constructor func(Config) (ReportProvider, error)) {
	providerRegistry[providerType] = constructor
}

// NewProvider creates a ReportProvider based on the configuration.
func NewProvider(cfg Config) (ReportProvider, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	constructor, ok := providerRegistry[cfg.Provider]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownProvider, cfg.Provider)
	}

	return constructor(cfg)
}
