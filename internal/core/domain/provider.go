package domain

import (
	"fmt"
	"strings"
)

// ProviderName identifies a third-party data source that supports OAuth.
// The value is the display name shown to users.
type ProviderName string

const (
	// ProviderAirtable is the Airtable integration.
	ProviderAirtable ProviderName = "Airtable"
	// ProviderNotion is the Notion integration.
	ProviderNotion ProviderName = "Notion"
	// ProviderHubSpot is the HubSpot integration.
	ProviderHubSpot ProviderName = "HubSpot"
)

// providerSlugs maps each provider to the endpoint path segment used by the backend.
var providerSlugs = map[ProviderName]string{
	ProviderAirtable: "airtable",
	ProviderNotion:   "notion",
	ProviderHubSpot:  "hubspot",
}

// AllProviders returns the supported providers in display order.
func AllProviders() []ProviderName {
	return []ProviderName{ProviderAirtable, ProviderNotion, ProviderHubSpot}
}

// Slug returns the backend endpoint segment for the provider.
// Returns an empty string for unknown providers.
func (p ProviderName) Slug() string {
	return providerSlugs[p]
}

// IsValid returns true if the provider is one of the supported integrations.
func (p ProviderName) IsValid() bool {
	_, ok := providerSlugs[p]
	return ok
}

// String returns the display name.
func (p ProviderName) String() string {
	return string(p)
}

// ParseProviderName resolves a display name or slug, case-insensitively.
func ParseProviderName(s string) (ProviderName, error) {
	needle := strings.ToLower(strings.TrimSpace(s))
	for name, slug := range providerSlugs {
		if needle == slug || needle == strings.ToLower(string(name)) {
			return name, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownProvider, s)
}
