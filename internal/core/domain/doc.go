// Package domain defines the core entities of the integrations client.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - ProviderName: A supported third-party data source
//   - SessionContext: The user and organisation scoping an authorization
//   - SessionState: The authorization lifecycle state
//   - Credential: The opaque payload returned after OAuth
//   - IntegrationParameters: The single connected provider slot
//   - LoadedDataset: A table or raw preview of loaded objects
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
