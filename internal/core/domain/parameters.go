package domain

// IntegrationParameters is the single slot holding the connected provider and
// its credential. It is owned by the registry and written only through Merge
// and Reset, which keeps the invariant that Credentials is set iff Type is set.
type IntegrationParameters struct {
	provider    ProviderName
	credentials Credential

	// Extra holds additional integration parameters accumulated by the form.
	// Merge and Reset leave it untouched.
	Extra map[string]string
}

// Merge records a successful connection, replacing type and credentials and
// preserving every other key.
func (p *IntegrationParameters) Merge(provider ProviderName, cred Credential) {
	if cred.IsEmpty() {
		return
	}
	p.provider = provider
	p.credentials = cred
}

// Reset clears type and credentials together.
func (p *IntegrationParameters) Reset() {
	p.provider = ""
	p.credentials = Credential{}
}

// HasCredentials returns true when a credential is set. This is exactly the
// condition under which the data loader is available.
func (p IntegrationParameters) HasCredentials() bool {
	return p.provider != "" && !p.credentials.IsEmpty()
}

// Type returns the connected provider and whether one is set.
func (p IntegrationParameters) Type() (ProviderName, bool) {
	return p.provider, p.provider != ""
}

// Credentials returns the stored credential and whether one is set.
func (p IntegrationParameters) Credentials() (Credential, bool) {
	return p.credentials, p.HasCredentials()
}
