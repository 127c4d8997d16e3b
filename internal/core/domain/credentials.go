package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// redacted is what a Credential renders as in any formatted output.
const redacted = "[REDACTED]"

// Credential is the opaque authorization payload returned by the backend
// after OAuth completes. Its shape is provider-defined; only the backend
// load endpoint interprets it.
//
// Formatting a Credential with fmt never reveals its contents, so it is
// safe to pass through error wrapping and logging by accident.
type Credential struct {
	raw json.RawMessage
}

// NewCredential wraps a raw JSON payload. The bytes are copied.
func NewCredential(raw []byte) Credential {
	if len(raw) == 0 {
		return Credential{}
	}
	b := make([]byte, len(raw))
	copy(b, raw)
	return Credential{raw: b}
}

// IsEmpty returns true when the payload carries nothing usable:
// no bytes, null, an empty string, an empty object or an empty array.
func (c Credential) IsEmpty() bool {
	trimmed := bytes.TrimSpace(c.raw)
	if len(trimmed) == 0 {
		return true
	}
	var compact bytes.Buffer
	if err := json.Compact(&compact, trimmed); err != nil {
		return false
	}
	switch compact.String() {
	case "null", `""`, "{}", "[]":
		return true
	}
	return false
}

// JSON returns the compact serialized payload sent to the load endpoint.
// Invalid JSON is returned as-is.
func (c Credential) JSON() string {
	var compact bytes.Buffer
	if err := json.Compact(&compact, c.raw); err != nil {
		return string(c.raw)
	}
	return compact.String()
}

// Raw returns a copy of the underlying bytes.
func (c Credential) Raw() []byte {
	if c.raw == nil {
		return nil
	}
	b := make([]byte, len(c.raw))
	copy(b, c.raw)
	return b
}

// String implements fmt.Stringer without exposing the payload.
func (c Credential) String() string {
	return redacted
}

// GoString implements fmt.GoStringer without exposing the payload.
func (c Credential) GoString() string {
	return "domain.Credential{" + redacted + "}"
}

// Format implements fmt.Formatter so every verb, including %v and %+v, is redacted.
func (c Credential) Format(f fmt.State, verb rune) {
	if verb == 'v' && f.Flag('#') {
		_, _ = f.Write([]byte(c.GoString()))
		return
	}
	_, _ = f.Write([]byte(redacted))
}

// MarshalJSON emits the payload unchanged so it can be forwarded to the backend.
func (c Credential) MarshalJSON() ([]byte, error) {
	if len(c.raw) == 0 {
		return []byte("null"), nil
	}
	return c.Raw(), nil
}

// UnmarshalJSON stores the payload verbatim.
func (c *Credential) UnmarshalJSON(data []byte) error {
	*c = NewCredential(data)
	return nil
}
