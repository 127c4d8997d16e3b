package domain

import (
	"fmt"
	"strings"
)

// Default session identifiers, matching the values the form is pre-filled with.
const (
	DefaultUserID = "TestUser"
	DefaultOrgID  = "TestOrg"
)

// SessionContext scopes an authorization attempt to a user and organisation.
// It is always passed by value so an in-flight flow keeps the values it
// started with.
type SessionContext struct {
	// UserID is sent to the backend as the user_id form field.
	UserID string
	// OrgID is sent to the backend as the org_id form field.
	OrgID string
}

// DefaultSessionContext returns the pre-filled user and organisation.
func DefaultSessionContext() SessionContext {
	return SessionContext{UserID: DefaultUserID, OrgID: DefaultOrgID}
}

// WithField returns a copy with the named field replaced.
// Accepted field names are "user", "user_id", "org" and "org_id".
// Values are not validated.
func (c SessionContext) WithField(field, value string) (SessionContext, error) {
	switch strings.ToLower(strings.TrimSpace(field)) {
	case "user", "user_id":
		c.UserID = value
	case "org", "org_id", "organization":
		c.OrgID = value
	default:
		return c, fmt.Errorf("%w: unknown session field %q", ErrInvalidInput, field)
	}
	return c, nil
}
