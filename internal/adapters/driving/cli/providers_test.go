package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProvidersCmd_ListsAll(t *testing.T) {
	out, err := execute(t, "", "providers")

	requireOutput(t, out, err,
		"Airtable", "/integrations/airtable",
		"Notion", "/integrations/notion",
		"HubSpot", "/integrations/hubspot",
	)
}

func TestProvidersCmd_RejectsArgs(t *testing.T) {
	_, err := execute(t, "", "providers", "extra")

	assert.Error(t, err)
}
