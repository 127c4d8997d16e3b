package cli

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/vectorshift/integrations-cli/internal/core/domain"
)

func TestPrintDataset_Nil(t *testing.T) {
	var buf bytes.Buffer

	printDataset(&buf, nil)

	assert.Equal(t, "No data loaded.\n", buf.String())
}

func TestPrintCredential_Indents(t *testing.T) {
	var buf bytes.Buffer

	printCredential(&buf, domain.NewCredential([]byte(`{"a":1,"b":{"c":2}}`)))

	assert.Contains(t, buf.String(), "\n  \"a\": 1,")
	assert.NotContains(t, buf.String(), "\x1b[")
}

func TestIsTerminal_NonFile(t *testing.T) {
	assert.False(t, isTerminal(&bytes.Buffer{}))
}
