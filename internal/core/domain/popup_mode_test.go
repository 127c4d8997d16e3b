package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePopupMode(t *testing.T) {
	tests := []struct {
		input string
		want  PopupMode
	}{
		{"", PopupModeBrowser},
		{"browser", PopupModeBrowser},
		{"Command", PopupModeCommand},
		{" manual ", PopupModeManual},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParsePopupMode(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParsePopupMode_Unknown(t *testing.T) {
	_, err := ParsePopupMode("window")

	assert.ErrorIs(t, err, ErrInvalidInput)
	assert.ErrorContains(t, err, `"window"`)
}
