package domain

import (
	"encoding/json"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCredential_IsEmpty(t *testing.T) {
	tests := []struct {
		raw   string
		empty bool
	}{
		{``, true},
		{`   `, true},
		{`null`, true},
		{`""`, true},
		{`{}`, true},
		{`{ }`, true},
		{`[]`, true},
		{`{"token":"abc"}`, false},
		{`"abc"`, false},
		{`0`, false},
		{`not json`, false},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			assert.Equal(t, tt.empty, NewCredential([]byte(tt.raw)).IsEmpty())
		})
	}
	assert.True(t, Credential{}.IsEmpty())
}

func TestCredential_JSON(t *testing.T) {
	cred := NewCredential([]byte("{\n  \"token\": \"abc\",\n  \"expires_in\": 3600\n}"))
	assert.Equal(t, `{"token":"abc","expires_in":3600}`, cred.JSON())
	assert.Equal(t, "oops", NewCredential([]byte("oops")).JSON())
}

func TestCredential_CopiesInput(t *testing.T) {
	raw := []byte(`{"token":"abc"}`)
	cred := NewCredential(raw)
	raw[10] = 'X'
	assert.JSONEq(t, `{"token":"abc"}`, cred.JSON())

	out := cred.Raw()
	out[10] = 'Y'
	assert.JSONEq(t, `{"token":"abc"}`, cred.JSON())
}

func TestCredential_NeverFormatted(t *testing.T) {
	cred := NewCredential([]byte(`{"token":"super-secret"}`))
	holder := struct{ Cred Credential }{cred}

	for _, out := range []string{
		cred.String(),
		fmt.Sprint(cred),
		fmt.Sprintf("%v", cred),
		fmt.Sprintf("%+v", cred),
		fmt.Sprintf("%#v", cred),
		fmt.Sprintf("%s", cred),
		fmt.Sprintf("%q", cred),
		fmt.Sprintf("%x", cred),
		fmt.Sprintf("%+v", holder),
		fmt.Errorf("wrapped: %v", cred).Error(),
	} {
		assert.NotContains(t, out, "super-secret")
		assert.Contains(t, out, "[REDACTED]")
	}
}

func TestCredential_JSONRoundTripIsVerbatim(t *testing.T) {
	type form struct {
		Credentials Credential `json:"credentials"`
	}

	var f form
	require.NoError(t, json.Unmarshal([]byte(`{"credentials":{"token":"abc","n":1}}`), &f))
	assert.False(t, f.Credentials.IsEmpty())

	out, err := json.Marshal(f)
	require.NoError(t, err)
	assert.JSONEq(t, `{"credentials":{"token":"abc","n":1}}`, string(out))

	out, err = json.Marshal(form{})
	require.NoError(t, err)
	assert.JSONEq(t, `{"credentials":null}`, string(out))
}
