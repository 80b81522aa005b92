package payments

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVerifySignature(t *testing.T) {
	secret := []byte("whsec_test")
	body := []byte(`{"event":"charge.success","data":{"reference":"ref-1","amount":250000}}`)
	valid := Sign(secret, body)

	tests := []struct {
		name      string
		secret    []byte
		body      []byte
		signature string
		wantErr   bool
	}{
		{"valid", secret, body, valid, false},
		{"valid upper case hex", secret, body, strings.ToUpper(valid), false},
		{"tampered body", secret, append([]byte(" "), body...), valid, true},
		{"wrong secret", []byte("other"), body, valid, true},
		{"empty signature", secret, body, "", true},
		{"not hex", secret, body, "zz" + valid[2:], true},
		{"truncated", secret, body, valid[:64], true},
		{"empty secret", nil, body, Sign(nil, body), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := VerifySignature(tt.secret, tt.body, tt.signature)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrSignatureMismatch)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestSign_IsHexSHA512(t *testing.T) {
	sig := Sign([]byte("k"), []byte("body"))
	assert.Len(t, sig, 128)
	assert.Equal(t, sig, Sign([]byte("k"), []byte("body")))
}
