package messenger_test

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/menotliam/Chatbot-AI-4Enterprise/messenger"
)

func sign(secret string, body []byte) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(body)
	return "sha256=" + hex.EncodeToString(mac.Sum(nil))
}

func TestVerifySignature(t *testing.T) {
	secret := "app-secret"
	body := []byte(`{"object":"page","entry":[]}`)

	tests := []struct {
		name      string
		appSecret string
		body      []byte
		header    string
		want      bool
	}{
		{
			name:      "valid signature",
			appSecret: secret,
			body:      body,
			header:    sign(secret, body),
			want:      true,
		},
		{
			name:      "wrong secret",
			appSecret: "other-secret",
			body:      body,
			header:    sign(secret, body),
			want:      false,
		},
		{
			name:      "tampered body",
			appSecret: secret,
			body:      []byte(`{"object":"page","entry":[{}]}`),
			header:    sign(secret, body),
			want:      false,
		},
		{
			name:      "no header skips the check",
			appSecret: secret,
			body:      body,
			header:    "",
			want:      true,
		},
		{
			name:      "no secret configured skips the check",
			appSecret: "",
			body:      body,
			header:    sign(secret, body),
			want:      true,
		},
		{
			name:      "malformed header",
			appSecret: secret,
			body:      body,
			header:    "not-a-signature",
			want:      false,
		},
		{
			name:      "empty digest",
			appSecret: secret,
			body:      body,
			header:    "sha256=",
			want:      false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, messenger.VerifySignature(tt.appSecret, tt.body, tt.header))
		})
	}
}
