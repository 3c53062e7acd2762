// Package webhook verifies provider webhook signatures (Svix scheme).
package webhook

import (
    "crypto/hmac"
    "crypto/sha256"
    "encoding/base64"
    "strings"
)

// VerifySignature checks an inbound webhook payload against the shared
// secret. The header carries one or more space-separated "version,signature"
// pairs; any v1 signature matching the HMAC-SHA256 of the raw payload is
// accepted. An empty secret disables verification entirely, which is the
// intended permissive fallback for development environments.
func VerifySignature(payload []byte, signatureHeader, secret string) bool {
    if secret == "" {
        return true
    }

    mac := hmac.New(sha256.New, []byte(secret))
    mac.Write(payload)
    expected := base64.StdEncoding.EncodeToString(mac.Sum(nil))

    for _, pair := range strings.Fields(signatureHeader) {
        version, signature, ok := strings.Cut(pair, ",")
        if !ok || version != "v1" {
            continue
        }
        if hmac.Equal([]byte(signature), []byte(expected)) {
            return true
        }
    }
    return false
}
