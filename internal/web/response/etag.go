package response

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// weakETag derives a weak validator from a rendered body. Reports are
// deterministic for an unchanged catalogue and store, so equal bodies mean
// equal content.
func weakETag(body []byte) string {
	sum := sha256.Sum256(body)
	return `W/"` + hex.EncodeToString(sum[:16]) + `"`
}

// matchesIfNoneMatch reports whether header lists etag, comparing weakly.
func matchesIfNoneMatch(header, etag string) bool {
	if header == "" {
		return false
	}
	if strings.TrimSpace(header) == "*" {
		return true
	}
	want := strings.TrimPrefix(etag, "W/")
	for _, candidate := range strings.Split(header, ",") {
		if strings.TrimPrefix(strings.TrimSpace(candidate), "W/") == want {
			return true
		}
	}
	return false
}
