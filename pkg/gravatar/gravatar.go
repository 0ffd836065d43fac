package gravatar

import (
	"crypto/md5"
	"fmt"
	"strings"
)

// URL builds the default avatar for an email address: 200px, PG-rated,
// mystery-man fallback when the address has no gravatar.
func URL(email string) string {
	normalized := strings.ToLower(strings.TrimSpace(email))
	hash := md5.Sum([]byte(normalized))
	return fmt.Sprintf("https://gravatar.com/avatar/%x?s=200&r=pg&d=mm", hash)
}
