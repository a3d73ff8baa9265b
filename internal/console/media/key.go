// Package media derives deterministic storage keys for service photos and
// registers photo records against the backend. Byte upload to the bucket is
// out of scope; callers are expected to place the object at the derived key
// before registering it.
package media

import (
	"path/filepath"
	"strings"
	"time"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// stripMarks decomposes characters and removes combining marks, turning
// "Café" into "Cafe".
var stripMarks = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Slugify lowercases s, strips diacritics, collapses every run of
// non-alphanumeric characters to a single hyphen, and trims leading and
// trailing hyphens.
func Slugify(s string) string {
	folded, _, err := transform.String(stripMarks, s)
	if err != nil {
		folded = s
	}
	folded = strings.ToLower(folded)

	var b strings.Builder
	pendingHyphen := false
	for _, r := range folded {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			if pendingHyphen && b.Len() > 0 {
				b.WriteByte('-')
			}
			pendingHyphen = false
			b.WriteRune(r)
		} else {
			pendingHyphen = true
		}
	}
	return b.String()
}

// DeriveKey produces the storage key for an uploaded asset tied to a service:
// {serviceID}/{timestamp}-{slug}.{ext}, where the timestamp is RFC 3339 with
// ':' and '.' replaced by '-'. The key is deterministic for identical inputs.
// Resolution is to the second: two uploads of the same slug within the same
// second collide, which is a documented limitation rather than a guarantee to
// strengthen silently.
func DeriveKey(serviceID, originalFilename string, ts time.Time) string {
	base := originalFilename
	ext := "jpg"
	if e := filepath.Ext(originalFilename); e != "" {
		base = strings.TrimSuffix(originalFilename, e)
		ext = strings.ToLower(strings.TrimPrefix(e, "."))
	}

	stamp := ts.UTC().Truncate(time.Second).Format(time.RFC3339)
	stamp = strings.ReplaceAll(stamp, ":", "-")

	return serviceID + "/" + stamp + "-" + Slugify(base) + "." + ext
}

// DeriveURL joins the bucket base URL with a derived key.
func DeriveURL(bucketBaseURL, key string) string {
	return strings.TrimRight(bucketBaseURL, "/") + "/" + key
}
