package utils

import (
	"crypto/rand"
	"math/big"
	"regexp"
	"strings"
)

const base36 = "0123456789abcdefghijklmnopqrstuvwxyz"

var (
	nonSlugChars = regexp.MustCompile(`[^a-z0-9\s]`)
	whitespace   = regexp.MustCompile(`\s+`)
)

// GenerateRandomString returns n random base-36 characters.
func GenerateRandomString(n int) string {
	b := make([]byte, n)
	max := big.NewInt(int64(len(base36)))
	for i := range b {
		idx, err := rand.Int(rand.Reader, max)
		if err != nil {
			panic("failed to read random bytes")
		}
		b[i] = base36[idx.Int64()]
	}
	return string(b)
}

// Slugify lowercases name, strips everything but letters, digits and spaces,
// and joins the words with hyphens.
func Slugify(name string) string {
	s := strings.ToLower(name)
	s = nonSlugChars.ReplaceAllString(s, "")
	s = strings.TrimSpace(s)
	return whitespace.ReplaceAllString(s, "-")
}

// CompanySlug appends a random suffix so equal names never collide and no
// uniqueness pre-check is needed.
func CompanySlug(name string) string {
	suffix := GenerateRandomString(6)
	base := Slugify(name)
	if base == "" {
		return suffix
	}
	return base + "-" + suffix
}
