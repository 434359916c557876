package companies

import (
	"math/rand/v2"
	"regexp"
	"strings"
)

const (
	idPrefix         = "COMP_"
	maxIDLength      = 50
	maxTokenLength   = 25
	suffixLength     = 8
	suffixAlphabet   = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	folderPathPrefix = "documents/"

	blankNameToken = "UNKNOWN"
	emptyNameToken = "COMPANY"
)

var (
	nonIDChars      = regexp.MustCompile(`[^A-Z0-9_]`)
	nonFolderChars  = regexp.MustCompile(`[^a-z0-9_]`)
	repeatedUnderln = regexp.MustCompile(`_{2,}`)

	separatorReplacer = strings.NewReplacer(" ", "_", "-", "_", ".", "_")
	idReplacer        = strings.NewReplacer(" ", "_", "-", "_", ".", "_", "&", "_AND_", "'", "")
)

// SanitizeName turns a free-text company name into the uppercase token used in IDs.
// The result matches ^[A-Z0-9_]{1,25}$.
func SanitizeName(name string) string {
	if strings.TrimSpace(name) == "" {
		return blankNameToken
	}

	cleaned := idReplacer.Replace(strings.ToUpper(name))
	cleaned = nonIDChars.ReplaceAllString(cleaned, "")
	cleaned = repeatedUnderln.ReplaceAllString(cleaned, "_")
	cleaned = strings.Trim(cleaned, "_")

	// Only ASCII survives the filter above, so byte truncation is safe.
	if len(cleaned) > maxTokenLength {
		cleaned = strings.TrimRight(cleaned[:maxTokenLength], "_")
	}
	if cleaned == "" {
		return emptyNameToken
	}
	return cleaned
}

// GenerateID returns COMP_{TOKEN}_{SUFFIX}, at most 50 characters, with an
// 8 character random suffix drawn from [A-Z0-9].
func GenerateID(name string) string {
	token := SanitizeName(name)
	suffix := randomSuffix()

	id := idPrefix + token + "_" + suffix
	if len(id) > maxIDLength {
		maxToken := maxIDLength - 14
		if len(token) > maxToken {
			token = strings.TrimRight(token[:maxToken], "_")
		}
		id = idPrefix + token + "_" + suffix
	}
	return id
}

// FolderPath returns documents/{lowercase_token}. Names with no usable
// characters yield "documents/".
func FolderPath(name string) string {
	cleaned := separatorReplacer.Replace(strings.ToLower(name))
	cleaned = nonFolderChars.ReplaceAllString(cleaned, "")
	cleaned = repeatedUnderln.ReplaceAllString(cleaned, "_")
	cleaned = strings.Trim(cleaned, "_")
	return folderPathPrefix + cleaned
}

// randomSuffix uses the process-wide math/rand/v2 source, which is seeded once
// and safe for concurrent use.
func randomSuffix() string {
	b := make([]byte, suffixLength)
	for i := range b {
		b[i] = suffixAlphabet[rand.IntN(len(suffixAlphabet))]
	}
	return string(b)
}
