// Package platform resolves a target platform/architecture pair from an
// inbound request and maps it to the canonical storage key for a binary.
package platform

import "strings"

// Platforms lists the operating systems binaries are published for.
var Platforms = []string{"linux", "darwin", "windows"}

// Architectures lists the CPU families binaries are published for.
var Architectures = []string{"amd64", "arm64"}

const (
	defaultPlatform = "linux"
	defaultArch     = "amd64"

	// keyPrefix is the shared prefix of every binary object key.
	keyPrefix = "appinit"
)

type sniffRule struct {
	value    string
	keywords []string
}

// platformRules are checked in order: darwin first, since "darwin" itself
// contains the "win" keyword.
var platformRules = []sniffRule{
	{"darwin", []string{"darwin", "mac"}},
	{"windows", []string{"windows", "win"}},
}

var archRules = []sniffRule{
	{"arm64", []string{"arm64", "aarch64"}},
}

// Resolve returns the platform and architecture for a request. Explicit,
// non-empty query parameters win; any missing field is inferred from the
// User-Agent header, falling back to linux/amd64. Values are not validated
// against the known sets: an unknown value produces a key that misses in
// storage, which surfaces as a not-found downstream.
func Resolve(platformParam, archParam, userAgent string) (string, string) {
	p, a := platformParam, archParam
	if p == "" || a == "" {
		ua := strings.ToLower(userAgent)
		if p == "" {
			p = sniff(ua, platformRules, defaultPlatform)
		}
		if a == "" {
			a = sniff(ua, archRules, defaultArch)
		}
	}
	return p, a
}

func sniff(ua string, rules []sniffRule, fallback string) string {
	for _, r := range rules {
		for _, s := range r.keywords {
			if strings.Contains(ua, s) {
				return r.value
			}
		}
	}
	return fallback
}

// BinaryKey returns the storage key for a platform/architecture pair:
// "appinit-{platform}-{arch}", with ".exe" appended for windows.
func BinaryKey(platform, arch string) string {
	key := keyPrefix + "-" + platform + "-" + arch
	if platform == "windows" {
		key += ".exe"
	}
	return key
}
