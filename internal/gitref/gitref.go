// Package gitref recognizes and normalizes repository references.
//
// A reference is either a short form ("owner/repo"), a full clone URL, an
// scp-style address, or a local repository path. Recognition is deliberately
// permissive: it decides "treat this input as something to clone", not
// whether the clone will succeed.
package gitref

import (
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

// DefaultHost is the host short-form references expand against.
const DefaultHost = "github.com"

// shortFormRegex matches "owner/repo" where each segment is alphanumerics,
// hyphens, dots, or underscores.
var shortFormRegex = regexp.MustCompile(`(?i)^([a-z0-9._-]+)/([a-z0-9._-]+)$`)

// Matcher extracts an "owner/repo" short form from one recognized URL shape.
// Matchers are tried in a fixed order; the first match wins.
type Matcher interface {
	// TryMatch returns the captured short form and true on a match.
	TryMatch(s string) (string, bool)
}

// regexpMatcher captures owner and repo from submatches 1 and 2.
type regexpMatcher struct {
	re *regexp.Regexp
}

func (m *regexpMatcher) TryMatch(s string) (string, bool) {
	groups := m.re.FindStringSubmatch(s)
	if groups == nil {
		return "", false
	}
	return groups[1] + "/" + groups[2], true
}

// shortFormMatchers is the fixed priority order for extracting a short form
// from full URL shapes: SSH first, then HTTPS.
var shortFormMatchers = []Matcher{
	// git@host:owner/repo.git
	&regexpMatcher{regexp.MustCompile(`(?i)^git@[a-z0-9.-]+:([a-z0-9._-]+)/([a-z0-9._-]+?)(?:\.git)?/?$`)},
	// https://host/owner/repo[.git][/]
	&regexpMatcher{regexp.MustCompile(`(?i)^https?://[a-z0-9.-]+/([a-z0-9._-]+)/([a-z0-9._-]+?)(?:\.git)?/?$`)},
}

// schemeURLRegex matches clone URLs with a recognized transport scheme and a
// .git-style suffix.
var schemeURLRegex = regexp.MustCompile(`(?i)^(?:https?|git|ssh)://\S+\.git/?$`)

// scpLikeRegex matches scp-style short URLs such as user@host:path.
var scpLikeRegex = regexp.MustCompile(`(?i)^[a-z0-9._-]+@[a-z0-9.-]+:\S+$`)

// IsShortForm reports whether s is a short-form "owner/repo" reference.
func IsShortForm(s string) bool {
	return shortFormRegex.MatchString(s)
}

// ParseShortForm extracts "owner/repo" from recognized full URL forms.
// Returns ("", false) when no form matches.
func ParseShortForm(s string) (string, bool) {
	for _, m := range shortFormMatchers {
		if ref, ok := m.TryMatch(s); ok {
			return ref, true
		}
	}
	return "", false
}

// CloneURL expands a short-form reference to its canonical HTTPS clone URL.
// Any other input is returned unchanged.
func CloneURL(ref string) string {
	if IsShortForm(ref) {
		return "https://" + DefaultHost + "/" + ref + ".git"
	}
	return ref
}

// IsRepoSource reports whether s looks like any supported clone source:
// a transport-scheme URL with a .git suffix, an scp-style address, a
// short-form reference, a local bare repository, or a local working tree.
// This predicate is permissive and can accept inputs git would reject.
func IsRepoSource(s string) bool {
	if s == "" {
		return false
	}
	if schemeURLRegex.MatchString(s) {
		return true
	}
	if scpLikeRegex.MatchString(s) {
		return true
	}
	if IsShortForm(s) {
		return true
	}
	if _, ok := ParseShortForm(s); ok {
		return true
	}
	return isLocalRepo(s)
}

// isLocalRepo reports whether path is a working tree (contains a .git
// entry) or looks like a bare repository.
func isLocalRepo(path string) bool {
	info, err := os.Stat(path)
	if err != nil || !info.IsDir() {
		return false
	}

	// Working tree: .git can be a directory or a file (worktree).
	if _, err := os.Stat(filepath.Join(path, ".git")); err == nil {
		return true
	}

	// Bare repository: conventional name, or the HEAD/objects layout.
	if strings.HasSuffix(strings.TrimSuffix(path, "/"), ".git") {
		return true
	}
	if _, err := os.Stat(filepath.Join(path, "HEAD")); err == nil {
		if fi, err := os.Stat(filepath.Join(path, "objects")); err == nil && fi.IsDir() {
			return true
		}
	}
	return false
}

// DeriveName suggests a sandbox name for a reference: the first path
// segment (the owner) of a recognized short form, or "" when none.
func DeriveName(s string) string {
	ref := s
	if !IsShortForm(ref) {
		parsed, ok := ParseShortForm(s)
		if !ok {
			return ""
		}
		ref = parsed
	}
	owner, _, _ := strings.Cut(ref, "/")
	return owner
}
