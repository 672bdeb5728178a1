package render

import "strings"

type LinkKind int

const (
	LinkWebsite LinkKind = iota
	LinkLinkedIn
	LinkGitHub
)

// NormalizeLink turns a user-entered profile URL into plain ATS-friendly
// text: no scheme, no "www.", no trailing slash, and a host prefix for
// bare LinkedIn/GitHub handles.
func NormalizeLink(kind LinkKind, raw string) string {
	s := strings.TrimSpace(raw)
	if s == "" {
		return ""
	}
	s = trimPrefixFold(s, "https://")
	s = trimPrefixFold(s, "http://")
	s = trimPrefixFold(s, "www.")
	s = strings.TrimRight(s, "/")
	if s == "" {
		return ""
	}

	lower := strings.ToLower(s)
	switch kind {
	case LinkLinkedIn:
		if !strings.Contains(lower, "linkedin.com") {
			s = "linkedin.com/in/" + strings.TrimLeft(s, "@/")
		}
	case LinkGitHub:
		if !strings.Contains(lower, "github.com") {
			s = "github.com/" + strings.TrimLeft(s, "@/")
		}
	}
	return s
}

func trimPrefixFold(s, prefix string) string {
	if len(s) >= len(prefix) && strings.EqualFold(s[:len(prefix)], prefix) {
		return s[len(prefix):]
	}
	return s
}
