package core

import (
	"fmt"
	"net/url"
	"path"
	"strings"
)

// ReencodeURL re-encodes URLs for RFC3986 compliance, as URLs pasted by users often aren't properly encoded
func ReencodeURL(u string) (string, error) {
	// Go's URL library isn't entirely RFC3986 compliant :(
	// Manually replace [ and ] with %5B and %5D
	u = strings.ReplaceAll(u, "[", "%5B")
	u = strings.ReplaceAll(u, "]", "%5D")
	parsed, err := url.Parse(u)
	if err != nil {
		return "", fmt.Errorf("failed to parse url: %s, %v", u, err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return "", fmt.Errorf("unsupported url scheme %q in %s", parsed.Scheme, u)
	}
	return parsed.String(), nil
}

// FileNameFromURL returns the unescaped last path segment of u
func FileNameFromURL(u string) (string, error) {
	parsed, err := url.Parse(u)
	if err != nil {
		return "", err
	}
	name, err := url.PathUnescape(path.Base(parsed.Path))
	if err != nil {
		return "", err
	}
	if name == "" || name == "/" || name == "." {
		return "", fmt.Errorf("%s does not end in a file name", u)
	}
	return name, nil
}
