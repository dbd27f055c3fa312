package crawl

import "fmt"

// TruncateURL shortens a URL for display, keeping the end which is more informative.
func TruncateURL(url string, maxLen int) string {
	if maxLen <= 0 {
		return ""
	}
	if maxLen < 4 {
		// Too short for "..." prefix, just return dots
		return url[:min(len(url), maxLen)]
	}
	if len(url) <= maxLen {
		return url
	}
	return "..." + url[len(url)-maxLen+3:]
}

// FormatCharacters formats a character count in human-readable form.
func FormatCharacters(n int) string {
	const (
		K = 1000
		M = K * 1000
	)
	switch {
	case n >= M:
		return fmt.Sprintf("%.1fM chars", float64(n)/float64(M))
	case n >= K:
		return fmt.Sprintf("%.1fk chars", float64(n)/float64(K))
	default:
		return fmt.Sprintf("%d chars", n)
	}
}
