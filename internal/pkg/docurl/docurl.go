// Package docurl rewrites Google Docs document links into the variants the
// review UI needs: a direct PDF export for downloads and the chromeless
// preview for embedding. Any other URL passes through unchanged.
package docurl

import "strings"

const docsHost = "docs.google.com/document/"

func isGoogleDoc(raw string) bool {
	return strings.Contains(raw, docsHost)
}

// DownloadURL returns a link that serves the document as a PDF attachment.
func DownloadURL(raw string) string {
	return rewrite(raw, "/export?format=pdf")
}

// EmbedURL returns a link suitable for an inline viewer frame.
func EmbedURL(raw string) string {
	return rewrite(raw, "/preview")
}

func rewrite(raw, suffix string) string {
	if !isGoogleDoc(raw) {
		return raw
	}
	base := raw
	for _, tail := range []string{"/edit", "/preview", "/view"} {
		if i := strings.Index(base, tail); i >= 0 {
			base = base[:i]
			break
		}
	}
	base = strings.TrimSuffix(base, "/")
	return base + suffix
}
