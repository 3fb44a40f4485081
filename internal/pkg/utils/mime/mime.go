package mime

import (
	"net/url"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

// extMimeMap refines content detection for pages served as text/plain.
var extMimeMap = map[string]string{
	".html":  "text/html",
	".htm":   "text/html",
	".xhtml": "application/xhtml+xml",
	".xml":   "application/xml",
	".json":  "application/json",
	".csv":   "text/csv",
}

// DetectPageType returns the MIME type of a fetched page. Content sniffing
// wins; a text/plain result is refined with the declared Content-Type header
// and then the extension of the page URL.
func DetectPageType(content []byte, contentType, pageURL string) string {
	detected := mimetype.Detect(content).String()
	if !strings.HasPrefix(detected, "text/plain") {
		return detected
	}

	if declared := strings.TrimSpace(strings.SplitN(contentType, ";", 2)[0]); declared != "" && declared != "text/plain" {
		return strings.Replace(detected, "text/plain", strings.ToLower(declared), 1)
	}

	if u, err := url.Parse(pageURL); err == nil {
		if refined, ok := extMimeMap[strings.ToLower(filepath.Ext(u.Path))]; ok {
			return strings.Replace(detected, "text/plain", refined, 1)
		}
	}
	return detected
}

// IsHTML reports whether a MIME type returned by DetectPageType is an HTML
// document.
func IsHTML(mimeType string) bool {
	base := strings.TrimSpace(strings.SplitN(mimeType, ";", 2)[0])
	return base == "text/html" || base == "application/xhtml+xml"
}
