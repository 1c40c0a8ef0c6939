package viewer

import (
	"fmt"
	"net/url"

	"document-viewer/internal/domain"
)

// URLFallbackResolver builds an embed URL for a hosted third-party viewer
// that fetches the document by its public URI.
type URLFallbackResolver struct {
	BaseURL string
}

// NewURLFallbackResolver creates a resolver for the viewer at baseURL
func NewURLFallbackResolver(baseURL string) *URLFallbackResolver {
	return &URLFallbackResolver{BaseURL: baseURL}
}

// Resolve returns BaseURL with the encoded source URI in the url query
// parameter. Only absolute http(s) URIs are reachable by the viewer.
func (r *URLFallbackResolver) Resolve(ref domain.DocumentRef) (string, error) {
	src, err := url.Parse(ref.SourceURI)
	if err != nil {
		return "", &domain.FallbackError{SourceURI: ref.SourceURI, Cause: err}
	}
	if (src.Scheme != "http" && src.Scheme != "https") || src.Host == "" {
		return "", &domain.FallbackError{
			SourceURI: ref.SourceURI,
			Cause:     fmt.Errorf("source uri is not a public http(s) url"),
		}
	}

	base, err := url.Parse(r.BaseURL)
	if err != nil || base.Host == "" {
		return "", &domain.FallbackError{
			SourceURI: ref.SourceURI,
			Cause:     fmt.Errorf("invalid fallback viewer url %q", r.BaseURL),
		}
	}

	q := base.Query()
	q.Set("url", src.String())
	base.RawQuery = q.Encode()
	return base.String(), nil
}
