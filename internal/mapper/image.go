package mapper

import "strings"

// DefaultImage is served when a record carries no image at all.
const DefaultImage = "/images/placeholder.png"

// ImageResolver normalizes backend image references into absolute URLs.
// Absolute URLs pass through untouched; bare storage keys are joined onto
// the configured CDN base.
type ImageResolver struct {
	cdnBase string
}

// NewImageResolver creates a resolver for the given CDN base URL (may be
// empty, in which case keys resolve to root-relative paths).
func NewImageResolver(cdnBase string) *ImageResolver {
	return &ImageResolver{cdnBase: strings.TrimRight(cdnBase, "/")}
}

// Resolve returns a displayable URL for a raw image reference. Never
// returns an empty string.
func (r *ImageResolver) Resolve(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return DefaultImage
	}
	if strings.HasPrefix(raw, "http://") || strings.HasPrefix(raw, "https://") {
		return raw
	}
	key := strings.TrimLeft(raw, "/")
	if r.cdnBase == "" {
		return "/" + key
	}
	return r.cdnBase + "/" + key
}
