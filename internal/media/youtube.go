// Package media resolves video links and derives the thumbnail and modal
// media for each item variant.
package media

import (
	"fmt"
	"net/url"
	"strings"
)

const (
	shortLinkHost   = "youtu.be"
	videoIDParam    = "v"
	embedSegment    = "embed"
	thumbnailURLFmt = "https://i.ytimg.com/vi/%s/hqdefault.jpg"
	embedURLPrefix  = "https://www.youtube.com/embed/"
)

// ResolveVideoID extracts a YouTube video id from raw.
// Recognized shapes, checked in order: short link (youtu.be/<id>),
// watch query (?v=<id>), embed path (/embed/<id>).
// Returns false when raw is not an absolute URL or matches no shape.
func ResolveVideoID(raw string) (string, bool) {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil || u.Scheme == "" {
		return "", false
	}

	if strings.Contains(strings.ToLower(u.Hostname()), shortLinkHost) {
		segments := pathSegments(u.Path)
		if len(segments) == 0 {
			return "", false
		}
		return segments[0], true
	}

	if id := u.Query().Get(videoIDParam); id != "" {
		return id, true
	}

	segments := pathSegments(u.Path)
	for i, seg := range segments {
		if seg == embedSegment && i+1 < len(segments) {
			return segments[i+1], true
		}
	}

	return "", false
}

// ThumbnailURL returns the provider's still-image URL for a video id.
func ThumbnailURL(id string) string {
	return fmt.Sprintf(thumbnailURLFmt, url.PathEscape(id))
}

// EmbedURL returns the embeddable player URL for a video id.
func EmbedURL(id string) string {
	return embedURLPrefix + url.PathEscape(id)
}

// pathSegments splits p on "/" dropping empty segments.
func pathSegments(p string) []string {
	parts := strings.Split(p, "/")
	segments := parts[:0]
	for _, part := range parts {
		if part != "" {
			segments = append(segments, part)
		}
	}
	return segments
}
