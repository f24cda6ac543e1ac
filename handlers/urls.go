package handlers

import (
	"net/url"
	"regexp"
	"strings"

	"droppables/core"
)

var (
	imageURLPattern = regexp.MustCompile(`\.(apng|avif|bmp|gif|jpe?g|png|svg|tiff?|webp)$`)
	videoURLPattern = regexp.MustCompile(`\.(m4v|mp4|ogv|webm)$`)
	pathSeparators  = regexp.MustCompile(`[\\/]`)
)

// Default names for URL drops whose path has no usable segment.
const (
	defaultImageName = "Dropped Image"
	defaultMediaName = "Dropped Media"
)

// imageURL reports whether u ends in an image extension.
func imageURL(u string) bool {
	return imageURLPattern.MatchString(strings.ToLower(u))
}

// mediaURLType returns the journal page type for an image or video URL, or
// "" when the extension is not recognized.
func mediaURLType(u string) string {
	lower := strings.ToLower(u)
	switch {
	case imageURLPattern.MatchString(lower):
		return core.PageImage
	case videoURLPattern.MatchString(lower):
		return core.PageVideo
	}
	return ""
}

// fileNameFromURL returns the last path segment of u, percent-decoded. Input
// that is not an absolute URL is split on slashes and backslashes instead.
func fileNameFromURL(u, fallback string) string {
	// A Windows path parses with its drive letter as the scheme and neither
	// host nor path, so it falls through to the separator split.
	if parsed, err := url.Parse(u); err == nil && parsed.IsAbs() && (parsed.Host != "" || parsed.Path != "") {
		if last := lastSegment(strings.Split(parsed.EscapedPath(), "/")); last != "" {
			if decoded, err := url.PathUnescape(last); err == nil {
				return decoded
			}
			return last
		}
		return fallback
	}
	if last := lastSegment(pathSeparators.Split(u, -1)); last != "" {
		return last
	}
	return fallback
}

func lastSegment(parts []string) string {
	for i := len(parts) - 1; i >= 0; i-- {
		if parts[i] != "" {
			return parts[i]
		}
	}
	return ""
}

// baseName returns name up to its first dot.
func baseName(name string) string {
	if i := strings.Index(name, "."); i >= 0 {
		return name[:i]
	}
	return name
}
