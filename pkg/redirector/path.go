package redirector

import (
	"net/url"
	"path"
	"strings"
)

// NormalizePath converts the path of a request to a canonical form, so
// that logically identical paths redirect to the same endpoint.
// Duplicate separators are collapsed and "." and ".." components are
// resolved. Paths never escape the root directory, and never have a
// trailing slash, except for the root directory itself.
func NormalizePath(p string) string {
	return path.Clean("/" + p)
}

// normalizeEscapedPath is identical to NormalizePath, except that it
// operates on a path in its escaped form. Escaped slashes are part of
// the component in which they occur, instead of acting as separators.
// Both the decoded and escaped forms of the normalized path are
// returned.
func normalizeEscapedPath(escapedPath string) (string, string) {
	var decoded, escaped []string
	for _, component := range strings.Split(escapedPath, "/") {
		decodedComponent, err := url.PathUnescape(component)
		if err != nil {
			decodedComponent = component
		}
		switch decodedComponent {
		case "", ".":
		case "..":
			if len(decoded) > 0 {
				decoded = decoded[:len(decoded)-1]
				escaped = escaped[:len(escaped)-1]
			}
		default:
			decoded = append(decoded, decodedComponent)
			escaped = append(escaped, component)
		}
	}
	return "/" + strings.Join(decoded, "/"), "/" + strings.Join(escaped, "/")
}
