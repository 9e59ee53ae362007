package domain

import (
	"path"
	"strings"
)

// CanonicalPath resolves "." and ".." segments and collapses repeated slashes. The result
// starts with exactly one "/" and keeps a trailing slash when the input had one. The gate
// only ever evaluates canonical paths.
func CanonicalPath(p string) string {
	if p == "" {
		return "/"
	}
	cleaned := path.Clean("/" + p)
	if strings.HasSuffix(p, "/") && cleaned != "/" {
		cleaned += "/"
	}
	return cleaned
}
