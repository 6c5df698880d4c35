package domain

import (
	"sort"
	"strings"
)

// APISpec is the parsed OpenAPI description of the remote API.
// It is treated as immutable once loaded.
type APISpec struct {
	// OpenAPI is the specification format version (e.g. "3.1.0").
	OpenAPI string

	// Title is info.title.
	Title string

	// Version is info.version.
	Version string

	// Paths are the path templates, sorted.
	Paths []string

	// Document is the whole decoded document.
	Document map[string]any
}

// ResourceNames returns the resource types that have a list endpoint under
// pathPrefix, e.g. "/api/v2/pokemon/" yields "pokemon". Detail templates such
// as "/api/v2/pokemon/{id}/" are skipped. The prefix is matched with one
// leading and one trailing slash, so "" matches top-level paths.
func (s *APISpec) ResourceNames(pathPrefix string) []string {
	pathPrefix = strings.TrimSuffix("/"+strings.Trim(pathPrefix, "/"), "/") + "/"
	seen := make(map[string]bool)
	var names []string

	for _, p := range s.Paths {
		rest, ok := strings.CutPrefix(p, pathPrefix)
		if !ok {
			continue
		}
		name, ok := strings.CutSuffix(rest, "/")
		if !ok || name == "" || strings.ContainsAny(name, "/{}") {
			continue
		}
		if !seen[name] {
			seen[name] = true
			names = append(names, name)
		}
	}

	sort.Strings(names)
	return names
}

// HasResource reports whether the spec describes a list endpoint for name.
func (s *APISpec) HasResource(pathPrefix, name string) bool {
	for _, n := range s.ResourceNames(pathPrefix) {
		if n == name {
			return true
		}
	}
	return false
}
