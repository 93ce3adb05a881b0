package resolver

import (
	"sort"
	"strings"
)

// DefaultExtensions are the 3D asset suffixes matched during a directory scan.
var DefaultExtensions = []string{".fbx", ".obj", ".ply", ".glb", ".gltf"}

// ExtensionSet is an immutable, case-insensitive set of file extensions.
type ExtensionSet struct {
	exts map[string]struct{}
}

// NewExtensionSet builds a set from extensions with or without the leading dot.
// Empty entries are ignored.
func NewExtensionSet(exts ...string) ExtensionSet {
	s := ExtensionSet{exts: make(map[string]struct{}, len(exts))}
	for _, ext := range exts {
		ext = strings.ToLower(strings.TrimSpace(ext))
		if ext == "" || ext == "." {
			continue
		}
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		s.exts[ext] = struct{}{}
	}
	return s
}

// Match reports whether name carries one of the extensions, ignoring case.
// A name that is exactly an extension, such as ".fbx", matches too.
func (s ExtensionSet) Match(name string) bool {
	lower := strings.ToLower(name)
	if _, ok := s.exts[lower]; ok {
		return true
	}
	ext := extension(lower)
	if ext == "" {
		return false
	}
	_, ok := s.exts[ext]
	return ok
}

// Len returns the number of extensions in the set.
func (s ExtensionSet) Len() int { return len(s.exts) }

// List returns the extensions, sorted.
func (s ExtensionSet) List() []string {
	out := make([]string, 0, len(s.exts))
	for ext := range s.exts {
		out = append(out, ext)
	}
	sort.Strings(out)
	return out
}
