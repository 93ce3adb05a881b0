package resolver

import (
	"fmt"
	"path/filepath"
	"strings"
)

// CollisionPolicy decides what happens when two inputs derive the same output path.
type CollisionPolicy string

const (
	// CollisionKeepLast emits both tasks unchanged; the later write wins downstream.
	CollisionKeepLast CollisionPolicy = "keep-last"
	// CollisionDisambiguate inserts the source extension into later colliding
	// names: <stem>_<ext>_<suffix>.
	CollisionDisambiguate CollisionPolicy = "disambiguate"
)

// ParseCollisionPolicy parses a policy name; the empty string selects keep-last.
func ParseCollisionPolicy(s string) (CollisionPolicy, error) {
	switch CollisionPolicy(strings.ToLower(strings.TrimSpace(s))) {
	case "", CollisionKeepLast:
		return CollisionKeepLast, nil
	case CollisionDisambiguate:
		return CollisionDisambiguate, nil
	default:
		return "", fmt.Errorf("unknown collision policy %q (supported: %s, %s)", s, CollisionKeepLast, CollisionDisambiguate)
	}
}

// disambiguatedOutputPath returns outputDir/<stem>_<ext>_<suffix>, or "" when
// the source has no extension to disambiguate with.
func disambiguatedOutputPath(outputDir, source, suffix string) string {
	ext := strings.TrimPrefix(strings.ToLower(extension(filepath.Base(source))), ".")
	if ext == "" {
		return ""
	}
	return filepath.Join(outputDir, Stem(source)+"_"+ext+"_"+suffix)
}
