package resolver

import (
	"path/filepath"
	"strings"
)

// Task is one resolved unit handed to downstream processing.
type Task struct {
	SourcePath string `json:"source_path" yaml:"source_path"`
	OutputPath string `json:"output_path" yaml:"output_path"`
}

// DeriveOutputPath returns outputDir/<stem(source)>_<suffix>.
func DeriveOutputPath(outputDir, source, suffix string) string {
	return filepath.Join(outputDir, Stem(source)+"_"+suffix)
}

// Stem returns the base name of path with its final extension removed.
// A leading dot does not start an extension, so ".hidden" keeps its name.
func Stem(path string) string {
	base := filepath.Base(path)
	if base == "." || base == string(filepath.Separator) {
		return ""
	}
	ext := extension(base)
	return strings.TrimSuffix(base, ext)
}

// extension mirrors filepath.Ext but ignores dot-files and trailing dots.
func extension(base string) string {
	i := strings.LastIndexByte(base, '.')
	if i <= 0 || i == len(base)-1 {
		return ""
	}
	return base[i:]
}
