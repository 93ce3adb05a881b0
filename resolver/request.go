package resolver

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/BaSui01/assetflow/types"
)

// Inputs holds explicit input paths either as an ordered list or as a single
// comma-delimited string.
type Inputs struct {
	list   []string
	joined string
	isCSV  bool
}

// PathList returns Inputs for an ordered list of paths, used as given.
func PathList(paths ...string) *Inputs {
	return &Inputs{list: append([]string(nil), paths...)}
}

// CommaList returns Inputs for a comma-delimited string such as "a.fbx, b.obj".
func CommaList(s string) *Inputs {
	return &Inputs{joined: s, isCSV: true}
}

// Paths normalizes the inputs into an ordered list. A comma string is split
// on "," and each element trimmed; a list is returned unchanged.
func (in *Inputs) Paths() []string {
	if in == nil {
		return nil
	}
	if !in.isCSV {
		return append([]string(nil), in.list...)
	}
	parts := strings.Split(in.joined, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}

func (in *Inputs) String() string {
	if in == nil {
		return ""
	}
	if in.isCSV {
		return in.joined
	}
	return strings.Join(in.list, ",")
}

// UnmarshalYAML accepts either a scalar (comma list) or a sequence of paths.
func (in *Inputs) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		*in = *CommaList(node.Value)
		return nil
	case yaml.SequenceNode:
		var paths []string
		if err := node.Decode(&paths); err != nil {
			return fmt.Errorf("inputs: %w", err)
		}
		*in = *PathList(paths...)
		return nil
	default:
		return fmt.Errorf("inputs: expected string or list, got yaml kind %d", node.Kind)
	}
}

// MarshalYAML writes the inputs back in the form they were given.
func (in Inputs) MarshalYAML() (any, error) {
	if in.isCSV {
		return in.joined, nil
	}
	return in.list, nil
}

// Request describes one resolution.
type Request struct {
	// DataSuffix is appended to every derived output name.
	DataSuffix string `json:"data_suffix" yaml:"data_suffix"`
	// Inputs takes precedence over InputDirectory when non-nil.
	Inputs          *Inputs `json:"-" yaml:"inputs,omitempty"`
	InputDirectory  string  `json:"input_directory,omitempty" yaml:"input_directory,omitempty"`
	OutputDirectory string  `json:"output_directory" yaml:"output_directory"`
	// AllowOverride is reserved; resolution does not consult it.
	AllowOverride bool `json:"allow_override" yaml:"allow_override"`
	EmitWarnings  bool `json:"emit_warnings" yaml:"emit_warnings"`
}

// Validate checks the fields a caller must supply before output can be produced.
// Resolve itself never rejects a request.
func (r Request) Validate() error {
	if strings.TrimSpace(r.DataSuffix) == "" {
		return types.NewError(types.ErrInvalidRequest, "data suffix is required")
	}
	if r.Inputs != nil || r.InputDirectory != "" {
		if strings.TrimSpace(r.OutputDirectory) == "" {
			return types.NewError(types.ErrInvalidRequest, "output directory is required")
		}
	}
	return nil
}
