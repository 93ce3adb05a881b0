package manifest

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/BaSui01/assetflow/resolver"
)

// Format 清单编码格式
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ParseFormat 解析格式名，空字符串表示 JSON
func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(s))) {
	case "", FormatJSON:
		return FormatJSON, nil
	case FormatYAML, "yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("unsupported manifest format %q (supported: json, yaml)", s)
	}
}

// Ext 返回格式对应的文件扩展名（不含点）
func (f Format) Ext() string {
	return string(f)
}

// ContentType 返回格式对应的 MIME 类型
func (f Format) ContentType() string {
	if f == FormatYAML {
		return "application/yaml"
	}
	return "application/json"
}

// Manifest 一次解析运行的结果
type Manifest struct {
	RunID         string          `json:"run_id" yaml:"run_id"`
	Job           string          `json:"job" yaml:"job"`
	CreatedAt     time.Time       `json:"created_at" yaml:"created_at"`
	DataSuffix    string          `json:"data_suffix" yaml:"data_suffix"`
	Host          string          `json:"host" yaml:"host"`
	HostAvailable bool            `json:"host_available" yaml:"host_available"`
	AllowOverride bool            `json:"allow_override" yaml:"allow_override"`
	Tasks         []resolver.Task `json:"tasks" yaml:"tasks"`
}

// New 创建清单并分配新的运行 ID
func New(job string, req resolver.Request, tasks []resolver.Task, capability resolver.Capability) *Manifest {
	if tasks == nil {
		tasks = []resolver.Task{}
	}
	return &Manifest{
		RunID:         uuid.NewString(),
		Job:           job,
		CreatedAt:     time.Now().UTC(),
		DataSuffix:    req.DataSuffix,
		Host:          capability.HostName(),
		HostAvailable: capability.IsAvailable(),
		AllowOverride: req.AllowOverride,
		Tasks:         tasks,
	}
}

// Encode 按 format 将清单写入 w
func (m *Manifest) Encode(w io.Writer, format Format) error {
	switch format {
	case FormatJSON, "":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(m)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(m); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("unsupported manifest format %q", format)
	}
}

// Decode 从 r 读取清单
func Decode(r io.Reader, format Format) (*Manifest, error) {
	var m Manifest
	switch format {
	case FormatJSON, "":
		if err := json.NewDecoder(r).Decode(&m); err != nil {
			return nil, fmt.Errorf("decode json manifest: %w", err)
		}
	case FormatYAML:
		if err := yaml.NewDecoder(r).Decode(&m); err != nil {
			return nil, fmt.Errorf("decode yaml manifest: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported manifest format %q", format)
	}
	return &m, nil
}

// fileName 返回 <job>.<ext>，作业名为空时使用运行 ID
func (m *Manifest) fileName(format Format) string {
	name := strings.TrimSpace(m.Job)
	if name == "" {
		name = m.RunID
	}
	name = strings.NewReplacer("/", "_", "\\", "_").Replace(name)
	return name + "." + format.Ext()
}
