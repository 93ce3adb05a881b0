package manifest

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/BaSui01/assetflow/config"
	"github.com/BaSui01/assetflow/types"
)

// Writer 将清单写入某个目标，返回写入位置
type Writer interface {
	// Name 返回目标类型：stdout、file、s3
	Name() string
	Write(ctx context.Context, m *Manifest, format Format) (string, error)
}

// StreamWriter 将清单写入 io.Writer，并发写入按清单串行化
type StreamWriter struct {
	mu sync.Mutex
	w  io.Writer
}

// NewStreamWriter 创建 StreamWriter
func NewStreamWriter(w io.Writer) *StreamWriter {
	return &StreamWriter{w: w}
}

// Name 实现 Writer
func (s *StreamWriter) Name() string { return "stdout" }

// Write 实现 Writer
func (s *StreamWriter) Write(_ context.Context, m *Manifest, format Format) (string, error) {
	var buf bytes.Buffer
	if err := m.Encode(&buf, format); err != nil {
		return "", manifestWriteError("encode manifest", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, err := s.w.Write(buf.Bytes()); err != nil {
		return "", manifestWriteError("write manifest", err)
	}
	return "-", nil
}

// FileWriter 将清单写入本地文件。
// Path 非空时写入该路径，否则写入 Directory/<job>.<ext>。
// PerRun 为 true 时在扩展名前插入运行 ID，每次写入得到独立文件。
type FileWriter struct {
	Directory string
	Path      string
	PerRun    bool
}

// Name 实现 Writer
func (f *FileWriter) Name() string { return "file" }

// Write 实现 Writer
func (f *FileWriter) Write(_ context.Context, m *Manifest, format Format) (string, error) {
	path := f.Path
	if path == "" {
		path = filepath.Join(f.Directory, m.fileName(format))
	}
	if f.PerRun {
		ext := filepath.Ext(path)
		path = strings.TrimSuffix(path, ext) + "-" + m.RunID + ext
	}

	var buf bytes.Buffer
	if err := m.Encode(&buf, format); err != nil {
		return "", manifestWriteError("encode manifest", err)
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return "", manifestWriteError("create manifest directory", err)
		}
	}

	// 先写唯一命名的临时文件再重命名，并发写入同一路径互不干扰
	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".*.tmp")
	if err != nil {
		return "", manifestWriteError("create temp manifest", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(buf.Bytes()); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return "", manifestWriteError("write manifest", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return "", manifestWriteError("write manifest", err)
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		_ = os.Remove(tmpName)
		return "", manifestWriteError("write manifest", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		_ = os.Remove(tmpName)
		return "", manifestWriteError("rename manifest", err)
	}
	return path, nil
}

// NewWriter 根据配置创建写入目标。
// out 为 CLI 指定的输出路径，"-" 表示 stdout，非空时优先于配置。
func NewWriter(cfg config.ManifestConfig, storage config.StorageConfig, out string, stdout io.Writer) (Writer, error) {
	if stdout == nil {
		stdout = os.Stdout
	}
	switch {
	case out == "-":
		return NewStreamWriter(stdout), nil
	case out != "":
		return &FileWriter{Path: out}, nil
	}

	switch cfg.Sink {
	case "", "stdout":
		return NewStreamWriter(stdout), nil
	case "file":
		return &FileWriter{Directory: cfg.Directory}, nil
	case "s3":
		return NewS3Writer(storage.S3)
	default:
		return nil, types.NewInvalidConfigError(fmt.Sprintf("unsupported manifest sink %q", cfg.Sink))
	}
}

func manifestWriteError(msg string, cause error) error {
	return types.NewError(types.ErrManifestWrite, msg).WithCause(cause)
}
