package host

import (
	"os/exec"
	"strings"

	"go.uber.org/zap"

	"github.com/BaSui01/assetflow/config"
	"github.com/BaSui01/assetflow/resolver"
	"github.com/BaSui01/assetflow/types"
)

// Detect 返回宿主可执行文件的完整路径。
// 宿主未启用或命令不可执行时返回 HOST_UNAVAILABLE 错误。
func Detect(cfg config.HostConfig) (string, error) {
	if !cfg.Enabled {
		return "", types.NewError(types.ErrHostUnavailable, "host disabled")
	}
	command := strings.TrimSpace(cfg.Command)
	if command == "" {
		return "", types.NewError(types.ErrHostUnavailable, "host command not configured")
	}
	path, err := exec.LookPath(command)
	if err != nil {
		return "", types.NewError(types.ErrHostUnavailable, "host command not found").
			WithHost(command).
			WithCause(err)
	}
	return path, nil
}

// Probe 探测宿主并返回对应的 capability，启动时调用一次。
func Probe(cfg config.HostConfig, logger *zap.Logger, opts ...ExecOption) resolver.Capability {
	if logger == nil {
		logger = zap.NewNop()
	}
	logger = logger.With(zap.String("component", "host"))

	path, err := Detect(cfg)
	if err != nil {
		logger.Info("running outside host, using file processing mode", zap.Error(err))
		return resolver.Unavailable()
	}

	cfg.Command = path
	h := NewExecHost(cfg, logger, opts...)
	logger.Info("host detected",
		zap.String("host", h.Name()),
		zap.String("path", path),
		zap.Duration("timeout", cfg.Timeout),
		zap.Float64("rate_limit", cfg.RateLimit),
	)
	return resolver.Available(h)
}
