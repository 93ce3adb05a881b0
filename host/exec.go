package host

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/BaSui01/assetflow/config"
	"github.com/BaSui01/assetflow/resolver"
	"github.com/BaSui01/assetflow/types"
)

// maxStderrBytes 错误信息中保留的 stderr 尾部长度
const maxStderrBytes = 2048

// ExecHost 通过外部命令执行转换，满足 resolver.Host。
type ExecHost struct {
	command string
	args    []string
	timeout time.Duration
	limiter *rate.Limiter
	env     []string
	logger  *zap.Logger
}

var _ resolver.Host = (*ExecHost)(nil)

// ExecOption 配置 ExecHost
type ExecOption func(*ExecHost)

// WithEnv 追加子进程环境变量（KEY=VALUE）
func WithEnv(env ...string) ExecOption {
	return func(h *ExecHost) {
		h.env = append(h.env, env...)
	}
}

// WithLimiter 替换默认限流器，nil 表示不限流
func WithLimiter(l *rate.Limiter) ExecOption {
	return func(h *ExecHost) {
		h.limiter = l
	}
}

// NewExecHost 根据配置创建 ExecHost，不检查命令是否存在。
func NewExecHost(cfg config.HostConfig, logger *zap.Logger, opts ...ExecOption) *ExecHost {
	if logger == nil {
		logger = zap.NewNop()
	}
	h := &ExecHost{
		command: cfg.Command,
		args:    append([]string(nil), cfg.Args...),
		timeout: cfg.Timeout,
		logger:  logger.With(zap.String("component", "host")),
	}
	if cfg.RateLimit > 0 {
		burst := cfg.Burst
		if burst <= 0 {
			burst = 1
		}
		h.limiter = rate.NewLimiter(rate.Limit(cfg.RateLimit), burst)
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Name 返回宿主名称（可执行文件名，不含扩展名）
func (h *ExecHost) Name() string {
	base := filepath.Base(h.command)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// Args 返回 task 展开后的命令行参数
func (h *ExecHost) Args(task resolver.Task) []string {
	r := strings.NewReplacer("{input}", task.SourcePath, "{output}", task.OutputPath)
	out := make([]string, len(h.args))
	for i, a := range h.args {
		out[i] = r.Replace(a)
	}
	return out
}

// Transform 对 task 运行一次宿主命令，成功时原样返回 task。
func (h *ExecHost) Transform(ctx context.Context, task resolver.Task) (resolver.Task, error) {
	if h.limiter != nil {
		if err := h.limiter.Wait(ctx); err != nil {
			return task, types.NewTransformError(h.Name(), fmt.Errorf("rate limiter: %w", err))
		}
	}

	if h.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, h.timeout)
		defer cancel()
	}

	args := h.Args(task)
	cmd := exec.CommandContext(ctx, h.command, args...)
	if len(h.env) > 0 {
		cmd.Env = append(os.Environ(), h.env...)
	}
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	start := time.Now()
	err := cmd.Run()
	elapsed := time.Since(start)

	if err != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return task, types.NewError(types.ErrTimeout, "host transform timed out").
				WithHost(h.Name()).
				WithRetryable(true).
				WithCause(ctx.Err())
		}
		if msg := tail(stderr.String(), maxStderrBytes); msg != "" {
			err = fmt.Errorf("%w: %s", err, msg)
		}
		return task, types.NewTransformError(h.Name(), err)
	}

	h.logger.Debug("host transform completed",
		zap.String("source", task.SourcePath),
		zap.String("output", task.OutputPath),
		zap.Duration("elapsed", elapsed),
	)
	return task, nil
}

func tail(s string, n int) string {
	s = strings.TrimSpace(s)
	if len(s) <= n {
		return s
	}
	return s[len(s)-n:]
}
