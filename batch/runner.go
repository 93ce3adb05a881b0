package batch

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/BaSui01/assetflow/config"
	"github.com/BaSui01/assetflow/internal/ctxkeys"
	"github.com/BaSui01/assetflow/resolver"
)

// Job 一个命名的解析请求
type Job struct {
	Name    string
	Request resolver.Request
}

// Result 单个作业的执行结果
type Result struct {
	Job      string
	Tasks    []resolver.Task
	Duration time.Duration
	Err      error
}

// ResultHandler 在作业完成后调用（如写入清单），返回的错误记入 Result.Err
type ResultHandler func(ctx context.Context, job Job, result Result) error

// Recorder 记录作业结果，metrics.Collector 实现了该接口
type Recorder interface {
	RecordBatchJob(ok bool)
}

// Runner 批处理执行器
type Runner struct {
	resolver *resolver.Resolver
	workers  int
	logger   *zap.Logger
	recorder Recorder
	handler  ResultHandler
}

// Option 配置 Runner
type Option func(*Runner)

// WithWorkers 设置并发作业数，小于 1 时按 1 处理
func WithWorkers(n int) Option {
	return func(r *Runner) {
		if n < 1 {
			n = 1
		}
		r.workers = n
	}
}

// WithLogger 设置日志
func WithLogger(logger *zap.Logger) Option {
	return func(r *Runner) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// WithRecorder 设置作业结果记录器
func WithRecorder(rec Recorder) Option {
	return func(r *Runner) {
		r.recorder = rec
	}
}

// WithResultHandler 设置作业完成回调
func WithResultHandler(h ResultHandler) Option {
	return func(r *Runner) {
		r.handler = h
	}
}

// NewRunner 创建批处理执行器
func NewRunner(res *resolver.Resolver, opts ...Option) *Runner {
	r := &Runner{
		resolver: res,
		workers:  config.DefaultBatchConfig().Workers,
		logger:   zap.NewNop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	r.logger = r.logger.With(zap.String("component", "batch"))
	return r
}

// Run 并发执行 jobs，结果与 jobs 一一对应。
// 返回的错误为 context 错误，或所有失败作业错误的合并。
func (r *Runner) Run(ctx context.Context, jobs []Job) ([]Result, error) {
	results := make([]Result, len(jobs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.workers)

	for i, job := range jobs {
		i, job := i, job
		g.Go(func() error {
			res, err := r.runJob(gctx, job)
			results[i] = res
			return err
		})
	}

	if err := g.Wait(); err != nil {
		return results, err
	}
	if err := ctx.Err(); err != nil {
		return results, err
	}

	var errs []error
	for _, res := range results {
		if res.Err != nil {
			errs = append(errs, fmt.Errorf("job %q: %w", res.Job, res.Err))
		}
	}
	return results, errors.Join(errs...)
}

// runJob 执行单个作业；只有 context 取消作为错误返回给 errgroup
func (r *Runner) runJob(ctx context.Context, job Job) (Result, error) {
	res := Result{Job: job.Name}
	start := time.Now()
	ctx = ctxkeys.WithJob(ctx, job.Name)

	if err := job.Request.Validate(); err != nil {
		res.Err = err
		r.finish(job, &res, start)
		return res, nil
	}

	tasks, err := r.resolver.ResolveContext(ctx, job.Request)
	if err != nil {
		res.Err = err
		r.finish(job, &res, start)
		return res, err
	}
	res.Tasks = tasks

	if r.handler != nil {
		if err := r.handler(ctx, job, res); err != nil {
			res.Err = err
		}
	}
	r.finish(job, &res, start)
	return res, nil
}

func (r *Runner) finish(job Job, res *Result, start time.Time) {
	res.Duration = time.Since(start)
	if r.recorder != nil {
		r.recorder.RecordBatchJob(res.Err == nil)
	}
	if res.Err != nil {
		r.logger.Error("batch job failed",
			zap.String("job", job.Name),
			zap.Duration("duration", res.Duration),
			zap.Error(res.Err),
		)
		return
	}
	r.logger.Info("batch job completed",
		zap.String("job", job.Name),
		zap.Int("tasks", len(res.Tasks)),
		zap.Duration("duration", res.Duration),
	)
}

// JobsFromConfig 将配置中的作业转换为 Job，作业字段覆盖解析默认值
func JobsFromConfig(cfg *config.Config) []Job {
	jobs := make([]Job, 0, len(cfg.Jobs))
	for _, jc := range cfg.Jobs {
		jobs = append(jobs, Job{Name: jc.Name, Request: jc.Request(cfg.Resolver)})
	}
	return jobs
}
