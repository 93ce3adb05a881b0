// Package metrics provides internal metrics collection.
// This package is internal and should not be imported by external projects.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.uber.org/zap"

	"github.com/BaSui01/assetflow/resolver"
)

// =============================================================================
// 📊 指标收集器
// =============================================================================

// Collector 指标收集器，实现 resolver.Observer
type Collector struct {
	// 解析指标
	tasksResolved      *prometheus.CounterVec
	missingInputs      prometheus.Counter
	missingDirectories prometheus.Counter
	outputCollisions   prometheus.Counter
	resolveDuration    *prometheus.HistogramVec
	resolveTasks       *prometheus.HistogramVec

	// 宿主指标
	hostTransforms *prometheus.CounterVec

	// 批处理与清单指标
	batchJobs      *prometheus.CounterVec
	manifestWrites *prometheus.CounterVec

	logger *zap.Logger
}

var _ resolver.Observer = (*Collector)(nil)

// NewCollector 创建指标收集器
func NewCollector(namespace string, logger *zap.Logger) *Collector {
	if logger == nil {
		logger = zap.NewNop()
	}
	c := &Collector{
		logger: logger.With(zap.String("component", "metrics")),
	}

	// 解析指标
	c.tasksResolved = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "tasks_resolved_total",
			Help:      "Total number of processing tasks produced",
		},
		[]string{"mode"},
	)

	c.missingInputs = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "missing_inputs_total",
			Help:      "Total number of explicit inputs skipped because they do not exist",
		},
	)

	c.missingDirectories = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "missing_directories_total",
			Help:      "Total number of scan directories that do not exist",
		},
	)

	c.outputCollisions = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "output_collisions_total",
			Help:      "Total number of derived output paths that collided within one request",
		},
	)

	c.resolveDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "resolve_duration_seconds",
			Help:      "Resolve duration in seconds",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5, 30, 120},
		},
		[]string{"mode"},
	)

	c.resolveTasks = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "resolve_tasks",
			Help:      "Number of tasks produced per resolve",
			Buckets:   prometheus.ExponentialBuckets(1, 4, 8),
		},
		[]string{"mode"},
	)

	// 宿主指标
	c.hostTransforms = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "host_transforms_total",
			Help:      "Total number of host transforms by outcome",
		},
		[]string{"host", "status"},
	)

	// 批处理与清单指标
	c.batchJobs = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "batch_jobs_total",
			Help:      "Total number of batch jobs by outcome",
		},
		[]string{"status"},
	)

	c.manifestWrites = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "manifest_writes_total",
			Help:      "Total number of manifest writes by sink and outcome",
		},
		[]string{"sink", "status"},
	)

	logger.Info("metrics collector initialized", zap.String("namespace", namespace))

	return c
}

// =============================================================================
// 🎯 解析指标记录（resolver.Observer）
// =============================================================================

// ObserveTask 记录一个生成的任务
func (c *Collector) ObserveTask(mode resolver.Mode) {
	c.tasksResolved.WithLabelValues(string(mode)).Inc()
}

// ObserveMissingInput 记录缺失的输入文件
func (c *Collector) ObserveMissingInput() {
	c.missingInputs.Inc()
}

// ObserveMissingDirectory 记录缺失的输入目录
func (c *Collector) ObserveMissingDirectory() {
	c.missingDirectories.Inc()
}

// ObserveCollision 记录输出路径冲突
func (c *Collector) ObserveCollision() {
	c.outputCollisions.Inc()
}

// ObserveTransform 记录宿主转换结果
func (c *Collector) ObserveTransform(host string, ok bool) {
	c.hostTransforms.WithLabelValues(host, status(ok)).Inc()
}

// ObserveResolve 记录一次解析
func (c *Collector) ObserveResolve(mode resolver.Mode, tasks int, duration time.Duration) {
	c.resolveDuration.WithLabelValues(string(mode)).Observe(duration.Seconds())
	c.resolveTasks.WithLabelValues(string(mode)).Observe(float64(tasks))
}

// =============================================================================
// 📦 批处理与清单指标记录
// =============================================================================

// RecordBatchJob 记录批处理任务结果
func (c *Collector) RecordBatchJob(ok bool) {
	c.batchJobs.WithLabelValues(status(ok)).Inc()
}

// RecordManifestWrite 记录清单写入结果
func (c *Collector) RecordManifestWrite(sink string, ok bool) {
	c.manifestWrites.WithLabelValues(sink, status(ok)).Inc()
}

// =============================================================================
// 🔧 辅助函数
// =============================================================================

func status(ok bool) string {
	if ok {
		return "success"
	}
	return "error"
}
