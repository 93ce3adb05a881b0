package main

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/BaSui01/assetflow"
	"github.com/BaSui01/assetflow/config"
	"github.com/BaSui01/assetflow/host"
	"github.com/BaSui01/assetflow/internal/logging"
	"github.com/BaSui01/assetflow/internal/metrics"
	"github.com/BaSui01/assetflow/internal/server"
	"github.com/BaSui01/assetflow/internal/telemetry"
	"github.com/BaSui01/assetflow/manifest"
	"github.com/BaSui01/assetflow/resolver"
)

// app 持有一次命令执行所需的组件
type app struct {
	cfg        *config.Config
	logger     *zap.Logger
	capability resolver.Capability
	resolver   *resolver.Resolver
	collector  *metrics.Collector
	otel       *telemetry.Providers
	metricsSrv *server.Manager
}

type appOptions struct {
	dryRun      bool
	requireHost bool
}

// loadConfig 加载并校验配置，mutate 用于应用命令行覆盖
func loadConfig(path string, mutate func(*config.Config)) (*config.Config, error) {
	loader := config.NewLoader()
	if path != "" {
		loader = loader.WithConfigPath(path)
	}
	cfg, err := loader.Load()
	if err != nil {
		return nil, err
	}
	if mutate != nil {
		mutate(cfg)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// newApp 初始化日志、遥测、指标与宿主探测
func newApp(cfg *config.Config, opts appOptions) (*app, error) {
	logger, err := logging.New(cfg.Log)
	if err != nil {
		return nil, err
	}
	a := &app{cfg: cfg, logger: logger}

	a.otel, err = telemetry.Init(cfg.Telemetry, logger)
	if err != nil {
		logger.Warn("failed to initialize telemetry", zap.Error(err))
	}

	var resolverOpts []resolver.Option
	if cfg.Metrics.Enabled {
		a.collector = metrics.NewCollector(cfg.Metrics.Namespace, logger)
		resolverOpts = append(resolverOpts, resolver.WithObserver(a.collector))

		a.metricsSrv = server.NewManager(server.MetricsMux(), server.Config{Addr: cfg.Metrics.Addr}, logger)
		if err := a.metricsSrv.Start(); err != nil {
			logger.Warn("metrics endpoint not started", zap.Error(err))
			a.metricsSrv = nil
		}
	}

	switch {
	case opts.dryRun:
		a.capability = resolver.Available(host.Passthrough{})
	default:
		if opts.requireHost {
			if _, err := host.Detect(cfg.Host); err != nil {
				a.close()
				return nil, err
			}
		}
		a.capability = host.Probe(cfg.Host, logger)
	}

	a.resolver, err = assetflow.NewWithCapability(cfg, a.capability, logger, resolverOpts...)
	if err != nil {
		a.close()
		return nil, err
	}
	return a, nil
}

// writeManifest 写入清单并记录指标
func (a *app) writeManifest(ctx context.Context, w manifest.Writer, m *manifest.Manifest, format manifest.Format) error {
	loc, err := w.Write(ctx, m, format)
	if a.collector != nil {
		a.collector.RecordManifestWrite(w.Name(), err == nil)
	}
	if err != nil {
		return err
	}
	a.logger.Info("manifest written",
		zap.String("job", m.Job),
		zap.String("run_id", m.RunID),
		zap.String("location", loc),
		zap.Int("tasks", len(m.Tasks)),
	)
	return nil
}

func (a *app) close() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if a.metricsSrv != nil {
		_ = a.metricsSrv.Shutdown(ctx)
	}
	if a.otel != nil {
		if err := a.otel.Shutdown(ctx); err != nil {
			a.logger.Warn("telemetry shutdown failed", zap.Error(err))
		}
	}
	_ = a.logger.Sync()
}
