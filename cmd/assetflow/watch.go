package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/BaSui01/assetflow/internal/ctxkeys"
	"github.com/BaSui01/assetflow/internal/watch"
	"github.com/BaSui01/assetflow/manifest"
	"github.com/BaSui01/assetflow/resolver"
)

// =============================================================================
// 👀 watch 命令
// =============================================================================

func runWatch(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("watch", flag.ContinueOnError)
	fs.SetOutput(stderr)

	var flags requestFlags
	flags.register(fs)
	interval := fs.Duration("interval", 0, "Poll interval")
	debounce := fs.Duration("debounce", -1, "Quiet period before resolving changes")
	dryRun := fs.Bool("dry-run", false, "Use the passthrough host instead of probing")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if flags.inputDir == "" {
		fmt.Fprintln(stderr, "watch requires --input-dir")
		return 2
	}

	cfg, err := loadConfig(flags.configPath, flags.apply)
	if err != nil {
		fmt.Fprintf(stderr, "Failed to load config: %v\n", err)
		return 1
	}
	if *interval > 0 {
		cfg.Watch.Interval = *interval
	}
	if *debounce >= 0 {
		cfg.Watch.Debounce = *debounce
	}

	req := flags.request(cfg, nil)
	if err := req.Validate(); err != nil {
		fmt.Fprintf(stderr, "Invalid request: %v\n", err)
		return 2
	}
	format, err := manifest.ParseFormat(cfg.Manifest.Format)
	if err != nil {
		fmt.Fprintf(stderr, "Invalid format: %v\n", err)
		return 2
	}
	w, err := manifest.NewWriter(cfg.Manifest, cfg.Storage, flags.out, stdout)
	if err != nil {
		fmt.Fprintf(stderr, "Failed to create manifest writer: %v\n", err)
		return 1
	}
	w = perRunWriter(w)

	a, err := newApp(cfg, appOptions{dryRun: *dryRun})
	if err != nil {
		fmt.Fprintf(stderr, "Failed to start: %v\n", err)
		return 1
	}
	defer a.close()

	job := flags.job
	if job == "" {
		job = "watch"
	}
	ctx, stop := signal.NotifyContext(ctxkeys.WithJob(context.Background(), job), os.Interrupt, syscall.SIGTERM)
	defer stop()

	watcher := watch.New(req.InputDirectory,
		watch.WithInterval(cfg.Watch.Interval),
		watch.WithDebounce(cfg.Watch.Debounce),
		watch.WithMatcher(a.resolver.Extensions().Match),
		watch.WithLogger(a.logger),
	)
	if err := watcher.Prime(); err != nil {
		fmt.Fprintf(stderr, "Failed to watch %s: %v\n", req.InputDirectory, err)
		return 1
	}

	// 启动时先完整解析一次目录
	tasks, err := a.resolver.ResolveContext(ctx, req)
	if err != nil {
		// 仅在收到退出信号时发生
		return 0
	}
	if err := a.writeManifest(ctx, w, manifest.New(job, req, tasks, a.capability), format); err != nil {
		a.logger.Error("failed to write manifest", zap.Error(err))
	}

	err = watcher.Run(ctx, func(ctx context.Context, events []watch.Event) {
		changed := changedPaths(events)
		if len(changed) == 0 {
			return
		}
		incremental := req
		incremental.InputDirectory = ""
		incremental.Inputs = resolver.PathList(changed...)

		tasks, err := a.resolver.ResolveContext(ctx, incremental)
		if err != nil {
			return
		}
		if err := a.writeManifest(ctx, w, manifest.New(job, incremental, tasks, a.capability), format); err != nil {
			a.logger.Error("failed to write manifest", zap.Error(err))
		}
	})
	if err != nil && !errors.Is(err, context.Canceled) {
		fmt.Fprintf(stderr, "Watch failed: %v\n", err)
		return 1
	}
	a.logger.Info("watch stopped")
	return 0
}

// changedPaths 返回新增或修改的文件，删除事件被忽略
func changedPaths(events []watch.Event) []string {
	out := make([]string, 0, len(events))
	for _, e := range events {
		if e.Op == watch.OpRemove {
			continue
		}
		out = append(out, e.Path)
	}
	return out
}

// perRunWriter 让文件目标为每批变更写入独立清单，初次扫描的清单不会被覆盖
func perRunWriter(w manifest.Writer) manifest.Writer {
	if fw, ok := w.(*manifest.FileWriter); ok {
		return &manifest.FileWriter{Directory: fw.Directory, Path: fw.Path, PerRun: true}
	}
	return w
}
