package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/BaSui01/assetflow/batch"
	"github.com/BaSui01/assetflow/config"
	"github.com/BaSui01/assetflow/manifest"
)

// =============================================================================
// 📦 batch 命令
// =============================================================================

func runBatch(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("batch", flag.ContinueOnError)
	fs.SetOutput(stderr)
	configPath := fs.String("config", "", "Path to config file")
	workers := fs.Int("workers", 0, "Concurrent jobs")
	out := fs.String("out", "", `Manifest destination, "-" for stdout`)
	dryRun := fs.Bool("dry-run", false, "Use the passthrough host instead of probing")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if *configPath == "" {
		fmt.Fprintln(stderr, "batch requires --config")
		return 2
	}

	cfg, err := loadConfig(*configPath, func(c *config.Config) {
		if *workers > 0 {
			c.Batch.Workers = *workers
		}
	})
	if err != nil {
		fmt.Fprintf(stderr, "Failed to load config: %v\n", err)
		return 1
	}
	if len(cfg.Jobs) == 0 {
		fmt.Fprintln(stderr, "No jobs configured")
		return 1
	}

	format, err := manifest.ParseFormat(cfg.Manifest.Format)
	if err != nil {
		fmt.Fprintf(stderr, "Invalid format: %v\n", err)
		return 1
	}
	w, err := batchWriter(cfg, *out, stdout)
	if err != nil {
		fmt.Fprintf(stderr, "Failed to create manifest writer: %v\n", err)
		return 1
	}

	a, err := newApp(cfg, appOptions{dryRun: *dryRun})
	if err != nil {
		fmt.Fprintf(stderr, "Failed to start: %v\n", err)
		return 1
	}
	defer a.close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	opts := []batch.Option{
		batch.WithWorkers(cfg.Batch.Workers),
		batch.WithLogger(a.logger),
		batch.WithResultHandler(func(ctx context.Context, job batch.Job, res batch.Result) error {
			m := manifest.New(job.Name, job.Request, res.Tasks, a.capability)
			return a.writeManifest(ctx, w, m, format)
		}),
	}
	if a.collector != nil {
		opts = append(opts, batch.WithRecorder(a.collector))
	}

	results, err := batch.NewRunner(a.resolver, opts...).Run(ctx, batch.JobsFromConfig(cfg))
	total := 0
	for _, res := range results {
		total += len(res.Tasks)
	}
	a.logger.Info("batch finished", zap.Int("jobs", len(results)), zap.Int("tasks", total))

	if err != nil {
		fmt.Fprintf(stderr, "Batch failed: %v\n", err)
		return 1
	}
	return 0
}

// batchWriter 多个作业共用 --out 文件路径时改为按作业写入该目录，避免互相覆盖
func batchWriter(cfg *config.Config, out string, stdout io.Writer) (manifest.Writer, error) {
	if out != "" && out != "-" && len(cfg.Jobs) > 1 {
		return &manifest.FileWriter{Directory: out}, nil
	}
	return manifest.NewWriter(cfg.Manifest, cfg.Storage, out, stdout)
}
