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

	"github.com/BaSui01/assetflow/config"
	"github.com/BaSui01/assetflow/internal/ctxkeys"
	"github.com/BaSui01/assetflow/manifest"
	"github.com/BaSui01/assetflow/resolver"
)

// requestFlags resolve 与 watch 共用的请求参数
type requestFlags struct {
	configPath    string
	inputs        string
	inputDir      string
	outputDir     string
	suffix        string
	format        string
	out           string
	collision     string
	job           string
	noWarn        bool
	allowOverride bool
}

func (f *requestFlags) register(fs *flag.FlagSet) {
	fs.StringVar(&f.configPath, "config", "", "Path to config file")
	fs.StringVar(&f.inputDir, "input-dir", "", "Directory to scan for supported assets")
	fs.StringVar(&f.outputDir, "output-dir", "", "Output directory")
	fs.StringVar(&f.suffix, "suffix", "", "Output data suffix")
	fs.StringVar(&f.format, "format", "", "Manifest format: json or yaml")
	fs.StringVar(&f.out, "out", "", `Manifest destination, "-" for stdout`)
	fs.StringVar(&f.collision, "collision", "", "Collision policy: keep-last or disambiguate")
	fs.StringVar(&f.job, "job", "", "Job name recorded in the manifest")
	fs.BoolVar(&f.noWarn, "no-warn", false, "Suppress warnings")
	fs.BoolVar(&f.allowOverride, "allow-override", false, "Record allow_override in the manifest")
}

// apply 将命令行参数覆盖到配置
func (f *requestFlags) apply(cfg *config.Config) {
	if f.suffix != "" {
		cfg.Resolver.DataSuffix = f.suffix
	}
	if f.format != "" {
		cfg.Manifest.Format = f.format
	}
	if f.collision != "" {
		cfg.Resolver.CollisionPolicy = f.collision
	}
	if f.noWarn {
		cfg.Resolver.EmitWarnings = false
	}
	if f.allowOverride {
		cfg.Resolver.AllowOverride = true
	}
}

// request 构建解析请求；positional 为位置参数给出的输入路径
func (f *requestFlags) request(cfg *config.Config, positional []string) resolver.Request {
	req := resolver.Request{
		DataSuffix:      cfg.Resolver.DataSuffix,
		InputDirectory:  f.inputDir,
		OutputDirectory: f.outputDir,
		AllowOverride:   cfg.Resolver.AllowOverride,
		EmitWarnings:    cfg.Resolver.EmitWarnings,
	}
	switch {
	case f.inputs != "":
		req.Inputs = resolver.CommaList(f.inputs)
	case len(positional) > 0:
		req.Inputs = resolver.PathList(positional...)
	}
	return req
}

// =============================================================================
// 🔍 resolve 命令
// =============================================================================

func runResolve(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("resolve", flag.ContinueOnError)
	fs.SetOutput(stderr)

	var (
		flags       requestFlags
		dryRun      bool
		requireHost bool
	)
	flags.register(fs)
	fs.StringVar(&flags.inputs, "inputs", "", "Comma-separated input files")
	fs.BoolVar(&dryRun, "dry-run", false, "Use the passthrough host instead of probing")
	fs.BoolVar(&requireHost, "require-host", false, "Fail when the 3D host is not available")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	cfg, err := loadConfig(flags.configPath, flags.apply)
	if err != nil {
		fmt.Fprintf(stderr, "Failed to load config: %v\n", err)
		return 1
	}

	req := flags.request(cfg, fs.Args())
	if err := req.Validate(); err != nil {
		fmt.Fprintf(stderr, "Invalid request: %v\n", err)
		return 2
	}

	a, err := newApp(cfg, appOptions{dryRun: dryRun, requireHost: requireHost})
	if err != nil {
		fmt.Fprintf(stderr, "Failed to start: %v\n", err)
		return 1
	}
	defer a.close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	job := flags.job
	if job == "" {
		job = "resolve"
	}
	tasks, err := a.resolver.ResolveContext(ctxkeys.WithJob(ctx, job), req)
	if err != nil {
		a.logger.Error("resolve interrupted", zap.Error(err))
		return 1
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

	m := manifest.New(job, req, tasks, a.capability)
	if err := a.writeManifest(ctx, w, m, format); err != nil {
		fmt.Fprintf(stderr, "Failed to write manifest: %v\n", err)
		return 1
	}
	return 0
}
