// =============================================================================
// AssetFlow 命令行入口
// =============================================================================
// 将 3D 资产输入解析为 (源文件, 输出路径) 任务清单
//
// 使用方法:
//
//	assetflow resolve --inputs a.fbx,b.obj --output-dir out   # 解析显式输入
//	assetflow resolve --input-dir assets --output-dir out     # 扫描目录
//	assetflow batch --config assetflow.yaml                   # 执行配置中的作业
//	assetflow watch --input-dir assets --output-dir out       # 监听目录增量解析
//	assetflow version                                         # 显示版本信息
//
// =============================================================================
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/joho/godotenv"
)

// =============================================================================
// 📦 版本信息（构建时注入）
// =============================================================================

var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

// =============================================================================
// 🎯 主函数
// =============================================================================

func main() {
	// .env 可选，不存在时忽略
	_ = godotenv.Load()
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run 执行子命令并返回退出码：0 成功，1 执行失败，2 用法错误
func run(args []string, stdout, stderr io.Writer) int {
	if len(args) < 1 {
		printUsage(stderr)
		return 2
	}

	switch args[0] {
	case "resolve", "extract":
		return runResolve(args[1:], stdout, stderr)
	case "batch":
		return runBatch(args[1:], stdout, stderr)
	case "watch":
		return runWatch(args[1:], stdout, stderr)
	case "version":
		printVersion(stdout)
		return 0
	case "help", "-h", "--help":
		printUsage(stdout)
		return 0
	default:
		fmt.Fprintf(stderr, "Unknown command: %s\n", args[0])
		printUsage(stderr)
		return 2
	}
}

// =============================================================================
// 📋 版本和帮助
// =============================================================================

func printVersion(w io.Writer) {
	fmt.Fprintf(w, "AssetFlow %s\n", Version)
	fmt.Fprintf(w, "  Build Time: %s\n", BuildTime)
	fmt.Fprintf(w, "  Git Commit: %s\n", GitCommit)
}

func printUsage(w io.Writer) {
	fmt.Fprintln(w, `AssetFlow - 3D asset input resolver

Usage:
  assetflow <command> [options]

Commands:
  resolve   Resolve inputs or a directory into a task manifest (alias: extract)
  batch     Run every job in the config file concurrently
  watch     Watch an input directory and resolve new or changed files
  version   Show version information
  help      Show this help message

Options for 'resolve':
  --config <path>         Path to configuration file (YAML)
  --inputs <a,b,...>      Comma-separated input files (positional paths also accepted)
  --input-dir <dir>       Scan a directory for supported assets
  --output-dir <dir>      Directory the output names are derived under
  --suffix <label>        Output data suffix (default from config)
  --format json|yaml      Manifest format
  --out <path>            Manifest destination, "-" for stdout
  --collision <policy>    keep-last or disambiguate
  --no-warn               Suppress missing-input warnings
  --allow-override        Record allow_override in the manifest
  --dry-run               Use the passthrough host instead of probing
  --require-host          Fail when the 3D host is not available

Options for 'batch':
  --config <path>         Path to configuration file (required)
  --workers <n>           Concurrent jobs
  --out <path>            Manifest destination, "-" for stdout; a directory when several jobs run
  --dry-run               Use the passthrough host instead of probing

Options for 'watch':
  --config <path>, --input-dir, --output-dir, --suffix, --format, --out, --job, --dry-run
  --interval <dur>        Poll interval
  --debounce <dur>        Quiet period before resolving a batch of changes

Examples:
  assetflow resolve --inputs "a.fbx, b.obj" --output-dir out
  assetflow resolve --input-dir assets --output-dir out --format yaml --out run.yaml
  assetflow batch --config /etc/assetflow/assetflow.yaml
  assetflow version`)
}
