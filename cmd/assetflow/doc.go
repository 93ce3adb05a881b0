// Command assetflow 将 3D 资产输入（显式列表、逗号分隔字符串或目录扫描）
// 解析为任务清单，可选委托外部 3D 宿主执行转换。
//
// 子命令：resolve（别名 extract）、batch、watch、version、help。
// 启动时加载 .env，随后按 默认值 → YAML → 环境变量 → 命令行参数 的顺序合并配置，
// 宿主只在启动时探测一次。
package main
