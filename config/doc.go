// Package config 提供 AssetFlow 的配置管理功能。
//
// 配置按 默认值 → YAML 文件 → 环境变量（前缀 ASSETFLOW）的顺序加载，
// 覆盖解析默认值、外部宿主、批处理作业、清单输出、日志、指标与遥测。
package config
