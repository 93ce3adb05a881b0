// 版权所有 2024 AgentFlow Authors. 版权所有。
// 此源代码的使用由 MIT 许可规范,该许可可以是
// 在LICENSE文件中找到。

/*
包 metrics 提供基于 Prometheus 的资产解析指标采集能力。

# 概述

Collector 实现 resolver.Observer，使用 promauto 自动注册，所有指标按
namespace 隔离。

# 主要能力

  - 解析指标：按 mode 统计生成任务数、解析耗时与每次解析的任务数。
  - 降级指标：缺失输入文件、缺失输入目录、输出路径冲突计数。
  - 宿主指标：按 host/status 统计外部宿主转换结果。
  - 批处理与清单：批处理任务结果、清单写入结果（按 sink 分组）。
*/
package metrics
