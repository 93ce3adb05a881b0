// Copyright (c) AgentFlow Authors.
// Licensed under the MIT License.

/*
Package manifest 记录一次解析运行的结果清单，并写入 stdout、本地文件或
S3 兼容对象存储。

# 清单结构

Manifest 包含运行 ID（UUID）、作业名、请求参数摘要、宿主状态以及
解析得到的任务列表。编码格式支持 JSON 与 YAML。

# 写入目标

  - StreamWriter: 写入任意 io.Writer，CLI 默认写 stdout
  - FileWriter: 写入 <directory>/<job>.<ext> 或指定路径
  - S3Writer: 基于 minio-go，对象键为 <prefix>/<run_id>/<job>.<ext>，
    首次写入时按需创建 bucket
*/
package manifest
