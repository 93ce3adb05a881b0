// Copyright (c) AgentFlow Authors.
// Licensed under the MIT License.

/*
Package types 提供 AssetFlow 的全局共享类型定义。

# 概述

types 是最底层的公共包，不依赖任何内部包，为 config、host、manifest、
batch 与 CLI 提供统一的错误契约。resolver 本身不返回业务错误；外层组件
通过 Error / ErrorCode 报告配置、宿主与清单写入失败。

# 核心类型

  - Error     — 结构化错误（Code、Message、Retryable、Host、Cause）
  - ErrorCode — INVALID_REQUEST、INVALID_CONFIG、HOST_UNAVAILABLE、
    TRANSFORM_FAILED、TIMEOUT、MANIFEST_WRITE

# 主要能力

  - 错误链：Unwrap 支持 errors.Is / errors.As
  - 错误查询：IsCode / GetErrorCode / IsRetryable
  - 常用构造：NewInvalidConfigError / NewTransformError
*/
package types
