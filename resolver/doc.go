// Copyright (c) AgentFlow Authors.
// Licensed under the MIT License.

/*
包 resolver 将 3D 资产输入（显式路径列表、逗号分隔字符串或目录扫描）解析为
下游处理阶段使用的 (源文件, 输出路径) 任务列表。

# 概述

resolver 只做路径层面的工作：判断输入是否存在、按扩展名过滤目录条目、
为每个输入推导唯一的输出文件名。真正的内容转换交给可选的外部宿主
（例如 Blender），宿主能力在启动时探测一次并通过 Capability 注入。

缺失的文件或目录不会作为错误返回，而是记录一条警告（EmitWarnings 为 true 时）
并在结果中略过。调用方应通过结果数量判断本次解析是否降级。

# 核心类型

  - Request    — 一次解析请求（输入、输入目录、输出目录、后缀、警告开关）
  - Inputs     — 路径列表或逗号分隔字符串两种输入形态
  - Task       — 解析结果 (SourcePath, OutputPath)
  - Capability — 宿主能力，Available(host) 或 Unavailable()
  - Resolver   — 解析器，构造后只读，可并发使用

# 使用方法

	r := resolver.New(resolver.Unavailable(), resolver.WithLogger(logger))
	tasks := r.Resolve(resolver.Request{
	    DataSuffix:      "raw_data.npz",
	    Inputs:          resolver.CommaList("a.fbx, b.obj"),
	    OutputDirectory: "dataset/clean",
	    EmitWarnings:    true,
	})
*/
package resolver
