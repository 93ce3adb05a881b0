// Copyright (c) AgentFlow Authors.
// Licensed under the MIT License.

/*
Package host 负责探测外部 3D 内容宿主（默认 Blender），并把它包装为
resolver.Capability。

# 探测

Probe 在启动时执行一次：宿主未启用或可执行文件不在 PATH 上时返回
resolver.Unavailable()，否则返回绑定 ExecHost 的 resolver.Available。
探测结果注入 resolver.New，进程内不存在可变的全局标志。

# 调用

ExecHost 对每个任务运行一次宿主命令。参数模板中的 {input}、{output}
占位符替换为任务的源路径与输出路径；调用受 golang.org/x/time/rate
限流，并带单次超时。

	capability := host.Probe(cfg.Host, logger)
	r := resolver.New(capability, resolver.WithLogger(logger))

Passthrough 原样返回任务，用于测试与 dry-run。
*/
package host
