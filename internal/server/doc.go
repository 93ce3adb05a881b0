// 版权所有 2024 AgentFlow Authors. 版权所有。
// 此源代码的使用由 MIT 许可规范,该许可可以是
// 在LICENSE文件中找到。

/*
包 server 管理 CLI 在运行期间暴露的 HTTP 端点（Prometheus /metrics
与 /healthz），支持非阻塞启动与优雅关闭。

# 核心类型

  - Manager：持有 http.Server 与 net.Listener，提供 Start/Shutdown/
    Errors/Addr 等生命周期方法。
  - Config：监听地址、读写超时与优雅关闭超时。

# 使用方式

	mux := server.MetricsMux()
	m := server.NewManager(mux, server.Config{Addr: cfg.Metrics.Addr}, logger)
	if err := m.Start(); err != nil { ... }
	defer m.Shutdown(context.Background())

Addr 在 Start 之后返回实际监听地址，":0" 时可用于获取随机端口。
*/
package server
