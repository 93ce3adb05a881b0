// Package batch 并发执行多个相互独立的解析作业。
//
// Runner 基于 golang.org/x/sync/errgroup，按 worker 上限并发调用
// resolver.ResolveContext，结果按作业顺序返回。单个作业失败不会中止
// 其他作业；只有 context 取消会终止整个批次。
package batch
