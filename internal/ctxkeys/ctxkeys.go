// Package ctxkeys 定义在 context 中传递的请求级数据。
package ctxkeys

import "context"

// contextKey 用于在 context 中存储值的键类型
type contextKey string

const jobKey contextKey = "job"

// WithJob 设置作业名
func WithJob(ctx context.Context, job string) context.Context {
	return context.WithValue(ctx, jobKey, job)
}

// Job 获取作业名
func Job(ctx context.Context) (string, bool) {
	v, ok := ctx.Value(jobKey).(string)
	if !ok || v == "" {
		return "", false
	}
	return v, true
}
