package host

import (
	"context"

	"github.com/BaSui01/assetflow/resolver"
)

// Passthrough 原样返回任务的宿主
type Passthrough struct{}

var _ resolver.Host = Passthrough{}

// Name 返回 "passthrough"
func (Passthrough) Name() string { return "passthrough" }

// Transform 返回 task 本身
func (Passthrough) Transform(_ context.Context, task resolver.Task) (resolver.Task, error) {
	return task, nil
}
