// =============================================================================
// 🧪 测试辅助函数
// =============================================================================
// 提供资产文件夹具与上下文辅助
//
// 使用方法:
//
//	dir := testutil.AssetDir(t, "a.fbx", "b.obj", "notes.txt")
//	path := testutil.TouchAsset(t, dir, "c.glb")
//
// =============================================================================
package testutil

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// =============================================================================
// 🎯 上下文辅助
// =============================================================================

// TestContext 返回带超时的测试上下文
func TestContext(t *testing.T) context.Context {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	t.Cleanup(cancel)
	return ctx
}

// CancelledContext 返回已取消的上下文
func CancelledContext() context.Context {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	return ctx
}

// =============================================================================
// 📁 资产文件夹具
// =============================================================================

// TouchAsset 在 dir 下创建名为 name 的占位资产文件并返回其路径，
// name 可包含子目录
func TouchAsset(t *testing.T, dir, name string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
	require.NoError(t, os.WriteFile(p, []byte("asset"), 0o644))
	return p
}

// AssetDir 创建临时目录并放入 names 对应的占位文件
func AssetDir(t *testing.T, names ...string) string {
	t.Helper()
	dir := t.TempDir()
	for _, name := range names {
		TouchAsset(t, dir, name)
	}
	return dir
}

// WriteFile 将 content 写入 dir/name 并返回路径，用于配置文件等夹具
func WriteFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
	return p
}
