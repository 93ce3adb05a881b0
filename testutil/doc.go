/*
Package testutil 提供 AssetFlow 测试的共享夹具和辅助函数。

# 核心能力

  - 上下文辅助: TestContext / CancelledContext，自动注册 Cleanup
  - 资产夹具: TouchAsset / AssetDir 在临时目录中创建占位资产文件
  - 文件夹具: WriteFile 写入配置等测试文件

# 使用示例

	dir := testutil.AssetDir(t, "a.fbx", "b.txt", "C.GLB")
	tasks := r.Resolve(resolver.Request{
		DataSuffix:      "raw_data.npz",
		InputDirectory:  dir,
		OutputDirectory: "out",
	})
*/
package testutil
