// Package watch 轮询监听输入目录，将新增与修改的资产文件
// 防抖后批量交给回调，供 CLI 的 watch 子命令增量解析。
package watch
