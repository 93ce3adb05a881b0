// Package logging 根据 config.LogConfig 构建 zap.Logger。
//
// 支持 stdout、stderr 与文件输出；文件输出在启用轮转时交给 lumberjack 管理。
package logging
