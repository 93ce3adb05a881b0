// =============================================================================
// 📦 AssetFlow 默认配置
// =============================================================================
// 提供所有配置项的合理默认值
// =============================================================================
package config

import (
	"time"

	"github.com/BaSui01/assetflow/resolver"
)

// DefaultConfig 返回默认配置
func DefaultConfig() *Config {
	return &Config{
		Resolver:  DefaultResolverConfig(),
		Host:      DefaultHostConfig(),
		Batch:     DefaultBatchConfig(),
		Manifest:  DefaultManifestConfig(),
		Storage:   DefaultStorageConfig(),
		Watch:     DefaultWatchConfig(),
		Log:       DefaultLogConfig(),
		Metrics:   DefaultMetricsConfig(),
		Telemetry: DefaultTelemetryConfig(),
	}
}

// DefaultResolverConfig 返回默认解析配置
func DefaultResolverConfig() ResolverConfig {
	return ResolverConfig{
		DataSuffix:      "raw_data.npz",
		Extensions:      append([]string(nil), resolver.DefaultExtensions...),
		CollisionPolicy: string(resolver.CollisionKeepLast),
		EmitWarnings:    true,
		AllowOverride:   false,
	}
}

// DefaultHostConfig 返回默认宿主配置（默认不探测）
func DefaultHostConfig() HostConfig {
	return HostConfig{
		Enabled: false,
		Command: "blender",
		Args: []string{
			"--background",
			"--python", "scripts/extract.py",
			"--", "{input}", "{output}",
		},
		Timeout:   10 * time.Minute,
		RateLimit: 0,
		Burst:     1,
	}
}

// DefaultBatchConfig 返回默认批处理配置
func DefaultBatchConfig() BatchConfig {
	return BatchConfig{
		Workers: 4,
	}
}

// DefaultManifestConfig 返回默认清单配置
func DefaultManifestConfig() ManifestConfig {
	return ManifestConfig{
		Format:    "json",
		Sink:      "stdout",
		Directory: "manifests",
	}
}

// DefaultStorageConfig 返回默认存储配置
func DefaultStorageConfig() StorageConfig {
	return StorageConfig{
		S3: S3Config{
			Endpoint: "localhost:9000",
			Region:   "us-east-1",
			Bucket:   "assetflow",
			Prefix:   "manifests",
			UseSSL:   false,
		},
	}
}

// DefaultWatchConfig 返回默认监听配置
func DefaultWatchConfig() WatchConfig {
	return WatchConfig{
		Interval: 2 * time.Second,
		Debounce: 500 * time.Millisecond,
	}
}

// DefaultLogConfig 返回默认日志配置
func DefaultLogConfig() LogConfig {
	return LogConfig{
		Level:            "info",
		Format:           "console",
		OutputPaths:      []string{"stderr"},
		EnableCaller:     false,
		EnableStacktrace: false,
		Rotation: RotationConfig{
			Enabled:    false,
			MaxSizeMB:  100,
			MaxBackups: 3,
			MaxAgeDays: 7,
			Compress:   true,
		},
	}
}

// DefaultMetricsConfig 返回默认指标配置
func DefaultMetricsConfig() MetricsConfig {
	return MetricsConfig{
		Enabled:   false,
		Addr:      ":9091",
		Namespace: "assetflow",
	}
}

// DefaultTelemetryConfig 返回默认遥测配置
func DefaultTelemetryConfig() TelemetryConfig {
	return TelemetryConfig{
		Enabled:      false,
		OTLPEndpoint: "localhost:4317",
		ServiceName:  "assetflow",
		SampleRate:   0.1,
	}
}
