// =============================================================================
// 📦 AssetFlow 配置加载器
// =============================================================================
// 统一配置加载，支持 YAML 文件 + 环境变量覆盖
//
// 使用方法:
//
//	cfg, err := config.NewLoader().
//	    WithConfigPath("assetflow.yaml").
//	    WithEnvPrefix("ASSETFLOW").
//	    Load()
//
// 配置优先级: 默认值 → YAML 文件 → 环境变量
// =============================================================================
package config

import (
	"fmt"
	"os"
	"reflect"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/BaSui01/assetflow/resolver"
)

// =============================================================================
// 🎯 核心配置结构
// =============================================================================

// Config 是 AssetFlow 的完整配置结构
type Config struct {
	// Resolver 解析默认值（作业未指定时使用）
	Resolver ResolverConfig `yaml:"resolver" env:"RESOLVER"`

	// Host 外部 3D 宿主配置
	Host HostConfig `yaml:"host" env:"HOST"`

	// Batch 批处理配置
	Batch BatchConfig `yaml:"batch" env:"BATCH"`

	// Jobs 批处理作业列表（仅支持 YAML）
	Jobs []JobConfig `yaml:"jobs"`

	// Manifest 清单输出配置
	Manifest ManifestConfig `yaml:"manifest" env:"MANIFEST"`

	// Storage 对象存储配置
	Storage StorageConfig `yaml:"storage" env:"STORAGE"`

	// Watch 监听模式配置
	Watch WatchConfig `yaml:"watch" env:"WATCH"`

	// Log 日志配置
	Log LogConfig `yaml:"log" env:"LOG"`

	// Metrics Prometheus 指标配置
	Metrics MetricsConfig `yaml:"metrics" env:"METRICS"`

	// Telemetry 遥测配置
	Telemetry TelemetryConfig `yaml:"telemetry" env:"TELEMETRY"`
}

// ResolverConfig 解析默认配置
type ResolverConfig struct {
	// 输出文件名后缀
	DataSuffix string `yaml:"data_suffix" env:"DATA_SUFFIX"`
	// 目录扫描支持的扩展名
	Extensions []string `yaml:"extensions" env:"EXTENSIONS"`
	// 输出路径冲突策略: keep-last, disambiguate
	CollisionPolicy string `yaml:"collision_policy" env:"COLLISION_POLICY"`
	// 是否输出警告
	EmitWarnings bool `yaml:"emit_warnings" env:"EMIT_WARNINGS"`
	// 保留字段，解析时不使用
	AllowOverride bool `yaml:"allow_override" env:"ALLOW_OVERRIDE"`
}

// HostConfig 外部宿主配置
type HostConfig struct {
	// 是否启用宿主探测
	Enabled bool `yaml:"enabled" env:"ENABLED"`
	// 宿主可执行文件
	Command string `yaml:"command" env:"COMMAND"`
	// 参数模板，支持 {input} 与 {output} 占位符
	Args []string `yaml:"args" env:"ARGS"`
	// 单次转换超时
	Timeout time.Duration `yaml:"timeout" env:"TIMEOUT"`
	// 每秒调用上限，0 表示不限制
	RateLimit float64 `yaml:"rate_limit" env:"RATE_LIMIT"`
	// 令牌桶容量
	Burst int `yaml:"burst" env:"BURST"`
}

// BatchConfig 批处理配置
type BatchConfig struct {
	// 并发作业数
	Workers int `yaml:"workers" env:"WORKERS"`
}

// JobConfig 单个批处理作业
type JobConfig struct {
	// 作业名称（唯一）
	Name string `yaml:"name"`
	// 覆盖默认后缀
	DataSuffix string `yaml:"data_suffix"`
	// 显式输入：字符串（逗号分隔）或列表
	Inputs *resolver.Inputs `yaml:"inputs"`
	// 输入目录
	InputDirectory string `yaml:"input_directory"`
	// 输出目录
	OutputDirectory string `yaml:"output_directory"`
	// 覆盖默认警告开关
	EmitWarnings *bool `yaml:"emit_warnings"`
	// 覆盖默认 allow_override
	AllowOverride *bool `yaml:"allow_override"`
}

// ManifestConfig 清单输出配置
type ManifestConfig struct {
	// 输出格式: json, yaml
	Format string `yaml:"format" env:"FORMAT"`
	// 输出位置: stdout, file, s3
	Sink string `yaml:"sink" env:"SINK"`
	// file 模式下的输出目录
	Directory string `yaml:"directory" env:"DIRECTORY"`
}

// StorageConfig 对象存储配置
type StorageConfig struct {
	S3 S3Config `yaml:"s3" env:"S3"`
}

// S3Config S3 兼容存储配置
type S3Config struct {
	Endpoint  string `yaml:"endpoint" env:"ENDPOINT"`
	Region    string `yaml:"region" env:"REGION"`
	AccessKey string `yaml:"access_key" env:"ACCESS_KEY"`
	SecretKey string `yaml:"secret_key" env:"SECRET_KEY"`
	Bucket    string `yaml:"bucket" env:"BUCKET"`
	Prefix    string `yaml:"prefix" env:"PREFIX"`
	UseSSL    bool   `yaml:"use_ssl" env:"USE_SSL"`
}

// WatchConfig 监听模式配置
type WatchConfig struct {
	// 轮询间隔
	Interval time.Duration `yaml:"interval" env:"INTERVAL"`
	// 防抖延迟
	Debounce time.Duration `yaml:"debounce" env:"DEBOUNCE"`
}

// LogConfig 日志配置
type LogConfig struct {
	// 日志级别: debug, info, warn, error
	Level string `yaml:"level" env:"LEVEL"`
	// 输出格式: json, console
	Format string `yaml:"format" env:"FORMAT"`
	// 输出路径: stdout, stderr 或文件路径
	OutputPaths []string `yaml:"output_paths" env:"OUTPUT_PATHS"`
	// 是否启用调用者信息
	EnableCaller bool `yaml:"enable_caller" env:"ENABLE_CALLER"`
	// 是否启用堆栈跟踪
	EnableStacktrace bool `yaml:"enable_stacktrace" env:"ENABLE_STACKTRACE"`
	// 文件轮转
	Rotation RotationConfig `yaml:"rotation" env:"ROTATION"`
}

// RotationConfig 日志文件轮转配置
type RotationConfig struct {
	Enabled    bool `yaml:"enabled" env:"ENABLED"`
	MaxSizeMB  int  `yaml:"max_size_mb" env:"MAX_SIZE_MB"`
	MaxBackups int  `yaml:"max_backups" env:"MAX_BACKUPS"`
	MaxAgeDays int  `yaml:"max_age_days" env:"MAX_AGE_DAYS"`
	Compress   bool `yaml:"compress" env:"COMPRESS"`
}

// MetricsConfig 指标配置
type MetricsConfig struct {
	// 是否启用
	Enabled bool `yaml:"enabled" env:"ENABLED"`
	// /metrics 监听地址
	Addr string `yaml:"addr" env:"ADDR"`
	// 指标命名空间
	Namespace string `yaml:"namespace" env:"NAMESPACE"`
}

// TelemetryConfig 遥测配置
type TelemetryConfig struct {
	// 是否启用
	Enabled bool `yaml:"enabled" env:"ENABLED"`
	// OTLP 端点
	OTLPEndpoint string `yaml:"otlp_endpoint" env:"OTLP_ENDPOINT"`
	// 服务名称
	ServiceName string `yaml:"service_name" env:"SERVICE_NAME"`
	// 采样率
	SampleRate float64 `yaml:"sample_rate" env:"SAMPLE_RATE"`
}

// =============================================================================
// 🔧 配置加载器
// =============================================================================

// Loader 配置加载器（Builder 模式）
type Loader struct {
	configPath string
	envPrefix  string
	validators []func(*Config) error
}

// NewLoader 创建新的配置加载器
func NewLoader() *Loader {
	return &Loader{
		envPrefix:  "ASSETFLOW",
		validators: make([]func(*Config) error, 0),
	}
}

// WithConfigPath 设置配置文件路径
func (l *Loader) WithConfigPath(path string) *Loader {
	l.configPath = path
	return l
}

// WithEnvPrefix 设置环境变量前缀
func (l *Loader) WithEnvPrefix(prefix string) *Loader {
	l.envPrefix = prefix
	return l
}

// WithValidator 添加配置验证器
func (l *Loader) WithValidator(v func(*Config) error) *Loader {
	l.validators = append(l.validators, v)
	return l
}

// Load 加载配置
// 优先级: 默认值 → YAML 文件 → 环境变量
func (l *Loader) Load() (*Config, error) {
	cfg := DefaultConfig()

	if l.configPath != "" {
		if err := l.loadFromFile(cfg); err != nil {
			return nil, fmt.Errorf("failed to load config from file: %w", err)
		}
	}

	if err := l.loadFromEnv(cfg); err != nil {
		return nil, fmt.Errorf("failed to load config from env: %w", err)
	}

	for _, v := range l.validators {
		if err := v(cfg); err != nil {
			return nil, fmt.Errorf("config validation failed: %w", err)
		}
	}

	return cfg, nil
}

// loadFromFile 从 YAML 文件加载配置
func (l *Loader) loadFromFile(cfg *Config) error {
	data, err := os.ReadFile(l.configPath)
	if err != nil {
		if os.IsNotExist(err) {
			// 文件不存在，使用默认值
			return nil
		}
		return fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("failed to parse config file: %w", err)
	}

	return nil
}

// loadFromEnv 从环境变量加载配置
func (l *Loader) loadFromEnv(cfg *Config) error {
	return l.setFieldsFromEnv(reflect.ValueOf(cfg).Elem(), l.envPrefix)
}

// setFieldsFromEnv 递归设置结构体字段
func (l *Loader) setFieldsFromEnv(v reflect.Value, prefix string) error {
	t := v.Type()

	for i := 0; i < v.NumField(); i++ {
		field := v.Field(i)
		fieldType := t.Field(i)

		envTag := fieldType.Tag.Get("env")
		if envTag == "" || envTag == "-" {
			continue
		}

		envKey := prefix + "_" + envTag

		if field.Kind() == reflect.Struct {
			if err := l.setFieldsFromEnv(field, envKey); err != nil {
				return err
			}
			continue
		}

		envValue := os.Getenv(envKey)
		if envValue == "" {
			continue
		}

		if err := setFieldValue(field, envValue); err != nil {
			return fmt.Errorf("failed to set %s: %w", envKey, err)
		}
	}

	return nil
}

// setFieldValue 设置字段值
func setFieldValue(field reflect.Value, value string) error {
	if !field.CanSet() {
		return nil
	}

	switch field.Kind() {
	case reflect.String:
		field.SetString(value)

	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		// 特殊处理 time.Duration
		if field.Type() == reflect.TypeOf(time.Duration(0)) {
			d, err := time.ParseDuration(value)
			if err != nil {
				return err
			}
			field.SetInt(int64(d))
		} else {
			i, err := strconv.ParseInt(value, 10, 64)
			if err != nil {
				return err
			}
			field.SetInt(i)
		}

	case reflect.Float32, reflect.Float64:
		f, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return err
		}
		field.SetFloat(f)

	case reflect.Bool:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return err
		}
		field.SetBool(b)

	case reflect.Slice:
		// 支持逗号分隔的字符串切片
		if field.Type().Elem().Kind() == reflect.String {
			parts := strings.Split(value, ",")
			for i := range parts {
				parts[i] = strings.TrimSpace(parts[i])
			}
			field.Set(reflect.ValueOf(parts))
		}
	}

	return nil
}

// =============================================================================
// 🔍 辅助函数
// =============================================================================

// MustLoad 加载配置，失败时 panic
func MustLoad(path string) *Config {
	cfg, err := NewLoader().WithConfigPath(path).Load()
	if err != nil {
		panic(fmt.Sprintf("failed to load config: %v", err))
	}
	return cfg
}

// LoadFromEnv 仅从环境变量加载配置
func LoadFromEnv() (*Config, error) {
	return NewLoader().Load()
}
