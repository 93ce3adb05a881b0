package config

import (
	"fmt"
	"strings"

	"github.com/BaSui01/assetflow/resolver"
	"github.com/BaSui01/assetflow/types"
)

// Validate 验证配置
func (c *Config) Validate() error {
	var errs []string

	if _, err := resolver.ParseCollisionPolicy(c.Resolver.CollisionPolicy); err != nil {
		errs = append(errs, err.Error())
	}
	if resolver.NewExtensionSet(c.Resolver.Extensions...).Len() == 0 {
		errs = append(errs, "resolver.extensions must not be empty")
	}

	if c.Host.Enabled {
		if strings.TrimSpace(c.Host.Command) == "" {
			errs = append(errs, "host.command is required when host is enabled")
		}
		if c.Host.Timeout < 0 {
			errs = append(errs, "host.timeout must not be negative")
		}
		if c.Host.RateLimit < 0 {
			errs = append(errs, "host.rate_limit must not be negative")
		}
	}

	if c.Batch.Workers <= 0 {
		errs = append(errs, "batch.workers must be positive")
	}

	switch strings.ToLower(c.Manifest.Format) {
	case "", "json", "yaml", "yml":
	default:
		errs = append(errs, fmt.Sprintf("unsupported manifest.format %q (supported: json, yaml)", c.Manifest.Format))
	}
	switch c.Manifest.Sink {
	case "stdout":
	case "file":
		if strings.TrimSpace(c.Manifest.Directory) == "" {
			errs = append(errs, "manifest.directory is required for the file sink")
		}
	case "s3":
		s3 := c.Storage.S3
		if s3.Endpoint == "" || s3.Bucket == "" || s3.AccessKey == "" || s3.SecretKey == "" {
			errs = append(errs, "storage.s3 endpoint, bucket, access_key and secret_key are required for the s3 sink")
		}
	default:
		errs = append(errs, fmt.Sprintf("unsupported manifest.sink %q (supported: stdout, file, s3)", c.Manifest.Sink))
	}

	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		errs = append(errs, fmt.Sprintf("unsupported log.level %q", c.Log.Level))
	}

	if c.Telemetry.Enabled && (c.Telemetry.SampleRate < 0 || c.Telemetry.SampleRate > 1) {
		errs = append(errs, "telemetry.sample_rate must be between 0 and 1")
	}

	seen := make(map[string]struct{}, len(c.Jobs))
	for i, job := range c.Jobs {
		if strings.TrimSpace(job.Name) == "" {
			errs = append(errs, fmt.Sprintf("jobs[%d].name is required", i))
			continue
		}
		if _, dup := seen[job.Name]; dup {
			errs = append(errs, fmt.Sprintf("duplicate job name %q", job.Name))
		}
		seen[job.Name] = struct{}{}
		if err := job.Request(c.Resolver).Validate(); err != nil {
			errs = append(errs, fmt.Sprintf("job %q: %v", job.Name, err))
		}
	}

	if len(errs) > 0 {
		return types.NewInvalidConfigError(fmt.Sprintf("config validation errors: %s", strings.Join(errs, "; ")))
	}

	return nil
}

// Request 合并作业与解析默认值，生成解析请求
func (j JobConfig) Request(defaults ResolverConfig) resolver.Request {
	req := resolver.Request{
		DataSuffix:      defaults.DataSuffix,
		Inputs:          j.Inputs,
		InputDirectory:  j.InputDirectory,
		OutputDirectory: j.OutputDirectory,
		AllowOverride:   defaults.AllowOverride,
		EmitWarnings:    defaults.EmitWarnings,
	}
	if j.DataSuffix != "" {
		req.DataSuffix = j.DataSuffix
	}
	if j.EmitWarnings != nil {
		req.EmitWarnings = *j.EmitWarnings
	}
	if j.AllowOverride != nil {
		req.AllowOverride = *j.AllowOverride
	}
	return req
}

// ResolverOptions 将解析配置转换为 resolver 选项
func (r ResolverConfig) ResolverOptions() ([]resolver.Option, error) {
	policy, err := resolver.ParseCollisionPolicy(r.CollisionPolicy)
	if err != nil {
		return nil, err
	}
	return []resolver.Option{
		resolver.WithExtensions(resolver.NewExtensionSet(r.Extensions...)),
		resolver.WithCollisionPolicy(policy),
	}, nil
}
