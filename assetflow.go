// Package assetflow provides a top-level convenience entry point for building
// a resolver from configuration with minimal boilerplate.
//
// Usage:
//
//	import "github.com/BaSui01/assetflow"
//
//	cfg, _ := config.NewLoader().WithConfigPath("assetflow.yaml").Load()
//	r, err := assetflow.New(cfg, logger)
//	tasks := r.Resolve(resolver.Request{...})
//
// New probes the 3D host once; NewWithCapability takes a capability decided
// by the caller (tests, dry runs).
package assetflow

import (
	"go.uber.org/zap"

	"github.com/BaSui01/assetflow/config"
	"github.com/BaSui01/assetflow/host"
	"github.com/BaSui01/assetflow/resolver"
	"github.com/BaSui01/assetflow/types"
)

// New builds a resolver from cfg, probing the configured host.
// Extra opts are applied after the config-derived ones.
func New(cfg *config.Config, logger *zap.Logger, opts ...resolver.Option) (*resolver.Resolver, error) {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	return NewWithCapability(cfg, host.Probe(cfg.Host, logger), logger, opts...)
}

// NewWithCapability builds a resolver from cfg bound to capability.
func NewWithCapability(cfg *config.Config, capability resolver.Capability, logger *zap.Logger, opts ...resolver.Option) (*resolver.Resolver, error) {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	base, err := cfg.Resolver.ResolverOptions()
	if err != nil {
		return nil, types.NewInvalidConfigError(err.Error())
	}
	if logger != nil {
		base = append(base, resolver.WithLogger(logger))
	}
	return resolver.New(capability, append(base, opts...)...), nil
}
