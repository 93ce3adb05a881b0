package resolver

import "context"

// Host is an external 3D content environment able to transform one asset.
// Transform receives the derived task and returns the task to emit, which may
// be identical.
type Host interface {
	Name() string
	Transform(ctx context.Context, task Task) (Task, error)
}

// TransformFunc adapts a function to the Host interface.
type TransformFunc func(ctx context.Context, task Task) (Task, error)

type funcHost struct {
	name string
	fn   TransformFunc
}

func (h funcHost) Name() string { return h.name }

func (h funcHost) Transform(ctx context.Context, task Task) (Task, error) {
	return h.fn(ctx, task)
}

// Capability records whether a host is present. It is decided once at startup
// and passed to New; the zero value is Unavailable.
type Capability struct {
	host Host
}

// Unavailable returns the capability for batch contexts without a host.
func Unavailable() Capability {
	return Capability{}
}

// Available returns a capability delegating to h. A nil host is Unavailable.
func Available(h Host) Capability {
	return Capability{host: h}
}

// AvailableFunc returns a capability delegating to fn under the given name.
func AvailableFunc(name string, fn TransformFunc) Capability {
	if fn == nil {
		return Unavailable()
	}
	return Available(funcHost{name: name, fn: fn})
}

// IsAvailable reports whether transforms are delegated.
func (c Capability) IsAvailable() bool {
	return c.host != nil
}

// HostName returns the host name, or "none".
func (c Capability) HostName() string {
	if c.host == nil {
		return "none"
	}
	return c.host.Name()
}

// Transform delegates to the host, or returns task unchanged when unavailable.
func (c Capability) Transform(ctx context.Context, task Task) (Task, error) {
	if c.host == nil {
		return task, nil
	}
	return c.host.Transform(ctx, task)
}
