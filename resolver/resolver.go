package resolver

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/BaSui01/assetflow/internal/ctxkeys"
)

const instrumentationName = "github.com/BaSui01/assetflow/resolver"

// Resolver turns requests into processing tasks. It is read-only after New
// and safe for concurrent use when each call passes its own Request.
type Resolver struct {
	capability Capability
	extensions ExtensionSet
	collisions CollisionPolicy
	logger     *zap.Logger
	observer   Observer
	tracer     trace.Tracer
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithLogger sets the diagnostic sink for warnings.
func WithLogger(logger *zap.Logger) Option {
	return func(r *Resolver) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// WithObserver sets the event observer (metrics).
func WithObserver(o Observer) Option {
	return func(r *Resolver) {
		if o != nil {
			r.observer = o
		}
	}
}

// WithExtensions replaces the directory-scan extension set. An empty set is ignored.
func WithExtensions(set ExtensionSet) Option {
	return func(r *Resolver) {
		if set.Len() > 0 {
			r.extensions = set
		}
	}
}

// WithCollisionPolicy sets the output path collision policy.
func WithCollisionPolicy(p CollisionPolicy) Option {
	return func(r *Resolver) {
		if p != "" {
			r.collisions = p
		}
	}
}

// WithTracer overrides the tracer taken from the global otel provider.
func WithTracer(t trace.Tracer) Option {
	return func(r *Resolver) {
		if t != nil {
			r.tracer = t
		}
	}
}

// New creates a Resolver bound to capability.
func New(capability Capability, opts ...Option) *Resolver {
	r := &Resolver{
		capability: capability,
		extensions: NewExtensionSet(DefaultExtensions...),
		collisions: CollisionKeepLast,
		logger:     zap.NewNop(),
		observer:   nopObserver{},
		tracer:     otel.Tracer(instrumentationName),
	}
	for _, opt := range opts {
		opt(r)
	}
	r.logger = r.logger.With(zap.String("component", "resolver"))
	return r
}

// Capability returns the capability the resolver was built with.
func (r *Resolver) Capability() Capability { return r.capability }

// Extensions returns the directory-scan extension set.
func (r *Resolver) Extensions() ExtensionSet { return r.extensions }

// Resolve resolves req. Missing inputs and directories are skipped with an
// optional warning; Resolve never fails.
func (r *Resolver) Resolve(req Request) []Task {
	tasks, _ := r.ResolveContext(context.Background(), req)
	return tasks
}

// ExtractFiles is the legacy name of Resolve.
func (r *Resolver) ExtractFiles(req Request) []Task {
	return r.Resolve(req)
}

// ResolveContext is Resolve with cancellation. The only error returned is
// ctx.Err(), checked between files.
func (r *Resolver) ResolveContext(ctx context.Context, req Request) ([]Task, error) {
	start := time.Now()
	ctx, span := r.tracer.Start(ctx, "resolver.Resolve", trace.WithAttributes(
		attribute.String("resolver.data_suffix", req.DataSuffix),
		attribute.Bool("resolver.host_available", r.capability.IsAvailable()),
	))
	defer span.End()

	log := r.logger
	if job, ok := ctxkeys.Job(ctx); ok {
		log = log.With(zap.String("job", job))
		span.SetAttributes(attribute.String("resolver.job", job))
	}

	var (
		mode    Mode
		sources []string
	)
	switch {
	case req.Inputs != nil:
		mode = ModeExplicit
		sources = r.existingInputs(log, req)
	case req.InputDirectory != "":
		mode = ModeDirectory
		sources = r.scanDirectory(log, req)
	default:
		mode = ModeNone
		warn(log, req, "no input files or directory specified")
	}
	span.SetAttributes(attribute.String("resolver.mode", string(mode)))

	tasks := make([]Task, 0, len(sources))
	seen := make(map[string]struct{}, len(sources))
	for _, src := range sources {
		if err := ctx.Err(); err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			return nil, err
		}
		task := Task{SourcePath: src, OutputPath: r.outputPath(log, req, src, seen)}
		tasks = append(tasks, r.delegate(ctx, log, task))
		r.observer.ObserveTask(mode)
	}

	span.SetAttributes(attribute.Int("resolver.tasks", len(tasks)))
	r.observer.ObserveResolve(mode, len(tasks), time.Since(start))
	return tasks, nil
}

// existingInputs normalizes req.Inputs and drops paths that do not exist.
func (r *Resolver) existingInputs(log *zap.Logger, req Request) []string {
	paths := req.Inputs.Paths()
	out := make([]string, 0, len(paths))
	for _, p := range paths {
		if _, err := os.Stat(p); err != nil {
			r.observer.ObserveMissingInput()
			warn(log, req, "input file not found", zap.String("path", p))
			continue
		}
		out = append(out, p)
	}
	return out
}

// scanDirectory lists the supported files directly inside req.InputDirectory,
// sorted by name.
func (r *Resolver) scanDirectory(log *zap.Logger, req Request) []string {
	dir := req.InputDirectory
	if _, err := os.Stat(dir); err != nil {
		r.observer.ObserveMissingDirectory()
		warn(log, req, "input directory not found", zap.String("dir", dir))
		return nil
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		warn(log, req, "input directory not readable", zap.String("dir", dir), zap.Error(err))
		return nil
	}

	var out []string
	for _, e := range entries {
		if e.IsDir() || !r.extensions.Match(e.Name()) {
			continue
		}
		p := filepath.Join(dir, e.Name())
		if e.Type()&os.ModeSymlink != 0 {
			if fi, err := os.Stat(p); err != nil || fi.IsDir() {
				continue
			}
		}
		out = append(out, p)
	}
	return out
}

// outputPath derives the output path for src and applies the collision policy.
func (r *Resolver) outputPath(log *zap.Logger, req Request, src string, seen map[string]struct{}) string {
	out := DeriveOutputPath(req.OutputDirectory, src, req.DataSuffix)
	if _, dup := seen[out]; dup {
		r.observer.ObserveCollision()
		if r.collisions == CollisionDisambiguate {
			if alt := disambiguatedOutputPath(req.OutputDirectory, src, req.DataSuffix); alt != "" {
				if _, taken := seen[alt]; !taken {
					out = alt
				}
			}
		}
		if _, still := seen[out]; still {
			warn(log, req, "output path collision", zap.String("source", src), zap.String("output", out))
		}
	}
	seen[out] = struct{}{}
	return out
}

// delegate hands task to the host when one is available. A failed transform
// keeps the derived task so the result shape does not depend on the host.
func (r *Resolver) delegate(ctx context.Context, log *zap.Logger, task Task) Task {
	if !r.capability.IsAvailable() {
		return task
	}
	host := r.capability.HostName()
	ctx, span := r.tracer.Start(ctx, "resolver.Transform", trace.WithAttributes(
		attribute.String("resolver.host", host),
		attribute.String("resolver.source", task.SourcePath),
	))
	defer span.End()

	out, err := r.capability.Transform(ctx, task)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		r.observer.ObserveTransform(host, false)
		log.Error("host transform failed, keeping derived task",
			zap.String("host", host),
			zap.String("source", task.SourcePath),
			zap.Error(err),
		)
		return task
	}
	r.observer.ObserveTransform(host, true)
	return out
}

func warn(log *zap.Logger, req Request, msg string, fields ...zap.Field) {
	if !req.EmitWarnings {
		return
	}
	log.Warn(msg, fields...)
}
