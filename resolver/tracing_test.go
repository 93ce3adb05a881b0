package resolver

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/BaSui01/assetflow/testutil"
)

func recordingTracer() (*tracetest.SpanRecorder, *sdktrace.TracerProvider) {
	rec := tracetest.NewSpanRecorder()
	return rec, sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(rec))
}

func TestResolveContext_Spans(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	a := testutil.TouchAsset(t, dir, "a.fbx")
	b := testutil.TouchAsset(t, dir, "b.obj")

	rec, tp := recordingTracer()
	r := New(passthrough(), WithTracer(tp.Tracer("test")))

	_, err := r.ResolveContext(context.Background(), Request{
		DataSuffix:      "s",
		Inputs:          PathList(a, b),
		OutputDirectory: "out",
	})
	require.NoError(t, err)

	spans := rec.Ended()
	require.Len(t, spans, 3)

	names := make(map[string]int)
	for _, s := range spans {
		names[s.Name()]++
	}
	assert.Equal(t, 1, names["resolver.Resolve"])
	assert.Equal(t, 2, names["resolver.Transform"])

	// 根 span 最后结束
	root := spans[2]
	assert.Equal(t, "resolver.Resolve", root.Name())
	for _, s := range spans[:2] {
		assert.Equal(t, root.SpanContext().SpanID(), s.Parent().SpanID())
	}
}

func TestResolveContext_TransformErrorSpanStatus(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	a := testutil.TouchAsset(t, dir, "a.fbx")

	rec, tp := recordingTracer()
	failing := AvailableFunc("broken", func(context.Context, Task) (Task, error) {
		return Task{}, errors.New("host crashed")
	})
	r := New(failing, WithTracer(tp.Tracer("test")))

	tasks := r.Resolve(Request{DataSuffix: "s", Inputs: PathList(a), OutputDirectory: "out"})
	require.Len(t, tasks, 1)

	var transform sdktrace.ReadOnlySpan
	for _, s := range rec.Ended() {
		if s.Name() == "resolver.Transform" {
			transform = s
		}
	}
	require.NotNil(t, transform)
	assert.Equal(t, codes.Error, transform.Status().Code)
	assert.Equal(t, "host crashed", transform.Status().Description)
}

func TestResolveContext_NoTransformSpanWithoutHost(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	a := testutil.TouchAsset(t, dir, "a.fbx")

	rec, tp := recordingTracer()
	r := New(Unavailable(), WithTracer(tp.Tracer("test")))
	r.Resolve(Request{DataSuffix: "s", Inputs: PathList(a), OutputDirectory: "out"})

	spans := rec.Ended()
	require.Len(t, spans, 1)
	assert.Equal(t, "resolver.Resolve", spans[0].Name())
}
