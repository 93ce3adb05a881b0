package resolver

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BaSui01/assetflow/internal/ctxkeys"
)

func TestResolveContext_JobFieldOnWarnings(t *testing.T) {
	t.Parallel()
	logger, logs := observedLogger()
	r := New(Unavailable(), WithLogger(logger))

	ctx := ctxkeys.WithJob(context.Background(), "rigs")
	tasks, err := r.ResolveContext(ctx, Request{
		DataSuffix:      "s",
		Inputs:          PathList(filepath.Join(t.TempDir(), "missing.fbx")),
		OutputDirectory: "out",
		EmitWarnings:    true,
	})
	require.NoError(t, err)
	assert.Empty(t, tasks)

	entries := logs.FilterMessage("input file not found").All()
	require.Len(t, entries, 1)
	assert.Equal(t, "rigs", entries[0].ContextMap()["job"])
	assert.Equal(t, "resolver", entries[0].ContextMap()["component"])
}
