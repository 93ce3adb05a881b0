package host

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/BaSui01/assetflow/config"
	"github.com/BaSui01/assetflow/resolver"
	"github.com/BaSui01/assetflow/types"
)

func TestDetect(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		cfg  config.HostConfig
	}{
		{name: "disabled", cfg: config.HostConfig{Enabled: false, Command: os.Args[0]}},
		{name: "empty command", cfg: config.HostConfig{Enabled: true, Command: "  "}},
		{name: "missing command", cfg: config.HostConfig{Enabled: true, Command: "assetflow-no-such-host"}},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := Detect(tt.cfg)
			require.Error(t, err)
			assert.True(t, types.IsCode(err, types.ErrHostUnavailable))
		})
	}

	path, err := Detect(helperConfig())
	require.NoError(t, err)
	assert.Equal(t, os.Args[0], path)
}

func TestProbe_Unavailable(t *testing.T) {
	t.Parallel()
	core, logs := observer.New(zap.InfoLevel)

	capability := Probe(config.HostConfig{Enabled: true, Command: "assetflow-no-such-host"}, zap.New(core))
	assert.False(t, capability.IsAvailable())
	assert.Equal(t, 1, logs.FilterMessage("running outside host, using file processing mode").Len())
}

func TestProbe_Available(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()

	capability := Probe(helperConfig(), nil, WithEnv("GO_WANT_HELPER_PROCESS=1"))
	require.True(t, capability.IsAvailable())

	task := resolver.Task{
		SourcePath: filepath.Join(dir, "a.fbx"),
		OutputPath: filepath.Join(dir, "a_s"),
	}
	out, err := capability.Transform(context.Background(), task)
	require.NoError(t, err)
	assert.Equal(t, task, out)
	assert.FileExists(t, task.OutputPath)
}

func TestProbe_PassthroughMatchesUnavailable(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	src := filepath.Join(dir, "a.fbx")
	require.NoError(t, os.WriteFile(src, nil, 0o644))

	req := resolver.Request{DataSuffix: "s", Inputs: resolver.PathList(src), OutputDirectory: "out"}
	with := resolver.New(resolver.Available(Passthrough{})).Resolve(req)
	without := resolver.New(resolver.Unavailable()).Resolve(req)
	assert.Equal(t, without, with)
}
