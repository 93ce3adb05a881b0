package manifest

import (
	"bytes"
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BaSui01/assetflow/resolver"
)

func sampleManifest() *Manifest {
	req := resolver.Request{DataSuffix: "raw_data.npz", AllowOverride: true}
	tasks := []resolver.Task{
		{SourcePath: "in/a.fbx", OutputPath: "out/a_raw_data.npz"},
		{SourcePath: "in/b.obj", OutputPath: "out/b_raw_data.npz"},
	}
	capability := resolver.AvailableFunc("blender", func(_ context.Context, t resolver.Task) (resolver.Task, error) {
		return t, nil
	})
	return New("rigs", req, tasks, capability)
}

func TestNew(t *testing.T) {
	t.Parallel()
	m := sampleManifest()

	_, err := uuid.Parse(m.RunID)
	require.NoError(t, err)
	assert.Equal(t, "rigs", m.Job)
	assert.Equal(t, "raw_data.npz", m.DataSuffix)
	assert.Equal(t, "blender", m.Host)
	assert.True(t, m.HostAvailable)
	assert.True(t, m.AllowOverride)
	assert.Len(t, m.Tasks, 2)
	assert.False(t, m.CreatedAt.IsZero())

	// 每次运行分配不同的 ID
	assert.NotEqual(t, m.RunID, sampleManifest().RunID)
}

func TestNew_NilTasksEncodeAsEmptyList(t *testing.T) {
	t.Parallel()
	m := New("", resolver.Request{DataSuffix: "s"}, nil, resolver.Unavailable())
	assert.False(t, m.HostAvailable)
	assert.Equal(t, "none", m.Host)

	var buf bytes.Buffer
	require.NoError(t, m.Encode(&buf, FormatJSON))
	assert.Contains(t, buf.String(), `"tasks": []`)
}

func TestEncodeDecode(t *testing.T) {
	t.Parallel()
	for _, format := range []Format{FormatJSON, FormatYAML} {
		format := format
		t.Run(string(format), func(t *testing.T) {
			t.Parallel()
			m := sampleManifest()

			var buf bytes.Buffer
			require.NoError(t, m.Encode(&buf, format))
			assert.Contains(t, buf.String(), "out/a_raw_data.npz")

			got, err := Decode(&buf, format)
			require.NoError(t, err)
			assert.Equal(t, m.RunID, got.RunID)
			assert.Equal(t, m.Tasks, got.Tasks)
			assert.True(t, m.CreatedAt.Equal(got.CreatedAt))
		})
	}
}

func TestEncode_UnknownFormat(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	assert.Error(t, sampleManifest().Encode(&buf, Format("xml")))
}

func TestParseFormat(t *testing.T) {
	t.Parallel()
	tests := map[string]Format{"": FormatJSON, "JSON": FormatJSON, "yaml": FormatYAML, "yml": FormatYAML}
	for in, want := range tests {
		got, err := ParseFormat(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got)
	}
	_, err := ParseFormat("toml")
	assert.Error(t, err)
}

func TestFileName(t *testing.T) {
	t.Parallel()
	m := sampleManifest()
	assert.Equal(t, "rigs.json", m.fileName(FormatJSON))

	m.Job = "team/rigs"
	assert.Equal(t, "team_rigs.yaml", m.fileName(FormatYAML))

	m.Job = ""
	assert.Equal(t, m.RunID+".json", m.fileName(FormatJSON))
}
