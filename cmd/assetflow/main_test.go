package main

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BaSui01/assetflow/internal/watch"
	"github.com/BaSui01/assetflow/manifest"
	"github.com/BaSui01/assetflow/resolver"
	"github.com/BaSui01/assetflow/testutil"
)

func decodeManifest(t *testing.T, data []byte, format manifest.Format) *manifest.Manifest {
	t.Helper()
	m, err := manifest.Decode(bytes.NewReader(data), format)
	require.NoError(t, err)
	return m
}

// --- 版本与帮助 ---

func TestRun_Version(t *testing.T) {
	var stdout, stderr bytes.Buffer
	assert.Equal(t, 0, run([]string{"version"}, &stdout, &stderr))
	assert.Contains(t, stdout.String(), "AssetFlow dev")
}

func TestRun_Help(t *testing.T) {
	var stdout, stderr bytes.Buffer
	assert.Equal(t, 0, run([]string{"help"}, &stdout, &stderr))
	assert.Contains(t, stdout.String(), "Usage:")
}

func TestRun_UsageErrors(t *testing.T) {
	var stdout, stderr bytes.Buffer
	assert.Equal(t, 2, run(nil, &stdout, &stderr))
	assert.Equal(t, 2, run([]string{"serve"}, &stdout, &stderr))
	assert.Contains(t, stderr.String(), "Unknown command: serve")
	assert.Equal(t, 2, run([]string{"resolve", "--bogus"}, &stdout, &stderr))
}

// --- resolve ---

func TestRunResolve_CommaInputsToStdout(t *testing.T) {
	dir := t.TempDir()
	a := testutil.TouchAsset(t, dir, "a.fbx")
	b := testutil.TouchAsset(t, dir, "b.obj")
	out := filepath.Join(dir, "out")

	var stdout, stderr bytes.Buffer
	code := run([]string{"resolve",
		"--inputs", a + ", " + filepath.Join(dir, "missing.fbx") + " ," + b,
		"--output-dir", out,
		"--suffix", "s.npz",
		"--allow-override",
	}, &stdout, &stderr)
	require.Equal(t, 0, code, stderr.String())

	m := decodeManifest(t, stdout.Bytes(), manifest.FormatJSON)
	assert.Equal(t, "resolve", m.Job)
	assert.True(t, m.AllowOverride)
	assert.False(t, m.HostAvailable)
	require.Len(t, m.Tasks, 2)
	assert.Equal(t, a, m.Tasks[0].SourcePath)
	assert.Equal(t, filepath.Join(out, "a_s.npz"), m.Tasks[0].OutputPath)
	assert.Equal(t, filepath.Join(out, "b_s.npz"), m.Tasks[1].OutputPath)
}

func TestRunResolve_PositionalInputsMatchCommaList(t *testing.T) {
	dir := t.TempDir()
	a := testutil.TouchAsset(t, dir, "a.fbx")
	b := testutil.TouchAsset(t, dir, "b.obj")

	var comma, list, stderr bytes.Buffer
	require.Equal(t, 0, run([]string{"resolve", "--inputs", a + "," + b, "--output-dir", "o"}, &comma, &stderr))
	require.Equal(t, 0, run([]string{"resolve", "--output-dir", "o", a, b}, &list, &stderr))

	assert.Equal(t,
		decodeManifest(t, comma.Bytes(), manifest.FormatJSON).Tasks,
		decodeManifest(t, list.Bytes(), manifest.FormatJSON).Tasks)
}

func TestRunResolve_DirectoryToYAMLFile(t *testing.T) {
	dir := t.TempDir()
	testutil.TouchAsset(t, dir, "a.fbx")
	testutil.TouchAsset(t, dir, "b.txt")
	testutil.TouchAsset(t, dir, "C.GLB")
	manifestPath := filepath.Join(t.TempDir(), "run.yaml")

	var stdout, stderr bytes.Buffer
	code := run([]string{"resolve",
		"--input-dir", dir,
		"--output-dir", "out",
		"--format", "yaml",
		"--out", manifestPath,
		"--dry-run",
		"--job", "scan",
	}, &stdout, &stderr)
	require.Equal(t, 0, code, stderr.String())
	assert.Empty(t, stdout.String())

	data, err := os.ReadFile(manifestPath)
	require.NoError(t, err)
	m := decodeManifest(t, data, manifest.FormatYAML)
	assert.Equal(t, "scan", m.Job)
	assert.True(t, m.HostAvailable)
	assert.Equal(t, "passthrough", m.Host)
	require.Len(t, m.Tasks, 2)
	assert.Equal(t, filepath.Join(dir, "C.GLB"), m.Tasks[0].SourcePath)
	assert.Equal(t, filepath.Join(dir, "a.fbx"), m.Tasks[1].SourcePath)
}

func TestRunResolve_MissingDirectoryIsEmpty(t *testing.T) {
	var stdout, stderr bytes.Buffer
	code := run([]string{"resolve", "--input-dir", filepath.Join(t.TempDir(), "nope"), "--output-dir", "out", "--no-warn"}, &stdout, &stderr)
	require.Equal(t, 0, code, stderr.String())
	assert.Empty(t, decodeManifest(t, stdout.Bytes(), manifest.FormatJSON).Tasks)
}

func TestRunResolve_InvalidRequest(t *testing.T) {
	var stdout, stderr bytes.Buffer
	assert.Equal(t, 2, run([]string{"resolve", "--input-dir", "assets"}, &stdout, &stderr))
	assert.Contains(t, stderr.String(), "output directory is required")
}

func TestRunResolve_RequireHost(t *testing.T) {
	t.Setenv("ASSETFLOW_HOST_ENABLED", "true")
	t.Setenv("ASSETFLOW_HOST_COMMAND", "assetflow-no-such-host")

	var stdout, stderr bytes.Buffer
	code := run([]string{"resolve", "--input-dir", t.TempDir(), "--output-dir", "out", "--require-host"}, &stdout, &stderr)
	assert.Equal(t, 1, code)
	assert.Contains(t, stderr.String(), "HOST_UNAVAILABLE")
}

func TestRunResolve_BadCollisionPolicy(t *testing.T) {
	var stdout, stderr bytes.Buffer
	code := run([]string{"resolve", "--input-dir", t.TempDir(), "--output-dir", "out", "--collision", "error"}, &stdout, &stderr)
	assert.Equal(t, 1, code)
	assert.Contains(t, stderr.String(), "INVALID_CONFIG")
}

// --- batch ---

func TestRunBatch(t *testing.T) {
	assets := t.TempDir()
	testutil.TouchAsset(t, assets, "a.fbx")
	testutil.TouchAsset(t, assets, "b.ply")
	manifests := filepath.Join(t.TempDir(), "manifests")

	yamlContent := `
resolver:
  data_suffix: raw_data.npz
manifest:
  format: json
  sink: file
  directory: ` + manifests + `
jobs:
  - name: scan
    input_directory: ` + assets + `
    output_directory: out/scan
  - name: explicit
    inputs: "` + filepath.Join(assets, "a.fbx") + `"
    output_directory: out/explicit
    data_suffix: skin.npz
`
	configPath := testutil.WriteFile(t, t.TempDir(), "assetflow.yaml", yamlContent)

	var stdout, stderr bytes.Buffer
	code := run([]string{"batch", "--config", configPath, "--workers", "2"}, &stdout, &stderr)
	require.Equal(t, 0, code, stderr.String())

	data, err := os.ReadFile(filepath.Join(manifests, "scan.json"))
	require.NoError(t, err)
	assert.Len(t, decodeManifest(t, data, manifest.FormatJSON).Tasks, 2)

	data, err = os.ReadFile(filepath.Join(manifests, "explicit.json"))
	require.NoError(t, err)
	m := decodeManifest(t, data, manifest.FormatJSON)
	require.Len(t, m.Tasks, 1)
	assert.Equal(t, filepath.Join("out", "explicit", "a_skin.npz"), m.Tasks[0].OutputPath)
}

func TestRunBatch_SharedOutWithConcurrentJobs(t *testing.T) {
	assets := t.TempDir()
	testutil.TouchAsset(t, assets, "a.fbx")

	var jobs bytes.Buffer
	for i := 0; i < 6; i++ {
		fmt.Fprintf(&jobs, "  - name: j%d\n    inputs: %q\n    output_directory: out/j%d\n",
			i, filepath.Join(assets, "a.fbx"), i)
	}
	configPath := testutil.WriteFile(t, t.TempDir(), "assetflow.yaml", "jobs:\n"+jobs.String())
	out := filepath.Join(t.TempDir(), "run.json")

	var stdout, stderr bytes.Buffer
	code := run([]string{"batch", "--config", configPath, "--workers", "6", "--out", out}, &stdout, &stderr)
	require.Equal(t, 0, code, stderr.String())

	for i := 0; i < 6; i++ {
		name := fmt.Sprintf("j%d", i)
		data, err := os.ReadFile(filepath.Join(out, name+".json"))
		require.NoError(t, err, name)
		m := decodeManifest(t, data, manifest.FormatJSON)
		assert.Equal(t, name, m.Job)
		require.Len(t, m.Tasks, 1)
		assert.Equal(t, filepath.Join("out", name, "a_raw_data.npz"), m.Tasks[0].OutputPath)
	}
}

func TestRunBatch_SingleJobOutIsFile(t *testing.T) {
	assets := t.TempDir()
	testutil.TouchAsset(t, assets, "a.fbx")
	configPath := testutil.WriteFile(t, t.TempDir(), "assetflow.yaml",
		"jobs:\n  - name: only\n    input_directory: "+assets+"\n    output_directory: out\n")
	out := filepath.Join(t.TempDir(), "run.json")

	var stdout, stderr bytes.Buffer
	require.Equal(t, 0, run([]string{"batch", "--config", configPath, "--out", out}, &stdout, &stderr), stderr.String())

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, "only", decodeManifest(t, data, manifest.FormatJSON).Job)
}

func TestRun_HelpListsBatchFlags(t *testing.T) {
	var stdout, stderr bytes.Buffer
	require.Equal(t, 0, run([]string{"help"}, &stdout, &stderr))
	usage := stdout.String()
	batchSection := usage[strings.Index(usage, "Options for 'batch':"):strings.Index(usage, "Options for 'watch':")]
	assert.Contains(t, batchSection, "--out")
	assert.Contains(t, batchSection, "--dry-run")
}

func TestPerRunWriter(t *testing.T) {
	dir := t.TempDir()
	w := perRunWriter(&manifest.FileWriter{Directory: dir})
	require.IsType(t, &manifest.FileWriter{}, w)
	assert.True(t, w.(*manifest.FileWriter).PerRun)

	// 每批变更的清单互不覆盖
	capability := resolver.Unavailable()
	first := manifest.New("watch", resolver.Request{DataSuffix: "s"}, nil, capability)
	second := manifest.New("watch", resolver.Request{DataSuffix: "s"}, nil, capability)
	loc1, err := w.Write(context.Background(), first, manifest.FormatJSON)
	require.NoError(t, err)
	loc2, err := w.Write(context.Background(), second, manifest.FormatJSON)
	require.NoError(t, err)
	assert.NotEqual(t, loc1, loc2)
	assert.FileExists(t, loc1)
	assert.FileExists(t, loc2)

	var buf bytes.Buffer
	stream := manifest.NewStreamWriter(&buf)
	assert.Same(t, stream, perRunWriter(stream))
}

func TestRunBatch_RequiresConfig(t *testing.T) {
	var stdout, stderr bytes.Buffer
	assert.Equal(t, 2, run([]string{"batch"}, &stdout, &stderr))
}

func TestRunBatch_NoJobs(t *testing.T) {
	configPath := testutil.WriteFile(t, t.TempDir(), "empty.yaml", "batch:\n  workers: 1\n")

	var stdout, stderr bytes.Buffer
	assert.Equal(t, 1, run([]string{"batch", "--config", configPath}, &stdout, &stderr))
	assert.Contains(t, stderr.String(), "No jobs configured")
}

// --- watch ---

func TestRunWatch_RequiresInputDir(t *testing.T) {
	var stdout, stderr bytes.Buffer
	assert.Equal(t, 2, run([]string{"watch", "--output-dir", "out"}, &stdout, &stderr))
}

func TestChangedPaths(t *testing.T) {
	// 删除事件不触发解析
	events := []watch.Event{
		{Path: "a.fbx", Op: watch.OpCreate},
		{Path: "b.fbx", Op: watch.OpRemove},
		{Path: "c.fbx", Op: watch.OpWrite},
	}
	assert.Equal(t, []string{"a.fbx", "c.fbx"}, changedPaths(events))
}
