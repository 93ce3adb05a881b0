package manifest

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BaSui01/assetflow/config"
	"github.com/BaSui01/assetflow/types"
)

// fakeS3 记录请求的最小 S3 端点
type fakeS3 struct {
	mu           sync.Mutex
	bucketExists bool
	requests     []string
	bodies       map[string]string
}

func (f *fakeS3) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	body, _ := io.ReadAll(r.Body)

	f.mu.Lock()
	defer f.mu.Unlock()
	f.requests = append(f.requests, r.Method+" "+r.URL.Path)

	switch {
	case r.Method == http.MethodHead && strings.Count(strings.Trim(r.URL.Path, "/"), "/") == 0:
		if !f.bucketExists {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.WriteHeader(http.StatusOK)
	case r.Method == http.MethodPut && strings.Count(strings.Trim(r.URL.Path, "/"), "/") == 0:
		f.bucketExists = true
		w.WriteHeader(http.StatusOK)
	case r.Method == http.MethodPut:
		f.bodies[r.URL.Path] = string(body)
		w.Header().Set("ETag", `"d41d8cd98f00b204e9800998ecf8427e"`)
		w.WriteHeader(http.StatusOK)
	default:
		w.WriteHeader(http.StatusNotImplemented)
	}
}

func newFakeS3(t *testing.T, bucketExists bool) (*fakeS3, config.S3Config) {
	t.Helper()
	fake := &fakeS3{bucketExists: bucketExists, bodies: make(map[string]string)}
	srv := httptest.NewServer(fake)
	t.Cleanup(srv.Close)

	return fake, config.S3Config{
		Endpoint:  strings.TrimPrefix(srv.URL, "http://"),
		Region:    "us-east-1",
		AccessKey: "minio",
		SecretKey: "minio123",
		Bucket:    "assetflow",
		Prefix:    "/manifests/",
	}
}

func TestS3Writer_Write(t *testing.T) {
	t.Parallel()
	fake, cfg := newFakeS3(t, true)

	w, err := NewS3Writer(cfg)
	require.NoError(t, err)

	m := sampleManifest()
	loc, err := w.Write(context.Background(), m, FormatJSON)
	require.NoError(t, err)

	key := "manifests/" + m.RunID + "/rigs.json"
	assert.Equal(t, "s3://assetflow/"+key, loc)

	fake.mu.Lock()
	defer fake.mu.Unlock()
	assert.Contains(t, fake.bodies["/assetflow/"+key], m.RunID)
}

func TestS3Writer_CreatesMissingBucketOnce(t *testing.T) {
	t.Parallel()
	fake, cfg := newFakeS3(t, false)

	w, err := NewS3Writer(cfg)
	require.NoError(t, err)

	for i := 0; i < 2; i++ {
		_, err := w.Write(context.Background(), sampleManifest(), FormatYAML)
		require.NoError(t, err)
	}

	fake.mu.Lock()
	defer fake.mu.Unlock()
	heads := 0
	for _, r := range fake.requests {
		if r == "HEAD /assetflow" || r == "HEAD /assetflow/" {
			heads++
		}
	}
	assert.Equal(t, 1, heads)
	assert.True(t, fake.bucketExists)
	assert.Len(t, fake.bodies, 2)
}

func TestS3Writer_UnreachableEndpoint(t *testing.T) {
	t.Parallel()
	cfg := config.S3Config{
		Endpoint:  "127.0.0.1:1",
		AccessKey: "a",
		SecretKey: "b",
		Bucket:    "assetflow",
	}
	w, err := NewS3Writer(cfg)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = w.Write(ctx, sampleManifest(), FormatJSON)
	require.Error(t, err)
	assert.True(t, types.IsCode(err, types.ErrManifestWrite))
}

func TestNewS3Writer_Validation(t *testing.T) {
	t.Parallel()
	base := config.S3Config{Endpoint: "localhost:9000", AccessKey: "a", SecretKey: "b", Bucket: "x"}

	_, err := NewS3Writer(base)
	require.NoError(t, err)

	noEndpoint := base
	noEndpoint.Endpoint = ""
	_, err = NewS3Writer(noEndpoint)
	assert.ErrorContains(t, err, "endpoint")

	noKeys := base
	noKeys.SecretKey = " "
	_, err = NewS3Writer(noKeys)
	assert.ErrorContains(t, err, "secret key")

	noBucket := base
	noBucket.Bucket = ""
	_, err = NewS3Writer(noBucket)
	assert.ErrorContains(t, err, "bucket")
}

func TestObjectKey(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "manifests/run-1/rigs.json", objectKey("manifests", "run-1", "rigs.json"))
	assert.Equal(t, "run-1/rigs.json", objectKey("", " run-1 ", "/rigs.json"))
}
