package manifest

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/BaSui01/assetflow/config"
)

// S3Writer 将清单上传到 S3 兼容存储
type S3Writer struct {
	client   *minio.Client
	bucket   string
	region   string
	prefix   string
	initOnce sync.Once
	initErr  error
}

// NewS3Writer 创建 S3Writer，不访问网络
func NewS3Writer(cfg config.S3Config) (*S3Writer, error) {
	endpoint := strings.TrimSpace(cfg.Endpoint)
	if endpoint == "" {
		return nil, fmt.Errorf("s3 endpoint is required")
	}
	access := strings.TrimSpace(cfg.AccessKey)
	secret := strings.TrimSpace(cfg.SecretKey)
	if access == "" || secret == "" {
		return nil, fmt.Errorf("s3 access key and secret key are required")
	}
	bucket := strings.TrimSpace(cfg.Bucket)
	if bucket == "" {
		return nil, fmt.Errorf("s3 bucket is required")
	}
	region := strings.TrimSpace(cfg.Region)
	if region == "" {
		region = "us-east-1"
	}

	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(access, secret, ""),
		Secure: cfg.UseSSL,
		Region: region,
	})
	if err != nil {
		return nil, fmt.Errorf("init s3 client: %w", err)
	}

	return &S3Writer{
		client: client,
		bucket: bucket,
		region: region,
		prefix: strings.Trim(strings.TrimSpace(cfg.Prefix), "/"),
	}, nil
}

// Name 实现 Writer
func (s *S3Writer) Name() string { return "s3" }

// Write 实现 Writer，返回 s3://<bucket>/<key>
func (s *S3Writer) Write(ctx context.Context, m *Manifest, format Format) (string, error) {
	if err := s.ensureBucket(ctx); err != nil {
		return "", manifestWriteError("ensure bucket", err)
	}

	var buf bytes.Buffer
	if err := m.Encode(&buf, format); err != nil {
		return "", manifestWriteError("encode manifest", err)
	}

	key := objectKey(s.prefix, m.RunID, m.fileName(format))
	_, err := s.client.PutObject(ctx, s.bucket, key, bytes.NewReader(buf.Bytes()), int64(buf.Len()), minio.PutObjectOptions{
		ContentType: format.ContentType(),
	})
	if err != nil {
		return "", manifestWriteError("put manifest object", err)
	}
	return "s3://" + s.bucket + "/" + key, nil
}

func (s *S3Writer) ensureBucket(ctx context.Context) error {
	s.initOnce.Do(func() {
		exists, err := s.client.BucketExists(ctx, s.bucket)
		if err != nil {
			s.initErr = err
			return
		}
		if exists {
			return
		}
		s.initErr = s.client.MakeBucket(ctx, s.bucket, minio.MakeBucketOptions{Region: s.region})
	})
	return s.initErr
}

// objectKey 返回 <prefix>/<runID>/<name>，prefix 可为空
func objectKey(prefix, runID, name string) string {
	key := strings.TrimSpace(runID) + "/" + strings.TrimLeft(name, "/")
	if prefix == "" {
		return key
	}
	return prefix + "/" + key
}
