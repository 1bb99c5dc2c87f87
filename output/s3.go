package output

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
)

// UploadTimeout bounds a single PutObject call.
const UploadTimeout = 30 * time.Second

const defaultRegion = "us-east-1"

var ErrMissingBucket = errors.New("output: S3 bucket not configured")

// S3Config describes an S3-compatible bucket. Endpoint is optional; when set,
// requests use path-style addressing so MinIO and similar servers work.
type S3Config struct {
	Bucket    string
	Region    string
	Endpoint  string
	AccessKey string
	SecretKey string
	ACL       string
}

// S3Uploader puts rendered frames into a bucket.
type S3Uploader struct {
	client *s3.S3
	bucket string
	acl    string
}

func NewS3Uploader(cfg S3Config) (*S3Uploader, error) {
	if cfg.Bucket == "" {
		return nil, ErrMissingBucket
	}
	region := cfg.Region
	if region == "" {
		region = defaultRegion
	}

	awsCfg := &aws.Config{
		Credentials: credentials.NewStaticCredentials(cfg.AccessKey, cfg.SecretKey, ""),
		Region:      aws.String(region),
	}
	if cfg.Endpoint != "" {
		awsCfg.Endpoint = aws.String(cfg.Endpoint)
		awsCfg.S3ForcePathStyle = aws.Bool(true)
	}

	sess, err := session.NewSession(awsCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create S3 session: %w", err)
	}
	return &S3Uploader{client: s3.New(sess), bucket: cfg.Bucket, acl: cfg.ACL}, nil
}

// Upload stores data under key.
func (u *S3Uploader) Upload(ctx context.Context, key string, data []byte, contentType string) error {
	ctx, cancel := context.WithTimeout(ctx, UploadTimeout)
	defer cancel()

	size := int64(len(data))
	in := &s3.PutObjectInput{
		Bucket:        aws.String(u.bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(data),
		ContentLength: aws.Int64(size),
		ContentType:   aws.String(contentType),
	}
	if u.acl != "" {
		in.ACL = aws.String(u.acl)
	}

	if _, err := u.client.PutObjectWithContext(ctx, in); err != nil {
		return fmt.Errorf("failed to upload %s: %w", key, err)
	}

	slog.Info("uploaded frame", "bucket", u.bucket, "key", key, "bytes", size)
	return nil
}
