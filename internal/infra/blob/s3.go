package blob

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"path"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
	"github.com/tgcs/experience-api/internal/config"
	"go.opentelemetry.io/contrib/instrumentation/github.com/aws/aws-sdk-go-v2/otelaws"
)

var ErrDisabled = errors.New("snapshot archive is disabled")

// Archive stores fetched page snapshots in a single S3 bucket.
type Archive struct {
	uploader *manager.Uploader
	bucket   string
}

// New builds the archive from cfg.S3. It returns a nil Archive and no error
// when no bucket is configured.
func New(ctx context.Context, cfg *config.Config) (*Archive, error) {
	sc := cfg.S3
	if sc.Bucket == "" {
		return nil, nil
	}

	opts := []func(*awsconfig.LoadOptions) error{awsconfig.WithRegion(sc.Region)}
	if sc.AccessKey != "" && sc.SecretKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(sc.AccessKey, sc.SecretKey, "")))
	}
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}
	otelaws.AppendMiddlewares(&awsCfg.APIOptions)

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.UsePathStyle = sc.UsePathStyle
		if sc.Endpoint != "" {
			o.BaseEndpoint = aws.String(sc.Endpoint)
		}
	})
	return newArchive(client, sc.Bucket), nil
}

func newArchive(client *s3.Client, bucket string) *Archive {
	return &Archive{
		uploader: manager.NewUploader(client),
		bucket:   bucket,
	}
}

// SnapshotKey returns the object key for a page fetched at t:
// snapshots/2024/01/02/<uuid>.html.
func SnapshotKey(t time.Time) string {
	return path.Join("snapshots", t.UTC().Format("2006/01/02"), uuid.NewString()+".html")
}

// PutSnapshot uploads body under key.
func (a *Archive) PutSnapshot(ctx context.Context, key string, body []byte, contentType string) error {
	if a == nil {
		return ErrDisabled
	}
	input := &s3.PutObjectInput{
		Bucket: aws.String(a.bucket),
		Key:    aws.String(key),
		Body:   bytes.NewReader(body),
	}
	if contentType != "" {
		input.ContentType = aws.String(contentType)
	}
	if _, err := a.uploader.Upload(ctx, input); err != nil {
		return fmt.Errorf("upload snapshot: %w", err)
	}
	return nil
}
