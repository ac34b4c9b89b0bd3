package s3

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	awss3 "github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"
	"go.uber.org/zap"

	"github.com/BarkinBalci/launch-tracker/internal/blob"
	"github.com/BarkinBalci/launch-tracker/internal/config"
)

// Backend stores blobs as S3 objects. The version token is the ETag and
// writes rely on S3 conditional requests (If-Match / If-None-Match).
// Change messages are not recorded; S3 has no commit history.
type Backend struct {
	client *awss3.Client
	bucket string
	log    *zap.Logger
}

// NewBackend creates an S3 client from the environment's AWS configuration
func NewBackend(ctx context.Context, cfg config.S3, log *zap.Logger) (*Backend, error) {
	configOpts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(cfg.Region),
	}

	var clientOpts []func(*awss3.Options)

	// Local S3-compatible endpoints (MinIO, LocalStack)
	if cfg.Endpoint != "" {
		log.Info("Configuring S3 for local development",
			zap.String("endpoint", cfg.Endpoint))
		configOpts = append(configOpts,
			awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider("dummy", "dummy", "")))

		clientOpts = append(clientOpts, func(o *awss3.Options) {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		})
	}
	if cfg.PathStyle {
		clientOpts = append(clientOpts, func(o *awss3.Options) {
			o.UsePathStyle = true
		})
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, configOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	log.Info("S3 store configured",
		zap.String("region", cfg.Region),
		zap.String("bucket", cfg.Bucket))

	return NewBackendWithClient(awss3.NewFromConfig(awsCfg, clientOpts...), cfg.Bucket, log), nil
}

// NewBackendWithClient wraps an existing S3 client
func NewBackendWithClient(client *awss3.Client, bucket string, log *zap.Logger) *Backend {
	return &Backend{client: client, bucket: bucket, log: log}
}

func (b *Backend) Fetch(ctx context.Context, path string) (*blob.Object, error) {
	out, err := b.client.GetObject(ctx, &awss3.GetObjectInput{
		Bucket: aws.String(b.bucket),
		Key:    aws.String(path),
	})
	if err != nil {
		var noSuchKey *types.NoSuchKey
		if errors.As(err, &noSuchKey) || apiErrorCode(err) == "NotFound" {
			return nil, blob.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get s3://%s/%s: %w", b.bucket, path, err)
	}
	defer func() {
		if err := out.Body.Close(); err != nil {
			b.log.Warn("Failed to close S3 object body", zap.Error(err))
		}
	}()

	content, err := io.ReadAll(out.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read s3://%s/%s: %w", b.bucket, path, err)
	}

	return &blob.Object{Content: content, Version: aws.ToString(out.ETag)}, nil
}

func (b *Backend) Create(ctx context.Context, path string, content []byte, _ string) (string, error) {
	out, err := b.client.PutObject(ctx, b.putInput(path, content, func(in *awss3.PutObjectInput) {
		in.IfNoneMatch = aws.String("*")
	}))
	if err != nil {
		switch apiErrorCode(err) {
		case "PreconditionFailed", "ConditionalRequestConflict":
			return "", fmt.Errorf("%w: %v", blob.ErrAlreadyExists, err)
		}
		return "", fmt.Errorf("failed to create s3://%s/%s: %w", b.bucket, path, err)
	}
	return aws.ToString(out.ETag), nil
}

func (b *Backend) Update(ctx context.Context, path string, content []byte, expected string, _ string) (string, error) {
	out, err := b.client.PutObject(ctx, b.putInput(path, content, func(in *awss3.PutObjectInput) {
		in.IfMatch = aws.String(expected)
	}))
	if err != nil {
		switch apiErrorCode(err) {
		case "PreconditionFailed", "ConditionalRequestConflict":
			return "", fmt.Errorf("%w: %v", blob.ErrVersionMismatch, err)
		case "NoSuchKey", "NotFound":
			return "", fmt.Errorf("%w: %v", blob.ErrNotFound, err)
		}
		return "", fmt.Errorf("failed to update s3://%s/%s: %w", b.bucket, path, err)
	}
	return aws.ToString(out.ETag), nil
}

func (b *Backend) putInput(path string, content []byte, condition func(*awss3.PutObjectInput)) *awss3.PutObjectInput {
	in := &awss3.PutObjectInput{
		Bucket:      aws.String(b.bucket),
		Key:         aws.String(path),
		Body:        bytes.NewReader(content),
		ContentType: aws.String("text/csv; charset=utf-8"),
	}
	condition(in)
	return in
}

func apiErrorCode(err error) string {
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		return apiErr.ErrorCode()
	}
	return ""
}
