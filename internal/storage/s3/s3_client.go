package s3

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"inkference/internal/config"
	"inkference/internal/domain"
	"inkference/internal/port"
)

type s3Client struct {
	client        *s3.Client
	presigner     *s3.PresignClient
	uploader      *manager.Uploader
	bucket        string
	presignExpiry time.Duration
}

// NewS3Client creates an S3-backed ObjectStorage implementation. When
// credentials or the bucket are missing it returns an unconfigured
// client whose every call fails with domain.ErrBackendUnconfigured, so
// a deployment without storage still serves extraction requests.
func NewS3Client(cfg *config.S3Config) (port.ObjectStorage, error) {
	if !cfg.Configured() {
		return NewUnconfigured(), nil
	}

	opts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(cfg.Region),
		awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, ""),
		),
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(context.Background(), opts...)
	if err != nil {
		return nil, fmt.Errorf("loading aws config: %w", err)
	}

	var s3Opts []func(*s3.Options)
	if cfg.Endpoint != "" {
		s3Opts = append(s3Opts, func(o *s3.Options) {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		})
	}

	client := s3.NewFromConfig(awsCfg, s3Opts...)
	return &s3Client{
		client:        client,
		presigner:     s3.NewPresignClient(client),
		uploader:      manager.NewUploader(client),
		bucket:        cfg.Bucket,
		presignExpiry: time.Duration(cfg.PresignExpiry) * time.Second,
	}, nil
}

func (c *s3Client) Upload(ctx context.Context, input port.UploadInput) error {
	_, err := c.uploader.Upload(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(c.bucket),
		Key:         aws.String(input.Key),
		Body:        input.Body,
		ContentType: aws.String(input.ContentType),
	})
	if err != nil {
		return fmt.Errorf("s3 upload: %w", err)
	}
	return nil
}

func (c *s3Client) GetPublicURL(ctx context.Context, key string) (string, error) {
	result, err := c.presigner.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(c.bucket),
		Key:    aws.String(key),
	}, s3.WithPresignExpires(c.presignExpiry))
	if err != nil {
		return "", fmt.Errorf("s3 presign: %w", err)
	}
	return result.URL, nil
}

func (c *s3Client) Delete(ctx context.Context, key string) error {
	_, err := c.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(c.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("s3 delete: %w", err)
	}
	return nil
}

// unconfigured is the no-credentials stand-in. Errors are raised only
// when the backend is actually invoked, not at startup.
type unconfigured struct{}

// NewUnconfigured returns an ObjectStorage whose every call fails with
// domain.ErrBackendUnconfigured.
func NewUnconfigured() port.ObjectStorage {
	return unconfigured{}
}

func (unconfigured) Upload(ctx context.Context, input port.UploadInput) error {
	return domain.ErrBackendUnconfigured
}

func (unconfigured) GetPublicURL(ctx context.Context, key string) (string, error) {
	return "", domain.ErrBackendUnconfigured
}

func (unconfigured) Delete(ctx context.Context, key string) error {
	return domain.ErrBackendUnconfigured
}
