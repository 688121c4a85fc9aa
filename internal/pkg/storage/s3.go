package storage

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/cfascholars/backend/internal/pkg/logger"
)

// S3Config holds the settings for the S3-backed blob store.
type S3Config struct {
	Region          string
	Bucket          string
	AccessKeyID     string
	SecretAccessKey string
}

// S3Storage stores blobs in an S3 bucket reachable via access-key
// credentials.
type S3Storage struct {
	client *s3.Client
	region string
	bucket string
}

// NewS3Storage creates an S3Storage from static credentials.
func NewS3Storage(ctx context.Context, cfg S3Config) (*S3Storage, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(cfg.Region),
		awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	return &S3Storage{
		client: s3.NewFromConfig(awsCfg),
		region: cfg.Region,
		bucket: cfg.Bucket,
	}, nil
}

// Upload writes the payload and returns the public object URL.
func (s *S3Storage) Upload(ctx context.Context, key, contentType string, body io.Reader, size int64) (string, error) {
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(s.bucket),
		Key:           aws.String(key),
		Body:          body,
		ContentType:   aws.String(contentType),
		ContentLength: aws.Int64(size),
	})
	if err != nil {
		logger.Error().Err(err).Str("key", key).Msg("Failed to upload object to S3")
		return "", fmt.Errorf("failed to upload file to S3: %w", err)
	}

	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", s.bucket, s.region, key), nil
}

// Delete removes the object referenced by the given URL. The key is the URL
// path without the leading slash.
func (s *S3Storage) Delete(ctx context.Context, blobURL string) error {
	parsed, err := url.Parse(blobURL)
	if err != nil {
		return fmt.Errorf("invalid blob URL %q: %w", blobURL, err)
	}
	key := strings.TrimPrefix(parsed.Path, "/")

	_, err = s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		logger.Error().Err(err).Str("key", key).Msg("Failed to delete object from S3")
		return fmt.Errorf("failed to delete file from S3: %w", err)
	}

	logger.Info().Str("key", key).Msg("Blob deleted")
	return nil
}
