// Package storage uploads and removes objects in S3 compatible storage (AWS S3 or MinIO).
package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/awserr"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3iface"
	"github.com/sbilibin2017/gw-token-ledger/internal/logger"
)

// Config holds the connection settings of the object store.
// Endpoint is set for MinIO and left empty for AWS.
type Config struct {
	Region          string
	Endpoint        string
	AccessKeyID     string
	SecretAccessKey string
	UseSSL          bool
}

// S3Storage implements upload/remove over the S3 API.
type S3Storage struct {
	client   s3iface.S3API
	endpoint string
	region   string
	useSSL   bool
}

// NewS3Storage creates a session from cfg.
func NewS3Storage(cfg Config) (*S3Storage, error) {
	awsConfig := &aws.Config{
		Region: aws.String(cfg.Region),
		Credentials: credentials.NewStaticCredentials(
			cfg.AccessKeyID,
			cfg.SecretAccessKey,
			"",
		),
	}

	if cfg.Endpoint != "" {
		awsConfig.Endpoint = aws.String(cfg.Endpoint)
		awsConfig.S3ForcePathStyle = aws.Bool(true)
		awsConfig.DisableSSL = aws.Bool(!cfg.UseSSL)
	}

	sess, err := session.NewSession(awsConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create AWS session: %w", err)
	}
	return NewS3StorageWithClient(s3.New(sess), cfg), nil
}

// NewS3StorageWithClient wraps an existing S3 client.
func NewS3StorageWithClient(client s3iface.S3API, cfg Config) *S3Storage {
	return &S3Storage{
		client:   client,
		endpoint: cfg.Endpoint,
		region:   cfg.Region,
		useSSL:   cfg.UseSSL,
	}
}

// EnsureBucket creates bucket if it does not exist yet.
func (s *S3Storage) EnsureBucket(ctx context.Context, bucket string) error {
	_, err := s.client.HeadBucketWithContext(ctx, &s3.HeadBucketInput{Bucket: aws.String(bucket)})
	if err == nil {
		return nil
	}

	_, err = s.client.CreateBucketWithContext(ctx, &s3.CreateBucketInput{Bucket: aws.String(bucket)})
	if err != nil {
		var aerr awserr.Error
		if errors.As(err, &aerr) && (aerr.Code() == s3.ErrCodeBucketAlreadyOwnedByYou || aerr.Code() == s3.ErrCodeBucketAlreadyExists) {
			return nil
		}
		return fmt.Errorf("failed to create bucket %s: %w", bucket, err)
	}
	logger.Log.Infow("bucket created", "bucket", bucket)
	return nil
}

// Upload stores data under path and returns its public URL.
func (s *S3Storage) Upload(ctx context.Context, bucket, path string, data []byte, contentType string) (string, error) {
	_, err := s.client.PutObjectWithContext(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(bucket),
		Key:         aws.String(path),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
	})
	logger.Log.Infow("object upload", "bucket", bucket, "path", path, "size", len(data), "error", err)
	if err != nil {
		return "", fmt.Errorf("failed to upload object to S3: %w", err)
	}
	return s.PublicURL(bucket, path), nil
}

// Remove deletes the object at path. Removing a missing object is not an error.
func (s *S3Storage) Remove(ctx context.Context, bucket, path string) error {
	_, err := s.client.DeleteObjectWithContext(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(path),
	})
	logger.Log.Infow("object remove", "bucket", bucket, "path", path, "error", err)
	if err != nil {
		return fmt.Errorf("failed to delete object from S3: %w", err)
	}
	return nil
}

// Exists reports whether an object is stored at path.
func (s *S3Storage) Exists(ctx context.Context, bucket, path string) (bool, error) {
	_, err := s.client.HeadObjectWithContext(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(path),
	})
	if err == nil {
		return true, nil
	}

	var reqErr awserr.RequestFailure
	if errors.As(err, &reqErr) && reqErr.StatusCode() == http.StatusNotFound {
		return false, nil
	}
	return false, fmt.Errorf("failed to stat object in S3: %w", err)
}

// PublicURL builds the URL an object is served from.
func (s *S3Storage) PublicURL(bucket, path string) string {
	if s.endpoint != "" && !strings.Contains(s.endpoint, "amazonaws.com") {
		protocol := "http"
		if s.useSSL {
			protocol = "https"
		}
		endpoint := strings.TrimPrefix(s.endpoint, "http://")
		endpoint = strings.TrimPrefix(endpoint, "https://")
		return fmt.Sprintf("%s://%s/%s/%s", protocol, endpoint, bucket, path)
	}

	region := s.region
	if region == "" {
		region = "us-east-1"
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", bucket, region, path)
}
