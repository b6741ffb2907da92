package objstore

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"net/url"
	"time"

	"github.com/vlatan/repo-sitemap/internal/config"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsConfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"
)

type Service interface {
	// PutObject puts object to bucket having the content
	PutObject(
		ctx context.Context,
		bucket string,
		key string,
		body io.Reader,
		contentType string,
		metadata map[string]string,
	) error

	// ObjectExists checks if the object exists in the bucket
	ObjectExists(ctx context.Context, timeout time.Duration, bucket, key string) error
	// PublicURL returns the address the object is publicly served from
	PublicURL(bucket, key string) (string, error)
	// Health checks if the bucket is reachable
	Health(ctx context.Context, bucket string) map[string]any
}

type service struct {
	client      *s3.Client
	publicURL   string
	publicRead  bool
	waitTimeout time.Duration
}

// New creates a new S3 client
func New(ctx context.Context, cfg *config.Config) Service {

	opts := []func(*awsConfig.LoadOptions) error{
		awsConfig.WithRegion(cfg.S3Region),
	}

	// Without explicit keys the SDK default chain applies
	// (AWS_* env vars, shared profiles, instance roles)
	if cfg.S3AccessKeyID != "" {
		opts = append(opts, awsConfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(
				cfg.S3AccessKeyID, cfg.S3SecretAccessKey, "",
			),
		))
	}

	sdkConfig, err := awsConfig.LoadDefaultConfig(ctx, opts...)

	if err != nil {
		log.Fatalf("failed to load AWS/S3 SDK configuration, %v", err)
	}

	client := s3.NewFromConfig(sdkConfig, func(o *s3.Options) {
		if cfg.S3Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.S3Endpoint)
		}
		o.UsePathStyle = cfg.S3UsePathStyle
		// Not every S3 compatible provider understands the newer checksums
		o.RequestChecksumCalculation = aws.RequestChecksumCalculationWhenRequired
		o.ResponseChecksumValidation = aws.ResponseChecksumValidationWhenRequired
	})

	return &service{
		client:      client,
		publicURL:   cfg.S3PublicURL,
		publicRead:  cfg.S3PublicRead,
		waitTimeout: cfg.S3WaitTimeout,
	}
}

// ObjectExists checks if the object exists in the bucket
func (s *service) ObjectExists(ctx context.Context, timeout time.Duration, bucket, key string) error {
	return s3.NewObjectExistsWaiter(s.client).Wait(
		ctx,
		&s3.HeadObjectInput{
			Bucket: aws.String(bucket),
			Key:    aws.String(key),
		},
		timeout,
	)
}

// PutObject puts object to bucket having the content
func (s *service) PutObject(
	ctx context.Context,
	bucket string,
	key string,
	body io.Reader,
	contentType string,
	metadata map[string]string,
) error {

	input := &s3.PutObjectInput{
		Bucket:      aws.String(bucket),
		Key:         aws.String(key),
		Body:        body,
		ContentType: aws.String(contentType),
		Metadata:    metadata,
	}

	if s.publicRead {
		input.ACL = types.ObjectCannedACLPublicRead
	}

	_, err := s.client.PutObject(ctx, input)

	if err != nil {
		var apiErr smithy.APIError
		if errors.As(err, &apiErr) && apiErr.ErrorCode() == "EntityTooLarge" {
			return fmt.Errorf(
				"error while uploading object to %s; The object is too large: %w",
				bucket, err,
			)
		}

		return fmt.Errorf(
			"couldn't upload object %s:%s: %w",
			bucket, key, err,
		)
	}

	if s.waitTimeout <= 0 {
		return nil
	}

	if err = s.ObjectExists(ctx, s.waitTimeout, bucket, key); err != nil {
		return fmt.Errorf(
			"failed attempt to wait for object %s:%s to exist: %w",
			bucket, key, err,
		)
	}

	return nil
}

// PublicURL composes the public base, the bucket and the key
func (s *service) PublicURL(bucket, key string) (string, error) {
	if s.publicURL == "" {
		return "", errors.New("public URL of the object storage is not configured")
	}
	return url.JoinPath(s.publicURL, bucket, key)
}

// Health checks if the bucket is reachable
func (s *service) Health(ctx context.Context, bucket string) map[string]any {

	stats := map[string]any{"bucket": bucket}

	_, err := s.client.HeadBucket(ctx, &s3.HeadBucketInput{
		Bucket: aws.String(bucket),
	})

	if err != nil {
		stats["status"] = "down"
		stats["error"] = fmt.Sprintf("bucket unreachable: %v", err)
		return stats
	}

	stats["status"] = "up"
	return stats
}
